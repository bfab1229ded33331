package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, values map[string]string) {
	t.Helper()
	// point at a file that does not exist so a developer's .env cannot leak in
	t.Setenv(EnvFilePath, t.TempDir()+"/missing.env")
	for _, key := range []string{TokenEnv, DBPathEnv, CheckIntervalEnv, FetchTimeoutEnv, MetricsServerPortEnv, DebugModeEnv} {
		t.Setenv(key, values[key])
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	setEnv(t, map[string]string{TokenEnv: "123:abc"})

	conf, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", conf.Token)
	assert.Equal(t, DefaultDBPath, conf.DBPath)
	assert.Equal(t, 30*time.Minute, conf.CheckInterval)
	assert.Equal(t, 15*time.Second, conf.FetchTimeout)
	assert.Empty(t, conf.MetricsServerPort)
	assert.False(t, conf.DebugMode)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	setEnv(t, map[string]string{
		TokenEnv:             "123:abc",
		DBPathEnv:            "/tmp/prices.db",
		CheckIntervalEnv:     "60",
		FetchTimeoutEnv:      "5",
		MetricsServerPortEnv: "9100",
		DebugModeEnv:         "true",
	})

	conf, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/prices.db", conf.DBPath)
	assert.Equal(t, time.Minute, conf.CheckInterval)
	assert.Equal(t, 5*time.Second, conf.FetchTimeout)
	assert.Equal(t, "9100", conf.MetricsServerPort)
	assert.True(t, conf.DebugMode)
}

func TestLoadFromEnv_MissingToken(t *testing.T) {
	setEnv(t, map[string]string{})

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingConfig))
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{"non numeric interval", map[string]string{TokenEnv: "t", CheckIntervalEnv: "often"}},
		{"zero interval", map[string]string{TokenEnv: "t", CheckIntervalEnv: "0"}},
		{"negative timeout", map[string]string{TokenEnv: "t", FetchTimeoutEnv: "-3"}},
		{"non numeric metrics port", map[string]string{TokenEnv: "t", MetricsServerPortEnv: "http"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.values)
			_, err := LoadFromEnv()
			assert.Error(t, err)
		})
	}
}
