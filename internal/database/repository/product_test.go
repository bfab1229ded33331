package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/artur/pricewatch/internal/database/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProductRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Laptop", "https://www.amazon.com/x", ptr(999.90))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = repo.Create(ctx, "Phone", "https://www.trendyol.com/p", nil)
	require.NoError(t, err)

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	first := products[0]
	assert.Equal(t, created.ID, first.ID)
	assert.Equal(t, "Laptop", first.Name)
	assert.Equal(t, "https://www.amazon.com/x", first.URL)
	require.NotNil(t, first.TargetPrice)
	assert.Equal(t, 999.90, *first.TargetPrice)
	assert.Nil(t, first.LastPrice)
	assert.Nil(t, first.LastChecked)

	assert.Equal(t, "Phone", products[1].Name)
	assert.Nil(t, products[1].TargetPrice)
	assert.Less(t, products[0].ID, products[1].ID)
}

func TestProductRepository_ListEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProductRepository(db)

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProductRepository(db)
	ctx := context.Background()

	missing, err := repo.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)

	created, err := repo.Create(ctx, "Laptop", "https://www.amazon.com/x", nil)
	require.NoError(t, err)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Laptop", found.Name)
}

func TestProductRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProductRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Laptop", "https://www.amazon.com/x", nil)
	require.NoError(t, err)

	removed, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, removed, "second delete should report not found")

	products, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepository_UpdatePrice(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProductRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Laptop", "https://www.amazon.com/x", nil)
	require.NoError(t, err)

	checkedAt := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	updated, err := repo.UpdatePrice(ctx, created.ID, 120.5, checkedAt)
	require.NoError(t, err)
	assert.True(t, updated)

	p, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, p.LastPrice)
	assert.Equal(t, 120.5, *p.LastPrice)
	require.NotNil(t, p.LastChecked)
	assert.True(t, checkedAt.Equal(*p.LastChecked))

	history, err := repo.History(ctx, created.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 120.5, history[0].Price)
}

func TestProductRepository_UpdatePrice_NeverMovesBackwards(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProductRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Laptop", "https://www.amazon.com/x", nil)
	require.NoError(t, err)

	newer := time.Date(2026, 1, 2, 10, 30, 0, 0, time.UTC)
	older := newer.Add(-time.Minute)

	updated, err := repo.UpdatePrice(ctx, created.ID, 100, newer)
	require.NoError(t, err)
	require.True(t, updated)

	updated, err = repo.UpdatePrice(ctx, created.ID, 50, older)
	require.NoError(t, err)
	assert.False(t, updated)

	p, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, *p.LastPrice)

	history, err := repo.History(ctx, created.ID, 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestProductRepository_UpdatePrice_UnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProductRepository(db)

	updated, err := repo.UpdatePrice(context.Background(), 99, 10, time.Now())
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestProductRepository_History(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProductRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "Laptop", "https://www.amazon.com/x", nil)
	require.NoError(t, err)

	start := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	for i, price := range []float64{100, 95, 97} {
		_, err := repo.UpdatePrice(ctx, created.ID, price, start.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}

	history, err := repo.History(ctx, created.ID, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 97.0, history[0].Price)
	assert.Equal(t, 95.0, history[1].Price)

	// history goes away with its product
	_, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)

	history, err = repo.History(ctx, created.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestProductRepository_StorageErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepository(db)
	ctx := context.Background()
	dbErr := errors.New("disk I/O error")

	t.Run("create", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO products").
			WithArgs("Laptop", "https://www.amazon.com/x", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(dbErr)

		p, err := repo.Create(ctx, "Laptop", "https://www.amazon.com/x", nil)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products ORDER BY id").WillReturnError(dbErr)

		_, err := repo.List(ctx)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update rolls back when history insert fails", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE products").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO price_history").WillReturnError(dbErr)
		mock.ExpectRollback()

		updated, err := repo.UpdatePrice(ctx, 1, 10, time.Now())
		assert.False(t, updated)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM products").WithArgs(int64(7)).WillReturnError(dbErr)

		removed, err := repo.Delete(ctx, 7)
		assert.False(t, removed)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
