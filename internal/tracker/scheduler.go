package tracker

import (
	"context"
	"log"
	"time"
)

// Cycle is a single price check pass.
type Cycle interface {
	Run(ctx context.Context, manual bool) error
}

// Scheduler runs a cycle at start-up, on every tick and whenever triggered.
type Scheduler struct {
	cycle    Cycle
	interval time.Duration
	trigger  chan bool
}

func NewScheduler(cycle Cycle, interval time.Duration) *Scheduler {
	return &Scheduler{
		cycle:    cycle,
		interval: interval,
		trigger:  make(chan bool, 1),
	}
}

// TriggerCheck asks for a cycle to run now. It never blocks; a request made
// while another one is pending is merged into it.
func (s *Scheduler) TriggerCheck(manual bool) bool {
	select {
	case s.trigger <- manual:
		return true
	default:
		log.Printf("[SCHEDULER] Check already pending")
		return false
	}
}

// Start blocks until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("[SCHEDULER] Started, interval %v", s.interval)

	s.run(ctx, false)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[SCHEDULER] Stopped")
			return
		case <-ticker.C:
			s.run(ctx, false)
		case manual := <-s.trigger:
			s.run(ctx, manual)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, manual bool) {
	if err := s.cycle.Run(ctx, manual); err != nil {
		log.Printf("[SCHEDULER] Check failed: %v", err)
	}
}
