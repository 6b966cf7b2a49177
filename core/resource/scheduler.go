package resource

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// Scheduler drives the render tick and, with the interval cleanup policy,
// the periodic eviction pass. Run it on the goroutine that owns the driver.
type Scheduler struct {
	manager *Manager
	clock   clock.Clock
	logger  *zap.Logger
}

// NewScheduler creates a scheduler for m. A nil clk uses the wall clock.
func NewScheduler(m *Manager, clk clock.Clock, logger *zap.Logger) *Scheduler {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{manager: m, clock: clk, logger: logger}
}

// Run ticks until ctx is done. Flushes are skipped while data is paused,
// as there is no driver context to load into.
func (s *Scheduler) Run(ctx context.Context) error {
	cfg := s.manager.Config()

	flush := s.clock.Ticker(cfg.FlushEvery())
	defer flush.Stop()

	var cleanup <-chan time.Time
	if cfg.CleanupPolicy == CleanupInterval {
		t := s.clock.Ticker(cfg.CleanupEvery())
		defer t.Stop()
		cleanup = t.C
	}

	s.logger.Info("Resource scheduler started",
		zap.Duration("flush_every", cfg.FlushEvery()),
		zap.String("cleanup_policy", cfg.CleanupPolicy))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Resource scheduler stopped")
			return nil
		case <-flush.C:
			if s.manager.IsDataPaused() {
				continue
			}
			if n := s.manager.LoadAllToRenderer(); n > 0 {
				s.logger.Debug("Flushed resources to driver", zap.Int("count", n))
			}
		case <-cleanup:
			n, err := s.manager.CleanUp()
			if err != nil {
				s.logger.Warn("Cleanup reported errors", zap.Error(err))
			}
			if n > 0 {
				s.logger.Info("Evicted unreferenced resources", zap.Int("count", n))
			}
		}
	}
}
