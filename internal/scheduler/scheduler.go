// Package scheduler runs the nightly archival sweep.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/jakubrevaj/Matratex/internal/config"
	"github.com/jakubrevaj/Matratex/internal/service"
)

type Scheduler struct {
	cron    *cron.Cron
	archive *service.ArchiveService
	logger  *zap.Logger
}

func New(archive *service.ArchiveService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		archive: archive,
		logger:  logger,
	}
}

// Start registers the sweep under the configured cron expression and
// starts the scheduler. Sweep failures are logged, never fatal.
func (s *Scheduler) Start(cfg config.ArchiveConfig) error {
	if !cfg.Enabled {
		s.logger.Info("archival sweep disabled")
		return nil
	}

	_, err := s.cron.AddFunc(cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		archived, err := s.archive.ArchiveAllInvoiced(ctx)
		if err != nil {
			s.logger.Error("archival sweep failed", zap.Error(err))
			return
		}
		s.logger.Info("archival sweep finished", zap.Int("archived", archived))
	})
	if err != nil {
		return fmt.Errorf("schedule archival sweep: %w", err)
	}

	s.cron.Start()
	s.logger.Info("archival sweep scheduled", zap.String("schedule", cfg.Schedule))
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
