package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/robinoyako/sips/internal/config"
	"github.com/robinoyako/sips/internal/domain/models"
	"github.com/robinoyako/sips/internal/service/reset"
)

// Scheduler runs the daily reset on the configured cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	resetSvc *reset.Service
	cfg      config.ResetConfig
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance in the configured timezone.
func NewScheduler(cfg config.ResetConfig, resetSvc *reset.Service, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		resetSvc: resetSvc,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Start registers the reset job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.String("schedule", s.cfg.CronSchedule),
		zap.String("timezone", s.cfg.Timezone))

	_, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDailyReset)
	if err != nil {
		s.logger.Error("failed to schedule daily reset", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDailyReset() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	archived, err := s.resetSvc.PerformDailyReset(ctx)
	switch {
	case errors.Is(err, models.ErrAlreadyReset):
		s.logger.Warn("daily reset skipped, already ran today")
	case errors.Is(err, models.ErrEmptyBaseline):
		s.logger.Warn("daily reset skipped, no starting stock recorded")
	case err != nil:
		s.logger.Error("daily reset failed", zap.Error(err))
	default:
		s.logger.Info("daily reset done", zap.Int("archived", archived))
	}
}
