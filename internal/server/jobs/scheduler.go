// Package jobs runs the recurring background work of the back office on a
// cron schedule: refreshing stored position prices and rolling over due
// investment plans.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"wealth-backoffice/internal/server/config"
	"wealth-backoffice/internal/server/service"
	"wealth-backoffice/pkg/logger"
)

const jobTimeout = 5 * time.Minute

// Scheduler owns the cron runner for the background jobs.
type Scheduler struct {
	cron         *cron.Cron
	cfg          config.Jobs
	priceRefresh service.PriceRefreshService
	plans        service.PlanService
	logger       *logger.Logger
}

// NewScheduler creates a new job scheduler. Either service may be nil; its
// job is then not registered.
func NewScheduler(cfg config.Jobs, priceRefresh service.PriceRefreshService, plans service.PlanService, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		cfg:          cfg,
		priceRefresh: priceRefresh,
		plans:        plans,
		logger:       log,
	}
}

// Start registers the configured jobs and starts the cron runner.
func (s *Scheduler) Start() error {
	if s.priceRefresh != nil && s.cfg.PriceRefreshCron != "" {
		if _, err := s.cron.AddFunc(s.cfg.PriceRefreshCron, s.runPriceRefresh); err != nil {
			return err
		}
		s.logger.Info("Registered price refresh job", logger.StringField("cron", s.cfg.PriceRefreshCron))
	}
	if s.plans != nil && s.cfg.PlanRolloverCron != "" {
		if _, err := s.cron.AddFunc(s.cfg.PlanRolloverCron, s.runPlanRollover); err != nil {
			return err
		}
		s.logger.Info("Registered plan rollover job", logger.StringField("cron", s.cfg.PlanRolloverCron))
	}

	s.cron.Start()
	return nil
}

// Stop stops the cron runner and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runPriceRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.priceRefresh.RefreshAllPrices(ctx); err != nil {
		s.logger.Error("Price refresh job failed", logger.ErrorField(err))
	}
}

func (s *Scheduler) runPlanRollover() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.plans.RolloverDuePlans(ctx); err != nil {
		s.logger.Error("Plan rollover job failed", logger.ErrorField(err))
	}
}
