package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/freshstock/internal/config"
	"github.com/mamadbah2/freshstock/internal/domain/models"
	"github.com/mamadbah2/freshstock/internal/service/reporting"
	"github.com/mamadbah2/freshstock/pkg/clients/whatsapp"
)

// Reporter produces the digest and the valuation export.
type Reporter interface {
	DailyDigest(ctx context.Context, now time.Time) (string, error)
	ExportValuation(ctx context.Context, now time.Time) (int, error)
}

// Scheduler runs the daily stock digest.
type Scheduler struct {
	cron     *cron.Cron
	spec     string
	location *time.Location
	reporter Reporter
	notifier whatsapp.Notifier
	alertTo  string
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a scheduler firing on cfg.CronSchedule in cfg.Timezone.
// notifier may be nil, in which case the digest is only logged.
func NewScheduler(cfg config.ReportingConfig, reporter Reporter, notifier whatsapp.Notifier, alertTo string, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		spec:     cfg.CronSchedule,
		location: loc,
		reporter: reporter,
		notifier: notifier,
		alertTo:  alertTo,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Start registers the digest job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runDigest); err != nil {
		return fmt.Errorf("schedule digest %q: %w", s.spec, err)
	}
	s.logger.Info("starting scheduler", zap.String("schedule", s.spec), zap.String("timezone", s.location.String()))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("daily digest failed", zap.Error(err))
	}
}

// RunOnce builds the digest, sends it and exports the valuation. A disabled
// export is skipped; other sink failures are returned.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	now := s.now().In(s.location)
	s.logger.Info("generating daily digest", zap.Time("at", now))

	digest, err := s.reporter.DailyDigest(ctx, now)
	if err != nil {
		return fmt.Errorf("build digest: %w", err)
	}

	var errs []error

	if s.notifier == nil {
		s.logger.Info("digest ready, alerts disabled", zap.String("digest", digest))
	} else if id, err := s.notifier.SendAlert(ctx, models.Alert{To: s.alertTo, Message: digest}); err != nil {
		errs = append(errs, fmt.Errorf("send digest: %w", err))
	} else {
		s.logger.Info("digest sent", zap.String("message_id", id))
	}

	if _, err := s.reporter.ExportValuation(ctx, now); err != nil {
		if errors.Is(err, reporting.ErrExportDisabled) {
			s.logger.Debug("valuation export skipped")
		} else {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
