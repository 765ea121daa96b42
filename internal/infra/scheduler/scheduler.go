package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"weekly_toast_bot/internal/app"
	domainTelegram "weekly_toast_bot/internal/domain/telegram"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// tickTimeout bounds one full tick. Provider calls carry their own shorter
// timeouts; this is the backstop for the whole user population.
const tickTimeout = 10 * time.Minute

// TickRunner is the slice of ToastService the scheduler needs.
type TickRunner interface {
	RunTick(ctx context.Context, mode app.RunMode) (app.TickReport, error)
}

// ToastScheduler drives the polling cadence of the toast engine. The cron
// spec fires every few minutes; per-user timezone eligibility is decided
// inside the tick, so the server's own timezone is irrelevant.
type ToastScheduler struct {
	cronEngine *cron.Cron
	runner     TickRunner
	notifier   domainTelegram.Client // optional; alerts the admin on tick-fatal failures
	adminID    int64
	logger     *logrus.Entry
	cronSpec   string
	running    atomic.Bool
}

func NewToastScheduler(runner TickRunner, notifier domainTelegram.Client, adminID int64, logger *logrus.Entry, cronSpec string) *ToastScheduler {
	return &ToastScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)),
		runner:     runner,
		notifier:   notifier,
		adminID:    adminID,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

func (s *ToastScheduler) Start() error {
	if _, err := s.cronEngine.AddFunc(s.cronSpec, s.tick); err != nil {
		return err
	}
	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Toast scheduler started")
	return nil
}

// tick runs one pass over all users. Ticks are non-reentrant: if the
// previous tick is still in flight when the timer fires, this firing is
// skipped rather than queued.
func (s *ToastScheduler) tick() {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Info("Previous tick still in progress; skipping this firing")
		return
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	report, err := s.runner.RunTick(ctx, app.RunModeProduction)
	if err != nil {
		// Tick-fatal (e.g. user enumeration failed). The next scheduled tick
		// retries naturally; no backoff needed at this cadence.
		s.logger.WithError(err).Error("Toast tick failed")
		if s.notifier != nil && s.adminID != 0 {
			if sendErr := s.notifier.SendMessage(s.adminID, "Toast tick failed: "+err.Error(), nil); sendErr != nil {
				s.logger.WithError(sendErr).Warn("Failed to alert admin about tick failure")
			}
		}
		return
	}
	s.logger.WithFields(logrus.Fields{
		"processed": report.Processed,
		"created":   report.Created,
		"skipped":   report.Skipped,
		"failed":    report.Failed,
	}).Info("Toast tick completed")
}

func (s *ToastScheduler) Stop() {
	s.logger.Info("Stopping toast scheduler...")
	ctx := s.cronEngine.Stop() // waits for running jobs
	<-ctx.Done()
	s.logger.Info("Toast scheduler gracefully stopped")
}
