// Package scheduler runs the periodic feed refresh.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"stocktake/infrastructure/notify"
	"stocktake/infrastructure/sqlite"
)

// Scheduler owns the cron instance driving background jobs.
type Scheduler struct {
	cron *cron.Cron
	db   *sqlite.DB
}

func New(db *sqlite.DB) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		db:   db,
	}
}

// Start registers the notification refresh job and starts the cron loop. The
// spec is a standard cron expression; the default config refreshes every
// minute.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.refreshNotifications); err != nil {
		return err
	}
	// Run once at startup so the feed is warm before the first tick.
	go s.refreshNotifications()
	s.cron.Start()
	slog.Info("scheduler started", "notificationRefresh", spec)
	return nil
}

// Stop halts the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("scheduler stopped")
}

func (s *Scheduler) refreshNotifications() {
	if err := notify.Refresh(context.Background(), s.db); err != nil {
		slog.Error("notification refresh failed", "error", err)
	}
}
