package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/couplet/internal/couplet/store"
)

// DefaultInviteCodeRetention is how long expired codes are kept around
// so late redemptions still report "expired" rather than "not found".
const DefaultInviteCodeRetention = 24 * time.Hour

// HousekeepingService periodically deletes invite codes that expired more
// than Retention ago.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration
	Now       func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}

	started, stopped atomic.Bool
}

// NewHousekeepingService defaults a non-positive interval to one hour and a
// non-positive retention to DefaultInviteCodeRetention.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = DefaultInviteCodeRetention
	}
	return &HousekeepingService{
		Store:     st,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start runs a cleanup immediately and then every Interval until Stop.
func (s *HousekeepingService) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "retention", s.Retention)
}

// Stop blocks until any in-progress cleanup has finished. It is a no-op if
// Start was never called.
func (s *HousekeepingService) Stop() {
	if !s.started.Load() || !s.stopped.CompareAndSwap(false, true) {
		return
	}
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup performs one deletion pass and reports how many codes went.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	cutoff := nowOr(s.Now).Add(-s.Retention)

	n, err := s.Store.InviteCodes().DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to delete expired invite codes", "error", err)
		return 0
	}
	s.Logger.Info("housekeeping cleanup completed", "invite_codes_deleted", n, "cutoff", cutoff)
	return n
}
