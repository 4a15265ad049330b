package redis

import (
	"context"
	"errors"
	"time"

	"lab-seat-reservation/internal/pkg/config"
	"lab-seat-reservation/internal/pkg/errs"
	"lab-seat-reservation/internal/pkg/metrics"
	"lab-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

// VenueLocker takes the per-venue Redis lock that serializes reservation
// writers across API instances.
type VenueLocker struct {
	locks   *LockManager
	cfg     config.ReservationConfig
	metrics *metrics.Metrics
}

func NewVenueLocker(locks *LockManager, cfg config.ReservationConfig, m *metrics.Metrics) *VenueLocker {
	return &VenueLocker{
		locks:   locks,
		cfg:     cfg,
		metrics: m,
	}
}

func (v *VenueLocker) LockVenue(ctx context.Context, venueID uuid.UUID) (shared.Lock, error) {
	start := time.Now()
	lock, err := v.locks.AcquireLockWithRetry(ctx, "venue:"+venueID.String(), v.cfg.VenueLockTTL, v.cfg.LockMaxRetries, v.cfg.LockRetryDelay)
	v.metrics.ObserveLock("acquire", start, err)
	if err != nil {
		if errors.Is(err, ErrLockNotAcquired) {
			return nil, errs.Mark(err, shared.ErrVenueLockUnavailable)
		}
		return nil, errs.Infrastructure(err)
	}
	return &venueLock{lock: lock, metrics: v.metrics}, nil
}

type venueLock struct {
	lock    *DistributedLock
	metrics *metrics.Metrics
}

// Release treats a lapsed lock as released; the database transaction already
// committed or rolled back by the time this runs.
func (l *venueLock) Release(ctx context.Context) error {
	start := time.Now()
	err := l.lock.Release(ctx)
	if errors.Is(err, ErrLockNotOwned) {
		err = nil
	}
	l.metrics.ObserveLock("release", start, err)
	return err
}
