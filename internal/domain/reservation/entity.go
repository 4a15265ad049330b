package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrReservationRemoved = errors.New("reservation has been removed")
	ErrReservationExpired = errors.New("reservation has already ended")
	ErrNoShowTooEarly     = errors.New("no-show grace period has not elapsed")
	ErrTooManySeats       = errors.New("too many seats requested")
)

type Reservation struct {
	id        uuid.UUID
	venueID   uuid.UUID
	userID    *uuid.UUID
	seats     SeatSet
	window    Window
	anonymous bool
	removed   bool
	removedAt *time.Time
	removedBy *uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func ReconstructReservation(
	id, venueID uuid.UUID,
	userID *uuid.UUID,
	seats SeatSet,
	window Window,
	anonymous, removed bool,
	removedAt *time.Time,
	removedBy *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		venueID:   venueID,
		userID:    userID,
		seats:     seats,
		window:    window,
		anonymous: anonymous,
		removed:   removed,
		removedAt: removedAt,
		removedBy: removedBy,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Modify replaces window and seats together. A start that is kept as-is may
// already be in the past (an active reservation extending its end).
func (r *Reservation) Modify(window Window, seats SeatSet, anonymous bool, now time.Time) error {
	if err := r.ensureMutable(now); err != nil {
		return err
	}
	if !window.Start().Equal(r.window.Start()) && window.Start().Before(now) {
		return ErrWindowInPast
	}
	if seats.IsEmpty() {
		return ErrNoSeats
	}
	r.window = window
	r.seats = seats
	r.anonymous = anonymous
	r.updatedAt = now
	return nil
}

func (r *Reservation) Cancel(by uuid.UUID, now time.Time) error {
	if err := r.ensureMutable(now); err != nil {
		return err
	}
	r.markRemoved(by, now)
	return nil
}

// MarkNoShow removes a reservation whose holder never arrived. It is allowed
// from start+grace until the window ends.
func (r *Reservation) MarkNoShow(by uuid.UUID, now time.Time, grace time.Duration) error {
	if r.removed {
		return ErrReservationRemoved
	}
	if now.Before(r.window.Start().Add(grace)) {
		return ErrNoShowTooEarly
	}
	if !now.Before(r.window.End()) {
		return ErrReservationExpired
	}
	r.markRemoved(by, now)
	return nil
}

func (r *Reservation) ensureMutable(now time.Time) error {
	if r.removed {
		return ErrReservationRemoved
	}
	if Classify(r.window, now) == StatusExpired {
		return ErrReservationExpired
	}
	return nil
}

func (r *Reservation) markRemoved(by uuid.UUID, now time.Time) {
	r.removed = true
	r.removedAt = &now
	r.removedBy = &by
	r.updatedAt = now
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) VenueID() uuid.UUID    { return r.venueID }
func (r *Reservation) UserID() *uuid.UUID    { return r.userID }
func (r *Reservation) Seats() SeatSet        { return r.seats }
func (r *Reservation) Window() Window        { return r.window }
func (r *Reservation) Anonymous() bool       { return r.anonymous }
func (r *Reservation) IsRemoved() bool       { return r.removed }
func (r *Reservation) RemovedAt() *time.Time { return r.removedAt }
func (r *Reservation) RemovedBy() *uuid.UUID { return r.removedBy }
func (r *Reservation) CreatedAt() time.Time  { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time  { return r.updatedAt }
