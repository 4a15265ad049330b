package reservation

import (
	"lab-seat-reservation/internal/domain/venue"
	"lab-seat-reservation/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock clock.Clock
	// MaxSeats caps seats per reservation; zero leaves only the venue's seat list.
	MaxSeats int
}

func NewFactory(clock clock.Clock, maxSeats int) *Factory {
	return &Factory{
		Clock:    clock,
		MaxSeats: maxSeats,
	}
}

func (f *Factory) CreateReservation(
	v *venue.Venue,
	ownerID uuid.UUID,
	window Window,
	seats SeatSet,
	anonymous bool,
) (*Reservation, error) {
	now := f.Clock.Now()
	if window.Start().Before(now) {
		return nil, ErrWindowInPast
	}
	if seats.IsEmpty() {
		return nil, ErrNoSeats
	}
	if err := f.checkSeats(v, seats); err != nil {
		return nil, err
	}

	owner := ownerID
	return &Reservation{
		id:        uuid.New(),
		venueID:   v.ID(),
		userID:    &owner,
		seats:     seats,
		window:    window,
		anonymous: anonymous,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// CheckModification applies the same seat rules to an edit.
func (f *Factory) CheckModification(v *venue.Venue, seats SeatSet) error {
	return f.checkSeats(v, seats)
}

func (f *Factory) checkSeats(v *venue.Venue, seats SeatSet) error {
	if f.MaxSeats > 0 && seats.Len() > f.MaxSeats {
		return ErrTooManySeats
	}
	return v.CheckSeats(seats.Labels())
}
