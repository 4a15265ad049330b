package commands

import (
	"context"

	"lab-seat-reservation/internal/domain/reservation"
	"lab-seat-reservation/internal/pkg/errs"
	"lab-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

// ConflictResolver decides whether a proposed (venue, window, seats) collides
// with any other live reservation. A collision is a normal result, never an
// error; errors are read failures only.
type ConflictResolver struct{}

func NewConflictResolver() *ConflictResolver {
	return &ConflictResolver{}
}

func (r *ConflictResolver) CheckConflict(
	ctx context.Context,
	reads shared.OccupancyReadModel,
	venueID uuid.UUID,
	window reservation.Window,
	seats reservation.SeatSet,
	excludeID *uuid.UUID,
) (reservation.Conflict, error) {
	existing, err := reads.ListOverlapping(ctx, venueID, window, excludeID)
	if err != nil {
		return reservation.Conflict{}, errs.Infrastructure(errs.Wrap(err, "failed to list overlapping reservations"))
	}
	return reservation.DetectConflict(window, seats, existing, excludeID), nil
}
