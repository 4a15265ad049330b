package shared

import (
	"context"

	"lab-seat-reservation/internal/domain/reservation"

	"github.com/google/uuid"
)

//go:generate mockgen -source=readmodel.go -destination=../../testutil/mock/shared/readmodel_mock.go -package=sharedmock

// OccupancyReadModel answers which seats are held at a venue during a window.
// Only non-removed reservations are returned. excludeID skips one reservation,
// normally the one being edited.
type OccupancyReadModel interface {
	ListOverlapping(ctx context.Context, venueID uuid.UUID, window reservation.Window, excludeID *uuid.UUID) ([]reservation.Occupancy, error)
	ListSeatsTaken(ctx context.Context, venueID uuid.UUID, window reservation.Window, excludeID *uuid.UUID) (reservation.SeatSet, error)
}
