package readstore

import (
	"context"

	"lab-seat-reservation/internal/domain/reservation"
	"lab-seat-reservation/internal/infra"
	"lab-seat-reservation/internal/infra/converter"
	"lab-seat-reservation/internal/infra/db"
	"lab-seat-reservation/internal/infra/pgquery"

	"github.com/google/uuid"
)

type OccupancyQueries interface {
	ListOverlappingReservations(ctx context.Context, dbtx db.DBTX, arg pgquery.ListOverlappingParams) ([]pgquery.Reservations, error)
	ListSeatsTaken(ctx context.Context, dbtx db.DBTX, arg pgquery.ListOverlappingParams) ([]string, error)
}

// OccupancyReadStore is the reservation read-model used by conflict checks
// and availability. Bound to a transaction it sees that transaction's writes.
type OccupancyReadStore struct {
	queries OccupancyQueries
	db      db.DBTX
}

func NewOccupancyReadStore(queries OccupancyQueries, db db.DBTX) *OccupancyReadStore {
	return &OccupancyReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *OccupancyReadStore) ListOverlapping(ctx context.Context, venueID uuid.UUID, window reservation.Window, excludeID *uuid.UUID) ([]reservation.Occupancy, error) {
	rows, err := r.queries.ListOverlappingReservations(ctx, r.db, overlapParams(venueID, window, excludeID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list overlapping reservations", err)
	}

	result := make([]reservation.Occupancy, 0, len(rows))
	for _, row := range rows {
		occ, err := converter.ReservationToOccupancy(row)
		if err != nil {
			return nil, infra.WrapRepoErr("corrupt reservation row", err)
		}
		result = append(result, occ)
	}
	return result, nil
}

func (r *OccupancyReadStore) ListSeatsTaken(ctx context.Context, venueID uuid.UUID, window reservation.Window, excludeID *uuid.UUID) (reservation.SeatSet, error) {
	labels, err := r.queries.ListSeatsTaken(ctx, r.db, overlapParams(venueID, window, excludeID))
	if err != nil {
		return reservation.SeatSet{}, infra.WrapRepoErr("failed to list taken seats", err)
	}
	return reservation.SeatSetOf(labels...), nil
}
