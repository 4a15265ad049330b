package repository

import (
	"context"

	"lab-seat-reservation/internal/domain/reservation"
	"lab-seat-reservation/internal/infra"
	"lab-seat-reservation/internal/infra/converter"
	"lab-seat-reservation/internal/infra/db"
	"lab-seat-reservation/internal/infra/pgquery"

	"github.com/google/uuid"
)

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, dbtx db.DBTX, arg pgquery.CreateReservationParams) error
	UpdateReservation(ctx context.Context, dbtx db.DBTX, arg pgquery.UpdateReservationParams) (int64, error)
	DeleteReservationSeats(ctx context.Context, dbtx db.DBTX, reservationID uuid.UUID) error
	InsertReservationSeats(ctx context.Context, dbtx db.DBTX, arg pgquery.InsertReservationSeatsParams) error
}

type ReservationRepository struct {
	queries ReservationWriteQueries
}

func NewReservationRepository(queries ReservationWriteQueries) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
	}
}

// Create writes the reservation and one row per seat. A seat already held for
// an overlapping window fails with KindConflict.
func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	if err := r.queries.CreateReservation(ctx, tx, converter.ReservationToCreateParams(res)); err != nil {
		return wrapWriteErr("failed to create reservation", err)
	}
	if err := r.queries.InsertReservationSeats(ctx, tx, converter.ReservationToSeatRows(res)); err != nil {
		return wrapWriteErr("failed to hold reservation seats", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	affected, err := r.queries.UpdateReservation(ctx, tx, converter.ReservationToUpdateParams(res))
	if err != nil {
		return wrapWriteErr("failed to update reservation", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}

	if err := r.queries.DeleteReservationSeats(ctx, tx, res.ID()); err != nil {
		return wrapWriteErr("failed to release reservation seats", err)
	}
	if res.IsRemoved() {
		return nil
	}
	if err := r.queries.InsertReservationSeats(ctx, tx, converter.ReservationToSeatRows(res)); err != nil {
		return wrapWriteErr("failed to hold reservation seats", err)
	}
	return nil
}
