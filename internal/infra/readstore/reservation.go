package readstore

import (
	"context"
	"time"

	"lab-seat-reservation/internal/domain/reservation"
	"lab-seat-reservation/internal/infra"
	"lab-seat-reservation/internal/infra/converter"
	"lab-seat-reservation/internal/infra/db"
	"lab-seat-reservation/internal/infra/pgquery"
	"lab-seat-reservation/internal/pkg/pgconv"
	"lab-seat-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationViewQueries interface {
	GetReservationDetail(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (pgquery.ReservationDetailRow, error)
	ListReservationsByUser(ctx context.Context, dbtx db.DBTX, arg pgquery.ListReservationsByUserParams) ([]pgquery.ReservationDetailRow, error)
	ListVenueReservationDetails(ctx context.Context, dbtx db.DBTX, arg pgquery.ListOverlappingParams) ([]pgquery.ReservationDetailRow, error)
	ListUpcomingByUser(ctx context.Context, dbtx db.DBTX, arg pgquery.ListUpcomingByUserParams) ([]pgquery.ReservationDetailRow, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      db.DBTX
}

func NewReservationReadStore(queries ReservationViewQueries, db db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationDetail(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return converter.ReservationDetailToView(row), nil
}

func (r *ReservationReadStore) ListByUser(ctx context.Context, filter queries.UserReservationFilter) ([]*queries.ReservationView, error) {
	params := pgquery.ListReservationsByUserParams{
		UserID:         filter.UserID,
		Now:            pgconv.TimeToPgtype(filter.Now),
		AfterCreatedAt: pgconv.TimePtrToPgtype(filter.AfterCreatedAt),
		AfterID:        pgconv.UUIDPtrToPgtype(filter.AfterID),
		Limit:          filter.Limit,
	}
	if filter.Status != nil {
		params.Status = pgtype.Text{String: filter.Status.String(), Valid: true}
	}

	rows, err := r.queries.ListReservationsByUser(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by user", err)
	}
	return toViews(rows), nil
}

func (r *ReservationReadStore) ListByVenue(ctx context.Context, venueID uuid.UUID, window reservation.Window) ([]*queries.ReservationView, error) {
	rows, err := r.queries.ListVenueReservationDetails(ctx, r.db, overlapParams(venueID, window, nil))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by venue", err)
	}
	return toViews(rows), nil
}

func (r *ReservationReadStore) ListUpcomingByUser(ctx context.Context, userID uuid.UUID, now time.Time, includeAnonymous bool, limit int32) ([]*queries.ReservationView, error) {
	rows, err := r.queries.ListUpcomingByUser(ctx, r.db, pgquery.ListUpcomingByUserParams{
		UserID:           userID,
		Now:              pgconv.TimeToPgtype(now),
		IncludeAnonymous: includeAnonymous,
		Limit:            limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list upcoming reservations", err)
	}
	return toViews(rows), nil
}

func toViews(rows []pgquery.ReservationDetailRow) []*queries.ReservationView {
	result := make([]*queries.ReservationView, len(rows))
	for i, row := range rows {
		result[i] = converter.ReservationDetailToView(row)
	}
	return result
}

func overlapParams(venueID uuid.UUID, window reservation.Window, excludeID *uuid.UUID) pgquery.ListOverlappingParams {
	return pgquery.ListOverlappingParams{
		VenueID:   venueID,
		StartAt:   pgconv.TimeToPgtype(window.Start()),
		EndAt:     pgconv.TimeToPgtype(window.End()),
		ExcludeID: pgconv.UUIDPtrToPgtype(excludeID),
	}
}
