package readstore

import (
	"context"

	"lab-seat-reservation/internal/infra"
	"lab-seat-reservation/internal/infra/converter"
	"lab-seat-reservation/internal/infra/db"
	"lab-seat-reservation/internal/infra/pgquery"
	"lab-seat-reservation/internal/pkg/pgconv"
	"lab-seat-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type VenueReadQueries interface {
	ListVenues(ctx context.Context, dbtx db.DBTX) ([]pgquery.Venues, error)
	FindVenueByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (pgquery.Venues, error)
}

type VenueReadStore struct {
	queries VenueReadQueries
	db      db.DBTX
}

func NewVenueReadStore(queries VenueReadQueries, db db.DBTX) *VenueReadStore {
	return &VenueReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *VenueReadStore) FindAll(ctx context.Context) ([]*queries.VenueView, error) {
	rows, err := r.queries.ListVenues(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list venues", err)
	}

	result := make([]*queries.VenueView, 0, len(rows))
	for _, row := range rows {
		view, err := converter.VenueToView(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert venue", err)
		}
		result = append(result, view)
	}
	return result, nil
}

func (r *VenueReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.VenueView, error) {
	row, err := r.queries.FindVenueByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("venue not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find venue by ID", err)
	}

	view, err := converter.VenueToView(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert venue", err)
	}
	return view, nil
}
