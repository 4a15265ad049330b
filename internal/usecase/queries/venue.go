package queries

import (
	"context"

	"lab-seat-reservation/internal/infra"
	"lab-seat-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=venue.go -destination=../../testutil/mock/queries/venue_mock.go -package=queriesmock

var ErrVenueNotFound = errs.Validation(errs.New("venue not found"))

type VenueReadStore interface {
	FindAll(ctx context.Context) ([]*VenueView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*VenueView, error)
}

type VenueQueries interface {
	List(ctx context.Context) ([]*VenueView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*VenueView, error)
}

type venueQueriesImpl struct {
	readStore VenueReadStore
}

func NewVenueQueries(readStore VenueReadStore) VenueQueries {
	return &venueQueriesImpl{readStore: readStore}
}

func (q *venueQueriesImpl) List(ctx context.Context) ([]*VenueView, error) {
	return q.readStore.FindAll(ctx)
}

func (q *venueQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*VenueView, error) {
	v, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}
