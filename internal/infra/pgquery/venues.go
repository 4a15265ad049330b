package pgquery

import (
	"context"

	"lab-seat-reservation/internal/infra/db"

	"github.com/google/uuid"
)

const venueColumns = `id, name, location, total_seats, seat_labels, image_url, created_at, updated_at`

const listVenues = `SELECT ` + venueColumns + ` FROM venues ORDER BY name, id`

func (q *Queries) ListVenues(ctx context.Context, dbtx db.DBTX) ([]Venues, error) {
	return collectAll[Venues](ctx, dbtx, listVenues)
}

const findVenueByID = `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`

func (q *Queries) FindVenueByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (Venues, error) {
	return collectOne[Venues](ctx, dbtx, findVenueByID, id)
}

// Serializes reservation writers per venue for the rest of the transaction.
const lockVenueByID = findVenueByID + ` FOR UPDATE`

func (q *Queries) LockVenueByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (Venues, error) {
	return collectOne[Venues](ctx, dbtx, lockVenueByID, id)
}
