package pgquery

import (
	"context"

	"lab-seat-reservation/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `r.id, r.venue_id, r.user_id, r.seats, r.start_at, r.end_at, r.anonymous,
  r.removed, r.removed_at, r.removed_by, r.created_at, r.updated_at`

const reservationDetailSelect = `
SELECT ` + reservationColumns + `, v.name AS venue_name, u.name AS user_name
FROM reservations r
JOIN venues v ON v.id = r.venue_id
LEFT JOIN users u ON u.id = r.user_id`

const createReservation = `
INSERT INTO reservations (id, venue_id, user_id, seats, start_at, end_at, anonymous, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`

type CreateReservationParams struct {
	ID        uuid.UUID
	VenueID   uuid.UUID
	UserID    pgtype.UUID
	Seats     []string
	StartAt   pgtype.Timestamptz
	EndAt     pgtype.Timestamptz
	Anonymous bool
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) CreateReservation(ctx context.Context, dbtx db.DBTX, arg CreateReservationParams) error {
	_, err := dbtx.Exec(ctx, createReservation,
		arg.ID, arg.VenueID, arg.UserID, arg.Seats, arg.StartAt, arg.EndAt, arg.Anonymous, arg.CreatedAt,
	)
	return err
}

const updateReservation = `
UPDATE reservations
SET seats = $2, start_at = $3, end_at = $4, anonymous = $5,
    removed = $6, removed_at = $7, removed_by = $8, updated_at = $9
WHERE id = $1`

type UpdateReservationParams struct {
	ID        uuid.UUID
	Seats     []string
	StartAt   pgtype.Timestamptz
	EndAt     pgtype.Timestamptz
	Anonymous bool
	Removed   bool
	RemovedAt pgtype.Timestamptz
	RemovedBy pgtype.UUID
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) UpdateReservation(ctx context.Context, dbtx db.DBTX, arg UpdateReservationParams) (int64, error) {
	tag, err := dbtx.Exec(ctx, updateReservation,
		arg.ID, arg.Seats, arg.StartAt, arg.EndAt, arg.Anonymous,
		arg.Removed, arg.RemovedAt, arg.RemovedBy, arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteReservationSeats = `DELETE FROM reservation_seats WHERE reservation_id = $1`

func (q *Queries) DeleteReservationSeats(ctx context.Context, dbtx db.DBTX, reservationID uuid.UUID) error {
	_, err := dbtx.Exec(ctx, deleteReservationSeats, reservationID)
	return err
}

const insertReservationSeats = `
INSERT INTO reservation_seats (reservation_id, venue_id, seat_label, start_at, end_at, removed)
SELECT $1, $2, s.label, $4, $5, $6
FROM unnest($3::text[]) AS s(label)`

type InsertReservationSeatsParams struct {
	ReservationID uuid.UUID
	VenueID       uuid.UUID
	Seats         []string
	StartAt       pgtype.Timestamptz
	EndAt         pgtype.Timestamptz
	Removed       bool
}

func (q *Queries) InsertReservationSeats(ctx context.Context, dbtx db.DBTX, arg InsertReservationSeatsParams) error {
	_, err := dbtx.Exec(ctx, insertReservationSeats,
		arg.ReservationID, arg.VenueID, arg.Seats, arg.StartAt, arg.EndAt, arg.Removed,
	)
	return err
}

const findReservationByID = `SELECT ` + reservationColumns + ` FROM reservations r WHERE r.id = $1`

func (q *Queries) FindReservationByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (Reservations, error) {
	return collectOne[Reservations](ctx, dbtx, findReservationByID, id)
}

func (q *Queries) FindReservationByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (Reservations, error) {
	return collectOne[Reservations](ctx, dbtx, findReservationByID+` FOR UPDATE`, id)
}

// Half-open overlap: existing.start < proposed.end AND existing.end > proposed.start.
const overlapFilter = `
WHERE r.venue_id = $1
  AND NOT r.removed
  AND r.start_at < $3
  AND r.end_at > $2
  AND ($4::uuid IS NULL OR r.id <> $4)`

type ListOverlappingParams struct {
	VenueID   uuid.UUID
	StartAt   pgtype.Timestamptz
	EndAt     pgtype.Timestamptz
	ExcludeID pgtype.UUID
}

func (p ListOverlappingParams) args() []any {
	return []any{p.VenueID, p.StartAt, p.EndAt, p.ExcludeID}
}

const listOverlappingReservations = `SELECT ` + reservationColumns + ` FROM reservations r` + overlapFilter + `
ORDER BY r.start_at, r.id`

func (q *Queries) ListOverlappingReservations(ctx context.Context, dbtx db.DBTX, arg ListOverlappingParams) ([]Reservations, error) {
	return collectAll[Reservations](ctx, dbtx, listOverlappingReservations, arg.args()...)
}

const listSeatsTaken = `
SELECT DISTINCT s.label
FROM reservations r, unnest(r.seats) AS s(label)` + overlapFilter + `
ORDER BY s.label`

func (q *Queries) ListSeatsTaken(ctx context.Context, dbtx db.DBTX, arg ListOverlappingParams) ([]string, error) {
	rows, err := dbtx.Query(ctx, listSeatsTaken, arg.args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := make([]string, 0)
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

const listVenueReservationDetails = reservationDetailSelect + overlapFilter + `
ORDER BY r.start_at, r.id`

func (q *Queries) ListVenueReservationDetails(ctx context.Context, dbtx db.DBTX, arg ListOverlappingParams) ([]ReservationDetailRow, error) {
	return collectAll[ReservationDetailRow](ctx, dbtx, listVenueReservationDetails, arg.args()...)
}

const getReservationDetail = reservationDetailSelect + ` WHERE r.id = $1`

func (q *Queries) GetReservationDetail(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (ReservationDetailRow, error) {
	return collectOne[ReservationDetailRow](ctx, dbtx, getReservationDetail, id)
}

// Status mirrors the domain classifier: the end instant still counts as active.
const listReservationsByUser = reservationDetailSelect + `
WHERE r.user_id = $1
  AND NOT r.removed
  AND (
    $2::text IS NULL
    OR ($2 = 'pending' AND r.start_at > $3)
    OR ($2 = 'active' AND r.start_at <= $3 AND r.end_at >= $3)
    OR ($2 = 'expired' AND r.end_at < $3)
  )
  AND ($4::timestamptz IS NULL OR (r.created_at, r.id) < ($4, $5::uuid))
ORDER BY r.created_at DESC, r.id DESC
LIMIT $6`

type ListReservationsByUserParams struct {
	UserID         uuid.UUID
	Status         pgtype.Text
	Now            pgtype.Timestamptz
	AfterCreatedAt pgtype.Timestamptz
	AfterID        pgtype.UUID
	Limit          int32
}

func (q *Queries) ListReservationsByUser(ctx context.Context, dbtx db.DBTX, arg ListReservationsByUserParams) ([]ReservationDetailRow, error) {
	return collectAll[ReservationDetailRow](ctx, dbtx, listReservationsByUser,
		arg.UserID, arg.Status, arg.Now, arg.AfterCreatedAt, arg.AfterID, arg.Limit,
	)
}

const listUpcomingByUser = reservationDetailSelect + `
WHERE r.user_id = $1
  AND NOT r.removed
  AND r.end_at >= $2
  AND ($3 OR NOT r.anonymous)
ORDER BY r.start_at, r.id
LIMIT $4`

type ListUpcomingByUserParams struct {
	UserID           uuid.UUID
	Now              pgtype.Timestamptz
	IncludeAnonymous bool
	Limit            int32
}

func (q *Queries) ListUpcomingByUser(ctx context.Context, dbtx db.DBTX, arg ListUpcomingByUserParams) ([]ReservationDetailRow, error) {
	return collectAll[ReservationDetailRow](ctx, dbtx, listUpcomingByUser,
		arg.UserID, arg.Now, arg.IncludeAnonymous, arg.Limit,
	)
}
