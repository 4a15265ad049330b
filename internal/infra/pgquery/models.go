package pgquery

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Users struct {
	ID           uuid.UUID          `db:"id"`
	Email        string             `db:"email"`
	Name         string             `db:"name"`
	PasswordHash string             `db:"password_hash"`
	Role         string             `db:"role"`
	Description  string             `db:"description"`
	IsActive     bool               `db:"is_active"`
	LastLogin    pgtype.Timestamptz `db:"last_login"`
	CreatedAt    pgtype.Timestamptz `db:"created_at"`
	UpdatedAt    pgtype.Timestamptz `db:"updated_at"`
}

type Venues struct {
	ID         uuid.UUID          `db:"id"`
	Name       string             `db:"name"`
	Location   string             `db:"location"`
	TotalSeats int32              `db:"total_seats"`
	SeatLabels []string           `db:"seat_labels"`
	ImageURL   string             `db:"image_url"`
	CreatedAt  pgtype.Timestamptz `db:"created_at"`
	UpdatedAt  pgtype.Timestamptz `db:"updated_at"`
}

type Reservations struct {
	ID        uuid.UUID          `db:"id"`
	VenueID   uuid.UUID          `db:"venue_id"`
	UserID    pgtype.UUID        `db:"user_id"`
	Seats     []string           `db:"seats"`
	StartAt   pgtype.Timestamptz `db:"start_at"`
	EndAt     pgtype.Timestamptz `db:"end_at"`
	Anonymous bool               `db:"anonymous"`
	Removed   bool               `db:"removed"`
	RemovedAt pgtype.Timestamptz `db:"removed_at"`
	RemovedBy pgtype.UUID        `db:"removed_by"`
	CreatedAt pgtype.Timestamptz `db:"created_at"`
	UpdatedAt pgtype.Timestamptz `db:"updated_at"`
}

// ReservationDetailRow is a reservation joined with its venue and owner names.
type ReservationDetailRow struct {
	Reservations
	VenueName string      `db:"venue_name"`
	UserName  pgtype.Text `db:"user_name"`
}

type NotificationJobs struct {
	ID        uuid.UUID          `db:"id"`
	Kind      string             `db:"kind"`
	Topic     string             `db:"topic"`
	Payload   []byte             `db:"payload"`
	RunAt     pgtype.Timestamptz `db:"run_at"`
	Attempts  int32              `db:"attempts"`
	Status    string             `db:"status"`
	LastError pgtype.Text        `db:"last_error"`
	CreatedAt pgtype.Timestamptz `db:"created_at"`
	UpdatedAt pgtype.Timestamptz `db:"updated_at"`
}
