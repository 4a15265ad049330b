package shared

import (
	"context"
	"time"

	"lab-seat-reservation/internal/domain/reservation"
	"lab-seat-reservation/internal/domain/user"
	"lab-seat-reservation/internal/infra/db"

	"github.com/google/uuid"
)

//go:generate mockgen -source=uow.go -destination=../../testutil/mock/shared/uow_mock.go -package=sharedmock

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	VenueByID(ctx context.Context, id uuid.UUID) (*VenueSnapshot, error)
	// LockVenue holds the venue row until the surrounding transaction ends.
	LockVenue(ctx context.Context, id uuid.UUID) (*VenueSnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	ReservationForUpdate(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	Occupancy() OccupancyReadModel
}

type ReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	// Update replaces window, seats, display flag and removal state.
	Update(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
	ClaimDue(ctx context.Context, tx db.DBTX, now time.Time, limit int32) ([]NotificationJob, error)
	MarkSent(ctx context.Context, tx db.DBTX, job NotificationJob, now time.Time) error
	Reschedule(ctx context.Context, tx db.DBTX, job NotificationJob, lastErr string, runAt, now time.Time) error
	MarkFailed(ctx context.Context, tx db.DBTX, job NotificationJob, lastErr string, now time.Time) error
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID, at time.Time) error
}
