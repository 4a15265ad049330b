package shared

import (
	"context"

	"lab-seat-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=locks.go -destination=../../testutil/mock/shared/locks_mock.go -package=sharedmock

var ErrVenueLockUnavailable = errs.New("venue lock unavailable")

type Lock interface {
	Release(ctx context.Context) error
}

// VenueLocker serializes reservation writers for one venue across instances.
type VenueLocker interface {
	LockVenue(ctx context.Context, venueID uuid.UUID) (Lock, error)
}

// RememberTokenStore keeps opaque remember-me tokens server-side with an
// explicit expiry. Consume is single-use.
type RememberTokenStore interface {
	Issue(ctx context.Context, userID uuid.UUID) (token string, err error)
	Consume(ctx context.Context, token string) (uuid.UUID, error)
	Revoke(ctx context.Context, token string) error
}

var ErrRememberTokenNotFound = errs.New("remember token not found or expired")
