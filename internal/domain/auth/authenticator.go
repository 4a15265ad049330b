package auth

import (
	"context"
	"errors"

	"lab-seat-reservation/internal/domain/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user account is inactive")
)

//go:generate mockgen -source=authenticator.go -destination=../../testutil/mock/auth/authenticator_mock.go -package=authmock

// Authenticator verifies a login attempt. Unknown email and wrong password
// must both return ErrInvalidCredentials.
type Authenticator interface {
	Verify(ctx context.Context, email, password string) (*user.User, error)
}
