package usecase

import (
	"context"

	"lab-seat-reservation/internal/domain/auth"
	"lab-seat-reservation/internal/domain/user"
	"lab-seat-reservation/internal/infra"
	"lab-seat-reservation/internal/pkg/password"
	"lab-seat-reservation/internal/usecase/shared"
)

type passwordAuthenticator struct {
	uow shared.UnitOfWork
}

// NewPasswordAuthenticator checks email and password against the stored
// bcrypt hash.
func NewPasswordAuthenticator(uow shared.UnitOfWork) auth.Authenticator {
	return &passwordAuthenticator{uow: uow}
}

func (a *passwordAuthenticator) Verify(ctx context.Context, email, plain string) (*user.User, error) {
	credentials, err := auth.NewCredentials(email, plain)
	if err != nil {
		password.CompareDummy(plain)
		return nil, auth.ErrInvalidCredentials
	}

	snap, err := a.uow.CommandReads().UserByEmail(ctx, credentials.Email().Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// same cost as a real comparison so response time does not reveal the account
			password.CompareDummy(plain)
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := password.ComparePassword(snap.PasswordHash, credentials.Password().Value()); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	if !snap.IsActive {
		return nil, auth.ErrInactiveUser
	}

	return snap.ToDomain(), nil
}
