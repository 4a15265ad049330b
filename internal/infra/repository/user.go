package repository

import (
	"context"
	"time"

	"lab-seat-reservation/internal/domain/user"
	"lab-seat-reservation/internal/infra"
	"lab-seat-reservation/internal/infra/converter"
	"lab-seat-reservation/internal/infra/db"
	"lab-seat-reservation/internal/infra/pgquery"
	"lab-seat-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserWriteQueries interface {
	CreateUser(ctx context.Context, dbtx db.DBTX, arg pgquery.CreateUserParams) (uuid.UUID, error)
	UpdateUserLastLogin(ctx context.Context, dbtx db.DBTX, id uuid.UUID, at pgtype.Timestamptz) error
}

type UserRepository struct {
	queries UserWriteQueries
}

func NewUserRepository(queries UserWriteQueries) *UserRepository {
	return &UserRepository{
		queries: queries,
	}
}

// Create fails with KindDuplicateKey when the email is already registered.
func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error) {
	id, err := r.queries.CreateUser(ctx, tx, converter.UserToCreateParams(u))
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID, at time.Time) error {
	err := r.queries.UpdateUserLastLogin(ctx, tx, userID, pgconv.TimeToPgtype(at))
	if err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	return nil
}
