package pgquery

import (
	"context"
	"strings"

	"lab-seat-reservation/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `id, email, name, password_hash, role, description, is_active, last_login, created_at, updated_at`

const createUser = `
INSERT INTO users (id, email, name, password_hash, role, description, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

type CreateUserParams struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Description  string
	IsActive     bool
}

func (q *Queries) CreateUser(ctx context.Context, dbtx db.DBTX, arg CreateUserParams) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createUser,
		arg.ID, arg.Email, arg.Name, arg.PasswordHash, arg.Role, arg.Description, arg.IsActive,
	).Scan(&id)
	return id, err
}

const findUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

func (q *Queries) FindUserByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (Users, error) {
	return collectOne[Users](ctx, dbtx, findUserByID, id)
}

const findUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = lower($1)`

func (q *Queries) FindUserByEmail(ctx context.Context, dbtx db.DBTX, email string) (Users, error) {
	return collectOne[Users](ctx, dbtx, findUserByEmail, email)
}

const updateUserLastLogin = `UPDATE users SET last_login = $2, updated_at = $2 WHERE id = $1`

func (q *Queries) UpdateUserLastLogin(ctx context.Context, dbtx db.DBTX, id uuid.UUID, at pgtype.Timestamptz) error {
	_, err := dbtx.Exec(ctx, updateUserLastLogin, id, at)
	return err
}

// Prefix match on name or email, active users only. $1 must already be
// escaped with escapeLike.
const searchUsers = `
SELECT ` + userColumns + `
FROM users
WHERE is_active
  AND (lower(name) LIKE (lower($1) || '%') ESCAPE '\'
    OR email LIKE (lower($1) || '%') ESCAPE '\')
ORDER BY lower(name), id
LIMIT $2 OFFSET $3`

type SearchUsersParams struct {
	Prefix string
	Limit  int32
	Offset int32
}

func (q *Queries) SearchUsers(ctx context.Context, dbtx db.DBTX, arg SearchUsersParams) ([]Users, error) {
	return collectAll[Users](ctx, dbtx, searchUsers, escapeLike(arg.Prefix), arg.Limit, arg.Offset)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern using ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
