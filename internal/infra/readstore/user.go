package readstore

import (
	"context"
	"strings"

	"lab-seat-reservation/internal/infra"
	"lab-seat-reservation/internal/infra/converter"
	"lab-seat-reservation/internal/infra/db"
	"lab-seat-reservation/internal/infra/pgquery"
	"lab-seat-reservation/internal/pkg/pgconv"
	"lab-seat-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadQueries interface {
	FindUserByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (pgquery.Users, error)
	SearchUsers(ctx context.Context, dbtx db.DBTX, arg pgquery.SearchUsersParams) ([]pgquery.Users, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      db.DBTX
}

func NewUserReadStore(queries UserReadQueries, db db.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	row, err := r.queries.FindUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	view, err := converter.UserToView(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert user", err)
	}
	return view, nil
}

func (r *UserReadStore) Search(ctx context.Context, prefix string, limit, offset int32) ([]*queries.UserView, error) {
	rows, err := r.queries.SearchUsers(ctx, r.db, pgquery.SearchUsersParams{
		Prefix: escapeLike(prefix),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search users", err)
	}

	result := make([]*queries.UserView, 0, len(rows))
	for _, row := range rows {
		view, err := converter.UserToView(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert user", err)
		}
		result = append(result, view)
	}
	return result, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
