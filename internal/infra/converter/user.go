package converter

import (
	"lab-seat-reservation/internal/domain/user"
	"lab-seat-reservation/internal/infra/pgquery"
	"lab-seat-reservation/internal/pkg/pgconv"
	"lab-seat-reservation/internal/usecase/queries"
	"lab-seat-reservation/internal/usecase/shared"

	"github.com/jinzhu/copier"
)

func UserToCreateParams(u *user.User) pgquery.CreateUserParams {
	return pgquery.CreateUserParams{
		ID:           u.ID(),
		Email:        u.Email().Value(),
		Name:         u.Name().Value(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		Description:  u.Description().Value(),
		IsActive:     u.IsActive(),
	}
}

func UserToView(row pgquery.Users) (*queries.UserView, error) {
	view := &queries.UserView{}
	if err := copier.CopyWithOption(view, &row, rowCopyOption); err != nil {
		return nil, err
	}
	return view, nil
}

func UserToSnapshot(row pgquery.Users) *shared.UserSnapshot {
	return &shared.UserSnapshot{
		ID:           row.ID,
		Email:        row.Email,
		Name:         row.Name,
		Role:         user.Role(row.Role),
		Description:  row.Description,
		PasswordHash: row.PasswordHash,
		IsActive:     row.IsActive,
		CreatedAt:    pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:    pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
