package queries

import (
	"context"
	"strings"

	"lab-seat-reservation/internal/domain/auth"
	"lab-seat-reservation/internal/infra"
	"lab-seat-reservation/internal/pkg/clock"
	"lab-seat-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=user.go -destination=../../testutil/mock/queries/user_mock.go -package=queriesmock

var (
	ErrUserNotFound = errs.Validation(errs.New("user not found"))
	ErrUserInactive = errs.New("user inactive")
)

const profileUpcomingLimit = 10

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	Search(ctx context.Context, prefix string, limit, offset int32) ([]*UserView, error)
}

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error)
	GetProfile(ctx context.Context, actor auth.Actor, id uuid.UUID) (*ProfileView, error)
	Search(ctx context.Context, query string, page, limit int) ([]*UserView, error)
}

type userQueriesImpl struct {
	readStore    UserReadStore
	reservations ReservationReadStore
	clock        clock.Clock
}

func NewUserQueries(readStore UserReadStore, reservations ReservationReadStore, clk clock.Clock) UserQueries {
	return &userQueriesImpl{
		readStore:    readStore,
		reservations: reservations,
		clock:        clk,
	}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	user, err := q.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return user, nil
}

// GetProfile returns the public profile. Anonymous reservations and the email
// address are only included for the user themself or a technician.
func (q *userQueriesImpl) GetProfile(ctx context.Context, actor auth.Actor, id uuid.UUID) (*ProfileView, error) {
	user, err := q.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	privileged := actor.Is(&id) || actor.IsTechnician()
	if !user.IsActive && !privileged {
		return nil, ErrUserNotFound
	}
	if !privileged {
		user.Email = ""
	}

	now := q.clock.Now()
	upcoming, err := q.reservations.ListUpcomingByUser(ctx, id, now, privileged, profileUpcomingLimit)
	if err != nil {
		return nil, err
	}
	for _, v := range upcoming {
		classifyView(v, now)
	}

	return &ProfileView{User: user, UpcomingReservations: upcoming}, nil
}

func (q *userQueriesImpl) Search(ctx context.Context, query string, page, limit int) ([]*UserView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*UserView{}, nil
	}
	limit = ValidateLimit(limit)
	if page < 1 {
		page = 1
	}

	users, err := q.readStore.Search(ctx, query, int32(limit), int32((page-1)*limit))
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.Email = ""
	}
	return users, nil
}

func (q *userQueriesImpl) findUser(ctx context.Context, id uuid.UUID) (*UserView, error) {
	user, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
