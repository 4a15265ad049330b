package response

import (
	"time"

	"lab-seat-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email,omitempty"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromUserView(v *queries.UserView) (*UserResponse, error) {
	var res UserResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromUserViews(views []*queries.UserView) ([]*UserResponse, error) {
	res := make([]*UserResponse, 0, len(views))
	if err := copier.Copy(&res, &views); err != nil {
		return nil, err
	}
	return res, nil
}

type ProfileResponse struct {
	User                 *UserResponse          `json:"user"`
	UpcomingReservations []*ReservationResponse `json:"upcomingReservations"`
}

func FromProfileView(v *queries.ProfileView) (*ProfileResponse, error) {
	u, err := FromUserView(v.User)
	if err != nil {
		return nil, err
	}
	return &ProfileResponse{
		User:                 u,
		UpcomingReservations: FromReservationViews(v.UpcomingReservations),
	}, nil
}
