//go:build unit || e2e

package builder

import (
	"fmt"
	"time"

	"lab-seat-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

var BaseTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type ReservationBuilder struct {
	view queries.ReservationView
}

func NewReservationBuilder() *ReservationBuilder {
	userID := uuid.New()
	name := "Juan Dela Cruz"
	return &ReservationBuilder{view: queries.ReservationView{
		ID:        uuid.New(),
		VenueID:   uuid.New(),
		VenueName: "Gokongwei 304A",
		UserID:    &userID,
		UserName:  &name,
		Seats:     []string{"A1", "A2"},
		Start:     BaseTime.Add(time.Hour),
		End:       BaseTime.Add(2 * time.Hour),
		Status:    "pending",
		CreatedAt: BaseTime,
		UpdatedAt: BaseTime,
	}}
}

func (b *ReservationBuilder) With(mutate func(*queries.ReservationView)) *ReservationBuilder {
	mutate(&b.view)
	return b
}

func (b *ReservationBuilder) Build() *queries.ReservationView {
	v := b.view
	v.Seats = append([]string(nil), b.view.Seats...)
	return &v
}

// CreateBody is the JSON body of a create request for the built reservation.
func (b *ReservationBuilder) CreateBody() map[string]any {
	return map[string]any{
		"venueId":   b.view.VenueID.String(),
		"start":     b.view.Start.Format(time.RFC3339),
		"end":       b.view.End.Format(time.RFC3339),
		"seats":     b.view.Seats,
		"anonymous": b.view.Anonymous,
	}
}

type UserBuilder struct {
	view queries.UserView
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{view: queries.UserView{
		ID:        uuid.New(),
		Email:     "juan_delacruz@dlsu.edu.ph",
		Name:      "Juan Dela Cruz",
		Role:      "student",
		IsActive:  true,
		CreatedAt: BaseTime,
	}}
}

func (b *UserBuilder) With(mutate func(*queries.UserView)) *UserBuilder {
	mutate(&b.view)
	return b
}

func (b *UserBuilder) Build() *queries.UserView {
	v := b.view
	return &v
}

func NewVenue() *queries.VenueView {
	return &queries.VenueView{
		ID:         uuid.New(),
		Name:       "Gokongwei 304A",
		Location:   "Gokongwei Hall, 3rd floor",
		TotalSeats: 40,
		SeatLabels: seatGrid(8, 5),
		CreatedAt:  BaseTime,
		UpdatedAt:  BaseTime,
	}
}

// seatGrid labels seats row by row: A1..A<cols>, B1.. and so on.
func seatGrid(rows, cols int) []string {
	labels := make([]string, 0, rows*cols)
	for r := range rows {
		for c := 1; c <= cols; c++ {
			labels = append(labels, fmt.Sprintf("%c%d", 'A'+r, c))
		}
	}
	return labels
}
