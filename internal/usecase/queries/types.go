package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID        uuid.UUID  `json:"id"`
	VenueID   uuid.UUID  `json:"venue_id"`
	VenueName string     `json:"venue_name"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	UserName  *string    `json:"user_name,omitempty"`
	Seats     []string   `json:"seats"`
	Start     time.Time  `json:"start"`
	End       time.Time  `json:"end"`
	Status    string     `json:"status"`
	Anonymous bool       `json:"anonymous"`
	Removed   bool       `json:"removed"`
	RemovedAt *time.Time `json:"removed_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type VenueView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	TotalSeats int       `json:"total_seats"`
	SeatLabels []string  `json:"seat_labels"`
	ImageURL   string    `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type AvailabilityView struct {
	VenueID    uuid.UUID `json:"venue_id"`
	VenueName  string    `json:"venue_name"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	TotalSeats int       `json:"total_seats"`
	TakenSeats []string  `json:"taken_seats"`
	FreeSeats  []string  `json:"free_seats"`
}

type UserView struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email,omitempty"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProfileView struct {
	User                 *UserView          `json:"user"`
	UpcomingReservations []*ReservationView `json:"upcoming_reservations"`
}
