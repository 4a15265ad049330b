package shared

import (
	"time"

	"lab-seat-reservation/internal/domain/reservation"
	"lab-seat-reservation/internal/domain/user"
	"lab-seat-reservation/internal/domain/venue"

	"github.com/google/uuid"
)

// Write-side snapshots keep commands independent of the read-side views.

type VenueSnapshot struct {
	ID         uuid.UUID
	Name       string
	Location   string
	SeatLabels []string
	ImageURL   string
}

func (s *VenueSnapshot) ToDomain() *venue.Venue {
	return venue.ReconstructVenue(s.ID, s.Name, s.Location, s.SeatLabels, s.ImageURL, time.Time{}, time.Time{})
}

type ReservationSnapshot struct {
	ID        uuid.UUID
	VenueID   uuid.UUID
	UserID    *uuid.UUID
	Seats     []string
	Start     time.Time
	End       time.Time
	Anonymous bool
	Removed   bool
	RemovedAt *time.Time
	RemovedBy *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *ReservationSnapshot) ToDomain() (*reservation.Reservation, error) {
	window, err := reservation.NewWindow(s.Start, s.End)
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(
		s.ID, s.VenueID, s.UserID,
		reservation.SeatSetOf(s.Seats...),
		window,
		s.Anonymous, s.Removed,
		s.RemovedAt, s.RemovedBy,
		s.CreatedAt, s.UpdatedAt,
	), nil
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         user.Role
	Description  string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s *UserSnapshot) ToDomain() *user.User {
	return user.ReconstructUser(s.ID, s.Email, s.Name, s.PasswordHash, s.Role, s.Description, s.IsActive, s.CreatedAt, s.UpdatedAt)
}

// NotificationJob is one outbox row.
type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int32
}

// Outbox topics.
const (
	TopicReservationCreated  = "reservation.created"
	TopicReservationModified = "reservation.modified"
	TopicReservationRemoved  = "reservation.removed"
)
