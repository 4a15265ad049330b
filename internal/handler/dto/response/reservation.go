package response

import (
	"time"

	"lab-seat-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID        uuid.UUID  `json:"id"`
	VenueID   uuid.UUID  `json:"venueId"`
	VenueName string     `json:"venueName"`
	UserID    *uuid.UUID `json:"userId,omitempty"`
	UserName  *string    `json:"userName,omitempty"`
	Seats     []string   `json:"seats"`
	Start     time.Time  `json:"start"`
	End       time.Time  `json:"end"`
	Status    string     `json:"status"`
	Anonymous bool       `json:"anonymous"`
	Removed   bool       `json:"removed"`
	RemovedAt *time.Time `json:"removedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:        v.ID,
		VenueID:   v.VenueID,
		VenueName: v.VenueName,
		UserID:    v.UserID,
		UserName:  v.UserName,
		Seats:     v.Seats,
		Start:     v.Start,
		End:       v.End,
		Status:    v.Status,
		Anonymous: v.Anonymous,
		Removed:   v.Removed,
		RemovedAt: v.RemovedAt,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	res := make([]*ReservationResponse, len(views))
	for i, v := range views {
		res[i] = FromReservationView(v)
	}
	return res
}

// WriteResponse is returned by successful create, modify and removal calls.
type WriteResponse struct {
	Success     bool                 `json:"success"`
	Message     string               `json:"message"`
	Reservation *ReservationResponse `json:"reservation"`
}

func NewWriteResponse(message string, v *queries.ReservationView) *WriteResponse {
	return &WriteResponse{Success: true, Message: message, Reservation: FromReservationView(v)}
}

// ConflictResponse lists the seats that are already held in the window.
type ConflictResponse struct {
	Success          bool     `json:"success"`
	Message          string   `json:"message"`
	ConflictingSeats []string `json:"conflictingSeats"`
}

func NewConflictResponse(seats []string) *ConflictResponse {
	return &ConflictResponse{
		Success:          false,
		Message:          "Some seats are already reserved for this time window",
		ConflictingSeats: seats,
	}
}

type ReservationListResponse struct {
	Items      []*ReservationResponse `json:"items"`
	NextCursor *string                `json:"nextCursor,omitempty"`
}

func NewReservationListResponse(views []*queries.ReservationView, next *queries.Cursor) *ReservationListResponse {
	res := &ReservationListResponse{Items: FromReservationViews(views)}
	if next != nil {
		res.NextCursor = &next.After
	}
	return res
}
