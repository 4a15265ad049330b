package request

import (
	"time"

	"lab-seat-reservation/internal/domain/reservation"
	"lab-seat-reservation/internal/pkg/patch"
	"lab-seat-reservation/internal/usecase/commands"
	"lab-seat-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	VenueID    uuid.UUID  `json:"venueId" binding:"required"`
	Start      time.Time  `json:"start" binding:"required"`
	End        time.Time  `json:"end" binding:"required"`
	Seats      []string   `json:"seats" binding:"required,min=1,dive,seatlabel"`
	Anonymous  bool       `json:"anonymous"`
	OnBehalfOf *uuid.UUID `json:"onBehalfOf,omitempty"`
}

func (r *CreateReservationRequest) ToInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		VenueID:    r.VenueID,
		Start:      r.Start,
		End:        r.End,
		Seats:      r.Seats,
		Anonymous:  r.Anonymous,
		OnBehalfOf: r.OnBehalfOf,
	}
}

// ModifyReservationRequest is a partial update; omitted fields keep their
// current value.
type ModifyReservationRequest struct {
	Start     *time.Time `json:"start"`
	End       *time.Time `json:"end"`
	Seats     []string   `json:"seats" binding:"omitempty,min=1,dive,seatlabel"`
	Anonymous *bool      `json:"anonymous"`
}

func (r *ModifyReservationRequest) ToInput(existing *queries.ReservationView) commands.ModifyReservationInput {
	return commands.ModifyReservationInput{
		Start:     patch.Coalesce(r.Start, existing.Start),
		End:       patch.Coalesce(r.End, existing.End),
		Seats:     patch.CoalesceSlice(r.Seats, existing.Seats),
		Anonymous: patch.Coalesce(r.Anonymous, existing.Anonymous),
	}
}

type ListReservationsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending active expired"`
	After  string `form:"after"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

func (q *ListReservationsQuery) StatusFilter() *reservation.Status {
	if q.Status == "" {
		return nil
	}
	status, ok := reservation.ParseStatus(q.Status)
	if !ok {
		return nil
	}
	return &status
}

func (q *ListReservationsQuery) Cursor() *queries.Cursor {
	if q.After == "" {
		return nil
	}
	return &queries.Cursor{After: q.After}
}

// WindowQuery reads ?start=&end= as RFC 3339 timestamps.
type WindowQuery struct {
	Start time.Time `form:"start" binding:"required"`
	End   time.Time `form:"end" binding:"required"`
}

func (q *WindowQuery) ToWindow() (reservation.Window, error) {
	return reservation.NewWindow(q.Start, q.End)
}
