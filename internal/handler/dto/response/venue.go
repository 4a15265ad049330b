package response

import (
	"time"

	"lab-seat-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type VenueResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	TotalSeats int       `json:"totalSeats"`
	SeatLabels []string  `json:"seats"`
	ImageURL   string    `json:"imageUrl"`
}

func FromVenueViews(views []*queries.VenueView) ([]*VenueResponse, error) {
	res := make([]*VenueResponse, 0, len(views))
	if err := copier.Copy(&res, &views); err != nil {
		return nil, err
	}
	return res, nil
}

func FromVenueView(v *queries.VenueView) (*VenueResponse, error) {
	var res VenueResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

type AvailabilityResponse struct {
	VenueID    uuid.UUID `json:"venueId"`
	VenueName  string    `json:"venueName"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	TotalSeats int       `json:"totalSeats"`
	TakenSeats []string  `json:"takenSeats"`
	FreeSeats  []string  `json:"freeSeats"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	taken := v.TakenSeats
	if taken == nil {
		taken = []string{}
	}
	free := v.FreeSeats
	if free == nil {
		free = []string{}
	}
	return &AvailabilityResponse{
		VenueID:    v.VenueID,
		VenueName:  v.VenueName,
		Start:      v.Start,
		End:        v.End,
		TotalSeats: v.TotalSeats,
		TakenSeats: taken,
		FreeSeats:  free,
	}
}
