package reservation

import "github.com/google/uuid"

// Occupancy is the part of a stored reservation the conflict check needs.
type Occupancy struct {
	ReservationID uuid.UUID
	Window        Window
	Seats         SeatSet
}

type Conflict struct {
	Seats SeatSet
}

func (c Conflict) Exists() bool {
	return !c.Seats.IsEmpty()
}

// DetectConflict reports the proposed seats already held by another
// occupancy whose window overlaps. exclude skips the reservation being edited.
func DetectConflict(window Window, seats SeatSet, existing []Occupancy, exclude *uuid.UUID) Conflict {
	var taken SeatSet
	for _, o := range existing {
		if exclude != nil && o.ReservationID == *exclude {
			continue
		}
		if !o.Window.Overlaps(window) {
			continue
		}
		shared := o.Seats.Intersect(seats)
		if shared.IsEmpty() {
			continue
		}
		taken = taken.Union(shared)
	}
	return Conflict{Seats: taken}
}
