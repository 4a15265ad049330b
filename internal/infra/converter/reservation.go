package converter

import (
	"lab-seat-reservation/internal/domain/reservation"
	"lab-seat-reservation/internal/infra/pgquery"
	"lab-seat-reservation/internal/pkg/pgconv"
	"lab-seat-reservation/internal/usecase/queries"
	"lab-seat-reservation/internal/usecase/shared"
)

func ReservationToCreateParams(res *reservation.Reservation) pgquery.CreateReservationParams {
	window := res.Window()
	return pgquery.CreateReservationParams{
		ID:        res.ID(),
		VenueID:   res.VenueID(),
		UserID:    pgconv.UUIDPtrToPgtype(res.UserID()),
		Seats:     res.Seats().Labels(),
		StartAt:   pgconv.TimeToPgtype(window.Start()),
		EndAt:     pgconv.TimeToPgtype(window.End()),
		Anonymous: res.Anonymous(),
		CreatedAt: pgconv.TimeToPgtype(res.CreatedAt()),
	}
}

func ReservationToUpdateParams(res *reservation.Reservation) pgquery.UpdateReservationParams {
	window := res.Window()
	return pgquery.UpdateReservationParams{
		ID:        res.ID(),
		Seats:     res.Seats().Labels(),
		StartAt:   pgconv.TimeToPgtype(window.Start()),
		EndAt:     pgconv.TimeToPgtype(window.End()),
		Anonymous: res.Anonymous(),
		Removed:   res.IsRemoved(),
		RemovedAt: pgconv.TimePtrToPgtype(res.RemovedAt()),
		RemovedBy: pgconv.UUIDPtrToPgtype(res.RemovedBy()),
		UpdatedAt: pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}

// ReservationToSeatRows builds the per-seat rows guarded by the exclusion constraint.
func ReservationToSeatRows(res *reservation.Reservation) pgquery.InsertReservationSeatsParams {
	window := res.Window()
	return pgquery.InsertReservationSeatsParams{
		ReservationID: res.ID(),
		VenueID:       res.VenueID(),
		Seats:         res.Seats().Labels(),
		StartAt:       pgconv.TimeToPgtype(window.Start()),
		EndAt:         pgconv.TimeToPgtype(window.End()),
		Removed:       res.IsRemoved(),
	}
}

func ReservationToSnapshot(row pgquery.Reservations) *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:        row.ID,
		VenueID:   row.VenueID,
		UserID:    pgconv.UUIDPtrFromPgtype(row.UserID),
		Seats:     row.Seats,
		Start:     pgconv.TimeFromPgtype(row.StartAt),
		End:       pgconv.TimeFromPgtype(row.EndAt),
		Anonymous: row.Anonymous,
		Removed:   row.Removed,
		RemovedAt: pgconv.TimePtrFromPgtype(row.RemovedAt),
		RemovedBy: pgconv.UUIDPtrFromPgtype(row.RemovedBy),
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func ReservationToOccupancy(row pgquery.Reservations) (reservation.Occupancy, error) {
	window, err := reservation.NewWindow(pgconv.TimeFromPgtype(row.StartAt), pgconv.TimeFromPgtype(row.EndAt))
	if err != nil {
		return reservation.Occupancy{}, err
	}
	return reservation.Occupancy{
		ReservationID: row.ID,
		Window:        window,
		Seats:         reservation.SeatSetOf(row.Seats...),
	}, nil
}

// ReservationDetailToView leaves Status empty; the query layer classifies
// against its own clock.
func ReservationDetailToView(row pgquery.ReservationDetailRow) *queries.ReservationView {
	seats := row.Seats
	if seats == nil {
		seats = []string{}
	}
	return &queries.ReservationView{
		ID:        row.ID,
		VenueID:   row.VenueID,
		VenueName: row.VenueName,
		UserID:    pgconv.UUIDPtrFromPgtype(row.UserID),
		UserName:  pgconv.StringPtrFromPgtype(row.UserName),
		Seats:     seats,
		Start:     pgconv.TimeFromPgtype(row.StartAt),
		End:       pgconv.TimeFromPgtype(row.EndAt),
		Anonymous: row.Anonymous,
		Removed:   row.Removed,
		RemovedAt: pgconv.TimePtrFromPgtype(row.RemovedAt),
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
