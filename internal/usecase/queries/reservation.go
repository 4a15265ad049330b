package queries

import (
	"context"
	"slices"
	"time"

	"lab-seat-reservation/internal/domain/auth"
	"lab-seat-reservation/internal/domain/reservation"
	"lab-seat-reservation/internal/infra"
	"lab-seat-reservation/internal/pkg/clock"
	"lab-seat-reservation/internal/pkg/errs"
	"lab-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../testutil/mock/queries/reservation_mock.go -package=queriesmock

var (
	ErrReservationNotFound = errs.Validation(errs.New("reservation not found"))
	ErrReservationAccess   = errs.New("reservation access denied")
)

type UserReservationFilter struct {
	UserID         uuid.UUID
	Status         *reservation.Status
	Now            time.Time
	AfterCreatedAt *time.Time
	AfterID        *uuid.UUID
	Limit          int32
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, filter UserReservationFilter) ([]*ReservationView, error)
	ListByVenue(ctx context.Context, venueID uuid.UUID, window reservation.Window) ([]*ReservationView, error)
	ListUpcomingByUser(ctx context.Context, userID uuid.UUID, now time.Time, includeAnonymous bool, limit int32) ([]*ReservationView, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actor auth.Actor, id uuid.UUID) (*ReservationView, error)
	// GetByIDSystem skips ownership checks; for read-after-write in commands.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListMine(ctx context.Context, actor auth.Actor, status *reservation.Status, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error)
	ListByVenue(ctx context.Context, actor auth.Actor, venueID uuid.UUID, window reservation.Window) ([]*ReservationView, error)
	Availability(ctx context.Context, venueID uuid.UUID, window reservation.Window) (*AvailabilityView, error)
}

type reservationQueriesImpl struct {
	repo      ReservationReadStore
	venues    VenueReadStore
	occupancy shared.OccupancyReadModel
	clock     clock.Clock
}

func NewReservationQueries(repo ReservationReadStore, venues VenueReadStore, occupancy shared.OccupancyReadModel, clk clock.Clock) ReservationQueries {
	return &reservationQueriesImpl{
		repo:      repo,
		venues:    venues,
		occupancy: occupancy,
		clock:     clk,
	}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor auth.Actor, id uuid.UUID) (*ReservationView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Is(view.UserID) && !actor.IsTechnician() {
		return nil, ErrReservationAccess
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	classifyView(view, q.clock.Now())
	return view, nil
}

func (q *reservationQueriesImpl) ListMine(ctx context.Context, actor auth.Actor, status *reservation.Status, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error) {
	if !actor.IsAuthenticated() {
		return nil, nil, ErrReservationAccess
	}

	limit = ValidateLimit(limit)
	now := q.clock.Now()
	filter := UserReservationFilter{
		UserID: actor.UserID,
		Status: status,
		Now:    now,
		Limit:  int32(limit + 1),
	}
	if cursor != nil && cursor.After != "" {
		lastCreatedAt, lastID, err := DecodeAfterCursor(cursor.After)
		if err != nil {
			return nil, nil, errs.Wrap(ErrInvalidCursor, err.Error())
		}
		filter.AfterCreatedAt = &lastCreatedAt
		filter.AfterID = &lastID
	}

	rows, err := q.repo.ListByUser(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	for _, row := range rows {
		classifyView(row, now)
	}

	page, next := pageOf(rows, limit, func(v *ReservationView) (time.Time, uuid.UUID) {
		return v.CreatedAt, v.ID
	})
	return page, next, nil
}

// ListByVenue shows every holder of a seat in the window. Owner identity is
// withheld on anonymous reservations unless the viewer owns it or is a technician.
func (q *reservationQueriesImpl) ListByVenue(ctx context.Context, actor auth.Actor, venueID uuid.UUID, window reservation.Window) ([]*ReservationView, error) {
	if _, err := q.findVenue(ctx, venueID); err != nil {
		return nil, err
	}

	rows, err := q.repo.ListByVenue(ctx, venueID, window)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	for _, row := range rows {
		classifyView(row, now)
		if row.Anonymous && !actor.Is(row.UserID) && !actor.IsTechnician() {
			row.UserID = nil
			row.UserName = nil
		}
	}
	return rows, nil
}

func (q *reservationQueriesImpl) Availability(ctx context.Context, venueID uuid.UUID, window reservation.Window) (*AvailabilityView, error) {
	venue, err := q.findVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	taken, err := q.occupancy.ListSeatsTaken(ctx, venueID, window, nil)
	if err != nil {
		return nil, err
	}

	takenLabels := taken.Labels()
	free := make([]string, 0, len(venue.SeatLabels))
	for _, label := range venue.SeatLabels {
		if !slices.Contains(takenLabels, label) {
			free = append(free, label)
		}
	}

	return &AvailabilityView{
		VenueID:    venue.ID,
		VenueName:  venue.Name,
		Start:      window.Start(),
		End:        window.End(),
		TotalSeats: venue.TotalSeats,
		TakenSeats: takenLabels,
		FreeSeats:  free,
	}, nil
}

func (q *reservationQueriesImpl) findVenue(ctx context.Context, venueID uuid.UUID) (*VenueView, error) {
	venue, err := q.venues.FindByID(ctx, venueID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return venue, nil
}

func classifyView(view *ReservationView, now time.Time) {
	window, err := reservation.NewWindow(view.Start, view.End)
	if err != nil {
		return
	}
	view.Status = reservation.Classify(window, now).String()
}
