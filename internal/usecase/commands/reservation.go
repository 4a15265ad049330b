package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"lab-seat-reservation/internal/domain/auth"
	"lab-seat-reservation/internal/domain/reservation"
	"lab-seat-reservation/internal/infra"
	"lab-seat-reservation/internal/pkg/clock"
	"lab-seat-reservation/internal/pkg/config"
	"lab-seat-reservation/internal/pkg/errs"
	"lab-seat-reservation/internal/pkg/metrics"
	"lab-seat-reservation/internal/usecase/queries"
	"lab-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../testutil/mock/commands/reservation_mock.go -package=commandsmock

var (
	ErrVenueNotFound       = errs.Validation(errs.New("venue not found"))
	ErrReservationNotFound = errs.Validation(errs.New("reservation not found"))
	ErrUserNotFound        = errs.Validation(errs.New("user not found"))
	ErrInvalidReservation  = errs.New("invalid reservation")
	ErrForbidden           = errs.New("operation not permitted")
	ErrVenueBusy           = errs.New("venue is busy, try again")
	errBackstopConflict    = errs.New("seat taken by concurrent writer")
)

const (
	opCreate = "create"
	opModify = "modify"
	opCancel = "cancel"
	opNoShow = "no_show"
)

type CreateReservationInput struct {
	VenueID   uuid.UUID
	Start     time.Time
	End       time.Time
	Seats     []string
	Anonymous bool
	// OnBehalfOf books for another user; lab technicians only.
	OnBehalfOf *uuid.UUID
}

type ModifyReservationInput struct {
	Start     time.Time
	End       time.Time
	Seats     []string
	Anonymous bool
}

// ReservationResult holds either the stored reservation or the seats that
// blocked it.
type ReservationResult struct {
	Reservation      *queries.ReservationView
	ConflictingSeats []string
}

func (r *ReservationResult) HasConflict() bool {
	return len(r.ConflictingSeats) > 0
}

type ReservationCommands interface {
	Create(ctx context.Context, actor auth.Actor, in CreateReservationInput) (*ReservationResult, error)
	Modify(ctx context.Context, actor auth.Actor, id uuid.UUID, in ModifyReservationInput) (*ReservationResult, error)
	Cancel(ctx context.Context, actor auth.Actor, id uuid.UUID) (*queries.ReservationView, error)
	RemoveNoShow(ctx context.Context, actor auth.Actor, id uuid.UUID) (*queries.ReservationView, error)
}

type reservationUseCaseImpl struct {
	uow                shared.UnitOfWork
	locker             shared.VenueLocker
	resolver           *ConflictResolver
	reservationFactory *reservation.Factory
	reservationQueries queries.ReservationQueries
	metrics            *metrics.Metrics
	clock              clock.Clock
	noShowGrace        time.Duration
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	locker shared.VenueLocker,
	resolver *ConflictResolver,
	reservationFactory *reservation.Factory,
	reservationQueries queries.ReservationQueries,
	m *metrics.Metrics,
	clk clock.Clock,
	cfg config.ReservationConfig,
) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:                uow,
		locker:             locker,
		resolver:           resolver,
		reservationFactory: reservationFactory,
		reservationQueries: reservationQueries,
		metrics:            m,
		clock:              clk,
		noShowGrace:        cfg.NoShowGrace,
	}
}

func (r *reservationUseCaseImpl) Create(ctx context.Context, actor auth.Actor, in CreateReservationInput) (*ReservationResult, error) {
	result, err := r.create(ctx, actor, in)
	r.observe(opCreate, metrics.OutcomeCreated, result, err)
	return result, err
}

func (r *reservationUseCaseImpl) create(ctx context.Context, actor auth.Actor, in CreateReservationInput) (*ReservationResult, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrForbidden
	}

	window, seats, err := parseRequest(in.Start, in.End, in.Seats)
	if err != nil {
		return nil, err
	}

	ownerID := actor.UserID
	if in.OnBehalfOf != nil {
		if !actor.IsTechnician() {
			return nil, errs.Wrap(ErrForbidden, "only lab technicians can book on behalf of another user")
		}
		owner, err := r.uow.CommandReads().UserByID(ctx, *in.OnBehalfOf)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		if !owner.IsActive {
			return nil, ErrUserNotFound
		}
		ownerID = owner.ID
	}

	venueSnap, err := r.findVenue(ctx, in.VenueID)
	if err != nil {
		return nil, err
	}

	res, err := r.reservationFactory.CreateReservation(venueSnap.ToDomain(), ownerID, window, seats, in.Anonymous)
	if err != nil {
		return nil, invalid(err)
	}

	var conflict reservation.Conflict
	err = r.withVenueLock(ctx, res.VenueID(), func() error {
		return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			if _, err := tx.Reads().LockVenue(ctx, res.VenueID()); err != nil {
				return err
			}

			found, err := r.resolver.CheckConflict(ctx, tx.Reads().Occupancy(), res.VenueID(), window, seats, nil)
			if err != nil {
				return err
			}
			if conflict = found; conflict.Exists() {
				return nil
			}

			if err := tx.Reservations().Create(ctx, tx.DB(), res); err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					return errs.Mark(err, errBackstopConflict)
				}
				return err
			}
			return r.enqueue(ctx, tx, shared.TopicReservationCreated, res, actor.UserID, "")
		})
	})
	if err != nil {
		if errs.Is(err, errBackstopConflict) {
			return r.conflictAfterBackstop(ctx, res.VenueID(), window, seats, nil)
		}
		return nil, err
	}
	if conflict.Exists() {
		return r.conflictResult(res.VenueID(), conflict), nil
	}

	view, err := r.reservationQueries.GetByIDSystem(ctx, res.ID())
	if err != nil {
		return nil, err
	}
	return &ReservationResult{Reservation: view}, nil
}

func (r *reservationUseCaseImpl) Modify(ctx context.Context, actor auth.Actor, id uuid.UUID, in ModifyReservationInput) (*ReservationResult, error) {
	result, err := r.modify(ctx, actor, id, in)
	r.observe(opModify, metrics.OutcomeModified, result, err)
	return result, err
}

func (r *reservationUseCaseImpl) modify(ctx context.Context, actor auth.Actor, id uuid.UUID, in ModifyReservationInput) (*ReservationResult, error) {
	window, seats, err := parseRequest(in.Start, in.End, in.Seats)
	if err != nil {
		return nil, err
	}

	current, err := r.findReservation(ctx, r.uow.CommandReads(), id, false)
	if err != nil {
		return nil, err
	}
	if !actor.Is(current.UserID) && !actor.IsTechnician() {
		return nil, ErrForbidden
	}

	venueSnap, err := r.findVenue(ctx, current.VenueID)
	if err != nil {
		return nil, err
	}
	if err := r.reservationFactory.CheckModification(venueSnap.ToDomain(), seats); err != nil {
		return nil, invalid(err)
	}

	var conflict reservation.Conflict
	err = r.withVenueLock(ctx, current.VenueID, func() error {
		return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			if _, err := tx.Reads().LockVenue(ctx, current.VenueID); err != nil {
				return err
			}

			snap, err := r.findReservation(ctx, tx.Reads(), id, true)
			if err != nil {
				return err
			}
			res, err := snap.ToDomain()
			if err != nil {
				return err
			}
			if err := res.Modify(window, seats, in.Anonymous, r.clock.Now()); err != nil {
				return invalid(err)
			}

			found, err := r.resolver.CheckConflict(ctx, tx.Reads().Occupancy(), res.VenueID(), window, seats, &id)
			if err != nil {
				return err
			}
			if conflict = found; conflict.Exists() {
				return nil
			}

			if err := tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					return errs.Mark(err, errBackstopConflict)
				}
				return err
			}
			return r.enqueue(ctx, tx, shared.TopicReservationModified, res, actor.UserID, "")
		})
	})
	if err != nil {
		if errs.Is(err, errBackstopConflict) {
			return r.conflictAfterBackstop(ctx, current.VenueID, window, seats, &id)
		}
		return nil, err
	}
	if conflict.Exists() {
		return r.conflictResult(current.VenueID, conflict), nil
	}

	view, err := r.reservationQueries.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ReservationResult{Reservation: view}, nil
}

func (r *reservationUseCaseImpl) Cancel(ctx context.Context, actor auth.Actor, id uuid.UUID) (*queries.ReservationView, error) {
	view, err := r.remove(ctx, actor, id, "canceled", func(res *reservation.Reservation, now time.Time) error {
		if !actor.Is(res.UserID()) && !actor.IsTechnician() {
			return ErrForbidden
		}
		return res.Cancel(actor.UserID, now)
	})
	r.observeRemoval(opCancel, metrics.OutcomeCanceled, err)
	return view, err
}

func (r *reservationUseCaseImpl) RemoveNoShow(ctx context.Context, actor auth.Actor, id uuid.UUID) (*queries.ReservationView, error) {
	if !actor.IsTechnician() {
		r.observeRemoval(opNoShow, metrics.OutcomeNoShow, ErrForbidden)
		return nil, errs.Wrap(ErrForbidden, "only lab technicians can remove no-shows")
	}
	view, err := r.remove(ctx, actor, id, "no_show", func(res *reservation.Reservation, now time.Time) error {
		return res.MarkNoShow(actor.UserID, now, r.noShowGrace)
	})
	r.observeRemoval(opNoShow, metrics.OutcomeNoShow, err)
	return view, err
}

// remove frees seats, so it needs the row lock on the reservation but not the venue lock.
func (r *reservationUseCaseImpl) remove(
	ctx context.Context,
	actor auth.Actor,
	id uuid.UUID,
	reason string,
	apply func(res *reservation.Reservation, now time.Time) error,
) (*queries.ReservationView, error) {
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := r.findReservation(ctx, tx.Reads(), id, true)
		if err != nil {
			return err
		}
		res, err := snap.ToDomain()
		if err != nil {
			return err
		}
		if err := apply(res, r.clock.Now()); err != nil {
			if errs.Is(err, ErrForbidden) {
				return err
			}
			return invalid(err)
		}
		if err := tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
			return err
		}
		return r.enqueue(ctx, tx, shared.TopicReservationRemoved, res, actor.UserID, reason)
	})
	if err != nil {
		return nil, err
	}
	return r.reservationQueries.GetByIDSystem(ctx, id)
}

func (r *reservationUseCaseImpl) withVenueLock(ctx context.Context, venueID uuid.UUID, fn func() error) error {
	lock, err := r.locker.LockVenue(ctx, venueID)
	if err != nil {
		if errs.Is(err, shared.ErrVenueLockUnavailable) && !errs.IsInfrastructure(err) {
			return errs.Mark(err, ErrVenueBusy)
		}
		return errs.Infrastructure(err)
	}
	defer func() {
		// The lock expires on its own; a failed release only delays the next writer.
		if releaseErr := lock.Release(context.WithoutCancel(ctx)); releaseErr != nil {
			slog.Warn("failed to release venue lock", "venue_id", venueID, "error", releaseErr.Error())
		}
	}()
	return fn()
}

// conflictAfterBackstop reports the seats once the exclusion constraint has
// rejected a write the application check let through.
func (r *reservationUseCaseImpl) conflictAfterBackstop(ctx context.Context, venueID uuid.UUID, window reservation.Window, seats reservation.SeatSet, excludeID *uuid.UUID) (*ReservationResult, error) {
	conflict, err := r.resolver.CheckConflict(ctx, r.uow.CommandReads().Occupancy(), venueID, window, seats, excludeID)
	if err != nil {
		return nil, err
	}
	if !conflict.Exists() {
		conflict.Seats = seats
	}
	return r.conflictResult(venueID, conflict), nil
}

func (r *reservationUseCaseImpl) conflictResult(venueID uuid.UUID, conflict reservation.Conflict) *ReservationResult {
	r.metrics.ObserveConflict(venueID.String(), conflict.Seats.Len())
	return &ReservationResult{ConflictingSeats: conflict.Seats.Labels()}
}

func (r *reservationUseCaseImpl) findVenue(ctx context.Context, id uuid.UUID) (*shared.VenueSnapshot, error) {
	v, err := r.uow.CommandReads().VenueByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *reservationUseCaseImpl) findReservation(ctx context.Context, reads shared.CommandReads, id uuid.UUID, forUpdate bool) (*shared.ReservationSnapshot, error) {
	var (
		snap *shared.ReservationSnapshot
		err  error
	)
	if forUpdate {
		snap, err = reads.ReservationForUpdate(ctx, id)
	} else {
		snap, err = reads.ReservationByID(ctx, id)
	}
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return snap, nil
}

type reservationEvent struct {
	Event         string     `json:"event"`
	ReservationID uuid.UUID  `json:"reservation_id"`
	VenueID       uuid.UUID  `json:"venue_id"`
	UserID        *uuid.UUID `json:"user_id,omitempty"`
	ActorID       uuid.UUID  `json:"actor_id"`
	Seats         []string   `json:"seats"`
	Start         time.Time  `json:"start"`
	End           time.Time  `json:"end"`
	Reason        string     `json:"reason,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

func (r *reservationUseCaseImpl) enqueue(ctx context.Context, tx shared.Tx, topic string, res *reservation.Reservation, actorID uuid.UUID, reason string) error {
	now := r.clock.Now()
	payload, err := json.Marshal(reservationEvent{
		Event:         topic,
		ReservationID: res.ID(),
		VenueID:       res.VenueID(),
		UserID:        res.UserID(),
		ActorID:       actorID,
		Seats:         res.Seats().Labels(),
		Start:         res.Window().Start(),
		End:           res.Window().End(),
		Reason:        reason,
		OccurredAt:    now,
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), "reservation", topic, payload, now)
}

func (r *reservationUseCaseImpl) observe(op, success string, result *ReservationResult, err error) {
	switch {
	case err != nil:
		r.metrics.ObserveReservation(op, outcomeOf(err))
	case result.HasConflict():
		r.metrics.ObserveReservation(op, metrics.OutcomeConflict)
	default:
		r.metrics.ObserveReservation(op, success)
	}
}

func (r *reservationUseCaseImpl) observeRemoval(op, success string, err error) {
	if err != nil {
		r.metrics.ObserveReservation(op, outcomeOf(err))
		return
	}
	r.metrics.ObserveReservation(op, success)
}

func outcomeOf(err error) string {
	switch {
	case errs.Is(err, ErrVenueBusy):
		return metrics.OutcomeLockFailed
	case errs.IsValidation(err), errs.Is(err, ErrInvalidReservation), errs.Is(err, ErrForbidden):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

func parseRequest(start, end time.Time, labels []string) (reservation.Window, reservation.SeatSet, error) {
	window, err := reservation.NewWindow(start, end)
	if err != nil {
		return reservation.Window{}, reservation.SeatSet{}, invalid(err)
	}
	seats, err := reservation.NewSeatSet(labels)
	if err != nil {
		return reservation.Window{}, reservation.SeatSet{}, invalid(err)
	}
	return window, seats, nil
}

// invalid classifies a domain rule violation as a validation failure while
// keeping the domain sentinel reachable through errors.Is.
func invalid(err error) error {
	return errs.Validation(errs.Mark(err, ErrInvalidReservation))
}
