//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"lab-seat-reservation/internal/domain/reservation"
	"lab-seat-reservation/internal/infra"
	"lab-seat-reservation/internal/infra/db"
	"lab-seat-reservation/internal/infra/pgquery"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationWriteQueries struct {
	mock.Mock
}

func (m *MockReservationWriteQueries) CreateReservation(ctx context.Context, dbtx db.DBTX, arg pgquery.CreateReservationParams) error {
	return m.Called(ctx, dbtx, arg).Error(0)
}

func (m *MockReservationWriteQueries) UpdateReservation(ctx context.Context, dbtx db.DBTX, arg pgquery.UpdateReservationParams) (int64, error) {
	args := m.Called(ctx, dbtx, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationWriteQueries) DeleteReservationSeats(ctx context.Context, dbtx db.DBTX, reservationID uuid.UUID) error {
	return m.Called(ctx, dbtx, reservationID).Error(0)
}

func (m *MockReservationWriteQueries) InsertReservationSeats(ctx context.Context, dbtx db.DBTX, arg pgquery.InsertReservationSeatsParams) error {
	return m.Called(ctx, dbtx, arg).Error(0)
}

var exclusionViolation = &pgconn.PgError{Code: "23P01", ConstraintName: "reservation_seats_no_overlap"}

func testReservation(t *testing.T, removed bool) *reservation.Reservation {
	t.Helper()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	window, err := reservation.NewWindow(start, start.Add(time.Hour))
	require.NoError(t, err)

	owner := uuid.New()
	var removedAt *time.Time
	var removedBy *uuid.UUID
	if removed {
		at := start.Add(-time.Hour)
		removedAt, removedBy = &at, &owner
	}
	return reservation.ReconstructReservation(
		uuid.New(), uuid.New(), &owner,
		reservation.SeatSetOf("A1", "A2"),
		window, false, removed, removedAt, removedBy,
		start.Add(-24*time.Hour), start.Add(-24*time.Hour),
	)
}

func TestReservationRepository_Create(t *testing.T) {
	tests := []struct {
		name       string
		createErr  error
		seatsErr   error
		wantKind   infra.RepositoryErrorKind
		wantSeatsC bool
	}{
		{name: "成功", wantSeatsC: true},
		{name: "座席の排他制約違反は競合", seatsErr: exclusionViolation, wantKind: infra.KindConflict, wantSeatsC: true},
		{name: "会場が存在しない", createErr: &pgconn.PgError{Code: "23503"}, wantKind: infra.KindForeignKeyViolated},
		{name: "DBエラー", createErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := testReservation(t, false)
			q := new(MockReservationWriteQueries)
			q.On("CreateReservation", mock.Anything, mock.Anything, mock.MatchedBy(func(p pgquery.CreateReservationParams) bool {
				return p.ID == res.ID() && len(p.Seats) == 2
			})).Return(tt.createErr)
			if tt.wantSeatsC {
				q.On("InsertReservationSeats", mock.Anything, mock.Anything, mock.MatchedBy(func(p pgquery.InsertReservationSeatsParams) bool {
					return p.ReservationID == res.ID() && !p.Removed
				})).Return(tt.seatsErr)
			}

			err := NewReservationRepository(q).Create(context.Background(), nil, res)

			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
			q.AssertExpectations(t)
		})
	}
}

func TestReservationRepository_Update(t *testing.T) {
	t.Run("座席行を入れ替える", func(t *testing.T) {
		res := testReservation(t, false)
		q := new(MockReservationWriteQueries)
		q.On("UpdateReservation", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil)
		q.On("DeleteReservationSeats", mock.Anything, mock.Anything, res.ID()).Return(nil)
		q.On("InsertReservationSeats", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		err := NewReservationRepository(q).Update(context.Background(), nil, res)

		assert.NoError(t, err)
		q.AssertExpectations(t)
	})

	t.Run("削除済みは座席を解放するだけ", func(t *testing.T) {
		res := testReservation(t, true)
		q := new(MockReservationWriteQueries)
		q.On("UpdateReservation", mock.Anything, mock.Anything, mock.MatchedBy(func(p pgquery.UpdateReservationParams) bool {
			return p.Removed && p.RemovedAt.Valid && p.RemovedBy.Valid
		})).Return(int64(1), nil)
		q.On("DeleteReservationSeats", mock.Anything, mock.Anything, res.ID()).Return(nil)

		err := NewReservationRepository(q).Update(context.Background(), nil, res)

		assert.NoError(t, err)
		q.AssertNotCalled(t, "InsertReservationSeats", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("対象行がなければNotFound", func(t *testing.T) {
		q := new(MockReservationWriteQueries)
		q.On("UpdateReservation", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)

		err := NewReservationRepository(q).Update(context.Background(), nil, testReservation(t, false))

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("変更後の座席が重なれば競合", func(t *testing.T) {
		q := new(MockReservationWriteQueries)
		q.On("UpdateReservation", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil)
		q.On("DeleteReservationSeats", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		q.On("InsertReservationSeats", mock.Anything, mock.Anything, mock.Anything).Return(exclusionViolation)

		err := NewReservationRepository(q).Update(context.Background(), nil, testReservation(t, false))

		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})
}
