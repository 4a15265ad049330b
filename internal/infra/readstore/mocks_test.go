//go:build unit

package readstore

import (
	"context"

	"lab-seat-reservation/internal/infra/db"
	"lab-seat-reservation/internal/infra/pgquery"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockReservationQueries struct {
	mock.Mock
}

func (m *MockReservationQueries) GetReservationDetail(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (pgquery.ReservationDetailRow, error) {
	args := m.Called(ctx, dbtx, id)
	return args.Get(0).(pgquery.ReservationDetailRow), args.Error(1)
}

func (m *MockReservationQueries) ListReservationsByUser(ctx context.Context, dbtx db.DBTX, arg pgquery.ListReservationsByUserParams) ([]pgquery.ReservationDetailRow, error) {
	args := m.Called(ctx, dbtx, arg)
	return args.Get(0).([]pgquery.ReservationDetailRow), args.Error(1)
}

func (m *MockReservationQueries) ListVenueReservationDetails(ctx context.Context, dbtx db.DBTX, arg pgquery.ListOverlappingParams) ([]pgquery.ReservationDetailRow, error) {
	args := m.Called(ctx, dbtx, arg)
	return args.Get(0).([]pgquery.ReservationDetailRow), args.Error(1)
}

func (m *MockReservationQueries) ListUpcomingByUser(ctx context.Context, dbtx db.DBTX, arg pgquery.ListUpcomingByUserParams) ([]pgquery.ReservationDetailRow, error) {
	args := m.Called(ctx, dbtx, arg)
	return args.Get(0).([]pgquery.ReservationDetailRow), args.Error(1)
}

func (m *MockReservationQueries) ListOverlappingReservations(ctx context.Context, dbtx db.DBTX, arg pgquery.ListOverlappingParams) ([]pgquery.Reservations, error) {
	args := m.Called(ctx, dbtx, arg)
	return args.Get(0).([]pgquery.Reservations), args.Error(1)
}

func (m *MockReservationQueries) ListSeatsTaken(ctx context.Context, dbtx db.DBTX, arg pgquery.ListOverlappingParams) ([]string, error) {
	args := m.Called(ctx, dbtx, arg)
	return args.Get(0).([]string), args.Error(1)
}

type MockUserReadQueries struct {
	mock.Mock
}

func (m *MockUserReadQueries) FindUserByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (pgquery.Users, error) {
	args := m.Called(ctx, dbtx, id)
	return args.Get(0).(pgquery.Users), args.Error(1)
}

func (m *MockUserReadQueries) SearchUsers(ctx context.Context, dbtx db.DBTX, arg pgquery.SearchUsersParams) ([]pgquery.Users, error) {
	args := m.Called(ctx, dbtx, arg)
	return args.Get(0).([]pgquery.Users), args.Error(1)
}
