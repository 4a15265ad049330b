//go:build e2e

package e2e

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	resdto "lab-seat-reservation/internal/handler/dto/response"
	"lab-seat-reservation/internal/infra/pgquery"
	"lab-seat-reservation/internal/testutil/httptest"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
)

type ReservationE2ESuite struct {
	SharedSuite
}

func TestReservationE2E(t *testing.T) {
	suite.Run(t, new(ReservationE2ESuite))
}

func (s *ReservationE2ESuite) create(token string, body map[string]any) (int, resdto.WriteResponse, resdto.ConflictResponse) {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations", body, httptest.WithBearer(token))
	var ok resdto.WriteResponse
	var conflict resdto.ConflictResponse
	switch rec.Code {
	case http.StatusCreated:
		httptest.DecodeBody(s.T(), rec, &ok)
	case http.StatusConflict:
		httptest.DecodeBody(s.T(), rec, &conflict)
	}
	return rec.Code, ok, conflict
}

func (s *ReservationE2ESuite) TestCreateAndConflict() {
	s.Run("重なる時間帯の同じ座席は409で競合座席を返す", func() {
		alice := s.registerAndLogin("alice_reyes", "student")
		bob := s.registerAndLogin("bob_santos", "student")
		start, end := slot(24, 2)

		code, created, _ := s.create(alice.Token, reservationBody(gokongweiLab, start, end, "A1", "A2"))
		s.Require().Equal(http.StatusCreated, code)
		s.Equal([]string{"A1", "A2"}, created.Reservation.Seats)

		code, _, conflict := s.create(bob.Token, reservationBody(gokongweiLab, start.Add(time.Hour), end.Add(time.Hour), "A2", "A3"))
		s.Equal(http.StatusConflict, code)
		s.Equal([]string{"A2"}, conflict.ConflictingSeats)
	})

	s.Run("終了時刻ちょうどに始まる予約は競合しない", func() {
		alice := s.registerAndLogin("alice_reyes", "student")
		start, end := slot(24, 1)

		code, _, _ := s.create(alice.Token, reservationBody(gokongweiLab, start, end, "B1"))
		s.Require().Equal(http.StatusCreated, code)

		code, _, _ = s.create(alice.Token, reservationBody(gokongweiLab, end, end.Add(time.Hour), "B1"))
		s.Equal(http.StatusCreated, code)
	})

	s.Run("別の会場の同じ座席は競合しない", func() {
		alice := s.registerAndLogin("alice_reyes", "student")
		start, end := slot(24, 1)

		code, _, _ := s.create(alice.Token, reservationBody(gokongweiLab, start, end, "C1"))
		s.Require().Equal(http.StatusCreated, code)
		code, _, _ = s.create(alice.Token, reservationBody(physicsLab, start, end, "C1"))
		s.Equal(http.StatusCreated, code)
	})

	s.Run("取り消した予約の座席は再び予約できる", func() {
		alice := s.registerAndLogin("alice_reyes", "student")
		bob := s.registerAndLogin("bob_santos", "student")
		start, end := slot(24, 1)

		code, created, _ := s.create(alice.Token, reservationBody(gokongweiLab, start, end, "D1"))
		s.Require().Equal(http.StatusCreated, code)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/reservations/"+created.Reservation.ID.String(), nil, httptest.WithBearer(alice.Token))
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

		code, _, _ = s.create(bob.Token, reservationBody(gokongweiLab, start, end, "D1"))
		s.Equal(http.StatusCreated, code)
	})

	s.Run("会場にない座席は422で予約されない", func() {
		alice := s.registerAndLogin("alice_reyes", "student")
		start, end := slot(24, 1)

		code, _, _ := s.create(alice.Token, reservationBody(physicsLab, start, end, "A1", "Z99"))
		s.Equal(http.StatusUnprocessableEntity, code)

		var held int
		err := s.DB.QueryRow(context.Background(),
			"SELECT count(*) FROM reservation_seats WHERE venue_id = $1 AND seat_label IN ('A1', 'Z99')", physicsLab).Scan(&held)
		s.Require().NoError(err)
		s.Zero(held)
	})

	s.Run("作成と同時に通知ジョブが積まれる", func() {
		alice := s.registerAndLogin("alice_reyes", "student")
		start, end := slot(24, 1)

		code, _, _ := s.create(alice.Token, reservationBody(gokongweiLab, start, end, "E1"))
		s.Require().Equal(http.StatusCreated, code)

		pending, err := pgquery.New().CountNotificationJobsByStatus(context.Background(), s.DB, "pending")
		s.Require().NoError(err)
		s.Equal(int64(1), pending)
	})
}

func (s *ReservationE2ESuite) TestConcurrentDoubleBooking() {
	const writers = 8
	start, end := slot(48, 2)

	accounts := make([]account, writers)
	for i := range accounts {
		accounts[i] = s.registerAndLogin(fmt.Sprintf("student_%02d", i), "student")
	}

	var wg sync.WaitGroup
	codes := make([]int, writers)
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations",
				reservationBody(gokongweiLab, start, end, "H5"), httptest.WithBearer(accounts[i].Token))
			codes[i] = rec.Code
		}()
	}
	wg.Wait()

	created := 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict, http.StatusServiceUnavailable:
		default:
			s.Failf("unexpected status", "status %d", code)
		}
	}
	s.Equal(1, created, "codes: %v", codes)

	var held int
	err := s.DB.QueryRow(context.Background(),
		"SELECT count(*) FROM reservation_seats WHERE venue_id = $1 AND seat_label = 'H5' AND NOT removed", gokongweiLab).Scan(&held)
	s.Require().NoError(err)
	s.Equal(1, held)
}

func (s *ReservationE2ESuite) TestExclusionConstraint() {
	ctx := context.Background()
	start, end := slot(72, 2)

	insert := func(seat string, from, to time.Time) error {
		id := uuid.New()
		_, err := s.DB.Exec(ctx,
			`INSERT INTO reservations (id, venue_id, seats, start_at, end_at) VALUES ($1, $2, $3, $4, $5)`,
			id, gokongweiLab, []string{seat}, from, to)
		if err != nil {
			return err
		}
		_, err = s.DB.Exec(ctx,
			`INSERT INTO reservation_seats (reservation_id, venue_id, seat_label, start_at, end_at) VALUES ($1, $2, $3, $4, $5)`,
			id, gokongweiLab, seat, from, to)
		return err
	}

	s.Require().NoError(insert("X1", start, end))

	err := insert("X1", start.Add(30*time.Minute), end.Add(time.Hour))
	var pgErr *pgconn.PgError
	s.Require().True(errors.As(err, &pgErr), "expected a postgres error, got %v", err)
	s.Equal("23P01", pgErr.Code)

	s.NoError(insert("X1", end, end.Add(time.Hour)), "adjacent windows share no instant")
}

func (s *ReservationE2ESuite) TestModifyAndNoShow() {
	s.Run("自分の予約は座席を変えても自分とは競合しない", func() {
		alice := s.registerAndLogin("alice_reyes", "student")
		start, end := slot(24, 2)

		code, created, _ := s.create(alice.Token, reservationBody(gokongweiLab, start, end, "F1", "F2"))
		s.Require().Equal(http.StatusCreated, code)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, "/api/reservations/"+created.Reservation.ID.String(),
			map[string]any{"seats": []string{"F2", "F3"}}, httptest.WithBearer(alice.Token))

		var res resdto.WriteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal([]string{"F2", "F3"}, res.Reservation.Seats)
	})

	s.Run("開始前の不在処理は422で学生は403", func() {
		alice := s.registerAndLogin("alice_reyes", "student")
		tech := s.registerAndLogin("lab_tech", "lab_technician")
		start, end := slot(24, 1)

		code, created, _ := s.create(alice.Token, reservationBody(gokongweiLab, start, end, "G1"))
		s.Require().Equal(http.StatusCreated, code)
		url := "/api/reservations/" + created.Reservation.ID.String() + "/no-show"

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, url, nil, httptest.WithBearer(alice.Token))
		s.Equal(http.StatusForbidden, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, url, nil, httptest.WithBearer(tech.Token))
		s.Equal(http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	})

	s.Run("匿名の予約は他の学生に利用者を見せない", func() {
		alice := s.registerAndLogin("alice_reyes", "student")
		bob := s.registerAndLogin("bob_santos", "student")
		start, end := slot(24, 1)

		body := reservationBody(gokongweiLab, start, end, "H1")
		body["anonymous"] = true
		code, _, _ := s.create(alice.Token, body)
		s.Require().Equal(http.StatusCreated, code)

		url := fmt.Sprintf("/api/venues/%s/reservations?start=%s&end=%s", gokongweiLab, start.Format(time.RFC3339), end.Format(time.RFC3339))
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, httptest.WithBearer(bob.Token))

		var res []resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Require().Len(res, 1)
		s.Nil(res[0].UserID)
		s.Nil(res[0].UserName)
	})
}
