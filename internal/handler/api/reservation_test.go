//go:build unit

package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"lab-seat-reservation/internal/domain/auth"
	"lab-seat-reservation/internal/domain/reservation"
	"lab-seat-reservation/internal/domain/user"
	"lab-seat-reservation/internal/handler/api"
	reqdto "lab-seat-reservation/internal/handler/dto/request"
	resdto "lab-seat-reservation/internal/handler/dto/response"
	"lab-seat-reservation/internal/handler/middleware"
	"lab-seat-reservation/internal/pkg/errs"
	"lab-seat-reservation/internal/testutil"
	"lab-seat-reservation/internal/testutil/builder"
	"lab-seat-reservation/internal/testutil/httptest"
	commandsmock "lab-seat-reservation/internal/testutil/mock/commands"
	queriesmock "lab-seat-reservation/internal/testutil/mock/queries"
	"lab-seat-reservation/internal/usecase/commands"
	"lab-seat-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
}

func (s *ReservationHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	reqdto.RegisterValidators()
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	h := api.NewReservationHandler(s.mockCommands, s.mockQueries)
	authMw := middleware.NewAuthMiddleware(stubValidator{})

	s.router = gin.New()
	g := s.router.Group("/reservations", authMw.RequireAuth())
	g.POST("", h.Create)
	g.GET("", h.ListMine)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Modify)
	g.DELETE("/:id", h.Cancel)
	g.POST("/:id/no-show", authMw.RequireRoleAtLeast(user.RoleLabTechnician), h.RemoveNoShow)
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) TestCreate() {
	b := builder.NewReservationBuilder()
	view := b.Build()

	s.Run("予約できたら201と予約内容を返す", func() {
		s.mockCommands.EXPECT().
			Create(gomock.Any(), studentActor, gomock.Any()).
			DoAndReturn(func(_ any, _ auth.Actor, in commands.CreateReservationInput) (*commands.ReservationResult, error) {
				s.Equal(view.VenueID, in.VenueID)
				s.Equal([]string{"A1", "A2"}, in.Seats)
				s.True(in.Start.Equal(view.Start))
				return &commands.ReservationResult{Reservation: view}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", b.CreateBody(), httptest.WithBearer(studentToken))

		var res resdto.WriteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.True(res.Success)
		s.Equal(view.ID, res.Reservation.ID)
	})

	s.Run("座席が埋まっていれば409で競合座席を返す", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), studentActor, gomock.Any()).
			Return(&commands.ReservationResult{ConflictingSeats: []string{"A2"}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", b.CreateBody(), httptest.WithBearer(studentToken))

		s.Equal(http.StatusConflict, rec.Code)
		var res resdto.ConflictResponse
		httptest.DecodeBody(s.T(), rec, &res)
		s.False(res.Success)
		s.Equal([]string{"A2"}, res.ConflictingSeats)
	})

	s.Run("トークンがなければ401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", b.CreateBody())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("リクエストの形式エラーは400", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{"venueIdなし", testutil.Field("venueId", nil)},
			{"startなし", testutil.Field("start", nil)},
			{"座席が空", testutil.Field("seats", []string{})},
			{"座席ラベルが不正", testutil.Field("seats", []string{"a 1"})},
			{"時刻がRFC 3339でない", testutil.Field("start", "2026/03/02 10:00")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), b.CreateBody(), tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", body, httptest.WithBearer(studentToken))
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("座席数の上限はユースケースが判定して422", func() {
		seats := make([]string, 0, 60)
		for i := 1; i <= 60; i++ {
			seats = append(seats, fmt.Sprintf("S%d", i))
		}
		s.mockCommands.EXPECT().
			Create(gomock.Any(), studentActor, gomock.Any()).
			DoAndReturn(func(_ any, _ auth.Actor, in commands.CreateReservationInput) (*commands.ReservationResult, error) {
				s.Len(in.Seats, 60)
				return nil, errs.Validation(errs.Mark(reservation.ErrTooManySeats, commands.ErrInvalidReservation))
			})

		body := testutil.DtoMap(s.T(), b.CreateBody(), testutil.Field("seats", seats))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", body, httptest.WithBearer(studentToken))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid reservation")
	})

	s.Run("ユースケースのエラーをステータスに対応付ける", func() {
		cases := []struct {
			name   string
			err    error
			status int
			msg    string
		}{
			{"不正な予約", errs.Wrap(commands.ErrInvalidReservation, "window"), http.StatusUnprocessableEntity, "Invalid reservation"},
			{"会場なし", commands.ErrVenueNotFound, http.StatusNotFound, "Venue not found"},
			{"代理予約の権限なし", commands.ErrForbidden, http.StatusForbidden, "Operation not permitted"},
			{"会場ロック中", commands.ErrVenueBusy, http.StatusServiceUnavailable, "Venue is busy"},
			{"インフラ障害", errs.Infrastructure(errs.New("db down")), http.StatusInternalServerError, "Internal server error"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), studentActor, gomock.Any()).Return(nil, tc.err)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", b.CreateBody(), httptest.WithBearer(studentToken))
				httptest.AssertErrorResponse(s.T(), rec, tc.status, tc.msg)
			})
		}
	})
}

func (s *ReservationHandlerTestSuite) TestListMine() {
	view := builder.NewReservationBuilder().Build()

	s.Run("ステータスとカーソルを渡して次ページのカーソルを返す", func() {
		next := &queries.Cursor{After: "next-page"}
		s.mockQueries.EXPECT().
			ListMine(gomock.Any(), studentActor, gomock.Any(), &queries.Cursor{After: "abc"}, 5).
			DoAndReturn(func(_ any, _ auth.Actor, status any, _ *queries.Cursor, _ int) ([]*queries.ReservationView, *queries.Cursor, error) {
				s.NotNil(status)
				return []*queries.ReservationView{view}, next, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?status=pending&after=abc&limit=5", nil, httptest.WithBearer(studentToken))

		var res resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Len(res.Items, 1)
		s.Require().NotNil(res.NextCursor)
		s.Equal("next-page", *res.NextCursor)
	})

	s.Run("不明なステータスは400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?status=removed", nil, httptest.WithBearer(studentToken))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})

	s.Run("壊れたカーソルは400", func() {
		s.mockQueries.EXPECT().ListMine(gomock.Any(), studentActor, nil, gomock.Any(), 0).
			Return(nil, nil, queries.ErrInvalidCursor)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations?after=broken", nil, httptest.WithBearer(studentToken))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *ReservationHandlerTestSuite) TestGet() {
	view := builder.NewReservationBuilder().Build()
	url := fmt.Sprintf("/reservations/%s", view.ID)

	s.Run("自分の予約を返す", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), studentActor, view.ID).Return(view, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, httptest.WithBearer(studentToken))

		var res resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(view.Seats, res.Seats)
	})

	s.Run("他人の予約は403", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), otherActor, view.ID).Return(nil, queries.ErrReservationAccess)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, httptest.WithBearer(otherToken))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Operation not permitted")
	})

	s.Run("IDがUUIDでなければ400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, httptest.WithBearer(studentToken))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

func (s *ReservationHandlerTestSuite) TestModify() {
	existing := builder.NewReservationBuilder().Build()
	url := fmt.Sprintf("/reservations/%s", existing.ID)

	s.Run("省略した項目は現在の値を引き継ぐ", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), studentActor, existing.ID).Return(existing, nil)
		s.mockCommands.EXPECT().
			Modify(gomock.Any(), studentActor, existing.ID, commands.ModifyReservationInput{
				Start:     existing.Start,
				End:       existing.End,
				Seats:     []string{"B1"},
				Anonymous: existing.Anonymous,
			}).
			Return(&commands.ReservationResult{Reservation: existing}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"seats": []string{"B1"}}, httptest.WithBearer(studentToken))

		var res resdto.WriteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("Reservation updated", res.Message)
	})

	s.Run("変更先が埋まっていれば409", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), studentActor, existing.ID).Return(existing, nil)
		s.mockCommands.EXPECT().Modify(gomock.Any(), studentActor, existing.ID, gomock.Any()).
			Return(&commands.ReservationResult{ConflictingSeats: []string{"A1"}}, nil)

		end := existing.End.Add(30 * time.Minute).Format(time.RFC3339)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"end": end}, httptest.WithBearer(studentToken))

		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("予約が見つからなければ404で更新しない", func() {
		missing := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), studentActor, missing).Return(nil, queries.ErrReservationNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/reservations/"+missing.String(), map[string]any{"anonymous": true}, httptest.WithBearer(studentToken))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

func (s *ReservationHandlerTestSuite) TestCancel() {
	view := builder.NewReservationBuilder().With(func(v *queries.ReservationView) { v.Removed = true }).Build()
	url := fmt.Sprintf("/reservations/%s", view.ID)

	s.Run("取り消した予約を返す", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), studentActor, view.ID).Return(view, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, httptest.WithBearer(studentToken))

		var res resdto.WriteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.True(res.Reservation.Removed)
	})

	s.Run("終了済みの予約は422", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), studentActor, view.ID).
			Return(nil, errs.Wrap(commands.ErrInvalidReservation, "reservation has already ended"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, httptest.WithBearer(studentToken))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid reservation")
	})
}

func (s *ReservationHandlerTestSuite) TestRemoveNoShow() {
	view := builder.NewReservationBuilder().Build()
	url := fmt.Sprintf("/reservations/%s/no-show", view.ID)

	s.Run("技術員は不在の予約を外せる", func() {
		s.mockCommands.EXPECT().RemoveNoShow(gomock.Any(), technicianActor, view.ID).Return(view, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, httptest.WithBearer(technicianToken))
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("学生は403でユースケースを呼ばない", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, httptest.WithBearer(studentToken))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("猶予時間内は422", func() {
		s.mockCommands.EXPECT().RemoveNoShow(gomock.Any(), technicianActor, view.ID).
			Return(nil, errs.Wrap(commands.ErrInvalidReservation, "grace period has not passed"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, httptest.WithBearer(technicianToken))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid reservation")
	})
}
