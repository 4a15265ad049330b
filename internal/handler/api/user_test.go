//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"lab-seat-reservation/internal/handler/api"
	resdto "lab-seat-reservation/internal/handler/dto/response"
	"lab-seat-reservation/internal/handler/middleware"
	"lab-seat-reservation/internal/testutil/builder"
	"lab-seat-reservation/internal/testutil/httptest"
	queriesmock "lab-seat-reservation/internal/testutil/mock/queries"
	"lab-seat-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type UserHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockUserQueries
}

func (s *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	h := api.NewUserHandler(s.mockQueries)
	authMw := middleware.NewAuthMiddleware(stubValidator{})

	s.router = gin.New()
	g := s.router.Group("/users", authMw.RequireAuth())
	g.GET("/search", h.Search)
	g.GET("/:id", h.Profile)
}

func TestUserHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}

func (s *UserHandlerTestSuite) TestSearch() {
	s.Run("検索語とページを渡す", func() {
		found := builder.NewUserBuilder().With(func(v *queries.UserView) { v.Email = "" }).Build()
		s.mockQueries.EXPECT().Search(gomock.Any(), "juan", 2, 10).Return([]*queries.UserView{found}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users/search?q=juan&page=2&limit=10", nil, httptest.WithBearer(studentToken))

		var res []resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Require().Len(res, 1)
		s.NotContains(rec.Body.String(), "email")
	})

	s.Run("検索語なしは400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users/search", nil, httptest.WithBearer(studentToken))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})
}

func (s *UserHandlerTestSuite) TestProfile() {
	profileUser := builder.NewUserBuilder().Build()

	s.Run("プロフィールと今後の予約を返す", func() {
		upcoming := builder.NewReservationBuilder().Build()
		s.mockQueries.EXPECT().GetProfile(gomock.Any(), otherActor, profileUser.ID).
			Return(&queries.ProfileView{User: profileUser, UpcomingReservations: []*queries.ReservationView{upcoming}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users/"+profileUser.ID.String(), nil, httptest.WithBearer(otherToken))

		var res resdto.ProfileResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(profileUser.Name, res.User.Name)
		s.Len(res.UpcomingReservations, 1)
	})

	s.Run("存在しないユーザーは404", func() {
		s.mockQueries.EXPECT().GetProfile(gomock.Any(), studentActor, profileUser.ID).Return(nil, queries.ErrUserNotFound)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users/"+profileUser.ID.String(), nil, httptest.WithBearer(studentToken))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "User not found")
	})
}
