package api

import (
	"net/http"

	reqdto "lab-seat-reservation/internal/handler/dto/request"
	resdto "lab-seat-reservation/internal/handler/dto/response"
	"lab-seat-reservation/internal/handler/middleware"
	"lab-seat-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users queries.UserQueries
}

func NewUserHandler(users queries.UserQueries) *UserHandler {
	return &UserHandler{users: users}
}

// @Summary Search users
// @Description Prefix search over name and email
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search term"
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size"
// @Success 200 {array} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Router /api/users/search [get]
func (h *UserHandler) Search(c *gin.Context) {
	var query reqdto.SearchUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}

	views, err := h.users.Search(c.Request.Context(), query.Q, query.Page, query.Limit)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromUserViews(views)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary User profile
// @Description Public profile with upcoming reservations
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} resdto.ProfileResponse
// @Failure 404 {object} httperr.Response
// @Router /api/users/{id} [get]
func (h *UserHandler) Profile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actor, _ := middleware.GetActor(c)

	view, err := h.users.GetProfile(c.Request.Context(), actor, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromProfileView(view)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
