package api

import (
	"net/http"

	reqdto "lab-seat-reservation/internal/handler/dto/request"
	resdto "lab-seat-reservation/internal/handler/dto/response"
	"lab-seat-reservation/internal/handler/middleware"
	"lab-seat-reservation/internal/usecase/commands"
	"lab-seat-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Reserve one or more seats at a venue for a time window. Seats already held return 409 with the conflicting seats.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.WriteResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} resdto.ConflictResponse
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	if result.HasConflict() {
		c.JSON(http.StatusConflict, resdto.NewConflictResponse(result.ConflictingSeats))
		return
	}

	c.JSON(http.StatusCreated, resdto.NewWriteResponse("Reservation created", result.Reservation))
}

// @Summary List my reservations
// @Description Keyset-paginated list of the caller's reservations, newest first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, active or expired"
// @Param after query string false "Cursor from the previous page"
// @Param limit query int false "Page size (1-200)"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/reservations [get]
func (h *ReservationHandler) ListMine(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var query reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortBadRequest(c, err, "Invalid query")
		return
	}

	views, next, err := h.q.ListMine(c.Request.Context(), actor, query.StatusFilter(), query.Cursor(), query.Limit)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewReservationListResponse(views, next))
}

// @Summary Get reservation
// @Description Get a reservation owned by the caller; technicians may read any
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actor, _ := middleware.GetActor(c)

	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Modify reservation
// @Description Change window, seats or the anonymous flag. Omitted fields keep their current value.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ModifyReservationRequest true "Modify request"
// @Success 200 {object} resdto.WriteResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} resdto.ConflictResponse
// @Failure 422 {object} httperr.Response
// @Router /api/reservations/{id} [put]
func (h *ReservationHandler) Modify(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actor, _ := middleware.GetActor(c)

	var req reqdto.ModifyReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}

	existing, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	result, err := h.cmds.Modify(c.Request.Context(), actor, id, req.ToInput(existing))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	if result.HasConflict() {
		c.JSON(http.StatusConflict, resdto.NewConflictResponse(result.ConflictingSeats))
		return
	}

	c.JSON(http.StatusOK, resdto.NewWriteResponse("Reservation updated", result.Reservation))
}

// @Summary Cancel reservation
// @Description Soft-delete a reservation that has not ended yet
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.WriteResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/reservations/{id} [delete]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actor, _ := middleware.GetActor(c)

	view, err := h.cmds.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewWriteResponse("Reservation canceled", view))
}

// @Summary Remove no-show
// @Description Lab technicians free the seats of a holder who did not arrive within the grace period
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.WriteResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/reservations/{id}/no-show [post]
func (h *ReservationHandler) RemoveNoShow(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actor, _ := middleware.GetActor(c)

	view, err := h.cmds.RemoveNoShow(c.Request.Context(), actor, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewWriteResponse("No-show reservation removed", view))
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortBadRequest(c, err, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}
