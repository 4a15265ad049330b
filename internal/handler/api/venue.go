package api

import (
	"net/http"

	reqdto "lab-seat-reservation/internal/handler/dto/request"
	resdto "lab-seat-reservation/internal/handler/dto/response"
	"lab-seat-reservation/internal/handler/middleware"
	"lab-seat-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type VenueHandler struct {
	venues       queries.VenueQueries
	reservations queries.ReservationQueries
}

func NewVenueHandler(venues queries.VenueQueries, reservations queries.ReservationQueries) *VenueHandler {
	return &VenueHandler{venues: venues, reservations: reservations}
}

// @Summary List venues
// @Tags venues
// @Produce json
// @Success 200 {array} resdto.VenueResponse
// @Router /api/venues [get]
func (h *VenueHandler) List(c *gin.Context) {
	views, err := h.venues.List(c.Request.Context())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromVenueViews(views)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get venue
// @Tags venues
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} resdto.VenueResponse
// @Failure 404 {object} httperr.Response
// @Router /api/venues/{id} [get]
func (h *VenueHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	view, err := h.venues.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromVenueView(view)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Seat availability
// @Description Taken and free seats at a venue for a window
// @Tags venues
// @Produce json
// @Param id path string true "Venue ID"
// @Param start query string true "RFC 3339 start"
// @Param end query string true "RFC 3339 end"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/venues/{id}/availability [get]
func (h *VenueHandler) Availability(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var query reqdto.WindowQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortBadRequest(c, err, "start and end are required RFC 3339 timestamps")
		return
	}
	window, err := query.ToWindow()
	if err != nil {
		abortBadRequest(c, err, "start must be before end")
		return
	}

	view, err := h.reservations.Availability(c.Request.Context(), id, window)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Venue reservations
// @Description Everyone holding a seat at the venue in the window. Holders of anonymous reservations are hidden from other students.
// @Tags venues
// @Produce json
// @Param id path string true "Venue ID"
// @Param start query string true "RFC 3339 start"
// @Param end query string true "RFC 3339 end"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/venues/{id}/reservations [get]
func (h *VenueHandler) Reservations(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var query reqdto.WindowQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortBadRequest(c, err, "start and end are required RFC 3339 timestamps")
		return
	}
	window, err := query.ToWindow()
	if err != nil {
		abortBadRequest(c, err, "start must be before end")
		return
	}

	actor, _ := middleware.GetActor(c)
	views, err := h.reservations.ListByVenue(c.Request.Context(), actor, id, window)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}
