package api

import (
	"net/http"

	"lab-seat-reservation/internal/handler/httperr"
	"lab-seat-reservation/internal/pkg/errs"
	"lab-seat-reservation/internal/usecase/commands"
	"lab-seat-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// Checked in order; the first match wins. Marks added with errs.Mark are only
// visible through errs.Is.
var errorMappings = []errorMapping{
	{commands.ErrForbidden, http.StatusForbidden, "Operation not permitted"},
	{queries.ErrReservationAccess, http.StatusForbidden, "Operation not permitted"},
	{commands.ErrVenueNotFound, http.StatusNotFound, "Venue not found"},
	{queries.ErrVenueNotFound, http.StatusNotFound, "Venue not found"},
	{commands.ErrReservationNotFound, http.StatusNotFound, "Reservation not found"},
	{queries.ErrReservationNotFound, http.StatusNotFound, "Reservation not found"},
	{commands.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{queries.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{commands.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{commands.ErrRememberTokenInvalid, http.StatusUnauthorized, "Session expired, please log in again"},
	{commands.ErrUserInactive, http.StatusForbidden, "Account is inactive"},
	{queries.ErrUserInactive, http.StatusForbidden, "Account is inactive"},
	{commands.ErrEmailTaken, http.StatusConflict, "Email is already registered"},
	{commands.ErrVenueBusy, http.StatusServiceUnavailable, "Venue is busy, please retry"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, "Invalid cursor"},
	{commands.ErrInvalidReservation, http.StatusUnprocessableEntity, "Invalid reservation"},
	{commands.ErrInvalidRegistration, http.StatusUnprocessableEntity, "Invalid registration"},
}

// abortWithUseCaseError maps a use case error onto the HTTP error envelope.
// Domain rule violations carry their message as detail.
func abortWithUseCaseError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			var detail any
			if m.status == http.StatusUnprocessableEntity {
				detail = gin.H{"reason": rootMessage(err)}
			}
			httperr.AbortWithError(c, m.status, err, m.message, detail)
			return
		}
	}

	switch {
	case errs.IsValidation(err):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func rootMessage(err error) string {
	return errs.UnwrapAll(err).Error()
}

func abortBadRequest(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
}
