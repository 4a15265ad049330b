//go:build e2e

package e2e

import (
	"net/http"
	"time"

	resdto "lab-seat-reservation/internal/handler/dto/response"
	"lab-seat-reservation/internal/testutil/httptest"

	"github.com/google/uuid"
)

var (
	gokongweiLab = uuid.MustParse("5b0c1f6e-2a47-4a8e-9a1e-0f6c2f1d7a01")
	physicsLab   = uuid.MustParse("5b0c1f6e-2a47-4a8e-9a1e-0f6c2f1d7a02")
)

const defaultPassword = "password123"

type account struct {
	ID    string
	Email string
	Token string
}

// registerAndLogin creates an account through the API and returns a bearer token.
func (s *SharedSuite) registerAndLogin(local, role string) account {
	email := local + "@dlsu.edu.ph"
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    email,
		"name":     local,
		"password": defaultPassword,
		"role":     role,
	})
	var reg resdto.RegisterResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &reg)

	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    email,
		"password": defaultPassword,
	})
	var login resdto.LoginResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &login)
	s.Require().NotEmpty(login.AccessToken)

	return account{ID: reg.ID, Email: email, Token: login.AccessToken}
}

// slot returns an hour-aligned window starting hoursAhead from now.
func slot(hoursAhead, hours int) (time.Time, time.Time) {
	start := time.Now().UTC().Truncate(time.Hour).Add(time.Duration(hoursAhead) * time.Hour)
	return start, start.Add(time.Duration(hours) * time.Hour)
}

func reservationBody(venueID uuid.UUID, start, end time.Time, seats ...string) map[string]any {
	return map[string]any{
		"venueId": venueID.String(),
		"start":   start.Format(time.RFC3339),
		"end":     end.Format(time.RFC3339),
		"seats":   seats,
	}
}
