//go:build unit

package api_test

import (
	"lab-seat-reservation/internal/domain/auth"
	"lab-seat-reservation/internal/domain/user"
	"lab-seat-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	studentToken    = "student-token"
	otherToken      = "other-student-token"
	technicianToken = "technician-token"
)

var (
	studentActor    = auth.NewActor(uuid.MustParse("11111111-1111-1111-1111-111111111111"), user.RoleStudent)
	otherActor      = auth.NewActor(uuid.MustParse("22222222-2222-2222-2222-222222222222"), user.RoleStudent)
	technicianActor = auth.NewActor(uuid.MustParse("33333333-3333-3333-3333-333333333333"), user.RoleLabTechnician)
)

// stubValidator maps fixed bearer tokens to actors.
type stubValidator struct{}

func (stubValidator) ValidateToken(token string) (auth.Actor, error) {
	switch token {
	case studentToken:
		return studentActor, nil
	case otherToken:
		return otherActor, nil
	case technicianToken:
		return technicianActor, nil
	}
	return auth.Actor{}, errs.New("token is invalid")
}
