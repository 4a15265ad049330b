package auth

import (
	"context"

	"lab-seat-reservation/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of a use case. The zero value is anonymous.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

func NewActor(userID uuid.UUID, role user.Role) Actor {
	return Actor{UserID: userID, Role: role}
}

func (a Actor) IsAuthenticated() bool {
	return a.UserID != uuid.Nil
}

func (a Actor) IsTechnician() bool {
	return a.IsAuthenticated() && a.Role == user.RoleLabTechnician
}

func (a Actor) HasRoleAtLeast(min user.Role) bool {
	return a.IsAuthenticated() && a.Role.Level() >= min.Level()
}

// Is reports whether the actor is the given user.
func (a Actor) Is(userID *uuid.UUID) bool {
	return a.IsAuthenticated() && userID != nil && *userID == a.UserID
}

type actorKey struct{}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFrom(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok && actor.IsAuthenticated()
}
