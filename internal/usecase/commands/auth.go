package commands

import (
	"context"
	"log/slog"
	"time"

	"lab-seat-reservation/internal/domain/auth"
	"lab-seat-reservation/internal/domain/user"
	"lab-seat-reservation/internal/infra"
	"lab-seat-reservation/internal/pkg/clock"
	"lab-seat-reservation/internal/pkg/config"
	"lab-seat-reservation/internal/pkg/errs"
	"lab-seat-reservation/internal/pkg/jwt"
	"lab-seat-reservation/internal/pkg/password"
	"lab-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=auth.go -destination=../../testutil/mock/commands/auth_mock.go -package=commandsmock

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrEmailTaken           = errs.New("email already registered")
	ErrInvalidRegistration  = errs.New("invalid registration")
	ErrRememberTokenInvalid = errs.New("remember-me token invalid or expired")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type RegisterInput struct {
	Email       string
	Name        string
	Password    string
	Role        string
	Description string
}

type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

type LoginResult struct {
	UserID               uuid.UUID
	Role                 user.Role
	AccessToken          string
	AccessTokenExpiresAt time.Time
	// Empty unless a remember-me token was requested or rotated.
	RememberToken          string
	RememberTokenExpiresAt time.Time
}

type AuthCommands interface {
	Register(ctx context.Context, in RegisterInput) (uuid.UUID, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	// Refresh trades a remember-me token for a new access token and rotates it.
	Refresh(ctx context.Context, rememberToken string) (*LoginResult, error)
	Logout(ctx context.Context, rememberToken string) error
}

type authCommandsImpl struct {
	uow           shared.UnitOfWork
	authenticator auth.Authenticator
	rememberMe    shared.RememberTokenStore
	jwtService    *jwt.Service
	clock         clock.Clock
	cfg           config.AuthConfig
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	authenticator auth.Authenticator,
	rememberMe shared.RememberTokenStore,
	jwtService *jwt.Service,
	clk clock.Clock,
	cfg config.AuthConfig,
) AuthCommands {
	return &authCommandsImpl{
		uow:           uow,
		authenticator: authenticator,
		rememberMe:    rememberMe,
		jwtService:    jwtService,
		clock:         clk,
		cfg:           cfg,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, in RegisterInput) (uuid.UUID, error) {
	u, err := a.newUser(in)
	if err != nil {
		return uuid.Nil, errs.Validation(errs.Mark(err, ErrInvalidRegistration))
	}

	var id uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, err := tx.Users().Create(ctx, tx.DB(), u)
		if err != nil {
			return err
		}
		id = created
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, ErrEmailTaken
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (a *authCommandsImpl) newUser(in RegisterInput) (*user.User, error) {
	email, err := user.NewEmailInDomain(in.Email, a.cfg.AllowedEmailDomain)
	if err != nil {
		return nil, err
	}
	name, err := user.NewName(in.Name)
	if err != nil {
		return nil, err
	}
	pw, err := user.NewPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(in.Role)
	if err != nil {
		return nil, err
	}
	desc, err := user.NewDescription(in.Description)
	if err != nil {
		return nil, err
	}

	hash, err := password.HashPassword(pw.Value())
	if err != nil {
		return nil, err
	}
	return user.NewUser(email, name, hash, role, desc), nil
}

func (a *authCommandsImpl) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	u, err := a.authenticator.Verify(ctx, in.Email, in.Password)
	if err != nil {
		switch {
		case errs.Is(err, auth.ErrInvalidCredentials):
			return nil, ErrInvalidCredentials
		case errs.Is(err, auth.ErrInactiveUser):
			return nil, ErrUserInactive
		default:
			return nil, err
		}
	}

	result, err := a.issue(ctx, u.ID(), u.Role(), in.RememberMe)
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, tx.DB(), u.ID(), a.clock.Now())
	})
	if err != nil {
		// login already succeeded; only the audit column is stale
		slog.Warn("failed to update last login", "user_id", u.ID(), "error", err.Error())
	}

	return result, nil
}

func (a *authCommandsImpl) Refresh(ctx context.Context, rememberToken string) (*LoginResult, error) {
	if rememberToken == "" {
		return nil, ErrRememberTokenInvalid
	}

	userID, err := a.rememberMe.Consume(ctx, rememberToken)
	if err != nil {
		if errs.Is(err, shared.ErrRememberTokenNotFound) {
			return nil, ErrRememberTokenInvalid
		}
		return nil, errs.Infrastructure(err)
	}

	snap, err := a.uow.CommandReads().UserByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRememberTokenInvalid
		}
		return nil, err
	}
	if !snap.IsActive {
		return nil, ErrUserInactive
	}

	return a.issue(ctx, snap.ID, snap.Role, true)
}

func (a *authCommandsImpl) Logout(ctx context.Context, rememberToken string) error {
	if rememberToken == "" {
		return nil
	}
	if err := a.rememberMe.Revoke(ctx, rememberToken); err != nil {
		return errs.Infrastructure(err)
	}
	return nil
}

func (a *authCommandsImpl) issue(ctx context.Context, userID uuid.UUID, role user.Role, rememberMe bool) (*LoginResult, error) {
	accessToken, expiresAt, err := a.jwtService.GenerateAccessToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	result := &LoginResult{
		UserID:               userID,
		Role:                 role,
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt,
	}
	if !rememberMe {
		return result, nil
	}

	token, err := a.rememberMe.Issue(ctx, userID)
	if err != nil {
		return nil, errs.Infrastructure(errs.Mark(err, ErrTokenGeneration))
	}
	result.RememberToken = token
	result.RememberTokenExpiresAt = a.clock.Now().Add(a.cfg.RememberMeDuration)
	return result, nil
}
