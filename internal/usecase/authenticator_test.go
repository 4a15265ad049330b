//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"lab-seat-reservation/internal/domain/auth"
	"lab-seat-reservation/internal/domain/user"
	"lab-seat-reservation/internal/infra"
	"lab-seat-reservation/internal/pkg/clock"
	"lab-seat-reservation/internal/pkg/errs"
	"lab-seat-reservation/internal/pkg/jwt"
	"lab-seat-reservation/internal/pkg/password"
	sharedmock "lab-seat-reservation/internal/testutil/mock/shared"
	"lab-seat-reservation/internal/usecase"
	"lab-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordAuthenticator_Verify(t *testing.T) {
	const (
		email = "juan_delacruz@dlsu.edu.ph"
		plain = "password123"
	)
	hash, err := password.HashPasswordWithCost(plain, bcrypt.MinCost)
	require.NoError(t, err)

	setup := func(t *testing.T) (*sharedmock.MockCommandReads, auth.Authenticator) {
		ctrl := gomock.NewController(t)
		uow := sharedmock.NewMockUnitOfWork(ctrl)
		reads := sharedmock.NewMockCommandReads(ctrl)
		uow.EXPECT().CommandReads().Return(reads).AnyTimes()
		return reads, usecase.NewPasswordAuthenticator(uow)
	}
	snapshot := func(active bool) *shared.UserSnapshot {
		return &shared.UserSnapshot{
			ID:           uuid.New(),
			Email:        email,
			Name:         "Juan dela Cruz",
			Role:         user.RoleStudent,
			PasswordHash: hash,
			IsActive:     active,
		}
	}

	t.Run("正しい資格情報", func(t *testing.T) {
		reads, authenticator := setup(t)
		snap := snapshot(true)
		reads.EXPECT().UserByEmail(gomock.Any(), email).Return(snap, nil)

		u, err := authenticator.Verify(context.Background(), " Juan_DelaCruz@dlsu.edu.ph ", plain)

		require.NoError(t, err)
		assert.Equal(t, snap.ID, u.ID())
	})

	t.Run("パスワード違い", func(t *testing.T) {
		reads, authenticator := setup(t)
		reads.EXPECT().UserByEmail(gomock.Any(), email).Return(snapshot(true), nil)

		_, err := authenticator.Verify(context.Background(), email, "wrong-password")

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("未登録のメールも同じエラー", func(t *testing.T) {
		reads, authenticator := setup(t)
		reads.EXPECT().UserByEmail(gomock.Any(), email).Return(nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound))

		_, err := authenticator.Verify(context.Background(), email, plain)

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("形式不正は問い合わせない", func(t *testing.T) {
		_, authenticator := setup(t)

		_, err := authenticator.Verify(context.Background(), "not-an-email", plain)

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("無効化ユーザーはパスワード一致後に判定", func(t *testing.T) {
		reads, authenticator := setup(t)
		reads.EXPECT().UserByEmail(gomock.Any(), email).Return(snapshot(false), nil).Times(2)

		_, err := authenticator.Verify(context.Background(), email, plain)
		assert.ErrorIs(t, err, auth.ErrInactiveUser)

		_, err = authenticator.Verify(context.Background(), email, "wrong-password")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("DB障害はそのまま返す", func(t *testing.T) {
		reads, authenticator := setup(t)
		reads.EXPECT().UserByEmail(gomock.Any(), email).Return(nil, infra.WrapRepoErr("failed to get user", errs.New("timeout")))

		_, err := authenticator.Verify(context.Background(), email, plain)

		require.Error(t, err)
		assert.True(t, errs.IsInfrastructure(err))
	})
}

func TestTokenValidator_ValidateToken(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(now)
	service := jwt.NewService("test-secret-key-for-unit-tests-only", time.Hour, "lab-seat-reservation-test", clk)
	validator := usecase.NewTokenValidator(service)

	t.Run("トークンから実行者を復元する", func(t *testing.T) {
		userID := uuid.New()
		token, _, err := service.GenerateAccessToken(userID, user.RoleLabTechnician)
		require.NoError(t, err)

		actor, err := validator.ValidateToken(token)

		require.NoError(t, err)
		assert.Equal(t, userID, actor.UserID)
		assert.True(t, actor.IsTechnician())
	})

	t.Run("期限切れ", func(t *testing.T) {
		token, _, err := service.GenerateAccessToken(uuid.New(), user.RoleStudent)
		require.NoError(t, err)
		clk.Add(2 * time.Hour)
		defer clk.Set(now)

		_, err = validator.ValidateToken(token)

		assert.Error(t, err)
	})
}
