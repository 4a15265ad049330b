//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"lab-seat-reservation/internal/domain/auth"
	"lab-seat-reservation/internal/domain/user"
	"lab-seat-reservation/internal/infra"
	"lab-seat-reservation/internal/pkg/clock"
	"lab-seat-reservation/internal/pkg/config"
	"lab-seat-reservation/internal/pkg/errs"
	"lab-seat-reservation/internal/pkg/jwt"
	authmock "lab-seat-reservation/internal/testutil/mock/auth"
	sharedmock "lab-seat-reservation/internal/testutil/mock/shared"
	"lab-seat-reservation/internal/usecase/commands"
	"lab-seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authFixture struct {
	uow           *sharedmock.MockUnitOfWork
	tx            *sharedmock.MockTx
	reads         *sharedmock.MockCommandReads
	users         *sharedmock.MockUserRepository
	authenticator *authmock.MockAuthenticator
	rememberMe    *sharedmock.MockRememberTokenStore
	jwt           *jwt.Service
	clock         *clock.MockClock
	commands      commands.AuthCommands
}

var testAuthConfig = config.AuthConfig{
	AllowedEmailDomain: "dlsu.edu.ph",
	RememberMeDuration: 30 * 24 * time.Hour,
}

func newAuthFixture(t *testing.T) *authFixture {
	ctrl := gomock.NewController(t)
	f := &authFixture{
		uow:           sharedmock.NewMockUnitOfWork(ctrl),
		tx:            sharedmock.NewMockTx(ctrl),
		reads:         sharedmock.NewMockCommandReads(ctrl),
		users:         sharedmock.NewMockUserRepository(ctrl),
		authenticator: authmock.NewMockAuthenticator(ctrl),
		rememberMe:    sharedmock.NewMockRememberTokenStore(ctrl),
		clock:         clock.NewMockClock(testNow),
	}
	f.jwt = jwt.NewService("test-secret-key-for-unit-tests-only", time.Hour, "lab-seat-reservation-test", f.clock)
	f.commands = commands.NewAuthCommands(f.uow, f.authenticator, f.rememberMe, f.jwt, f.clock, testAuthConfig)

	f.uow.EXPECT().CommandReads().Return(f.reads).AnyTimes()
	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		}).AnyTimes()
	f.tx.EXPECT().Users().Return(f.users).AnyTimes()
	f.tx.EXPECT().DB().Return(nil).AnyTimes()
	return f
}

func activeUser(role user.Role) *user.User {
	return user.ReconstructUser(uuid.New(), "juan_delacruz@dlsu.edu.ph", "Juan dela Cruz", "hash", role, "", true, testNow, testNow)
}

func TestAuthCommands_Register(t *testing.T) {
	valid := commands.RegisterInput{
		Email:    "Juan_DelaCruz@dlsu.edu.ph",
		Name:     "Juan dela Cruz",
		Password: "password123",
		Role:     "student",
	}

	t.Run("学内アドレスで登録できる", func(t *testing.T) {
		f := newAuthFixture(t)
		id := uuid.New()
		f.users.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ any, u *user.User) (uuid.UUID, error) {
				assert.Equal(t, "juan_delacruz@dlsu.edu.ph", u.Email().Value())
				assert.NotEqual(t, valid.Password, u.PasswordHash())
				return id, nil
			})

		got, err := f.commands.Register(context.Background(), valid)

		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("入力の検証エラー", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(in *commands.RegisterInput)
			target error
		}{
			{name: "学外ドメイン", mutate: func(in *commands.RegisterInput) { in.Email = "juan@gmail.com" }, target: user.ErrEmailDomainNotAllowed},
			{name: "メール形式不正", mutate: func(in *commands.RegisterInput) { in.Email = "juan" }, target: user.ErrInvalidEmail},
			{name: "パスワードが7文字", mutate: func(in *commands.RegisterInput) { in.Password = "1234567" }, target: user.ErrPasswordTooWeak},
			{name: "名前が空", mutate: func(in *commands.RegisterInput) { in.Name = "  " }, target: user.ErrInvalidName},
			{name: "未知のロール", mutate: func(in *commands.RegisterInput) { in.Role = "admin" }, target: user.ErrInvalidRole},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newAuthFixture(t)
				in := valid
				tt.mutate(&in)

				_, err := f.commands.Register(context.Background(), in)

				require.Error(t, err)
				assert.True(t, errs.IsValidation(err))
				assert.True(t, errs.Is(err, commands.ErrInvalidRegistration))
				assert.True(t, errs.Is(err, tt.target))
			})
		}
	})

	t.Run("登録済みのメールアドレス", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("failed to create user", errs.New("23505"), infra.KindDuplicateKey))

		_, err := f.commands.Register(context.Background(), valid)

		assert.True(t, errs.Is(err, commands.ErrEmailTaken))
	})
}

func TestAuthCommands_Login(t *testing.T) {
	t.Run("アクセストークンを発行する", func(t *testing.T) {
		f := newAuthFixture(t)
		u := activeUser(user.RoleStudent)
		f.authenticator.EXPECT().Verify(gomock.Any(), "juan_delacruz@dlsu.edu.ph", "password123").Return(u, nil)
		f.users.EXPECT().UpdateLastLogin(gomock.Any(), gomock.Any(), u.ID(), testNow).Return(nil)

		result, err := f.commands.Login(context.Background(), commands.LoginInput{
			Email:    "juan_delacruz@dlsu.edu.ph",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.Equal(t, u.ID(), result.UserID)
		assert.Equal(t, testNow.Add(time.Hour), result.AccessTokenExpiresAt)
		assert.Empty(t, result.RememberToken)

		claims, err := f.jwt.ValidateToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, u.ID(), claims.UserID)
		assert.Equal(t, "student", claims.Role)
	})

	t.Run("ログイン保持を指定するとトークンを発行する", func(t *testing.T) {
		f := newAuthFixture(t)
		u := activeUser(user.RoleLabTechnician)
		f.authenticator.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(u, nil)
		f.rememberMe.EXPECT().Issue(gomock.Any(), u.ID()).Return("remember-token", nil)
		f.users.EXPECT().UpdateLastLogin(gomock.Any(), gomock.Any(), u.ID(), testNow).Return(nil)

		result, err := f.commands.Login(context.Background(), commands.LoginInput{
			Email:      "juan_delacruz@dlsu.edu.ph",
			Password:   "password123",
			RememberMe: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "remember-token", result.RememberToken)
		assert.Equal(t, testNow.Add(testAuthConfig.RememberMeDuration), result.RememberTokenExpiresAt)
		assert.Equal(t, user.RoleLabTechnician, result.Role)
	})

	t.Run("最終ログイン更新の失敗はログインを妨げない", func(t *testing.T) {
		f := newAuthFixture(t)
		u := activeUser(user.RoleStudent)
		f.authenticator.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(u, nil)
		f.users.EXPECT().UpdateLastLogin(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("failed to update last login", errs.New("timeout")))

		result, err := f.commands.Login(context.Background(), commands.LoginInput{Email: "x@dlsu.edu.ph", Password: "password123"})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("認証エラーの変換", func(t *testing.T) {
		tests := []struct {
			name   string
			err    error
			target error
		}{
			{name: "資格情報不一致", err: auth.ErrInvalidCredentials, target: commands.ErrInvalidCredentials},
			{name: "無効化ユーザー", err: auth.ErrInactiveUser, target: commands.ErrUserInactive},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newAuthFixture(t)
				f.authenticator.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.err)

				_, err := f.commands.Login(context.Background(), commands.LoginInput{Email: "x@dlsu.edu.ph", Password: "password123"})

				assert.True(t, errs.Is(err, tt.target))
			})
		}
	})
}

func TestAuthCommands_Refresh(t *testing.T) {
	t.Run("トークンを消費して再発行する", func(t *testing.T) {
		f := newAuthFixture(t)
		userID := uuid.New()
		f.rememberMe.EXPECT().Consume(gomock.Any(), "old-token").Return(userID, nil)
		f.reads.EXPECT().UserByID(gomock.Any(), userID).
			Return(&shared.UserSnapshot{ID: userID, Role: user.RoleStudent, IsActive: true}, nil)
		f.rememberMe.EXPECT().Issue(gomock.Any(), userID).Return("new-token", nil)

		result, err := f.commands.Refresh(context.Background(), "old-token")

		require.NoError(t, err)
		assert.Equal(t, "new-token", result.RememberToken)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("期限切れや使用済みのトークン", func(t *testing.T) {
		f := newAuthFixture(t)
		f.rememberMe.EXPECT().Consume(gomock.Any(), "used").Return(uuid.Nil, shared.ErrRememberTokenNotFound)

		_, err := f.commands.Refresh(context.Background(), "used")

		assert.True(t, errs.Is(err, commands.ErrRememberTokenInvalid))
	})

	t.Run("空のトークン", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.commands.Refresh(context.Background(), "")

		assert.True(t, errs.Is(err, commands.ErrRememberTokenInvalid))
	})

	t.Run("無効化されたユーザー", func(t *testing.T) {
		f := newAuthFixture(t)
		userID := uuid.New()
		f.rememberMe.EXPECT().Consume(gomock.Any(), "token").Return(userID, nil)
		f.reads.EXPECT().UserByID(gomock.Any(), userID).Return(&shared.UserSnapshot{ID: userID, IsActive: false}, nil)

		_, err := f.commands.Refresh(context.Background(), "token")

		assert.True(t, errs.Is(err, commands.ErrUserInactive))
	})

	t.Run("ストア障害はインフラエラー", func(t *testing.T) {
		f := newAuthFixture(t)
		f.rememberMe.EXPECT().Consume(gomock.Any(), "token").Return(uuid.Nil, errs.New("connection reset"))

		_, err := f.commands.Refresh(context.Background(), "token")

		assert.True(t, errs.IsInfrastructure(err))
	})
}

func TestAuthCommands_Logout(t *testing.T) {
	t.Run("トークンを失効させる", func(t *testing.T) {
		f := newAuthFixture(t)
		f.rememberMe.EXPECT().Revoke(gomock.Any(), "token").Return(nil)

		require.NoError(t, f.commands.Logout(context.Background(), "token"))
	})

	t.Run("トークンなしは何もしない", func(t *testing.T) {
		f := newAuthFixture(t)

		require.NoError(t, f.commands.Logout(context.Background(), ""))
	})
}
