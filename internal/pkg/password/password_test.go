//go:build unit

package password_test

import (
	"testing"

	"lab-seat-reservation/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := password.HashPasswordWithCost("correct-horse", bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("正しいパスワードは一致する", func(t *testing.T) {
		assert.NoError(t, password.ComparePassword(hash, "correct-horse"))
	})

	t.Run("誤ったパスワードはErrComparisonFailed", func(t *testing.T) {
		assert.ErrorIs(t, password.ComparePassword(hash, "wrong-horse"), password.ErrComparisonFailed)
	})

	t.Run("空文字はErrInvalidPassword", func(t *testing.T) {
		assert.ErrorIs(t, password.ComparePassword(hash, ""), password.ErrInvalidPassword)
		assert.ErrorIs(t, password.ComparePassword("", "x"), password.ErrInvalidPassword)

		_, err := password.HashPassword("")
		assert.ErrorIs(t, err, password.ErrInvalidPassword)
	})
}
