//go:build unit

package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lab-seat-reservation/internal/pkg/config"
	"lab-seat-reservation/internal/pkg/cookie"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestCookies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.CookieConfig{Secure: true, SameSite: "Strict"}

	t.Run("アクセストークンと記憶トークンを設定できる", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

		cookie.SetAccessTokenCookie(c, cfg, "access", time.Hour)
		cookie.SetRememberMeCookie(c, cfg, "remember", 30*24*time.Hour)

		cookies := w.Result().Cookies()
		access := findCookie(cookies, cookie.AccessTokenCookieName)
		remember := findCookie(cookies, cookie.RememberMeCookieName)
		require.NotNil(t, access)
		require.NotNil(t, remember)

		assert.Equal(t, "access", access.Value)
		assert.Equal(t, 3600, access.MaxAge)
		assert.True(t, access.HttpOnly)
		assert.True(t, access.Secure)
		assert.Equal(t, http.SameSiteStrictMode, access.SameSite)
		assert.Equal(t, 30*24*3600, remember.MaxAge)
	})

	t.Run("クリアすると両方とも失効する", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

		cookie.ClearTokenCookies(c, cfg)

		cookies := w.Result().Cookies()
		for _, name := range []string{cookie.AccessTokenCookieName, cookie.RememberMeCookieName} {
			ck := findCookie(cookies, name)
			require.NotNil(t, ck, name)
			assert.Empty(t, ck.Value)
			assert.Negative(t, ck.MaxAge)
		}
	})

	t.Run("リクエストから読み取れる", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: cookie.RememberMeCookieName, Value: "opaque"})
		c.Request = req

		assert.Equal(t, "opaque", cookie.GetRememberMeToken(c))
		assert.Empty(t, cookie.GetAccessToken(c))
	})
}
