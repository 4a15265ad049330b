package cookie

import (
	"net/http"
	"time"

	"lab-seat-reservation/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookieName = "access_token"
	// One name for the remember-me token everywhere it is read or written.
	RememberMeCookieName = "remember_me"
)

func SetAccessTokenCookie(c *gin.Context, cfg config.CookieConfig, accessToken string, expiry time.Duration) {
	setCookie(c, cfg, AccessTokenCookieName, accessToken, int(expiry.Seconds()))
}

func SetRememberMeCookie(c *gin.Context, cfg config.CookieConfig, token string, expiry time.Duration) {
	setCookie(c, cfg, RememberMeCookieName, token, int(expiry.Seconds()))
}

func ClearTokenCookies(c *gin.Context, cfg config.CookieConfig) {
	setCookie(c, cfg, AccessTokenCookieName, "", -1)
	setCookie(c, cfg, RememberMeCookieName, "", -1)
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

func GetRememberMeToken(c *gin.Context) string {
	token, _ := c.Cookie(RememberMeCookieName)
	return token
}

func setCookie(c *gin.Context, cfg config.CookieConfig, name, value string, maxAge int) {
	c.SetSameSite(getSameSite(cfg.SameSite))
	c.SetCookie(
		name,
		value,
		maxAge,
		"/",
		cfg.Domain,
		cfg.Secure,
		true, // HttpOnly
	)
}

func getSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
