package api

import (
	"net/http"
	"time"

	reqdto "lab-seat-reservation/internal/handler/dto/request"
	resdto "lab-seat-reservation/internal/handler/dto/response"
	"lab-seat-reservation/internal/handler/httperr"
	"lab-seat-reservation/internal/handler/middleware"
	"lab-seat-reservation/internal/pkg/config"
	"lab-seat-reservation/internal/pkg/cookie"
	"lab-seat-reservation/internal/pkg/errs"
	"lab-seat-reservation/internal/usecase/commands"
	"lab-seat-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cmds        commands.AuthCommands
	users       queries.UserQueries
	cookieCfg   config.CookieConfig
	accessTTL   time.Duration
	rememberTTL time.Duration
}

func NewAuthHandler(cmds commands.AuthCommands, users queries.UserQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		cmds:        cmds,
		users:       users,
		cookieCfg:   cfg.Cookie,
		accessTTL:   cfg.JWT.AccessTokenDuration,
		rememberTTL: cfg.Auth.RememberMeDuration,
	}
}

// @Summary Register
// @Description Create an account with a university email address
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Register request"
// @Success 201 {object} resdto.RegisterResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}

	id, err := h.cmds.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.RegisterResponse{ID: id.String()})
}

// @Summary User login
// @Description Login with email and password. rememberMe also sets the remember_me cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}

	result, err := h.cmds.Login(c.Request.Context(), req.ToInput())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	h.respondWithSession(c, result)
}

// @Summary Refresh session
// @Description Trade the remember_me cookie for a new access token; the remember token is rotated
// @Tags auth
// @Produce json
// @Success 200 {object} resdto.LoginResponse
// @Failure 401 {object} httperr.Response
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	token := cookie.GetRememberMeToken(c)
	if token == "" {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Remember-me token required", nil)
		return
	}

	result, err := h.cmds.Refresh(c.Request.Context(), token)
	if err != nil {
		if errs.Is(err, commands.ErrRememberTokenInvalid) {
			cookie.ClearTokenCookies(c, h.cookieCfg)
		}
		abortWithUseCaseError(c, err)
		return
	}

	h.respondWithSession(c, result)
}

// @Summary User logout
// @Description Revoke the remember-me token and clear both cookies
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} httperr.Response
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.cmds.Logout(c.Request.Context(), cookie.GetRememberMeToken(c)); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	cookie.ClearTokenCookies(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "User not authenticated", nil)
		return
	}

	view, err := h.users.GetCurrentUser(c.Request.Context(), actor.UserID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	res, err := resdto.FromUserView(view)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) respondWithSession(c *gin.Context, result *commands.LoginResult) {
	view, err := h.users.GetCurrentUser(c.Request.Context(), result.UserID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	user, err := resdto.FromUserView(view)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	cookie.SetAccessTokenCookie(c, h.cookieCfg, result.AccessToken, h.accessTTL)
	if result.RememberToken != "" {
		cookie.SetRememberMeCookie(c, h.cookieCfg, result.RememberToken, h.rememberTTL)
	}

	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.AccessToken,
		ExpiresAt:   result.AccessTokenExpiresAt,
		RememberMe:  result.RememberToken != "",
		User:        user,
	})
}
