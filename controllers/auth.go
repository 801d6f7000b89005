package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/morsechimwai/blog-api/config"
	"github.com/morsechimwai/blog-api/forms"
	"github.com/morsechimwai/blog-api/response"
	"github.com/morsechimwai/blog-api/service"
)

const refreshCookie = "refreshToken"

// AuthController exposes the session lifecycle: register, login, refresh and
// logout. The refresh token moves exclusively through an httpOnly cookie
// scoped to the auth routes; only the access token appears in response
// bodies.
type AuthController struct {
	auth *service.AuthService
	cfg  config.Config
	log  *slog.Logger
}

func NewAuthController(auth *service.AuthService, cfg config.Config, log *slog.Logger) *AuthController {
	return &AuthController{auth: auth, cfg: cfg, log: log}
}

// Register handles POST /auth/register.
func (ctrl *AuthController) Register(c *gin.Context) {
	var form forms.RegisterForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.FailDetail(c, response.BadRequest, response.CodeValidationFailed,
			forms.Message(err), err.Error())
		return
	}

	sess, err := ctrl.auth.Register(c.Request.Context(), form.Email, form.Password, form.Role)
	switch {
	case errors.Is(err, service.ErrAdminRestricted):
		response.Fail(c, response.Forbidden, response.CodePermissionDenied,
			"You don't have permission to register as an admin with this email.")
		return
	case errors.Is(err, service.ErrEmailTaken):
		response.Fail(c, response.BadRequest, response.CodeValidationFailed,
			"An account with this email already exists.")
		return
	case err != nil:
		ctrl.log.Error("registration failed", "error", err)
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while registering the user.")
		return
	}

	ctrl.setRefreshCookie(c, sess.RefreshToken)
	response.Send(c, response.Created, response.CodeCreated, "User registered successfully.", gin.H{
		"user":        sess.User.Public(),
		"accessToken": sess.AccessToken,
	})
}

// Login handles POST /auth/login.
func (ctrl *AuthController) Login(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.FailDetail(c, response.BadRequest, response.CodeValidationFailed,
			forms.Message(err), err.Error())
		return
	}

	sess, err := ctrl.auth.Login(c.Request.Context(), form.Email, form.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, response.Unauthorized, response.CodePermissionDenied,
			"Your email or password is invalid.")
		return
	case err != nil:
		ctrl.log.Error("login failed", "error", err)
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while logging in.")
		return
	}

	ctrl.setRefreshCookie(c, sess.RefreshToken)
	response.Send(c, response.Created, response.CodeCreated, "User logged in successfully.", gin.H{
		"user":        sess.User.Public(),
		"accessToken": sess.AccessToken,
	})
}

// Refresh handles POST /auth/refresh-token. The new access token is minted
// only when the refresh token is both present in the ledger and
// cryptographically valid.
func (ctrl *AuthController) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookie)
	if err != nil || refreshToken == "" {
		response.Fail(c, response.BadRequest, response.CodeValidationFailed,
			"Refresh token is required.")
		return
	}

	accessToken, err := ctrl.auth.Refresh(c.Request.Context(), refreshToken)
	switch {
	case errors.Is(err, service.ErrRefreshReused):
		response.Fail(c, response.Unauthorized, response.CodePermissionDenied,
			"This refresh token is invalid or has already been used.")
		return
	case errors.Is(err, service.ErrTokenExpired):
		response.Fail(c, response.Unauthorized, response.CodePermissionDenied,
			"Your refresh token has expired. Please log in again.")
		return
	case errors.Is(err, service.ErrTokenInvalid):
		response.Fail(c, response.Unauthorized, response.CodePermissionDenied,
			"The refresh token provided is invalid.")
		return
	case err != nil:
		ctrl.log.Error("token refresh failed", "error", err)
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while refreshing the access token.")
		return
	}

	response.Send(c, response.OK, response.CodeSuccess, "Access token refreshed successfully.", gin.H{
		"accessToken": accessToken,
	})
}

// Logout handles POST /auth/logout. Revoking a token that is already gone is
// fine; logout stays idempotent.
func (ctrl *AuthController) Logout(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshCookie)

	if err := ctrl.auth.Logout(c.Request.Context(), refreshToken); err != nil {
		ctrl.log.Error("logout failed", "error", err)
		response.Fail(c, response.InternalServerError, response.CodeInternalError,
			"Something went wrong while logging out.")
		return
	}

	ctrl.clearRefreshCookie(c)
	response.Send(c, response.NoContent, "", "", nil)
}

func (ctrl *AuthController) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	maxAge := int(ctrl.cfg.RefreshTokenTTL.Seconds())
	c.SetCookie(refreshCookie, token, maxAge, "/api/v1/auth", "", ctrl.cfg.Production(), true)
}

func (ctrl *AuthController) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookie, "", -1, "/api/v1/auth", "", ctrl.cfg.Production(), true)
}
