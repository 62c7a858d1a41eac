package controller

import (
	"errors"
	"net/http"

	dto "github.com/vibast-solutions/ms-go-accounts/app/dto/http"
	"github.com/vibast-solutions/ms-go-accounts/app/middleware"
	"github.com/vibast-solutions/ms-go-accounts/app/service"
	"github.com/vibast-solutions/ms-go-accounts/config"

	"github.com/labstack/echo/v4"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"

	resetAckMessage = "If an account exists, a reset email has been sent"
)

type AuthController struct {
	authService  *service.AuthService
	resetService *service.PasswordResetService
	roleService  *service.RoleService
	cfg          *config.Config
}

func NewAuthController(
	authService *service.AuthService,
	resetService *service.PasswordResetService,
	roleService *service.RoleService,
	cfg *config.Config,
) *AuthController {
	return &AuthController{
		authService:  authService,
		resetService: resetService,
		roleService:  roleService,
		cfg:          cfg,
	}
}

func (c *AuthController) Register(ctx echo.Context) error {
	var req dto.RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if req.Email == "" || req.Password == "" {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "email and password are required"})
	}

	_, err := c.authService.Register(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrFeatureDisabled) {
			return ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "registration is disabled"})
		}
		if errors.Is(err, service.ErrEmailAlreadyRegistered) {
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "email already registered"})
		}
		if errors.Is(err, service.ErrWeakPassword) {
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		}
		return err
	}

	return ctx.JSON(http.StatusCreated, dto.RegisterResponse{
		Success: true,
		Message: "Account created successfully",
	})
}

func (c *AuthController) Login(ctx echo.Context) error {
	var req dto.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if req.Email == "" || req.Password == "" {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "email and password are required"})
	}

	result, err := c.authService.Login(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid credentials"})
		}
		if errors.Is(err, service.ErrAccountDisabled) {
			return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "account is disabled"})
		}
		return err
	}

	c.setCookie(ctx, accessTokenCookie, result.AccessToken, int(c.cfg.AccessTokenTTL.Seconds()))
	c.setCookie(ctx, refreshTokenCookie, result.RefreshToken, int(c.cfg.RefreshTokenTTL.Seconds()))

	return ctx.JSON(http.StatusOK, dto.LoginResponse{
		Success: true,
		User: dto.UserSummary{
			ID:       result.User.ID,
			Email:    result.User.Email,
			IsActive: result.User.IsActive,
		},
	})
}

func (c *AuthController) Refresh(ctx echo.Context) error {
	cookie, err := ctx.Cookie(refreshTokenCookie)
	if err != nil || cookie.Value == "" {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid refresh token"})
	}

	accessToken, err := c.authService.Refresh(ctx.Request().Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTokenType) {
			return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid token type"})
		}
		if errors.Is(err, service.ErrInvalidOrExpiredToken) {
			return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid refresh token"})
		}
		return err
	}

	c.setCookie(ctx, accessTokenCookie, accessToken, int(c.cfg.AccessTokenTTL.Seconds()))
	return ctx.JSON(http.StatusOK, dto.RefreshResponse{Success: true})
}

// Logout clears the credential cookies. Tokens are stateless, so there is no
// server-side session to revoke.
func (c *AuthController) Logout(ctx echo.Context) error {
	c.setCookie(ctx, accessTokenCookie, "", -1)
	c.setCookie(ctx, refreshTokenCookie, "", -1)
	return ctx.JSON(http.StatusOK, dto.LogoutResponse{Message: "Logged out successfully"})
}

func (c *AuthController) Me(ctx echo.Context) error {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "not authenticated"})
	}

	roles, err := c.roleService.EffectiveRoleNames(ctx.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.MeResponse{
		ID:       user.ID,
		Email:    user.Email,
		IsActive: user.IsActive,
		Roles:    roles,
	})
}

// RequestPasswordReset always acks with the same body so the response does
// not reveal whether the email is registered.
func (c *AuthController) RequestPasswordReset(ctx echo.Context) error {
	if !c.cfg.Features.PasswordReset {
		return ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "password reset is disabled"})
	}

	var req dto.RequestPasswordResetRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if req.Email == "" {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "email is required"})
	}

	if err := c.resetService.Request(ctx.Request().Context(), req.Email); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.AckResponse{Success: true, Message: resetAckMessage})
}

func (c *AuthController) ConfirmPasswordReset(ctx echo.Context) error {
	if !c.cfg.Features.PasswordReset {
		return ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "password reset is disabled"})
	}

	var req dto.ConfirmPasswordResetRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if req.Token == "" || req.NewPassword == "" {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "token and new_password are required"})
	}

	err := c.resetService.Confirm(ctx.Request().Context(), req.Token, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrWeakPassword) {
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		}
		if errors.Is(err, service.ErrInvalidOrExpiredToken) {
			return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid or expired token"})
		}
		return err
	}

	return ctx.JSON(http.StatusOK, dto.AckResponse{Success: true, Message: "Password has been reset"})
}

func (c *AuthController) setCookie(ctx echo.Context, name, value string, maxAge int) {
	ctx.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
