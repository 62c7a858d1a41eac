package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/vibast-solutions/ms-go-accounts/app/entity"
	"github.com/vibast-solutions/ms-go-accounts/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const userContextKey = "auth_user"

const accessTokenCookie = "access_token"

type sessionResolver interface {
	CurrentUser(ctx context.Context, accessToken string) (*entity.User, error)
}

type roleChecker interface {
	HasRole(ctx context.Context, userID uint64, required string) (bool, error)
}

type AuthMiddleware struct {
	sessions sessionResolver
	roles    roleChecker
}

func NewAuthMiddleware(sessions sessionResolver, roles roleChecker) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, roles: roles}
}

// RequireAuth resolves the access-token cookie to a user and stores it in the
// echo context. It does not gate on the active flag; login does that.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(accessTokenCookie)
		if err != nil || cookie.Value == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "not authenticated",
			})
		}

		user, err := m.sessions.CurrentUser(c.Request().Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				logrus.Debug("invalid or expired access token")
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "invalid or expired token",
				})
			}
			return err
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// OptionalAuth is RequireAuth with every authentication failure converted to
// "no user"; unexpected storage errors still propagate.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(accessTokenCookie)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		user, err := m.sessions.CurrentUser(c.Request().Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				return next(c)
			}
			return err
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// RequireRole is a composable guard placed after RequireAuth. The check runs
// against the user's effective roles, so an ancestor role assignment
// satisfies a descendant requirement's ancestors, not the other way around.
func (m *AuthMiddleware) RequireRole(required string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := UserFromContext(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "not authenticated",
				})
			}

			allowed, err := m.roles.HasRole(c.Request().Context(), user.ID, required)
			if err != nil {
				return err
			}
			if !allowed {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": "insufficient permissions",
				})
			}

			return next(c)
		}
	}
}

// UserFromContext returns the user stored by RequireAuth or OptionalAuth.
func UserFromContext(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(userContextKey).(*entity.User)
	return user, ok
}
