package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/domain/policy"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type UsuarioRepository interface {
	FindActiveByID(id string) (*entity.Usuario, error)
}

type AuthMiddlewareConfig struct {
	UsuarioRepo UsuarioRepository
	JWTSecret   []byte
}

// NewAuthMiddleware validates the bearer token and loads the acting
// user into the request context. The role claim in the token is only a
// hint; the persisted row is what the permission checks see, so a role
// change applies to live sessions immediately.
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, apierror.UnauthorizedError)
			}

			claims, err := utils.ParseSessionToken(cfg.JWTSecret, token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			user, err := cfg.UsuarioRepo.FindActiveByID(claims.Subject)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
			}
			if user == nil {
				// Deactivated or deleted after the token was issued.
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			c.Set("user", user)
			return next(c)
		}
	}
}

// RequirePermission gates a route on a single permission id, resolved
// against the acting user's role.
func RequirePermission(evaluator *policy.Evaluator, permissionID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, cerr := utils.GetUserFromContext(c)
			if cerr != nil {
				return c.JSON(cerr.Code(), cerr)
			}

			ok, err := evaluator.HasPermission(user.Role, permissionID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
			}
			if !ok {
				return c.JSON(http.StatusForbidden, apierror.MissingPermsError)
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
