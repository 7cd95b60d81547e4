package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hrprojector/jobboard/internal/core/domain"
)

const identityKey = "identity"

// TokenVerifier turns a bearer token into an identity.
type TokenVerifier interface {
	Authenticate(token string) (*domain.Identity, error)
}

// Auth resolves the bearer token, when present, and stores the identity in
// the context. It never rejects a request by itself: public methods stay
// reachable and guarded ones are refused by RequireRole.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			if id, err := verifier.Authenticate(strings.TrimSpace(parts[1])); err == nil {
				c.Set(identityKey, id)
			}
			return next(c)
		}
	}
}

// Identity returns the identity stored by Auth.
func Identity(c echo.Context) (*domain.Identity, bool) {
	id, ok := c.Get(identityKey).(*domain.Identity)
	return id, ok && id != nil
}
