package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/emotional-truth/portal-api/internal/api/metrics"
	"github.com/emotional-truth/portal-api/internal/core/ports"
)

// Auth validates the bearer JWT, restores the actor from the session store
// referenced by its "sid" claim, and injects both into the request
// context. A valid token whose session has been destroyed (logout, expiry)
// is rejected: the Redis entry is the source of truth.
func Auth(jwtSecret string, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sid, _ := claims["sid"].(string)
			if sid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing session id")
			}

			user, err := sessions.Get(c.Request().Context(), sid)
			if err != nil {
				return err
			}
			if user == nil {
				metrics.SessionRestoresTotal.WithLabelValues("miss").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}
			metrics.SessionRestoresTotal.WithLabelValues("hit").Inc()

			c.Set("user", user)
			c.Set("session_id", sid)
			c.Set("role", user.Role)
			c.Set("username", user.Username)

			return next(c)
		}
	}
}
