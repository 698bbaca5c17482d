package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/timetrack/timesheet-system/internal/api/metrics"
	"github.com/timetrack/timesheet-system/internal/core/ports"
)

// Auth validates the bearer token and injects the resolved identity into
// the request context. When a revoker is supplied, tokens issued at or
// before the user's revocation cut-off (deleted account, logout) are
// refused even if their signature and expiry still check out; tokens
// issued after the cut-off, such as a fresh login, pass.
func Auth(jwtSecret string, revoker ports.TokenRevoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthRejectionsTotal.WithLabelValues("malformed_header").Inc()
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
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			userID, _ := claims["sub"].(string)
			if userID == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_subject").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if revoker != nil {
				revokedAt, err := revoker.RevokedAt(c.Request().Context(), userID)
				if err != nil {
					return err
				}
				if !revokedAt.IsZero() {
					iat, err := claims.GetIssuedAt()
					if err != nil || iat == nil || !iat.After(revokedAt) {
						metrics.AuthRejectionsTotal.WithLabelValues("revoked").Inc()
						return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
					}
				}
			}

			c.Set("user_id", userID)
			c.Set("role", claims["role"])
			c.Set("email", claims["email"])

			return next(c)
		}
	}
}
