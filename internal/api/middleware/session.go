package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/soyleaf/soyleaf-api/internal/core/ports"
)

// CookieName is the session cookie shared between login, the gate, and logout.
const CookieName = "soyleaf_session"

const loginPath = "/login"

// SessionGate guards authenticated routes. The cookie JWT must verify and its
// jti must still exist in the session store — a logged-out session fails the
// second check even while the token itself is unexpired. Anonymous requests
// are redirected to the login page without side effects.
func SessionGate(jwtSecret string, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}

			sessionID, _ := claims["jti"].(string)
			if sessionID == "" {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}

			username, err := sessions.Get(c.Request().Context(), sessionID)
			if err != nil {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}

			c.Set("username", username)
			c.Set("session_id", sessionID)

			return next(c)
		}
	}
}
