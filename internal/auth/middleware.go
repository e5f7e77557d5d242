package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// contextKeySession is the Echo context key for session data. Other
// packages access the authenticated user via GetSession.
const contextKeySession = "auth_session"

// RequireAuth returns middleware that validates the session cookie and
// injects session data into the request context. If the session is
// invalid or missing, it redirects to /login. The redirect carries no
// protected data -- just the 303 and the cleared cookie.
func RequireAuth(service AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := GetSessionToken(c)
			if token == "" {
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			session, err := service.ValidateSession(c.Request().Context(), token)
			if err != nil {
				// Invalid or expired session -- clear the stale cookie.
				ClearSessionCookie(c)
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			c.Set(contextKeySession, session)

			return next(c)
		}
	}
}

// GetSession retrieves the authenticated session from the Echo context.
// Returns nil if the request is not authenticated (middleware not applied).
func GetSession(c echo.Context) *Session {
	session, ok := c.Get(contextKeySession).(*Session)
	if !ok {
		return nil
	}
	return session
}
