package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/velikan/mailadmin/internal/apperror"
	"github.com/velikan/mailadmin/internal/middleware"
	"github.com/velikan/mailadmin/internal/views"
)

// sessionCookieName is the HTTP cookie used to store the session token.
const sessionCookieName = "mailadmin_session"

// Handler handles HTTP requests for authentication (login, logout).
// Handlers are thin: they bind the request, call the service, and render
// the response. No business logic lives here.
type Handler struct {
	service   AuthService
	cookieTTL time.Duration
}

// NewHandler creates a new auth handler with the given service. cookieTTL
// should match the service's session TTL so the cookie and the Redis key
// expire together.
func NewHandler(service AuthService, cookieTTL time.Duration) *Handler {
	return &Handler{service: service, cookieTTL: cookieTTL}
}

// Root redirects / to the dashboard when a session exists, else to login.
func (h *Handler) Root(c echo.Context) error {
	if token := GetSessionToken(c); token != "" {
		if _, err := h.service.ValidateSession(c.Request().Context(), token); err == nil {
			return c.Redirect(http.StatusSeeOther, "/dashboard")
		}
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

// LoginForm renders the login page (GET /login).
func (h *Handler) LoginForm(c echo.Context) error {
	// If the user already has a valid session, redirect to dashboard.
	if token := GetSessionToken(c); token != "" {
		if _, err := h.service.ValidateSession(c.Request().Context(), token); err == nil {
			return c.Redirect(http.StatusSeeOther, "/dashboard")
		}
	}

	csrfToken := middleware.GetCSRFToken(c)
	return middleware.Render(c, http.StatusOK, views.LoginPage(csrfToken, "", ""))
}

// Login processes the login form submission (POST /login). Failures
// re-render the form inline with the generic error message -- no redirect,
// no flash.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	input := LoginInput{
		Username: req.Username,
		Password: req.Password,
	}

	token, _, err := h.service.Login(c.Request().Context(), input)
	if err != nil {
		csrfToken := middleware.GetCSRFToken(c)
		return middleware.Render(c, http.StatusOK,
			views.LoginPage(csrfToken, req.Username, apperror.SafeMessage(err)))
	}

	h.setSessionCookie(c, token)

	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout destroys the session and clears the cookie (GET /logout).
// Idempotent: logging out without a session is still a redirect to /login.
func (h *Handler) Logout(c echo.Context) error {
	token := GetSessionToken(c)
	if token != "" {
		// Destroy the session in Redis. Ignore errors -- the cookie
		// will be cleared regardless.
		_ = h.service.DestroySession(c.Request().Context(), token)
	}

	ClearSessionCookie(c)

	return c.Redirect(http.StatusSeeOther, "/login")
}

// --- Cookie helpers ---

// GetSessionToken reads the session token from the cookie.
func GetSessionToken(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// setSessionCookie sets the session cookie on the response. The cookie is
// HttpOnly (JS can't read it), Secure if behind TLS, and SameSite=Lax.
func (h *Handler) setSessionCookie(c echo.Context, token string) {
	req := c.Request()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.cookieTTL.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie by setting MaxAge to -1.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
