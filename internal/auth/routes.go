package auth

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/velikan/mailadmin/internal/middleware"
)

// RegisterRoutes sets up the public auth routes on the given Echo instance.
// The RequireAuth middleware is exported separately for the protected
// route group.
//
// POST /login is rate-limited to slow brute-force and credential stuffing:
// 10 attempts per IP per minute.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/", h.Root)
	e.GET("/login", h.LoginForm)
	e.POST("/login", h.Login, middleware.RateLimit(10, time.Minute))
	e.GET("/logout", h.Logout)
}
