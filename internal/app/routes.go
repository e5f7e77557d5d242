package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/velikan/mailadmin/internal/auth"
	"github.com/velikan/mailadmin/internal/flash"
	"github.com/velikan/mailadmin/internal/middleware"
	"github.com/velikan/mailadmin/internal/settings"
	"github.com/velikan/mailadmin/internal/users"
	"github.com/velikan/mailadmin/internal/views"
)

// RegisterRoutes wires the feature packages and sets up all application
// routes. This is the single place where all routes are aggregated.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// --- Wiring ---

	authRepo := auth.NewUserRepository(a.DB)
	authService := auth.NewAuthService(authRepo, a.Redis, a.Config.Session.TTL)
	authHandler := auth.NewHandler(authService, a.Config.Session.TTL)

	flashStore := flash.NewStore(a.Redis)

	usersRepo := users.NewRepository(a.DB)
	usersHandler := users.NewHandler(usersRepo)

	settingsRepo := settings.NewRepository(a.DB)
	var sender settings.EmailSender = settings.NewLogSender()
	simulated := true
	if a.Config.Mail.Driver == "smtp" {
		sender = settings.NewSMTPSender("")
		simulated = false
	}
	settingsService := settings.NewService(settingsRepo, sender, a.Config.SecretKey, simulated)
	settingsHandler := settings.NewHandler(settingsService, flashStore)

	// --- Public routes ---

	auth.RegisterRoutes(e, authHandler)

	// Health check endpoint for container health monitoring.
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// --- Protected routes -- everything below requires a valid session ---

	authed := e.Group("", auth.RequireAuth(authService))

	authed.GET("/dashboard", func(c echo.Context) error {
		session := auth.GetSession(c)
		return middleware.Render(c, http.StatusOK, views.DashboardPage(session.Username))
	})

	authed.GET("/reports", func(c echo.Context) error {
		session := auth.GetSession(c)
		return middleware.Render(c, http.StatusOK, views.ReportsPage(session.Username))
	})

	users.RegisterRoutes(authed, usersHandler)
	settings.RegisterRoutes(authed, settingsHandler)
}
