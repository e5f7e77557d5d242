package users

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/velikan/mailadmin/internal/apperror"
	"github.com/velikan/mailadmin/internal/auth"
	"github.com/velikan/mailadmin/internal/middleware"
	"github.com/velikan/mailadmin/internal/views"
)

// Handler handles HTTP requests for the user listing.
type Handler struct {
	repo Repository
}

// NewHandler creates a new users handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List renders the user listing page (GET /users).
func (h *Handler) List(c echo.Context) error {
	list, err := h.repo.List(c.Request().Context())
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("loading users: %w", err))
	}

	rows := make([]views.UserRow, 0, len(list))
	for _, u := range list {
		email := ""
		if u.Email != nil {
			email = *u.Email
		}
		rows = append(rows, views.UserRow{
			ID:        u.ID,
			Username:  u.Username,
			Email:     email,
			CreatedAt: u.CreatedAt.Format(time.DateTime),
		})
	}

	session := auth.GetSession(c)
	return middleware.Render(c, http.StatusOK, views.UsersPage(session.Username, rows))
}

// RegisterRoutes sets up the user listing route on the authenticated group.
func RegisterRoutes(authed *echo.Group, h *Handler) {
	authed.GET("/users", h.List)
}
