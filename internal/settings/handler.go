package settings

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/velikan/mailadmin/internal/apperror"
	"github.com/velikan/mailadmin/internal/auth"
	"github.com/velikan/mailadmin/internal/flash"
	"github.com/velikan/mailadmin/internal/middleware"
	"github.com/velikan/mailadmin/internal/views"
)

// Handler handles HTTP requests for SMTP settings management. Both POST
// endpoints follow the same shape: act, set a one-shot flash, and redirect
// back to the settings view.
type Handler struct {
	service Service
	flash   *flash.Store
}

// NewHandler creates a new settings handler.
func NewHandler(service Service, flashStore *flash.Store) *Handler {
	return &Handler{service: service, flash: flashStore}
}

// Settings renders the settings page with any pending flash (GET /settings).
func (h *Handler) Settings(c echo.Context) error {
	ctx := c.Request().Context()

	list, err := h.service.List(ctx)
	if err != nil {
		return err
	}

	// Drain the flash set by a preceding update/test-send redirect.
	// Pop clears it, so it appears on this render only.
	msgs, err := h.flash.Pop(ctx, auth.GetSessionToken(c))
	if err != nil {
		return apperror.NewInternal(err)
	}

	rows := make([]views.SettingRow, 0, len(list))
	for _, s := range list {
		rows = append(rows, views.SettingRow{
			Provider:  s.Provider,
			Host:      s.Host,
			Port:      s.Port,
			Username:  s.Username,
			Password:  s.Password,
			Secure:    s.Secure,
			UpdatedAt: s.UpdatedAt.Format(time.DateTime),
		})
	}

	session := auth.GetSession(c)
	csrfToken := middleware.GetCSRFToken(c)
	return middleware.Render(c, http.StatusOK,
		views.SettingsPage(session.Username, csrfToken, rows, msgs.Success, msgs.Error))
}

// Update saves SMTP settings for one provider (POST /settings/smtp).
// Success and failure both flash and redirect back to the settings view.
func (h *Handler) Update(c echo.Context) error {
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	ctx := c.Request().Context()
	token := auth.GetSessionToken(c)

	if err := h.service.Update(ctx, req); err != nil {
		h.setFlashError(c, token, "SMTP settings could not be saved: "+apperror.SafeMessage(err))
		return c.Redirect(http.StatusSeeOther, "/settings")
	}

	h.setFlashSuccess(c, token, "SMTP settings saved successfully")
	return c.Redirect(http.StatusSeeOther, "/settings")
}

// TestEmail sends a test email through a provider (POST /settings/test-email).
func (h *Handler) TestEmail(c echo.Context) error {
	var req TestEmailRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	ctx := c.Request().Context()
	token := auth.GetSessionToken(c)

	if err := h.service.SendTest(ctx, req); err != nil {
		h.setFlashError(c, token, apperror.SafeMessage(err))
		return c.Redirect(http.StatusSeeOther, "/settings")
	}

	h.setFlashSuccess(c, token, "Test email sent successfully")
	return c.Redirect(http.StatusSeeOther, "/settings")
}

// setFlashSuccess stores a success flash; failures are logged by the store
// wrapper but never block the redirect.
func (h *Handler) setFlashSuccess(c echo.Context, token, msg string) {
	_ = h.flash.SetSuccess(c.Request().Context(), token, msg)
}

func (h *Handler) setFlashError(c echo.Context, token, msg string) {
	_ = h.flash.SetError(c.Request().Context(), token, msg)
}

// RegisterRoutes sets up the settings routes on the authenticated group.
func RegisterRoutes(authed *echo.Group, h *Handler) {
	authed.GET("/settings", h.Settings)
	authed.POST("/settings/smtp", h.Update)
	authed.POST("/settings/test-email", h.TestEmail)
}
