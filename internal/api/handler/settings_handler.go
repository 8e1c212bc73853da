package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emotional-truth/portal-api/internal/api/metrics"
	"github.com/emotional-truth/portal-api/internal/core/ports"
)

// SettingsHandler serves the site settings panel.
type SettingsHandler struct {
	settings ports.SettingsService
}

func NewSettingsHandler(settings ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

type logoRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type logoResponse struct {
	URL string `json:"url"`
}

type adminPasswordRequest struct {
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// Logo returns the current site logo URL. Unset reads as an empty string;
// the login page renders its default in that case.
//
// @Summary      Site logo
// @Tags         settings
// @Produce      json
// @Success      200  {object}  logoResponse
// @Router       /v1/settings/logo [get]
func (h *SettingsHandler) Logo(c echo.Context) error {
	return c.JSON(http.StatusOK, logoResponse{URL: h.settings.Logo()})
}

// UpdateLogo upserts the site logo URL.
//
// @Summary      Update the site logo
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      logoRequest  true  "Logo URL"
// @Success      200   {object}  logoResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/settings/logo [put]
func (h *SettingsHandler) UpdateLogo(c echo.Context) error {
	var req logoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.settings.UpdateSiteLogo(c.Request().Context(), req.URL); err != nil {
		return err
	}
	metrics.MutationsTotal.WithLabelValues("setting", "update").Inc()
	return c.JSON(http.StatusOK, logoResponse{URL: req.URL})
}

// UpdateAdminPassword upserts the admin password setting.
//
// @Summary      Change the admin password
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adminPasswordRequest  true  "New password, confirmed"
// @Success      204   "password updated"
// @Failure      400   {object}  map[string]string
// @Router       /v1/settings/admin-password [put]
func (h *SettingsHandler) UpdateAdminPassword(c echo.Context) error {
	var req adminPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.settings.UpdateAdminPassword(c.Request().Context(), req.NewPassword); err != nil {
		return err
	}
	metrics.MutationsTotal.WithLabelValues("setting", "update").Inc()
	return c.NoContent(http.StatusNoContent)
}
