package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emotional-truth/portal-api/internal/core/ports"
)

// PreferenceHandler serves the per-user language preference.
type PreferenceHandler struct {
	prefs ports.PreferenceService
}

func NewPreferenceHandler(prefs ports.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs}
}

type languageResponse struct {
	Language string `json:"language"`
}

type languageRequest struct {
	Language string `json:"language" validate:"required"`
}

// Language returns the caller's stored locale code.
//
// @Summary      Get language preference
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  languageResponse
// @Router       /v1/preferences/language [get]
func (h *PreferenceHandler) Language(c echo.Context) error {
	actor, _, err := ctxActor(c)
	if err != nil {
		return err
	}
	code, err := h.prefs.Language(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, languageResponse{Language: code})
}

// SetLanguage stores the caller's locale code.
//
// @Summary      Set language preference
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      languageRequest  true  "Locale code"
// @Success      204   "preference stored"
// @Failure      422   {object}  map[string]string
// @Router       /v1/preferences/language [put]
func (h *PreferenceHandler) SetLanguage(c echo.Context) error {
	actor, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req languageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.prefs.SetLanguage(c.Request().Context(), actor.ID, req.Language); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
