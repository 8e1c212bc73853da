package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emotional-truth/portal-api/internal/api/metrics"
	"github.com/emotional-truth/portal-api/internal/core/domain"
	"github.com/emotional-truth/portal-api/internal/core/ports"
)

// AdHandler serves the advertisement carousel panel.
type AdHandler struct {
	ads ports.AdService
}

func NewAdHandler(ads ports.AdService) *AdHandler {
	return &AdHandler{ads: ads}
}

type adRequest struct {
	Title    string `json:"title" validate:"required"`
	ImageURL string `json:"image_url" validate:"required,url"`
	Link     string `json:"link" validate:"required,url"`
}

// List returns the cached ad list.
//
// @Summary      List ads
// @Tags         ads
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Ad
// @Router       /v1/ads [get]
func (h *AdHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ads.Ads())
}

// Create adds an ad.
//
// @Summary      Create an ad
// @Tags         ads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adRequest  true  "Ad details"
// @Success      201   {object}  domain.Ad
// @Failure      400   {object}  map[string]string
// @Router       /v1/ads [post]
func (h *AdHandler) Create(c echo.Context) error {
	var req adRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.ads.AddAd(c.Request().Context(), domain.Ad{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Link:     req.Link,
	})
	if err != nil {
		return err
	}
	metrics.MutationsTotal.WithLabelValues("ad", "add").Inc()
	return c.JSON(http.StatusCreated, created)
}

// Update rewrites an ad by id.
//
// @Summary      Update an ad
// @Tags         ads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string     true  "Ad id"
// @Param        body  body      adRequest  true  "Ad details"
// @Success      200   {object}  domain.Ad
// @Failure      404   {object}  map[string]string
// @Router       /v1/ads/{id} [put]
func (h *AdHandler) Update(c echo.Context) error {
	var req adRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.ads.UpdateAd(c.Request().Context(), domain.Ad{
		ID:       c.Param("id"),
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Link:     req.Link,
	})
	if err != nil {
		return err
	}
	metrics.MutationsTotal.WithLabelValues("ad", "update").Inc()
	return c.JSON(http.StatusOK, updated)
}

// Delete removes an ad by id.
//
// @Summary      Delete an ad
// @Tags         ads
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Ad id"
// @Success      204  "ad deleted"
// @Failure      404  {object}  map[string]string
// @Router       /v1/ads/{id} [delete]
func (h *AdHandler) Delete(c echo.Context) error {
	if err := h.ads.DeleteAd(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.MutationsTotal.WithLabelValues("ad", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
