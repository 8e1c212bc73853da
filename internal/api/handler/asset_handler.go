package handler

import (
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/emotional-truth/portal-api/internal/api/metrics"
	"github.com/emotional-truth/portal-api/internal/core/ports"
)

// allowedBuckets are the logical storage buckets the upload route accepts.
var allowedBuckets = map[string]struct{}{
	"logos":   {},
	"ads":     {},
	"avatars": {},
}

// AssetHandler uploads files into object storage and serves them back on
// the public asset route.
type AssetHandler struct {
	assets ports.AssetService
}

func NewAssetHandler(assets ports.AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload stores a multipart file and returns its public URL.
//
// @Summary      Upload an asset
// @Tags         assets
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        bucket  path      string  true  "Bucket name (logos, ads, avatars)"
// @Param        file    formData  file    true  "File to upload"
// @Success      201     {object}  uploadResponse
// @Failure      400     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /v1/assets/{bucket} [post]
func (h *AssetHandler) Upload(c echo.Context) error {
	bucket := c.Param("bucket")
	if _, ok := allowedBuckets[bucket]; !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown bucket")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file field")
	}
	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	start := time.Now()
	url, err := h.assets.Upload(c.Request().Context(), bucket, fh.Filename, src)
	metrics.UploadDuration.WithLabelValues(bucket).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(bucket, "error").Inc()
		return err
	}
	metrics.UploadsTotal.WithLabelValues(bucket, "success").Inc()

	return c.JSON(http.StatusCreated, uploadResponse{URL: url})
}

// Download streams a stored object. This route is what makes the public
// URLs returned by Upload resolvable.
//
// @Summary      Download an asset
// @Tags         assets
// @Produce      octet-stream
// @Param        bucket  path  string  true  "Bucket name"
// @Param        key     path  string  true  "Storage key"
// @Success      200  "object bytes"
// @Failure      404  {object}  map[string]string
// @Router       /assets/{bucket}/{key} [get]
func (h *AssetHandler) Download(c echo.Context) error {
	bucket := c.Param("bucket")
	key := c.Param("key")

	rc, err := h.assets.Open(c.Request().Context(), bucket, key)
	if err != nil {
		return err
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Stream(http.StatusOK, contentType, rc)
}
