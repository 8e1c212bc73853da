package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/emotional-truth/portal-api/internal/core/ports"
)

// maxKeyBaseLen caps the sanitized base name inside a storage key; the
// timestamp suffix keeps truncated names collision-free.
const maxKeyBaseLen = 40

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// AssetService uploads files into object storage. Keys are derived from
// the original filename but never reused: the base name is reduced to
// alphanumerics, truncated, and joined with a nanosecond timestamp and the
// original extension.
type AssetService struct {
	store         ports.AssetStore
	publicBaseURL string
	logger        zerolog.Logger

	// now is swapped out in tests.
	now func() time.Time
}

func NewAssetService(store ports.AssetStore, publicBaseURL string, logger zerolog.Logger) *AssetService {
	return &AssetService{
		store:         store,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
		now:           time.Now,
	}
}

// Upload stores data under a derived key and returns the public URL.
// Either step failing propagates: callers must surface the error instead
// of continuing with a stale URL.
func (s *AssetService) Upload(ctx context.Context, bucket, filename string, data io.Reader) (string, error) {
	key := StorageKey(filename, s.now())
	if err := s.store.Upload(ctx, bucket, key, data); err != nil {
		return "", fmt.Errorf("upload %s/%s: %w", bucket, key, err)
	}

	url := fmt.Sprintf("%s/assets/%s/%s", s.publicBaseURL, bucket, key)
	s.logger.Info().Str("bucket", bucket).Str("key", key).Msg("asset uploaded")
	return url, nil
}

func (s *AssetService) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return s.store.Open(ctx, bucket, key)
}

// StorageKey builds a collision-resistant object key from a raw filename:
// the base name stripped to alphanumerics and truncated, an underscore, the
// upload timestamp in nanoseconds, and the lowercased original extension.
func StorageKey(filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = nonAlphanumeric.ReplaceAllString(base, "")
	if len(base) > maxKeyBaseLen {
		base = base[:maxKeyBaseLen]
	}
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s_%d%s", base, now.UnixNano(), ext)
}
