package ports

import (
	"context"
	"io"
)

// AssetService uploads files into object storage and hands back public
// URLs served by the asset download route.
type AssetService interface {
	// Upload derives a collision-resistant storage key from filename,
	// stores the object, and returns its public URL. Storage failures
	// propagate; callers must surface them.
	Upload(ctx context.Context, bucket, filename string, data io.Reader) (publicURL string, err error)

	// Open streams a previously uploaded object.
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}
