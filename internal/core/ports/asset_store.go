package ports

import (
	"context"
	"io"
)

// AssetStore is the object storage interface backing uploaded files
// (logos, ad images, avatars).
type AssetStore interface {
	// Upload stores an object under key without overwrite: if the key is
	// already taken, domain.ErrAssetExists is returned.
	Upload(ctx context.Context, bucket, key string, data io.Reader) error

	// Open streams a stored object back. Returns domain.ErrAssetNotFound
	// for unknown keys. The caller closes the reader.
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}
