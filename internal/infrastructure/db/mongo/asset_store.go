package mongo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emotional-truth/portal-api/internal/core/domain"
)

// AssetStore is the object storage backend, one GridFS bucket per logical
// bucket name (logos, ads, avatars).
type AssetStore struct {
	db *mongo.Database
}

func NewAssetStore(db *mongo.Database) *AssetStore {
	return &AssetStore{db: db}
}

func (s *AssetStore) bucket(name string) (*gridfs.Bucket, error) {
	b, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(name))
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", name, err)
	}
	return b, nil
}

// deadlineFrom converts a context deadline into the absolute deadline the
// gridfs API works with.
func deadlineFrom(ctx context.Context) time.Time {
	if d, ok := ctx.Deadline(); ok {
		return d
	}
	return time.Now().Add(defaultTimeout)
}

// Upload stores data under key. Keys are never overwritten: an existing
// file with the same name is a hard error.
func (s *AssetStore) Upload(ctx context.Context, bucketName, key string, data io.Reader) error {
	b, err := s.bucket(bucketName)
	if err != nil {
		return err
	}
	if err := b.SetWriteDeadline(deadlineFrom(ctx)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := b.SetReadDeadline(deadlineFrom(ctx)); err != nil {
		return fmt.Errorf("set read deadline: %w", err)
	}

	cur, err := b.Find(bson.M{"filename": key}, options.GridFSFind().SetLimit(1))
	if err != nil {
		return fmt.Errorf("check key %s: %w", key, err)
	}
	exists := cur.Next(ctx)
	if closeErr := cur.Close(ctx); closeErr != nil {
		return fmt.Errorf("check key %s: %w", key, closeErr)
	}
	if exists {
		return domain.ErrAssetExists
	}

	if _, err := b.UploadFromStream(key, data); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

// Open streams an object back; the caller closes the returned stream.
func (s *AssetStore) Open(ctx context.Context, bucketName, key string) (io.ReadCloser, error) {
	b, err := s.bucket(bucketName)
	if err != nil {
		return nil, err
	}
	if err := b.SetReadDeadline(deadlineFrom(ctx)); err != nil {
		return nil, fmt.Errorf("set read deadline: %w", err)
	}

	ds, err := b.OpenDownloadStreamByName(key)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("open %s/%s: %w", bucketName, key, err)
	}
	return ds, nil
}
