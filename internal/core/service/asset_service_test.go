package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/emotional-truth/portal-api/internal/core/domain"
)

type stubAssetStore struct {
	objects   map[string][]byte
	uploadErr error
}

func newStubAssetStore() *stubAssetStore {
	return &stubAssetStore{objects: make(map[string][]byte)}
}

func (s *stubAssetStore) Upload(_ context.Context, bucket, key string, data io.Reader) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	full := bucket + "/" + key
	if _, ok := s.objects[full]; ok {
		return domain.ErrAssetExists
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	s.objects[full] = b
	return nil
}

func (s *stubAssetStore) Open(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	b, ok := s.objects[bucket+"/"+key]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func TestStorageKey_SanitizesFilename(t *testing.T) {
	at := time.Unix(0, 1700000000000000000)
	key := StorageKey("my logo (final)!.PNG", at)

	want := "mylogofinal_1700000000000000000.png"
	if key != want {
		t.Fatalf("StorageKey = %q, want %q", key, want)
	}
	if !regexp.MustCompile(`^[a-zA-Z0-9]+_\d+\.[a-z0-9]+$`).MatchString(key) {
		t.Fatalf("key %q is not alphanumerics + timestamp + extension", key)
	}
}

func TestStorageKey_TruncatesLongBase(t *testing.T) {
	long := strings.Repeat("a", 100) + ".jpg"
	key := StorageKey(long, time.Unix(1, 0))
	base := strings.SplitN(key, "_", 2)[0]
	if len(base) != maxKeyBaseLen {
		t.Fatalf("base length %d, want %d", len(base), maxKeyBaseLen)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("extension lost: %q", key)
	}
}

func TestStorageKey_AllPunctuationFallsBack(t *testing.T) {
	key := StorageKey("!!!.png", time.Unix(2, 0))
	if !strings.HasPrefix(key, "file_") {
		t.Fatalf("expected fallback base, got %q", key)
	}
}

func TestAssetService_Upload_ReturnsPublicURL(t *testing.T) {
	store := newStubAssetStore()
	svc := NewAssetService(store, "https://portal.example.com/", zerolog.Nop())
	svc.now = func() time.Time { return time.Unix(0, 1700000000000000000) }

	url, err := svc.Upload(context.Background(), "logos", "site logo.png", strings.NewReader("imagebytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	want := "https://portal.example.com/assets/logos/sitelogo_1700000000000000000.png"
	if url != want {
		t.Fatalf("url = %q, want %q", url, want)
	}

	rc, err := svc.Open(context.Background(), "logos", "sitelogo_1700000000000000000.png")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	if string(b) != "imagebytes" {
		t.Fatalf("stored bytes mismatch: %q", b)
	}
}

func TestAssetService_Upload_SameNameNeverCollides(t *testing.T) {
	store := newStubAssetStore()
	svc := NewAssetService(store, "http://localhost:8080", zerolog.Nop())

	ts := int64(1000)
	svc.now = func() time.Time {
		ts++
		return time.Unix(0, ts)
	}

	u1, err := svc.Upload(context.Background(), "ads", "banner.png", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	u2, err := svc.Upload(context.Background(), "ads", "banner.png", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if u1 == u2 {
		t.Fatalf("identical base names produced colliding keys: %q", u1)
	}
}

func TestAssetService_Upload_FailurePropagates(t *testing.T) {
	store := newStubAssetStore()
	store.uploadErr = errors.New("bucket unavailable")
	svc := NewAssetService(store, "http://localhost:8080", zerolog.Nop())

	if _, err := svc.Upload(context.Background(), "ads", "x.png", strings.NewReader("a")); err == nil {
		t.Fatalf("expected upload failure to propagate")
	}
}
