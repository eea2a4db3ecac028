package photo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentspot/rental-booking-backend/internal/property"
)

// stubProbe reports no bookings, which is all the photo paths need.
type stubProbe struct{}

func (stubProbe) HasOverlap(ctx context.Context, propertyID string, start, end time.Time, excludeBookingID string) (bool, error) {
	return false, nil
}

func (stubProbe) HasActiveAt(ctx context.Context, propertyID string, at time.Time) (bool, error) {
	return false, nil
}

// memStorage is an in-memory Storage recording saves and deletes.
type memStorage struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	deleted []string
}

func newMemStorage() *memStorage {
	return &memStorage{blobs: make(map[string][]byte)}
}

func (s *memStorage) Save(ctx context.Context, path string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[path] = data
	return nil
}

func (s *memStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.blobs[path]
	if !ok {
		return nil, errors.New("blob not found: " + path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStorage) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, path)
	s.deleted = append(s.deleted, path)
	return nil
}

// failingRepo rejects every metadata write.
type failingRepo struct {
	*MemoryRepository
}

func (r *failingRepo) Create(ctx context.Context, p *Photo) error {
	return errors.New("metadata store unavailable")
}

func newTestService(t *testing.T, repo Repository) (Service, *property.Property, *memStorage) {
	t.Helper()

	propRepo := property.NewMemoryRepository()
	prop := &property.Property{
		CustomerID:   "owner",
		Name:         "Lake Cabin",
		Type:         "cabin",
		MinTime:      1,
		MaxTime:      8,
		PricePerHour: 80,
	}
	require.NoError(t, propRepo.Create(context.Background(), prop))

	store := newMemStorage()
	svc := NewService(repo, property.NewService(propRepo, stubProbe{}), store)
	return svc, prop, store
}

func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)

	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {fmt.Sprintf(`form-data; name="file"; filename=%q`, filename)},
		"Content-Type":        {contentType},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for x := 0; x < 640; x += 2 {
		for y := 0; y < 480; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}

	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestUploadRequiresOwnership(t *testing.T) {
	svc, prop, _ := newTestService(t, NewMemoryRepository())

	header := fileHeader(t, "front.png", "image/png", pngBytes(t))
	_, err := svc.Upload(context.Background(), header, prop.ID, "intruder")
	assert.ErrorIs(t, err, property.ErrNotOwnedByCustomer)
}

func TestUploadRejectsNonImages(t *testing.T) {
	svc, prop, store := newTestService(t, NewMemoryRepository())

	header := fileHeader(t, "notes.txt", "text/plain", []byte("not a picture"))
	_, err := svc.Upload(context.Background(), header, prop.ID, "owner")
	assert.ErrorIs(t, err, ErrNotAnImage)
	assert.Empty(t, store.blobs)
}

func TestUploadStoresBlobAndThumbnail(t *testing.T) {
	repo := NewMemoryRepository()
	svc, prop, store := newTestService(t, repo)

	header := fileHeader(t, "front.png", "image/png", pngBytes(t))
	p, err := svc.Upload(context.Background(), header, prop.ID, "owner")
	require.NoError(t, err)

	assert.Contains(t, store.blobs, p.StoragePath)
	require.NotNil(t, p.ThumbnailPath)
	assert.Contains(t, store.blobs, *p.ThumbnailPath)

	stored, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, prop.ID, stored.PropertyID)
	assert.Equal(t, "front.png", stored.Filename)

	t.Run("thumbnail is optional", func(t *testing.T) {
		// Undecodable content still uploads, just without a thumbnail.
		garbled := fileHeader(t, "broken.png", "image/png", []byte("garbage"))
		p, err := svc.Upload(context.Background(), garbled, prop.ID, "owner")
		require.NoError(t, err)
		assert.Nil(t, p.ThumbnailPath)
		assert.Contains(t, store.blobs, p.StoragePath)
	})
}

func TestUploadCleansUpBlobsWhenMetadataFails(t *testing.T) {
	svc, prop, store := newTestService(t, &failingRepo{NewMemoryRepository()})

	header := fileHeader(t, "front.png", "image/png", pngBytes(t))
	_, err := svc.Upload(context.Background(), header, prop.ID, "owner")
	require.Error(t, err)

	assert.Empty(t, store.blobs, "orphaned blobs must be removed")
	assert.Len(t, store.deleted, 2, "both the photo and its thumbnail are cleaned up")
}

func TestDownloadThumbnail(t *testing.T) {
	repo := NewMemoryRepository()
	svc, prop, _ := newTestService(t, repo)

	withThumb, err := svc.Upload(context.Background(), fileHeader(t, "a.png", "image/png", pngBytes(t)), prop.ID, "owner")
	require.NoError(t, err)
	withoutThumb, err := svc.Upload(context.Background(), fileHeader(t, "b.png", "image/png", []byte("garbage")), prop.ID, "owner")
	require.NoError(t, err)

	stream, info, err := svc.DownloadThumbnail(context.Background(), withThumb.ID)
	require.NoError(t, err)
	defer stream.Close()
	assert.Equal(t, withThumb.ID, info.ID)

	_, _, err = svc.DownloadThumbnail(context.Background(), withoutThumb.ID)
	assert.ErrorIs(t, err, ErrNoThumbnail)
}

func TestDeletePhoto(t *testing.T) {
	repo := NewMemoryRepository()
	svc, prop, store := newTestService(t, repo)

	p, err := svc.Upload(context.Background(), fileHeader(t, "front.png", "image/png", pngBytes(t)), prop.ID, "owner")
	require.NoError(t, err)

	t.Run("only the property owner may delete", func(t *testing.T) {
		err := svc.Delete(context.Background(), p.ID, "intruder")
		assert.ErrorIs(t, err, property.ErrNotOwnedByCustomer)
	})

	t.Run("delete removes blobs and metadata", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), p.ID, "owner"))

		assert.Empty(t, store.blobs)
		_, err := repo.GetByID(context.Background(), p.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
