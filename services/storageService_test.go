package services

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlobStore struct {
	uploadErr error
	objects   map[string][]byte
	deleted   []string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (f *fakeBlobStore) Upload(_ context.Context, key, _ string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.objects[key] = data
	return "https://storage.googleapis.com/test-bucket/" + key, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.objects, key)
	return nil
}

func (f *fakeBlobStore) KeyFromURL(url string) (string, bool) {
	const prefix = "https://storage.googleapis.com/test-bucket/"
	if strings.HasPrefix(url, prefix) {
		return strings.TrimPrefix(url, prefix), true
	}
	return "", false
}

func TestSaveFallsBackToLocalWhenUnconfigured(t *testing.T) {
	dir := t.TempDir()
	uploads := NewUploadService(nil, dir)
	assert.False(t, uploads.IsReady())

	stored, err := uploads.Save(context.Background(), "gallery", "Photo.JPG", "image/jpeg", strings.NewReader("image-bytes"))
	require.NoError(t, err)

	assert.Equal(t, StorageLocal, stored.Storage)
	assert.True(t, strings.HasPrefix(stored.URL, "/uploads/gallery/"))
	assert.True(t, strings.HasSuffix(stored.Filename, ".jpg"))

	data, err := os.ReadFile(filepath.Join(dir, "gallery", stored.Filename))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestSaveFallsBackToLocalWhenCloudFails(t *testing.T) {
	blob := newFakeBlobStore()
	blob.uploadErr = errors.New("503 from storage")
	uploads := NewUploadService(blob, t.TempDir())

	dir := uploads.LocalDir()
	stored, err := uploads.Save(context.Background(), "sermons", "notes.pdf", "application/pdf", strings.NewReader("%PDF-1.7 body"))
	require.NoError(t, err)
	assert.Equal(t, StorageLocal, stored.Storage)
	assert.Empty(t, blob.objects)

	// the failed cloud attempt consumed the reader; the local copy is still whole
	data, err := os.ReadFile(filepath.Join(dir, "sermons", stored.Filename))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 body", string(data))
}

func TestSaveUsesCloudWhenReady(t *testing.T) {
	blob := newFakeBlobStore()
	dir := t.TempDir()
	uploads := NewUploadService(blob, dir)
	assert.True(t, uploads.IsReady())

	stored, err := uploads.Save(context.Background(), "events", "flyer.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)

	assert.Equal(t, StorageCloud, stored.Storage)
	assert.Equal(t, "https://storage.googleapis.com/test-bucket/events/"+stored.Filename, stored.URL)
	assert.Contains(t, blob.objects, "events/"+stored.Filename)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries, "nothing should be written locally")
}

func TestSaveFailsWhenBothTargetsFail(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("a file, not a dir"), 0o644))

	blob := newFakeBlobStore()
	blob.uploadErr = errors.New("offline")
	uploads := NewUploadService(blob, blocker)

	_, err := uploads.Save(context.Background(), "gallery", "a.png", "image/png", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestDeleteMirrorsUpload(t *testing.T) {
	ctx := context.Background()
	blob := newFakeBlobStore()
	dir := t.TempDir()
	uploads := NewUploadService(blob, dir)

	cloud, err := uploads.Save(ctx, "gallery", "a.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)
	require.NoError(t, uploads.Delete(ctx, cloud.URL))
	assert.Equal(t, []string{"gallery/" + cloud.Filename}, blob.deleted)

	local := NewUploadService(nil, dir)
	stored, err := local.Save(ctx, "gallery", "b.png", "image/png", strings.NewReader("y"))
	require.NoError(t, err)
	require.NoError(t, local.Delete(ctx, stored.URL))
	_, err = os.Stat(filepath.Join(dir, "gallery", stored.Filename))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, local.Delete(ctx, ""))
	assert.NoError(t, local.Delete(ctx, "https://www.youtube.com/watch?v=abc"))
	assert.ErrorIs(t, local.Delete(ctx, "https://storage.googleapis.com/other/x.png"), ErrCloudNotConfigured)
	assert.Error(t, local.Delete(ctx, "/uploads/../../etc/passwd"))
}

func TestFirebaseKeyFromURL(t *testing.T) {
	blob := &FirebaseBlobStore{bucketName: "church-bucket"}

	tests := []struct {
		name string
		url  string
		key  string
		ok   bool
	}{
		{name: "public object url", url: "https://storage.googleapis.com/church-bucket/gallery/a.png", key: "gallery/a.png", ok: true},
		{name: "download url", url: "https://firebasestorage.googleapis.com/v0/b/church-bucket/o/gallery%2Fa%20b.png?alt=media&token=abc", key: "gallery/a b.png", ok: true},
		{name: "download url without query", url: "https://firebasestorage.googleapis.com/v0/b/church-bucket/o/sermons%2Fnotes.pdf", key: "sermons/notes.pdf", ok: true},
		{name: "other bucket", url: "https://firebasestorage.googleapis.com/v0/b/other/o/gallery%2Fa.png", ok: false},
		{name: "other bucket public", url: "https://storage.googleapis.com/other/gallery/a.png", ok: false},
		{name: "bucket root", url: "https://storage.googleapis.com/church-bucket/", ok: false},
		{name: "local upload", url: "/uploads/gallery/a.png", ok: false},
		{name: "external link", url: "https://www.youtube.com/watch?v=abc", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := blob.KeyFromURL(tt.url)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestGenerateFilenameAndCategory(t *testing.T) {
	a := GenerateFilename("Sunday Service.MP4")
	b := GenerateFilename("Sunday Service.MP4")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, ".mp4"))
	assert.NotContains(t, a, " ")

	assert.Equal(t, "gallery", NormalizeCategory(" Gallery "))
	assert.Equal(t, DefaultCategory, NormalizeCategory(""))
	assert.Equal(t, DefaultCategory, NormalizeCategory("../secrets"))
}
