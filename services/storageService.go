package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	LocalURLPrefix  = "/uploads"
	DefaultCategory = "general"

	StorageCloud = "cloud"
	StorageLocal = "local"
)

var (
	categoryPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)
	cloudHosts      = []string{"storage.googleapis.com", "firebasestorage.googleapis.com"}

	ErrCloudNotConfigured = errors.New("cloud storage is not configured")
)

// BlobStore is a cloud object store addressed by key.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL reports whether rawURL points into this store.
	KeyFromURL(rawURL string) (string, bool)
}

type StoredFile struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Storage  string `json:"storage"`
}

// UploadService writes uploads to the cloud store when one is configured and
// falls back to local disk when it is not or when the cloud upload fails.
type UploadService struct {
	blob     BlobStore
	localDir string
}

// NewUploadService accepts a nil blob store; every upload then goes to disk.
func NewUploadService(blob BlobStore, localDir string) *UploadService {
	return &UploadService{blob: blob, localDir: localDir}
}

// IsReady reports whether cloud storage is available.
func (s *UploadService) IsReady() bool {
	return s.blob != nil
}

func (s *UploadService) LocalDir() string {
	return s.localDir
}

// Save streams body under category. Callers only see an error when both the
// cloud and the local attempt fail. body is rewound before the local attempt.
func (s *UploadService) Save(ctx context.Context, category, originalName, contentType string, body io.ReadSeeker) (StoredFile, error) {
	category = NormalizeCategory(category)
	filename := GenerateFilename(originalName)

	if s.blob != nil {
		location, err := s.blob.Upload(ctx, category+"/"+filename, contentType, body)
		if err == nil {
			return StoredFile{URL: location, Filename: filename, Storage: StorageCloud}, nil
		}
		log.Warn().Err(err).Str("category", category).Str("file", filename).Msg("cloud upload failed, storing locally")
		if _, err := body.Seek(0, io.SeekStart); err != nil {
			return StoredFile{}, fmt.Errorf("rewind upload: %w", err)
		}
	}

	dir := filepath.Join(s.localDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return StoredFile{}, fmt.Errorf("create upload dir: %w", err)
	}
	if err := writeLocal(filepath.Join(dir, filename), body); err != nil {
		return StoredFile{}, err
	}

	return StoredFile{
		URL:      LocalURLPrefix + "/" + category + "/" + filename,
		Filename: filename,
		Storage:  StorageLocal,
	}, nil
}

// Delete removes the asset behind url. URLs that belong to neither store
// (external video links, empty strings) are ignored.
func (s *UploadService) Delete(ctx context.Context, fileURL string) error {
	if fileURL == "" {
		return nil
	}

	if s.blob != nil {
		if key, ok := s.blob.KeyFromURL(fileURL); ok {
			return s.blob.Delete(ctx, key)
		}
	}
	if isCloudURL(fileURL) {
		return ErrCloudNotConfigured
	}

	if !strings.HasPrefix(fileURL, LocalURLPrefix+"/") {
		return nil
	}
	path, err := s.localPath(strings.TrimPrefix(fileURL, LocalURLPrefix+"/"))
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// writeLocal copies body to path and removes the partial file on failure.
func writeLocal(path string, body io.Reader) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create upload: %w", err)
	}
	_, err = io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("write upload: %w", err)
	}
	return nil
}

func (s *UploadService) localPath(rel string) (string, error) {
	base, err := filepath.Abs(s.localDir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(base, filepath.FromSlash(rel))
	inside, err := filepath.Rel(base, path)
	if err != nil || inside == "." || strings.HasPrefix(inside, "..") {
		return "", fmt.Errorf("upload path %q escapes the uploads directory", rel)
	}
	return path, nil
}

// GenerateFilename builds a collision resistant name: a millisecond
// timestamp, a random suffix and the original extension.
func GenerateFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}

func NormalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if !categoryPattern.MatchString(category) {
		return DefaultCategory
	}
	return category
}

func isCloudURL(rawURL string) bool {
	for _, host := range cloudHosts {
		if strings.HasPrefix(rawURL, "https://"+host+"/") {
			return true
		}
	}
	return false
}

// FirebaseBlobStore keeps uploads in the project's Cloud Storage bucket.
type FirebaseBlobStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewFirebaseBlobStore(ctx context.Context, app *firebase.App, bucketName string) (*FirebaseBlobStore, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase storage client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("firebase storage bucket %s: %w", bucketName, err)
	}
	return &FirebaseBlobStore{bucket: bucket, bucketName: bucketName}, nil
}

func (b *FirebaseBlobStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := b.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000"

	if _, err := io.Copy(w, body); err != nil {
		cancel()
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return b.publicURL(key), nil
}

func (b *FirebaseBlobStore) Delete(ctx context.Context, key string) error {
	return b.bucket.Object(key).Delete(ctx)
}

// KeyFromURL accepts both public object URLs and Firebase download URLs,
// which carry the escaped key as /v0/b/<bucket>/o/<key>.
func (b *FirebaseBlobStore) KeyFromURL(rawURL string) (string, bool) {
	if key, ok := strings.CutPrefix(rawURL, "https://storage.googleapis.com/"+b.bucketName+"/"); ok && key != "" {
		return key, true
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "https" || u.Host != "firebasestorage.googleapis.com" {
		return "", false
	}
	escaped, ok := strings.CutPrefix(u.EscapedPath(), "/v0/b/"+b.bucketName+"/o/")
	if !ok || escaped == "" {
		return "", false
	}
	key, err := url.PathUnescape(escaped)
	if err != nil {
		return "", false
	}
	return key, true
}

func (b *FirebaseBlobStore) publicURL(key string) string {
	return "https://storage.googleapis.com/" + b.bucketName + "/" + key
}
