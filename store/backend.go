// Package store keeps each resource as one JSON document behind a pluggable
// backend. Documents are read and written whole; a per-collection mutex
// serializes read-modify-write cycles inside the process.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNotExist is returned by a Backend when the named document has never
	// been saved.
	ErrNotExist = errors.New("document does not exist")
	ErrNotFound = errors.New("item not found")
	// ErrPersist wraps every failure to save a document.
	ErrPersist = errors.New("failed to persist document")
)

type Backend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

// Quarantiner is implemented by backends that can move an unreadable
// document aside. It returns where the document went.
type Quarantiner interface {
	Quarantine(ctx context.Context, name string) (string, error)
}

func corruptName(name string) string {
	return name + ".corrupt-" + time.Now().UTC().Format("20060102T150405.000000000")
}

// quarantine moves the named document aside when the backend supports it and
// reports whether the name is now free.
func quarantine(ctx context.Context, backend Backend, name string) bool {
	q, ok := backend.(Quarantiner)
	if !ok {
		return false
	}
	moved, err := q.Quarantine(ctx, name)
	if err != nil {
		log.Error().Err(err).Str("collection", name).Msg("could not move unreadable document aside")
		return false
	}
	log.Warn().Str("collection", name).Str("moved_to", moved).Msg("unreadable document moved aside")
	return true
}

// FileBackend stores documents as <Dir>/<name>.json.
type FileBackend struct {
	Dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &FileBackend{Dir: dir}, nil
}

func (b *FileBackend) path(name string) string {
	return filepath.Join(b.Dir, name+".json")
}

func (b *FileBackend) Load(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(b.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotExist
	}
	return data, err
}

// Save writes to a temp file in the same directory and renames it over the
// target, so readers never observe a half-written document.
func (b *FileBackend) Save(_ context.Context, name string, data []byte) error {
	tmp, err := os.CreateTemp(b.Dir, name+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, b.path(name)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Quarantine renames <name>.json to <name>.json.corrupt-<timestamp>.
func (b *FileBackend) Quarantine(_ context.Context, name string) (string, error) {
	target := corruptName(b.path(name))
	if err := os.Rename(b.path(name), target); err != nil {
		return "", err
	}
	return target, nil
}
