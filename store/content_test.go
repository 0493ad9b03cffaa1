package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentStore(t *testing.T) *ContentStore {
	t.Helper()
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	return NewContentStore(backend, "content", func() map[string]any {
		return map[string]any{"hero": map[string]string{"title": "Welcome"}}
	})
}

func TestContentSeededOnFirstRead(t *testing.T) {
	content := newContentStore(t)

	hero, err := content.Section(context.Background(), "hero")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Welcome"}`, string(hero))
}

func TestContentSectionNotFound(t *testing.T) {
	content := newContentStore(t)

	_, err := content.Section(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentPutSectionRoundTrip(t *testing.T) {
	ctx := context.Background()
	content := newContentStore(t)

	payloads := []string{
		`{"title":"New","nested":{"list":[1,2,{"deep":true}]}}`,
		`[1,"two",null]`,
		`"just a string"`,
		`42.5`,
	}
	for _, payload := range payloads {
		require.NoError(t, content.PutSection(ctx, "custom", json.RawMessage(payload)))

		got, err := content.Section(ctx, "custom")
		require.NoError(t, err)
		assert.JSONEq(t, payload, string(got))
	}

	all := content.All(ctx)
	assert.Contains(t, all, "hero")
	assert.Contains(t, all, "custom")
}

func TestContentRejectsInvalidJSON(t *testing.T) {
	content := newContentStore(t)

	err := content.PutSection(context.Background(), "hero", json.RawMessage(`{"title":`))
	assert.ErrorIs(t, err, ErrInvalidPatch)
}

func TestContentWriteFailure(t *testing.T) {
	backend := &failingBackend{data: map[string][]byte{"content": []byte(`{}`)}}
	content := NewContentStore(backend, "content", nil)

	err := content.PutSection(context.Background(), "hero", json.RawMessage(`{"title":"x"}`))
	assert.ErrorIs(t, err, ErrPersist)
}

func TestCorruptContentIsKeptAsideAndReseeded(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "content.json"), []byte(`["not","an","object"]`), 0o644))
	content := NewContentStore(backend, "content", func() map[string]any {
		return map[string]any{"hero": map[string]string{"title": "Welcome"}}
	})

	hero, err := content.Section(context.Background(), "hero")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Welcome"}`, string(hero))

	moved, err := filepath.Glob(filepath.Join(dir, "content.json.corrupt-*"))
	require.NoError(t, err)
	require.Len(t, moved, 1)
	kept, err := os.ReadFile(moved[0])
	require.NoError(t, err)
	assert.Equal(t, `["not","an","object"]`, string(kept))
}
