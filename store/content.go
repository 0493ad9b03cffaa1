package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// ContentStore holds the site content: one JSON object keyed by section
// name. Each section is replaced whole on write.
type ContentStore struct {
	name    string
	backend Backend
	seed    func() map[string]any

	mu sync.Mutex
}

func NewContentStore(backend Backend, name string, seed func() map[string]any) *ContentStore {
	return &ContentStore{name: name, backend: backend, seed: seed}
}

// All returns every section. Like Collection.Read it degrades to an empty
// document instead of failing.
func (s *ContentStore) All(ctx context.Context) map[string]json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx)
}

func (s *ContentStore) Section(ctx context.Context, section string) (json.RawMessage, error) {
	value, ok := s.All(ctx)[section]
	if !ok {
		return nil, ErrNotFound
	}
	return value, nil
}

// PutSection overwrites one section with body, which must be valid JSON.
func (s *ContentStore) PutSection(ctx context.Context, section string, body json.RawMessage) error {
	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read(ctx)
	doc[section] = json.RawMessage(compact.Bytes())
	return s.write(ctx, doc)
}

func (s *ContentStore) read(ctx context.Context) map[string]json.RawMessage {
	data, err := s.backend.Load(ctx, s.name)
	if errors.Is(err, ErrNotExist) {
		return s.seedAndPersist(ctx)
	}
	if err != nil {
		log.Error().Err(err).Str("collection", s.name).Msg("reading content failed, serving empty content")
		return map[string]json.RawMessage{}
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		log.Error().Err(err).Str("collection", s.name).Msg("content is not a JSON object")
		if quarantine(ctx, s.backend, s.name) {
			return s.seedAndPersist(ctx)
		}
		return map[string]json.RawMessage{}
	}
	return doc
}

func (s *ContentStore) seedAndPersist(ctx context.Context) map[string]json.RawMessage {
	doc := s.seeded()
	if err := s.write(ctx, doc); err != nil {
		log.Warn().Err(err).Str("collection", s.name).Msg("could not persist seeded content")
	}
	return doc
}

func (s *ContentStore) write(ctx context.Context, doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPersist, s.name, err)
	}
	if err := s.backend.Save(ctx, s.name, data); err != nil {
		log.Error().Err(err).Str("collection", s.name).Msg("writing content failed")
		return fmt.Errorf("%w: %s: %w", ErrPersist, s.name, err)
	}
	return nil
}

func (s *ContentStore) seeded() map[string]json.RawMessage {
	doc := map[string]json.RawMessage{}
	if s.seed == nil {
		return doc
	}
	for section, value := range s.seed() {
		raw, err := json.Marshal(value)
		if err != nil {
			log.Warn().Err(err).Str("section", section).Msg("skipping unencodable default section")
			continue
		}
		doc[section] = raw
	}
	return doc
}
