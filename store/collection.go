package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Entity is satisfied by a pointer to any item type that carries an integer id.
type Entity[T any] interface {
	*T
	GetID() int
	SetID(id int)
}

// Document is the on-disk shape of a collection. NextID is always greater
// than every id handed out so far, so ids are never reused.
type Document[T any] struct {
	Items  []T `json:"items"`
	NextID int `json:"nextId"`
}

type Collection[T any, P Entity[T]] struct {
	name    string
	backend Backend
	seed    func() []T

	mu sync.Mutex
}

// NewCollection binds a named document to a backend. seed may be nil; when
// set it provides the items written the first time the document is read.
func NewCollection[T any, P Entity[T]](backend Backend, name string, seed func() []T) *Collection[T, P] {
	return &Collection[T, P]{name: name, backend: backend, seed: seed}
}

func (c *Collection[T, P]) Name() string {
	return c.name
}

// Read never fails. A missing document is seeded and saved; an unreadable one
// is logged and served as an empty collection.
func (c *Collection[T, P]) Read(ctx context.Context) *Document[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read(ctx)
}

// Write replaces the stored document. The error wraps ErrPersist.
func (c *Collection[T, P]) Write(ctx context.Context, doc *Document[T]) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(ctx, doc)
}

// List returns every item, ordered by sortFn when it is not nil.
func (c *Collection[T, P]) List(ctx context.Context, sortFn func([]T)) []T {
	items := c.Read(ctx).Items
	if sortFn != nil {
		sortFn(items)
	}
	return items
}

// Filter returns the items matching keep, in stored order.
func (c *Collection[T, P]) Filter(ctx context.Context, keep func(T) bool) []T {
	matched := []T{}
	for _, item := range c.Read(ctx).Items {
		if keep(item) {
			matched = append(matched, item)
		}
	}
	return matched
}

func (c *Collection[T, P]) Get(ctx context.Context, id int) (T, error) {
	doc := c.Read(ctx)
	if idx := indexOf[T, P](doc.Items, id); idx >= 0 {
		return doc.Items[idx], nil
	}
	var zero T
	return zero, ErrNotFound
}

// Create assigns the next id to item, appends it and saves the document.
func (c *Collection[T, P]) Create(ctx context.Context, item T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.read(ctx)
	P(&item).SetID(doc.NextID)
	doc.NextID++
	doc.Items = append(doc.Items, item)

	if err := c.write(ctx, doc); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// Update applies fn to a copy of the item with the given id and saves the
// result. The id cannot be changed by fn. Nothing is written when fn fails.
func (c *Collection[T, P]) Update(ctx context.Context, id int, fn func(item *T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	doc := c.read(ctx)
	idx := indexOf[T, P](doc.Items, id)
	if idx < 0 {
		return zero, ErrNotFound
	}

	updated := doc.Items[idx]
	if err := fn(&updated); err != nil {
		return zero, err
	}
	P(&updated).SetID(id)
	doc.Items[idx] = updated

	if err := c.write(ctx, doc); err != nil {
		return zero, err
	}
	return updated, nil
}

// Delete removes the item with the given id and returns it.
func (c *Collection[T, P]) Delete(ctx context.Context, id int) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	doc := c.read(ctx)
	idx := indexOf[T, P](doc.Items, id)
	if idx < 0 {
		return zero, ErrNotFound
	}

	removed := doc.Items[idx]
	doc.Items = append(doc.Items[:idx], doc.Items[idx+1:]...)

	if err := c.write(ctx, doc); err != nil {
		return zero, err
	}
	return removed, nil
}

// Mutate runs fn against the whole document under the collection lock and
// saves it unless fn returns an error.
func (c *Collection[T, P]) Mutate(ctx context.Context, fn func(doc *Document[T]) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.read(ctx)
	if err := fn(doc); err != nil {
		return err
	}
	return c.write(ctx, doc)
}

func (c *Collection[T, P]) read(ctx context.Context) *Document[T] {
	data, err := c.backend.Load(ctx, c.name)
	if errors.Is(err, ErrNotExist) {
		return c.seedAndPersist(ctx)
	}
	if err != nil {
		log.Error().Err(err).Str("collection", c.name).Msg("reading document failed, serving empty collection")
		return emptyDocument[T]()
	}

	var doc Document[T]
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Error().Err(err).Str("collection", c.name).Msg("document is not valid JSON")
		if quarantine(ctx, c.backend, c.name) {
			return c.seedAndPersist(ctx)
		}
		return emptyDocument[T]()
	}
	if doc.Items == nil {
		doc.Items = []T{}
	}
	c.repairNextID(&doc)
	return &doc
}

func (c *Collection[T, P]) seedAndPersist(ctx context.Context) *Document[T] {
	doc := c.seeded()
	if err := c.write(ctx, doc); err != nil {
		log.Warn().Err(err).Str("collection", c.name).Msg("could not persist seeded document")
	}
	return doc
}

func (c *Collection[T, P]) write(ctx context.Context, doc *Document[T]) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Error().Err(err).Str("collection", c.name).Msg("encoding document failed")
		return fmt.Errorf("%w: %s: %w", ErrPersist, c.name, err)
	}
	if err := c.backend.Save(ctx, c.name, data); err != nil {
		log.Error().Err(err).Str("collection", c.name).Msg("writing document failed")
		return fmt.Errorf("%w: %s: %w", ErrPersist, c.name, err)
	}
	return nil
}

func (c *Collection[T, P]) seeded() *Document[T] {
	doc := emptyDocument[T]()
	if c.seed == nil {
		return doc
	}
	for _, item := range c.seed() {
		P(&item).SetID(doc.NextID)
		doc.NextID++
		doc.Items = append(doc.Items, item)
	}
	return doc
}

// repairNextID keeps ids unique when a document was edited by hand and its
// counter fell behind the items.
func (c *Collection[T, P]) repairNextID(doc *Document[T]) {
	for i := range doc.Items {
		if id := P(&doc.Items[i]).GetID(); id >= doc.NextID {
			doc.NextID = id + 1
		}
	}
	if doc.NextID < 1 {
		doc.NextID = 1
	}
}

func emptyDocument[T any]() *Document[T] {
	return &Document[T]{Items: []T{}, NextID: 1}
}

func indexOf[T any, P Entity[T]](items []T, id int) int {
	for i := range items {
		if P(&items[i]).GetID() == id {
			return i
		}
	}
	return -1
}
