package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hirotalab/cms-server/internal/storage"
)

const documentContentType = "application/json"

// DocumentStore reads and writes whole collection documents against the
// object store, under a configurable key prefix.
type DocumentStore struct {
	objects storage.ObjectStore
	prefix  string
	now     func() string
}

func NewDocumentStore(objects storage.ObjectStore, prefix string) *DocumentStore {
	return &DocumentStore{objects: objects, prefix: prefix, now: nowISO}
}

func (s *DocumentStore) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// nowISO is the timestamp format used everywhere: ISO-8601 in UTC.
func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// readDocument fetches and parses the document stored under name. A missing
// object, empty bytes, or a blob that does not parse all yield a fresh empty
// document; only real storage failures surface as errors.
func readDocument[T any](ctx context.Context, s *DocumentStore, name string) (Document[T], error) {
	empty := Document[T]{UpdatedAt: s.now(), Items: []T{}}

	raw, err := s.objects.Get(ctx, s.key(name))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return empty, nil
		}
		return Document[T]{}, fmt.Errorf("read %s: %w", name, err)
	}
	if len(raw) == 0 {
		return empty, nil
	}

	var doc Document[T]
	if err := json.Unmarshal(raw, &doc); err != nil {
		return empty, nil
	}
	if doc.Items == nil {
		doc.Items = []T{}
	}
	return doc, nil
}

// writeDocument serializes the document with human-readable indentation and
// overwrites the stored object unconditionally. There is no etag or
// conditional write: the last writer wins.
func writeDocument[T any](ctx context.Context, s *DocumentStore, name string, doc Document[T]) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := s.objects.Put(ctx, s.key(name), data, documentContentType); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
