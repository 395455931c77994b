// Package memory provides a map-backed ObjectStore used in tests and when no
// Drive folder is configured.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hirotalab/cms-server/internal/storage"
)

type object struct {
	data        []byte
	contentType string
	updatedAt   time.Time
}

// Store is an in-memory object store. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	objects map[string]object
}

func New() *Store {
	return &Store{objects: make(map[string]object)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	data := make([]byte, len(obj.data))
	copy(data, obj.data)
	return data, nil
}

func (s *Store) Put(_ context.Context, key string, data []byte, contentType string) error {
	stored := make([]byte, len(data))
	copy(stored, data)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = object{data: stored, contentType: contentType, updatedAt: time.Now().UTC()}
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return storage.ErrNotFound
	}
	delete(s.objects, key)
	return nil
}

func (s *Store) List(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]storage.ObjectInfo, 0, len(s.objects))
	for key, obj := range s.objects {
		if !matchesPrefix(key, prefix) {
			continue
		}
		infos = append(infos, info(key, obj))
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func (s *Store) Stat(_ context.Context, key string) (storage.ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return storage.ObjectInfo{}, storage.ErrNotFound
	}
	return info(key, obj), nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.Stat(ctx, key)
	if err == storage.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

// matchesPrefix treats the prefix as a folder name: an empty prefix matches
// only root-level keys, mirroring the Drive folder layout.
func matchesPrefix(key, prefix string) bool {
	if prefix == "" {
		return !strings.Contains(key, "/")
	}
	return strings.HasPrefix(key, prefix+"/")
}

func info(key string, obj object) storage.ObjectInfo {
	return storage.ObjectInfo{
		Key:         key,
		ID:          key,
		Size:        int64(len(obj.data)),
		ContentType: obj.contentType,
		UpdatedAt:   obj.updatedAt,
	}
}
