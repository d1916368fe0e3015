package settings

import (
	"context"
	"maps"
	"sync"

	qterrors "github.com/matzehuels/quicktiles/pkg/errors"
)

// MemoryStore keeps settings in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	bc     *broadcaster
}

// NewMemoryStore creates a memory store seeded with initial values.
func NewMemoryStore(initial map[string]string) *MemoryStore {
	values := make(map[string]string, len(initial))
	maps.Copy(values, initial)
	return &MemoryStore{values: values, bc: newBroadcaster()}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Put(ctx context.Context, key, value string) error {
	if err := qterrors.ValidateSettingKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	s.bc.publish(Change{Key: key, Value: value})
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	_, existed := s.values[key]
	delete(s.values, key)
	s.mu.Unlock()
	if existed {
		s.bc.publish(Change{Key: key, Deleted: true})
	}
	return nil
}

func (s *MemoryStore) List(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values), nil
}

func (s *MemoryStore) Watch(ctx context.Context) (<-chan Change, error) {
	return s.bc.subscribe(ctx), nil
}

func (s *MemoryStore) Close() error {
	s.bc.close()
	return nil
}

var _ Store = (*MemoryStore)(nil)
