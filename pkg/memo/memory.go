package memo

import (
	"container/list"
	"context"
	"maps"
	"slices"
	"sync"
	"time"
)

// DefaultCapacity bounds a MemoryStore created without WithCapacity.
const DefaultCapacity = 10000

type memoryItem struct {
	entry     Entry
	expiresAt time.Time
}

// MemoryStore is a bounded in-process Store. When full, the least recently
// used environment is evicted, so abandoned environments do not accumulate.
type MemoryStore struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	items    map[string]*list.Element
	eviction *list.List
}

var _ Store = (*MemoryStore)(nil)

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithCapacity sets the maximum number of environments kept.
// Non-positive values keep the default.
func WithCapacity(n int) MemoryOption {
	return func(s *MemoryStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithTTL expires entries that were not overwritten for d. Zero disables expiry.
func WithTTL(d time.Duration) MemoryOption {
	return func(s *MemoryStore) {
		if d >= 0 {
			s.ttl = d
		}
	}
}

// WithMemoryClock sets the time source used for expiry.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		capacity: DefaultCapacity,
		now:      time.Now,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Save(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := &memoryItem{entry: cloneEntry(e)}
	if s.ttl > 0 {
		item.expiresAt = s.now().Add(s.ttl)
	}

	if elem, ok := s.items[e.EnvironmentID]; ok {
		elem.Value = item
		s.eviction.MoveToFront(elem)
		return nil
	}

	s.items[e.EnvironmentID] = s.eviction.PushFront(item)
	for s.eviction.Len() > s.capacity {
		s.remove(s.eviction.Back())
	}
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, environmentID string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[environmentID]
	if !ok {
		return Entry{}, ErrNotFound
	}
	item := elem.Value.(*memoryItem)
	if !item.expiresAt.IsZero() && !s.now().Before(item.expiresAt) {
		s.remove(elem)
		return Entry{}, ErrNotFound
	}
	s.eviction.MoveToFront(elem)
	return cloneEntry(item.entry), nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Len returns the number of environments held, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eviction.Len()
}

// cloneEntry copies the encoded values and index so callers never share
// backing storage with the store.
func cloneEntry(e Entry) Entry {
	e.Encoded.Values = slices.Clone(e.Encoded.Values)
	e.Encoded.Index = maps.Clone(e.Encoded.Index)
	return e
}

// remove must be called with the lock held.
func (s *MemoryStore) remove(elem *list.Element) {
	if elem == nil {
		return
	}
	s.eviction.Remove(elem)
	delete(s.items, elem.Value.(*memoryItem).entry.EnvironmentID)
}
