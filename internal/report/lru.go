package report

import (
	"container/list"
	"sync"
)

// LRUStore is an in-memory LRU cache that delegates to a backing Store on
// miss. It keeps the most recent reports of a server session loadable
// without a disk round-trip.
type LRUStore struct {
	mu    sync.Mutex
	cap   int
	back  Store
	order *list.List // front = most recently used; values are *RunReport
	items map[string]*list.Element
}

// NewLRUStore creates an LRU cache with the given capacity that delegates
// to back on cache misses. Capacity must be >= 1.
func NewLRUStore(capacity int, back Store) *LRUStore {
	if capacity < 1 {
		capacity = 1
	}
	return &LRUStore{
		cap:   capacity,
		back:  back,
		order: list.New(),
		items: make(map[string]*list.Element, capacity),
	}
}

// Save caches the report and delegates to the backing store.
func (s *LRUStore) Save(report *RunReport) error {
	s.mu.Lock()
	s.put(report)
	s.mu.Unlock()
	return s.back.Save(report)
}

// Load checks the cache first. On miss, loads from the backing store and
// promotes the report into the cache.
func (s *LRUStore) Load(runID string) (*RunReport, error) {
	s.mu.Lock()
	if el, ok := s.items[runID]; ok {
		s.order.MoveToFront(el)
		r := el.Value.(*RunReport)
		s.mu.Unlock()
		return r, nil
	}
	s.mu.Unlock()

	report, err := s.back.Load(runID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.put(report)
	s.mu.Unlock()
	return report, nil
}

// put inserts or refreshes a cache entry, evicting the least recently used
// entry when over capacity. Callers hold s.mu.
func (s *LRUStore) put(report *RunReport) {
	if el, ok := s.items[report.ID]; ok {
		el.Value = report
		s.order.MoveToFront(el)
		return
	}
	s.items[report.ID] = s.order.PushFront(report)
	if s.order.Len() > s.cap {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.items, oldest.Value.(*RunReport).ID)
	}
}
