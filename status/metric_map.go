package status

import (
	"maps"
	"slices"
	"sync"
)

// MetricMap holds named metrics of one kind
// Callers cache the returned pointers; only first registration takes the write lock
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the metric for key, registering a zero value on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok = m.items[key]; !ok {
		ptr = new(T)
		m.items[key] = ptr
	}
	return ptr
}

func (m *MetricMap[T]) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[key]
	return ok
}

// Range visits metrics in key order on a copy, fn may register new keys
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()
	snapshot := maps.Clone(m.items)
	m.mu.RUnlock()

	for _, k := range slices.Sorted(maps.Keys(snapshot)) {
		fn(k, snapshot[k])
	}
}

func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
