package status

import (
	"sort"
	"strings"
	"sync"
)

// Table maps dotted names to lazily created values of type T
// Pointers returned by Get stay valid for the life of the table, so callers may
// cache them and update the value without taking the table lock
type Table[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
	keys  []string // sorted
}

// NewTable creates an empty Table
func NewTable[T any]() *Table[T] {
	return &Table[T]{items: make(map[string]*T)}
}

// Get returns the value for key, creating it on first use
func (t *Table[T]) Get(key string) *T {
	t.mu.RLock()
	ptr, ok := t.items[key]
	t.mu.RUnlock()
	if ok {
		return ptr
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if ptr, ok := t.items[key]; ok {
		return ptr
	}
	ptr = new(T)
	t.items[key] = ptr

	i := sort.SearchStrings(t.keys, key)
	t.keys = append(t.keys, "")
	copy(t.keys[i+1:], t.keys[i:])
	t.keys[i] = key
	return ptr
}

// Lookup returns the value for key without creating it
func (t *Table[T]) Lookup(key string) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ptr, ok := t.items[key]
	return ptr, ok
}

// Range visits keys starting with prefix in sorted order; "" visits all
// fn must not call back into the table
func (t *Table[T]) Range(prefix string, fn func(key string, ptr *T)) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := sort.SearchStrings(t.keys, prefix); i < len(t.keys); i++ {
		k := t.keys[i]
		if !strings.HasPrefix(k, prefix) {
			break
		}
		fn(k, t.items[k])
	}
}

// Len returns the number of keys
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.keys)
}
