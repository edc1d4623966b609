// Package status collects decode counters and labels shared across loads
package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxLabelLen bounds label values such as file names and error texts
const MaxLabelLen = 120

// Label is an atomically replaced string, cut to MaxLabelLen bytes on a rune boundary
// Zero value reads as ""
type Label struct {
	ptr atomic.Pointer[string]
}

func (l *Label) Store(val string) {
	if len(val) > MaxLabelLen {
		cut := MaxLabelLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	l.ptr.Store(&val)
}

func (l *Label) Load() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

// Registry holds named counters and labels
// Loads on separate streams may share one Registry; a nil Registry discards everything
type Registry struct {
	counts *Table[atomic.Int64]
	labels *Table[Label]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		counts: NewTable[atomic.Int64](),
		labels: NewTable[Label](),
	}
}

// Add increments the counter at key by n
func (r *Registry) Add(key string, n int64) {
	if r == nil {
		return
	}
	r.counts.Get(key).Add(n)
}

// Inc increments the counter at key by one
func (r *Registry) Inc(key string) { r.Add(key, 1) }

// Value returns the counter at key, 0 if never set
func (r *Registry) Value(key string) int64 {
	if r == nil {
		return 0
	}
	if ptr, ok := r.counts.Lookup(key); ok {
		return ptr.Load()
	}
	return 0
}

// SetLabel stores val at key
func (r *Registry) SetLabel(key, val string) {
	if r == nil {
		return
	}
	r.labels.Get(key).Store(val)
}

// Label returns the label at key, "" if never set
func (r *Registry) Label(key string) string {
	if r == nil {
		return ""
	}
	if ptr, ok := r.labels.Lookup(key); ok {
		return ptr.Load()
	}
	return ""
}

// RangeCounts visits counters under prefix in key order
func (r *Registry) RangeCounts(prefix string, fn func(key string, n int64)) {
	if r == nil {
		return
	}
	r.counts.Range(prefix, func(key string, ptr *atomic.Int64) {
		fn(key, ptr.Load())
	})
}

// Snapshot copies all counters
func (r *Registry) Snapshot() map[string]int64 {
	if r == nil {
		return nil
	}
	out := make(map[string]int64, r.counts.Len())
	r.RangeCounts("", func(key string, n int64) {
		out[key] = n
	})
	return out
}

// Len returns the number of counters and labels
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return r.counts.Len() + r.labels.Len()
}
