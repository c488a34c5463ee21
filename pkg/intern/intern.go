// Package intern maps strings to stable integer identifiers.
//
// A [Table] hands out one [ID] per distinct string for the lifetime of a
// session: equal strings always yield equal identifiers. Lookups and
// inserts are internally synchronized, so a single table can be shared by
// tile-type builds running on many goroutines.
package intern

import (
	"slices"
	"sync"
)

// ID identifies an interned string. The zero ID is never assigned, which
// keeps the zero value distinguishable from a real identifier.
type ID uint32

// Table is a concurrency-safe string interning table.
// The zero value is not usable; use [New].
type Table struct {
	mu    sync.RWMutex
	ids   map[string]ID
	names []string
}

// New creates an empty table. The empty string is pre-interned so that
// every valid identifier is non-zero.
func New() *Table {
	return &Table{
		ids:   map[string]ID{"": 0},
		names: []string{""},
	}
}

// ID returns the identifier of s, interning it on first use.
func (t *Table) ID(s string) ID {
	t.mu.RLock()
	id, ok := t.ids[s]
	t.mu.RUnlock()
	if ok {
		return id
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// Another goroutine may have won the race between the locks.
	if id, ok := t.ids[s]; ok {
		return id
	}
	id = ID(len(t.names))
	t.ids[s] = id
	t.names = append(t.names, s)
	return id
}

// Lookup returns the identifier of s without interning it.
func (t *Table) Lookup(s string) (ID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.ids[s]
	return id, ok
}

// Name returns the string behind id.
func (t *Table) Name(id ID) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(id) >= len(t.names) {
		return "", false
	}
	return t.names[id], true
}

// MustName is like Name but returns a placeholder for unknown identifiers.
func (t *Table) MustName(id ID) string {
	if s, ok := t.Name(id); ok {
		return s
	}
	return "<unknown>"
}

// Len returns the number of interned strings, including the empty string.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.names)
}

// Names returns a copy of all interned strings in identifier order.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.names)
}
