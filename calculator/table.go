package calculator

import (
	"sort"
	"sync"
	"time"

	"github.com/massenergize/carbon-backend/models"
)

// ConstantsTable is the in-memory index of constants rows: variable ->
// locality -> entries sorted ascending by valid_from. A table is built
// wholesale from a full load and then treated as read-mostly; incremental
// updates during an import take the write lock, and a full reload swaps the
// whole table pointer in the resolver instead of mutating in place.
type ConstantsTable struct {
	mu         sync.RWMutex
	byVariable map[string]map[string][]*models.ConstantEntry
	localities map[string]struct{}
	count      int
}

// NewConstantsTable builds a table from a full set of constants rows.
func NewConstantsTable(entries []*models.ConstantEntry) *ConstantsTable {
	t := &ConstantsTable{
		byVariable: make(map[string]map[string][]*models.ConstantEntry),
		localities: make(map[string]struct{}),
	}
	for _, e := range entries {
		t.insertLocked(e)
	}
	return t
}

// insertLocked adds an entry in valid_from order, replacing an entry with an
// identical (variable, locality, valid_from) key. Callers hold mu or own the
// table exclusively (construction).
func (t *ConstantsTable) insertLocked(e *models.ConstantEntry) {
	byLocality, ok := t.byVariable[e.Variable]
	if !ok {
		byLocality = make(map[string][]*models.ConstantEntry)
		t.byVariable[e.Variable] = byLocality
	}
	entries := byLocality[e.Locality]

	idx := sort.Search(len(entries), func(i int) bool {
		return !entries[i].ValidFrom.Before(e.ValidFrom)
	})
	if idx < len(entries) && entries[idx].ValidFrom.Equal(e.ValidFrom) {
		entries[idx] = e
	} else {
		entries = append(entries, nil)
		copy(entries[idx+1:], entries[idx:])
		entries[idx] = e
		t.count++
	}
	byLocality[e.Locality] = entries
	t.localities[e.Locality] = struct{}{}
}

// Upsert adds or replaces one entry. Used by the incremental import path;
// readers racing an import see either the old or the new value.
func (t *ConstantsTable) Upsert(e *models.ConstantEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.insertLocked(e)
}

// HasLocality reports whether any entry exists for the locality.
func (t *ConstantsTable) HasLocality(locality string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.localities[locality]
	return ok
}

// Len returns the number of entries in the table.
func (t *ConstantsTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.count
}

// Resolve finds the effective value of variable within locality as of asOf
// (nil means "use most recent"). The second return is false when the
// locality carries no entry for the variable at all.
func (t *ConstantsTable) Resolve(variable, locality string, asOf *time.Time) (float64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	byLocality, ok := t.byVariable[variable]
	if !ok {
		return 0, false
	}
	entries := byLocality[locality]
	if len(entries) == 0 {
		return 0, false
	}

	if asOf == nil {
		return entries[len(entries)-1].Value, true
	}

	// Latest entry with valid_from <= asOf. When asOf precedes every entry
	// the earliest row is used; in practice each variable carries an
	// epoch-sentinel row so this only triggers on incomplete localities.
	best := entries[0]
	for _, e := range entries {
		if e.ValidFrom.After(*asOf) {
			break
		}
		best = e
	}
	return best.Value, true
}
