package calculator

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/massenergize/carbon-backend/models"
	"github.com/massenergize/carbon-backend/utils"
)

// Resolver answers "what is the effective value of variable V, for the best
// matching locality among a candidate list, as of date D?" against the
// in-memory ConstantsTable. The table is loaded lazily from the defaults
// store on first use and replaced wholesale by Reload; readers never observe
// a partially built table because the swap is a single pointer store.
type Resolver struct {
	store DefaultsStore

	table  atomic.Pointer[ConstantsTable]
	loadMu sync.Mutex
}

// NewResolver creates a resolver backed by the given defaults store.
func NewResolver(store DefaultsStore) *Resolver {
	return &Resolver{store: store}
}

// ensure lazily loads the constants table on first use.
func (r *Resolver) ensure(ctx context.Context) (*ConstantsTable, error) {
	if t := r.table.Load(); t != nil {
		return t, nil
	}

	r.loadMu.Lock()
	defer r.loadMu.Unlock()
	if t := r.table.Load(); t != nil {
		return t, nil
	}

	entries, err := r.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load constants table: %w", err)
	}
	t := NewConstantsTable(entries)
	r.table.Store(t)
	constantsTableEntries.Set(float64(t.Len()))
	return t, nil
}

// Reload re-reads the constants table from the store and swaps it in
// wholesale. In-flight lookups keep reading the old table.
func (r *Resolver) Reload(ctx context.Context) error {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	entries, err := r.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload constants table: %w", err)
	}
	t := NewConstantsTable(entries)
	r.table.Store(t)
	constantsReloadsTotal.Inc()
	constantsTableEntries.Set(float64(t.Len()))
	return nil
}

// apply pushes one imported entry into the live table without a full reload.
// No-op until the table has been loaded once; the next lazy load will pick
// the entry up from the store anyway.
func (r *Resolver) apply(entry *models.ConstantEntry) {
	if t := r.table.Load(); t != nil {
		t.Upsert(entry)
		constantsTableEntries.Set(float64(t.Len()))
	}
}

// Default resolves variable against the candidate localities, narrowest
// first. Candidates without any table entries are skipped and the universal
// "default" locality is always consulted last. Locality match takes absolute
// precedence over date recency: a broader locality is never preferred even
// when its value is newer. asOf nil means "use most recent". When nothing
// matches, fallback (if non-nil) is returned; otherwise a
// ConstantNotFoundError names the missing variable.
func (r *Resolver) Default(ctx context.Context, localities []string, variable string, asOf *time.Time, fallback *float64) (float64, error) {
	t, err := r.ensure(ctx)
	if err != nil {
		return 0, err
	}

	order := make([]string, 0, len(localities)+1)
	for _, loc := range localities {
		if loc == utils.DefaultLocality {
			continue
		}
		if t.HasLocality(loc) {
			order = append(order, loc)
		}
	}
	order = append(order, utils.DefaultLocality)

	for _, loc := range order {
		if v, ok := t.Resolve(variable, loc, asOf); ok {
			return v, nil
		}
	}

	if fallback != nil {
		return *fallback, nil
	}
	return 0, &ConstantNotFoundError{Variable: variable}
}

// DefaultOr resolves variable with a literal fallback and no as-of date.
// Evaluator formulas use this form so an incomplete constants table can
// never fail an estimate.
func (r *Resolver) DefaultOr(ctx context.Context, localities []string, variable string, fallback float64) float64 {
	v, err := r.Default(ctx, localities, variable, nil, &fallback)
	if err != nil {
		return fallback
	}
	return v
}
