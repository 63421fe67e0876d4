package calculator

import (
	"context"
	"testing"
	"time"

	"github.com/massenergize/carbon-backend/models"
	"github.com/massenergize/carbon-backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverDefault(t *testing.T) {
	ctx := context.Background()
	base := utils.EpochSentinel

	store := &memDefaultsStore{entries: []*models.ConstantEntry{
		entry("elec_price_per_kwh", "default", base, 0.2209),
		entry("elec_price_per_kwh", "default", date(2024, time.January, 1), 0.2548),
		entry("elec_price_per_kwh", "Wayland", base, 0.2389),
		entry("elec_lbs_co2_per_kwh", "default", base, 0.75),
	}}
	r := NewResolver(store)

	t.Run("LocalityBeatsDate", func(t *testing.T) {
		// Wayland's epoch row wins over default's newer 2024 row.
		v, err := r.Default(ctx, []string{"Wayland"}, "elec_price_per_kwh", nil, nil)
		require.NoError(t, err)
		assert.InDelta(t, 0.2389, v, 1e-9)
	})

	t.Run("FallsThroughToDefault", func(t *testing.T) {
		// Wayland has no co2 row, so the default locality answers.
		v, err := r.Default(ctx, []string{"Wayland"}, "elec_lbs_co2_per_kwh", nil, nil)
		require.NoError(t, err)
		assert.InDelta(t, 0.75, v, 1e-9)
	})

	t.Run("UnknownLocalitySkipped", func(t *testing.T) {
		v, err := r.Default(ctx, []string{"Atlantis"}, "elec_price_per_kwh", nil, nil)
		require.NoError(t, err)
		assert.InDelta(t, 0.2548, v, 1e-9)
	})

	t.Run("NoLocalities", func(t *testing.T) {
		v, err := r.Default(ctx, nil, "elec_price_per_kwh", nil, nil)
		require.NoError(t, err)
		assert.InDelta(t, 0.2548, v, 1e-9)
	})

	t.Run("AsOfDate", func(t *testing.T) {
		asOf := date(2023, time.June, 1)
		v, err := r.Default(ctx, nil, "elec_price_per_kwh", &asOf, nil)
		require.NoError(t, err)
		assert.InDelta(t, 0.2209, v, 1e-9)
	})

	t.Run("FallbackValue", func(t *testing.T) {
		fallback := 42.0
		v, err := r.Default(ctx, nil, "no_such_variable", nil, &fallback)
		require.NoError(t, err)
		assert.InDelta(t, 42, v, 1e-9)
	})

	t.Run("MissingWithoutFallback", func(t *testing.T) {
		_, err := r.Default(ctx, nil, "no_such_variable", nil, nil)
		require.Error(t, err)
		assert.True(t, IsConstantNotFound(err))
	})

	t.Run("DefaultOrNeverFails", func(t *testing.T) {
		assert.InDelta(t, 99, r.DefaultOr(ctx, nil, "no_such_variable", 99), 1e-9)
		assert.InDelta(t, 0.2548, r.DefaultOr(ctx, nil, "elec_price_per_kwh", 99), 1e-9)
	})
}

func TestResolverReload(t *testing.T) {
	ctx := context.Background()

	store := &memDefaultsStore{entries: []*models.ConstantEntry{
		entry("led_bulb_price", "default", utils.EpochSentinel, 3),
	}}
	r := NewResolver(store)

	v, err := r.Default(ctx, nil, "led_bulb_price", nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 3, v, 1e-9)

	// A store change is invisible until Reload swaps the table.
	store.mu.Lock()
	store.entries[0] = entry("led_bulb_price", "default", utils.EpochSentinel, 4)
	store.mu.Unlock()

	v, err = r.Default(ctx, nil, "led_bulb_price", nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 3, v, 1e-9)

	require.NoError(t, r.Reload(ctx))

	v, err = r.Default(ctx, nil, "led_bulb_price", nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 4, v, 1e-9)
}

func TestResolverApply(t *testing.T) {
	ctx := context.Background()

	store := &memDefaultsStore{}
	r := NewResolver(store)

	// Force the lazy load so apply has a live table to update.
	_, err := r.Default(ctx, nil, "anything", nil, utils.ToPtr(0.0))
	require.NoError(t, err)

	r.apply(entry("compost_bin_cost", "default", utils.EpochSentinel, 50))

	v, err := r.Default(ctx, nil, "compost_bin_cost", nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 50, v, 1e-9)
}
