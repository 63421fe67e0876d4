package calculator

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/massenergize/carbon-backend/models"
)

const questionsCSVHeader = "Name,Category,Question Text,Question Type," +
	"Response1,Skip1,Response2,Skip2,Response3,Skip3,Response4,Skip4,Response5,Skip5,Response6,Skip6," +
	"Min,Max,Typical value\n"

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// newTestFacade builds a facade over in-memory stores with small CSV
// sources on disk.
func newTestFacade(t *testing.T) (*Facade, *memDefaultsStore, *memActionStore, *memQuestionStore, *memVersionStore, Sources) {
	t.Helper()
	dir := t.TempDir()

	sources := Sources{
		DefaultsPath: writeSource(t, dir, "defaults.csv",
			"Variable,Locality,Value,Reference,Valid Date,Updated\n"+
				"energy_fair_average_points,default,50,Program history,,2024-02-10\n"+
				"elec_price_per_kwh,default,0.2209,Eversource rate,,2024-02-10\n"),
		ActionsPath: writeSource(t, dir, "actions.csv",
			",Title,Description,Helptext,Category,Avg points,Questions\n"+
				"energy_fair,Attend an Energy Fair,Come to the fair,Bring a bill,Home Energy,50,attend_fair\n"+
				"test_pilot,Pilot Action,A data-only action,,Home Energy,25,\n"),
		QuestionsPath: writeSource(t, dir, "questions.csv",
			questionsCSVHeader+
				"attend_fair,Home Energy,Will you attend the energy fair?,Choice,Yes,,No,,,,,,,,,,,,\n"),
	}

	defaults := &memDefaultsStore{}
	actions := &memActionStore{}
	questions := &memQuestionStore{}
	versions := &memVersionStore{}
	resolver := NewResolver(defaults)
	importer := NewImporter(defaults, actions, questions, resolver)
	f := NewFacade(resolver, importer, actions, questions, versions, sources)
	return f, defaults, actions, questions, versions, sources
}

func TestFacadeEstimate(t *testing.T) {
	ctx := context.Background()
	f, _, _, _, _, _ := newTestFacade(t)
	require.NoError(t, f.Reset(ctx, true))

	t.Run("RoundsForDisplay", func(t *testing.T) {
		res := f.Estimate(ctx, "community_solar", Answers{"monthly_elec_bill": 150.0})
		assert.Equal(t, models.EstimateStatusValid, res.Status)
		assert.Equal(t, 408.0, res.CarbonPoints)
		assert.Equal(t, 120.0, res.Savings)
		assert.Equal(t, 0.0, res.Cost)
		assert.NotEmpty(t, res.Explanation)
	})

	t.Run("UnknownActionIsInvalid", func(t *testing.T) {
		res := f.Estimate(ctx, "no_such_action", Answers{})
		assert.Equal(t, models.EstimateStatusInvalid, res.Status)
		assert.Zero(t, res.CarbonPoints)
		assert.NotEmpty(t, res.Explanation)
	})

	t.Run("DataOnlyActionUsesFallback", func(t *testing.T) {
		// test_pilot has a table row but no formula: the estimate is
		// valid with zero impact, not an error.
		res := f.Estimate(ctx, "test_pilot", Answers{})
		assert.Equal(t, models.EstimateStatusValid, res.Status)
		assert.Zero(t, res.CarbonPoints)
		assert.NotEmpty(t, res.Explanation)
	})

	t.Run("EvaluatorPanicIsContained", func(t *testing.T) {
		f.registry["boom"] = func(context.Context, *Resolver, Answers) EvalResult {
			panic("bad constant")
		}
		defer delete(f.registry, "boom")
		res := f.Estimate(ctx, "boom", Answers{})
		assert.Equal(t, models.EstimateStatusInvalid, res.Status)
	})
}

func TestFacadeActionListing(t *testing.T) {
	ctx := context.Background()
	f, _, _, _, _, _ := newTestFacade(t)
	require.NoError(t, f.Reset(ctx, true))

	list, err := f.AllActionsList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "energy_fair", list[0].Name)
	assert.Equal(t, "Attend an Energy Fair", list[0].Title)
	assert.Equal(t, 50.0, list[0].AveragePoints)

	t.Run("DetailResolvesQuestions", func(t *testing.T) {
		info, err := f.Action(ctx, "energy_fair")
		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, "Bring a bill", info.HelpText)
		require.Len(t, info.Questions, 1)
		assert.Equal(t, "attend_fair", info.Questions[0].Name)
	})

	t.Run("MissingQuestionSkipped", func(t *testing.T) {
		// test_pilot has no question list and none of its (zero)
		// references resolve; the detail still loads.
		info, err := f.Action(ctx, "test_pilot")
		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Empty(t, info.Questions)
	})

	t.Run("UnknownAction", func(t *testing.T) {
		info, err := f.Action(ctx, "no_such_action")
		require.NoError(t, err)
		assert.Nil(t, info)
	})
}

func TestFacadeImportControls(t *testing.T) {
	ctx := context.Background()

	t.Run("ResetRequiresConfirmation", func(t *testing.T) {
		f, defaults, _, _, _, _ := newTestFacade(t)
		err := f.Reset(ctx, false)
		assert.ErrorIs(t, err, ErrConfirmationRequired)
		assert.Empty(t, defaults.entries)
	})

	t.Run("ImportRequiresConfirmation", func(t *testing.T) {
		f, _, _, _, _, _ := newTestFacade(t)
		err := f.Import(ctx, ImportInputs{Defaults: true})
		assert.ErrorIs(t, err, ErrConfirmationRequired)
	})

	t.Run("SelectiveImport", func(t *testing.T) {
		f, defaults, actions, questions, _, _ := newTestFacade(t)
		require.NoError(t, f.Import(ctx, ImportInputs{Confirm: true, Defaults: true}))
		assert.Len(t, defaults.entries, 2)
		assert.Empty(t, actions.actions)
		assert.Empty(t, questions.questions)

		// The defaults import also reloads the live constants table.
		res := f.Estimate(ctx, "energy_fair", Answers{})
		assert.Equal(t, 50.0, res.CarbonPoints)
	})

	t.Run("UnconfiguredSource", func(t *testing.T) {
		f, _, _, _, _, _ := newTestFacade(t)
		f.sources.DefaultsPath = ""
		err := f.Import(ctx, ImportInputs{Confirm: true, Defaults: true})
		assert.ErrorIs(t, err, ErrSourceNotConfigured)
	})

	t.Run("ImportActionsRefreshesMetadata", func(t *testing.T) {
		f, _, _, _, _, sources := newTestFacade(t)
		require.NoError(t, f.Reset(ctx, true))

		// A new data-only action appears in the source file; after a
		// selective actions import it becomes estimable.
		res := f.Estimate(ctx, "window_inserts", Answers{})
		assert.Equal(t, models.EstimateStatusInvalid, res.Status)

		appendRow := ",Title,Description,Helptext,Category,Avg points,Questions\n" +
			"window_inserts,Window Inserts,Interior storm windows,,Home Energy,150,\n"
		require.NoError(t, os.WriteFile(sources.ActionsPath, []byte(appendRow), 0o644))
		require.NoError(t, f.Import(ctx, ImportInputs{Confirm: true, Actions: true}))

		res = f.Estimate(ctx, "window_inserts", Answers{})
		assert.Equal(t, models.EstimateStatusValid, res.Status)
	})
}

func TestFacadeExportDefaults(t *testing.T) {
	ctx := context.Background()
	f, _, _, _, _, _ := newTestFacade(t)
	require.NoError(t, f.Reset(ctx, true))

	var buf bytes.Buffer
	require.NoError(t, f.ExportDefaults(ctx, &buf))
	out := buf.String()
	assert.Contains(t, out, "Variable,Locality,Value,Reference,Valid Date,Updated")
	assert.Contains(t, out, "energy_fair_average_points")
}

func TestFacadeEnsureCurrent(t *testing.T) {
	ctx := context.Background()
	f, defaults, _, _, versions, _ := newTestFacade(t)

	require.NoError(t, f.EnsureCurrent(ctx))
	require.NotNil(t, versions.current)
	assert.Equal(t, Version, versions.current.Version)
	assert.Equal(t, uint(1), versions.current.ID)
	assert.Len(t, defaults.entries, 2)
	firstImport := versions.current.ImportedAt

	t.Run("NoopWhenCurrent", func(t *testing.T) {
		require.NoError(t, f.EnsureCurrent(ctx))
		assert.Equal(t, firstImport, versions.current.ImportedAt)
	})

	t.Run("VersionBumpReimports", func(t *testing.T) {
		versions.current.Version = "3.9.0"
		versions.current.ImportedAt = time.Time{}
		require.NoError(t, f.EnsureCurrent(ctx))
		assert.Equal(t, Version, versions.current.Version)
		assert.Equal(t, uint(1), versions.current.ID)
		assert.False(t, versions.current.ImportedAt.IsZero())
	})

	t.Run("SourceTouchReimports", func(t *testing.T) {
		versions.current.DefaultsMTime = versions.current.DefaultsMTime.Add(-time.Hour)
		prev := versions.current.ImportedAt
		require.NoError(t, f.EnsureCurrent(ctx))
		assert.True(t, versions.current.ImportedAt.After(prev) || versions.current.ImportedAt.Equal(prev))
		assert.Equal(t, Version, versions.current.Version)
	})
}

func TestFacadeCurrentVersion(t *testing.T) {
	ctx := context.Background()
	f, _, _, _, versions, _ := newTestFacade(t)

	// Before any import the record is zero-valued but carries the
	// running engine version.
	rec, err := f.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, Version, rec.Version)
	assert.True(t, rec.ImportedAt.IsZero())

	require.NoError(t, f.EnsureCurrent(ctx))
	rec, err = f.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, versions.current, rec)
	assert.False(t, rec.ImportedAt.IsZero())
}
