package calculator

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"sync"
	"time"

	"github.com/massenergize/carbon-backend/models"
	"github.com/massenergize/carbon-backend/utils"
)

// Version is the calculator engine version. Bumping it forces a full
// reimport of the three CSV sources on the next startup.
const Version = "4.0.1"

// Sources names the on-disk CSV files the calculator imports from. Paths
// may be empty when a deployment manages tables purely through the admin
// API; source-dependent operations then fail with ErrSourceNotConfigured.
type Sources struct {
	DefaultsPath  string
	ActionsPath   string
	QuestionsPath string
}

// EstimateResult is the outcome of one estimate request. Status is "valid"
// when an evaluator ran to completion and "invalid" otherwise; an invalid
// result is a typed degradation, not an error.
type EstimateResult struct {
	Status       string  `json:"status"`
	CarbonPoints float64 `json:"carbon_points"`
	Cost         float64 `json:"cost"`
	Savings      float64 `json:"savings"`
	Explanation  string  `json:"explanation"`
}

// ActionSummary is one entry of the public action list.
type ActionSummary struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	AveragePoints float64 `json:"average_points"`
}

// ActionInfo is the full detail for one action, including its questions in
// presentation order.
type ActionInfo struct {
	ActionSummary
	HelpText  string                       `json:"help_text"`
	Questions []*models.QuestionDefinition `json:"questions"`
}

// ImportInputs selects which sources an admin-triggered import reloads.
// Confirm must be set explicitly; imports are destructive enough that a
// bare POST should not trigger one.
type ImportInputs struct {
	Confirm   bool
	Defaults  bool
	Actions   bool
	Questions bool
}

// Facade is the calculator's top-level entry point: it owns the evaluator
// registry, the resolver, the importer, and the version record that keeps
// persisted tables in step with the CSV sources.
type Facade struct {
	resolver  *Resolver
	importer  *Importer
	actions   ActionStore
	questions QuestionStore
	versions  VersionStore
	sources   Sources
	registry  map[string]EvalFunc

	mu       sync.Mutex
	metadata map[string]*models.ActionDefinition
}

func NewFacade(resolver *Resolver, importer *Importer, actions ActionStore, questions QuestionStore, versions VersionStore, sources Sources) *Facade {
	return &Facade{
		resolver:  resolver,
		importer:  importer,
		actions:   actions,
		questions: questions,
		versions:  versions,
		sources:   sources,
		registry:  Registry(),
	}
}

// ensureMetadata lazily loads action metadata from storage on first use.
func (f *Facade) ensureMetadata(ctx context.Context) (map[string]*models.ActionDefinition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.metadata != nil {
		return f.metadata, nil
	}
	rows, err := f.actions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load action metadata: %w", err)
	}
	meta := make(map[string]*models.ActionDefinition, len(rows))
	for _, row := range rows {
		meta[row.Name] = row
	}
	f.metadata = meta
	return meta, nil
}

// invalidateMetadata drops the cached action metadata so the next list or
// estimate reloads it from storage.
func (f *Facade) invalidateMetadata() {
	f.mu.Lock()
	f.metadata = nil
	f.mu.Unlock()
}

// AllActionsList returns every action currently in storage. Rows without a
// bespoke evaluator are still listed; they estimate through the zero-impact
// fallback until a formula is written.
func (f *Facade) AllActionsList(ctx context.Context) ([]ActionSummary, error) {
	rows, err := f.actions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}
	out := make([]ActionSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, ActionSummary{
			ID:            row.ID,
			Name:          row.Name,
			Title:         row.Title,
			Description:   row.Description,
			Category:      row.Category,
			AveragePoints: row.AveragePoints,
		})
	}
	return out, nil
}

// Action returns full detail for one action with its questions resolved in
// order. Question names with no matching row are skipped.
func (f *Facade) Action(ctx context.Context, name string) (*ActionInfo, error) {
	row, err := f.actions.ByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load action %q: %w", name, err)
	}
	if row == nil {
		return nil, nil
	}
	info := &ActionInfo{
		ActionSummary: ActionSummary{
			ID:            row.ID,
			Name:          row.Name,
			Title:         row.Title,
			Description:   row.Description,
			Category:      row.Category,
			AveragePoints: row.AveragePoints,
		},
		HelpText: row.HelpText,
	}
	for _, qname := range row.Questions() {
		q, err := f.questions.ByName(ctx, qname)
		if err != nil {
			return nil, fmt.Errorf("failed to load question %q: %w", qname, err)
		}
		if q != nil {
			info.Questions = append(info.Questions, q)
		}
	}
	return info, nil
}

// Estimate evaluates one action against the given answers. Unknown actions
// and evaluator panics degrade to an invalid result; neither returns an
// error. Points, cost, and savings are rounded to whole units for display.
func (f *Facade) Estimate(ctx context.Context, actionName string, answers Answers) EstimateResult {
	eval, known := f.registry[actionName]
	if !known {
		// A data-table action with no bespoke formula estimates through
		// the fallback, but only if the row actually exists.
		meta, err := f.ensureMetadata(ctx)
		if err != nil {
			log.Printf("Estimate %s: metadata load failed: %v", actionName, err)
			return EstimateResult{Status: models.EstimateStatusInvalid, Explanation: "We couldn't compute an estimate for this action."}
		}
		if _, exists := meta[actionName]; !exists {
			return EstimateResult{Status: models.EstimateStatusInvalid, Explanation: "We couldn't compute an estimate for this action."}
		}
		eval = f.registry[DefaultEvaluatorKey]
	}

	started := time.Now()
	result, ok := f.safeEval(ctx, actionName, eval, answers)
	estimateDuration.Observe(time.Since(started).Seconds())
	if !ok {
		estimatesTotal.WithLabelValues(actionName, models.EstimateStatusInvalid).Inc()
		return EstimateResult{Status: models.EstimateStatusInvalid, Explanation: "We couldn't compute an estimate for this action."}
	}
	estimatesTotal.WithLabelValues(actionName, models.EstimateStatusValid).Inc()
	return EstimateResult{
		Status:       models.EstimateStatusValid,
		CarbonPoints: math.Round(result.Points),
		Cost:         math.Round(result.Cost),
		Savings:      math.Round(result.Savings),
		Explanation:  result.Explanation,
	}
}

// safeEval runs an evaluator with panic containment. Evaluator formulas are
// data-driven; a bad constant must not take the request down.
func (f *Facade) safeEval(ctx context.Context, actionName string, eval EvalFunc, answers Answers) (result EvalResult, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Estimate %s: evaluator panic: %v", actionName, r)
			ok = false
		}
	}()
	return eval(ctx, f.resolver, answers), true
}

// Reset forces a full reimport of questions, actions, and defaults from the
// configured sources, then reloads the live constants table. Requires an
// explicit confirmation flag.
func (f *Facade) Reset(ctx context.Context, confirm bool) error {
	if !confirm {
		return ErrConfirmationRequired
	}
	return f.importAll(ctx)
}

// Import selectively reimports the sources named in inputs. Requires the
// confirmation flag.
func (f *Facade) Import(ctx context.Context, inputs ImportInputs) error {
	if !inputs.Confirm {
		return ErrConfirmationRequired
	}
	if inputs.Questions {
		if err := f.importFile(ctx, f.sources.QuestionsPath, f.importer.ImportQuestions); err != nil {
			return err
		}
	}
	if inputs.Actions {
		if err := f.importFile(ctx, f.sources.ActionsPath, f.importer.ImportActions); err != nil {
			return err
		}
		f.invalidateMetadata()
	}
	if inputs.Defaults {
		if err := f.importFile(ctx, f.sources.DefaultsPath, f.importer.ImportDefaults); err != nil {
			return err
		}
		if err := f.resolver.Reload(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ExportDefaults streams the full constants table as CSV.
func (f *Facade) ExportDefaults(ctx context.Context, w io.Writer) error {
	return f.importer.ExportDefaults(ctx, w)
}

// ReloadConstants rebuilds the live constants table from storage.
func (f *Facade) ReloadConstants(ctx context.Context) error {
	return f.resolver.Reload(ctx)
}

func (f *Facade) importFile(ctx context.Context, path string, importFn func(context.Context, string, io.Reader) (int, error)) error {
	if path == "" {
		return ErrSourceNotConfigured
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open source %s: %w", path, err)
	}
	defer file.Close()
	_, err = importFn(ctx, path, file)
	return err
}

// importAll reimports all three sources. Order matters only for operator
// expectations (questions before the actions that reference them); a
// defaults import failure aborts the sequence.
func (f *Facade) importAll(ctx context.Context) error {
	if err := f.importFile(ctx, f.sources.QuestionsPath, f.importer.ImportQuestions); err != nil {
		return err
	}
	if err := f.importFile(ctx, f.sources.ActionsPath, f.importer.ImportActions); err != nil {
		return err
	}
	if err := f.importFile(ctx, f.sources.DefaultsPath, f.importer.ImportDefaults); err != nil {
		return err
	}
	f.invalidateMetadata()
	return f.resolver.Reload(ctx)
}

func sourceMTime(path string) time.Time {
	if path == "" {
		return time.Time{}
	}
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime().UTC()
}

// EnsureCurrent compares the running version string and the source file
// mtimes against the stored version record and reimports everything when
// either has advanced. Called once at startup, before any estimate is
// served. A defaults import failure propagates: serving estimates against a
// half-imported constants table is worse than failing to start.
func (f *Facade) EnsureCurrent(ctx context.Context) error {
	defaultsMTime := sourceMTime(f.sources.DefaultsPath)
	actionsMTime := sourceMTime(f.sources.ActionsPath)
	questionsMTime := sourceMTime(f.sources.QuestionsPath)

	current, err := f.versions.Current(ctx)
	if err != nil {
		return fmt.Errorf("failed to load calculator version record: %w", err)
	}
	if current != nil &&
		current.Version == Version &&
		!defaultsMTime.After(current.DefaultsMTime) &&
		!actionsMTime.After(current.ActionsMTime) &&
		!questionsMTime.After(current.QuestionsMTime) {
		return nil
	}

	log.Printf("Calculator sources or version changed, reimporting (version=%s)", Version)
	if err := f.importAll(ctx); err != nil {
		return err
	}

	record := &models.CalculatorVersion{
		Version:        Version,
		DefaultsMTime:  defaultsMTime,
		ActionsMTime:   actionsMTime,
		QuestionsMTime: questionsMTime,
		ImportedAt:     utils.UTCNow(),
	}
	if current == nil {
		return f.versions.Save(ctx, record)
	}
	record.ID = current.ID
	return f.versions.Update(ctx, record)
}

// CurrentVersion returns the stored version record, or a zero-valued record
// when no import has happened yet.
func (f *Facade) CurrentVersion(ctx context.Context) (*models.CalculatorVersion, error) {
	current, err := f.versions.Current(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return &models.CalculatorVersion{Version: Version}, nil
	}
	return current, nil
}
