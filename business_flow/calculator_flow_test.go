package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/massenergize/carbon-backend/app/dto"
	"github.com/massenergize/carbon-backend/calculator"
	"github.com/massenergize/carbon-backend/config"
	"github.com/massenergize/carbon-backend/models"
	"github.com/massenergize/carbon-backend/utils"
)

// In-memory repository fakes. fakeConstantRepo satisfies both
// repository.ConstantEntryRepository and the calculator's DefaultsStore, so
// one instance backs the resolver and the admin flow alike.

type fakeConstantRepo struct {
	entries []*models.ConstantEntry
	nextID  uint
}

func (r *fakeConstantRepo) ByID(ctx context.Context, id uint) (*models.ConstantEntry, error) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeConstantRepo) matches(e *models.ConstantEntry, f models.ConstantEntryFilter) bool {
	if f.Variable != nil && e.Variable != *f.Variable {
		return false
	}
	if f.Locality != nil && e.Locality != *f.Locality {
		return false
	}
	return true
}

func (r *fakeConstantRepo) ByFilter(ctx context.Context, filter models.ConstantEntryFilter, orderBy string, limit, offset int) ([]*models.ConstantEntry, error) {
	var out []*models.ConstantEntry
	for _, e := range r.entries {
		if r.matches(e, filter) {
			out = append(out, e)
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeConstantRepo) Save(ctx context.Context, e *models.ConstantEntry) error {
	r.nextID++
	e.ID = r.nextID
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeConstantRepo) SaveBatch(ctx context.Context, entries []*models.ConstantEntry) error {
	for _, e := range entries {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeConstantRepo) Update(ctx context.Context, e *models.ConstantEntry) error {
	for i, have := range r.entries {
		if have.ID == e.ID {
			r.entries[i] = e
		}
	}
	return nil
}

func (r *fakeConstantRepo) Count(ctx context.Context, filter models.ConstantEntryFilter) (int64, error) {
	var n int64
	for _, e := range r.entries {
		if r.matches(e, filter) {
			n++
		}
	}
	return n, nil
}

func (r *fakeConstantRepo) LoadAll(ctx context.Context) ([]*models.ConstantEntry, error) {
	out := make([]*models.ConstantEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

func (r *fakeConstantRepo) ByKey(ctx context.Context, entry *models.ConstantEntry) (*models.ConstantEntry, error) {
	for _, e := range r.entries {
		if e.SameKey(entry) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeConstantRepo) UpsertByKey(ctx context.Context, entry *models.ConstantEntry) error {
	for i, e := range r.entries {
		if e.SameKey(entry) {
			entry.ID = e.ID
			r.entries[i] = entry
			return nil
		}
	}
	return r.Save(ctx, entry)
}

func (r *fakeConstantRepo) ListLatestPerKey(ctx context.Context) ([]*models.ConstantEntry, error) {
	latest := make(map[string]*models.ConstantEntry)
	for _, e := range r.entries {
		key := e.Variable + "\x00" + e.Locality
		if have, ok := latest[key]; !ok || e.ValidFrom.After(have.ValidFrom) {
			latest[key] = e
		}
	}
	out := make([]*models.ConstantEntry, 0, len(latest))
	for _, e := range latest {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeConstantRepo) DeleteDuplicates(ctx context.Context) (int64, error) {
	return 0, nil
}

type fakeEstimateRepo struct {
	records []*models.EstimateRecord
	saveErr error
}

func (r *fakeEstimateRepo) ByID(ctx context.Context, id uint) (*models.EstimateRecord, error) {
	for _, e := range r.records {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeEstimateRepo) matches(e *models.EstimateRecord, f models.EstimateRecordFilter) bool {
	if f.ActionName != nil && e.ActionName != *f.ActionName {
		return false
	}
	if f.Community != nil && e.Community != *f.Community {
		return false
	}
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	if f.CreatedAfter != nil && e.CreatedAt.Before(*f.CreatedAfter) {
		return false
	}
	if f.CreatedBefore != nil && !e.CreatedAt.Before(*f.CreatedBefore) {
		return false
	}
	return true
}

func (r *fakeEstimateRepo) ByFilter(ctx context.Context, filter models.EstimateRecordFilter, orderBy string, limit, offset int) ([]*models.EstimateRecord, error) {
	var out []*models.EstimateRecord
	for _, e := range r.records {
		if r.matches(e, filter) {
			out = append(out, e)
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeEstimateRepo) Save(ctx context.Context, e *models.EstimateRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	e.ID = uint(len(r.records) + 1)
	r.records = append(r.records, e)
	return nil
}

func (r *fakeEstimateRepo) SaveBatch(ctx context.Context, records []*models.EstimateRecord) error {
	for _, e := range records {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeEstimateRepo) Update(ctx context.Context, e *models.EstimateRecord) error {
	for i, have := range r.records {
		if have.ID == e.ID {
			r.records[i] = e
		}
	}
	return nil
}

func (r *fakeEstimateRepo) Count(ctx context.Context, filter models.EstimateRecordFilter) (int64, error) {
	var n int64
	for _, e := range r.records {
		if r.matches(e, filter) {
			n++
		}
	}
	return n, nil
}

func (r *fakeEstimateRepo) ByUUID(ctx context.Context, id uuid.UUID) (*models.EstimateRecord, error) {
	for _, e := range r.records {
		if e.UUID == id {
			return e, nil
		}
	}
	return nil, nil
}

type fakeActionStore struct {
	actions []*models.ActionDefinition
}

func (s *fakeActionStore) ListAll(ctx context.Context) ([]*models.ActionDefinition, error) {
	out := make([]*models.ActionDefinition, len(s.actions))
	copy(out, s.actions)
	return out, nil
}

func (s *fakeActionStore) ByName(ctx context.Context, name string) (*models.ActionDefinition, error) {
	for _, a := range s.actions {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, nil
}

func (s *fakeActionStore) UpsertByName(ctx context.Context, action *models.ActionDefinition) error {
	for i, a := range s.actions {
		if a.Name == action.Name {
			action.ID = a.ID
			s.actions[i] = action
			return nil
		}
	}
	action.ID = uint(len(s.actions) + 1)
	s.actions = append(s.actions, action)
	return nil
}

type fakeQuestionStore struct {
	questions []*models.QuestionDefinition
}

func (s *fakeQuestionStore) ListAll(ctx context.Context) ([]*models.QuestionDefinition, error) {
	out := make([]*models.QuestionDefinition, len(s.questions))
	copy(out, s.questions)
	return out, nil
}

func (s *fakeQuestionStore) ByName(ctx context.Context, name string) (*models.QuestionDefinition, error) {
	for _, q := range s.questions {
		if q.Name == name {
			return q, nil
		}
	}
	return nil, nil
}

func (s *fakeQuestionStore) UpsertByName(ctx context.Context, question *models.QuestionDefinition) error {
	for i, q := range s.questions {
		if q.Name == question.Name {
			question.ID = q.ID
			s.questions[i] = question
			return nil
		}
	}
	question.ID = uint(len(s.questions) + 1)
	s.questions = append(s.questions, question)
	return nil
}

type fakeVersionStore struct {
	current *models.CalculatorVersion
}

func (s *fakeVersionStore) Current(ctx context.Context) (*models.CalculatorVersion, error) {
	return s.current, nil
}

func (s *fakeVersionStore) Save(ctx context.Context, version *models.CalculatorVersion) error {
	version.ID = 1
	s.current = version
	return nil
}

func (s *fakeVersionStore) Update(ctx context.Context, version *models.CalculatorVersion) error {
	s.current = version
	return nil
}

// flowHarness wires both flows over in-memory storage with no redis and no
// CSV sources. Seeds two actions and their questions.
type flowHarness struct {
	flow      CalculatorFlow
	admin     CalculatorAdminFlow
	constants *fakeConstantRepo
	estimates *fakeEstimateRepo
	actions   *fakeActionStore
}

func newFlowHarness(t *testing.T) *flowHarness {
	t.Helper()
	constants := &fakeConstantRepo{}
	estimates := &fakeEstimateRepo{}
	actions := &fakeActionStore{actions: []*models.ActionDefinition{
		{
			ID:            1,
			Name:          "community_solar",
			Title:         "Join Community Solar",
			Description:   "Subscribe to a local solar project",
			Category:      "Home Energy",
			AveragePoints: 400,
			QuestionNames: "community_solar,monthly_elec_bill",
		},
		{
			ID:            2,
			Name:          "energy_fair",
			Title:         "Attend an Energy Fair",
			Category:      "Home Energy",
			AveragePoints: 50,
		},
	}}
	questions := &fakeQuestionStore{questions: []*models.QuestionDefinition{
		{
			ID:           1,
			Name:         "community_solar",
			Category:     "Home Energy",
			QuestionText: "Will you join a community solar project?",
			ResponseType: models.QuestionTypeChoice,
			Response1:    "Yes",
			Response2:    "No",
			Skip2:        "monthly_elec_bill",
		},
		{
			ID:           2,
			Name:         "monthly_elec_bill",
			Category:     "Home Energy",
			QuestionText: "What is your monthly electric bill?",
			ResponseType: models.QuestionTypeNumber,
			MinimumValue: utils.ToPtr(20.0),
			MaximumValue: utils.ToPtr(1000.0),
			TypicalValue: utils.ToPtr(150.0),
		},
	}}
	versions := &fakeVersionStore{}

	resolver := calculator.NewResolver(constants)
	importer := calculator.NewImporter(constants, actions, questions, resolver)
	facade := calculator.NewFacade(resolver, importer, actions, questions, versions, calculator.Sources{})

	cacheCfg := &config.CacheConfig{RedisPrefix: "carbon"}
	return &flowHarness{
		flow:      NewCalculatorFlow(facade, estimates, nil, cacheCfg),
		admin:     NewCalculatorAdminFlow(facade, constants, estimates, nil, nil, cacheCfg),
		constants: constants,
		estimates: estimates,
		actions:   actions,
	}
}

func estimateReq(name string, answers map[string]any) *dto.EstimateRequest {
	return &dto.EstimateRequest{ActionName: name, Answers: answers}
}

func requireBusinessError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	be := GetBusinessError(err)
	require.NotNil(t, be, "expected a business error, got %v", err)
	assert.Equal(t, code, be.Code)
}

func TestListActionsFlow(t *testing.T) {
	h := newFlowHarness(t)

	out, err := h.flow.ListActions(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Actions, 2)
	assert.Equal(t, "community_solar", out.Actions[0].Name)
	assert.Equal(t, "Join Community Solar", out.Actions[0].Title)
	assert.Equal(t, 400.0, out.Actions[0].AveragePoints)
}

func TestGetActionFlow(t *testing.T) {
	ctx := context.Background()
	h := newFlowHarness(t)

	t.Run("NameRequired", func(t *testing.T) {
		_, err := h.flow.GetAction(ctx, "")
		requireBusinessError(t, err, "ACTION_NAME_REQUIRED")
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := h.flow.GetAction(ctx, "no_such_action")
		requireBusinessError(t, err, "ACTION_NOT_FOUND")
	})

	t.Run("WithQuestions", func(t *testing.T) {
		out, err := h.flow.GetAction(ctx, "community_solar")
		require.NoError(t, err)
		assert.Equal(t, "Join Community Solar", out.Title)
		require.Len(t, out.Questions, 2)

		choice := out.Questions[0]
		assert.Equal(t, models.QuestionTypeChoice, choice.ResponseType)
		require.Len(t, choice.Responses, 2)
		assert.Equal(t, "Yes", choice.Responses[0].Text)
		assert.Equal(t, []string{"monthly_elec_bill"}, choice.Responses[1].Skip)

		number := out.Questions[1]
		assert.Equal(t, models.QuestionTypeNumber, number.ResponseType)
		require.NotNil(t, number.TypicalValue)
		assert.Equal(t, 150.0, *number.TypicalValue)
	})
}

func TestEstimateFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("RequestRequired", func(t *testing.T) {
		h := newFlowHarness(t)
		_, err := h.flow.Estimate(ctx, nil, nil)
		requireBusinessError(t, err, "INVALID_REQUEST")
	})

	t.Run("ActionNameRequired", func(t *testing.T) {
		h := newFlowHarness(t)
		_, err := h.flow.Estimate(ctx, estimateReq("", nil), nil)
		requireBusinessError(t, err, "ACTION_NAME_REQUIRED")
	})

	t.Run("ValidEstimateIsRecorded", func(t *testing.T) {
		h := newFlowHarness(t)
		out, err := h.flow.Estimate(ctx, estimateReq("community_solar", map[string]any{
			"monthly_elec_bill":      150.0,
			utils.CommunityAnswerKey: "Wayland",
		}), NewClientMetadata("10.0.0.1", "test-agent"))
		require.NoError(t, err)

		assert.Equal(t, models.EstimateStatusValid, out.Status)
		assert.Equal(t, 408.0, out.CarbonPoints)
		assert.Equal(t, 120.0, out.Savings)
		assert.Equal(t, 0.0, out.Cost)
		_, err = uuid.Parse(out.UUID)
		assert.NoError(t, err)

		require.Len(t, h.estimates.records, 1)
		rec := h.estimates.records[0]
		assert.Equal(t, "community_solar", rec.ActionName)
		assert.Equal(t, "Wayland", rec.Community)
		assert.Equal(t, models.EstimateStatusValid, rec.Status)
		assert.Equal(t, 408.0, rec.CarbonPoints)
	})

	t.Run("UnknownActionIsInvalidNotError", func(t *testing.T) {
		h := newFlowHarness(t)
		out, err := h.flow.Estimate(ctx, estimateReq("no_such_action", nil), nil)
		require.NoError(t, err)
		assert.Equal(t, models.EstimateStatusInvalid, out.Status)
		require.Len(t, h.estimates.records, 1)
		assert.Equal(t, models.EstimateStatusInvalid, h.estimates.records[0].Status)
	})

	t.Run("RecordFailureIsNotFatal", func(t *testing.T) {
		h := newFlowHarness(t)
		h.estimates.saveErr = assert.AnError
		out, err := h.flow.Estimate(ctx, estimateReq("energy_fair", nil), nil)
		require.NoError(t, err)
		assert.Equal(t, models.EstimateStatusValid, out.Status)
		assert.Empty(t, h.estimates.records)
	})
}

func TestEstimateRecordTimestamps(t *testing.T) {
	h := newFlowHarness(t)
	before := utils.UTCNow()
	_, err := h.flow.Estimate(context.Background(), estimateReq("energy_fair", nil), nil)
	require.NoError(t, err)
	require.Len(t, h.estimates.records, 1)
	created := h.estimates.records[0].CreatedAt
	assert.False(t, created.Before(before.Add(-time.Second)))
	assert.Equal(t, time.UTC, created.Location())
}
