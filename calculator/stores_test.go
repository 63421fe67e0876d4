package calculator

import (
	"context"
	"sync"

	"github.com/massenergize/carbon-backend/models"
)

// In-memory stores backing the engine tests. They satisfy the same store
// interfaces the gorm repositories do.

type memDefaultsStore struct {
	mu      sync.Mutex
	entries []*models.ConstantEntry
	loadErr error
}

func (s *memDefaultsStore) LoadAll(ctx context.Context) ([]*models.ConstantEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make([]*models.ConstantEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *memDefaultsStore) UpsertByKey(ctx context.Context, entry *models.ConstantEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.SameKey(entry) {
			s.entries[i] = entry
			return nil
		}
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memDefaultsStore) DeleteDuplicates(ctx context.Context) (int64, error) {
	return 0, nil
}

type memActionStore struct {
	mu      sync.Mutex
	actions []*models.ActionDefinition
}

func (s *memActionStore) ListAll(ctx context.Context) ([]*models.ActionDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.ActionDefinition, len(s.actions))
	copy(out, s.actions)
	return out, nil
}

func (s *memActionStore) ByName(ctx context.Context, name string) (*models.ActionDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.actions {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, nil
}

func (s *memActionStore) UpsertByName(ctx context.Context, action *models.ActionDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
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

type memQuestionStore struct {
	mu        sync.Mutex
	questions []*models.QuestionDefinition
}

func (s *memQuestionStore) ListAll(ctx context.Context) ([]*models.QuestionDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.QuestionDefinition, len(s.questions))
	copy(out, s.questions)
	return out, nil
}

func (s *memQuestionStore) ByName(ctx context.Context, name string) (*models.QuestionDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.questions {
		if q.Name == name {
			return q, nil
		}
	}
	return nil, nil
}

func (s *memQuestionStore) UpsertByName(ctx context.Context, question *models.QuestionDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
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

type memVersionStore struct {
	mu      sync.Mutex
	current *models.CalculatorVersion
}

func (s *memVersionStore) Current(ctx context.Context) (*models.CalculatorVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, nil
}

func (s *memVersionStore) Save(ctx context.Context, version *models.CalculatorVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	version.ID = 1
	s.current = version
	return nil
}

func (s *memVersionStore) Update(ctx context.Context, version *models.CalculatorVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = version
	return nil
}
