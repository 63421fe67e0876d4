package calculator

import (
	"context"

	"github.com/massenergize/carbon-backend/models"
)

// The calculator depends on narrow store interfaces rather than the full
// repository layer so the engine can be exercised against in-memory fakes.
// The gorm repositories satisfy these directly.

// DefaultsStore persists constants rows.
type DefaultsStore interface {
	LoadAll(ctx context.Context) ([]*models.ConstantEntry, error)
	UpsertByKey(ctx context.Context, entry *models.ConstantEntry) error
	DeleteDuplicates(ctx context.Context) (int64, error)
}

// ActionStore persists action metadata rows.
type ActionStore interface {
	ListAll(ctx context.Context) ([]*models.ActionDefinition, error)
	ByName(ctx context.Context, name string) (*models.ActionDefinition, error)
	UpsertByName(ctx context.Context, action *models.ActionDefinition) error
}

// QuestionStore persists question rows.
type QuestionStore interface {
	ListAll(ctx context.Context) ([]*models.QuestionDefinition, error)
	ByName(ctx context.Context, name string) (*models.QuestionDefinition, error)
	UpsertByName(ctx context.Context, question *models.QuestionDefinition) error
}

// VersionStore persists the single current version record.
type VersionStore interface {
	Current(ctx context.Context) (*models.CalculatorVersion, error)
	Save(ctx context.Context, version *models.CalculatorVersion) error
	Update(ctx context.Context, version *models.CalculatorVersion) error
}
