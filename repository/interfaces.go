// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/massenergize/carbon-backend/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Update(ctx context.Context, entity *T) error
	Count(ctx context.Context, filter F) (int64, error)
}

// ConstantEntryRepository defines operations for calculator constants rows
type ConstantEntryRepository interface {
	Repository[models.ConstantEntry, models.ConstantEntryFilter]
	// LoadAll returns every constants row, ordered by variable, locality,
	// valid_from. This is the full-table read backing a constants reload.
	LoadAll(ctx context.Context) ([]*models.ConstantEntry, error)
	// ByKey returns the row matching (variable, locality, valid_from) exactly,
	// or nil when absent.
	ByKey(ctx context.Context, entry *models.ConstantEntry) (*models.ConstantEntry, error)
	// UpsertByKey overwrites value/reference/updated_at of the row matching
	// the entry's (variable, locality, valid_from) key, inserting when absent.
	UpsertByKey(ctx context.Context, entry *models.ConstantEntry) error
	// ListLatestPerKey returns the newest row per (variable, locality) pair.
	ListLatestPerKey(ctx context.Context) ([]*models.ConstantEntry, error)
	// DeleteDuplicates removes rows sharing an exact (variable, locality,
	// valid_from) key with an earlier row, keeping the lowest id. Returns
	// the number of rows removed.
	DeleteDuplicates(ctx context.Context) (int64, error)
}

// ActionDefinitionRepository defines operations for action metadata rows
type ActionDefinitionRepository interface {
	Repository[models.ActionDefinition, models.ActionDefinitionFilter]
	ByName(ctx context.Context, name string) (*models.ActionDefinition, error)
	ListAll(ctx context.Context) ([]*models.ActionDefinition, error)
	UpsertByName(ctx context.Context, action *models.ActionDefinition) error
}

// QuestionDefinitionRepository defines operations for question rows
type QuestionDefinitionRepository interface {
	Repository[models.QuestionDefinition, models.QuestionDefinitionFilter]
	ByName(ctx context.Context, name string) (*models.QuestionDefinition, error)
	ListAll(ctx context.Context) ([]*models.QuestionDefinition, error)
	UpsertByName(ctx context.Context, question *models.QuestionDefinition) error
}

// CalculatorVersionRepository defines operations for the single version record
type CalculatorVersionRepository interface {
	Repository[models.CalculatorVersion, models.CalculatorVersionFilter]
	// Current returns the latest version record, or nil when none exists yet.
	Current(ctx context.Context) (*models.CalculatorVersion, error)
}

// EstimateRecordRepository defines operations for served-estimate records
type EstimateRecordRepository interface {
	Repository[models.EstimateRecord, models.EstimateRecordFilter]
	ByUUID(ctx context.Context, id uuid.UUID) (*models.EstimateRecord, error)
}
