package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/massenergize/carbon-backend/models"
	"github.com/massenergize/carbon-backend/utils"
	"gorm.io/gorm"
)

// ActionDefinitionRepositoryImpl implements ActionDefinitionRepository
type ActionDefinitionRepositoryImpl struct {
	*BaseRepository[models.ActionDefinition, models.ActionDefinitionFilter]
}

// NewActionDefinitionRepository creates a new repository for action metadata
func NewActionDefinitionRepository(db *gorm.DB) ActionDefinitionRepository {
	return &ActionDefinitionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ActionDefinition, models.ActionDefinitionFilter](db),
	}
}

// ByName retrieves an action definition by its unique name
func (r *ActionDefinitionRepositoryImpl) ByName(ctx context.Context, name string) (*models.ActionDefinition, error) {
	db := r.getDB(ctx)

	var action models.ActionDefinition
	err := db.Where("name = ?", name).Last(&action).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find action by name: %w", err)
	}

	return &action, nil
}

// ListAll returns every action definition ordered by name
func (r *ActionDefinitionRepositoryImpl) ListAll(ctx context.Context) ([]*models.ActionDefinition, error) {
	db := r.getDB(ctx)

	var actions []*models.ActionDefinition
	if err := db.Order("name").Find(&actions).Error; err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}

	return actions, nil
}

// UpsertByName overwrites the named action's metadata, inserting when absent
func (r *ActionDefinitionRepositoryImpl) UpsertByName(ctx context.Context, action *models.ActionDefinition) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	var existing models.ActionDefinition
	findErr := db.Where("name = ?", action.Name).Last(&existing).Error
	if findErr != nil {
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			err = fmt.Errorf("failed to find action for upsert: %w", findErr)
			return err
		}
		action.CreatedAt = utils.UTCNow()
		action.UpdatedAt = utils.UTCNow()
		if createErr := db.Create(action).Error; createErr != nil {
			err = fmt.Errorf("failed to insert action: %w", createErr)
			return err
		}
		return nil
	}

	existing.Title = action.Title
	existing.Description = action.Description
	existing.HelpText = action.HelpText
	existing.Category = action.Category
	existing.AveragePoints = action.AveragePoints
	existing.QuestionNames = action.QuestionNames
	existing.UpdatedAt = utils.UTCNow()
	if saveErr := db.Save(&existing).Error; saveErr != nil {
		err = fmt.Errorf("failed to update action: %w", saveErr)
		return err
	}
	action.ID = existing.ID

	return nil
}

// ByFilter retrieves action definitions based on filter criteria
func (r *ActionDefinitionRepositoryImpl) ByFilter(ctx context.Context, filter models.ActionDefinitionFilter, orderBy string, limit, offset int) ([]*models.ActionDefinition, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.ActionDefinition{})

	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	if orderBy != "" {
		query = query.Order(orderBy)
	} else {
		query = query.Order("name")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var actions []*models.ActionDefinition
	if err := query.Find(&actions).Error; err != nil {
		return nil, fmt.Errorf("failed to find actions by filter: %w", err)
	}

	return actions, nil
}

// Count returns the number of action definitions matching the filter
func (r *ActionDefinitionRepositoryImpl) Count(ctx context.Context, filter models.ActionDefinitionFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.ActionDefinition{})

	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count actions: %w", err)
	}

	return count, nil
}
