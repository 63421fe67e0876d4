package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/massenergize/carbon-backend/models"
	"github.com/massenergize/carbon-backend/utils"
	"gorm.io/gorm"
)

// QuestionDefinitionRepositoryImpl implements QuestionDefinitionRepository
type QuestionDefinitionRepositoryImpl struct {
	*BaseRepository[models.QuestionDefinition, models.QuestionDefinitionFilter]
}

// NewQuestionDefinitionRepository creates a new repository for calculator questions
func NewQuestionDefinitionRepository(db *gorm.DB) QuestionDefinitionRepository {
	return &QuestionDefinitionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.QuestionDefinition, models.QuestionDefinitionFilter](db),
	}
}

// ByName retrieves a question definition by its unique name
func (r *QuestionDefinitionRepositoryImpl) ByName(ctx context.Context, name string) (*models.QuestionDefinition, error) {
	db := r.getDB(ctx)

	var question models.QuestionDefinition
	err := db.Where("name = ?", name).Last(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find question by name: %w", err)
	}

	return &question, nil
}

// ListAll returns every question definition ordered by name
func (r *QuestionDefinitionRepositoryImpl) ListAll(ctx context.Context) ([]*models.QuestionDefinition, error) {
	db := r.getDB(ctx)

	var questions []*models.QuestionDefinition
	if err := db.Order("name").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	return questions, nil
}

// UpsertByName overwrites the named question, inserting when absent
func (r *QuestionDefinitionRepositoryImpl) UpsertByName(ctx context.Context, question *models.QuestionDefinition) error {
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

	var existing models.QuestionDefinition
	findErr := db.Where("name = ?", question.Name).Last(&existing).Error
	if findErr != nil {
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			err = fmt.Errorf("failed to find question for upsert: %w", findErr)
			return err
		}
		question.CreatedAt = utils.UTCNow()
		question.UpdatedAt = utils.UTCNow()
		if createErr := db.Create(question).Error; createErr != nil {
			err = fmt.Errorf("failed to insert question: %w", createErr)
			return err
		}
		return nil
	}

	id, createdAt := existing.ID, existing.CreatedAt
	existing = *question
	existing.ID = id
	existing.CreatedAt = createdAt
	existing.UpdatedAt = utils.UTCNow()
	if saveErr := db.Save(&existing).Error; saveErr != nil {
		err = fmt.Errorf("failed to update question: %w", saveErr)
		return err
	}
	question.ID = id

	return nil
}

// ByFilter retrieves question definitions based on filter criteria
func (r *QuestionDefinitionRepositoryImpl) ByFilter(ctx context.Context, filter models.QuestionDefinitionFilter, orderBy string, limit, offset int) ([]*models.QuestionDefinition, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.QuestionDefinition{})

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

	var questions []*models.QuestionDefinition
	if err := query.Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to find questions by filter: %w", err)
	}

	return questions, nil
}

// Count returns the number of question definitions matching the filter
func (r *QuestionDefinitionRepositoryImpl) Count(ctx context.Context, filter models.QuestionDefinitionFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.QuestionDefinition{})

	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}

	return count, nil
}
