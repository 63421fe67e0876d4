package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/massenergize/carbon-backend/models"
	"gorm.io/gorm"
)

// CalculatorVersionRepositoryImpl implements CalculatorVersionRepository
type CalculatorVersionRepositoryImpl struct {
	*BaseRepository[models.CalculatorVersion, models.CalculatorVersionFilter]
}

// NewCalculatorVersionRepository creates a new repository for the calculator version record
func NewCalculatorVersionRepository(db *gorm.DB) CalculatorVersionRepository {
	return &CalculatorVersionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.CalculatorVersion, models.CalculatorVersionFilter](db),
	}
}

// Current returns the latest version record, or nil when none exists yet
func (r *CalculatorVersionRepositoryImpl) Current(ctx context.Context) (*models.CalculatorVersion, error) {
	db := r.getDB(ctx)

	var version models.CalculatorVersion
	err := db.Order("id DESC").First(&version).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load calculator version: %w", err)
	}

	return &version, nil
}

// ByFilter retrieves version records based on filter criteria
func (r *CalculatorVersionRepositoryImpl) ByFilter(ctx context.Context, filter models.CalculatorVersionFilter, orderBy string, limit, offset int) ([]*models.CalculatorVersion, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.CalculatorVersion{})

	if filter.Version != nil {
		query = query.Where("version = ?", *filter.Version)
	}

	if orderBy != "" {
		query = query.Order(orderBy)
	} else {
		query = query.Order("id DESC")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var versions []*models.CalculatorVersion
	if err := query.Find(&versions).Error; err != nil {
		return nil, fmt.Errorf("failed to find versions by filter: %w", err)
	}

	return versions, nil
}

// Count returns the number of version records matching the filter
func (r *CalculatorVersionRepositoryImpl) Count(ctx context.Context, filter models.CalculatorVersionFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.CalculatorVersion{})

	if filter.Version != nil {
		query = query.Where("version = ?", *filter.Version)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count versions: %w", err)
	}

	return count, nil
}
