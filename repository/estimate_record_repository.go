package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/massenergize/carbon-backend/models"
	"gorm.io/gorm"
)

// EstimateRecordRepositoryImpl implements EstimateRecordRepository
type EstimateRecordRepositoryImpl struct {
	*BaseRepository[models.EstimateRecord, models.EstimateRecordFilter]
}

// NewEstimateRecordRepository creates a new repository for estimate records
func NewEstimateRecordRepository(db *gorm.DB) EstimateRecordRepository {
	return &EstimateRecordRepositoryImpl{
		BaseRepository: NewBaseRepository[models.EstimateRecord, models.EstimateRecordFilter](db),
	}
}

// ByUUID retrieves an estimate record by its UUID
func (r *EstimateRecordRepositoryImpl) ByUUID(ctx context.Context, id uuid.UUID) (*models.EstimateRecord, error) {
	db := r.getDB(ctx)

	var record models.EstimateRecord
	err := db.Where("uuid = ?", id).Last(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find estimate record by UUID: %w", err)
	}

	return &record, nil
}

func (r *EstimateRecordRepositoryImpl) applyFilter(query *gorm.DB, filter models.EstimateRecordFilter) *gorm.DB {
	if filter.ActionName != nil {
		query = query.Where("action_name = ?", *filter.ActionName)
	}
	if filter.Community != nil {
		query = query.Where("community = ?", *filter.Community)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves estimate records based on filter criteria
func (r *EstimateRecordRepositoryImpl) ByFilter(ctx context.Context, filter models.EstimateRecordFilter, orderBy string, limit, offset int) ([]*models.EstimateRecord, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.EstimateRecord{}), filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	} else {
		query = query.Order("created_at DESC")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var records []*models.EstimateRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to find estimate records by filter: %w", err)
	}

	return records, nil
}

// Count returns the number of estimate records matching the filter
func (r *EstimateRecordRepositoryImpl) Count(ctx context.Context, filter models.EstimateRecordFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.EstimateRecord{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count estimate records: %w", err)
	}

	return count, nil
}
