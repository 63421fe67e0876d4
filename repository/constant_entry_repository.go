package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/massenergize/carbon-backend/models"
	"github.com/massenergize/carbon-backend/utils"
	"gorm.io/gorm"
)

// ConstantEntryRepositoryImpl implements ConstantEntryRepository
type ConstantEntryRepositoryImpl struct {
	*BaseRepository[models.ConstantEntry, models.ConstantEntryFilter]
}

// NewConstantEntryRepository creates a new repository for calculator constants
func NewConstantEntryRepository(db *gorm.DB) ConstantEntryRepository {
	return &ConstantEntryRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ConstantEntry, models.ConstantEntryFilter](db),
	}
}

// LoadAll returns the full constants table ordered for deterministic rebuilds.
func (r *ConstantEntryRepositoryImpl) LoadAll(ctx context.Context) ([]*models.ConstantEntry, error) {
	db := r.getDB(ctx)

	var rows []*models.ConstantEntry
	err := db.Order("variable, locality, valid_from").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load constants table: %w", err)
	}

	return rows, nil
}

// ByKey returns the row matching (variable, locality, valid_from), or nil.
func (r *ConstantEntryRepositoryImpl) ByKey(ctx context.Context, entry *models.ConstantEntry) (*models.ConstantEntry, error) {
	db := r.getDB(ctx)

	var row models.ConstantEntry
	err := db.Where("variable = ? AND locality = ? AND valid_from = ?",
		entry.Variable, entry.Locality, entry.ValidFrom).
		Last(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find constant by key: %w", err)
	}

	return &row, nil
}

// UpsertByKey overwrites the keyed row's value/reference, inserting when absent.
func (r *ConstantEntryRepositoryImpl) UpsertByKey(ctx context.Context, entry *models.ConstantEntry) error {
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

	var existing models.ConstantEntry
	findErr := db.Where("variable = ? AND locality = ? AND valid_from = ?",
		entry.Variable, entry.Locality, entry.ValidFrom).
		Last(&existing).Error
	if findErr != nil {
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			err = fmt.Errorf("failed to find constant for upsert: %w", findErr)
			return err
		}
		entry.UpdatedAt = utils.UTCNow()
		if createErr := db.Create(entry).Error; createErr != nil {
			err = fmt.Errorf("failed to insert constant: %w", createErr)
			return err
		}
		return nil
	}

	existing.Value = entry.Value
	existing.Reference = entry.Reference
	existing.UpdatedAt = utils.UTCNow()
	if saveErr := db.Save(&existing).Error; saveErr != nil {
		err = fmt.Errorf("failed to update constant: %w", saveErr)
		return err
	}
	entry.ID = existing.ID

	return nil
}

// ListLatestPerKey returns the newest row per (variable, locality) pair.
func (r *ConstantEntryRepositoryImpl) ListLatestPerKey(ctx context.Context) ([]*models.ConstantEntry, error) {
	db := r.getDB(ctx)

	var rows []*models.ConstantEntry
	err := db.Raw(`
		SELECT DISTINCT ON (variable, locality) id, variable, locality, valid_from, value, reference, updated_at
		FROM carbon_defaults
		ORDER BY variable, locality, valid_from DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list latest constants: %w", err)
	}

	return rows, nil
}

// DeleteDuplicates removes exact-key duplicate rows, keeping the lowest id.
func (r *ConstantEntryRepositoryImpl) DeleteDuplicates(ctx context.Context) (int64, error) {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return 0, err
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

	res := db.Exec(`
		DELETE FROM carbon_defaults
		WHERE id NOT IN (
			SELECT MIN(id) FROM carbon_defaults
			GROUP BY variable, locality, valid_from
		)
	`)
	if res.Error != nil {
		err = fmt.Errorf("failed to delete duplicate constants: %w", res.Error)
		return 0, err
	}

	return res.RowsAffected, nil
}

// ByFilter retrieves constants rows based on filter criteria
func (r *ConstantEntryRepositoryImpl) ByFilter(ctx context.Context, filter models.ConstantEntryFilter, orderBy string, limit, offset int) ([]*models.ConstantEntry, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.ConstantEntry{})

	if filter.Variable != nil {
		query = query.Where("variable = ?", *filter.Variable)
	}
	if filter.Locality != nil {
		query = query.Where("locality = ?", *filter.Locality)
	}

	if orderBy != "" {
		query = query.Order(orderBy)
	} else {
		query = query.Order("variable, locality, valid_from")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.ConstantEntry
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find constants by filter: %w", err)
	}

	return rows, nil
}

// Count returns the number of constants rows matching the filter
func (r *ConstantEntryRepositoryImpl) Count(ctx context.Context, filter models.ConstantEntryFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.ConstantEntry{})

	if filter.Variable != nil {
		query = query.Where("variable = ?", *filter.Variable)
	}
	if filter.Locality != nil {
		query = query.Where("locality = ?", *filter.Locality)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count constants: %w", err)
	}

	return count, nil
}
