package models

import (
	"time"

	"github.com/google/uuid"
)

// Estimate record statuses.
const (
	EstimateStatusValid   = "valid"
	EstimateStatusInvalid = "invalid"
)

// EstimateRecord captures one served estimate for community analytics.
// Table: estimate_records
type EstimateRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UUID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_estimate_records_uuid" json:"uuid"`
	ActionName   string    `gorm:"size:255;not null;index:idx_estimate_records_action" json:"action_name"`
	Community    string    `gorm:"size:255;index:idx_estimate_records_community" json:"community"`
	Status       string    `gorm:"size:16;not null" json:"status"`
	CarbonPoints float64   `gorm:"type:numeric(12,2)" json:"carbon_points"`
	Cost         float64   `gorm:"type:numeric(12,2)" json:"cost"`
	Savings      float64   `gorm:"type:numeric(12,2)" json:"savings"`
	CreatedAt    time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_estimate_records_created_at" json:"created_at"`
}

func (EstimateRecord) TableName() string {
	return "estimate_records"
}

type EstimateRecordFilter struct {
	ActionName    *string    `json:"action_name,omitempty"`
	Community     *string    `json:"community,omitempty"`
	Status        *string    `json:"status,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}
