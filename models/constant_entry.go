// Package models contains the database models for the carbon calculator backend
package models

import "time"

// ConstantEntry is one row of the calculator constants table: the value of a
// named physical or economic variable for a locality, effective from ValidFrom
// until superseded by a later row for the same (variable, locality).
// Table: carbon_defaults
type ConstantEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Variable  string    `gorm:"size:255;not null;index:idx_carbon_defaults_variable" json:"variable"`
	Locality  string    `gorm:"size:255;not null;index:idx_carbon_defaults_locality" json:"locality"`
	ValidFrom time.Time `gorm:"not null;index:idx_carbon_defaults_valid_from" json:"valid_from"`
	Value     float64   `gorm:"type:numeric(16,6);not null" json:"value"`
	Reference string    `gorm:"size:512" json:"reference"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (ConstantEntry) TableName() string {
	return "carbon_defaults"
}

// Key identity for upserts and dedup.
func (c *ConstantEntry) SameKey(o *ConstantEntry) bool {
	return c.Variable == o.Variable && c.Locality == o.Locality && c.ValidFrom.Equal(o.ValidFrom)
}

type ConstantEntryFilter struct {
	Variable *string `json:"variable,omitempty"`
	Locality *string `json:"locality,omitempty"`
}
