package models

import "time"

// CalculatorVersion is the single current version record for the calculator.
// The running code's version string and the mtimes of the three source files
// are compared against this row on startup; any advance triggers a full
// reimport before estimates are served.
// Table: calculator_versions
type CalculatorVersion struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Version        string    `gorm:"size:64;not null" json:"version"`
	DefaultsMTime  time.Time `json:"defaults_mtime"`
	ActionsMTime   time.Time `json:"actions_mtime"`
	QuestionsMTime time.Time `json:"questions_mtime"`
	ImportedAt     time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"imported_at"`
	UpdatedAt      time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (CalculatorVersion) TableName() string {
	return "calculator_versions"
}

type CalculatorVersionFilter struct {
	Version *string `json:"version,omitempty"`
}
