package models

import (
	"strings"
	"time"
)

// ActionDefinition is the metadata for one evaluable climate action.
// QuestionNames references QuestionDefinition rows by name; the reference is
// resolved at query time and tolerates missing questions.
// Table: calculator_actions
type ActionDefinition struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null;uniqueIndex:idx_calculator_actions_name" json:"name"`
	Title         string    `gorm:"size:255" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	HelpText      string    `gorm:"type:text" json:"help_text"`
	Category      string    `gorm:"size:255" json:"category"`
	AveragePoints float64   `gorm:"type:numeric(10,2)" json:"average_points"`
	QuestionNames string    `gorm:"type:text" json:"question_names"` // comma separated, ordered
	CreatedAt     time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt     time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (ActionDefinition) TableName() string {
	return "calculator_actions"
}

// Questions splits the comma-separated question name list, preserving order
// and dropping empty segments.
func (a *ActionDefinition) Questions() []string {
	if a.QuestionNames == "" {
		return nil
	}
	parts := strings.Split(a.QuestionNames, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if q := strings.TrimSpace(p); q != "" {
			out = append(out, q)
		}
	}
	return out
}

type ActionDefinitionFilter struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
}
