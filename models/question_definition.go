package models

import (
	"strings"
	"time"
)

// Question response types.
const (
	QuestionTypeChoice = "Choice"
	QuestionTypeNumber = "Number"
	QuestionTypeText   = "Text"
)

// QuestionDefinition is one input prompt consulted by action evaluators.
// Choice questions carry up to six responses, each with an optional skip
// list naming questions rendered moot by that response.
// Table: calculator_questions
type QuestionDefinition struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:255;not null;uniqueIndex:idx_calculator_questions_name" json:"name"`
	Category     string `gorm:"size:255" json:"category"`
	QuestionText string `gorm:"type:text" json:"question_text"`
	ResponseType string `gorm:"size:32;not null" json:"response_type"`

	Response1 string `gorm:"size:255" json:"response_1,omitempty"`
	Skip1     string `gorm:"type:text" json:"skip_1,omitempty"`
	Response2 string `gorm:"size:255" json:"response_2,omitempty"`
	Skip2     string `gorm:"type:text" json:"skip_2,omitempty"`
	Response3 string `gorm:"size:255" json:"response_3,omitempty"`
	Skip3     string `gorm:"type:text" json:"skip_3,omitempty"`
	Response4 string `gorm:"size:255" json:"response_4,omitempty"`
	Skip4     string `gorm:"type:text" json:"skip_4,omitempty"`
	Response5 string `gorm:"size:255" json:"response_5,omitempty"`
	Skip5     string `gorm:"type:text" json:"skip_5,omitempty"`
	Response6 string `gorm:"size:255" json:"response_6,omitempty"`
	Skip6     string `gorm:"type:text" json:"skip_6,omitempty"`

	MinimumValue *float64 `gorm:"type:numeric(16,4)" json:"minimum_value,omitempty"`
	MaximumValue *float64 `gorm:"type:numeric(16,4)" json:"maximum_value,omitempty"`
	TypicalValue *float64 `gorm:"type:numeric(16,4)" json:"typical_value,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (QuestionDefinition) TableName() string {
	return "calculator_questions"
}

// ResponseOption is one (response_text, skip_list) pair of a choice question.
type ResponseOption struct {
	Text string   `json:"text"`
	Skip []string `json:"skip,omitempty"`
}

// Responses collects the populated choice responses in order.
func (q *QuestionDefinition) Responses() []ResponseOption {
	pairs := [][2]string{
		{q.Response1, q.Skip1},
		{q.Response2, q.Skip2},
		{q.Response3, q.Skip3},
		{q.Response4, q.Skip4},
		{q.Response5, q.Skip5},
		{q.Response6, q.Skip6},
	}
	out := make([]ResponseOption, 0, len(pairs))
	for _, p := range pairs {
		if p[0] == "" {
			continue
		}
		out = append(out, ResponseOption{Text: p[0], Skip: splitList(p[1])})
	}
	return out
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type QuestionDefinitionFilter struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
}
