package dto

// ActionItem is one entry of the public action list.
type ActionItem struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	AveragePoints float64 `json:"average_points"`
}

// ListActionsResponse represents the response to list all evaluable actions
type ListActionsResponse struct {
	Message string       `json:"message"`
	Actions []ActionItem `json:"actions"`
}

// QuestionResponseItem is one choice of a choice question, with the list of
// question names that choice renders moot.
type QuestionResponseItem struct {
	Text string   `json:"text"`
	Skip []string `json:"skip,omitempty"`
}

// QuestionItem describes one input prompt of an action.
type QuestionItem struct {
	Name         string                 `json:"name"`
	Category     string                 `json:"category,omitempty"`
	QuestionText string                 `json:"question_text"`
	ResponseType string                 `json:"response_type"`
	Responses    []QuestionResponseItem `json:"responses,omitempty"`
	MinimumValue *float64               `json:"minimum_value,omitempty"`
	MaximumValue *float64               `json:"maximum_value,omitempty"`
	TypicalValue *float64               `json:"typical_value,omitempty"`
}

// GetActionResponse represents the full detail of one action
type GetActionResponse struct {
	ActionItem
	HelpText  string         `json:"help_text,omitempty"`
	Questions []QuestionItem `json:"questions,omitempty"`
}

// EstimateRequest represents the request to estimate one action's impact.
// Answers is the flat question-name to answer map; the reserved "community"
// key selects the locality for constants lookups.
type EstimateRequest struct {
	ActionName string         `json:"-"`
	Answers    map[string]any `json:"answers" validate:"required"`
}

// EstimateResponse represents the computed impact of one action
type EstimateResponse struct {
	UUID         string  `json:"uuid"`
	ActionName   string  `json:"action_name"`
	Status       string  `json:"status"`
	CarbonPoints float64 `json:"carbon_points"`
	Cost         float64 `json:"cost"`
	Savings      float64 `json:"savings"`
	Explanation  string  `json:"explanation"`
}
