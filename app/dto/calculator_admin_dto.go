package dto

// ResetCalculatorRequest represents the request to rebuild all calculator
// tables from their CSV sources. Confirm must be true.
type ResetCalculatorRequest struct {
	Confirm bool `json:"confirm" validate:"required"`
}

// ImportCalculatorRequest represents the request to selectively reimport
// calculator sources
type ImportCalculatorRequest struct {
	Confirm   bool `json:"confirm" validate:"required"`
	Defaults  bool `json:"defaults"`
	Actions   bool `json:"actions"`
	Questions bool `json:"questions"`
}

// ImportCalculatorResponse represents the response to a reset or import
type ImportCalculatorResponse struct {
	Message string `json:"message"`
}

// ListDefaultsRequest represents the admin request to browse constants rows.
// Latest collapses the table to the newest row per (variable, locality).
type ListDefaultsRequest struct {
	Variable *string `json:"variable,omitempty" query:"variable"`
	Locality *string `json:"locality,omitempty" query:"locality"`
	Latest   bool    `json:"latest" query:"latest"`
	Page     int     `json:"page" query:"page" validate:"omitempty,min=1"`
	PageSize int     `json:"page_size" query:"page_size" validate:"omitempty,min=1,max=100"`
}

// DefaultItem is one constants row in admin responses
type DefaultItem struct {
	ID        uint    `json:"id"`
	Variable  string  `json:"variable"`
	Locality  string  `json:"locality"`
	ValidFrom string  `json:"valid_from"`
	Value     float64 `json:"value"`
	Reference string  `json:"reference,omitempty"`
	UpdatedAt string  `json:"updated_at"`
}

// ListDefaultsResponse represents the paged constants browse response
type ListDefaultsResponse struct {
	Message string        `json:"message"`
	Items   []DefaultItem `json:"items"`
	Total   int64         `json:"total"`
	Page    int           `json:"page"`
}

// UpsertDefaultRequest represents the admin request to create or overwrite
// one constants row keyed by (variable, locality, valid_from)
type UpsertDefaultRequest struct {
	Variable  string   `json:"variable" validate:"required,max=255"`
	Locality  string   `json:"locality" validate:"required,max=255"`
	ValidFrom string   `json:"valid_from" validate:"omitempty,datetime=2006-01-02"`
	Value     *float64 `json:"value" validate:"required"`
	Reference string   `json:"reference" validate:"omitempty,max=512"`
}

// UpsertDefaultResponse represents the response to an admin constants upsert
type UpsertDefaultResponse struct {
	Message string      `json:"message"`
	Item    DefaultItem `json:"item"`
}

// ListEstimatesRequest represents the admin request to browse served
// estimates
type ListEstimatesRequest struct {
	ActionName *string `json:"action_name,omitempty" query:"action_name"`
	Community  *string `json:"community,omitempty" query:"community"`
	Status     *string `json:"status,omitempty" query:"status"`
	StartDate  *string `json:"start_date,omitempty" query:"start_date"`
	EndDate    *string `json:"end_date,omitempty" query:"end_date"`
	Page       int     `json:"page" query:"page" validate:"omitempty,min=1"`
	PageSize   int     `json:"page_size" query:"page_size" validate:"omitempty,min=1,max=100"`
}

// EstimateRecordItem is one served estimate in admin responses
type EstimateRecordItem struct {
	UUID         string  `json:"uuid"`
	ActionName   string  `json:"action_name"`
	Community    string  `json:"community,omitempty"`
	Status       string  `json:"status"`
	CarbonPoints float64 `json:"carbon_points"`
	Cost         float64 `json:"cost"`
	Savings      float64 `json:"savings"`
	CreatedAt    string  `json:"created_at"`
}

// ListEstimatesResponse represents the paged estimates browse response
type ListEstimatesResponse struct {
	Message string               `json:"message"`
	Items   []EstimateRecordItem `json:"items"`
	Total   int64                `json:"total"`
	Page    int                  `json:"page"`
}

// CalculatorVersionResponse represents the current calculator version record
type CalculatorVersionResponse struct {
	Version        string `json:"version"`
	DefaultsMTime  string `json:"defaults_mtime,omitempty"`
	ActionsMTime   string `json:"actions_mtime,omitempty"`
	QuestionsMTime string `json:"questions_mtime,omitempty"`
	ImportedAt     string `json:"imported_at,omitempty"`
}
