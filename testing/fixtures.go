// Package testing provides test utilities and database setup for testing the carbon backend
package testing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/massenergize/carbon-backend/models"
	"github.com/massenergize/carbon-backend/utils"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestConstant creates one constants table row
func (tf *TestFixtures) CreateTestConstant(variable, locality string, validFrom time.Time, value float64) (*models.ConstantEntry, error) {
	entry := &models.ConstantEntry{
		Variable:  variable,
		Locality:  locality,
		ValidFrom: validFrom,
		Value:     value,
		Reference: "test fixture",
		UpdatedAt: utils.UTCNow(),
	}

	if err := tf.DB.DB.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create test constant %s/%s: %w", variable, locality, err)
	}

	return entry, nil
}

// CreateDefaultConstant creates a constants row in the default locality with
// the epoch sentinel valid date
func (tf *TestFixtures) CreateDefaultConstant(variable string, value float64) (*models.ConstantEntry, error) {
	return tf.CreateTestConstant(variable, utils.DefaultLocality, utils.EpochSentinel, value)
}

// CreateTestAction creates an action definition row
func (tf *TestFixtures) CreateTestAction(name, category string, averagePoints float64, questionNames string) (*models.ActionDefinition, error) {
	action := &models.ActionDefinition{
		Name:          name,
		Title:         fmt.Sprintf("Test action %s", name),
		Description:   "Test action created by fixtures",
		HelpText:      "Help text for the test action",
		Category:      category,
		AveragePoints: averagePoints,
		QuestionNames: questionNames,
	}

	if err := tf.DB.DB.Create(action).Error; err != nil {
		return nil, fmt.Errorf("failed to create test action %s: %w", name, err)
	}

	return action, nil
}

// CreateTestQuestion creates a choice question with the supplied responses
func (tf *TestFixtures) CreateTestQuestion(name, category string, responses ...string) (*models.QuestionDefinition, error) {
	question := &models.QuestionDefinition{
		Name:         name,
		Category:     category,
		QuestionText: fmt.Sprintf("Test question %s?", name),
		ResponseType: models.QuestionTypeChoice,
	}

	targets := []*string{
		&question.Response1, &question.Response2, &question.Response3,
		&question.Response4, &question.Response5, &question.Response6,
	}
	for i, r := range responses {
		if i >= len(targets) {
			break
		}
		*targets[i] = r
	}

	if err := tf.DB.DB.Create(question).Error; err != nil {
		return nil, fmt.Errorf("failed to create test question %s: %w", name, err)
	}

	return question, nil
}

// CreateNumberQuestion creates a numeric question with bounds and a typical value
func (tf *TestFixtures) CreateNumberQuestion(name, category string, minimum, maximum, typical float64) (*models.QuestionDefinition, error) {
	question := &models.QuestionDefinition{
		Name:         name,
		Category:     category,
		QuestionText: fmt.Sprintf("Test question %s?", name),
		ResponseType: models.QuestionTypeNumber,
		MinimumValue: utils.ToPtr(minimum),
		MaximumValue: utils.ToPtr(maximum),
		TypicalValue: utils.ToPtr(typical),
	}

	if err := tf.DB.DB.Create(question).Error; err != nil {
		return nil, fmt.Errorf("failed to create test question %s: %w", name, err)
	}

	return question, nil
}

// CreateTestEstimateRecord creates one recorded estimate
func (tf *TestFixtures) CreateTestEstimateRecord(actionName, community, status string, points float64) (*models.EstimateRecord, error) {
	record := &models.EstimateRecord{
		UUID:         uuid.New(),
		ActionName:   actionName,
		Community:    community,
		Status:       status,
		CarbonPoints: points,
		CreatedAt:    utils.UTCNow(),
	}

	if err := tf.DB.DB.Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to create test estimate record: %w", err)
	}

	return record, nil
}
