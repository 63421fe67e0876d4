package businessflow

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/massenergize/carbon-backend/app/dto"
	"github.com/massenergize/carbon-backend/calculator"
	"github.com/massenergize/carbon-backend/config"
	"github.com/massenergize/carbon-backend/models"
	"github.com/massenergize/carbon-backend/repository"
	"github.com/massenergize/carbon-backend/utils"
	"github.com/redis/go-redis/v9"
)

// CalculatorFlow defines the public calculator operations.
type CalculatorFlow interface {
	ListActions(ctx context.Context) (*dto.ListActionsResponse, error)
	GetAction(ctx context.Context, name string) (*dto.GetActionResponse, error)
	Estimate(ctx context.Context, req *dto.EstimateRequest, metadata *ClientMetadata) (*dto.EstimateResponse, error)
}

// CalculatorFlowImpl implements CalculatorFlow.
type CalculatorFlowImpl struct {
	facade       *calculator.Facade
	estimateRepo repository.EstimateRecordRepository
	rc           *redis.Client
	cacheConfig  *config.CacheConfig
}

// NewCalculatorFlow creates a new calculator flow.
func NewCalculatorFlow(
	facade *calculator.Facade,
	estimateRepo repository.EstimateRecordRepository,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
) CalculatorFlow {
	return &CalculatorFlowImpl{
		facade:       facade,
		estimateRepo: estimateRepo,
		rc:           rc,
		cacheConfig:  cacheConfig,
	}
}

// ListActions returns every evaluable action, from cache when possible.
func (f *CalculatorFlowImpl) ListActions(ctx context.Context) (*dto.ListActionsResponse, error) {
	cacheKey := redisKey(*f.cacheConfig, utils.ActionListCacheKey)

	if f.rc != nil {
		if bs, err := f.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var items []dto.ActionItem
			if err := json.Unmarshal(bs, &items); err == nil {
				return &dto.ListActionsResponse{
					Message: "Actions retrieved from cache",
					Actions: items,
				}, nil
			}
		}
	}

	summaries, err := f.facade.AllActionsList(ctx)
	if err != nil {
		return nil, NewBusinessError("ACTION_LIST_FAILED", "Failed to list actions", err)
	}
	items := make([]dto.ActionItem, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, dto.ActionItem{
			ID:            s.ID,
			Name:          s.Name,
			Title:         s.Title,
			Description:   s.Description,
			Category:      s.Category,
			AveragePoints: s.AveragePoints,
		})
	}

	if f.rc != nil {
		if bs, err := json.Marshal(items); err == nil {
			_ = f.rc.Set(ctx, cacheKey, bs, utils.ActionListCacheTTL).Err()
		}
	}

	return &dto.ListActionsResponse{
		Message: "Actions retrieved",
		Actions: items,
	}, nil
}

// GetAction returns one action with its questions in presentation order.
func (f *CalculatorFlowImpl) GetAction(ctx context.Context, name string) (*dto.GetActionResponse, error) {
	if name == "" {
		return nil, NewBusinessError("ACTION_NAME_REQUIRED", "action name is required", ErrActionNotFound)
	}
	info, err := f.facade.Action(ctx, name)
	if err != nil {
		return nil, NewBusinessError("ACTION_LOOKUP_FAILED", "Failed to load action", err)
	}
	if info == nil {
		return nil, NewBusinessError("ACTION_NOT_FOUND", "action not found", ErrActionNotFound)
	}

	out := &dto.GetActionResponse{
		ActionItem: dto.ActionItem{
			ID:            info.ID,
			Name:          info.Name,
			Title:         info.Title,
			Description:   info.Description,
			Category:      info.Category,
			AveragePoints: info.AveragePoints,
		},
		HelpText: info.HelpText,
	}
	for _, q := range info.Questions {
		item := dto.QuestionItem{
			Name:         q.Name,
			Category:     q.Category,
			QuestionText: q.QuestionText,
			ResponseType: q.ResponseType,
			MinimumValue: q.MinimumValue,
			MaximumValue: q.MaximumValue,
			TypicalValue: q.TypicalValue,
		}
		for _, r := range q.Responses() {
			item.Responses = append(item.Responses, dto.QuestionResponseItem{Text: r.Text, Skip: r.Skip})
		}
		out.Questions = append(out.Questions, item)
	}
	return out, nil
}

// Estimate evaluates one action and records the outcome for community
// analytics. Recording failures are logged, not surfaced: the estimate
// itself is the user-facing product.
func (f *CalculatorFlowImpl) Estimate(ctx context.Context, req *dto.EstimateRequest, metadata *ClientMetadata) (*dto.EstimateResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}
	if req.ActionName == "" {
		return nil, NewBusinessError("ACTION_NAME_REQUIRED", "action name is required", ErrActionNotFound)
	}
	answers := calculator.Answers(req.Answers)
	if answers == nil {
		answers = calculator.Answers{}
	}

	result := f.facade.Estimate(ctx, req.ActionName, answers)

	record := models.EstimateRecord{
		UUID:         uuid.New(),
		ActionName:   req.ActionName,
		Community:    answers.String(utils.CommunityAnswerKey, ""),
		Status:       result.Status,
		CarbonPoints: result.CarbonPoints,
		Cost:         result.Cost,
		Savings:      result.Savings,
		CreatedAt:    utils.UTCNow(),
	}
	if err := f.estimateRepo.Save(ctx, &record); err != nil {
		requestID := ""
		if metadata != nil {
			requestID = metadata.RequestID
		}
		log.Printf("Failed to record estimate for %s (request %s): %v", req.ActionName, requestID, err)
	}

	return &dto.EstimateResponse{
		UUID:         record.UUID.String(),
		ActionName:   req.ActionName,
		Status:       result.Status,
		CarbonPoints: result.CarbonPoints,
		Cost:         result.Cost,
		Savings:      result.Savings,
		Explanation:  result.Explanation,
	}, nil
}
