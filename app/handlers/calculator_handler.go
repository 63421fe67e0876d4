package handlers

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/massenergize/carbon-backend/app/dto"
	businessflow "github.com/massenergize/carbon-backend/business_flow"
	"github.com/massenergize/carbon-backend/utils"
)

// CalculatorHandlerInterface defines the contract for public calculator handlers.
type CalculatorHandlerInterface interface {
	ListActions(c fiber.Ctx) error
	GetAction(c fiber.Ctx) error
	Estimate(c fiber.Ctx) error
}

// CalculatorHandler handles public calculator requests.
type CalculatorHandler struct {
	flow      businessflow.CalculatorFlow
	validator *validator.Validate
}

// NewCalculatorHandler creates a new calculator handler.
func NewCalculatorHandler(flow businessflow.CalculatorFlow) *CalculatorHandler {
	return &CalculatorHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *CalculatorHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CalculatorHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListActions lists all evaluable actions.
// @Summary List actions
// @Description List every climate action the calculator can estimate
// @Tags Calculator
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListActionsResponse} "Retrieved"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/calculator/actions [get]
func (h *CalculatorHandler) ListActions(c fiber.Ctx) error {
	res, err := h.flow.ListActions(h.createRequestContext(c, "/api/v1/calculator/actions"))
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list actions", "ACTION_LIST_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Actions retrieved", res)
}

// GetAction returns one action with its questions.
// @Summary Get action
// @Description Get one action's metadata and input questions
// @Tags Calculator
// @Produce json
// @Param name path string true "Action name"
// @Success 200 {object} dto.APIResponse{data=dto.GetActionResponse} "Retrieved"
// @Failure 404 {object} dto.APIResponse "Action not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/calculator/actions/{name} [get]
func (h *CalculatorHandler) GetAction(c fiber.Ctx) error {
	name := c.Params("name")

	res, err := h.flow.GetAction(h.createRequestContext(c, "/api/v1/calculator/actions/:name"), name)
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok {
			switch be.Code {
			case "ACTION_NOT_FOUND", "ACTION_NAME_REQUIRED":
				return h.ErrorResponse(c, fiber.StatusNotFound, "Action not found", be.Code, be.Error())
			}
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load action", "ACTION_LOOKUP_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Action retrieved", res)
}

// Estimate computes the impact of one action from the submitted answers.
// @Summary Estimate action impact
// @Description Estimate the carbon points, cost, and savings of one action
// @Tags Calculator
// @Accept json
// @Produce json
// @Param name path string true "Action name"
// @Param request body dto.EstimateRequest true "Answers payload"
// @Success 200 {object} dto.APIResponse{data=dto.EstimateResponse} "Estimated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/calculator/actions/{name}/estimate [post]
func (h *CalculatorHandler) Estimate(c fiber.Ctx) error {
	var req dto.EstimateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.ActionName = c.Params("name")
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetRequestID(c.Get("X-Request-ID"))

	res, err := h.flow.Estimate(h.createRequestContext(c, "/api/v1/calculator/actions/:name/estimate"), &req, metadata)
	if err != nil {
		if be, ok := err.(*businessflow.BusinessError); ok {
			switch be.Code {
			case "INVALID_REQUEST", "ACTION_NAME_REQUIRED":
				return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request", be.Code, be.Error())
			}
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute estimate", "ESTIMATE_FAILED", nil)
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Estimate computed", res)
}

func (h *CalculatorHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *CalculatorHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
