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

// CalculatorAdminHandlerInterface defines the contract for admin calculator handlers.
type CalculatorAdminHandlerInterface interface {
	Reset(c fiber.Ctx) error
	Import(c fiber.Ctx) error
	ExportDefaultsCSV(c fiber.Ctx) error
	ExportDefaultsXLSX(c fiber.Ctx) error
	ListDefaults(c fiber.Ctx) error
	UpsertDefault(c fiber.Ctx) error
	ListEstimates(c fiber.Ctx) error
	GetVersion(c fiber.Ctx) error
}

// CalculatorAdminHandler handles administrative calculator requests.
type CalculatorAdminHandler struct {
	flow      businessflow.CalculatorAdminFlow
	validator *validator.Validate
}

// NewCalculatorAdminHandler creates a new calculator admin handler.
func NewCalculatorAdminHandler(flow businessflow.CalculatorAdminFlow) *CalculatorAdminHandler {
	return &CalculatorAdminHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

func (h *CalculatorAdminHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CalculatorAdminHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// mapFlowError translates flow business errors into HTTP responses.
func (h *CalculatorAdminHandler) mapFlowError(c fiber.Ctx, err error, fallbackMessage, fallbackCode string) error {
	if be, ok := err.(*businessflow.BusinessError); ok {
		switch be.Code {
		case "INVALID_REQUEST", "NO_SOURCES_SELECTED", "INVALID_PAGE", "INVALID_PAGE_SIZE",
			"INVALID_VALID_FROM", "INVALID_START_DATE", "INVALID_END_DATE", "INVALID_DATE_RANGE":
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request", be.Code, be.Error())
		case "CONFIRMATION_REQUIRED":
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Confirmation flag is required", be.Code, be.Error())
		case "SOURCE_NOT_CONFIGURED":
			return h.ErrorResponse(c, fiber.StatusConflict, "Calculator source file is not configured", be.Code, be.Error())
		case "IMPORT_FAILED":
			return h.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Import failed", be.Code, be.Error())
		}
	}
	return h.ErrorResponse(c, fiber.StatusInternalServerError, fallbackMessage, fallbackCode, nil)
}

// Reset rebuilds all calculator tables from their CSV sources.
// @Summary Reset calculator
// @Description Reimport questions, actions, and constants from source files (admin)
// @Tags Calculator Admin
// @Accept json
// @Produce json
// @Param request body dto.ResetCalculatorRequest true "Confirmation payload"
// @Success 200 {object} dto.APIResponse{data=dto.ImportCalculatorResponse} "Reset"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 422 {object} dto.APIResponse "Import failed"
// @Router /api/v1/admin/calculator/reset [post]
func (h *CalculatorAdminHandler) Reset(c fiber.Ctx) error {
	var req dto.ResetCalculatorRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	res, err := h.flow.Reset(h.createRequestContext(c, "/api/v1/admin/calculator/reset"), &req)
	if err != nil {
		return h.mapFlowError(c, err, "Failed to reset calculator", "RESET_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Calculator reset", res)
}

// Import selectively reimports calculator sources.
// @Summary Import calculator sources
// @Description Reimport the selected sources from their CSV files (admin)
// @Tags Calculator Admin
// @Accept json
// @Produce json
// @Param request body dto.ImportCalculatorRequest true "Import selection payload"
// @Success 200 {object} dto.APIResponse{data=dto.ImportCalculatorResponse} "Imported"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 422 {object} dto.APIResponse "Import failed"
// @Router /api/v1/admin/calculator/import [post]
func (h *CalculatorAdminHandler) Import(c fiber.Ctx) error {
	var req dto.ImportCalculatorRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	res, err := h.flow.Import(h.createRequestContext(c, "/api/v1/admin/calculator/import"), &req)
	if err != nil {
		return h.mapFlowError(c, err, "Failed to import calculator sources", "IMPORT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Sources imported", res)
}

// ExportDefaultsCSV streams the constants table as CSV.
// @Summary Export constants as CSV
// @Description Export every constants row in the import format (admin)
// @Tags Calculator Admin
// @Produce text/csv
// @Success 200 {string} string "CSV body"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/calculator/defaults/export [get]
func (h *CalculatorAdminHandler) ExportDefaultsCSV(c fiber.Ctx) error {
	body, err := h.flow.ExportDefaultsCSV(h.createRequestContext(c, "/api/v1/admin/calculator/defaults/export"))
	if err != nil {
		return h.mapFlowError(c, err, "Failed to export constants", "EXPORT_FAILED")
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="carbon_defaults.csv"`)
	return c.Status(fiber.StatusOK).Send(body)
}

// ExportDefaultsXLSX streams the constants table as a workbook.
// @Summary Export constants as XLSX
// @Description Export the constants table with one sheet per locality (admin)
// @Tags Calculator Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {string} string "Workbook body"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/calculator/defaults/export.xlsx [get]
func (h *CalculatorAdminHandler) ExportDefaultsXLSX(c fiber.Ctx) error {
	body, err := h.flow.ExportDefaultsXLSX(h.createRequestContext(c, "/api/v1/admin/calculator/defaults/export.xlsx"))
	if err != nil {
		return h.mapFlowError(c, err, "Failed to export constants", "EXPORT_FAILED")
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="carbon_defaults.xlsx"`)
	return c.Status(fiber.StatusOK).Send(body)
}

// ListDefaults browses constants rows.
// @Summary List constants
// @Description Browse constants rows with optional variable/locality filters (admin)
// @Tags Calculator Admin
// @Produce json
// @Param variable query string false "Filter by variable"
// @Param locality query string false "Filter by locality"
// @Param latest query bool false "Only the newest row per variable and locality"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ListDefaultsResponse} "Retrieved"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/admin/calculator/defaults [get]
func (h *CalculatorAdminHandler) ListDefaults(c fiber.Ctx) error {
	var req dto.ListDefaultsRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	res, err := h.flow.ListDefaults(h.createRequestContext(c, "/api/v1/admin/calculator/defaults"), &req)
	if err != nil {
		return h.mapFlowError(c, err, "Failed to list constants", "DEFAULTS_LIST_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Constants retrieved", res)
}

// UpsertDefault creates or overwrites one constants row.
// @Summary Upsert constant
// @Description Create or overwrite one constants row keyed by variable, locality, and valid_from (admin)
// @Tags Calculator Admin
// @Accept json
// @Produce json
// @Param request body dto.UpsertDefaultRequest true "Constant payload"
// @Success 200 {object} dto.APIResponse{data=dto.UpsertDefaultResponse} "Saved"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/admin/calculator/defaults [post]
func (h *CalculatorAdminHandler) UpsertDefault(c fiber.Ctx) error {
	var req dto.UpsertDefaultRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	res, err := h.flow.UpsertDefault(h.createRequestContext(c, "/api/v1/admin/calculator/defaults"), &req)
	if err != nil {
		return h.mapFlowError(c, err, "Failed to save constant", "DEFAULT_UPSERT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Constant saved", res)
}

// ListEstimates browses served estimates.
// @Summary List estimates
// @Description Browse served estimates with optional filters (admin)
// @Tags Calculator Admin
// @Produce json
// @Param action_name query string false "Filter by action name"
// @Param community query string false "Filter by community"
// @Param status query string false "Filter by status"
// @Param start_date query string false "Created on or after (YYYY-MM-DD)"
// @Param end_date query string false "Created on or before (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ListEstimatesResponse} "Retrieved"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /api/v1/admin/calculator/estimates [get]
func (h *CalculatorAdminHandler) ListEstimates(c fiber.Ctx) error {
	var req dto.ListEstimatesRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	res, err := h.flow.ListEstimates(h.createRequestContext(c, "/api/v1/admin/calculator/estimates"), &req)
	if err != nil {
		return h.mapFlowError(c, err, "Failed to list estimates", "ESTIMATES_LIST_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Estimates retrieved", res)
}

// GetVersion returns the current calculator version record.
// @Summary Get calculator version
// @Description Get the stored version record and source mtimes (admin)
// @Tags Calculator Admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CalculatorVersionResponse} "Retrieved"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/calculator/version [get]
func (h *CalculatorAdminHandler) GetVersion(c fiber.Ctx) error {
	res, err := h.flow.GetVersion(h.createRequestContext(c, "/api/v1/admin/calculator/version"))
	if err != nil {
		return h.mapFlowError(c, err, "Failed to load version record", "VERSION_LOOKUP_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Version retrieved", res)
}

func (h *CalculatorAdminHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 60*time.Second)
}

func (h *CalculatorAdminHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	if adminID, ok := c.Locals("admin_id").(uint); ok && adminID != 0 {
		ctx = context.WithValue(ctx, utils.AdminIDKey, adminID)
	}
	return ctx
}
