package businessflow

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"time"

	"github.com/massenergize/carbon-backend/app/dto"
	"github.com/massenergize/carbon-backend/calculator"
	"github.com/massenergize/carbon-backend/config"
	"github.com/massenergize/carbon-backend/models"
	"github.com/massenergize/carbon-backend/repository"
	"github.com/massenergize/carbon-backend/utils"
	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// CalculatorAdminFlow defines administrative calculator operations.
type CalculatorAdminFlow interface {
	Reset(ctx context.Context, req *dto.ResetCalculatorRequest) (*dto.ImportCalculatorResponse, error)
	Import(ctx context.Context, req *dto.ImportCalculatorRequest) (*dto.ImportCalculatorResponse, error)
	ExportDefaultsCSV(ctx context.Context) ([]byte, error)
	ExportDefaultsXLSX(ctx context.Context) ([]byte, error)
	ListDefaults(ctx context.Context, req *dto.ListDefaultsRequest) (*dto.ListDefaultsResponse, error)
	UpsertDefault(ctx context.Context, req *dto.UpsertDefaultRequest) (*dto.UpsertDefaultResponse, error)
	ListEstimates(ctx context.Context, req *dto.ListEstimatesRequest) (*dto.ListEstimatesResponse, error)
	GetVersion(ctx context.Context) (*dto.CalculatorVersionResponse, error)
}

// CalculatorAdminFlowImpl implements CalculatorAdminFlow.
type CalculatorAdminFlowImpl struct {
	facade       *calculator.Facade
	defaultsRepo repository.ConstantEntryRepository
	estimateRepo repository.EstimateRecordRepository
	db           *gorm.DB
	rc           *redis.Client
	cacheConfig  *config.CacheConfig
}

// NewCalculatorAdminFlow creates a new calculator admin flow.
func NewCalculatorAdminFlow(
	facade *calculator.Facade,
	defaultsRepo repository.ConstantEntryRepository,
	estimateRepo repository.EstimateRecordRepository,
	db *gorm.DB,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
) CalculatorAdminFlow {
	return &CalculatorAdminFlowImpl{
		facade:       facade,
		defaultsRepo: defaultsRepo,
		estimateRepo: estimateRepo,
		db:           db,
		rc:           rc,
		cacheConfig:  cacheConfig,
	}
}

// withImportTx runs a rebuild inside one transaction so a failed source
// import never leaves the tables half-replaced. Flows built without a
// database handle run the function directly.
func (f *CalculatorAdminFlowImpl) withImportTx(ctx context.Context, fn func(context.Context) error) error {
	if f.db == nil {
		return fn(ctx)
	}
	return repository.WithTransaction(ctx, f.db, fn)
}

// dropActionCache invalidates the cached public action list after any
// operation that may have changed action metadata.
func (f *CalculatorAdminFlowImpl) dropActionCache(ctx context.Context) {
	if f.rc != nil {
		_ = f.rc.Del(ctx, redisKey(*f.cacheConfig, utils.ActionListCacheKey)).Err()
	}
}

func mapImportError(err error) error {
	if errors.Is(err, calculator.ErrConfirmationRequired) {
		return NewBusinessError("CONFIRMATION_REQUIRED", "confirmation flag is required", ErrConfirmationRequired)
	}
	if errors.Is(err, calculator.ErrSourceNotConfigured) {
		return NewBusinessError("SOURCE_NOT_CONFIGURED", "calculator source file is not configured", ErrSourceNotConfigured)
	}
	var importErr *calculator.ImportError
	if errors.As(err, &importErr) {
		return NewBusinessError("IMPORT_FAILED", importErr.Error(), importErr)
	}
	return NewBusinessError("IMPORT_FAILED", "calculator import failed", err)
}

func (f *CalculatorAdminFlowImpl) Reset(ctx context.Context, req *dto.ResetCalculatorRequest) (*dto.ImportCalculatorResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}
	err := f.withImportTx(ctx, func(txCtx context.Context) error {
		return f.facade.Reset(txCtx, req.Confirm)
	})
	if err != nil {
		return nil, mapImportError(err)
	}
	f.dropActionCache(ctx)
	return &dto.ImportCalculatorResponse{Message: "Calculator reset: all sources reimported"}, nil
}

func (f *CalculatorAdminFlowImpl) Import(ctx context.Context, req *dto.ImportCalculatorRequest) (*dto.ImportCalculatorResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}
	if !req.Defaults && !req.Actions && !req.Questions {
		return nil, NewBusinessError("NO_SOURCES_SELECTED", "at least one source must be selected", nil)
	}
	err := f.withImportTx(ctx, func(txCtx context.Context) error {
		return f.facade.Import(txCtx, calculator.ImportInputs{
			Confirm:   req.Confirm,
			Defaults:  req.Defaults,
			Actions:   req.Actions,
			Questions: req.Questions,
		})
	})
	if err != nil {
		return nil, mapImportError(err)
	}
	if req.Actions {
		f.dropActionCache(ctx)
	}
	return &dto.ImportCalculatorResponse{Message: "Selected calculator sources reimported"}, nil
}

func (f *CalculatorAdminFlowImpl) ExportDefaultsCSV(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.facade.ExportDefaults(ctx, &buf); err != nil {
		return nil, NewBusinessError("EXPORT_FAILED", "Failed to export constants", err)
	}
	return buf.Bytes(), nil
}

// ExportDefaultsXLSX renders the constants table as a workbook with one
// sheet per locality, for operators who maintain the sources in
// spreadsheets.
func (f *CalculatorAdminFlowImpl) ExportDefaultsXLSX(ctx context.Context) ([]byte, error) {
	entries, err := f.defaultsRepo.LoadAll(ctx)
	if err != nil {
		return nil, NewBusinessError("EXPORT_FAILED", "Failed to load constants", err)
	}

	byLocality := make(map[string][]*models.ConstantEntry)
	for _, e := range entries {
		byLocality[e.Locality] = append(byLocality[e.Locality], e)
	}
	localities := make([]string, 0, len(byLocality))
	for l := range byLocality {
		localities = append(localities, l)
	}
	sort.Strings(localities)

	wb := excelize.NewFile()
	defer wb.Close()

	header := []any{"Variable", "Value", "Reference", "Valid Date", "Updated"}
	for i, locality := range localities {
		sheet := locality
		if i == 0 {
			if err := wb.SetSheetName(wb.GetSheetName(0), sheet); err != nil {
				return nil, NewBusinessError("EXPORT_FAILED", "Failed to build workbook", err)
			}
		} else {
			if _, err := wb.NewSheet(sheet); err != nil {
				return nil, NewBusinessError("EXPORT_FAILED", "Failed to build workbook", err)
			}
		}
		if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
			return nil, NewBusinessError("EXPORT_FAILED", "Failed to build workbook", err)
		}
		rows := byLocality[locality]
		sort.Slice(rows, func(a, b int) bool {
			if rows[a].Variable != rows[b].Variable {
				return rows[a].Variable < rows[b].Variable
			}
			return rows[a].ValidFrom.Before(rows[b].ValidFrom)
		})
		for r, e := range rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return nil, NewBusinessError("EXPORT_FAILED", "Failed to build workbook", err)
			}
			row := []any{
				e.Variable,
				e.Value,
				e.Reference,
				e.ValidFrom.Format(utils.DefaultsDateLayout),
				e.UpdatedAt.Format(utils.DefaultsDateLayout),
			}
			if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
				return nil, NewBusinessError("EXPORT_FAILED", "Failed to build workbook", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, NewBusinessError("EXPORT_FAILED", "Failed to write workbook", err)
	}
	return buf.Bytes(), nil
}

func (f *CalculatorAdminFlowImpl) ListDefaults(ctx context.Context, req *dto.ListDefaultsRequest) (*dto.ListDefaultsResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}
	page, pageSize, err := normalizePaging(req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	filter := models.ConstantEntryFilter{Variable: req.Variable, Locality: req.Locality}

	var rows []*models.ConstantEntry
	var total int64
	if req.Latest {
		latest, err := f.defaultsRepo.ListLatestPerKey(ctx)
		if err != nil {
			return nil, NewBusinessError("DEFAULTS_LIST_FAILED", "Failed to list constants", err)
		}
		for _, e := range latest {
			if req.Variable != nil && e.Variable != *req.Variable {
				continue
			}
			if req.Locality != nil && e.Locality != *req.Locality {
				continue
			}
			rows = append(rows, e)
		}
		total = int64(len(rows))
		start := (page - 1) * pageSize
		if start > len(rows) {
			start = len(rows)
		}
		end := start + pageSize
		if end > len(rows) {
			end = len(rows)
		}
		rows = rows[start:end]
	} else {
		total, err = f.defaultsRepo.Count(ctx, filter)
		if err != nil {
			return nil, NewBusinessError("DEFAULTS_LIST_FAILED", "Failed to count constants", err)
		}
		rows, err = f.defaultsRepo.ByFilter(ctx, filter, "variable ASC, locality ASC, valid_from ASC", pageSize, (page-1)*pageSize)
		if err != nil {
			return nil, NewBusinessError("DEFAULTS_LIST_FAILED", "Failed to list constants", err)
		}
	}

	items := make([]dto.DefaultItem, 0, len(rows))
	for _, e := range rows {
		items = append(items, toDefaultItem(e))
	}
	return &dto.ListDefaultsResponse{
		Message: "Constants retrieved",
		Items:   items,
		Total:   total,
		Page:    page,
	}, nil
}

func (f *CalculatorAdminFlowImpl) UpsertDefault(ctx context.Context, req *dto.UpsertDefaultRequest) (*dto.UpsertDefaultResponse, error) {
	if req == nil || req.Value == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}
	validFrom := utils.EpochSentinel
	if req.ValidFrom != "" {
		t, err := time.Parse(utils.DefaultsDateLayout, req.ValidFrom)
		if err != nil {
			return nil, NewBusinessError("INVALID_VALID_FROM", "valid_from must be YYYY-MM-DD", ErrInvalidValidFromDate)
		}
		validFrom = t.UTC()
	}

	entry := &models.ConstantEntry{
		Variable:  req.Variable,
		Locality:  req.Locality,
		ValidFrom: validFrom,
		Value:     *req.Value,
		Reference: req.Reference,
		UpdatedAt: utils.UTCNow(),
	}
	if err := f.defaultsRepo.UpsertByKey(ctx, entry); err != nil {
		return nil, NewBusinessError("DEFAULT_UPSERT_FAILED", "Failed to save constant", err)
	}
	if err := f.facade.ReloadConstants(ctx); err != nil {
		return nil, NewBusinessError("DEFAULT_RELOAD_FAILED", "Constant saved but table reload failed", err)
	}

	saved, err := f.defaultsRepo.ByKey(ctx, entry)
	if err != nil || saved == nil {
		saved = entry
	}
	return &dto.UpsertDefaultResponse{
		Message: "Constant saved",
		Item:    toDefaultItem(saved),
	}, nil
}

func (f *CalculatorAdminFlowImpl) ListEstimates(ctx context.Context, req *dto.ListEstimatesRequest) (*dto.ListEstimatesResponse, error) {
	if req == nil {
		return nil, NewBusinessError("INVALID_REQUEST", "request is required", nil)
	}
	page, pageSize, err := normalizePaging(req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	filter := models.EstimateRecordFilter{
		ActionName: req.ActionName,
		Community:  req.Community,
		Status:     req.Status,
	}
	if req.StartDate != nil {
		t, err := time.Parse(utils.DefaultsDateLayout, *req.StartDate)
		if err != nil {
			return nil, NewBusinessError("INVALID_START_DATE", "start_date must be YYYY-MM-DD", err)
		}
		filter.CreatedAfter = utils.ToPtr(t.UTC())
	}
	if req.EndDate != nil {
		t, err := time.Parse(utils.DefaultsDateLayout, *req.EndDate)
		if err != nil {
			return nil, NewBusinessError("INVALID_END_DATE", "end_date must be YYYY-MM-DD", err)
		}
		filter.CreatedBefore = utils.ToPtr(t.UTC().Add(24 * time.Hour))
	}
	if filter.CreatedAfter != nil && filter.CreatedBefore != nil && filter.CreatedAfter.After(*filter.CreatedBefore) {
		return nil, NewBusinessError("INVALID_DATE_RANGE", "start date cannot be after end date", ErrStartDateAfterEndDate)
	}

	total, err := f.estimateRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("ESTIMATES_LIST_FAILED", "Failed to count estimates", err)
	}
	rows, err := f.estimateRepo.ByFilter(ctx, filter, "created_at DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("ESTIMATES_LIST_FAILED", "Failed to list estimates", err)
	}

	items := make([]dto.EstimateRecordItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.EstimateRecordItem{
			UUID:         r.UUID.String(),
			ActionName:   r.ActionName,
			Community:    r.Community,
			Status:       r.Status,
			CarbonPoints: r.CarbonPoints,
			Cost:         r.Cost,
			Savings:      r.Savings,
			CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		})
	}
	return &dto.ListEstimatesResponse{
		Message: "Estimates retrieved",
		Items:   items,
		Total:   total,
		Page:    page,
	}, nil
}

func (f *CalculatorAdminFlowImpl) GetVersion(ctx context.Context) (*dto.CalculatorVersionResponse, error) {
	record, err := f.facade.CurrentVersion(ctx)
	if err != nil {
		return nil, NewBusinessError("VERSION_LOOKUP_FAILED", "Failed to load version record", err)
	}
	out := &dto.CalculatorVersionResponse{Version: record.Version}
	if !record.DefaultsMTime.IsZero() {
		out.DefaultsMTime = record.DefaultsMTime.Format(time.RFC3339)
	}
	if !record.ActionsMTime.IsZero() {
		out.ActionsMTime = record.ActionsMTime.Format(time.RFC3339)
	}
	if !record.QuestionsMTime.IsZero() {
		out.QuestionsMTime = record.QuestionsMTime.Format(time.RFC3339)
	}
	if !record.ImportedAt.IsZero() {
		out.ImportedAt = record.ImportedAt.Format(time.RFC3339)
	}
	return out, nil
}

func normalizePaging(page, pageSize int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 50
	}
	if page < 1 {
		return 0, 0, NewBusinessError("INVALID_PAGE", "page must be at least 1", ErrInvalidPage)
	}
	if pageSize < 1 || pageSize > 100 {
		return 0, 0, NewBusinessError("INVALID_PAGE_SIZE", "page size must be between 1 and 100", ErrInvalidPageSize)
	}
	return page, pageSize, nil
}

func toDefaultItem(e *models.ConstantEntry) dto.DefaultItem {
	return dto.DefaultItem{
		ID:        e.ID,
		Variable:  e.Variable,
		Locality:  e.Locality,
		ValidFrom: e.ValidFrom.Format(utils.DefaultsDateLayout),
		Value:     e.Value,
		Reference: e.Reference,
		UpdatedAt: e.UpdatedAt.Format(time.RFC3339),
	}
}
