package calculator

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/massenergize/carbon-backend/models"
	"github.com/massenergize/carbon-backend/utils"
)

// Importer parses the three CSV sources (defaults, actions, questions) into
// persisted storage and keeps the resolver's live table in step with
// defaults imports.
type Importer struct {
	defaults  DefaultsStore
	actions   ActionStore
	questions QuestionStore
	resolver  *Resolver
}

func NewImporter(defaults DefaultsStore, actions ActionStore, questions QuestionStore, resolver *Resolver) *Importer {
	return &Importer{defaults: defaults, actions: actions, questions: questions, resolver: resolver}
}

// header indexes columns by their trimmed header cell. The first column of
// the actions file is unlabeled; callers that need it address index 0
// directly.
type header map[string]int

func readTable(source string, r io.Reader) (header, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, &ImportError{Source: source, Row: 1, Err: err}
	}
	if len(records) == 0 {
		return nil, nil, &ImportError{Source: source, Row: 1, Err: fmt.Errorf("missing header row")}
	}
	h := make(header, len(records[0]))
	for i, name := range records[0] {
		h[strings.TrimSpace(name)] = i
	}
	return h, records[1:], nil
}

func (h header) cell(row []string, column string) string {
	i, ok := h[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (h header) require(source string, columns ...string) error {
	for _, c := range columns {
		if _, ok := h[c]; !ok {
			return &ImportError{Source: source, Row: 1, Column: c, Err: fmt.Errorf("missing required column")}
		}
	}
	return nil
}

// parseValidDate accepts the current YYYY-MM-DD form, the legacy MM/DD/YY
// form, and treats a blank cell as the epoch sentinel ("always valid unless
// superseded").
func parseValidDate(cell string) (time.Time, error) {
	if cell == "" {
		return utils.EpochSentinel, nil
	}
	if t, err := time.Parse(utils.DefaultsDateLayout, cell); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(utils.DefaultsLegacyDateLayout, cell)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", cell)
	}
	return t.UTC(), nil
}

// ImportDefaults parses a defaults CSV and upserts every well-formed row
// keyed by (variable, locality, valid_from), pushing each into the live
// table incrementally. Rows with an empty Variable or Locality are skipped;
// exact in-file key duplicates are dropped first-wins. Returns the number of
// rows imported. Persisted writes are not transactional: a failure midway
// leaves earlier rows committed.
func (im *Importer) ImportDefaults(ctx context.Context, source string, r io.Reader) (int, error) {
	h, rows, err := readTable(source, r)
	if err != nil {
		return 0, err
	}
	if err := h.require(source, "Variable", "Locality", "Value", "Reference", "Valid Date", "Updated"); err != nil {
		return 0, err
	}

	if removed, err := im.defaults.DeleteDuplicates(ctx); err != nil {
		return 0, fmt.Errorf("failed to deduplicate stored defaults: %w", err)
	} else if removed > 0 {
		log.Printf("Removed %d duplicate constants rows before import", removed)
	}

	seen := make(map[string]struct{}, len(rows))
	imported := 0
	for i, row := range rows {
		rowNum := i + 2 // 1-based, after the header
		variable := h.cell(row, "Variable")
		locality := h.cell(row, "Locality")
		if variable == "" || locality == "" {
			continue
		}
		validFrom, err := parseValidDate(h.cell(row, "Valid Date"))
		if err != nil {
			return imported, &ImportError{Source: source, Row: rowNum, Column: "Valid Date", Err: err}
		}
		key := variable + "\x00" + locality + "\x00" + validFrom.Format(utils.DefaultsDateLayout)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		value, err := ParseNumericExpr(h.cell(row, "Value"))
		if err != nil {
			return imported, &ImportError{Source: source, Row: rowNum, Column: "Value", Err: err}
		}
		entry := &models.ConstantEntry{
			Variable:  variable,
			Locality:  locality,
			ValidFrom: validFrom,
			Value:     value,
			Reference: h.cell(row, "Reference"),
			UpdatedAt: parseUpdated(h.cell(row, "Updated")),
		}
		if err := im.defaults.UpsertByKey(ctx, entry); err != nil {
			return imported, &ImportError{Source: source, Row: rowNum, Err: err}
		}
		im.resolver.apply(entry)
		imported++
	}
	log.Printf("Imported %d constants rows from %s", imported, source)
	return imported, nil
}

func parseUpdated(cell string) time.Time {
	if cell == "" {
		return utils.UTCNow()
	}
	if t, err := parseValidDate(cell); err == nil {
		return t
	}
	return utils.UTCNow()
}

// ExportDefaults writes every stored constants row in the import format, one
// row per (variable, locality, valid_from), ordered for stable round-trips.
func (im *Importer) ExportDefaults(ctx context.Context, w io.Writer) error {
	entries, err := im.defaults.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load constants for export: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Variable != entries[j].Variable {
			return entries[i].Variable < entries[j].Variable
		}
		if entries[i].Locality != entries[j].Locality {
			return entries[i].Locality < entries[j].Locality
		}
		return entries[i].ValidFrom.Before(entries[j].ValidFrom)
	})
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Variable", "Locality", "Value", "Reference", "Valid Date", "Updated"}); err != nil {
		return err
	}
	for _, e := range entries {
		record := []string{
			e.Variable,
			e.Locality,
			strconv.FormatFloat(e.Value, 'f', -1, 64),
			e.Reference,
			e.ValidFrom.Format(utils.DefaultsDateLayout),
			e.UpdatedAt.Format(utils.DefaultsDateLayout),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportActions parses the actions CSV. The action name is the first,
// unlabeled column. Rows with an empty name are skipped.
func (im *Importer) ImportActions(ctx context.Context, source string, r io.Reader) (int, error) {
	h, rows, err := readTable(source, r)
	if err != nil {
		return 0, err
	}
	imported := 0
	for i, row := range rows {
		rowNum := i + 2
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		points := 0.0
		if cell := h.cell(row, "Avg points"); cell != "" {
			points, err = ParseNumericExpr(cell)
			if err != nil {
				return imported, &ImportError{Source: source, Row: rowNum, Column: "Avg points", Err: err}
			}
		}
		action := &models.ActionDefinition{
			Name:          name,
			Title:         h.cell(row, "Title"),
			Description:   h.cell(row, "Description"),
			HelpText:      h.cell(row, "Helptext"),
			Category:      h.cell(row, "Category"),
			AveragePoints: points,
			QuestionNames: h.cell(row, "Questions"),
		}
		if err := im.actions.UpsertByName(ctx, action); err != nil {
			return imported, &ImportError{Source: source, Row: rowNum, Err: err}
		}
		imported++
	}
	log.Printf("Imported %d action rows from %s", imported, source)
	return imported, nil
}

// ImportQuestions parses the questions CSV. Each ResponseN column is
// followed positionally by its SkipN column; numeric bounds columns are
// optional.
func (im *Importer) ImportQuestions(ctx context.Context, source string, r io.Reader) (int, error) {
	h, rows, err := readTable(source, r)
	if err != nil {
		return 0, err
	}
	if err := h.require(source, "Name", "Category", "Question Text", "Question Type"); err != nil {
		return 0, err
	}
	imported := 0
	for i, row := range rows {
		rowNum := i + 2
		name := h.cell(row, "Name")
		if name == "" {
			continue
		}
		q := &models.QuestionDefinition{
			Name:         name,
			Category:     h.cell(row, "Category"),
			QuestionText: h.cell(row, "Question Text"),
			ResponseType: normalizeQuestionType(h.cell(row, "Question Type")),
		}
		responses := []*string{&q.Response1, &q.Response2, &q.Response3, &q.Response4, &q.Response5, &q.Response6}
		skips := []*string{&q.Skip1, &q.Skip2, &q.Skip3, &q.Skip4, &q.Skip5, &q.Skip6}
		for n := 0; n < 6; n++ {
			*responses[n] = h.cell(row, fmt.Sprintf("Response%d", n+1))
			*skips[n] = h.cell(row, fmt.Sprintf("Skip%d", n+1))
		}
		for column, dst := range map[string]**float64{
			"Min":           &q.MinimumValue,
			"Max":           &q.MaximumValue,
			"Typical value": &q.TypicalValue,
		} {
			cell := h.cell(row, column)
			if cell == "" {
				continue
			}
			v, err := ParseNumericExpr(cell)
			if err != nil {
				return imported, &ImportError{Source: source, Row: rowNum, Column: column, Err: err}
			}
			*dst = &v
		}
		if err := im.questions.UpsertByName(ctx, q); err != nil {
			return imported, &ImportError{Source: source, Row: rowNum, Err: err}
		}
		imported++
	}
	log.Printf("Imported %d question rows from %s", imported, source)
	return imported, nil
}

func normalizeQuestionType(raw string) string {
	switch strings.ToLower(raw) {
	case "number", "numeric":
		return models.QuestionTypeNumber
	case "text":
		return models.QuestionTypeText
	default:
		return models.QuestionTypeChoice
	}
}
