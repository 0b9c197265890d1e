package ops

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"chalk/internal/config"
	"chalk/internal/db"
	"chalk/internal/errors"
	"chalk/internal/lesson"
)

// ImportMode controls collision behavior during import.
type ImportMode string

const (
	ImportModeError   ImportMode = "error"   // fail on collision (atomic)
	ImportModeReplace ImportMode = "replace" // overwrite on collision
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string     // required
	Mode ImportMode // default: error
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}

// ImportError describes one record that could not be imported.
type ImportError struct {
	Line    int    `json:"line"`
	ID      string `json:"id,omitempty"`
	Week    int    `json:"week,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Import reads plans back from a JSONL export file. Mode "error" is
// all-or-nothing: any parse error or collision imports zero records.
// Mode "replace" overwrites colliding plans and reports per-line errors
// for the rest.
func Import(database *sql.DB, cfg *config.Config, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	mode := input.Mode
	if mode == "" {
		mode = ImportModeError
	}
	if mode != ImportModeError && mode != ImportModeReplace {
		return nil, errors.NewInvalidRequest("mode must be one of: error, replace")
	}

	if err := ValidatePath(input.Path, PathCheckRead, cfg); err != nil {
		return nil, err
	}
	file, err := openFileNoFollowRead(input.Path)
	if err != nil {
		if _, ok := err.(*errors.ChalkError); ok {
			return nil, err
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to open import file: %w", err))
	}
	defer file.Close()

	records, parseErrors := parseExportFile(file)

	if mode == ImportModeReplace {
		return importReplacing(database, records, parseErrors)
	}
	if len(parseErrors) > 0 {
		return &ImportOutput{Errors: parseErrors}, nil
	}
	return importAtomic(database, records)
}

// importRecord pairs a parsed plan with the export line it came from.
type importRecord struct {
	Line int
	Plan *lesson.Plan
}

// parseExportFile reads every line of a JSONL export, returning the plans
// that parsed cleanly and a per-line error for each that did not. The
// header line is recognized and skipped.
func parseExportFile(file *os.File) ([]importRecord, []ImportError) {
	var records []importRecord
	var parseErrors []ImportError

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		rec, perr := parseExportLine(lineNum, scanner.Bytes())
		if perr != nil {
			parseErrors = append(parseErrors, *perr)
		} else if rec != nil {
			records = append(records, *rec)
		}
	}

	if err := scanner.Err(); err != nil {
		parseErrors = append(parseErrors, ImportError{
			Line:    lineNum,
			Code:    "READ_ERROR",
			Message: fmt.Sprintf("failed to read file: %v", err),
		})
	}

	return records, parseErrors
}

// parseExportLine returns (nil, nil) for the header line.
func parseExportLine(lineNum int, line []byte) (*importRecord, *ImportError) {
	var record lesson.ExportRecord
	if err := json.Unmarshal(line, &record); err != nil {
		return nil, &ImportError{
			Line:    lineNum,
			Code:    "PARSE_ERROR",
			Message: fmt.Sprintf("invalid JSON: %v", err),
		}
	}

	if record.ChalkExport {
		return nil, nil
	}
	if record.ID == "" {
		return nil, &ImportError{
			Line:    lineNum,
			Code:    "INVALID_RECORD",
			Message: "missing id field",
		}
	}

	p, err := record.ToPlan()
	if err != nil {
		return nil, &ImportError{
			Line:    lineNum,
			ID:      record.ID,
			Code:    "INVALID_RECORD",
			Message: fmt.Sprintf("invalid plan document: %v", err),
		}
	}
	if err := lesson.ValidateWeek(p.Week); err != nil {
		return nil, &ImportError{
			Line:    lineNum,
			ID:      record.ID,
			Week:    p.WeekNum,
			Code:    "INVALID_RECORD",
			Message: err.Error(),
		}
	}

	return &importRecord{Line: lineNum, Plan: p}, nil
}

// importAtomic inserts every record inside one transaction. The first
// collision aborts the whole import and is reported without touching the
// database.
func importAtomic(database *sql.DB, records []importRecord) (*ImportOutput, error) {
	tx, err := database.Begin()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer tx.Rollback() //nolint:errcheck

	// Collision checks read the live database and cannot see this
	// transaction's own inserts, so earlier records are tracked here.
	batch := newBatchTracker()

	imported := 0
	for _, record := range records {
		collision, err := findCollision(database, record)
		if err != nil {
			return nil, err
		}
		if collision == nil {
			collision = batch.collision(record)
		}
		if collision != nil {
			return &ImportOutput{Errors: []ImportError{*collision}}, nil
		}
		if err := insertWithTx(tx, record.Plan); err != nil {
			return nil, err
		}
		batch.add(record.Plan)
		imported++
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return &ImportOutput{Imported: imported, Errors: []ImportError{}}, nil
}

// batchTracker remembers the IDs and active weeks imported so far in the
// current batch.
type batchTracker struct {
	ids   map[string]bool
	weeks map[int]bool
}

func newBatchTracker() *batchTracker {
	return &batchTracker{ids: map[string]bool{}, weeks: map[int]bool{}}
}

func (b *batchTracker) add(p *lesson.Plan) {
	b.ids[p.ID] = true
	if p.DeletedAt == nil {
		b.weeks[p.WeekNum] = true
	}
}

// collision reports whether the record duplicates an earlier record in the
// same file. Week duplicates only matter when both plans are active.
func (b *batchTracker) collision(record importRecord) *ImportError {
	p := record.Plan
	if b.ids[p.ID] {
		return &ImportError{
			Line:    record.Line,
			ID:      p.ID,
			Code:    "ID_COLLISION",
			Message: fmt.Sprintf("id %q appears twice in the import file", p.ID),
		}
	}
	if p.DeletedAt == nil && b.weeks[p.WeekNum] {
		return &ImportError{
			Line:    record.Line,
			ID:      p.ID,
			Week:    p.WeekNum,
			Code:    "WEEK_COLLISION",
			Message: fmt.Sprintf("week %d appears twice in the import file", p.WeekNum),
		}
	}
	return nil
}

// findCollision reports whether the record's ID or week is already taken.
// Week collisions only matter for active plans; a soft-deleted import
// cannot shadow anything.
func findCollision(database *sql.DB, record importRecord) (*ImportError, error) {
	p := record.Plan

	existing, err := db.GetByID(database, p.ID, true)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return &ImportError{
			Line:    record.Line,
			ID:      p.ID,
			Code:    "ID_COLLISION",
			Message: fmt.Sprintf("plan with id %q already exists", p.ID),
		}, nil
	}

	if p.DeletedAt == nil {
		exists, err := db.CheckWeekExists(database, p.WeekNum)
		if err != nil {
			return nil, err
		}
		if exists {
			return &ImportError{
				Line:    record.Line,
				ID:      p.ID,
				Week:    p.WeekNum,
				Code:    "WEEK_COLLISION",
				Message: fmt.Sprintf("a plan for week %d already exists", p.WeekNum),
			}, nil
		}
	}

	return nil, nil
}

// importReplacing imports record by record, overwriting plans whose ID or
// week already exists. Parse errors count as skipped records.
func importReplacing(database *sql.DB, records []importRecord, parseErrors []ImportError) (*ImportOutput, error) {
	out := &ImportOutput{
		Skipped: len(parseErrors),
		Errors:  append([]ImportError{}, parseErrors...),
	}

	for _, record := range records {
		p := record.Plan

		existingByID, err := db.GetByID(database, p.ID, true)
		if err != nil && !errors.Is(err, errors.ErrNotFound) {
			return nil, err
		}

		var existingByWeek *lesson.Plan
		if p.DeletedAt == nil {
			existingByWeek, err = db.GetByWeek(database, p.WeekNum, false)
			if err != nil && !errors.Is(err, errors.ErrNotFound) {
				return nil, err
			}
		}

		switch {
		case existingByID != nil && existingByWeek != nil && existingByID.ID != existingByWeek.ID:
			// The ID points at one row and the week at another. Replacing
			// either would clobber the other, so the record is refused.
			out.Errors = append(out.Errors, ImportError{
				Line:    record.Line,
				ID:      p.ID,
				Week:    p.WeekNum,
				Code:    "AMBIGUOUS_COLLISION",
				Message: fmt.Sprintf("id %q matches existing plan but week %d matches different plan", p.ID, p.WeekNum),
			})
			out.Skipped++
		case existingByID != nil:
			if err := db.UpdateFull(database, p); err != nil {
				return nil, err
			}
			out.Imported++
		case existingByWeek != nil:
			// Same week under a different ID: the stored row keeps its
			// identity, the incoming data wins.
			p.ID = existingByWeek.ID
			if err := db.UpdateFull(database, p); err != nil {
				return nil, err
			}
			out.Imported++
		default:
			if err := db.Insert(database, p); err != nil {
				out.Errors = append(out.Errors, ImportError{
					Line:    record.Line,
					ID:      p.ID,
					Week:    p.WeekNum,
					Code:    "INSERT_FAILED",
					Message: fmt.Sprintf("failed to insert: %v", err),
				})
				out.Skipped++
				continue
			}
			out.Imported++
		}
	}

	return out, nil
}

func insertWithTx(tx *sql.Tx, p *lesson.Plan) error {
	var title sql.NullString
	if p.Title != "" {
		title = sql.NullString{String: p.Title, Valid: true}
	}
	var deletedAt sql.NullInt64
	if p.DeletedAt != nil {
		deletedAt = sql.NullInt64{Int64: *p.DeletedAt, Valid: true}
	}

	_, err := tx.Exec(`
		INSERT INTO plans (
			id, week_num, unit, title, plan_json, days_count,
			created_at, updated_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.WeekNum, p.Unit, title, p.PlanJSON, p.DaysCount,
		p.CreatedAt, p.UpdatedAt, deletedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}
