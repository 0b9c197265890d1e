package db

import (
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"chalk/internal/errors"
	"chalk/internal/lesson"
)

// ErrUniqueConstraint is returned when an insert violates a UNIQUE constraint.
var ErrUniqueConstraint = &errors.ChalkError{
	Code:    "UNIQUE_CONSTRAINT",
	Status:  409,
	Message: "unique constraint violation",
}

// planColumns is the shared SELECT list for full plan rows.
const planColumns = `
	SELECT id, week_num, unit, title, plan_json, days_count,
		created_at, updated_at, deleted_at
	FROM plans`

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
// SQLite reports these as "UNIQUE constraint failed: ...".
func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// execOne runs a statement that must touch exactly one row. Zero affected
// rows maps to NOT_FOUND for the given key, unique violations to
// ErrUniqueConstraint.
func execOne(db *sql.DB, key, query string, args ...any) error {
	result, err := db.Exec(query, args...)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}

	n, err := result.RowsAffected()
	switch {
	case err != nil:
		return errors.NewInternal(err)
	case n == 0:
		return errors.NewNotFound(key)
	}
	return nil
}

// queryPlan runs a single-row plan query, mapping no-rows to NOT_FOUND.
func queryPlan(db *sql.DB, key, query string, args ...any) (*lesson.Plan, error) {
	p, err := scanPlan(db.QueryRow(query, args...))
	switch {
	case err == sql.ErrNoRows:
		return nil, errors.NewNotFound(key)
	case err != nil:
		return nil, errors.NewInternal(err)
	}
	return p, nil
}

// Insert stores a new plan in the database.
func Insert(db *sql.DB, p *lesson.Plan) error {
	query := `
		INSERT INTO plans (
			id, week_num, unit, title, plan_json, days_count,
			created_at, updated_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`
	return execOne(db, p.ID, query,
		p.ID, p.WeekNum, p.Unit, toNullString(p.Title), p.PlanJSON, p.DaysCount,
		p.CreatedAt, p.UpdatedAt,
	)
}

// GetByID retrieves a plan by its ULID.
// If includeDeleted is false, soft-deleted plans are excluded.
func GetByID(db *sql.DB, id string, includeDeleted bool) (*lesson.Plan, error) {
	query := planColumns + ` WHERE id = ?`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	return queryPlan(db, id, query, id)
}

// GetByWeek retrieves a plan by week number.
// If includeDeleted is false, soft-deleted plans are excluded.
func GetByWeek(db *sql.DB, weekNum int, includeDeleted bool) (*lesson.Plan, error) {
	query := planColumns + ` WHERE week_num = ?`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	} else {
		// If both active and soft-deleted plans exist for the week, prefer
		// the active one, then the most recently updated deleted one.
		query += " ORDER BY (deleted_at IS NULL) DESC, updated_at DESC LIMIT 1"
	}
	return queryPlan(db, "week "+strconv.Itoa(weekNum), query, weekNum)
}

// CheckWeekExists checks if an active plan for the given week exists.
func CheckWeekExists(db *sql.DB, weekNum int) (bool, error) {
	var one int
	err := db.QueryRow(
		`SELECT 1 FROM plans WHERE week_num = ? AND deleted_at IS NULL LIMIT 1`,
		weekNum,
	).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, errors.NewInternal(err)
	}
	return true, nil
}

// UpdateByID updates mutable fields of an existing plan and refreshes
// updated_at. The id and week_num columns never change here.
func UpdateByID(db *sql.DB, p *lesson.Plan) error {
	now := time.Now().Unix()
	query := `
		UPDATE plans
		SET unit = ?, title = ?, plan_json = ?, days_count = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`
	err := execOne(db, p.ID, query,
		p.Unit, toNullString(p.Title), p.PlanJSON, p.DaysCount, now,
		p.ID,
	)
	if err != nil {
		return err
	}
	p.UpdatedAt = now
	return nil
}

// UpdateFull overwrites every column of an existing plan, including
// week_num and the timestamps. Used by import, which must restore rows
// exactly as exported.
func UpdateFull(db *sql.DB, p *lesson.Plan) error {
	var deletedAt sql.NullInt64
	if p.DeletedAt != nil {
		deletedAt = sql.NullInt64{Int64: *p.DeletedAt, Valid: true}
	}

	query := `
		UPDATE plans
		SET week_num = ?, unit = ?, title = ?, plan_json = ?, days_count = ?,
			created_at = ?, updated_at = ?, deleted_at = ?
		WHERE id = ?
	`
	return execOne(db, p.ID, query,
		p.WeekNum, p.Unit, toNullString(p.Title), p.PlanJSON, p.DaysCount,
		p.CreatedAt, p.UpdatedAt, deletedAt,
		p.ID,
	)
}

// List returns summaries of active plans ordered by week number,
// plus the total active count for pagination.
// If unit is non-empty, only plans in that unit are returned.
func List(db *sql.DB, unit string, limit, offset int) ([]lesson.PlanSummary, int, error) {
	where := "deleted_at IS NULL"
	args := []any{}
	if unit != "" {
		where += " AND unit = ?"
		args = append(args, unit)
	}

	var total int
	if err := db.QueryRow("SELECT COUNT(*) FROM plans WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `
		SELECT id, week_num, unit, title, days_count, created_at, updated_at
		FROM plans
		WHERE ` + where + `
		ORDER BY week_num ASC
		LIMIT ? OFFSET ?
	`
	rows, err := db.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var summaries []lesson.PlanSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	return summaries, total, nil
}

func scanSummary(rows *sql.Rows) (lesson.PlanSummary, error) {
	var (
		s     lesson.PlanSummary
		title sql.NullString
	)
	err := rows.Scan(&s.ID, &s.WeekNum, &s.Unit, &title, &s.DaysCount, &s.CreatedAt, &s.UpdatedAt)
	s.Title = title.String
	return s, err
}

// Latest returns the most recently updated active plan.
func Latest(db *sql.DB) (*lesson.Plan, error) {
	query := planColumns + `
		WHERE deleted_at IS NULL
		ORDER BY updated_at DESC, id DESC
		LIMIT 1
	`
	return queryPlan(db, "latest", query)
}

// StreamForExport returns rows over full plan documents ordered by week
// number. Caller must close the rows and scan each with ScanPlanFromRows.
func StreamForExport(db *sql.DB, includeDeleted bool) (*sql.Rows, error) {
	query := planColumns
	if !includeDeleted {
		query += ` WHERE deleted_at IS NULL`
	}
	rows, err := db.Query(query + ` ORDER BY week_num ASC`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return rows, nil
}

// ScanPlanFromRows scans the current row of a StreamForExport result set.
func ScanPlanFromRows(rows *sql.Rows) (*lesson.Plan, error) {
	return scanPlan(rows)
}

// SoftDelete marks a plan as deleted by setting deleted_at.
func SoftDelete(db *sql.DB, id string) error {
	query := `
		UPDATE plans
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`
	return execOne(db, id, query, time.Now().Unix(), id)
}

// PurgeDeleted hard-deletes soft-deleted plans whose deleted_at is older
// than the cutoff. Returns the number of rows removed.
func PurgeDeleted(db *sql.DB, cutoff int64) (int, error) {
	result, err := db.Exec(
		`DELETE FROM plans WHERE deleted_at IS NOT NULL AND deleted_at <= ?`,
		cutoff,
	)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return int(n), nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanPlan scans a single row into a Plan struct and decodes the stored
// week document.
func scanPlan(row rowScanner) (*lesson.Plan, error) {
	var (
		p         lesson.Plan
		title     sql.NullString
		deletedAt sql.NullInt64
	)
	err := row.Scan(
		&p.ID, &p.WeekNum, &p.Unit, &title, &p.PlanJSON, &p.DaysCount,
		&p.CreatedAt, &p.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Title = title.String
	if deletedAt.Valid {
		p.DeletedAt = &deletedAt.Int64
	}

	var week lesson.Week
	if err := json.Unmarshal([]byte(p.PlanJSON), &week); err != nil {
		return nil, err
	}
	p.Week = &week
	return &p, nil
}

// toNullString converts an optional string to sql.NullString.
func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
