package ops

import (
	"database/sql"
	"strings"

	"chalk/internal/db"
	"chalk/internal/lesson"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Unit   string // optional filter by unit name
	Limit  int    // default: 20, max: 100
	Offset int    // default: 0
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []lesson.PlanSummary `json:"items"`
	Pagination Pagination           `json:"pagination"`
	Sort       string               `json:"sort"`
}

// List returns plan summaries ordered by week number. Deleted plans are
// never included.
func List(database *sql.DB, input ListInput) (*ListOutput, error) {
	limit := clampLimit(input.Limit)
	offset := max(input.Offset, 0)

	summaries, total, err := db.List(database, strings.TrimSpace(input.Unit), limit, offset)
	if err != nil {
		return nil, err
	}
	// Items must serialize as [] rather than null.
	if summaries == nil {
		summaries = []lesson.PlanSummary{}
	}

	return &ListOutput{
		Items: summaries,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(summaries) < total,
			Total:   total,
		},
		Sort: "week_num_asc",
	}, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
