package ops

import (
	"database/sql"

	"chalk/internal/db"
	"chalk/internal/errors"
	"chalk/internal/lesson"
)

// LatestInput contains parameters for the Latest operation.
type LatestInput struct {
	IncludePlan *bool // default: false (summary only)
}

// LatestOutput contains the result of the Latest operation.
type LatestOutput struct {
	Item *LatestItem `json:"item"` // nil if no plans stored
}

// LatestItem contains the most recently updated plan with optional document.
type LatestItem struct {
	lesson.PlanSummary              // embedded summary
	Plan               *lesson.Week `json:"plan,omitempty"` // only if include_plan
}

// Latest retrieves the most recently updated active plan.
func Latest(database *sql.DB, input LatestInput) (*LatestOutput, error) {
	p, err := db.Latest(database)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return &LatestOutput{Item: nil}, nil
		}
		return nil, err
	}

	// Determine include_plan (default: false)
	includePlan := false
	if input.IncludePlan != nil {
		includePlan = *input.IncludePlan
	}

	item := &LatestItem{
		PlanSummary: p.Summary(),
	}
	if includePlan {
		item.Plan = p.Week
	}

	return &LatestOutput{Item: item}, nil
}
