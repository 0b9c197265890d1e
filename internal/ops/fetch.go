package ops

import (
	"database/sql"

	"chalk/internal/lesson"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID             string
	Week           int
	IncludeDeleted bool
	IncludePlan    *bool // default: true (nil means default)
}

// FetchOutput contains the result of the Fetch operation.
type FetchOutput struct {
	lesson.PlanSummary              // embedded (copy, not pointer)
	Plan               *lesson.Week `json:"plan,omitempty"`
}

// Fetch retrieves a plan by ID or week number. The plan document is
// included unless IncludePlan is explicitly false.
func Fetch(database *sql.DB, input FetchInput) (*FetchOutput, error) {
	p, err := resolvePlan(database, input.ID, input.Week, input.IncludeDeleted)
	if err != nil {
		return nil, err
	}

	output := &FetchOutput{PlanSummary: p.Summary()}
	if input.IncludePlan == nil || *input.IncludePlan {
		output.Plan = p.Week
	}
	return output, nil
}
