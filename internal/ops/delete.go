package ops

import (
	"database/sql"

	"chalk/internal/db"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID   string
	Week int
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
	Week    int    `json:"week"`
}

// Delete soft-deletes a plan. The week number becomes free for reuse.
// Only active plans can be addressed, so deleting twice reports NOT_FOUND.
func Delete(database *sql.DB, input DeleteInput) (*DeleteOutput, error) {
	p, err := resolvePlan(database, input.ID, input.Week, false)
	if err != nil {
		return nil, err
	}
	if err := db.SoftDelete(database, p.ID); err != nil {
		return nil, err
	}
	return &DeleteOutput{Deleted: true, ID: p.ID, Week: p.WeekNum}, nil
}
