package ops

import (
	"database/sql"
	"fmt"
	"time"

	"chalk/internal/db"
	"chalk/internal/errors"
)

// PurgeInput contains parameters for the Purge operation.
type PurgeInput struct {
	OlderThanDays *int // optional, only purge if deleted_at < (now - N days)
}

// PurgeOutput contains the result of the Purge operation.
type PurgeOutput struct {
	Purged  int    `json:"purged"`
	Message string `json:"message"`
}

// Purge permanently deletes soft-deleted plans.
func Purge(database *sql.DB, input PurgeInput) (*PurgeOutput, error) {
	cutoff, err := purgeCutoff(time.Now().Unix(), input.OlderThanDays)
	if err != nil {
		return nil, err
	}

	count, err := db.PurgeDeleted(database, cutoff)
	if err != nil {
		return nil, err
	}

	return &PurgeOutput{
		Purged:  count,
		Message: formatPurgeMessage(count, input.OlderThanDays),
	}, nil
}

// purgeCutoff returns the deleted_at threshold below which rows are purged.
// Without a day filter, everything soft-deleted so far is eligible.
func purgeCutoff(now int64, olderThanDays *int) (int64, error) {
	if olderThanDays == nil {
		return now + 1, nil
	}
	if *olderThanDays < 0 {
		return 0, errors.NewInvalidRequest("older_than_days must not be negative")
	}
	return now - int64(*olderThanDays)*86400, nil
}

// formatPurgeMessage creates a human-readable message for the purge result.
func formatPurgeMessage(count int, olderThanDays *int) string {
	if count == 0 {
		return "No deleted plans to purge"
	}
	noun := "plan"
	if count > 1 {
		noun = "plans"
	}
	msg := fmt.Sprintf("Permanently deleted %d %s", count, noun)
	if olderThanDays != nil {
		msg += fmt.Sprintf(" (deleted more than %d days ago)", *olderThanDays)
	}
	return msg
}
