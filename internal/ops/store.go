package ops

import (
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"chalk/internal/db"
	"chalk/internal/errors"
	"chalk/internal/lesson"
)

// StoreMode controls collision behavior.
type StoreMode string

const (
	StoreModeError   StoreMode = "error"   // default: fail on week collision
	StoreModeReplace StoreMode = "replace" // overwrite existing
)

// StoreInput contains parameters for the Store operation.
type StoreInput struct {
	PlanJSON string    // required: the week plan document
	Title    string    // optional, default: unit name
	Mode     StoreMode // default: StoreModeError
}

// StoreOutput contains the result of the Store operation.
type StoreOutput struct {
	ID        string `json:"id"`
	Week      int    `json:"week"`
	Unit      string `json:"unit"`
	DaysCount int    `json:"days_count"`
	Replaced  bool   `json:"replaced"`
}

// Store creates or replaces a week plan.
func Store(database *sql.DB, input StoreInput) (*StoreOutput, error) {
	// Validate required fields
	if strings.TrimSpace(input.PlanJSON) == "" {
		return nil, errors.NewInvalidRequest("plan is required")
	}

	// Apply defaults
	if input.Mode == "" {
		input.Mode = StoreModeError
	}
	if input.Mode != StoreModeError && input.Mode != StoreModeReplace {
		return nil, errors.NewInvalidRequest("mode must be one of: error, replace")
	}

	// Parse and validate the plan document
	var week lesson.Week
	if err := json.Unmarshal([]byte(input.PlanJSON), &week); err != nil {
		return nil, errors.NewInvalidRequest("plan is not valid JSON: " + err.Error())
	}
	if err := lesson.ValidateWeek(&week); err != nil {
		return nil, err
	}

	// Default title to unit if not provided
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = week.Unit
	}

	now := time.Now().Unix()

	// Generate ULID for new plan (discarded if replace updates existing)
	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	p := &lesson.Plan{
		ID:        id,
		WeekNum:   week.Week,
		Unit:      week.Unit,
		Title:     title,
		PlanJSON:  input.PlanJSON,
		Week:      &week,
		DaysCount: len(week.Days),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if input.Mode == StoreModeReplace {
		// Update the existing active plan for this week if there is one,
		// keeping its id and created_at; otherwise insert fresh.
		existing, err := db.GetByWeek(database, week.Week, false)
		if err != nil && !errors.Is(err, errors.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			p.ID = existing.ID
			if err := db.UpdateByID(database, p); err != nil {
				return nil, err
			}
			return &StoreOutput{
				ID:        p.ID,
				Week:      p.WeekNum,
				Unit:      p.Unit,
				DaysCount: p.DaysCount,
				Replaced:  true,
			}, nil
		}
	} else {
		// mode:error - check for an active plan on this week up front
		exists, err := db.CheckWeekExists(database, week.Week)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errors.NewWeekAlreadyExists(week.Week)
		}
	}

	if err := db.Insert(database, p); err != nil {
		// Concurrent caller won the week between check and insert
		if err == db.ErrUniqueConstraint {
			return nil, errors.NewWeekAlreadyExists(week.Week)
		}
		return nil, err
	}

	return &StoreOutput{
		ID:        p.ID,
		Week:      p.WeekNum,
		Unit:      p.Unit,
		DaysCount: p.DaysCount,
		Replaced:  false,
	}, nil
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
