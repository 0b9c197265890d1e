package ops

import (
	"database/sql"
	"strings"

	"chalk/internal/db"
	"chalk/internal/errors"
	"chalk/internal/lesson"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// Address represents a validated plan address.
type Address struct {
	ByID bool
	ID   string
	Week int
}

// ValidateAddress checks that exactly one addressing mode was given.
// Both id and week is AMBIGUOUS_ADDRESSING; neither is INVALID_REQUEST.
func ValidateAddress(id string, week int) (*Address, error) {
	id = strings.TrimSpace(id)

	switch {
	case id != "" && week != 0:
		return nil, errors.NewAmbiguousAddressing()
	case id != "":
		return &Address{ByID: true, ID: id}, nil
	case week == 0:
		return nil, errors.NewInvalidRequest("must specify either id or week")
	case week < 1:
		return nil, errors.NewInvalidRequest("week must be a positive number")
	default:
		return &Address{Week: week}, nil
	}
}

// resolvePlan validates the address and loads the plan it names.
func resolvePlan(database *sql.DB, id string, week int, includeDeleted bool) (*lesson.Plan, error) {
	addr, err := ValidateAddress(id, week)
	if err != nil {
		return nil, err
	}
	if addr.ByID {
		return db.GetByID(database, addr.ID, includeDeleted)
	}
	return db.GetByWeek(database, addr.Week, includeDeleted)
}
