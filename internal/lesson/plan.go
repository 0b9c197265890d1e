package lesson

// Plan is a stored week plan row. The decoded week lives in Week;
// PlanJSON carries the original document bytes so exports round-trip
// byte-for-byte.
type Plan struct {
	// ID is a ULID that uniquely identifies this plan
	ID string

	// WeekNum is the 1-based week number; unique among active plans
	WeekNum int

	// Unit is the unit name the week belongs to
	Unit string

	// Title is an optional display title; defaults to the unit name
	Title string

	// PlanJSON is the raw stored week document
	PlanJSON string

	// Week is the decoded document
	Week *Week

	// DaysCount is the number of lesson days in the week
	DaysCount int

	// CreatedAt is the Unix timestamp when the plan was stored
	CreatedAt int64

	// UpdatedAt is the Unix timestamp when the plan was last updated
	UpdatedAt int64

	// DeletedAt is the Unix timestamp for soft delete (nullable)
	DeletedAt *int64
}

// PlanSummary is the reduced listing form of a plan.
type PlanSummary struct {
	ID        string `json:"id"`
	WeekNum   int    `json:"week"`
	Unit      string `json:"unit"`
	Title     string `json:"title,omitempty"`
	DaysCount int    `json:"days_count"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// Summary returns the listing form of the plan.
func (p *Plan) Summary() PlanSummary {
	return PlanSummary{
		ID:        p.ID,
		WeekNum:   p.WeekNum,
		Unit:      p.Unit,
		Title:     p.Title,
		DaysCount: p.DaysCount,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
