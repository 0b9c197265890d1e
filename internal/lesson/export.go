package lesson

import "encoding/json"

// ExportRecord represents a plan record in JSONL export format.
// It is used for parsing export files during import.
type ExportRecord struct {
	// Header detection field - true only for header line
	ChalkExport bool `json:"_chalk_export,omitempty"`

	// Header fields (only present in header line)
	SchemaVersion string `json:"schema_version,omitempty"`
	ExportedAt    int64  `json:"exported_at,omitempty"`

	// Plan fields
	ID        string          `json:"id"`
	WeekNum   int             `json:"week"` // IGNORED on import, recomputed
	Unit      string          `json:"unit"` // IGNORED on import, recomputed
	Title     string          `json:"title,omitempty"`
	Plan      json.RawMessage `json:"plan"`
	DaysCount int             `json:"days_count"` // IGNORED on import, recomputed
	CreatedAt int64           `json:"created_at"`
	UpdatedAt int64           `json:"updated_at"`
	DeletedAt *int64          `json:"deleted_at,omitempty"`
}

// ToPlan converts an ExportRecord to a Plan, recomputing derived fields
// from the embedded week document.
func (r *ExportRecord) ToPlan() (*Plan, error) {
	var week Week
	if err := json.Unmarshal(r.Plan, &week); err != nil {
		return nil, err
	}

	p := &Plan{
		ID:        r.ID,
		WeekNum:   week.Week, // Recompute
		Unit:      week.Unit, // Recompute
		Title:     r.Title,
		PlanJSON:  string(r.Plan),
		Week:      &week,
		DaysCount: len(week.Days), // Recompute
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		DeletedAt: r.DeletedAt,
	}

	if p.Title == "" {
		p.Title = p.Unit
	}

	return p, nil
}

// PlanToExportRecord converts a Plan to an ExportRecord for export.
func PlanToExportRecord(p *Plan) *ExportRecord {
	return &ExportRecord{
		ID:        p.ID,
		WeekNum:   p.WeekNum,
		Unit:      p.Unit,
		Title:     p.Title,
		Plan:      json.RawMessage(p.PlanJSON),
		DaysCount: p.DaysCount,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		DeletedAt: p.DeletedAt,
	}
}
