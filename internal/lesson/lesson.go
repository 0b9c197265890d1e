package lesson

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Lesson represents one instructional day's plan.
// Fields correspond to the JSON plan schema in DESIGN.md.
type Lesson struct {
	// Topic is the lesson topic (required for a valid plan)
	Topic string `json:"topic" validate:"required"`

	// Overview is the lesson overview; synthesized from topic and
	// objectives when absent
	Overview string `json:"overview,omitempty"`

	// Objectives lists the learning objectives in order
	Objectives []string `json:"objectives,omitempty"`

	// Schedule lists the day's activities in order
	Schedule []Activity `json:"schedule,omitempty"`

	// DayMaterials lists free-text equipment names for the day.
	// Distinct from the inferred Materials tag set.
	DayMaterials []string `json:"day_materials,omitempty"`

	// Differentiation holds per-level strategies or a plain narrative
	Differentiation Differentiation `json:"differentiation,omitempty"`

	// Explicit tag overrides. Inference only appends to these,
	// never removes.
	Materials  []string `json:"materials,omitempty"`
	Methods    []string `json:"methods,omitempty"`
	Assessment []string `json:"assessment,omitempty"`
	Curriculum []string `json:"curriculum,omitempty"`
	OtherAreas []string `json:"other_areas,omitempty"`

	Duration              string     `json:"duration,omitempty"`
	ContentStandards      string     `json:"content_standards,omitempty"`
	EmbeddedCredit        string     `json:"embedded_credit,omitempty"`
	LessonEvaluation      string     `json:"lesson_evaluation,omitempty"`
	TeacherNotes          string     `json:"teacher_notes,omitempty"`
	Procedures            string     `json:"procedures,omitempty"`
	IndividualDifferences string     `json:"individual_differences,omitempty"`
	Vocabulary            Vocabulary `json:"vocabulary,omitempty"`
	DayLabel              string     `json:"day_label,omitempty"`
}

// Week aggregates one week of lessons plus week-level narrative fields.
type Week struct {
	Week int    `json:"week" validate:"required,min=1"`
	Unit string `json:"unit" validate:"required"`

	Days []Lesson `json:"days" validate:"required,min=1,dive"`

	WeekOverview        string   `json:"week_overview,omitempty"`
	WeekFocus           string   `json:"week_focus,omitempty"`
	WeekObjectives      []string `json:"week_objectives,omitempty"`
	WeekMaterials       []string `json:"week_materials,omitempty"`
	FormativeAssessment string   `json:"formative_assessment,omitempty"`
	SummativeAssessment string   `json:"summative_assessment,omitempty"`
	WeeklyDeliverable   string   `json:"weekly_deliverable,omitempty"`
	VocabularySummary   string   `json:"vocabulary_summary,omitempty"`
	StandardsAlignment  string   `json:"standards_alignment,omitempty"`
	TeacherNotes        string   `json:"teacher_notes,omitempty"`

	StudentHandouts []Handout `json:"student_handouts,omitempty"`
}

// Handout describes a student handout to include with the week's documents.
type Handout struct {
	Title        string   `json:"title"`
	Instructions string   `json:"instructions,omitempty"`
	Items        []string `json:"items,omitempty"`
}

// Activity is one scheduled block within a lesson day.
// A schedule entry may be a JSON object or a bare string; bare strings
// are kept verbatim in Raw.
type Activity struct {
	Time        string
	Name        string
	Description string
	Raw         string
}

// activityJSON mirrors the object form of a schedule entry.
// The original plan schema allows "duration" as an alias for "time"
// and "activity" as an alias for "name".
type activityJSON struct {
	Time        string `json:"time,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Name        string `json:"name,omitempty"`
	Activity    string `json:"activity,omitempty"`
	Description string `json:"description,omitempty"`
}

// UnmarshalJSON accepts either an object or a bare string.
func (a *Activity) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Activity{Raw: s}
		return nil
	}

	var obj activityJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	a.Time = obj.Time
	if a.Time == "" {
		a.Time = obj.Duration
	}
	a.Name = obj.Name
	if a.Name == "" {
		a.Name = obj.Activity
	}
	a.Description = obj.Description
	a.Raw = ""
	return nil
}

// MarshalJSON writes the bare-string form when Raw is set, else the object form.
func (a Activity) MarshalJSON() ([]byte, error) {
	if a.Raw != "" {
		return json.Marshal(a.Raw)
	}
	return json.Marshal(activityJSON{
		Time:        a.Time,
		Name:        a.Name,
		Description: a.Description,
	})
}

// Differentiation holds per-level strategies. The plan schema allows either
// a plain string narrative or a level→strategy mapping; mapping key order
// is preserved so derived text is deterministic.
type Differentiation struct {
	// Text is set when differentiation was provided as a plain string
	Text string

	// Levels holds (level, strategy) pairs in input order
	Levels []DifferentiationLevel
}

// DifferentiationLevel is one (level, strategy) pair.
type DifferentiationLevel struct {
	Level    string
	Strategy string
}

// Empty reports whether no differentiation data is present.
func (d Differentiation) Empty() bool {
	return d.Text == "" && len(d.Levels) == 0
}

// Get returns the strategy for a level, or "" if absent.
func (d Differentiation) Get(level string) string {
	for _, l := range d.Levels {
		if l.Level == level {
			return l.Strategy
		}
	}
	return ""
}

// UnmarshalJSON accepts either a string or an object, preserving object
// key order via token-level decoding.
func (d *Differentiation) UnmarshalJSON(data []byte) error {
	*d = Differentiation{}

	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &d.Text)
	}
	if string(data) == "null" {
		return nil
	}

	pairs, err := decodeOrderedObject(data)
	if err != nil {
		return fmt.Errorf("differentiation: %w", err)
	}
	for _, p := range pairs {
		d.Levels = append(d.Levels, DifferentiationLevel{Level: p[0], Strategy: p[1]})
	}
	return nil
}

// MarshalJSON writes the string form when Text is set, else an object in
// level order.
func (d Differentiation) MarshalJSON() ([]byte, error) {
	if d.Text != "" {
		return json.Marshal(d.Text)
	}
	pairs := make([][2]string, len(d.Levels))
	for i, l := range d.Levels {
		pairs[i] = [2]string{l.Level, l.Strategy}
	}
	return encodeOrderedObject(pairs)
}

// Vocabulary holds (term, definition) pairs in input order.
type Vocabulary []Term

// Term is one vocabulary entry.
type Term struct {
	Term       string
	Definition string
}

// UnmarshalJSON decodes a term→definition object, preserving key order.
func (v *Vocabulary) UnmarshalJSON(data []byte) error {
	*v = nil
	if string(data) == "null" {
		return nil
	}

	pairs, err := decodeOrderedObject(data)
	if err != nil {
		return fmt.Errorf("vocabulary: %w", err)
	}
	for _, p := range pairs {
		*v = append(*v, Term{Term: p[0], Definition: p[1]})
	}
	return nil
}

// MarshalJSON writes the object form in term order.
func (v Vocabulary) MarshalJSON() ([]byte, error) {
	pairs := make([][2]string, len(v))
	for i, t := range v {
		pairs[i] = [2]string{t.Term, t.Definition}
	}
	return encodeOrderedObject(pairs)
}

// decodeOrderedObject reads a flat JSON object of string values as ordered
// (key, value) pairs. encoding/json maps lose key order, so this walks the
// token stream instead.
func decodeOrderedObject(data []byte) ([][2]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var pairs [][2]string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		val, ok := valTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string value for %q, got %v", key, valTok)
		}

		pairs = append(pairs, [2]string{key, val})
	}

	// Consume closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return pairs, nil
}

// encodeOrderedObject writes (key, value) pairs as a JSON object in order.
func encodeOrderedObject(pairs [][2]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p[0])
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p[1])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
