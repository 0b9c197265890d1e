package lesson

import "strings"

// textScope selects which plan surfaces feed the aggregated search text.
// Each tag family scans a slightly different surface set: materials also
// reads day_materials, curriculum areas read only the narrative fields.
type textScope struct {
	IncludeDayMaterials bool
	IncludeSchedule     bool
}

// searchText concatenates the lesson's searchable surfaces into one
// lowercase string with single-space separators. Deterministic and
// order-preserving; the sole input to keyword matching.
func (l *Lesson) searchText(scope textScope) string {
	parts := []string{l.Topic, l.Overview, strings.Join(l.Objectives, " ")}

	if scope.IncludeDayMaterials {
		parts = append(parts, strings.Join(l.DayMaterials, " "))
	}

	if scope.IncludeSchedule {
		// Bare-string entries carry no name or description and stay out of
		// the scan text entirely.
		for _, a := range l.Schedule {
			if a.Raw == "" {
				parts = append(parts, a.Name, a.Description)
			}
		}
	}

	return strings.ToLower(strings.Join(parts, " "))
}

// activityNames returns the lowercased names of the lesson's schedule
// activities, in order. Bare-string entries have no name and are skipped.
func (l *Lesson) activityNames() []string {
	names := make([]string, 0, len(l.Schedule))
	for _, a := range l.Schedule {
		if a.Raw != "" {
			continue
		}
		names = append(names, strings.ToLower(a.Name))
	}
	return names
}
