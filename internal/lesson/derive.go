package lesson

import (
	"fmt"
	"strings"
)

// objectivePrefixes are stripped from the front of an objective before it
// is folded into a synthesized overview sentence. Literal anchored strips,
// applied once each in order; an objective starting with neither is kept
// as-is.
var objectivePrefixes = []string{"students will ", "to "}

// handsOnNameKeywords mark a schedule activity as a hands-on highlight for
// overview synthesis.
var handsOnNameKeywords = []string{"hands-on", "activity", "practice"}

// BuildOverview returns the lesson overview, synthesizing one from the
// topic, objectives, and schedule when no explicit overview is provided.
func BuildOverview(l *Lesson) string {
	if l.Overview != "" {
		return l.Overview
	}

	topic := l.Topic
	if topic == "" {
		topic = "the lesson topic"
	}

	parts := []string{fmt.Sprintf("Students will learn about %s.", topic)}

	if len(l.Objectives) == 1 {
		obj := cleanObjective(l.Objectives[0]) + "."
		parts = append(parts, fmt.Sprintf("The primary objective is to %s.", obj))
	} else if len(l.Objectives) > 1 {
		parts = append(parts, fmt.Sprintf("Key objectives include: %s", cleanObjective(l.Objectives[0])))
		for _, obj := range l.Objectives[1:] {
			parts = append(parts, fmt.Sprintf("and %s", cleanObjective(obj)))
		}
	}

	if desc, ok := handsOnHighlight(l); ok {
		parts = append(parts, fmt.Sprintf("Students will engage in hands-on activities including: %s...", truncate(desc, 100)))
	}

	return strings.Join(parts, " ")
}

// cleanObjective lowercases an objective and strips the leading
// "students will " / "to " phrasing.
func cleanObjective(obj string) string {
	obj = strings.ToLower(obj)
	for _, prefix := range objectivePrefixes {
		obj = strings.TrimPrefix(obj, prefix)
	}
	return obj
}

// handsOnHighlight returns the description of the first schedule activity
// whose name marks it as hands-on work.
func handsOnHighlight(l *Lesson) (string, bool) {
	for _, a := range l.Schedule {
		if a.Raw != "" {
			continue
		}
		name := strings.ToLower(a.Name)
		for _, kw := range handsOnNameKeywords {
			if strings.Contains(name, kw) {
				return a.Description, true
			}
		}
	}
	return "", false
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// BuildProcedures returns the procedures narrative, building one line per
// schedule activity when no explicit text is provided. Format:
// "{time} - {name}: {description}", dropping the description when empty
// and the time when absent. Bare-string entries pass through verbatim.
func BuildProcedures(l *Lesson) string {
	if l.Procedures != "" {
		return l.Procedures
	}
	if len(l.Schedule) == 0 {
		return ""
	}

	var lines []string
	for _, a := range l.Schedule {
		if a.Raw != "" {
			lines = append(lines, a.Raw)
			continue
		}

		switch {
		case a.Time != "" && a.Name != "":
			if a.Description != "" {
				lines = append(lines, fmt.Sprintf("%s - %s: %s", a.Time, a.Name, a.Description))
			} else {
				lines = append(lines, fmt.Sprintf("%s - %s", a.Time, a.Name))
			}
		case a.Name != "":
			if a.Description != "" {
				lines = append(lines, fmt.Sprintf("%s: %s", a.Name, a.Description))
			} else {
				lines = append(lines, a.Name)
			}
		}
	}

	return strings.Join(lines, "\n")
}

// differentiationPriority is the fixed display order for the well-known
// learner levels; remaining levels follow in input order.
var differentiationPriority = []struct {
	Level string
	Label string
}{
	{"Advanced", "Advanced Learners"},
	{"Struggling", "Struggling Learners"},
	{"ELL", "ELL Students"},
}

// BuildDifferentiation returns the provision-for-individual-differences
// narrative. An explicit individual_differences field wins; a plain-string
// differentiation passes through verbatim; a level mapping is rendered one
// line per level.
func BuildDifferentiation(l *Lesson) string {
	if l.IndividualDifferences != "" {
		return l.IndividualDifferences
	}
	if l.Differentiation.Empty() {
		return ""
	}
	if l.Differentiation.Text != "" {
		return l.Differentiation.Text
	}

	var lines []string
	for _, p := range differentiationPriority {
		if strategy := l.Differentiation.Get(p.Level); strategy != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", p.Label, strategy))
		}
	}

	for _, level := range l.Differentiation.Levels {
		if isPriorityLevel(level.Level) {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", level.Level, level.Strategy))
	}

	return strings.Join(lines, "\n")
}

// isPriorityLevel reports whether a level is one of the well-known ones.
func isPriorityLevel(level string) bool {
	for _, p := range differentiationPriority {
		if p.Level == level {
			return true
		}
	}
	return false
}
