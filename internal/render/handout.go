package render

import (
	"fmt"
	"strings"

	"chalk/internal/lesson"
)

// HandoutContext carries a full week plan plus per-day inference results
// (indexed to match Week.Days).
type HandoutContext struct {
	Week        *lesson.Week
	CourseTitle string
	Inferences  []*lesson.Inference
}

// TeacherHandout renders the week-level teacher handout: banner, focus and
// overview, numbered objectives, week materials, assessment overview, one
// section per day with its schedule table, vocabulary summary, and
// standards alignment.
func TeacherHandout(ctx HandoutContext) string {
	w := ctx.Week
	var b strings.Builder

	writeFrontMatter(&b, w.Unit, w.Week, 0)

	fmt.Fprintf(&b, "# Week %d: %s\n\n", w.Week, w.Unit)
	fmt.Fprintf(&b, "*%s | Teacher Handout*\n\n", ctx.CourseTitle)

	if w.WeekFocus != "" {
		fmt.Fprintf(&b, "> **Focus:** %s\n\n", w.WeekFocus)
	}

	if w.WeekOverview != "" {
		b.WriteString("## Week Overview\n\n")
		b.WriteString(w.WeekOverview)
		b.WriteString("\n\n")
	}

	if len(w.WeekObjectives) > 0 {
		b.WriteString("## Weekly Learning Objectives\n\n")
		for i, obj := range w.WeekObjectives {
			fmt.Fprintf(&b, "%d. %s\n", i+1, obj)
		}
		b.WriteString("\n")
	}

	writeWeekMaterials(&b, ctx)
	writeAssessmentOverview(&b, w)

	for i := range w.Days {
		writeDaySection(&b, i, &w.Days[i], dayInference(ctx, i))
	}

	if w.VocabularySummary != "" {
		b.WriteString("## Week Vocabulary Summary\n\n")
		b.WriteString(w.VocabularySummary)
		b.WriteString("\n\n")
	}

	if w.StandardsAlignment != "" {
		b.WriteString("## Standards Alignment\n\n")
		b.WriteString(w.StandardsAlignment)
		b.WriteString("\n\n")
	}

	if w.TeacherNotes != "" {
		b.WriteString("## Teacher Notes\n\n")
		b.WriteString(w.TeacherNotes)
		b.WriteString("\n\n")
	}

	for _, h := range w.StudentHandouts {
		writeStudentHandout(&b, &h)
	}

	return b.String()
}

// dayInference returns the inference for day i, or nil when absent.
func dayInference(ctx HandoutContext, i int) *lesson.Inference {
	if i < len(ctx.Inferences) {
		return ctx.Inferences[i]
	}
	return nil
}

// writeWeekMaterials lists explicit week materials first, then every
// material tag inferred across the days.
func writeWeekMaterials(b *strings.Builder, ctx HandoutContext) {
	seen := make(map[string]bool)
	var items []string
	for _, m := range ctx.Week.WeekMaterials {
		if !seen[m] {
			seen[m] = true
			items = append(items, m)
		}
	}
	for _, inf := range ctx.Inferences {
		if inf == nil {
			continue
		}
		for _, key := range inf.Materials {
			label := materialLabel(key)
			if !seen[label] {
				seen[label] = true
				items = append(items, label)
			}
		}
	}
	if len(items) == 0 {
		return
	}

	b.WriteString("## Materials Needed for the Week\n\n")
	for _, item := range items {
		fmt.Fprintf(b, "- [ ] %s\n", item)
	}
	b.WriteString("\n")
}

// materialLabel maps a material key to its display label, falling back to
// the key itself for unknown values.
func materialLabel(key string) string {
	for _, l := range lesson.MaterialLabels {
		if l.Key == key {
			return l.Text
		}
	}
	return key
}

func writeAssessmentOverview(b *strings.Builder, w *lesson.Week) {
	if w.FormativeAssessment == "" && w.SummativeAssessment == "" && w.WeeklyDeliverable == "" {
		return
	}

	b.WriteString("## Assessment Overview\n\n")
	if w.FormativeAssessment != "" {
		fmt.Fprintf(b, "- **Formative:** %s\n", w.FormativeAssessment)
	}
	if w.SummativeAssessment != "" {
		fmt.Fprintf(b, "- **Summative:** %s\n", w.SummativeAssessment)
	}
	if w.WeeklyDeliverable != "" {
		fmt.Fprintf(b, "- **Weekly Deliverable:** %s\n", w.WeeklyDeliverable)
	}
	b.WriteString("\n")
}

func writeDaySection(b *strings.Builder, i int, day *lesson.Lesson, inf *lesson.Inference) {
	label := day.DayLabel
	if label == "" {
		label = fmt.Sprintf("Day %d", i+1)
	}
	fmt.Fprintf(b, "## %s: %s\n\n", label, day.Topic)

	if inf != nil && inf.OverviewText != "" {
		b.WriteString(inf.OverviewText)
		b.WriteString("\n\n")
	}

	if len(day.Schedule) > 0 {
		b.WriteString("| Time | Activity | Description |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, a := range day.Schedule {
			if a.Raw != "" {
				fmt.Fprintf(b, "| | %s | |\n", a.Raw)
				continue
			}
			fmt.Fprintf(b, "| %s | %s | %s |\n", a.Time, a.Name, a.Description)
		}
		b.WriteString("\n")
	}

	if inf != nil && inf.DifferentiationText != "" {
		b.WriteString("**Differentiation:**\n\n")
		b.WriteString(inf.DifferentiationText)
		b.WriteString("\n\n")
	}

	if len(day.Vocabulary) > 0 {
		b.WriteString("**Vocabulary:** ")
		terms := make([]string, len(day.Vocabulary))
		for j, t := range day.Vocabulary {
			terms[j] = t.Term
		}
		b.WriteString(strings.Join(terms, ", "))
		b.WriteString("\n\n")
	}
}

func writeStudentHandout(b *strings.Builder, h *lesson.Handout) {
	fmt.Fprintf(b, "## Student Handout: %s\n\n", h.Title)
	if h.Instructions != "" {
		b.WriteString(h.Instructions)
		b.WriteString("\n\n")
	}
	for _, item := range h.Items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	if len(h.Items) > 0 {
		b.WriteString("\n")
	}
}
