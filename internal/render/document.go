// Package render assembles markdown documents from week plans and their
// inferred field values.
package render

import (
	"fmt"
	"strings"

	"chalk/internal/lesson"
)

// DayContext carries everything needed to render one day's documents.
type DayContext struct {
	WeekNum     int
	DayNum      int
	Unit        string
	CourseTitle string

	// Duration is the class period length, already defaulted from config
	Duration string

	Lesson    *lesson.Lesson
	Inference *lesson.Inference
}

// LessonDocument renders the per-day lesson-plan document: header fields,
// overview, checklists for every tag family, procedures, differentiation,
// and trailing narrative sections.
func LessonDocument(ctx DayContext) string {
	var b strings.Builder

	writeFrontMatter(&b, ctx.Unit, ctx.WeekNum, ctx.DayNum)

	fmt.Fprintf(&b, "# Lesson Plan: %s\n\n", ctx.Lesson.Topic)
	fmt.Fprintf(&b, "**Week:** %d | **Course Title:** %s\n\n", ctx.WeekNum, ctx.CourseTitle)
	duration := ctx.Lesson.Duration
	if duration == "" {
		duration = ctx.Duration
	}
	fmt.Fprintf(&b, "**Topic:** %s | **Estimated duration in minutes:** %s\n\n", ctx.Lesson.Topic, duration)

	if ctx.Lesson.ContentStandards != "" {
		b.WriteString("## Content Standards\n\n")
		b.WriteString(ctx.Lesson.ContentStandards)
		b.WriteString("\n\n")
	}

	b.WriteString("## Lesson Overview\n\n")
	b.WriteString(ctx.Inference.OverviewText)
	b.WriteString("\n\n")

	b.WriteString("## Materials and Equipment\n\n")
	writeChecklist(&b, lesson.MaterialLabels, ctx.Inference.Materials)

	if ctx.Inference.ProceduresText != "" {
		b.WriteString("## Procedures\n\n")
		b.WriteString(ctx.Inference.ProceduresText)
		b.WriteString("\n\n")
	}

	b.WriteString("## Instructional Methods\n\n")
	writeChecklist(&b, lesson.MethodLabels, ctx.Inference.Methods)

	b.WriteString("## Assessment of Learning\n\n")
	writeChecklist(&b, lesson.AssessmentLabels, ctx.Inference.Assessment)

	if ctx.Inference.DifferentiationText != "" {
		b.WriteString("### Provision for Individual Differences\n\n")
		b.WriteString(ctx.Inference.DifferentiationText)
		b.WriteString("\n\n")
	}

	b.WriteString("## Integrated Curriculum Areas\n\n")
	writeChecklist(&b, lesson.CurriculumLabels, ctx.Inference.Curriculum)

	if ctx.Lesson.EmbeddedCredit != "" {
		b.WriteString("### Embedded Credit\n\n")
		b.WriteString(ctx.Lesson.EmbeddedCredit)
		b.WriteString("\n\n")
	}

	b.WriteString("## Other Areas Addressed\n\n")
	writeChecklist(&b, lesson.OtherAreaLabels, ctx.Inference.OtherAreas)

	if ctx.Lesson.LessonEvaluation != "" {
		b.WriteString("### Lesson Evaluation\n\n")
		b.WriteString(ctx.Lesson.LessonEvaluation)
		b.WriteString("\n\n")
	}

	if len(ctx.Lesson.Vocabulary) > 0 {
		b.WriteString("## Vocabulary\n\n")
		for _, term := range ctx.Lesson.Vocabulary {
			fmt.Fprintf(&b, "- **%s**: %s\n", term.Term, term.Definition)
		}
		b.WriteString("\n")
	}

	if ctx.Lesson.TeacherNotes != "" {
		b.WriteString("## Teacher Notes\n\n")
		b.WriteString(ctx.Lesson.TeacherNotes)
		b.WriteString("\n\n")
	}

	return b.String()
}

// writeFrontMatter emits the YAML header carrying week addressing and the
// unit theme for downstream styling.
func writeFrontMatter(b *strings.Builder, unit string, weekNum, dayNum int) {
	theme := UnitTheme(unit)
	b.WriteString("---\n")
	fmt.Fprintf(b, "unit: %q\n", unit)
	fmt.Fprintf(b, "week: %d\n", weekNum)
	if dayNum > 0 {
		fmt.Fprintf(b, "day: %d\n", dayNum)
	}
	fmt.Fprintf(b, "theme_primary: %q\n", theme.Primary)
	fmt.Fprintf(b, "theme_secondary: %q\n", theme.Secondary)
	fmt.Fprintf(b, "theme_accent: %q\n", theme.Accent)
	b.WriteString("---\n\n")
}

// writeChecklist emits every label in template order, checking the
// selected keys.
func writeChecklist(b *strings.Builder, labels []lesson.Label, selected []string) {
	set := make(map[string]bool, len(selected))
	for _, key := range selected {
		set[key] = true
	}
	for _, l := range labels {
		mark := " "
		if set[l.Key] {
			mark = "x"
		}
		fmt.Fprintf(b, "- [%s] %s\n", mark, l.Text)
	}
	b.WriteString("\n")
}
