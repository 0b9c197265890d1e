package lesson

import (
	"slices"
	"strings"
)

// Inference holds the five inferred tag families plus the derived text
// blocks used to populate a lesson-plan document. Tag slices are copies;
// the input lesson is never mutated.
type Inference struct {
	Materials  []string `json:"materials"`
	Methods    []string `json:"methods"`
	Assessment []string `json:"assessment"`
	Curriculum []string `json:"curriculum"`
	OtherAreas []string `json:"other_areas"`

	OverviewText        string `json:"overview_text"`
	ProceduresText      string `json:"procedures_text"`
	DifferentiationText string `json:"differentiation_text"`
}

// Infer runs all tag inference and text derivation for a lesson.
// Curriculum is computed before other-areas: the integrated_academics rule
// reads the curriculum result.
func Infer(l *Lesson) *Inference {
	curriculum := InferCurriculum(l)

	return &Inference{
		Materials:  InferMaterials(l),
		Methods:    InferMethods(l),
		Assessment: InferAssessment(l),
		Curriculum: curriculum,
		OtherAreas: InferOtherAreas(l, curriculum),

		OverviewText:        BuildOverview(l),
		ProceduresText:      BuildProcedures(l),
		DifferentiationText: BuildDifferentiation(l),
	}
}

// appendMissing appends key to tags unless it is already present.
// The shared idiom behind every inference rule: user-supplied tags stay at
// the front, inferred tags follow in table order, each key appears once.
func appendMissing(tags []string, key string) []string {
	if slices.Contains(tags, key) {
		return tags
	}
	return append(tags, key)
}

// containsAny reports whether any keyword occurs as a substring of text.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// scanKeywordTable appends every rule key whose keywords match the text.
func scanKeywordTable(tags []string, text string, table []keywordRule) []string {
	for _, rule := range table {
		if containsAny(text, rule.Keywords) {
			tags = appendMissing(tags, rule.Key)
		}
	}
	return tags
}

// InferMaterials infers materials and equipment from lesson content,
// including the free-text day_materials list.
func InferMaterials(l *Lesson) []string {
	tags := slices.Clone(l.Materials)
	text := l.searchText(textScope{IncludeDayMaterials: true, IncludeSchedule: true})
	return scanKeywordTable(tags, text, materialKeywords)
}

// InferCurriculum infers integrated curriculum areas from the topic,
// overview, and objectives. The derived reading rule runs after the
// table pass.
func InferCurriculum(l *Lesson) []string {
	tags := slices.Clone(l.Curriculum)
	text := l.searchText(textScope{})
	tags = scanKeywordTable(tags, text, curriculumKeywords)

	// Reading rides on the english keyword family but is checked
	// independently, so an explicit english tag does not suppress it.
	if containsAny(text, readingKeywords) {
		tags = appendMissing(tags, "reading")
	}

	return tags
}

// InferMethods infers instructional methods. Lecture is a compound rule:
// an exact schedule activity name OR a keyword match, across two different
// text surfaces.
func InferMethods(l *Lesson) []string {
	tags := slices.Clone(l.Methods)
	text := l.searchText(textScope{IncludeSchedule: true})
	tags = scanKeywordTable(tags, text, methodKeywords)

	if lectureFromActivityNames(l) || containsAny(text, lectureKeywords) {
		tags = appendMissing(tags, "lecture")
	}

	return tags
}

// lectureFromActivityNames reports whether any schedule activity name
// exactly matches a lecture-style activity (case-normalized).
func lectureFromActivityNames(l *Lesson) bool {
	for _, name := range l.activityNames() {
		if slices.Contains(lectureActivityNames, name) {
			return true
		}
	}
	return false
}

// InferAssessment infers assessment strategies. The exit-ticket rule runs
// after the table pass and only fills classwork in when absent.
func InferAssessment(l *Lesson) []string {
	tags := slices.Clone(l.Assessment)
	text := l.searchText(textScope{IncludeSchedule: true})
	tags = scanKeywordTable(tags, text, assessmentKeywords)

	if containsAny(text, exitTicketKeywords) {
		tags = appendMissing(tags, "classwork")
	}

	return tags
}

// InferOtherAreas infers cross-cutting skill areas. Takes the computed
// curriculum set: integrated_academics is appended whenever it is non-empty.
func InferOtherAreas(l *Lesson, curriculum []string) []string {
	tags := slices.Clone(l.OtherAreas)
	text := l.searchText(textScope{IncludeSchedule: true})
	tags = scanKeywordTable(tags, text, otherAreaKeywords)

	if containsAny(text, sensoryKeywords) || !l.Differentiation.Empty() {
		tags = appendMissing(tags, "varied_learning")
	}

	if len(curriculum) > 0 {
		tags = appendMissing(tags, "integrated_academics")
	}

	return tags
}
