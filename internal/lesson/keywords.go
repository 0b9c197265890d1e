package lesson

// keywordRule pairs a category key with the substrings that trigger it.
// Rules are evaluated in declaration order; the first matching keyword is
// enough (existence check only, no ranking).
type keywordRule struct {
	Key      string
	Keywords []string
}

// materialKeywords maps material categories to trigger substrings.
// Matched against text that includes day_materials.
var materialKeywords = []keywordRule{
	{"projector", []string{"presentation", "present", "show", "display", "screen", "projector", "slides", "powerpoint"}},
	{"computer", []string{"computer", "premiere", "photoshop", "editing", "software", "digital", "laptop", "workstation"}},
	{"video_dvd", []string{"video", "watch", "film", "movie", "clip", "example", "youtube", "dvd"}},
	{"labs", []string{"lab", "studio", "hands-on", "practice", "filming", "shoot", "record"}},
	{"speaker", []string{"audio", "sound", "music", "listen", "speaker", "playback"}},
	{"supplemental_materials", []string{"handout", "worksheet", "guide", "reference", "template", "storyboard", "script"}},
	{"other_equipment", []string{"camera", "tripod", "lighting", "light", "microphone", "mic", "equipment", "gear", "sd card", "memory card"}},
	{"student_journals", []string{"journal", "notebook", "notes", "reflection", "write", "record thoughts"}},
	{"posters", []string{"poster", "chart", "diagram", "visual aid", "infographic"}},
}

// curriculumKeywords maps integrated curriculum areas to trigger substrings.
// Matched against topic, overview, and objectives only.
var curriculumKeywords = []keywordRule{
	{"technology", []string{"camera", "editing", "software", "premiere", "photoshop", "computer", "digital", "video", "audio", "equipment"}},
	{"english", []string{"script", "writing", "story", "narrative", "reading", "research", "interview", "article", "news"}},
	{"fine_arts", []string{"composition", "visual", "design", "aesthetic", "creative", "artistic", "color", "lighting", "framing"}},
	{"math", []string{"exposure", "ratio", "frame rate", "aperture", "shutter speed", "iso", "calculation", "percentage"}},
	{"science", []string{"light", "sound wave", "physics", "optics", "frequency", "wavelength"}},
	{"social_studies", []string{"history", "documentary", "social", "community", "culture", "news", "current events", "psa", "public service"}},
}

// readingKeywords trigger the derived "reading" curriculum area.
var readingKeywords = []string{"reading", "research", "article"}

// methodKeywords maps instructional methods to trigger substrings.
// Lecture is handled by a compound rule, not this table.
var methodKeywords = []keywordRule{
	{"discussion", []string{"discussion", "discuss", "debate", "share", "q&a", "conversation", "talk about"}},
	{"demonstration", []string{"demonstrat", "show how", "model", "walk through", "example", "tutorial"}},
	{"powerpoint", []string{"powerpoint", "presentation", "slides", "slide deck", "pptx"}},
	{"multimedia", []string{"video", "multimedia", "multi-media", "youtube", "film", "audio", "digital"}},
	{"guest_speaker", []string{"guest speaker", "guest", "industry professional", "visitor", "expert"}},
}

// lectureActivityNames are schedule activity names that imply lecture,
// compared exactly after lowercasing.
var lectureActivityNames = []string{"direct instruction", "lecture", "mini-lecture", "instruction"}

// lectureKeywords trigger lecture from the aggregated text.
var lectureKeywords = []string{"lecture", "direct instruction", "teach", "explain", "present content", "introduce"}

// assessmentKeywords maps assessment strategies to trigger substrings.
var assessmentKeywords = []keywordRule{
	{"classwork", []string{"classwork", "class work", "activity", "practice", "exercise", "in-class", "work on"}},
	{"observation", []string{"observ", "monitor", "circulate", "watch", "check in", "walk around"}},
	{"project_based", []string{"project", "final", "deliverable", "portfolio", "create", "produce", "video project"}},
	{"teamwork", []string{"team", "group", "partner", "collaborat", "crew", "together", "peer"}},
	{"performance", []string{"perform", "present", "demonstrat", "show", "pitch", "share out"}},
	{"on_task", []string{"participat", "engag", "on-task", "focused", "active"}},
	{"test", []string{"test", "quiz", "exam", "assessment"}},
	{"homework", []string{"homework", "home work", "take home", "assignment", "due next"}},
}

// exitTicketKeywords trigger the derived classwork assessment rule.
var exitTicketKeywords = []string{"exit ticket", "exit slip", "reflection"}

// otherAreaKeywords maps cross-cutting skill areas to trigger substrings.
// varied_learning and integrated_academics are handled by derived rules.
var otherAreaKeywords = []keywordRule{
	{"safety", []string{"safety", "equipment", "handling", "protective", "hazard", "proper use", "safely", "precaution"}},
	{"management_skills", []string{"time management", "organize", "planning", "schedule", "project management", "workflow", "deadline"}},
	{"teamwork", []string{"team", "group", "collaborat", "partner", "cooperative", "crew", "together"}},
	{"live_work", []string{"client", "real-world", "live production", "actual client", "community partner"}},
	{"higher_order_reasoning", []string{"analyze", "evaluat", "create", "critiqu", "compare", "synthesize", "design", "develop", "assess"}},
	{"work_ethics", []string{"professional", "responsibility", "deadline", "punctual", "quality", "ethic", "industry standard"}},
	{"ctso", []string{"skillsusa", "ctso", "competition", "career development", "leadership"}},
	{"problem_solving", []string{"problem", "solve", "troubleshoot", "debug", "fix", "challenge", "solution", "figure out"}},
}

// sensoryKeywords trigger the derived varied_learning rule.
var sensoryKeywords = []string{"visual", "hands-on", "demonstration", "practice", "kinesthetic", "auditory"}
