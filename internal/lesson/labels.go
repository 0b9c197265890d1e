package lesson

// Label pairs a category key with its human-readable checkbox label as it
// appears on the lesson-plan template. Label lists are wider than the
// inference tables: they include categories that are only ever set
// explicitly (textbook, lab_manual, government_economics, ...).
type Label struct {
	Key  string
	Text string
}

// MaterialLabels is the full materials checkbox enumeration, in template order.
var MaterialLabels = []Label{
	{"textbook", "Textbook"},
	{"lab_manual", "Lab Manual"},
	{"video_dvd", "Video/DVD"},
	{"labs", "Labs"},
	{"posters", "Posters"},
	{"speaker", "Speaker"},
	{"projector", "Projector"},
	{"computer", "Computer"},
	{"supplemental_materials", "Supplemental Materials"},
	{"student_journals", "Student Journals"},
	{"other_equipment", "Other Equipment"},
}

// MethodLabels is the instructional methods checkbox enumeration.
var MethodLabels = []Label{
	{"discussion", "Discussion"},
	{"demonstration", "Demonstration"},
	{"lecture", "Lecture"},
	{"powerpoint", "Power Point"},
	{"multimedia", "Multi-Media"},
	{"guest_speaker", "Guest Speaker"},
}

// AssessmentLabels is the assessment strategies checkbox enumeration.
var AssessmentLabels = []Label{
	{"homework", "Homework"},
	{"classwork", "Classwork"},
	{"test", "Test"},
	{"project_based", "Project-based"},
	{"teamwork", "Teamwork"},
	{"observation", "Teacher Observation"},
	{"performance", "Performance"},
	{"on_task", "On-Task"},
	{"other", "Other"},
}

// CurriculumLabels is the integrated curriculum areas checkbox enumeration.
var CurriculumLabels = []Label{
	{"math", "Math"},
	{"science", "Science"},
	{"reading", "Reading"},
	{"social_studies", "Social Studies"},
	{"english", "English"},
	{"government_economics", "Government/Economics"},
	{"fine_arts", "Fine Arts"},
	{"foreign_language", "Foreign Language"},
	{"technology", "Technology"},
}

// OtherAreaLabels is the other-areas-addressed checkbox enumeration.
var OtherAreaLabels = []Label{
	{"safety", "Safety"},
	{"management_skills", "Management Skills"},
	{"teamwork", "Teamwork"},
	{"live_work", "Live work"},
	{"higher_order_reasoning", "Higher Order Reasoning"},
	{"varied_learning", "Varied Learning"},
	{"work_ethics", "Work Ethics"},
	{"integrated_academics", "Integrated Academics"},
	{"ctso", "CTSO"},
	{"problem_solving", "Problem Solving"},
}
