package render

// Theme is a unit color scheme used for document front matter and the web
// preview accents.
type Theme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// DefaultTheme is the navy scheme applied when a unit has no entry.
var DefaultTheme = Theme{Primary: "#1A3C6E", Secondary: "#D6E3F8", Accent: "#3498DB"}

// unitThemes maps course units to their color schemes.
var unitThemes = map[string]Theme{
	"Introduction & History of Film": {Primary: "#8B4513", Secondary: "#F5F5DC", Accent: "#D2691E"},
	"Pre-Production":                 {Primary: "#2E86AB", Secondary: "#E8F4F8", Accent: "#56B4E9"},
	"Camera Basics":                  {Primary: "#E65500", Secondary: "#FFF3E0", Accent: "#FF8C00"},
	"Premiere Pro Intro":             {Primary: "#9B59B6", Secondary: "#F5EEF8", Accent: "#E91E63"},
	"Advanced Techniques":            {Primary: "#1A1A2E", Secondary: "#E8E8E8", Accent: "#00D4FF"},
	"PSA Pre-Production":             {Primary: "#27AE60", Secondary: "#E8F8F0", Accent: "#2ECC71"},
	"PSA Production":                 {Primary: "#27AE60", Secondary: "#E8F8F0", Accent: "#2ECC71"},
	"PSA Post-Production":            {Primary: "#27AE60", Secondary: "#E8F8F0", Accent: "#2ECC71"},
	"News Segment":                   {Primary: "#C0392B", Secondary: "#FDEDEC", Accent: "#E74C3C"},
	"News/Documentary Intro":         {Primary: "#5D4E37", Secondary: "#F5F0E6", Accent: "#8B7D6B"},
	"Documentary Production":         {Primary: "#5D4E37", Secondary: "#F5F0E6", Accent: "#8B7D6B"},
	"Documentary Post":               {Primary: "#5D4E37", Secondary: "#F5F0E6", Accent: "#8B7D6B"},
	"Music Video Pre-Production":     {Primary: "#E91E63", Secondary: "#FCE4EC", Accent: "#9C27B0"},
	"Music Video Production":         {Primary: "#E91E63", Secondary: "#FCE4EC", Accent: "#9C27B0"},
	"Music Video Post":               {Primary: "#E91E63", Secondary: "#FCE4EC", Accent: "#9C27B0"},
	"Final Exam":                     {Primary: "#1A3C6E", Secondary: "#D6E3F8", Accent: "#3498DB"},
}

// UnitTheme returns the color scheme for a unit, falling back to navy.
func UnitTheme(unit string) Theme {
	if t, ok := unitThemes[unit]; ok {
		return t
	}
	return DefaultTheme
}
