package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WeekFolder returns the output folder for a week, creating it if needed.
// Week numbers are zero-padded so folders sort correctly.
func WeekFolder(outputDir string, weekNum int) (string, error) {
	folder := filepath.Join(outputDir, fmt.Sprintf("Week%02d", weekNum))
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", fmt.Errorf("failed to create week folder: %w", err)
	}
	return folder, nil
}

// TopicSlug converts a lesson topic into a filename fragment:
// spaces become underscores, slashes become dashes, capped at 25 chars.
func TopicSlug(topic string) string {
	if topic == "" {
		return "Lesson"
	}
	slug := strings.ReplaceAll(topic, " ", "_")
	slug = strings.ReplaceAll(slug, "/", "-")
	if len(slug) > 25 {
		slug = slug[:25]
	}
	return slug
}

// UnitSlug converts a unit name into a filename fragment, capped at 20 chars.
func UnitSlug(unit string) string {
	if unit == "" {
		return "Lessons"
	}
	slug := strings.ReplaceAll(unit, " ", "_")
	slug = strings.ReplaceAll(slug, "/", "-")
	if len(slug) > 20 {
		slug = slug[:20]
	}
	return slug
}

// LessonFilename names a per-day lesson-plan document.
func LessonFilename(dayNum int, topic string) string {
	return fmt.Sprintf("Day%d_%s_Plan.md", dayNum, TopicSlug(topic))
}

// SlidesFilename names a per-day slide outline.
func SlidesFilename(dayNum int, topic string) string {
	return fmt.Sprintf("Day%d_%s_Slides.md", dayNum, TopicSlug(topic))
}

// HandoutFilename names the weekly teacher handout.
func HandoutFilename(weekNum int, unit string) string {
	return fmt.Sprintf("Week%02d_%s_TeacherHandout.md", weekNum, UnitSlug(unit))
}
