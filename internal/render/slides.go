package render

import (
	"fmt"
	"strings"

	"chalk/internal/media"
)

// SlideContext extends DayContext with media lookups for the day.
type SlideContext struct {
	DayContext

	// ImageURL is a stock image for the topic; empty when lookup was
	// disabled or found nothing
	ImageURL string

	// Video is a reference video for the topic, nil when none matched
	Video *media.Video
}

// SlideOutline renders a per-day slide outline: title, bell ringer,
// objectives, agenda, topic media, and vocabulary. One "## Slide N"
// section per slide, ready to build a deck from.
func SlideOutline(ctx SlideContext) string {
	var b strings.Builder
	n := 0

	writeFrontMatter(&b, ctx.Unit, ctx.WeekNum, ctx.DayNum)
	fmt.Fprintf(&b, "# Slides: %s\n\n", ctx.Lesson.Topic)

	n++
	fmt.Fprintf(&b, "## Slide %d: Title\n\n", n)
	fmt.Fprintf(&b, "- %s\n", ctx.Lesson.Topic)
	fmt.Fprintf(&b, "- Week %d | %s\n\n", ctx.WeekNum, ctx.CourseTitle)

	if bell := bellRinger(ctx); bell != "" {
		n++
		fmt.Fprintf(&b, "## Slide %d: Bell Ringer\n\n", n)
		fmt.Fprintf(&b, "%s\n\n", bell)
	}

	if len(ctx.Lesson.Objectives) > 0 {
		n++
		fmt.Fprintf(&b, "## Slide %d: Objectives\n\n", n)
		for _, obj := range ctx.Lesson.Objectives {
			fmt.Fprintf(&b, "- %s\n", obj)
		}
		b.WriteString("\n")
	}

	if len(ctx.Lesson.Schedule) > 0 {
		n++
		fmt.Fprintf(&b, "## Slide %d: Today's Agenda\n\n", n)
		for _, a := range ctx.Lesson.Schedule {
			switch {
			case a.Raw != "":
				fmt.Fprintf(&b, "- %s\n", a.Raw)
			case a.Time != "":
				fmt.Fprintf(&b, "- %s - %s\n", a.Time, a.Name)
			default:
				fmt.Fprintf(&b, "- %s\n", a.Name)
			}
		}
		b.WriteString("\n")
	}

	if ctx.ImageURL != "" {
		n++
		fmt.Fprintf(&b, "## Slide %d: Topic Image\n\n", n)
		fmt.Fprintf(&b, "![%s](%s)\n\n", ctx.Lesson.Topic, ctx.ImageURL)
	}

	if ctx.Video != nil {
		n++
		fmt.Fprintf(&b, "## Slide %d: Watch\n\n", n)
		fmt.Fprintf(&b, "[%s](%s)\n", ctx.Video.Title, ctx.Video.URL)
		if id := media.VideoID(ctx.Video.URL); id != "" {
			fmt.Fprintf(&b, "\nEmbed: https://www.youtube.com/embed/%s\n", id)
		}
		b.WriteString("\n")
	}

	if len(ctx.Lesson.Vocabulary) > 0 {
		n++
		fmt.Fprintf(&b, "## Slide %d: Vocabulary\n\n", n)
		for _, t := range ctx.Lesson.Vocabulary {
			fmt.Fprintf(&b, "- **%s**: %s\n", t.Term, t.Definition)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// bellRinger returns the description of the first schedule activity named
// like a bell ringer or warm-up.
func bellRinger(ctx SlideContext) string {
	for _, a := range ctx.Lesson.Schedule {
		if a.Raw != "" {
			continue
		}
		name := strings.ToLower(a.Name)
		if strings.Contains(name, "bell ringer") || strings.Contains(name, "warm-up") || strings.Contains(name, "warm up") {
			if a.Description != "" {
				return a.Description
			}
			return a.Name
		}
	}
	return ""
}
