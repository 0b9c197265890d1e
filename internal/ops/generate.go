package ops

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"chalk/internal/config"
	"chalk/internal/errors"
	"chalk/internal/lesson"
	"chalk/internal/media"
	"chalk/internal/render"
)

// GenerateInput contains parameters for the Generate operation.
type GenerateInput struct {
	ID   string
	Week int
}

// GeneratedDay describes one day's generation result.
type GeneratedDay struct {
	Day       int               `json:"day"`
	Topic     string            `json:"topic"`
	Inference *lesson.Inference `json:"inference"`
	ImageURL  string            `json:"image_url,omitempty"`
	VideoURL  string            `json:"video_url,omitempty"`
}

// GenerateOutput contains the result of the Generate operation.
type GenerateOutput struct {
	Folder string         `json:"folder"`
	Files  []string       `json:"files"`
	Days   []GeneratedDay `json:"days"`
}

// Generate produces the week's documents: one lesson plan and one slide
// outline per day, plus the teacher handout. Documents are written into
// the week folder under the configured output directory.
func Generate(ctx context.Context, database *sql.DB, cfg *config.Config, input GenerateInput) (*GenerateOutput, error) {
	p, err := resolvePlan(database, input.ID, input.Week, false)
	if err != nil {
		return nil, err
	}
	week := p.Week

	folder, err := render.WeekFolder(cfg.OutputDir, p.WeekNum)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create week folder: %w", err))
	}

	output := &GenerateOutput{
		Folder: folder,
		Days:   make([]GeneratedDay, 0, len(week.Days)),
	}
	pexels := media.NewPexelsClient(cfg.PexelsAPIKey)
	inferences := make([]*lesson.Inference, len(week.Days))

	for i := range week.Days {
		select {
		case <-ctx.Done():
			return nil, errors.NewCancelled("generate")
		default:
		}

		genDay, files, err := generateDay(ctx, cfg, pexels, folder, p.WeekNum, i+1, week.Unit, &week.Days[i])
		if err != nil {
			return nil, err
		}
		inferences[i] = genDay.Inference
		output.Files = append(output.Files, files...)
		output.Days = append(output.Days, genDay)
	}

	handoutCtx := render.HandoutContext{
		Week:        week,
		CourseTitle: cfg.CourseTitle,
		Inferences:  inferences,
	}
	handoutPath := filepath.Join(folder, render.HandoutFilename(p.WeekNum, week.Unit))
	if err := writeDocument(handoutPath, render.TeacherHandout(handoutCtx)); err != nil {
		return nil, err
	}
	output.Files = append(output.Files, handoutPath)

	return output, nil
}

// generateDay writes the lesson plan and slide outline for a single day
// and returns the paths written.
func generateDay(ctx context.Context, cfg *config.Config, pexels *media.PexelsClient, folder string, weekNum, dayNum int, unit string, day *lesson.Lesson) (GeneratedDay, []string, error) {
	inf := lesson.Infer(day)
	dayCtx := render.DayContext{
		WeekNum:     weekNum,
		DayNum:      dayNum,
		Unit:        unit,
		CourseTitle: cfg.CourseTitle,
		Duration:    cfg.DefaultDuration,
		Lesson:      day,
		Inference:   inf,
	}

	planPath := filepath.Join(folder, render.LessonFilename(dayNum, day.Topic))
	if err := writeDocument(planPath, render.LessonDocument(dayCtx)); err != nil {
		return GeneratedDay{}, nil, err
	}

	// Media lookups degrade to empty results, never fail generation
	imageURL := ""
	if pexels.Enabled() {
		imageURL, _ = pexels.TopicImage(ctx, day.Topic)
	}
	video := media.FindVideo(day.Topic)

	slidesPath := filepath.Join(folder, render.SlidesFilename(dayNum, day.Topic))
	err := writeDocument(slidesPath, render.SlideOutline(render.SlideContext{
		DayContext: dayCtx,
		ImageURL:   imageURL,
		Video:      video,
	}))
	if err != nil {
		return GeneratedDay{}, nil, err
	}

	genDay := GeneratedDay{
		Day:       dayNum,
		Topic:     day.Topic,
		Inference: inf,
		ImageURL:  imageURL,
	}
	if video != nil {
		genDay.VideoURL = video.URL
	}
	return genDay, []string{planPath, slidesPath}, nil
}

// writeDocument writes a generated markdown document.
func writeDocument(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to write %s: %w", filepath.Base(path), err))
	}
	return nil
}
