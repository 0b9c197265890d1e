package ops

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chalk/internal/config"
	"chalk/internal/errors"
)

func generateConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	return cfg
}

func TestGenerate_WritesWeekDocuments(t *testing.T) {
	database := setupOpsDB(t)
	cfg := generateConfig(t)

	if _, err := Store(database, StoreInput{PlanJSON: validPlanJSON}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	output, err := Generate(context.Background(), database, cfg, GenerateInput{Week: 3})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	wantFolder := filepath.Join(cfg.OutputDir, "Week03")
	if output.Folder != wantFolder {
		t.Errorf("Folder = %q, want %q", output.Folder, wantFolder)
	}

	// Two days: plan + slides per day, plus the teacher handout
	if len(output.Files) != 5 {
		t.Fatalf("len(Files) = %d, want 5", len(output.Files))
	}
	for _, path := range output.Files {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing output file %s: %v", path, err)
		}
	}

	planDoc, err := os.ReadFile(filepath.Join(wantFolder, "Day1_Camera_Angles_Plan.md"))
	if err != nil {
		t.Fatalf("read lesson plan: %v", err)
	}
	if !strings.Contains(string(planDoc), "# Lesson Plan: Camera Angles") {
		t.Error("lesson plan missing title line")
	}
	if !strings.Contains(string(planDoc), "**Course Title:** Media Foundations") {
		t.Error("lesson plan missing course title")
	}

	handout, err := os.ReadFile(filepath.Join(wantFolder, "Week03_Camera_Basics_TeacherHandout.md"))
	if err != nil {
		t.Fatalf("read handout: %v", err)
	}
	if !strings.Contains(string(handout), "# Week 3: Camera Basics") {
		t.Error("handout missing week banner")
	}
}

func TestGenerate_DayResults(t *testing.T) {
	database := setupOpsDB(t)
	cfg := generateConfig(t)

	if _, err := Store(database, StoreInput{PlanJSON: validPlanJSON}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	output, err := Generate(context.Background(), database, cfg, GenerateInput{Week: 3})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(output.Days) != 2 {
		t.Fatalf("len(Days) = %d, want 2", len(output.Days))
	}

	day1 := output.Days[0]
	if day1.Topic != "Camera Angles" {
		t.Errorf("Days[0].Topic = %q, want %q", day1.Topic, "Camera Angles")
	}
	if day1.Inference == nil {
		t.Fatal("Days[0].Inference = nil")
	}
	// "with the camera" in the schedule drives the other_equipment tag
	found := false
	for _, tag := range day1.Inference.Materials {
		if tag == "other_equipment" {
			found = true
		}
	}
	if !found {
		t.Errorf("Materials = %v, want other_equipment inferred", day1.Inference.Materials)
	}

	// The curated library has a camera-angles entry
	if day1.VideoURL == "" {
		t.Error("Days[0].VideoURL empty, want curated video match")
	}
	// No API key configured, so no image lookup
	if day1.ImageURL != "" {
		t.Errorf("Days[0].ImageURL = %q, want empty without API key", day1.ImageURL)
	}
}

func TestGenerate_SlidesIncludeVideo(t *testing.T) {
	database := setupOpsDB(t)
	cfg := generateConfig(t)

	if _, err := Store(database, StoreInput{PlanJSON: validPlanJSON}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	if _, err := Generate(context.Background(), database, cfg, GenerateInput{Week: 3}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	slides, err := os.ReadFile(filepath.Join(cfg.OutputDir, "Week03", "Day1_Camera_Angles_Slides.md"))
	if err != nil {
		t.Fatalf("read slides: %v", err)
	}
	if !strings.Contains(string(slides), "https://www.youtube.com/embed/") {
		t.Error("slides missing video embed link")
	}
	if !strings.Contains(string(slides), "# Slides: Camera Angles") {
		t.Error("slides missing heading")
	}
	if !strings.Contains(string(slides), "## Slide 1: Title") {
		t.Error("slides missing title slide")
	}
}

func TestGenerate_NotFound(t *testing.T) {
	database := setupOpsDB(t)
	cfg := generateConfig(t)

	_, err := Generate(context.Background(), database, cfg, GenerateInput{Week: 9})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestGenerate_Cancelled(t *testing.T) {
	database := setupOpsDB(t)
	cfg := generateConfig(t)

	if _, err := Store(database, StoreInput{PlanJSON: validPlanJSON}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, database, cfg, GenerateInput{Week: 3})
	if !errors.Is(err, errors.ErrCancelled) {
		t.Errorf("error = %v, want CANCELLED", err)
	}
}
