package ops

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"chalk/internal/errors"
)

func TestImport_RoundTrip(t *testing.T) {
	source := setupOpsDB(t)
	exportDir := t.TempDir()
	cfg := exportConfig(exportDir)

	if _, err := Store(source, StoreInput{PlanJSON: validPlanJSON}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if _, err := Store(source, StoreInput{PlanJSON: weekPlanJSON(1)}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	path := filepath.Join(exportDir, "plans.jsonl")
	if _, err := Export(context.Background(), source, cfg, ExportInput{Path: path}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	target := setupOpsDB(t)
	output, err := Import(target, cfg, ImportInput{Path: path})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if output.Imported != 2 {
		t.Errorf("Imported = %d, want 2", output.Imported)
	}
	if output.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", output.Skipped)
	}
	if len(output.Errors) != 0 {
		t.Errorf("Errors = %v, want none", output.Errors)
	}

	fetched, err := Fetch(target, FetchInput{Week: 3})
	if err != nil {
		t.Fatalf("Fetch after import failed: %v", err)
	}
	if fetched.Plan.Days[0].Topic != "Camera Angles" {
		t.Errorf("Days[0].Topic = %q, want %q", fetched.Plan.Days[0].Topic, "Camera Angles")
	}
}

func TestImport_MissingPath(t *testing.T) {
	database := setupOpsDB(t)

	_, err := Import(database, exportConfig(t.TempDir()), ImportInput{})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}

func TestImport_FileNotFound(t *testing.T) {
	database := setupOpsDB(t)
	exportDir := t.TempDir()

	path := filepath.Join(exportDir, "missing.jsonl")
	_, err := Import(database, exportConfig(exportDir), ImportInput{Path: path})
	if !errors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestImport_ModeError_IDCollision(t *testing.T) {
	database := setupOpsDB(t)
	exportDir := t.TempDir()
	cfg := exportConfig(exportDir)

	if _, err := Store(database, StoreInput{PlanJSON: validPlanJSON}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	path := filepath.Join(exportDir, "plans.jsonl")
	if _, err := Export(context.Background(), database, cfg, ExportInput{Path: path}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	// Importing into the same database collides on every ID
	output, err := Import(database, cfg, ImportInput{Path: path})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if output.Imported != 0 {
		t.Errorf("Imported = %d, want 0", output.Imported)
	}
	if len(output.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(output.Errors))
	}
	if output.Errors[0].Code != "ID_COLLISION" {
		t.Errorf("Errors[0].Code = %q, want ID_COLLISION", output.Errors[0].Code)
	}
}

func TestImport_ModeError_WeekCollision(t *testing.T) {
	source := setupOpsDB(t)
	exportDir := t.TempDir()
	cfg := exportConfig(exportDir)

	if _, err := Store(source, StoreInput{PlanJSON: weekPlanJSON(1)}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	path := filepath.Join(exportDir, "plans.jsonl")
	if _, err := Export(context.Background(), source, cfg, ExportInput{Path: path}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	// Target holds a different plan on the same week
	target := setupOpsDB(t)
	if _, err := Store(target, StoreInput{PlanJSON: weekPlanJSON(1)}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	output, err := Import(target, cfg, ImportInput{Path: path})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if output.Imported != 0 {
		t.Errorf("Imported = %d, want 0", output.Imported)
	}
	if len(output.Errors) != 1 || output.Errors[0].Code != "WEEK_COLLISION" {
		t.Errorf("Errors = %+v, want one WEEK_COLLISION", output.Errors)
	}
}

func TestImport_ModeError_WeekCollisionWithinFile(t *testing.T) {
	database := setupOpsDB(t)
	exportDir := t.TempDir()
	cfg := exportConfig(exportDir)

	// Two records claim the same week, so the second one must abort the
	// import before anything is committed.
	content := `{"_chalk_export":true,"schema_version":"1.0","exported_at":1}
{"id":"01IMPORTVALID0000000000001","plan":{"week":6,"unit":"Editing","days":[{"topic":"Cuts"}]},"created_at":1,"updated_at":1}
{"id":"01IMPORTVALID0000000000002","plan":{"week":6,"unit":"Editing","days":[{"topic":"Transitions"}]},"created_at":1,"updated_at":1}
`
	path := filepath.Join(exportDir, "dup-week.jsonl")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	output, err := Import(database, cfg, ImportInput{Path: path})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if output.Imported != 0 {
		t.Errorf("Imported = %d, want 0", output.Imported)
	}
	if len(output.Errors) != 1 || output.Errors[0].Code != "WEEK_COLLISION" {
		t.Fatalf("Errors = %+v, want one WEEK_COLLISION", output.Errors)
	}
	if output.Errors[0].Week != 6 {
		t.Errorf("Errors[0].Week = %d, want 6", output.Errors[0].Week)
	}

	if _, err := Fetch(database, FetchInput{Week: 6}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Fetch after aborted import = %v, want NOT_FOUND", err)
	}
}

func TestImport_ModeReplace_UpdatesOnWeekCollision(t *testing.T) {
	source := setupOpsDB(t)
	exportDir := t.TempDir()
	cfg := exportConfig(exportDir)

	if _, err := Store(source, StoreInput{PlanJSON: validPlanJSON}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	path := filepath.Join(exportDir, "plans.jsonl")
	if _, err := Export(context.Background(), source, cfg, ExportInput{Path: path}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	target := setupOpsDB(t)
	existing, err := Store(target, StoreInput{PlanJSON: weekPlanJSON(3)})
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	output, err := Import(target, cfg, ImportInput{Path: path, Mode: ImportModeReplace})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if output.Imported != 1 {
		t.Errorf("Imported = %d, want 1", output.Imported)
	}

	// The existing row keeps its ID but carries the imported document
	fetched, err := Fetch(target, FetchInput{Week: 3})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if fetched.ID != existing.ID {
		t.Errorf("ID = %q, want existing %q", fetched.ID, existing.ID)
	}
	if fetched.DaysCount != 2 {
		t.Errorf("DaysCount = %d, want 2 from import", fetched.DaysCount)
	}
}

func TestImport_SkipsInvalidLines(t *testing.T) {
	database := setupOpsDB(t)
	exportDir := t.TempDir()
	cfg := exportConfig(exportDir)

	content := `{"_chalk_export":true,"schema_version":"1.0","exported_at":1}
not json at all
{"id":"01IMPORTVALID0000000000001","plan":{"week":6,"unit":"Editing","days":[{"topic":"Cuts"}]},"created_at":1,"updated_at":1}
{"plan":{"week":7,"unit":"Editing","days":[{"topic":"Transitions"}]}}
`
	path := filepath.Join(exportDir, "mixed.jsonl")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	output, err := Import(database, cfg, ImportInput{Path: path, Mode: ImportModeReplace})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if output.Imported != 1 {
		t.Errorf("Imported = %d, want 1", output.Imported)
	}
	if output.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", output.Skipped)
	}
	if len(output.Errors) != 2 {
		t.Fatalf("len(Errors) = %d, want 2", len(output.Errors))
	}
	if output.Errors[0].Code != "PARSE_ERROR" {
		t.Errorf("Errors[0].Code = %q, want PARSE_ERROR", output.Errors[0].Code)
	}
	if output.Errors[1].Code != "INVALID_RECORD" {
		t.Errorf("Errors[1].Code = %q, want INVALID_RECORD", output.Errors[1].Code)
	}
}

func TestImport_ModeError_FailsOnParseErrors(t *testing.T) {
	database := setupOpsDB(t)
	exportDir := t.TempDir()
	cfg := exportConfig(exportDir)

	path := filepath.Join(exportDir, "bad.jsonl")
	if err := os.WriteFile(path, []byte("garbage\n"), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	output, err := Import(database, cfg, ImportInput{Path: path})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if output.Imported != 0 {
		t.Errorf("Imported = %d, want 0", output.Imported)
	}
	if len(output.Errors) != 1 || output.Errors[0].Code != "PARSE_ERROR" {
		t.Errorf("Errors = %+v, want one PARSE_ERROR", output.Errors)
	}
}
