package ops

import (
	"testing"
	"time"

	"chalk/internal/errors"
)

func TestPurge_Empty(t *testing.T) {
	database := setupOpsDB(t)

	output, err := Purge(database, PurgeInput{})
	if err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if output.Purged != 0 {
		t.Errorf("Purged = %d, want 0", output.Purged)
	}
	if output.Message != "No deleted plans to purge" {
		t.Errorf("Message = %q", output.Message)
	}
}

func TestPurge_RemovesDeleted(t *testing.T) {
	database := setupOpsDB(t)

	stored, err := Store(database, StoreInput{PlanJSON: validPlanJSON})
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	kept, err := Store(database, StoreInput{PlanJSON: weekPlanJSON(1)})
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if _, err := Delete(database, DeleteInput{ID: stored.ID}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	output, err := Purge(database, PurgeInput{})
	if err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if output.Purged != 1 {
		t.Errorf("Purged = %d, want 1", output.Purged)
	}
	if output.Message != "Permanently deleted 1 plan" {
		t.Errorf("Message = %q", output.Message)
	}

	// Purged plan is gone even with include_deleted
	if _, err := Fetch(database, FetchInput{ID: stored.ID, IncludeDeleted: true}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("fetch purged error = %v, want NOT_FOUND", err)
	}

	// Active plan untouched
	if _, err := Fetch(database, FetchInput{ID: kept.ID}); err != nil {
		t.Errorf("fetch kept plan failed: %v", err)
	}
}

func TestPurge_OlderThanDays(t *testing.T) {
	database := setupOpsDB(t)

	stored, err := Store(database, StoreInput{PlanJSON: validPlanJSON})
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if _, err := Delete(database, DeleteInput{ID: stored.ID}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// Deleted just now, so a 30-day threshold keeps it
	output, err := Purge(database, PurgeInput{OlderThanDays: intPtr(30)})
	if err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if output.Purged != 0 {
		t.Errorf("Purged = %d, want 0", output.Purged)
	}

	// Backdate the deletion past the threshold
	backdated := time.Now().Unix() - 40*86400
	if _, err := database.Exec("UPDATE plans SET deleted_at = ? WHERE id = ?", backdated, stored.ID); err != nil {
		t.Fatalf("backdate failed: %v", err)
	}

	output, err = Purge(database, PurgeInput{OlderThanDays: intPtr(30)})
	if err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if output.Purged != 1 {
		t.Errorf("Purged = %d, want 1", output.Purged)
	}
	if output.Message != "Permanently deleted 1 plan (deleted more than 30 days ago)" {
		t.Errorf("Message = %q", output.Message)
	}
}

func TestPurge_NegativeDays(t *testing.T) {
	database := setupOpsDB(t)

	_, err := Purge(database, PurgeInput{OlderThanDays: intPtr(-1)})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}
