package ops

import (
	"testing"
)

func TestList_Empty(t *testing.T) {
	database := setupOpsDB(t)

	output, err := List(database, ListInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if output.Items == nil {
		t.Error("Items = nil, want empty slice")
	}
	if len(output.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(output.Items))
	}
	if output.Pagination.Total != 0 {
		t.Errorf("Total = %d, want 0", output.Pagination.Total)
	}
	if output.Sort != "week_num_asc" {
		t.Errorf("Sort = %q, want %q", output.Sort, "week_num_asc")
	}
}

func TestList_OrderedByWeek(t *testing.T) {
	database := setupOpsDB(t)

	// Store out of order; listing should come back sorted
	for _, week := range []int{4, 1, 3} {
		if _, err := Store(database, StoreInput{PlanJSON: weekPlanJSON(week)}); err != nil {
			t.Fatalf("Store week %d failed: %v", week, err)
		}
	}

	output, err := List(database, ListInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []int{1, 3, 4}
	if len(output.Items) != len(want) {
		t.Fatalf("len(Items) = %d, want %d", len(output.Items), len(want))
	}
	for i, item := range output.Items {
		if item.WeekNum != want[i] {
			t.Errorf("Items[%d].WeekNum = %d, want %d", i, item.WeekNum, want[i])
		}
	}
}

func TestList_Pagination(t *testing.T) {
	database := setupOpsDB(t)

	for week := 1; week <= 5; week++ {
		if _, err := Store(database, StoreInput{PlanJSON: weekPlanJSON(week)}); err != nil {
			t.Fatalf("Store week %d failed: %v", week, err)
		}
	}

	output, err := List(database, ListInput{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(output.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(output.Items))
	}
	if output.Items[0].WeekNum != 3 {
		t.Errorf("Items[0].WeekNum = %d, want 3", output.Items[0].WeekNum)
	}
	if !output.Pagination.HasMore {
		t.Error("HasMore = false, want true")
	}
	if output.Pagination.Total != 5 {
		t.Errorf("Total = %d, want 5", output.Pagination.Total)
	}

	last, err := List(database, ListInput{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if last.Pagination.HasMore {
		t.Error("HasMore = true on last page, want false")
	}
}

func TestList_LimitBounds(t *testing.T) {
	database := setupOpsDB(t)

	output, err := List(database, ListInput{Limit: 0})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if output.Pagination.Limit != DefaultListLimit {
		t.Errorf("default Limit = %d, want %d", output.Pagination.Limit, DefaultListLimit)
	}

	output, err = List(database, ListInput{Limit: 9999})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if output.Pagination.Limit != MaxListLimit {
		t.Errorf("capped Limit = %d, want %d", output.Pagination.Limit, MaxListLimit)
	}
}

func TestList_UnitFilter(t *testing.T) {
	database := setupOpsDB(t)

	if _, err := Store(database, StoreInput{PlanJSON: weekPlanJSON(1)}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	other := `{"week": 2, "unit": "Documentary", "days": [{"topic": "Interview Techniques"}]}`
	if _, err := Store(database, StoreInput{PlanJSON: other}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	output, err := List(database, ListInput{Unit: "Documentary"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(output.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(output.Items))
	}
	if output.Items[0].Unit != "Documentary" {
		t.Errorf("Items[0].Unit = %q, want %q", output.Items[0].Unit, "Documentary")
	}
}

func TestList_ExcludesDeleted(t *testing.T) {
	database := setupOpsDB(t)

	stored, err := Store(database, StoreInput{PlanJSON: weekPlanJSON(1)})
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if _, err := Delete(database, DeleteInput{ID: stored.ID}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	output, err := List(database, ListInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(output.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0 after delete", len(output.Items))
	}
}
