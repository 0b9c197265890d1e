package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"chalk/internal/errors"
	"chalk/internal/lesson"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func testPlan(t *testing.T, id string, weekNum int) *lesson.Plan {
	t.Helper()
	week := lesson.Week{
		Week: weekNum,
		Unit: "Camera Basics",
		Days: []lesson.Lesson{{Topic: "Camera Angles"}},
	}
	raw, err := json.Marshal(&week)
	if err != nil {
		t.Fatalf("marshal week: %v", err)
	}
	now := time.Now().Unix()
	return &lesson.Plan{
		ID:        id,
		WeekNum:   weekNum,
		Unit:      week.Unit,
		Title:     "Camera Basics",
		PlanJSON:  string(raw),
		Week:      &week,
		DaysCount: len(week.Days),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestInsertAndGetByID(t *testing.T) {
	database := setupTestDB(t)

	p := testPlan(t, "01TESTPLAN0000000000000001", 1)
	if err := Insert(database, p); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := GetByID(database, p.ID, false)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.WeekNum != 1 || got.Unit != "Camera Basics" {
		t.Errorf("got week %d unit %q", got.WeekNum, got.Unit)
	}
	if got.Week == nil || len(got.Week.Days) != 1 || got.Week.Days[0].Topic != "Camera Angles" {
		t.Errorf("decoded week = %+v", got.Week)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	database := setupTestDB(t)

	_, err := GetByID(database, "01MISSING00000000000000001", false)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
}

func TestGetByWeek(t *testing.T) {
	database := setupTestDB(t)

	p := testPlan(t, "01TESTPLAN0000000000000002", 3)
	if err := Insert(database, p); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := GetByWeek(database, 3, false)
	if err != nil {
		t.Fatalf("GetByWeek() error = %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("ID = %q, want %q", got.ID, p.ID)
	}

	if _, err := GetByWeek(database, 7, false); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("missing week error = %v, want NOT_FOUND", err)
	}
}

func TestInsert_DuplicateWeek(t *testing.T) {
	database := setupTestDB(t)

	if err := Insert(database, testPlan(t, "01TESTPLAN0000000000000003", 2)); err != nil {
		t.Fatalf("first Insert() error = %v", err)
	}

	err := Insert(database, testPlan(t, "01TESTPLAN0000000000000004", 2))
	if err != ErrUniqueConstraint {
		t.Fatalf("second Insert() error = %v, want ErrUniqueConstraint", err)
	}
}

func TestInsert_DeletedWeekCanBeReused(t *testing.T) {
	database := setupTestDB(t)

	first := testPlan(t, "01TESTPLAN0000000000000005", 4)
	if err := Insert(database, first); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := SoftDelete(database, first.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	// Partial unique index only covers active rows
	if err := Insert(database, testPlan(t, "01TESTPLAN0000000000000006", 4)); err != nil {
		t.Fatalf("Insert() after delete error = %v", err)
	}
}

func TestCheckWeekExists(t *testing.T) {
	database := setupTestDB(t)

	exists, err := CheckWeekExists(database, 5)
	if err != nil {
		t.Fatalf("CheckWeekExists() error = %v", err)
	}
	if exists {
		t.Error("week 5 should not exist yet")
	}

	if err := Insert(database, testPlan(t, "01TESTPLAN0000000000000007", 5)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	exists, err = CheckWeekExists(database, 5)
	if err != nil {
		t.Fatalf("CheckWeekExists() error = %v", err)
	}
	if !exists {
		t.Error("week 5 should exist")
	}
}

func TestUpdateByID(t *testing.T) {
	database := setupTestDB(t)

	p := testPlan(t, "01TESTPLAN0000000000000008", 6)
	if err := Insert(database, p); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	p.Unit = "Lighting"
	p.Title = "Lighting Week"
	if err := UpdateByID(database, p); err != nil {
		t.Fatalf("UpdateByID() error = %v", err)
	}

	got, err := GetByID(database, p.ID, false)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Unit != "Lighting" || got.Title != "Lighting Week" {
		t.Errorf("after update: unit %q title %q", got.Unit, got.Title)
	}
}

func TestUpdateByID_NotFound(t *testing.T) {
	database := setupTestDB(t)

	p := testPlan(t, "01TESTPLAN0000000000000009", 7)
	if err := UpdateByID(database, p); !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
}

func TestList(t *testing.T) {
	database := setupTestDB(t)

	// Insert out of week order; listing sorts by week
	for i, week := range []int{3, 1, 2} {
		p := testPlan(t, fmt.Sprintf("01TESTPLANLIST000000000000%d", i), week)
		if err := Insert(database, p); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	summaries, total, err := List(database, "", 10, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(summaries) != 3 {
		t.Fatalf("len = %d, want 3", len(summaries))
	}
	for i, want := range []int{1, 2, 3} {
		if summaries[i].WeekNum != want {
			t.Errorf("summaries[%d].WeekNum = %d, want %d", i, summaries[i].WeekNum, want)
		}
	}
}

func TestList_Pagination(t *testing.T) {
	database := setupTestDB(t)

	for i := 1; i <= 5; i++ {
		if err := Insert(database, testPlan(t, fmt.Sprintf("01TESTPLANPAGE000000000000%d", i), i)); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	summaries, total, err := List(database, "", 2, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(summaries) != 2 || summaries[0].WeekNum != 3 || summaries[1].WeekNum != 4 {
		t.Errorf("page = %+v, want weeks 3 and 4", summaries)
	}
}

func TestList_UnitFilter(t *testing.T) {
	database := setupTestDB(t)

	a := testPlan(t, "01TESTPLANUNIT000000000001", 1)
	b := testPlan(t, "01TESTPLANUNIT000000000002", 2)
	b.Unit = "Editing"
	for _, p := range []*lesson.Plan{a, b} {
		if err := Insert(database, p); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	summaries, total, err := List(database, "Editing", 10, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 || len(summaries) != 1 || summaries[0].Unit != "Editing" {
		t.Errorf("filtered list = %+v (total %d)", summaries, total)
	}
}

func TestList_ExcludesDeleted(t *testing.T) {
	database := setupTestDB(t)

	p := testPlan(t, "01TESTPLANDEL0000000000001", 1)
	if err := Insert(database, p); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := SoftDelete(database, p.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	summaries, total, err := List(database, "", 10, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 0 || len(summaries) != 0 {
		t.Errorf("list after delete = %+v (total %d)", summaries, total)
	}
}

func TestLatest(t *testing.T) {
	database := setupTestDB(t)

	if _, err := Latest(database); !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("empty Latest() error = %v, want NOT_FOUND", err)
	}

	older := testPlan(t, "01TESTPLANLATEST0000000001", 1)
	older.CreatedAt = 1000
	older.UpdatedAt = 1000
	newer := testPlan(t, "01TESTPLANLATEST0000000002", 2)
	newer.CreatedAt = 2000
	newer.UpdatedAt = 2000
	for _, p := range []*lesson.Plan{older, newer} {
		if err := Insert(database, p); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	got, err := Latest(database)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if got.ID != newer.ID {
		t.Errorf("Latest() = %q, want %q", got.ID, newer.ID)
	}
}

func TestStreamForExport(t *testing.T) {
	database := setupTestDB(t)

	for i := 1; i <= 3; i++ {
		if err := Insert(database, testPlan(t, fmt.Sprintf("01TESTPLANALL0000000000000%d", i), i)); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}
	deleted := testPlan(t, "01TESTPLANALL0000000000004", 4)
	if err := Insert(database, deleted); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := SoftDelete(database, deleted.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	collect := func(includeDeleted bool) []*lesson.Plan {
		t.Helper()
		rows, err := StreamForExport(database, includeDeleted)
		if err != nil {
			t.Fatalf("StreamForExport() error = %v", err)
		}
		defer rows.Close()
		var plans []*lesson.Plan
		for rows.Next() {
			p, err := ScanPlanFromRows(rows)
			if err != nil {
				t.Fatalf("ScanPlanFromRows() error = %v", err)
			}
			plans = append(plans, p)
		}
		if err := rows.Err(); err != nil {
			t.Fatalf("rows.Err() = %v", err)
		}
		return plans
	}

	plans := collect(false)
	if len(plans) != 3 {
		t.Fatalf("len = %d, want 3", len(plans))
	}
	for i, p := range plans {
		if p.WeekNum != i+1 {
			t.Errorf("plans[%d].WeekNum = %d, want %d", i, p.WeekNum, i+1)
		}
	}

	all := collect(true)
	if len(all) != 4 {
		t.Fatalf("includeDeleted len = %d, want 4", len(all))
	}
	if all[3].DeletedAt == nil {
		t.Error("deleted plan missing DeletedAt in export stream")
	}
}

func TestUpdateFull(t *testing.T) {
	database := setupTestDB(t)

	p := testPlan(t, "01TESTPLANFULL000000000001", 1)
	if err := Insert(database, p); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	p.WeekNum = 7
	p.Unit = "Documentary"
	p.CreatedAt = 1000
	p.UpdatedAt = 2000
	if err := UpdateFull(database, p); err != nil {
		t.Fatalf("UpdateFull() error = %v", err)
	}

	got, err := GetByID(database, p.ID, false)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.WeekNum != 7 {
		t.Errorf("WeekNum = %d, want 7", got.WeekNum)
	}
	if got.Unit != "Documentary" {
		t.Errorf("Unit = %q, want %q", got.Unit, "Documentary")
	}
	if got.CreatedAt != 1000 || got.UpdatedAt != 2000 {
		t.Errorf("timestamps = (%d, %d), want (1000, 2000)", got.CreatedAt, got.UpdatedAt)
	}

	missing := testPlan(t, "01TESTPLANFULL000000000002", 9)
	if err := UpdateFull(database, missing); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("UpdateFull(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestSoftDelete(t *testing.T) {
	database := setupTestDB(t)

	p := testPlan(t, "01TESTPLANSOFT000000000001", 1)
	if err := Insert(database, p); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := SoftDelete(database, p.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	if _, err := GetByID(database, p.ID, false); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("active lookup error = %v, want NOT_FOUND", err)
	}

	got, err := GetByID(database, p.ID, true)
	if err != nil {
		t.Fatalf("includeDeleted lookup error = %v", err)
	}
	if got.DeletedAt == nil {
		t.Error("DeletedAt not set")
	}

	// Double delete is NOT_FOUND
	if err := SoftDelete(database, p.ID); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("second delete error = %v, want NOT_FOUND", err)
	}
}

func TestPurgeDeleted(t *testing.T) {
	database := setupTestDB(t)

	keep := testPlan(t, "01TESTPLANPURGE0000000001", 1)
	gone := testPlan(t, "01TESTPLANPURGE0000000002", 2)
	for _, p := range []*lesson.Plan{keep, gone} {
		if err := Insert(database, p); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}
	if err := SoftDelete(database, gone.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	n, err := PurgeDeleted(database, time.Now().Unix()+1)
	if err != nil {
		t.Fatalf("PurgeDeleted() error = %v", err)
	}
	if n != 1 {
		t.Errorf("purged = %d, want 1", n)
	}

	// Purged row is gone even with includeDeleted
	if _, err := GetByID(database, gone.ID, true); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("purged lookup error = %v, want NOT_FOUND", err)
	}
	// Active row untouched
	if _, err := GetByID(database, keep.ID, false); err != nil {
		t.Errorf("active lookup error = %v", err)
	}
}
