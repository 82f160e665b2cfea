package store

import (
	"errors"
	"testing"
	"time"

	"github.com/sadopc/stride/internal/workout"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// intervals returns a warm-up, 6x800m and cool-down workout body.
func intervals() []workout.Segment {
	return []workout.Segment{
		{Type: workout.Easy, Distance: 2, Pace: 360, Duration: 720, Repetitions: 1},
		{Type: workout.Interval, Distance: 0.8, Pace: 240, Duration: 192, Repetitions: 6},
		{Type: workout.Easy, Distance: 1.5, Pace: 380, Duration: 570, Repetitions: 1},
	}
}

func createWorkout(t *testing.T, s *Store, date time.Time, name string) *workout.Workout {
	t.Helper()
	w, err := s.CreateWorkout(WorkoutInput{Date: date, Name: name, Segments: intervals()})
	if err != nil {
		t.Fatalf("create workout: %v", err)
	}
	return w
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s := newTestStore(t)

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	path := t.TempDir() + "/sub/stride.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	createWorkout(t, s, day(2026, 10, 12), "Persisted")
	s.Close()

	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	all, err := s2.AllWorkouts()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].Name != "Persisted" {
		t.Fatalf("expected persisted workout after reopen, got %+v", all)
	}
}

func TestForeignKeysEnabled(t *testing.T) {
	s := newTestStore(t)
	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Workouts
// ============================================================

func TestCreateAndGetWorkout(t *testing.T) {
	s := newTestStore(t)
	w := createWorkout(t, s, day(2026, 10, 14), "6x800")

	if w.ID == 0 || w.UID == "" {
		t.Fatalf("expected ID and UID, got %+v", w)
	}
	if workout.DateKey(w.Date) != "2026-10-14" {
		t.Fatalf("date = %s", workout.DateKey(w.Date))
	}
	if len(w.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(w.Segments))
	}
	if w.Segments[1].Type != workout.Interval || w.Segments[1].Repetitions != 6 {
		t.Fatalf("segment order not kept: %+v", w.Segments)
	}
	if w.Completed {
		t.Fatal("new workout should not be completed")
	}

	got, err := s.GetWorkout(w.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.UID != w.UID {
		t.Fatalf("uid changed: %s vs %s", got.UID, w.UID)
	}
}

func TestCreateWorkoutUniqueUIDs(t *testing.T) {
	s := newTestStore(t)
	a := createWorkout(t, s, day(2026, 10, 14), "A")
	b := createWorkout(t, s, day(2026, 10, 14), "B")
	if a.UID == b.UID {
		t.Fatal("expected distinct UIDs")
	}
}

func TestCreateWorkoutValidation(t *testing.T) {
	s := newTestStore(t)
	tests := []struct {
		name string
		in   WorkoutInput
	}{
		{"no date", WorkoutInput{Name: "x"}},
		{"no name", WorkoutInput{Date: day(2026, 10, 1), Name: "  "}},
		{"bad type", WorkoutInput{Date: day(2026, 10, 1), Name: "x", Segments: []workout.Segment{{Type: "sprint"}}}},
		{"negative distance", WorkoutInput{Date: day(2026, 10, 1), Name: "x", Segments: []workout.Segment{{Type: workout.Easy, Distance: -1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.CreateWorkout(tt.in); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCreateWorkoutZeroRepetitionsStoredAsOne(t *testing.T) {
	s := newTestStore(t)
	w, err := s.CreateWorkout(WorkoutInput{
		Date:     day(2026, 10, 1),
		Name:     "Easy",
		Segments: []workout.Segment{{Type: workout.Easy, Distance: 5}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if w.Segments[0].Repetitions != 1 {
		t.Fatalf("expected 1 repetition, got %d", w.Segments[0].Repetitions)
	}
}

func TestGetWorkoutNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetWorkout(999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateWorkoutReplacesSegments(t *testing.T) {
	s := newTestStore(t)
	w := createWorkout(t, s, day(2026, 10, 14), "6x800")

	err := s.UpdateWorkout(w.ID, WorkoutInput{
		Date:     day(2026, 10, 15),
		Name:     "Tempo",
		Segments: []workout.Segment{{Type: workout.Tempo, Distance: 8, Pace: 290, Duration: 2320, Repetitions: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetWorkout(w.ID)
	if got.Name != "Tempo" || workout.DateKey(got.Date) != "2026-10-15" {
		t.Fatalf("unexpected workout: %+v", got)
	}
	if len(got.Segments) != 1 || got.Segments[0].Type != workout.Tempo {
		t.Fatalf("segments not replaced: %+v", got.Segments)
	}
	if got.UID != w.UID {
		t.Fatal("update must keep the UID")
	}
}

func TestUpdateWorkoutNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateWorkout(42, WorkoutInput{Date: day(2026, 10, 1), Name: "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteWorkoutCascadesSegments(t *testing.T) {
	s := newTestStore(t)
	w := createWorkout(t, s, day(2026, 10, 14), "6x800")

	if err := s.DeleteWorkout(w.ID); err != nil {
		t.Fatal(err)
	}
	var n int
	s.db.QueryRow(`SELECT COUNT(*) FROM workout_segments WHERE workout_id = ?`, w.ID).Scan(&n)
	if n != 0 {
		t.Fatalf("expected segments deleted, %d left", n)
	}
	if err := s.DeleteWorkout(w.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestSetWorkoutCompleted(t *testing.T) {
	s := newTestStore(t)
	w := createWorkout(t, s, day(2026, 10, 14), "6x800")

	if err := s.SetWorkoutCompleted(w.ID, true); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetWorkout(w.ID)
	if !got.Completed {
		t.Fatal("expected completed")
	}
	if err := s.SetWorkoutCompleted(999, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListWorkoutsRange(t *testing.T) {
	s := newTestStore(t)
	createWorkout(t, s, day(2026, 9, 30), "Before")
	createWorkout(t, s, day(2026, 10, 5), "Second")
	createWorkout(t, s, day(2026, 10, 1), "First")
	createWorkout(t, s, day(2026, 11, 1), "After")

	got, err := s.ListWorkouts("2026-10-01", "2026-10-31")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 workouts, got %d", len(got))
	}
	if got[0].Name != "First" || got[1].Name != "Second" {
		t.Fatalf("expected date order, got %s, %s", got[0].Name, got[1].Name)
	}
	for _, w := range got {
		if len(w.Segments) != 3 {
			t.Fatalf("%s: expected segments loaded, got %d", w.Name, len(w.Segments))
		}
	}
}

func TestListWorkoutsInclusiveBounds(t *testing.T) {
	s := newTestStore(t)
	createWorkout(t, s, day(2026, 10, 1), "Edge")

	got, err := s.ListWorkouts("2026-10-01", "2026-10-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 workout on single-day range, got %d", len(got))
	}
}

func TestListWorkoutsInvalidRange(t *testing.T) {
	s := newTestStore(t)
	cases := [][2]string{
		{"2026-10-31", "2026-10-01"},
		{"2026/10/01", "2026-10-31"},
		{"", "2026-10-31"},
		{"2026-13-45", "2026-14-01"},
		{"2026-02-31", "2026-02-31"},
		{"0000-00-00", "9999-99-99"},
	}
	for _, c := range cases {
		if _, err := s.ListWorkouts(c[0], c[1]); !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("ListWorkouts(%q, %q): expected ErrInvalidRange, got %v", c[0], c[1], err)
		}
	}
}

func TestCorruptWorkoutDate(t *testing.T) {
	s := newTestStore(t)
	res, err := s.db.Exec(`INSERT INTO scheduled_workouts (uid, date, name) VALUES ('bad-row', '2026-02-31', 'Broken')`)
	if err != nil {
		t.Fatal(err)
	}
	id, _ := res.LastInsertId()

	if _, err := s.GetWorkout(id); err == nil {
		t.Fatal("expected error for corrupt date")
	}
	if _, err := s.AllWorkouts(); err == nil {
		t.Fatal("expected error listing a corrupt row")
	}
}

func TestListWorkoutsEmpty(t *testing.T) {
	s := newTestStore(t)
	got, err := s.ListWorkoutsBetween(day(2026, 10, 1), day(2026, 10, 31))
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("expected nil slice, got %d items", len(got))
	}
}

// ============================================================
// Templates
// ============================================================

func TestCreateTemplateTotals(t *testing.T) {
	s := newTestStore(t)
	tpl, err := s.CreateTemplate("6x800", "track session", intervals())
	if err != nil {
		t.Fatal(err)
	}
	// 2 + 6*0.8 + 1.5
	if tpl.TotalDistance < 8.29 || tpl.TotalDistance > 8.31 {
		t.Fatalf("total distance = %v", tpl.TotalDistance)
	}
	// 720 + 6*192 + 570
	if tpl.TotalDuration != 2442 {
		t.Fatalf("total duration = %d", tpl.TotalDuration)
	}
	if len(tpl.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(tpl.Segments))
	}
}

func TestCreateTemplateDuplicateName(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateTemplate("Long run", "", intervals()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateTemplate("Long run", "", intervals()); err == nil {
		t.Fatal("expected error for duplicate template name")
	}
}

func TestListTemplatesSortedWithSegments(t *testing.T) {
	s := newTestStore(t)
	s.CreateTemplate("Tempo", "", []workout.Segment{{Type: workout.Tempo, Distance: 6, Repetitions: 1}})
	s.CreateTemplate("Easy", "", []workout.Segment{{Type: workout.Easy, Distance: 10, Repetitions: 1}})

	templates, err := s.ListTemplates()
	if err != nil {
		t.Fatal(err)
	}
	if len(templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(templates))
	}
	if templates[0].Name != "Easy" || templates[1].Name != "Tempo" {
		t.Fatalf("expected sorted by name: got %s, %s", templates[0].Name, templates[1].Name)
	}
	if len(templates[0].Segments) != 1 || templates[0].Segments[0].Type != workout.Easy {
		t.Fatalf("segments not attached: %+v", templates[0].Segments)
	}
}

func TestDeleteTemplate(t *testing.T) {
	s := newTestStore(t)
	tpl, _ := s.CreateTemplate("Gone", "", intervals())
	if err := s.DeleteTemplate(tpl.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetTemplate(tpl.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteTemplate(tpl.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestScheduleTemplate(t *testing.T) {
	s := newTestStore(t)
	tpl, _ := s.CreateTemplate("6x800", "track", intervals())

	w, err := s.ScheduleTemplate(tpl.ID, day(2026, 10, 20))
	if err != nil {
		t.Fatal(err)
	}
	if w.Name != "6x800" || w.Description != "track" {
		t.Fatalf("unexpected workout: %+v", w)
	}
	if workout.DateKey(w.Date) != "2026-10-20" {
		t.Fatalf("date = %s", workout.DateKey(w.Date))
	}
	if len(w.Segments) != 3 || w.Distance() != tpl.TotalDistance {
		t.Fatalf("segments not copied: %+v", w.Segments)
	}

	// The template stays usable after scheduling.
	if _, err := s.GetTemplate(tpl.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ScheduleTemplate(999, day(2026, 10, 20)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ============================================================
// Settings
// ============================================================

func TestDefaultSettings(t *testing.T) {
	s := newTestStore(t)
	want := map[string]string{
		"week_start":           "monday",
		"default_segment_type": "easy",
		"default_pace":         "06:00",
	}
	for k, v := range want {
		got, err := s.GetSetting(k)
		if err != nil {
			t.Fatalf("get %s: %v", k, err)
		}
		if got != v {
			t.Fatalf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestSetSettingUpsert(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting("default_pace", "05:30"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetSetting("default_pace")
	if got != "05:30" {
		t.Fatalf("expected 05:30, got %q", got)
	}

	all, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 settings, got %d", len(all))
	}
}

func TestGetSettingMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetSetting("nope"); err == nil {
		t.Fatal("expected error for missing setting")
	}
}

func TestWeekStart(t *testing.T) {
	s := newTestStore(t)
	if s.WeekStart() != time.Monday {
		t.Fatal("expected Monday by default")
	}
	s.SetSetting("week_start", "sunday")
	if s.WeekStart() != time.Sunday {
		t.Fatal("expected Sunday after change")
	}
}
