package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/stride/internal/workout"
)

const workoutColumns = `id, uid, date, name, description, completed`

func (s *Store) CreateWorkout(in WorkoutInput) (*workout.Workout, error) {
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := tx.Exec(
		`INSERT INTO scheduled_workouts (uid, date, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), workout.DateKey(in.Date), in.Name, in.Description, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}
	id, _ := res.LastInsertId()

	if err := workoutSegments.insert(tx, id, in.Segments); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit workout: %w", err)
	}
	return s.GetWorkout(id)
}

func (s *Store) GetWorkout(id int64) (*workout.Workout, error) {
	w, err := scanWorkout(s.db.QueryRow(`SELECT `+workoutColumns+` FROM scheduled_workouts WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get workout %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get workout %d: %w", id, err)
	}

	segs, err := workoutSegments.load(s.db, "= ?", id)
	if err != nil {
		return nil, err
	}
	w.Segments = segs[id]
	return w, nil
}

// UpdateWorkout replaces the workout's fields and segments.
func (s *Store) UpdateWorkout(id int64, in WorkoutInput) error {
	if err := in.validate(); err != nil {
		return fmt.Errorf("update workout: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := tx.Exec(
		`UPDATE scheduled_workouts SET date = ?, name = ?, description = ?, updated_at = ? WHERE id = ?`,
		workout.DateKey(in.Date), in.Name, in.Description, now, id,
	)
	if err != nil {
		return fmt.Errorf("update workout %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update workout %d: %w", id, ErrNotFound)
	}
	if err := workoutSegments.replace(tx, id, in.Segments); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) DeleteWorkout(id int64) error {
	res, err := s.db.Exec(`DELETE FROM scheduled_workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete workout %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete workout %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) SetWorkoutCompleted(id int64, completed bool) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`UPDATE scheduled_workouts SET completed = ?, updated_at = ? WHERE id = ?`,
		boolToInt(completed), now, id,
	)
	if err != nil {
		return fmt.Errorf("set workout %d completed: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("set workout %d completed: %w", id, ErrNotFound)
	}
	return nil
}

// ListWorkouts returns workouts dated from..to inclusive (YYYY-MM-DD), ordered by date.
func (s *Store) ListWorkouts(from, to string) ([]workout.Workout, error) {
	start, err := workout.ParseDateKey(from)
	if err != nil {
		return nil, fmt.Errorf("list workouts: from %q: %w", from, ErrInvalidRange)
	}
	end, err := workout.ParseDateKey(to)
	if err != nil {
		return nil, fmt.Errorf("list workouts: to %q: %w", to, ErrInvalidRange)
	}
	if start.After(end) {
		return nil, fmt.Errorf("list workouts: %s is after %s: %w", from, to, ErrInvalidRange)
	}
	return s.queryWorkouts(`WHERE date >= ? AND date <= ?`, from, to)
}

// ListWorkoutsBetween is ListWorkouts for a span of days.
func (s *Store) ListWorkoutsBetween(from, to time.Time) ([]workout.Workout, error) {
	return s.ListWorkouts(workout.DateKey(from), workout.DateKey(to))
}

// AllWorkouts returns every scheduled workout ordered by date.
func (s *Store) AllWorkouts() ([]workout.Workout, error) {
	return s.queryWorkouts("")
}

func (s *Store) queryWorkouts(where string, args ...any) ([]workout.Workout, error) {
	workouts, err := s.scanWorkouts(where, args...)
	if err != nil || len(workouts) == 0 {
		return nil, err
	}

	// The single connection is free again once the workout rows are closed.
	segs, err := workoutSegments.load(s.db, `IN (SELECT id FROM scheduled_workouts `+where+`)`, args...)
	if err != nil {
		return nil, err
	}
	for i := range workouts {
		workouts[i].Segments = segs[workouts[i].ID]
	}
	return workouts, nil
}

func (s *Store) scanWorkouts(where string, args ...any) ([]workout.Workout, error) {
	rows, err := s.db.Query(`SELECT `+workoutColumns+` FROM scheduled_workouts `+where+` ORDER BY date, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []workout.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *w)
	}
	return workouts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row rowScanner) (*workout.Workout, error) {
	w := &workout.Workout{}
	var date string
	var completed int
	if err := row.Scan(&w.ID, &w.UID, &date, &w.Name, &w.Description, &completed); err != nil {
		return nil, err
	}
	d, err := workout.ParseDateKey(date)
	if err != nil {
		return nil, fmt.Errorf("workout %d date %q: %w", w.ID, date, err)
	}
	w.Date = d
	w.Completed = completed == 1
	return w, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
