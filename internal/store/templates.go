package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/stride/internal/workout"
)

func (s *Store) CreateTemplate(name, description string, segs []workout.Segment) (*Template, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("create template: name is required")
	}
	if err := validateSegments(segs); err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}

	// Totals are stored for listing without loading segments.
	totals := workout.Workout{Segments: segs}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := tx.Exec(
		`INSERT INTO workout_templates (name, description, total_distance, total_duration, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		name, description, totals.Distance(), totals.Duration(), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert template: %w", err)
	}
	id, _ := res.LastInsertId()

	if err := templateSegments.insert(tx, id, segs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit template: %w", err)
	}
	return s.GetTemplate(id)
}

func (s *Store) GetTemplate(id int64) (*Template, error) {
	t := &Template{}
	var createdAt, updatedAt string
	err := s.db.QueryRow(
		`SELECT id, name, description, total_distance, total_duration, created_at, updated_at FROM workout_templates WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Description, &t.TotalDistance, &t.TotalDuration, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get template %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get template %d: %w", id, err)
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	segs, err := templateSegments.load(s.db, "= ?", id)
	if err != nil {
		return nil, err
	}
	t.Segments = segs[id]
	return t, nil
}

func (s *Store) ListTemplates() ([]Template, error) {
	templates, err := s.scanTemplates()
	if err != nil || len(templates) == 0 {
		return nil, err
	}

	segs, err := templateSegments.load(s.db, "IN (SELECT id FROM workout_templates)")
	if err != nil {
		return nil, err
	}
	for i := range templates {
		templates[i].Segments = segs[templates[i].ID]
	}
	return templates, nil
}

func (s *Store) scanTemplates() ([]Template, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, total_distance, total_duration, created_at, updated_at FROM workout_templates ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []Template
	for rows.Next() {
		var t Template
		var createdAt, updatedAt string
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.TotalDistance, &t.TotalDuration, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (s *Store) DeleteTemplate(id int64) error {
	res, err := s.db.Exec(`DELETE FROM workout_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete template %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete template %d: %w", id, ErrNotFound)
	}
	return nil
}

// ScheduleTemplate copies a template into a new workout on date.
func (s *Store) ScheduleTemplate(id int64, date time.Time) (*workout.Workout, error) {
	t, err := s.GetTemplate(id)
	if err != nil {
		return nil, err
	}
	return s.CreateWorkout(WorkoutInput{
		Date:        date,
		Name:        t.Name,
		Description: t.Description,
		Segments:    t.Segments,
	})
}
