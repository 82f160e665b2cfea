package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/stride/internal/workout"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Workouts   []jsonWorkout `json:"workouts"`
}

type jsonWorkout struct {
	UID             string        `json:"uid"`
	Date            string        `json:"date"`
	Name            string        `json:"name"`
	Description     string        `json:"description,omitempty"`
	Completed       bool          `json:"completed"`
	TotalDistanceKm float64       `json:"total_distance_km"`
	TotalDuration   string        `json:"total_duration"`
	Segments        []jsonSegment `json:"segments"`
}

type jsonSegment struct {
	Type        string  `json:"type"`
	Band        string  `json:"band"`
	DistanceKm  float64 `json:"distance_km"`
	Pace        string  `json:"pace,omitempty"`
	DurationSec int64   `json:"duration_seconds"`
	Duration    string  `json:"duration,omitempty"`
	Repetitions int     `json:"repetitions"`
}

func ToJSON(workouts []workout.Workout, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(workouts),
		Workouts:   []jsonWorkout{},
	}

	for _, wo := range workouts {
		jw := jsonWorkout{
			UID:             wo.UID,
			Date:            workout.DateKey(wo.Date),
			Name:            wo.Name,
			Description:     wo.Description,
			Completed:       wo.Completed,
			TotalDistanceKm: wo.Distance(),
			TotalDuration:   formatDuration(wo.Duration()),
			Segments:        []jsonSegment{},
		}
		for _, seg := range wo.Segments {
			form := workout.FormFromSegment(seg)
			jw.Segments = append(jw.Segments, jsonSegment{
				Type:        string(seg.Type),
				Band:        string(seg.Type.Band()),
				DistanceKm:  seg.Distance,
				Pace:        form.Pace,
				DurationSec: seg.Duration,
				Duration:    form.Duration,
				Repetitions: seg.Reps(),
			})
		}
		export.Workouts = append(export.Workouts, jw)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
