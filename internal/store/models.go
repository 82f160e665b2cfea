package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/stride/internal/workout"
)

// WorkoutInput is the data needed to create or replace a scheduled workout.
type WorkoutInput struct {
	Date        time.Time
	Name        string
	Description string
	Segments    []workout.Segment
}

func (in WorkoutInput) validate() error {
	if in.Date.IsZero() {
		return fmt.Errorf("workout date is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("workout name is required")
	}
	return validateSegments(in.Segments)
}

func validateSegments(segs []workout.Segment) error {
	for i, seg := range segs {
		if !seg.Type.Valid() {
			return fmt.Errorf("segment %d: unknown type %q", i+1, seg.Type)
		}
		if seg.Distance < 0 || seg.Pace < 0 || seg.Duration < 0 {
			return fmt.Errorf("segment %d: negative value", i+1)
		}
	}
	return nil
}

// Template is a reusable workout definition.
type Template struct {
	ID            int64
	Name          string
	Description   string
	Segments      []workout.Segment
	TotalDistance float64 // km, repetitions included
	TotalDuration int64   // seconds, repetitions included
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Setting struct {
	Key   string
	Value string
}
