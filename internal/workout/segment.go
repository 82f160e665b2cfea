package workout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// SegmentType is the raw category of a workout segment.
type SegmentType string

const (
	Easy      SegmentType = "easy"
	Tempo     SegmentType = "tempo"
	Interval  SegmentType = "interval"
	TimeTrial SegmentType = "time_trial"
)

// SegmentTypes lists every segment type in display order.
var SegmentTypes = []SegmentType{Easy, Tempo, Interval, TimeTrial}

// Band is the display-level difficulty grouping of a segment type.
type Band string

const (
	BandEasy     Band = "easy"
	BandModerate Band = "moderate"
	BandHard     Band = "hard"
)

// Bands lists every band in legend order.
var Bands = []Band{BandEasy, BandModerate, BandHard}

type typeInfo struct {
	band  Band
	name  string
	color string
}

// Adding a category is a one-line edit here.
var typeTable = map[SegmentType]typeInfo{
	Easy:      {band: BandEasy, name: "Easy", color: "#22C55E"},
	Tempo:     {band: BandModerate, name: "Tempo", color: "#FB923C"},
	Interval:  {band: BandHard, name: "Interval", color: "#EA580C"},
	TimeTrial: {band: BandHard, name: "Time trial", color: "#EF4444"},
}

type bandInfo struct {
	label string
	color string
}

var bandTable = map[Band]bandInfo{
	BandEasy:     {label: "Łatwy", color: "#22C55E"},
	BandModerate: {label: "Średni", color: "#FB923C"},
	BandHard:     {label: "Trudny", color: "#EF4444"},
}

// Valid reports whether t is one of the known segment types.
func (t SegmentType) Valid() bool {
	_, ok := typeTable[t]
	return ok
}

// Band returns the difficulty band t belongs to.
func (t SegmentType) Band() Band { return typeTable[t].band }

// Name is the human-readable type name.
func (t SegmentType) Name() string {
	if info, ok := typeTable[t]; ok {
		return info.name
	}
	return string(t)
}

// Color is the dot color used for t on the calendar.
func (t SegmentType) Color() string {
	if info, ok := typeTable[t]; ok {
		return info.color
	}
	return "#9CA3AF"
}

// Label is the legend label of the band.
func (b Band) Label() string { return bandTable[b].label }

// Color is the legend color of the band.
func (b Band) Color() string { return bandTable[b].color }

// ParseSegmentType converts s to a SegmentType.
func ParseSegmentType(s string) (SegmentType, error) {
	t := SegmentType(strings.TrimSpace(s))
	if !t.Valid() {
		return "", fmt.Errorf("unknown segment type %q", s)
	}
	return t, nil
}

// Segment is one leg of a workout in persisted numeric form.
type Segment struct {
	Type        SegmentType
	Distance    float64 // km
	Pace        int64   // seconds per km
	Duration    int64   // seconds
	Repetitions int
}

// Reps returns the repetition count, never less than 1.
func (s Segment) Reps() int {
	if s.Repetitions < 1 {
		return 1
	}
	return s.Repetitions
}

// TotalDistance is the segment distance across all repetitions.
func (s Segment) TotalDistance() float64 {
	return s.Distance * float64(s.Reps())
}

// TotalDuration is the segment duration in seconds across all repetitions.
func (s Segment) TotalDuration() int64 {
	return s.Duration * int64(s.Reps())
}

// Workout is a workout scheduled on a calendar day.
type Workout struct {
	ID          int64
	UID         string
	Date        time.Time
	Name        string
	Description string
	Segments    []Segment
	Completed   bool
}

// Distance is the workout distance in km including repetitions.
func (w Workout) Distance() float64 {
	var km float64
	for _, s := range w.Segments {
		km += s.TotalDistance()
	}
	return km
}

// Duration is the workout duration in seconds including repetitions.
func (w Workout) Duration() int64 {
	var secs int64
	for _, s := range w.Segments {
		secs += s.TotalDuration()
	}
	return secs
}

// SegmentForm is the editable text form of a segment.
type SegmentForm struct {
	Type        SegmentType
	Distance    string
	Pace        string
	Duration    string
	Repetitions int
}

// NewSegmentForm returns an empty form of the given type with a single repetition.
func NewSegmentForm(t SegmentType, pace string) SegmentForm {
	return SegmentForm{Type: t, Pace: pace, Repetitions: 1}
}

// FormFromSegment renders s as text. Zero values render as empty fields.
func FormFromSegment(s Segment) SegmentForm {
	f := SegmentForm{Type: s.Type, Repetitions: s.Reps()}
	if s.Distance > 0 {
		f.Distance = FormatDistance(s.Distance)
	}
	if s.Pace > 0 {
		f.Pace, _ = FormatClock(float64(s.Pace), PaceFields)
	}
	if s.Duration > 0 {
		f.Duration, _ = FormatClock(float64(s.Duration), DurationFields)
	}
	return f
}

// Segment parses the form into numeric form.
func (f SegmentForm) Segment() (Segment, error) {
	if !f.Type.Valid() {
		return Segment{}, fmt.Errorf("unknown segment type %q", f.Type)
	}
	dist, err := ParseDistance(f.Distance)
	if err != nil {
		return Segment{}, fmt.Errorf("distance: %w", err)
	}
	pace, err := ParseClock(f.Pace, PaceFields)
	if err != nil {
		return Segment{}, fmt.Errorf("pace: %w", err)
	}
	dur, err := ParseClock(f.Duration, DurationFields)
	if err != nil {
		return Segment{}, fmt.Errorf("duration: %w", err)
	}
	if f.Repetitions < 1 {
		return Segment{}, fmt.Errorf("repetitions must be at least 1, got %d", f.Repetitions)
	}
	return Segment{
		Type:        f.Type,
		Distance:    dist,
		Pace:        pace,
		Duration:    dur,
		Repetitions: f.Repetitions,
	}, nil
}

// Value returns the text of the given field.
func (f SegmentForm) Value(field Field) string {
	switch field {
	case FieldDistance:
		return f.Distance
	case FieldPace:
		return f.Pace
	case FieldDuration:
		return f.Duration
	}
	return ""
}

// With returns a copy of f with field set to v.
func (f SegmentForm) With(field Field, v string) SegmentForm {
	switch field {
	case FieldDistance:
		f.Distance = v
	case FieldPace:
		f.Pace = v
	case FieldDuration:
		f.Duration = v
	}
	return f
}

// ParseDistance parses a kilometer value. A comma decimal separator is accepted.
// Empty text is 0.
func ParseDistance(text string) (float64, error) {
	text = strings.TrimSpace(strings.Replace(text, ",", ".", 1))
	if text == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FormatError{Text: text, Reason: "not a non-negative number"}
	}
	return v, nil
}

// FormatDistance renders km with two decimals.
func FormatDistance(km float64) string {
	return strconv.FormatFloat(km, 'f', 2, 64)
}
