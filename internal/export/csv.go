package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/stride/internal/workout"
)

var csvHeader = []string{
	"UID", "Date", "Workout", "Completed", "Segment", "Type", "Band",
	"Distance (km)", "Pace", "Duration", "Repetitions", "Total Distance (km)", "Total Duration",
}

// ToCSV writes one row per segment. Workouts without segments get a single row
// with the segment columns left empty.
func ToCSV(workouts []workout.Workout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, wo := range workouts {
		head := []string{
			wo.UID,
			workout.DateKey(wo.Date),
			wo.Name,
			strconv.FormatBool(wo.Completed),
		}
		if len(wo.Segments) == 0 {
			row := append(head, make([]string, len(csvHeader)-len(head))...)
			if err := w.Write(row); err != nil {
				return err
			}
			continue
		}
		for i, seg := range wo.Segments {
			form := workout.FormFromSegment(seg)
			row := append(append([]string(nil), head...),
				strconv.Itoa(i+1),
				seg.Type.Name(),
				seg.Type.Band().Label(),
				form.Distance,
				form.Pace,
				form.Duration,
				strconv.Itoa(seg.Reps()),
				workout.FormatDistance(seg.TotalDistance()),
				formatDuration(seg.TotalDuration()),
			)
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}

func formatDuration(secs int64) string {
	s, err := workout.FormatClock(float64(secs), workout.DurationFields)
	if err != nil {
		return ""
	}
	return s
}
