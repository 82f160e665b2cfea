package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sadopc/stride/internal/workout"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv or json)", s)
}

// FileName is the default export file name for a run at now.
func FileName(f Format, now time.Time) string {
	return fmt.Sprintf("stride-export-%s.%s", now.Format("20060102-150405"), f)
}

// Write exports workouts to path, or to FileName inside dir when path is empty.
// It returns the path written.
func Write(workouts []workout.Workout, f Format, dir, path string) (string, error) {
	if path == "" {
		path = filepath.Join(dir, FileName(f, time.Now()))
	}
	var err error
	switch f {
	case FormatCSV:
		err = ToCSV(workouts, path)
	case FormatJSON:
		err = ToJSON(workouts, path)
	default:
		err = fmt.Errorf("unknown export format %q", f)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}
