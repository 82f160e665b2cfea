package workout

import (
	"math"
	"strings"
)

// Totals is the "across all repetitions" preview of one segment.
type Totals struct {
	Distance string // km, two decimals
	Duration string // hh:mm:ss
}

// RepetitionTotals multiplies a segment's distance and duration by reps.
// ok is false when either value is missing or unparseable, or the duration is zero.
func RepetitionTotals(distance, duration string, reps int) (t Totals, ok bool) {
	if strings.TrimSpace(distance) == "" || strings.TrimSpace(duration) == "" {
		return Totals{}, false
	}
	km, err := ParseDistance(distance)
	if err != nil {
		return Totals{}, false
	}
	secs, err := ParseClock(duration, DurationFields)
	if err != nil || secs == 0 {
		return Totals{}, false
	}
	if reps < 1 {
		reps = 1
	}
	if secs > math.MaxInt64/int64(reps) {
		return Totals{}, false
	}
	total, err := FormatClock(float64(secs*int64(reps)), DurationFields)
	if err != nil {
		return Totals{}, false
	}
	return Totals{
		Distance: FormatDistance(km * float64(reps)),
		Duration: total,
	}, true
}
