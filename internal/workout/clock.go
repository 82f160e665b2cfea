package workout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field counts accepted by ParseClock and FormatClock.
const (
	PaceFields     = 2 // mm:ss
	DurationFields = 3 // hh:mm:ss
)

// FormatError reports clock or distance text that cannot be parsed.
type FormatError struct {
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid value %q: %s", e.Text, e.Reason)
}

// RangeError reports a seconds value that cannot be rendered as a clock.
type RangeError struct {
	Seconds float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("cannot format %v seconds as clock", e.Seconds)
}

// ParseClock parses "mm:ss" or "hh:mm:ss" into seconds. Empty text is 0.
// When fields is DurationFields a two-field value is read as minutes and seconds.
func ParseClock(text string, fields int) (int64, error) {
	if fields != PaceFields && fields != DurationFields {
		return 0, fmt.Errorf("unsupported clock field count %d", fields)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}

	parts := strings.Split(text, ":")
	if fields == DurationFields && len(parts) == 2 {
		parts = append([]string{"00"}, parts...)
	}
	if len(parts) != 2 && len(parts) != 3 {
		return 0, &FormatError{Text: text, Reason: "expected mm:ss or hh:mm:ss"}
	}

	var total int64
	for i, p := range parts {
		if !digitsOnly(p) {
			return 0, &FormatError{Text: text, Reason: "non-numeric field"}
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return 0, &FormatError{Text: text, Reason: "field out of range"}
		}
		// Only the leading field may exceed 59.
		if i > 0 && v >= 60 {
			return 0, &FormatError{Text: text, Reason: fmt.Sprintf("field %q must be below 60", p)}
		}
		if total > (math.MaxInt64-v)/60 {
			return 0, &FormatError{Text: text, Reason: "field out of range"}
		}
		total = total*60 + v
	}
	return total, nil
}

// FormatClock renders seconds as "mm:ss" (PaceFields) or "hh:mm:ss" (DurationFields),
// rounded to the nearest second.
func FormatClock(seconds float64, fields int) (string, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "", &RangeError{Seconds: seconds}
	}
	total := int64(math.Round(seconds))
	switch fields {
	case PaceFields:
		return fmt.Sprintf("%02d:%02d", total/60, total%60), nil
	case DurationFields:
		return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60), nil
	}
	return "", fmt.Errorf("unsupported clock field count %d", fields)
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
