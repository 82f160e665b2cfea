package workout

import "time"

// DateLayout is the storage and query format of workout dates.
const DateLayout = "2006-01-02"

// DateKey formats t as YYYY-MM-DD.
func DateKey(t time.Time) string { return t.Format(DateLayout) }

// ParseDateKey parses YYYY-MM-DD in the local time zone.
func ParseDateKey(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfWeek returns the first day of the week containing t.
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	day := Day(t)
	diff := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -diff)
}

// MonthGrid returns every day from the start of the week containing the first
// of month through the end of the week containing its last day.
func MonthGrid(month time.Time, weekStart time.Weekday) []time.Time {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	last := first.AddDate(0, 1, -1)
	start := StartOfWeek(first, weekStart)
	end := StartOfWeek(last, weekStart).AddDate(0, 0, 6)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Weeks splits days into consecutive chunks of seven.
func Weeks(days []time.Time) [][]time.Time {
	var weeks [][]time.Time
	for i := 0; i < len(days); i += 7 {
		weeks = append(weeks, days[i:min(i+7, len(days))])
	}
	return weeks
}

// FindWeek returns the chunk of weeks that contains date.
func FindWeek(date time.Time, weeks [][]time.Time) ([]time.Time, bool) {
	for _, week := range weeks {
		if ContainsDay(week, date) {
			return week, true
		}
	}
	return nil, false
}

// ContainsDay reports whether date is one of days.
func ContainsDay(days []time.Time, date time.Time) bool {
	for _, d := range days {
		if SameDay(d, date) {
			return true
		}
	}
	return false
}

// OnDay returns the workouts scheduled on date.
func OnDay(workouts []Workout, date time.Time) []Workout {
	var out []Workout
	for _, w := range workouts {
		if SameDay(w.Date, date) {
			out = append(out, w)
		}
	}
	return out
}

// WeekTotals aggregates the workouts that fall within week.
func WeekTotals(workouts []Workout, week []time.Time) TypeTotals {
	return AggregateWhere(workouts, func(d time.Time) bool { return ContainsDay(week, d) })
}

var monthNames = [...]string{
	"Styczeń", "Luty", "Marzec", "Kwiecień", "Maj", "Czerwiec",
	"Lipiec", "Sierpień", "Wrzesień", "Październik", "Listopad", "Grudzień",
}

// MonthName returns the Polish name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return m.String()
	}
	return monthNames[m-1]
}

var weekdayShort = map[time.Weekday]string{
	time.Monday: "Pn", time.Tuesday: "Wt", time.Wednesday: "Śr", time.Thursday: "Czw",
	time.Friday: "Pt", time.Saturday: "Sb", time.Sunday: "Ndz",
}

// WeekdayHeaders returns short Polish day names starting at weekStart.
func WeekdayHeaders(weekStart time.Weekday) []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = weekdayShort[time.Weekday((int(weekStart)+i)%7)]
	}
	return out
}
