package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/stride/internal/workout"
	"github.com/sirupsen/logrus"
)

// viewState represents the currently active view.
type viewState int

const (
	viewCalendar viewState = iota
	viewTemplates
	viewStats
	viewSettings
)

var viewNames = []string{"Calendar", "Templates", "Stats", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// workoutsChangedMsg tells the calendar and stats views to reload.
type workoutsChangedMsg struct{}

// --- Helpers ---

// failed logs err with fields and returns a status message for the footer.
func failed(action string, err error, fields logrus.Fields) tea.Cmd {
	logrus.WithError(err).WithFields(fields).Error(action)
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("%s: %v", action, err), isError: true}
	}
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func formatSeconds(secs int64) string {
	s, err := workout.FormatClock(float64(secs), workout.DurationFields)
	if err != nil {
		return "--:--:--"
	}
	return s
}

func formatKm(km float64) string {
	return workout.FormatDistance(km) + " km"
}

func truncate(s string, w int) string {
	r := []rune(s)
	if w <= 0 {
		return ""
	}
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(r[:w-1]) + "…"
}
