package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/stride/internal/store"
	"github.com/sadopc/stride/internal/workout"
	"github.com/sirupsen/logrus"
)

type statsModel struct {
	store  *store.Store
	width  int
	height int

	month     time.Time
	weekStart time.Weekday
	workouts  []workout.Workout

	chart barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store:     s,
		month:     firstOfMonth(time.Now()),
		weekStart: time.Monday,
		chart:     barchart.New(60, 12),
	}
}

func (r *statsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type statsDataMsg struct {
	month     time.Time
	weekStart time.Weekday
	workouts  []workout.Workout
}

func (r statsModel) refresh() tea.Cmd {
	month := r.month
	return func() tea.Msg {
		weekStart := r.store.WeekStart()
		grid := workout.MonthGrid(month, weekStart)
		workouts, err := r.store.ListWorkoutsBetween(grid[0], grid[len(grid)-1])
		if err != nil {
			logrus.WithError(err).WithField("month", month.Format("2006-01")).Error("load stats")
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		return statsDataMsg{month: month, weekStart: weekStart, workouts: workouts}
	}
}

func (r statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		if !msg.month.Equal(r.month) {
			return r, nil
		}
		r.weekStart = msg.weekStart
		r.workouts = msg.workouts
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left), key.Matches(msg, keys.PrevMonth):
			r.month = r.month.AddDate(0, -1, 0)
			return r, r.refresh()
		case key.Matches(msg, keys.Right), key.Matches(msg, keys.NextMonth):
			r.month = r.month.AddDate(0, 1, 0)
			return r, r.refresh()
		case key.Matches(msg, keys.Today):
			r.month = firstOfMonth(time.Now())
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r statsModel) weeks() [][]time.Time {
	return workout.Weeks(workout.MonthGrid(r.month, r.weekStart))
}

func (r *statsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, week := range r.weeks() {
		d := workout.WeekTotals(r.workouts, week).Bands()

		var values []barchart.BarValue
		for _, s := range d.Shares {
			if !s.HasData {
				continue
			}
			values = append(values, barchart.BarValue{
				Name:  s.Label(),
				Value: s.Distance,
				Style: lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color())),
			})
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  week[0].Format("02.01"),
			Values: values,
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r statsModel) monthDistribution() workout.Distribution {
	month := r.month
	return workout.AggregateWhere(r.workouts, func(t time.Time) bool {
		return t.Year() == month.Year() && t.Month() == month.Month()
	}).Bands()
}

// completedCount counts the month's workouts marked done and planned.
func (r statsModel) completedCount() (done, planned int) {
	for _, w := range r.workouts {
		if w.Date.Year() != r.month.Year() || w.Date.Month() != r.month.Month() {
			continue
		}
		planned++
		if w.Completed {
			done++
		}
	}
	return done, planned
}

func (r statsModel) view() string {
	w := r.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ",
		highlightStyle.Render(fmt.Sprintf("%s %d", workout.MonthName(r.month.Month()), r.month.Year())),
	)

	d := r.monthDistribution()
	month := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s  %s", titleStyle.Render("Month"), highlightStyle.Render(formatKm(d.Total))),
		distributionBar(d, max(10, w-8)),
		renderLegend(d),
	)

	nav := mutedStyle.Render("  ←/→: month  t: current month")
	done, planned := r.completedCount()
	completed := fmt.Sprintf("%s  %s", titleStyle.Render("Completed"), successStyle.Render(fmt.Sprintf("%d/%d", done, planned)))

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", r.renderWeekTable(), "", month, "", r.renderTypeTable(), "", completed, "", nav,
		),
	)
}

func (r statsModel) renderWeekTable() string {
	var rows []string
	head := fmt.Sprintf("  %-13s %10s", "Week", "Distance")
	for _, b := range workout.Bands {
		head += fmt.Sprintf("  %-8s", b.Label())
	}
	rows = append(rows, mutedStyle.Render(head))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(max(r.width-10, 10), 56))))

	for _, week := range r.weeks() {
		d := workout.WeekTotals(r.workouts, week).Bands()
		line := fmt.Sprintf("  %-13s %10s", week[0].Format("02.01")+"–"+week[len(week)-1].Format("02.01"), formatKm(d.Total))
		for _, s := range d.Shares {
			line += "  " + colorDot(s.Color()) + fmt.Sprintf(" %-6s", s.PercentText())
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (r statsModel) renderTypeTable() string {
	month := r.month
	totals := workout.AggregateWhere(r.workouts, func(t time.Time) bool {
		return t.Year() == month.Year() && t.Month() == month.Month()
	})

	var items []string
	for _, t := range workout.SegmentTypes {
		items = append(items, fmt.Sprintf("%s %s %s", colorDot(t.Color()), t.Name(), formatKm(totals[t])))
	}
	return "  " + strings.Join(items, "   ")
}
