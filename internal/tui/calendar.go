package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/stride/internal/store"
	"github.com/sadopc/stride/internal/workout"
	"github.com/sirupsen/logrus"
)

const (
	sumColumnWidth = 12
	dayCellLines   = 4
)

type calendarModel struct {
	store  *store.Store
	width  int
	height int
	now    func() time.Time

	month     time.Time // first day of the shown month
	cursor    time.Time
	weekStart time.Weekday
	workouts  []workout.Workout
	templates []store.Template

	defaultType workout.SegmentType
	defaultPace string

	editing     bool
	editor      editorModel
	editingID   int64 // 0 while creating
	editingDate time.Time

	// Template picker state
	picking      bool
	pickerCursor int
}

func newCalendarModel(s *store.Store) calendarModel {
	c := calendarModel{
		store:       s,
		now:         time.Now,
		weekStart:   time.Monday,
		defaultType: workout.Easy,
	}
	c.cursor = workout.Day(c.now())
	c.month = firstOfMonth(c.cursor)
	return c
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func (c calendarModel) Init() tea.Cmd {
	return c.loadData()
}

func (c *calendarModel) setSize(w, h int) {
	c.width = w
	c.height = h
	c.editor.setSize(w - 8)
}

func (c calendarModel) formActive() bool { return c.editing || c.picking }

type calendarDataMsg struct {
	month       time.Time
	weekStart   time.Weekday
	workouts    []workout.Workout
	templates   []store.Template
	defaultType workout.SegmentType
	defaultPace string
}

func (c calendarModel) loadData() tea.Cmd {
	month := c.month
	return func() tea.Msg {
		weekStart := c.store.WeekStart()
		grid := workout.MonthGrid(month, weekStart)
		workouts, err := c.store.ListWorkoutsBetween(grid[0], grid[len(grid)-1])
		if err != nil {
			logrus.WithError(err).WithField("month", month.Format("2006-01")).Error("load calendar")
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		templates, _ := c.store.ListTemplates()

		msg := calendarDataMsg{
			month:       month,
			weekStart:   weekStart,
			workouts:    workouts,
			templates:   templates,
			defaultType: workout.Easy,
		}
		if v, err := c.store.GetSetting("default_segment_type"); err == nil {
			if t, err := workout.ParseSegmentType(v); err == nil {
				msg.defaultType = t
			}
		}
		msg.defaultPace, _ = c.store.GetSetting("default_pace")
		return msg
	}
}

func (c calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	if msg, ok := msg.(calendarDataMsg); ok {
		if !msg.month.Equal(c.month) {
			return c, nil
		}
		c.weekStart = msg.weekStart
		c.workouts = msg.workouts
		c.templates = msg.templates
		c.defaultType = msg.defaultType
		c.defaultPace = msg.defaultPace
		return c, nil
	}
	if c.editing {
		return c.updateEditor(msg)
	}

	switch msg := msg.(type) {
	case workoutsChangedMsg:
		return c, c.loadData()

	case tea.KeyMsg:
		if c.picking {
			return c.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Left):
			return c.moveCursor(c.cursor.AddDate(0, 0, -1))
		case key.Matches(msg, keys.Right):
			return c.moveCursor(c.cursor.AddDate(0, 0, 1))
		case key.Matches(msg, keys.Up):
			return c.moveCursor(c.cursor.AddDate(0, 0, -7))
		case key.Matches(msg, keys.Down):
			return c.moveCursor(c.cursor.AddDate(0, 0, 7))
		case key.Matches(msg, keys.PrevMonth):
			return c.moveCursor(c.month.AddDate(0, -1, 0))
		case key.Matches(msg, keys.NextMonth):
			return c.moveCursor(c.month.AddDate(0, 1, 0))
		case key.Matches(msg, keys.Today):
			return c.moveCursor(workout.Day(c.now()))
		case key.Matches(msg, keys.New):
			return c.openEditor(nil)
		case key.Matches(msg, keys.Enter):
			if w, ok := c.selected(); ok {
				return c.openEditor(&w)
			}
			return c.openEditor(nil)
		case key.Matches(msg, keys.Complete):
			return c.toggleCompleted()
		case key.Matches(msg, keys.Delete):
			return c.deleteSelected()
		case key.Matches(msg, keys.Apply):
			if len(c.templates) == 0 {
				return c, status("No templates yet. Press 2 to create one.")
			}
			c.picking = true
			c.pickerCursor = 0
			return c, nil
		}
	}
	return c, nil
}

// moveCursor selects date, switching month when it falls outside the shown one.
func (c calendarModel) moveCursor(date time.Time) (calendarModel, tea.Cmd) {
	c.cursor = workout.Day(date)
	month := firstOfMonth(c.cursor)
	if month.Equal(c.month) {
		return c, nil
	}
	c.month = month
	c.workouts = nil
	return c, c.loadData()
}

// selected returns the first workout on the cursor day.
func (c calendarModel) selected() (workout.Workout, bool) {
	day := workout.OnDay(c.workouts, c.cursor)
	if len(day) == 0 {
		return workout.Workout{}, false
	}
	return day[0], true
}

func (c calendarModel) openEditor(w *workout.Workout) (calendarModel, tea.Cmd) {
	title := "New workout " + workout.DateKey(c.cursor)
	c.editingID = 0
	c.editingDate = c.cursor
	name, desc := "", ""
	var segs []workout.Segment
	if w != nil {
		title = "Edit workout " + workout.DateKey(w.Date)
		c.editingID = w.ID
		c.editingDate = w.Date
		name, desc, segs = w.Name, w.Description, w.Segments
	}

	c.editor = newEditorModel(title, name, desc, segs, c.defaultType, c.defaultPace)
	c.editor.setSize(c.width - 8)
	c.editing = true
	return c, c.editor.Init()
}

func (c calendarModel) updateEditor(msg tea.Msg) (calendarModel, tea.Cmd) {
	var cmd tea.Cmd
	c.editor, cmd = c.editor.update(msg)
	if !c.editor.done() {
		return c, cmd
	}

	c.editing = false
	if c.editor.state == editorAborted {
		return c, nil
	}

	res, err := c.editor.result()
	if err != nil {
		return c, failed("Save failed", err, nil)
	}
	in := store.WorkoutInput{
		Date:        c.editingDate,
		Name:        res.name,
		Description: res.description,
		Segments:    res.segments,
	}
	fields := logrus.Fields{"date": workout.DateKey(in.Date), "workout_id": c.editingID}
	if c.editingID == 0 {
		if _, err := c.store.CreateWorkout(in); err != nil {
			return c, failed("Save failed", err, fields)
		}
	} else if err := c.store.UpdateWorkout(c.editingID, in); err != nil {
		return c, failed("Save failed", err, fields)
	}
	logrus.WithFields(fields).Info("workout saved")
	return c, tea.Batch(c.loadData(), status("Saved "+in.Name))
}

func (c calendarModel) toggleCompleted() (calendarModel, tea.Cmd) {
	w, ok := c.selected()
	if !ok {
		return c, nil
	}
	if err := c.store.SetWorkoutCompleted(w.ID, !w.Completed); err != nil {
		return c, failed("Update failed", err, logrus.Fields{"workout_id": w.ID})
	}
	return c, c.loadData()
}

func (c calendarModel) deleteSelected() (calendarModel, tea.Cmd) {
	w, ok := c.selected()
	if !ok {
		return c, nil
	}
	if err := c.store.DeleteWorkout(w.ID); err != nil {
		return c, failed("Delete failed", err, logrus.Fields{"workout_id": w.ID})
	}
	logrus.WithFields(logrus.Fields{"workout_id": w.ID, "date": workout.DateKey(w.Date)}).Info("workout deleted")
	return c, tea.Batch(c.loadData(), status("Deleted "+w.Name))
}

func (c calendarModel) updatePicker(msg tea.KeyMsg) (calendarModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if c.pickerCursor > 0 {
			c.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if c.pickerCursor < len(c.templates)-1 {
			c.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		c.picking = false
		t := c.templates[c.pickerCursor]
		if _, err := c.store.ScheduleTemplate(t.ID, c.cursor); err != nil {
			return c, failed("Schedule failed", err, logrus.Fields{"template_id": t.ID})
		}
		return c, tea.Batch(c.loadData(), status(fmt.Sprintf("Scheduled %s on %s", t.Name, workout.DateKey(c.cursor))))
	case key.Matches(msg, keys.Back):
		c.picking = false
	}
	return c, nil
}

func (c calendarModel) view() string {
	if c.width < 40 {
		return warningStyle.Render("Terminal too small")
	}
	w := c.width - 4

	if c.editing {
		return activePanelStyle.Width(w).Render(c.editor.view())
	}

	grid := c.renderGrid(w - 6)
	summary := c.renderMonthSummary(w - 6)
	content := lipgloss.JoinVertical(lipgloss.Left, grid, "", summary)

	if c.picking {
		return lipgloss.JoinVertical(lipgloss.Left,
			panelStyle.Width(w).Render(content),
			c.renderTemplatePicker(w),
		)
	}
	return panelStyle.Width(w).Render(content)
}

func (c calendarModel) renderGrid(inner int) string {
	cellW := max(6, (inner-sumColumnWidth)/7)
	days := workout.MonthGrid(c.month, c.weekStart)
	today := workout.Day(c.now())

	title := titleStyle.Render(fmt.Sprintf("%s %d", workout.MonthName(c.month.Month()), c.month.Year()))

	var head []string
	for _, h := range workout.WeekdayHeaders(c.weekStart) {
		head = append(head, mutedStyle.Width(cellW).Render(h))
	}
	head = append(head, mutedStyle.Width(sumColumnWidth).Render("Suma"))

	rows := []string{title, "", lipgloss.JoinHorizontal(lipgloss.Top, head...)}
	for _, week := range workout.Weeks(days) {
		var cells []string
		for _, d := range week {
			cells = append(cells, c.renderDay(d, today, cellW))
		}
		cells = append(cells, renderWeekSum(workout.WeekTotals(c.workouts, week).Bands()))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (c calendarModel) renderDay(d, today time.Time, cellW int) string {
	num := fmt.Sprintf("%2d", d.Day())
	switch {
	case workout.SameDay(d, today):
		num = todayStyle.Render(num)
	case d.Month() != c.month.Month():
		num = otherMonthDayStyle.Render(num)
	default:
		num = dayStyle.Render(num)
	}
	if workout.SameDay(d, c.cursor) {
		num = cursorDayStyle.Render(">") + num
	} else {
		num = " " + num
	}

	lines := []string{num}
	day := workout.OnDay(c.workouts, d)
	for i, w := range day {
		if len(lines) == dayCellLines-1 && len(day)-i > 1 {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf(" +%d", len(day)-i)))
			break
		}
		lines = append(lines, renderWorkoutLine(w, cellW))
	}
	return lipgloss.NewStyle().Width(cellW).Height(dayCellLines).Render(strings.Join(lines, "\n"))
}

func renderWorkoutLine(w workout.Workout, width int) string {
	var dots strings.Builder
	shown := 0
	for _, s := range w.Segments {
		if shown == 3 {
			break
		}
		dots.WriteString(colorDot(s.Type.Color()))
		shown++
	}
	name := truncate(w.Name, width-shown-2)
	if w.Completed {
		name = completedStyle.Render(name)
	}
	return " " + dots.String() + " " + name
}

func renderWeekSum(d workout.Distribution) string {
	var lines []string
	for _, s := range d.Shares {
		lines = append(lines, colorDot(s.Color())+" "+s.PercentText())
	}
	return lipgloss.NewStyle().Width(sumColumnWidth).Height(dayCellLines).Render(strings.Join(lines, "\n"))
}

func (c calendarModel) renderMonthSummary(inner int) string {
	month := c.month
	d := workout.AggregateWhere(c.workouts, func(t time.Time) bool {
		return t.Year() == month.Year() && t.Month() == month.Month()
	}).Bands()

	total := titleStyle.Render("Month") + "  " + highlightStyle.Render(formatKm(d.Total))
	rows := []string{total, distributionBar(d, max(10, inner)), renderLegend(d)}

	weeks := workout.Weeks(workout.MonthGrid(c.month, c.weekStart))
	if week, ok := workout.FindWeek(c.cursor, weeks); ok {
		wd := workout.WeekTotals(c.workouts, week).Bands()
		label := fmt.Sprintf("Week %s–%s", week[0].Format("02.01"), week[len(week)-1].Format("02.01"))
		rows = append(rows, "", titleStyle.Render(label)+"  "+highlightStyle.Render(formatKm(wd.Total)), renderLegend(wd))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// distributionBar draws a stacked bar with one colored run per band.
func distributionBar(d workout.Distribution, width int) string {
	if d.Total <= 0 {
		return mutedStyle.Render(strings.Repeat("░", width))
	}
	var b strings.Builder
	used := 0
	last := -1
	for i, s := range d.Shares {
		if s.HasData {
			last = i
		}
	}
	for i, s := range d.Shares {
		if !s.HasData {
			continue
		}
		n := int(math.Round(s.Distance / d.Total * float64(width)))
		if i == last {
			n = width - used
		}
		n = max(0, min(n, width-used))
		used += n
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color())).Render(strings.Repeat("█", n)))
	}
	return b.String()
}

func renderLegend(d workout.Distribution) string {
	var items []string
	for _, s := range d.Shares {
		items = append(items, fmt.Sprintf("%s %s %s", colorDot(s.Color()), s.Label(), s.PercentText()))
	}
	return strings.Join(items, "   ")
}

func (c calendarModel) renderTemplatePicker(w int) string {
	title := titleStyle.Render("Apply template on " + workout.DateKey(c.cursor))

	var rows []string
	rows = append(rows, title)
	for i, t := range c.templates {
		cursor := "  "
		style := normalItemStyle
		if i == c.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-24s %s", cursor, t.Name, formatKm(t.TotalDistance))))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: apply  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
