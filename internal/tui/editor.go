package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/stride/internal/workout"
)

type editorPhase int

const (
	phaseHeader editorPhase = iota
	phaseSegments
)

type editorState int

const (
	editorEditing editorState = iota
	editorSaved
	editorAborted
)

type editorColumn int

const (
	colType editorColumn = iota
	colDistance
	colPace
	colDuration
	colReps
	numColumns
)

func (c editorColumn) field() (workout.Field, bool) {
	switch c {
	case colDistance:
		return workout.FieldDistance, true
	case colPace:
		return workout.FieldPace, true
	case colDuration:
		return workout.FieldDuration, true
	}
	return 0, false
}

// editorModel edits a workout or template: a huh form for the header, then a
// grid of segments. Leaving a changed distance, pace or duration cell
// reconciles the other two.
type editorModel struct {
	title string
	width int
	phase editorPhase
	state editorState

	header      *huh.Form
	name        *string
	description *string

	segments []workout.SegmentForm
	row      int
	col      editorColumn
	input    textinput.Model

	defaultType workout.SegmentType
	defaultPace string

	err  string
	help help.Model
}

func newEditorModel(title, name, description string, segs []workout.Segment, defType workout.SegmentType, defPace string) editorModel {
	n, d := name, description
	if !defType.Valid() {
		defType = workout.Easy
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 10

	e := editorModel{
		title:       title,
		name:        &n,
		description: &d,
		input:       ti,
		defaultType: defType,
		defaultPace: defPace,
		help:        help.New(),
	}
	for _, s := range segs {
		e.segments = append(e.segments, workout.FormFromSegment(s))
	}
	if len(e.segments) == 0 {
		e.segments = append(e.segments, workout.NewSegmentForm(defType, defPace))
	}

	e.header = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(e.name).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("name is required")
				}
				return nil
			}),
			huh.NewText().Title("Description").Lines(3).Value(e.description),
		),
	).WithShowHelp(true).WithShowErrors(true)

	return e
}

func (e editorModel) Init() tea.Cmd {
	return e.header.Init()
}

func (e *editorModel) setSize(w int) {
	e.width = w
	e.help.Width = w
}

func (e editorModel) done() bool { return e.state != editorEditing }

func (e editorModel) update(msg tea.Msg) (editorModel, tea.Cmd) {
	if e.phase == phaseHeader {
		return e.updateHeader(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		e.input, cmd = e.input.Update(msg)
		return e, cmd
	}

	_, textCol := e.col.field()
	switch {
	case key.Matches(km, editorKeys.Cancel):
		e.state = editorAborted
		return e, nil
	case key.Matches(km, editorKeys.Save):
		e.commit()
		if _, err := e.result(); err != nil {
			e.err = err.Error()
			return e, nil
		}
		e.state = editorSaved
		return e, nil
	case key.Matches(km, editorKeys.Next):
		row, col := e.row, e.col+1
		if col == numColumns {
			row, col = row+1, colType
		}
		if row == len(e.segments) {
			row = 0
		}
		cmd := e.moveTo(row, col)
		return e, cmd
	case key.Matches(km, editorKeys.Prev):
		row, col := e.row, e.col-1
		if col < colType {
			row, col = row-1, numColumns-1
		}
		if row < 0 {
			row = len(e.segments) - 1
		}
		cmd := e.moveTo(row, col)
		return e, cmd
	case key.Matches(km, editorKeys.Up):
		if e.row > 0 {
			cmd := e.moveTo(e.row-1, e.col)
			return e, cmd
		}
		return e, nil
	case key.Matches(km, editorKeys.Down):
		if e.row < len(e.segments)-1 {
			cmd := e.moveTo(e.row+1, e.col)
			return e, cmd
		}
		return e, nil
	case key.Matches(km, editorKeys.AddSegment):
		e.commit()
		e.segments = append(e.segments, workout.NewSegmentForm(e.defaultType, e.defaultPace))
		cmd := e.moveTo(len(e.segments)-1, colDistance)
		return e, cmd
	case key.Matches(km, editorKeys.DelSegment):
		if len(e.segments) > 1 {
			e.segments = append(e.segments[:e.row], e.segments[e.row+1:]...)
			e.row = min(e.row, len(e.segments)-1)
			cmd := e.load()
			return e, cmd
		}
		return e, nil
	case !textCol && key.Matches(km, editorKeys.Left):
		e.step(-1)
		return e, nil
	case !textCol && key.Matches(km, editorKeys.Right):
		e.step(1)
		return e, nil
	}

	if textCol {
		var cmd tea.Cmd
		e.input, cmd = e.input.Update(msg)
		return e, cmd
	}
	return e, nil
}

func (e editorModel) updateHeader(msg tea.Msg) (editorModel, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		e.state = editorAborted
		return e, nil
	}

	form, cmd := e.header.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.header = f
	}

	switch e.header.State {
	case huh.StateCompleted:
		e.phase = phaseSegments
		cmd := e.moveTo(0, colType)
		return e, cmd
	case huh.StateAborted:
		e.state = editorAborted
		return e, nil
	}
	return e, cmd
}

// moveTo leaves the current cell, reconciling it if changed, and focuses row/col.
func (e *editorModel) moveTo(row int, col editorColumn) tea.Cmd {
	e.commit()
	e.row, e.col = row, col
	return e.load()
}

// load copies the focused cell into the text input.
func (e *editorModel) load() tea.Cmd {
	field, ok := e.col.field()
	if !ok {
		e.input.Blur()
		return nil
	}
	e.input.SetValue(e.segments[e.row].Value(field))
	e.input.CursorEnd()
	return e.input.Focus()
}

// commit writes the text input back to the focused segment. A changed value
// is reconciled against the other two linked fields.
func (e *editorModel) commit() {
	field, ok := e.col.field()
	if !ok || e.row >= len(e.segments) {
		return
	}
	form := e.segments[e.row]
	v := strings.TrimSpace(e.input.Value())
	if v == form.Value(field) {
		return
	}
	form = form.With(field, v)

	upd, err := workout.Reconcile(form, field)
	if err != nil {
		e.err = fmt.Sprintf("segment %d %s: %v", e.row+1, field, err)
		e.segments[e.row] = form
		return
	}
	e.err = ""
	e.segments[e.row] = upd.Apply(form)
}

// step cycles the segment type or changes repetitions.
func (e *editorModel) step(delta int) {
	form := &e.segments[e.row]
	switch e.col {
	case colType:
		idx := 0
		for i, t := range workout.SegmentTypes {
			if t == form.Type {
				idx = i
			}
		}
		n := len(workout.SegmentTypes)
		form.Type = workout.SegmentTypes[(idx+delta+n)%n]
	case colReps:
		form.Repetitions = max(1, form.Repetitions+delta)
	}
}

type editorResult struct {
	name        string
	description string
	segments    []workout.Segment
}

func (e editorModel) result() (editorResult, error) {
	r := editorResult{
		name:        strings.TrimSpace(*e.name),
		description: strings.TrimSpace(*e.description),
	}
	if r.name == "" {
		return r, errors.New("name is required")
	}
	for i, f := range e.segments {
		seg, err := f.Segment()
		if err != nil {
			return r, fmt.Errorf("segment %d: %w", i+1, err)
		}
		r.segments = append(r.segments, seg)
	}
	return r, nil
}

func (e editorModel) view() string {
	title := titleStyle.Render(e.title)
	if e.phase == phaseHeader {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", e.header.View())
	}

	var rows []string
	rows = append(rows, title+"  "+highlightStyle.Render(*e.name))
	if *e.description != "" {
		rows = append(rows, subtitleStyle.Render(truncate(*e.description, max(10, e.width-6))))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-3s %-14s %-10s %-8s %-10s %-5s", "#", "Type", "Km", "Pace", "Duration", "Reps")))

	for i, f := range e.segments {
		rows = append(rows, e.renderRow(i, f))
		if f.Repetitions > 1 {
			if t, ok := workout.RepetitionTotals(f.Distance, f.Duration, f.Repetitions); ok {
				rows = append(rows, mutedStyle.Render(fmt.Sprintf("      total %s km  %s", t.Distance, t.Duration)))
			}
		}
	}

	rows = append(rows, "")
	rows = append(rows, e.renderTotals())
	if e.err != "" {
		rows = append(rows, errorStyle.Render(e.err))
	}
	rows = append(rows, "", e.help.View(editorKeys))

	return strings.Join(rows, "\n")
}

func (e editorModel) renderRow(i int, f workout.SegmentForm) string {
	cell := func(col editorColumn, text string, width int) string {
		if i == e.row && col == e.col {
			if _, ok := col.field(); ok {
				text = e.input.View()
			}
			return activeFieldStyle.Render(fmt.Sprintf("%-*s", width, "["+text+"]"))
		}
		if text == "" {
			text = "--"
		}
		return normalItemStyle.Render(fmt.Sprintf("%-*s", width, " "+text))
	}

	cursor := "  "
	if i == e.row {
		cursor = "> "
	}
	typeText := colorDot(f.Type.Color()) + " " + f.Type.Name()
	if i == e.row && e.col == colType {
		typeText = activeFieldStyle.Render("‹"+f.Type.Name()+"›")
		typeText = colorDot(f.Type.Color()) + " " + typeText
	}

	return fmt.Sprintf("%s%-3d %s %s %s %s %s",
		cursor, i+1,
		lipgloss.NewStyle().Width(14).Render(typeText),
		cell(colDistance, f.Distance, 10),
		cell(colPace, f.Pace, 8),
		cell(colDuration, f.Duration, 10),
		cell(colReps, fmt.Sprintf("x%d", f.Repetitions), 5),
	)
}

func (e editorModel) renderTotals() string {
	var w workout.Workout
	for _, f := range e.segments {
		if seg, err := f.Segment(); err == nil {
			w.Segments = append(w.Segments, seg)
		}
	}
	return fmt.Sprintf("Total %s  %s", highlightStyle.Render(formatKm(w.Distance())), highlightStyle.Render(formatSeconds(w.Duration())))
}
