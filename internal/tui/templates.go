package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/stride/internal/store"
	"github.com/sadopc/stride/internal/workout"
	"github.com/sirupsen/logrus"
)

type templatesModel struct {
	store  *store.Store
	width  int
	height int

	templates []store.Template
	cursor    int
	target    time.Time // day enter schedules onto

	formActive bool
	editor     editorModel
}

func newTemplatesModel(s *store.Store) templatesModel {
	return templatesModel{
		store:  s,
		target: workout.Day(time.Now()),
	}
}

func (t *templatesModel) setSize(w, h int) {
	t.width = w
	t.height = h
	t.editor.setSize(w - 8)
}

type templatesDataMsg struct {
	templates []store.Template
}

func (t templatesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		templates, err := t.store.ListTemplates()
		if err != nil {
			logrus.WithError(err).Error("list templates")
		}
		return templatesDataMsg{templates: templates}
	}
}

func (t templatesModel) update(msg tea.Msg) (templatesModel, tea.Cmd) {
	if t.formActive {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case templatesDataMsg:
		t.templates = msg.templates
		if t.cursor >= len(t.templates) {
			t.cursor = max(0, len(t.templates)-1)
		}
		return t, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
			}
		case key.Matches(msg, keys.Down):
			if t.cursor < len(t.templates)-1 {
				t.cursor++
			}
		case key.Matches(msg, keys.New):
			return t.showNewTemplateForm()
		case key.Matches(msg, keys.Delete):
			if len(t.templates) > 0 {
				tpl := t.templates[t.cursor]
				if err := t.store.DeleteTemplate(tpl.ID); err != nil {
					return t, failed("Delete failed", err, logrus.Fields{"template_id": tpl.ID})
				}
				return t, t.refresh()
			}
		case key.Matches(msg, keys.Enter):
			if len(t.templates) > 0 {
				return t.schedule(t.templates[t.cursor])
			}
		}
	}
	return t, nil
}

func (t templatesModel) schedule(tpl store.Template) (templatesModel, tea.Cmd) {
	if _, err := t.store.ScheduleTemplate(tpl.ID, t.target); err != nil {
		return t, failed("Schedule failed", err, logrus.Fields{"template_id": tpl.ID})
	}
	logrus.WithFields(logrus.Fields{"template_id": tpl.ID, "date": workout.DateKey(t.target)}).Info("template scheduled")
	return t, tea.Batch(
		func() tea.Msg { return workoutsChangedMsg{} },
		status(fmt.Sprintf("Scheduled %s on %s", tpl.Name, workout.DateKey(t.target))),
	)
}

func (t templatesModel) showNewTemplateForm() (templatesModel, tea.Cmd) {
	defType := workout.Easy
	if v, err := t.store.GetSetting("default_segment_type"); err == nil {
		if st, err := workout.ParseSegmentType(v); err == nil {
			defType = st
		}
	}
	defPace, _ := t.store.GetSetting("default_pace")

	t.editor = newEditorModel("New template", "", "", nil, defType, defPace)
	t.editor.setSize(t.width - 8)
	t.formActive = true
	return t, t.editor.Init()
}

func (t templatesModel) updateForm(msg tea.Msg) (templatesModel, tea.Cmd) {
	var cmd tea.Cmd
	t.editor, cmd = t.editor.update(msg)
	if !t.editor.done() {
		return t, cmd
	}

	t.formActive = false
	if t.editor.state == editorAborted {
		return t, nil
	}
	res, err := t.editor.result()
	if err != nil {
		return t, failed("Save failed", err, nil)
	}
	if _, err := t.store.CreateTemplate(res.name, res.description, res.segments); err != nil {
		return t, failed("Save failed", err, logrus.Fields{"template": res.name})
	}
	return t, tea.Batch(t.refresh(), status("Saved template "+res.name))
}

func (t templatesModel) view() string {
	w := t.width - 4
	if t.formActive {
		return activePanelStyle.Width(w).Render(t.editor.view())
	}

	title := titleStyle.Render("Templates")
	if len(t.templates) == 0 {
		return panelStyle.Width(w).Render(strings.Join([]string{
			title,
			"",
			mutedStyle.Render("No templates yet. Press n to create one."),
		}, "\n"))
	}

	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-26s %10s %10s %9s", "Name", "Distance", "Duration", "Segments")))

	for i, tpl := range t.templates {
		cursor := "  "
		style := normalItemStyle
		if i == t.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-26s %10s %10s %9d",
			cursor, truncate(tpl.Name, 26), formatKm(tpl.TotalDistance), formatSeconds(tpl.TotalDuration), len(tpl.Segments))))
	}

	rows = append(rows, "")
	rows = append(rows, t.renderSegments(t.templates[t.cursor]))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  n: new  d: delete  enter: schedule on %s", workout.DateKey(t.target))))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (t templatesModel) renderSegments(tpl store.Template) string {
	var rows []string
	if tpl.Description != "" {
		rows = append(rows, mutedStyle.Render("  "+tpl.Description))
	}
	for _, s := range tpl.Segments {
		f := workout.FormFromSegment(s)
		line := fmt.Sprintf("  %s %-11s %8s km  %5s /km  %8s", colorDot(s.Type.Color()), s.Type.Name(), f.Distance, f.Pace, f.Duration)
		if s.Reps() > 1 {
			line += mutedStyle.Render(fmt.Sprintf("  x%d", s.Reps()))
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}
