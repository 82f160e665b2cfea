package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/stride/internal/store"
	"github.com/sadopc/stride/internal/workout"
	"github.com/sirupsen/logrus"
)

var settingLabels = map[string]string{
	"week_start":           "Week starts on",
	"default_segment_type": "Default segment type",
	"default_pace":         "Default pace (min/km)",
}

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	weekStart   *string
	segmentType *string
	defaultPace *string
}

func newSettingsModel(s *store.Store) settingsModel {
	ws, st, dp := "", "", ""
	return settingsModel{
		store:       s,
		weekStart:   &ws,
		segmentType: &st,
		defaultPace: &dp,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func validatePace(v string) error {
	_, err := workout.ParseClock(v, workout.PaceFields)
	return err
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.weekStart = s.getVal("week_start", "monday")
	*s.segmentType = s.getVal("default_segment_type", string(workout.Easy))
	*s.defaultPace = s.getVal("default_pace", "06:00")

	typeOptions := make([]huh.Option[string], len(workout.SegmentTypes))
	for i, t := range workout.SegmentTypes {
		typeOptions[i] = huh.NewOption(t.Name(), string(t))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Monday", "monday"),
					huh.NewOption("Sunday", "sunday"),
				).Value(s.weekStart),
			huh.NewSelect[string]().Title("Default segment type").Options(typeOptions...).Value(s.segmentType),
			huh.NewInput().Title("Default pace (mm:ss per km)").Value(s.defaultPace).Validate(validatePace),
		).Title("Planner"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if err := s.saveSettings(); err != nil {
			return s, failed("Save settings failed", err, nil)
		}
		return s, tea.Batch(s.refresh(), func() tea.Msg { return workoutsChangedMsg{} })
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	values := map[string]string{
		"week_start":           *s.weekStart,
		"default_segment_type": *s.segmentType,
		"default_pace":         *s.defaultPace,
	}
	for k, v := range values {
		if err := s.store.SetSetting(k, v); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	logrus.WithFields(logrus.Fields{"week_start": *s.weekStart, "default_pace": *s.defaultPace}).Info("settings saved")
	return nil
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		name := setting.Key
		if l, ok := settingLabels[setting.Key]; ok {
			name = l
		}
		label := lipgloss.NewStyle().Width(24).Render(name)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case "week_start":
		if v == "sunday" {
			return "Sunday"
		}
		return "Monday"
	case "default_segment_type":
		return workout.SegmentType(v).Name()
	case "default_pace":
		return v + " /km"
	}
	return v
}
