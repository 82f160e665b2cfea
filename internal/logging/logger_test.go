package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestGetLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"DEBUG":   logrus.DebugLevel,
		"warn":    logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"trace":   logrus.TraceLevel,
		"info":    logrus.InfoLevel,
		"":        logrus.InfoLevel,
		"unknown": logrus.InfoLevel,
	}
	for in, want := range tests {
		if got := GetLevel(in); got != want {
			t.Errorf("GetLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "stride")
	closer, err := Setup(Params{FileName: path, Level: "debug", FormatJSON: true})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })

	logrus.WithField("workout_id", 7).Debug("saved workout")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path + ".log")
	if err != nil {
		t.Fatalf("expected .log suffix to be added: %v", err)
	}
	if !strings.Contains(string(data), `"workout_id":7`) {
		t.Fatalf("expected JSON field in log, got %q", data)
	}
}

func TestSetupNoFileDiscards(t *testing.T) {
	closer, err := Setup(Params{Level: "info"})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { logrus.SetOutput(os.Stderr) })
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}
	if logrus.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level = %v", logrus.GetLevel())
	}
}
