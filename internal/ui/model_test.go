package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Comm4nd0/Even-G2-Guitar-Tuner/internal/tuner"
)

func gaugeMarker(t *testing.T, rendered string) int {
	t.Helper()
	open := strings.IndexRune(rendered, '[')
	end := strings.IndexRune(rendered, ']')
	if open < 0 || end < open {
		t.Fatalf("malformed gauge: %q", rendered)
	}
	inner := rendered[open+1 : end]
	pos := strings.IndexRune(inner, 'o')
	if pos < 0 {
		t.Fatalf("no marker in gauge: %q", rendered)
	}
	return pos
}

func TestRenderGauge(t *testing.T) {
	if pos := gaugeMarker(t, renderGauge(0, 21)); pos != 10 {
		t.Fatalf("expected centered marker at 10, got %d", pos)
	}
	if pos := gaugeMarker(t, renderGauge(-50, 21)); pos != 0 {
		t.Fatalf("expected leftmost marker when 50 cents flat, got %d", pos)
	}
	if pos := gaugeMarker(t, renderGauge(50, 21)); pos != 20 {
		t.Fatalf("expected rightmost marker when 50 cents sharp, got %d", pos)
	}

	// Out-of-band values clamp instead of escaping the strip
	if pos := gaugeMarker(t, renderGauge(120, 21)); pos != 20 {
		t.Fatalf("expected clamp at right edge, got %d", pos)
	}

	// The target mark stays visible when the pitch is off center
	if !strings.ContainsRune(renderGauge(25, 21), '|') {
		t.Fatalf("expected target mark in off-center gauge")
	}
}

func TestModelShowsResult(t *testing.T) {
	m := NewModel(tuner.TuningModes[0], nil)

	updated, _ := m.Update(ResultMsg(tuner.Result{
		Frequency: 440,
		NoteName:  "A",
		Octave:    4,
		InTune:    true,
	}))
	view := updated.(Model).View()

	if !strings.Contains(view, "A4") {
		t.Fatalf("expected note A4 in view")
	}
	if !strings.Contains(view, "440.00 Hz") {
		t.Fatalf("expected frequency readout in view")
	}
}

func TestModelClears(t *testing.T) {
	m := NewModel(tuner.TuningModes[0], nil)

	withResult, _ := m.Update(ResultMsg(tuner.Result{NoteName: "A", Octave: 4}))
	cleared, _ := withResult.(Model).Update(ClearMsg{})
	view := cleared.(Model).View()

	if !strings.Contains(view, "Listening") {
		t.Fatalf("expected listening prompt after clear")
	}
}

func TestModelEmitsTuningCommands(t *testing.T) {
	commands := make(chan TuningCommand, 1)
	m := NewModel(tuner.TuningModes[0], commands)

	press := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}
	m.Update(press)
	// Channel full: the second press must be dropped, not block the UI
	m.Update(press)

	select {
	case cmd := <-commands:
		if cmd != NextTuning {
			t.Fatalf("expected NextTuning, got %v", cmd)
		}
	default:
		t.Fatalf("expected a queued tuning command")
	}

	select {
	case cmd := <-commands:
		t.Fatalf("expected dropped command, got %v", cmd)
	default:
	}
}

func TestModelTracksTuningChange(t *testing.T) {
	m := NewModel(tuner.TuningModes[0], nil)

	updated, _ := m.Update(TuningMsg(tuner.TuningModes[4]))
	if !strings.Contains(updated.(Model).View(), "DADGAD") {
		t.Fatalf("expected active tuning name in view")
	}
}
