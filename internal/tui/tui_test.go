package tui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/airframe/internal/config"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(model)
	}
	return m
}

func loaded(t *testing.T) model {
	t.Helper()
	m := newModel()
	if err := m.load("reference", config.DefaultConfig()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if m.err != nil {
		t.Fatalf("unexpected synthesis error: %v", m.err)
	}
	return m
}

func TestMenuSelect(t *testing.T) {
	m := newModel()
	if len(m.presets) == 0 {
		t.Fatal("expected presets in menu")
	}
	m = press(t, m, "j", "k", "enter")
	if m.state != stateEdit {
		t.Fatalf("expected edit state, got %d", m.state)
	}
	if m.selected != m.presets[0] {
		t.Errorf("expected %s, got %s", m.presets[0], m.selected)
	}
	if m.err != nil {
		t.Errorf("unexpected error: %v", m.err)
	}
}

func TestAdjustRecomputes(t *testing.T) {
	m := loaded(t)
	before := m.result.StaticMargin
	area := m.params["fin_area"]

	m = press(t, m, "right", "right")
	if got := m.params["fin_area"]; math.Abs(got-(area+0.004)) > 1e-12 {
		t.Errorf("expected fin_area %g, got %g", area+0.004, got)
	}
	if !(m.result.StaticMargin > before) {
		t.Errorf("expected larger fins to raise margin: %g -> %g", before, m.result.StaticMargin)
	}
	if len(m.margins) != 3 {
		t.Errorf("expected 3 margin samples, got %d", len(m.margins))
	}

	m = press(t, m, "r")
	if m.params["fin_area"] != area {
		t.Errorf("expected reset to %g, got %g", area, m.params["fin_area"])
	}
}

func TestEditValue(t *testing.T) {
	m := loaded(t)
	m = press(t, m, "enter")
	if !m.editing {
		t.Fatal("expected editing mode")
	}
	for range len(m.editBuf) {
		m = press(t, m, "backspace")
	}
	m = press(t, m, "0", ".", "0", "3", "x", "enter")
	if m.editing {
		t.Error("expected editing to end")
	}
	if m.params["fin_area"] != 0.03 {
		t.Errorf("expected 0.03, got %g", m.params["fin_area"])
	}
}

func TestEditEscapeKeepsValue(t *testing.T) {
	m := loaded(t)
	area := m.params["fin_area"]
	m = press(t, m, "enter", "9", "esc")
	if m.params["fin_area"] != area {
		t.Errorf("expected %g, got %g", area, m.params["fin_area"])
	}
}

func TestInvalidValueShowsError(t *testing.T) {
	m := loaded(t)
	m = press(t, m, "j", "j")
	if tunables[m.paramCursor].name != "fin_taper_ratio" {
		t.Fatalf("unexpected cursor %s", tunables[m.paramCursor].name)
	}
	for range 20 {
		m = press(t, m, "right")
	}
	if m.err == nil {
		t.Fatal("expected error for taper ratio above one")
	}
	if !strings.Contains(m.View(), "error") {
		t.Error("expected error in view")
	}

	m = press(t, m, "r")
	if m.err != nil {
		t.Errorf("expected reset to clear error, got %v", m.err)
	}
}

func TestMarginHistoryBounded(t *testing.T) {
	m := loaded(t)
	for range marginHistory + 10 {
		m = press(t, m, "right", "left")
	}
	if len(m.margins) != marginHistory {
		t.Errorf("expected %d samples, got %d", marginHistory, len(m.margins))
	}
}

func TestBackToMenu(t *testing.T) {
	m := loaded(t)
	m = press(t, m, "esc")
	if m.state != stateMenu {
		t.Error("expected menu state")
	}
	if !strings.Contains(m.View(), "AIRFRAME") {
		t.Error("expected menu view")
	}
}
