package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/binrec/errors"
	"github.com/wippyai/binrec/layout"
	"github.com/wippyai/binrec/record"
)

func newTestEditor(t *testing.T) *editorModel {
	t.Helper()
	l, err := layout.Compile("uint16 packetId", "cstring packetType[4]")
	if err != nil {
		t.Fatal(err)
	}
	r := record.New(l, record.BigEndian)
	if err := r.Set("packetId", 1); err != nil {
		t.Fatal(err)
	}
	return newEditorModel("order", r)
}

func press(m *editorModel, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func TestEditorNavigation(t *testing.T) {
	m := newTestEditor(t)

	press(m, "up")
	if m.selected != 0 {
		t.Errorf("up at top moved to %d", m.selected)
	}
	press(m, "down")
	press(m, "down")
	if m.selected != 1 {
		t.Errorf("selected = %d, want 1", m.selected)
	}
	press(m, "k")
	if m.selected != 0 {
		t.Errorf("k: selected = %d, want 0", m.selected)
	}
}

func TestEditorEditField(t *testing.T) {
	m := newTestEditor(t)

	press(m, "enter")
	if m.state != stateEdit {
		t.Fatalf("state = %v, want edit", m.state)
	}
	if m.input.Value() != "1" {
		t.Errorf("input prefilled with %q, want current value", m.input.Value())
	}

	m.input.SetValue("0x0203")
	press(m, "enter")
	if m.state != stateBrowse {
		t.Errorf("state after apply = %v", m.state)
	}
	if m.err != nil {
		t.Fatalf("apply: %v", m.err)
	}
	if got := m.rec.Bytes()[:2]; got[0] != 0x02 || got[1] != 0x03 {
		t.Errorf("bytes = % x", got)
	}

	press(m, "down")
	press(m, "enter")
	m.input.SetValue("sell")
	press(m, "enter")
	if got, _ := m.rec.Text("packetType"); got != "sel" {
		t.Errorf("packetType = %q, want truncated %q", got, "sel")
	}
}

func TestEditorCancelAndInvalid(t *testing.T) {
	m := newTestEditor(t)

	press(m, "enter")
	m.input.SetValue("99")
	press(m, "esc")
	if got, _ := m.rec.Uint("packetId"); got != 1 {
		t.Errorf("esc applied the edit: packetId = %d", got)
	}

	press(m, "enter")
	m.input.SetValue("many")
	press(m, "enter")
	if !errors.IsKind(m.err, errors.KindTypeMismatch) {
		t.Errorf("expected type mismatch, got %v", m.err)
	}
	if !strings.Contains(m.View(), "Error:") {
		t.Error("view does not show the error")
	}
}

func TestEditorQuitOnlyWhileBrowsing(t *testing.T) {
	m := newTestEditor(t)

	press(m, "enter")
	press(m, "q")
	if m.state != stateEdit {
		t.Fatalf("q left edit mode")
	}
	if !strings.Contains(m.input.Value(), "q") {
		t.Errorf("q not typed into input: %q", m.input.Value())
	}

	press(m, "esc")
	cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("q while browsing returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q while browsing did not quit")
	}
}

func TestEditorView(t *testing.T) {
	m := newTestEditor(t)

	view := m.View()
	for _, want := range []string{"order", "6 bytes", "packetId", "packetType", "uint16", "= 1", "00010000"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	press(m, "b")
	if m.mode != record.RenderBinary {
		t.Fatalf("mode = %s, want binary", m.mode)
	}
	if !strings.Contains(m.View(), "0000000000000001") {
		t.Error("binary view missing rendered bytes")
	}
	press(m, "b")
	if m.mode != record.RenderHex {
		t.Errorf("mode = %s, want hex", m.mode)
	}
}

func TestEditCommandNeedsTerminal(t *testing.T) {
	prev := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = prev }()

	path := writeFile(t, "order.yaml", orderPacketYAML)
	_, err := execute(t, "edit", "-f", path)
	if !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}
