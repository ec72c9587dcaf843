package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/binrec/errors"
	"github.com/wippyai/binrec/layout"
	"github.com/wippyai/binrec/record"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F5F5F5")).
			Background(lipgloss.Color("#2E5E8C")).
			Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E0C872"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7FB2D9"))

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2E5E8C")).
			Bold(true)

	bytesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8D8A8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E06C75"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777"))
)

// isTerminal reports whether stdout is attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func (a *app) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit a record interactively and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal() {
				return errors.InvalidInput(errors.PhaseConfig, "edit needs an interactive terminal")
			}
			f, r, err := a.load()
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(newEditorModel(f.Name, r), tea.WithAltScreen()).Run()
			if err != nil {
				return err
			}
			m := final.(*editorModel)
			out, err := m.rec.Render(m.mode)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

type editorState int

const (
	stateBrowse editorState = iota
	stateEdit
)

// editorModel lists the record's fields and edits one at a time. The rendered
// bytes are redrawn after every change.
type editorModel struct {
	err      error
	rec      *record.Record
	name     string
	mode     record.RenderMode
	entries  []layout.Entry
	input    textinput.Model
	selected int
	state    editorState
}

func newEditorModel(name string, r *record.Record) *editorModel {
	return &editorModel{
		rec:     r,
		name:    name,
		mode:    record.RenderHex,
		entries: r.Layout().Entries(),
		state:   stateBrowse,
	}
}

func (m *editorModel) Init() tea.Cmd {
	return nil
}

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateEdit {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.state = stateBrowse
			return m, nil
		case "enter":
			m.commit()
			m.state = stateBrowse
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.entries)-1 {
			m.selected++
		}

	case "b":
		if m.mode == record.RenderHex {
			m.mode = record.RenderBinary
		} else {
			m.mode = record.RenderHex
		}

	case "enter":
		if len(m.entries) == 0 {
			return m, nil
		}
		m.err = nil
		m.prepareInput()
		m.state = stateEdit
	}

	return m, nil
}

func (m *editorModel) prepareInput() {
	e := m.entries[m.selected]
	ti := textinput.New()
	ti.Placeholder = e.Kind.String()
	ti.Prompt = e.Name + ": "
	ti.Width = 40
	if e.Kind == layout.KindCString {
		ti.CharLimit = int(e.Length) - 1
	}
	if v, err := m.rec.Get(e.Name); err == nil {
		ti.SetValue(fmt.Sprint(v))
	}
	ti.Focus()
	m.input = ti
}

func (m *editorModel) commit() {
	e := m.entries[m.selected]
	v, err := convertValue(e, m.input.Value())
	if err != nil {
		m.err = err
		return
	}
	m.err = m.rec.Set(e.Name, v)
}

func (m *editorModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d bytes, %s endian)", m.name, m.rec.Len(), m.rec.Order())))
	b.WriteString("\n\n")

	for i, e := range m.entries {
		v, _ := m.rec.Get(e.Name)
		line := fmt.Sprintf("%-4d %s %s = %s",
			e.Offset,
			fieldStyle.Render(e.Name),
			kindStyle.Render(e.Kind.String()),
			valueStyle.Render(formatValue(v)))
		if i == m.selected {
			line = cursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if out, err := m.rec.Render(m.mode); err == nil {
		b.WriteString(bytesStyle.Render(out))
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf("xxhash64 %016x", m.rec.Sum64())))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	switch m.state {
	case stateBrowse:
		b.WriteString(hintStyle.Render("↑/↓ select • enter edit • b hex/binary • q quit"))
	case stateEdit:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render("enter apply • esc cancel"))
	}

	return b.String()
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}
