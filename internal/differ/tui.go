// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f6be00"))
	sideStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Browse opens an interactive, read-only list of rows. It returns when the
// user quits.
func Browse(rows []ReportRow) error {
	p := tea.NewProgram(newModel(rows), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type model struct {
	rows     []ReportRow
	cursor   int
	detail   bool
	width    int
	viewport viewport.Model
}

func newModel(rows []ReportRow) model {
	return model{
		rows:     rows,
		width:    80, //nolint:mnd
		viewport: viewport.New(80, 20), //nolint:mnd
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-3, 1) //nolint:mnd
		if m.detail {
			m.viewport.SetContent(m.detailContent())
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.detail {
				m.detail = false
				return m, nil
			}
			return m, tea.Quit
		case "enter":
			if len(m.rows) == 0 {
				return m, nil
			}
			m.detail = !m.detail
			if m.detail {
				m.viewport.SetContent(m.detailContent())
				m.viewport.GotoTop()
			}
			return m, nil
		}

		if m.detail {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(len(m.rows)-1, 0)
		}
	}
	return m, nil
}

func (m model) View() string {
	if m.detail {
		row := m.rows[m.cursor]
		return fmt.Sprintf("Change %d (%s)\n\n%s\nUP/DOWN: scroll, ENTER/ESC: back, Q: quit\n",
			row.ID, row.Tag, m.viewport.View())
	}

	s := fmt.Sprintf("Changes (%d):\n\n", len(m.rows))
	for i, row := range m.rows {
		line := fmt.Sprintf("[%4d] %-7s %s  ->  %s", row.ID, row.Tag, firstLine(row.Doc1Text), firstLine(row.Doc2Text))
		line = runewidth.Truncate(line, max(m.width-2, 10), "…") //nolint:mnd
		if m.cursor == i {
			s += cursorStyle.Render("> "+line) + "\n"
		} else {
			s += "  " + line + "\n"
		}
	}
	return s + "\nUP/DOWN: move, ENTER: details, Q/ESCAPE: quit\n"
}

func (m model) detailContent() string {
	row := m.rows[m.cursor]

	var b strings.Builder
	b.WriteString(sideStyle.Render("DOC1") + "\n")
	b.WriteString(orMarker(row.Doc1Text, row.Tag == TagInsert) + "\n\n")
	b.WriteString(sideStyle.Render("DOC2") + "\n")
	b.WriteString(orMarker(row.Doc2Text, row.Tag == TagDelete) + "\n")
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	if s == "" {
		return "∅"
	}
	return s
}

func orMarker(s string, mirrored bool) string {
	if mirrored {
		return "(nothing on this side)"
	}
	return s
}
