package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drydock-app/drydock/internal/term"
)

func (a *App) handleTerminalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+q" {
		a.state = viewHome
		a.status = ""
		return a, nil
	}
	if a.termSession == nil {
		switch m.String() {
		case "q", "ctrl+c", "esc":
			a.state = viewHome
			return a, nil
		case "r", "enter":
			return a.enterTerminal()
		}
		return a, nil
	}
	if b := keyToBytes(m); len(b) > 0 {
		if _, err := a.termSession.Write(b); err != nil {
			a.status = "error: " + err.Error()
		}
	}
	return a, nil
}

// keyToBytes translates a key press into the byte sequence a shell expects.
func keyToBytes(m tea.KeyMsg) []byte {
	switch m.Type {
	case tea.KeyRunes:
		return []byte(string(m.Runes))
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyTab:
		return []byte{'\t'}
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeyEsc:
		return []byte{0x1b}
	case tea.KeyUp:
		return []byte("\x1b[A")
	case tea.KeyDown:
		return []byte("\x1b[B")
	case tea.KeyRight:
		return []byte("\x1b[C")
	case tea.KeyLeft:
		return []byte("\x1b[D")
	case tea.KeyHome:
		return []byte("\x1b[H")
	case tea.KeyEnd:
		return []byte("\x1b[F")
	case tea.KeyPgUp:
		return []byte("\x1b[5~")
	case tea.KeyPgDown:
		return []byte("\x1b[6~")
	case tea.KeyDelete:
		return []byte("\x1b[3~")
	}
	// ctrl+a .. ctrl+z map onto 0x01 .. 0x1a
	s := m.String()
	if len(s) == 6 && strings.HasPrefix(s, "ctrl+") {
		c := s[5]
		if c >= 'a' && c <= 'z' {
			return []byte{c - 'a' + 1}
		}
	}
	return nil
}

func (a *App) renderTerminal() string {
	header := titleStyle.Render("Terminal") + "  " + footerStyle.Render("[ctrl+q] detach")
	if a.termSession == nil {
		body := mutedStyle.Render("no shell running")
		if a.termErr != "" {
			body = errorStyle.Render("shell error: " + a.termErr)
		}
		return header + "\n\n" + body + "\n\n" + footerStyle.Render("[r] restart  [esc] back")
	}

	var b strings.Builder
	a.termSession.Snapshot(func(s *term.Screen) {
		_, rows := s.Size()
		curRow, curCol := s.Cursor()
		for r := 0; r < rows; r++ {
			b.WriteString(renderTermRow(s.Row(r), r == curRow, curCol))
			b.WriteByte('\n')
		}
	})
	return header + "\n" + b.String()
}

// renderTermRow converts one row of cells into styled text, grouping runs
// that share a style so lipgloss escapes stay bounded.
func renderTermRow(cells []term.Cell, cursorRow bool, cursorCol int) string {
	var out strings.Builder
	var run []rune
	var cur term.Style
	flush := func() {
		if len(run) == 0 {
			return
		}
		out.WriteString(styleFor(cur).Render(string(run)))
		run = run[:0]
	}
	for i, c := range cells {
		st := c.Style
		r := c.Rune
		if r == 0 {
			r = ' '
		}
		if cursorRow && i == cursorCol {
			flush()
			out.WriteString(cursorCellStyle.Render(string(r)))
			cur = st
			continue
		}
		if st != cur {
			flush()
			cur = st
		}
		run = append(run, r)
	}
	flush()
	return out.String()
}

func styleFor(st term.Style) lipgloss.Style {
	s := lipgloss.NewStyle()
	if st.Fg != "" {
		s = s.Foreground(lipgloss.Color(st.Fg))
	}
	if st.Bg != "" {
		s = s.Background(lipgloss.Color(st.Bg))
	}
	if st.Bold {
		s = s.Bold(true)
	}
	return s
}
