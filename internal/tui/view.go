package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const previewLen = 48

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Notes"))
	b.WriteString("\n")

	switch m.mode {
	case modeCreate, modeEdit:
		b.WriteString(m.formView())
	default:
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString(helpStyle.Render(m.helpText()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) listView() string {
	var b strings.Builder

	b.WriteString(m.search.View())
	b.WriteString("\n")
	// кнопка показывает направление, которое применит следующее нажатие
	b.WriteString(dimStyle.Render(fmt.Sprintf("[s] sort %s", m.ctrl.Direction())))
	b.WriteString("\n\n")

	if len(m.notes) == 0 {
		if m.search.Value() != "" {
			b.WriteString(dimStyle.Render("No notes match the search."))
		} else {
			b.WriteString(dimStyle.Render("No notes yet. Press n to create one."))
		}
		b.WriteString("\n")
		return b.String()
	}

	for i, n := range m.notes {
		line := n.Title + "  " + dimStyle.Render(preview(n.Content))
		if i == m.cursor {
			if m.mode == modeConfirmDelete {
				line = selectedStyle.Render("> Delete \"" + n.Title + "\"? [y/N]")
			} else {
				line = selectedStyle.Render("> "+n.Title) + "  " + dimStyle.Render(preview(n.Content))
			}
			b.WriteString(line)
		} else {
			b.WriteString(itemStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) formView() string {
	heading := "New note"
	if m.mode == modeEdit {
		heading = "Edit note"
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		selectedStyle.Render(heading),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render("Title"), m.title.View()),
		lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render("Content"), m.content.View()),
	)
	return formStyle.Render(form) + "\n"
}

func (m Model) statusView() string {
	text := m.status
	if m.pending > 0 {
		text = strings.TrimSpace(text + " (working...)")
	}
	if text == "" {
		return ""
	}
	return statusStyles[m.statusLevel].Render(text) + "\n"
}

func (m Model) helpText() string {
	switch m.mode {
	case modeSearch:
		return "type to filter • enter/esc: done"
	case modeCreate:
		return "tab: next field • enter/ctrl+s: create • esc: cancel"
	case modeEdit:
		return "tab: next field • enter/ctrl+s: save • esc: cancel"
	case modeConfirmDelete:
		return "y: delete • any key: cancel"
	default:
		return "↑/↓: move • /: search • s: sort • n: new • e: edit • d: delete • r: refresh • q: quit"
	}
}

func preview(content string) string {
	content = strings.Join(strings.Fields(content), " ")
	r := []rune(content)
	if len(r) <= previewLen {
		return content
	}
	return string(r[:previewLen-1]) + "…"
}
