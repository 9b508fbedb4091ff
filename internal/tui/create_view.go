package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func checkbox(label string, on, focused bool) string {
	box := "[ ]"
	if on {
		box = "[x]"
	}
	line := box + " " + label
	if focused {
		return lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(line)
	}
	return line
}

func (m appModel) createView() string {
	f := m.form

	label := func(field formField, text string) string {
		if f.focus == field {
			return lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(text)
		}
		return styleMuted().Render(text)
	}
	violation := func(key string) string {
		if msg := f.violations[key]; msg != "" {
			return styleError().Render("  " + msg)
		}
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("New board"))
	b.WriteString("\n\n")

	b.WriteString(label(fieldTitle, "Title") + violation("title") + "\n")
	b.WriteString(f.title.View() + "\n\n")

	b.WriteString(label(fieldDescription, "Description") + violation("description") + "\n")
	b.WriteString(f.description.View() + "\n\n")

	b.WriteString(label(fieldSize, "Size (3-9)") + violation("size") + "\n")
	b.WriteString(f.size.View() + "\n\n")

	b.WriteString(checkbox("Public", f.public, f.focus == fieldPublic) + "\n")
	b.WriteString(checkbox("Free space", f.freeSpace, f.focus == fieldFreeSpace))
	if msg := violation("freeSpace"); msg != "" {
		b.WriteString(msg)
	}
	b.WriteString("\n\n")

	b.WriteString(label(fieldCreatedByName, "Display name") + violation("createdByName") + "\n")
	b.WriteString(f.createdByName.View() + "\n")

	if f.submitErr != "" {
		b.WriteString("\n" + styleError().Render(f.submitErr) + "\n")
	}
	if f.submitting {
		b.WriteString("\n" + m.spin.View() + " creating…\n")
	}

	b.WriteString("\n" + m.footer("tab: next field  enter: create  esc: back"))
	return b.String()
}
