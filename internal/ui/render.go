package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todo/internal/config"
	"todo/internal/controller"
	"todo/internal/storage"
	"todo/internal/task"
	"todo/internal/view"
)

type palette struct {
	text, muted, accent, danger, warn, ok string
}

var palettes = map[storage.Theme]palette{
	storage.ThemeLight: {text: "235", muted: "245", accent: "62", danger: "160", warn: "166", ok: "28"},
	storage.ThemeDark:  {text: "252", muted: "241", accent: "141", danger: "203", warn: "215", ok: "114"},
}

type styles struct {
	title    lipgloss.Style
	text     lipgloss.Style
	muted    lipgloss.Style
	done     lipgloss.Style
	overdue  lipgloss.Style
	cursor   lipgloss.Style
	priority map[task.Priority]lipgloss.Style
	notice   map[controller.Level]lipgloss.Style
	modal    lipgloss.Style
}

func newStyles(theme storage.Theme) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[storage.ThemeLight]
	}
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.accent)),
		text:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		done:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)).Strikethrough(true),
		overdue: lipgloss.NewStyle().Foreground(lipgloss.Color(p.danger)).Bold(true),
		cursor:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)).Bold(true),
		priority: map[task.Priority]lipgloss.Style{
			task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.ok)),
			task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color(p.warn)),
			task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.danger)).Bold(true),
		},
		notice: map[controller.Level]lipgloss.Style{
			controller.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)),
			controller.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.warn)),
			controller.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color(p.danger)),
		},
		modal: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(p.danger)).Padding(0, 1),
	}
}

func (m Model) View() string {
	snap := m.scr.snap
	st := newStyles(snap.Theme)
	var b strings.Builder

	b.WriteString(st.title.Render("Todo"))
	b.WriteString("  ")
	b.WriteString(st.muted.Render(renderStats(snap.Stats)))
	b.WriteString("\n")
	b.WriteString(st.muted.Render(renderState(snap.State)))
	b.WriteString("\n\n")

	switch snap.Empty {
	case controller.EmptyNoTasks:
		b.WriteString(st.muted.Render(fmt.Sprintf("No tasks yet. Press '%s' to add one.", m.cfg.Keys.Add)))
		b.WriteString("\n")
	case controller.EmptyNoMatch:
		b.WriteString(st.muted.Render("No tasks match the current filters."))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderTaskList(st))
	}

	b.WriteString("\n")
	switch {
	case m.scr.confirm != nil:
		c := m.scr.confirm
		b.WriteString(st.modal.Render(fmt.Sprintf("%s\n%s\n\ny confirm • n cancel", c.title, c.message)))
		b.WriteString("\n")
	case m.mode == modeAdd:
		b.WriteString(m.renderForm(st))
	case m.mode == modeEdit:
		b.WriteString("Edit task: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if n := m.scr.notice; n != nil {
		b.WriteString("\n")
		b.WriteString(st.notice[n.Level].Render(n.Text))
	}
	b.WriteString("\n")
	b.WriteString(st.muted.Render(renderHelp(m.cfg.Keys)))
	return b.String()
}

func (m Model) renderTaskList(st styles) string {
	var b strings.Builder
	cur := clampCursor(m.cursor, len(m.items()))
	for i, it := range m.items() {
		cursor := " "
		if i == cur && m.mode == modeList {
			cursor = st.cursor.Render(">")
		}
		checkbox := "[ ]"
		text := st.text.Render(it.Text)
		if it.Completed {
			checkbox = "[x]"
			text = st.done.Render(it.Text)
		}

		meta := []string{st.priority[it.Priority].Render(it.Priority.Label())}
		if it.DueDate != nil {
			due := "due " + it.DueDate.Display()
			if it.Overdue {
				meta = append(meta, st.overdue.Render(due+" (overdue)"))
			} else {
				meta = append(meta, st.muted.Render(due))
			}
		}
		b.WriteString(fmt.Sprintf("%s %s %s  %s\n", cursor, checkbox, text, strings.Join(meta, " • ")))
	}
	return b.String()
}

func (m Model) renderForm(st styles) string {
	labels := [fieldCount]string{"Task", "Due", "Priority"}
	values := [fieldCount]string{m.form.text, m.form.due, m.form.priority.Label()}
	var b strings.Builder
	b.WriteString("New task (tab to move, enter to add, esc to cancel)\n")
	for i, label := range labels {
		prefix := " "
		if i == m.form.index {
			prefix = st.cursor.Render(">")
		}
		val := values[i]
		switch {
		case i == m.form.index && i != fieldPriority:
			val = m.input.View()
		case i == fieldPriority:
			val = st.priority[m.form.priority].Render("< " + val + " >")
		case strings.TrimSpace(val) == "":
			val = st.muted.Render("(empty)")
		}
		b.WriteString(fmt.Sprintf("%s %-9s %s\n", prefix, label, val))
	}
	return b.String()
}

func renderStats(s view.Stats) string {
	return fmt.Sprintf("%d total • %d completed • %d pending", s.Total, s.Completed, s.Pending)
}

func renderState(s view.State) string {
	return fmt.Sprintf("filter: %s • priorities: %s • sort: %s", s.Status, s.Priorities, s.Sort)
}

func renderHelp(k config.Keymap) string {
	toggle := k.Toggle
	if toggle == " " {
		toggle = "space"
	}
	return fmt.Sprintf("%s/%s move • %s add • %s toggle • %s edit • %s delete • %s/%s/%s filter • %s/%s/%s priorities • %s/%s/%s sort • %s clear done • %s theme • %s quit",
		k.Up, k.Down, k.Add, toggle, k.Edit, k.Delete,
		k.FilterAll, k.FilterActive, k.FilterCompleted,
		k.ShowLow, k.ShowMedium, k.ShowHigh,
		k.SortCreated, k.SortDue, k.SortPriority,
		k.ClearCompleted, k.Theme, k.Quit)
}
