package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskcal/internal/calendar"
	"taskcal/internal/config"
	"taskcal/internal/model"
	"taskcal/internal/view"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	tabStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	activeTab     = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("#3b82f6")).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	cursorCell    = cellStyle.BorderForeground(lipgloss.Color("#3b82f6"))
	todayHeading  = lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa")).Bold(true)
	heading       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	faint         = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

const minCellWidth = 10

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	panelWidth := config.ClampPanelWidth(m.snap.PanelWidth)
	calWidth := max(m.width-panelWidth-2, minCellWidth*2)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderCalendar(calWidth),
		"  ",
		lipgloss.NewStyle().Width(panelWidth).Render(m.renderPanel(panelWidth)),
	))

	b.WriteString("\n---\n")
	if m.mode == modeAddTask || m.mode == modeAddCategory {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(renderHelp(m.cfg.Keys))
	return b.String()
}

func (m Model) renderHeader() string {
	tabs := make([]string, 0, len(calendar.ViewModes()))
	for _, vm := range calendar.ViewModes() {
		style := tabStyle
		if vm == m.layout.Mode {
			style = activeTab
		}
		tabs = append(tabs, style.Render(vm.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("Task Calendar"),
		"   ",
		strings.Join(tabs, ""),
		"   ",
		fmt.Sprintf("‹ %s ›", m.layout.Title),
	)
}

func (m Model) renderCalendar(width int) string {
	switch m.layout.Mode {
	case calendar.ViewDay:
		return m.renderDay(width)
	case calendar.ViewWeek:
		return m.renderRow(m.layout.Cells, 0, width)
	case calendar.ViewMonth:
		rows := make([]string, 0, calendar.MonthCells/calendar.DaysPerWeek)
		for i := 0; i < len(m.layout.Cells); i += calendar.DaysPerWeek {
			rows = append(rows, m.renderRow(m.layout.Cells[i:i+calendar.DaysPerWeek], i, width))
		}
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	default:
		return ""
	}
}

func (m Model) renderRow(cells []view.DayCell, offset, width int) string {
	inner := max(width/calendar.DaysPerWeek-2, minCellWidth)
	cols := make([]string, len(cells))
	for i, c := range cells {
		idx := offset + i
		selected := m.focus == focusCalendar && idx == m.cell
		cols[i] = m.renderCell(c, selected, inner)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) renderCell(c view.DayCell, selected bool, width int) string {
	var b strings.Builder
	h := heading
	if c.IsToday {
		h = todayHeading
	}
	b.WriteString(h.Render(c.Date.ShortLabel()))
	for i, t := range c.Tasks {
		b.WriteString("\n")
		b.WriteString(m.renderTask(t, selected && i == m.taskIdx, width))
	}
	style := cellStyle
	if selected {
		style = cursorCell
	}
	out := style.Width(width).Render(b.String())
	if !c.InAnchorMonth {
		out = faint.Render(out)
	}
	return out
}

func (m Model) renderDay(width int) string {
	ds := m.layout.Schedule
	if ds == nil {
		return ""
	}
	half := max(width/2-4, minCellWidth)
	calFocus := m.focus == focusCalendar

	var un strings.Builder
	un.WriteString(heading.Render("Unscheduled Tasks"))
	for i, t := range ds.Unscheduled {
		un.WriteString("\n")
		un.WriteString(m.renderTask(t, calFocus && m.slot == unscheduledSlot && i == m.taskIdx, half))
	}
	unStyle := cellStyle
	if calFocus && m.slot == unscheduledSlot {
		unStyle = cursorCell
	}

	var sched strings.Builder
	sched.WriteString(heading.Render("Schedule"))
	for _, hr := range calendar.Hours() {
		line := fmt.Sprintf("%-6s", hr.Label())
		if calFocus && int(hr) == m.slot {
			line = selectedStyle.Render(line)
		}
		sched.WriteString("\n")
		sched.WriteString(faint.Render(line))
		for i, t := range ds.Slots[hr] {
			sched.WriteString("\n  ")
			sched.WriteString(m.renderTask(t, calFocus && int(hr) == m.slot && i == m.taskIdx, half-2))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		unStyle.Width(half).Render(un.String()),
		" ",
		cellStyle.Width(half).Render(sched.String()),
	)
}

func (m Model) renderPanel(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Task Categories"))
	rows := m.panelRows()
	for i, r := range rows {
		b.WriteString("\n")
		selected := m.focus == focusPanel && i == m.panelRow
		p := m.panels[r.panel]
		if r.task == nil {
			name := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Type.Color)).Render(p.Type.Name)
			if selected {
				name = selectedStyle.Render("> " + p.Type.Name)
			}
			b.WriteString("\n" + name)
			continue
		}
		b.WriteString(m.renderTask(*r.task, selected, width-2))
	}
	return b.String()
}

// renderTask draws a task row tinted with its category colour.
func (m Model) renderTask(t model.Task, selected bool, width int) string {
	color := lipgloss.Color(view.Color(m.snap, t))
	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}
	title := t.Title
	if t.Completed {
		title = lipgloss.NewStyle().Strikethrough(true).Faint(true).Render(title)
	}
	body := checkbox + " " + title
	if t.ScheduledTime != nil {
		body += " " + faint.Render(t.ScheduledTime.String())
	}
	if t.ID == m.carrying {
		body = "↕ " + body
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(color).
		MaxWidth(max(width, minCellWidth))
	if selected {
		style = style.Reverse(true)
	}
	return style.Render(body)
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s/%s/%s move • %s focus • %s next task • %s add • %s category • %s delete category • %s toggle • %s move task • %s cancel • %s/%s/%s day/week/month • %s/%s prev/next • %s today • %s/%s widen/narrow • %s quit",
		k.Left, k.Down, k.Up, k.Right, k.Focus, k.NextTask, k.Add, k.AddCategory, k.DeleteCategory, displayKey(k.Toggle), k.Grab, k.Cancel,
		k.ViewDay, k.ViewWeek, k.ViewMonth, k.Prev, k.Next, k.Today, k.Widen, k.Narrow, k.Quit)
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
