package ui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskcal/internal/calendar"
	"taskcal/internal/config"
	"taskcal/internal/model"
	"taskcal/internal/store"
	"taskcal/internal/view"
)

type mode int

const (
	modeBrowse mode = iota
	modeAddTask
	modeAddCategory
	modeConfirmDelete
)

type focus int

const (
	focusCalendar focus = iota
	focusPanel
)

// unscheduledSlot is the day view's backlog pane, above the hour slots.
const unscheduledSlot = -1

const panelStep = 4

type Model struct {
	store  *store.Store
	cfg    config.Config
	logger *slog.Logger
	now    func() time.Time

	snap   store.Snapshot
	layout view.Layout
	panels []view.CategoryPanel

	mode     mode
	focus    focus
	input    textinput.Model
	status   string
	cell     int
	slot     int
	taskIdx  int
	panelRow int
	carrying string
	addType  string
	pending  *model.TaskType
	width    int
}

func Run(s *store.Store, cfg config.Config, logger *slog.Logger) error {
	m := New(s, cfg, logger, time.Now)
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func New(s *store.Store, cfg config.Config, logger *slog.Logger, now func() time.Time) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := Model{
		store:  s,
		cfg:    cfg,
		logger: logger,
		now:    now,
		input:  ti,
		mode:   modeBrowse,
		status: fmt.Sprintf("Press '%s' to add a task, '%s' to move it onto the calendar.", cfg.Keys.Add, cfg.Keys.Grab),
		slot:   unscheduledSlot,
		width:  120,
	}
	m.refresh()
	m.cell = m.anchorCell()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeAddTask, modeAddCategory:
			return m.updateInputMode(msg.String(), msg)
		case modeConfirmDelete:
			return m.updateDeleteConfirm(msg.String())
		}
		return m.updateBrowseMode(msg.String())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width/3, 20)
	}
	return m, nil
}

func (m Model) updateBrowseMode(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case "ctrl+c", k.Quit:
		return m, tea.Quit
	case k.Focus:
		if m.focus == focusCalendar {
			m.focus = focusPanel
		} else {
			m.focus = focusCalendar
		}
	case k.Up, "up":
		m.moveVertical(-1)
	case k.Down, "down":
		m.moveVertical(1)
	case k.Left, "left":
		m.moveHorizontal(-1)
	case k.Right, "right":
		m.moveHorizontal(1)
	case k.NextTask:
		if n := len(m.cursorTasks()); n > 0 {
			m.taskIdx = (m.taskIdx + 1) % n
		}
	case k.Toggle:
		t, ok := m.selectedTask()
		if !ok {
			m.status = "No task selected"
			return m, nil
		}
		m.store.ToggleTaskComplete(t.ID)
		m.refresh()
		m.status = "Toggled task"
	case k.Grab:
		return m.grabOrDrop()
	case k.Cancel:
		if m.carrying != "" {
			m.carrying = ""
			m.status = "Move cancelled"
		}
	case k.Add:
		m.addType = ""
		if m.focus == focusPanel {
			if p, ok := m.selectedPanel(); ok {
				m.addType = p.Type.ID
			}
		}
		m.startInput(modeAddTask, "Task title")
	case k.AddCategory:
		m.startInput(modeAddCategory, "Category name")
	case k.DeleteCategory:
		p, ok := m.selectedPanel()
		if m.focus != focusPanel || !ok {
			m.status = "Select a category in the panel first"
			return m, nil
		}
		tt := p.Type
		m.pending = &tt
		m.mode = modeConfirmDelete
		m.status = fmt.Sprintf("Delete category \"%s\"? All associated tasks will be deleted. y/n", tt.Name)
	case k.Prev:
		m.navigate(-1)
	case k.Next:
		m.navigate(1)
	case k.Today:
		m.store.SetCurrentDate(calendar.Today(m.now()))
		m.refresh()
		m.cell = m.anchorCell()
		m.status = "Today"
	case k.ViewDay:
		m.setView(calendar.ViewDay)
	case k.ViewWeek:
		m.setView(calendar.ViewWeek)
	case k.ViewMonth:
		m.setView(calendar.ViewMonth)
	case k.Widen:
		m.resizePanel(panelStep)
	case k.Narrow:
		m.resizePanel(-panelStep)
	}
	return m, nil
}

func (m Model) updateInputMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.endInput()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			if m.mode == modeAddTask {
				m.status = "Title cannot be empty"
			} else {
				m.status = "Name cannot be empty"
			}
			return m, nil
		}
		if m.mode == modeAddTask {
			t, err := m.store.AddTask(text, m.addType)
			if err != nil {
				if errors.Is(err, store.ErrNoTaskTypes) {
					m.status = "Add a category first"
				} else {
					m.status = fmt.Sprintf("add failed: %v", err)
				}
				return m, nil
			}
			m.logger.Info("task added", "id", t.ID, "type", t.TypeID)
			m.status = "Added task"
		} else {
			tt := m.store.AddTaskType(text, randomColor())
			m.logger.Info("category added", "id", tt.ID, "name", tt.Name)
			m.status = "Added category"
		}
		m.endInput()
		m.refresh()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
	case "y", "Y":
		if m.pending == nil {
			m.status = "Nothing to delete"
			break
		}
		m.store.DeleteTaskType(m.pending.ID)
		m.logger.Info("category deleted", "id", m.pending.ID)
		m.refresh()
		if _, ok := m.snap.Task(m.carrying); !ok {
			m.carrying = ""
		}
		m.status = "Deleted category"
	default:
		return m, nil
	}
	m.mode = modeBrowse
	m.pending = nil
	return m, nil
}

// grabOrDrop picks up the highlighted task, or releases the carried one on
// the calendar target under the cursor.
func (m Model) grabOrDrop() (tea.Model, tea.Cmd) {
	if m.carrying == "" {
		t, ok := m.selectedTask()
		if !ok {
			m.status = "No task selected"
			return m, nil
		}
		m.carrying = t.ID
		m.focus = focusCalendar
		m.status = fmt.Sprintf("Moving \"%s\": choose a day or hour and press %s", t.Title, m.cfg.Keys.Grab)
		return m, nil
	}
	if m.focus != focusCalendar {
		m.status = "Tasks can only be dropped on the calendar"
		return m, nil
	}
	target, ok := m.target()
	if !ok {
		return m, nil
	}
	view.Drop(m.store, m.carrying, target)
	m.logger.Info("task dropped", "id", m.carrying, "target", target.String())
	m.carrying = ""
	m.refresh()
	m.status = "Moved to " + target.String()
	return m, nil
}

func (m *Model) target() (view.Target, bool) {
	if m.layout.Mode == calendar.ViewDay {
		if m.slot == unscheduledSlot {
			return view.CellTarget(m.layout.Anchor), true
		}
		return view.SlotTarget(m.layout.Anchor, calendar.Hour(m.slot)), true
	}
	if m.cell < 0 || m.cell >= len(m.layout.Cells) {
		return view.Target{}, false
	}
	return view.CellTarget(m.layout.Cells[m.cell].Date), true
}

func (m *Model) moveVertical(delta int) {
	if m.focus == focusPanel {
		m.panelRow = clampCursor(m.panelRow+delta, len(m.panelRows()))
		return
	}
	switch m.layout.Mode {
	case calendar.ViewDay:
		m.slot = min(max(m.slot+delta, unscheduledSlot), calendar.HoursPerDay-1)
		m.taskIdx = 0
	case calendar.ViewMonth:
		m.cell = clampCursor(m.cell+delta*calendar.DaysPerWeek, len(m.layout.Cells))
		m.taskIdx = 0
	default:
		m.taskIdx = clampCursor(m.taskIdx+delta, len(m.cursorTasks()))
	}
}

func (m *Model) moveHorizontal(delta int) {
	if m.focus == focusPanel {
		return
	}
	m.taskIdx = 0
	if m.layout.Mode == calendar.ViewDay {
		m.navigate(delta)
		return
	}
	m.cell = clampCursor(m.cell+delta, len(m.layout.Cells))
}

func (m *Model) navigate(steps int) {
	m.store.SetCurrentDate(calendar.Shift(m.snap.CurrentDate, m.snap.ViewMode, steps))
	m.refresh()
	m.cell = m.anchorCell()
	m.taskIdx = 0
}

// setView switches modes; zooming into a day anchors on the selected cell.
func (m *Model) setView(mode calendar.ViewMode) {
	if mode == calendar.ViewDay && m.layout.Mode != calendar.ViewDay {
		if m.cell >= 0 && m.cell < len(m.layout.Cells) {
			m.store.SetCurrentDate(m.layout.Cells[m.cell].Date)
		}
		m.slot = unscheduledSlot
	}
	m.store.SetViewMode(mode)
	m.refresh()
	m.cell = m.anchorCell()
	m.taskIdx = 0
	m.status = mode.Label() + " view"
}

func (m *Model) resizePanel(delta int) {
	m.store.SetPanelWidth(config.ClampPanelWidth(m.snap.PanelWidth + delta))
	m.refresh()
}

func (m *Model) startInput(md mode, placeholder string) {
	m.mode = md
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	m.input.Focus()
	m.status = placeholder + ": type and press Enter"
}

func (m *Model) endInput() {
	m.mode = modeBrowse
	m.input.SetValue("")
	m.input.Blur()
}

// refresh rereads the store and rebuilds every derived view.
func (m *Model) refresh() {
	m.snap = m.store.Snapshot()
	m.layout = view.Calendar(m.snap, m.now())
	m.panels = view.Panels(m.snap)
	m.cell = clampCursor(m.cell, len(m.layout.Cells))
	m.panelRow = clampCursor(m.panelRow, len(m.panelRows()))
	if n := len(m.cursorTasks()); m.taskIdx >= n {
		m.taskIdx = 0
	}
}

func (m Model) anchorCell() int {
	for i, c := range m.layout.Cells {
		if c.Date.Equal(m.layout.Anchor) {
			return i
		}
	}
	return 0
}

// cursorTasks are the tasks in the calendar cell or hour slot under the
// cursor.
func (m Model) cursorTasks() []model.Task {
	if m.layout.Mode == calendar.ViewDay {
		if m.layout.Schedule == nil {
			return nil
		}
		if m.slot == unscheduledSlot {
			return m.layout.Schedule.Unscheduled
		}
		return m.layout.Schedule.Slots[m.slot]
	}
	if m.cell < 0 || m.cell >= len(m.layout.Cells) {
		return nil
	}
	return m.layout.Cells[m.cell].Tasks
}

type panelRow struct {
	panel int
	task  *model.Task
}

// panelRows flattens the category panel: each header followed by its
// backlog.
func (m Model) panelRows() []panelRow {
	var rows []panelRow
	for i, p := range m.panels {
		rows = append(rows, panelRow{panel: i})
		for j := range p.Backlog {
			rows = append(rows, panelRow{panel: i, task: &p.Backlog[j]})
		}
	}
	return rows
}

func (m Model) selectedPanel() (view.CategoryPanel, bool) {
	rows := m.panelRows()
	if len(rows) == 0 {
		return view.CategoryPanel{}, false
	}
	return m.panels[rows[clampCursor(m.panelRow, len(rows))].panel], true
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.focus == focusPanel {
		rows := m.panelRows()
		if len(rows) == 0 {
			return model.Task{}, false
		}
		r := rows[clampCursor(m.panelRow, len(rows))]
		if r.task == nil {
			return model.Task{}, false
		}
		return *r.task, true
	}
	tasks := m.cursorTasks()
	if len(tasks) == 0 {
		return model.Task{}, false
	}
	return tasks[clampCursor(m.taskIdx, len(tasks))], true
}

func randomColor() string {
	return fmt.Sprintf("#%06x", rand.Intn(0x1000000))
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
