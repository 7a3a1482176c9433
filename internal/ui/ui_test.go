package ui

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskcal/internal/calendar"
	"taskcal/internal/config"
	"taskcal/internal/model"
	"taskcal/internal/store"
)

var fixedNow = time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)

func newTestModel(t *testing.T, titles ...string) (Model, *store.Store) {
	t.Helper()
	n := 0
	s := store.New(
		store.WithIDFunc(func() string {
			n++
			return fmt.Sprintf("t%d", n)
		}),
		store.WithNow(func() time.Time { return fixedNow }),
	)
	for _, title := range titles {
		_, err := s.AddTask(title, model.WorkTypeID)
		require.NoError(t, err)
	}
	return New(s, config.Default(), nil, func() time.Time { return fixedNow }), s
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestAddTaskIntoSelectedCategory(t *testing.T) {
	m, s := newTestModel(t)

	m = press(t, m, "tab", "j", "a")
	require.Equal(t, modeAddTask, m.mode)
	assert.Equal(t, model.StudyTypeID, m.addType)

	m.input.SetValue("  Read chapter 3  ")
	m = press(t, m, "enter")

	assert.Equal(t, modeBrowse, m.mode)
	tasks := s.Snapshot().Tasks
	require.Len(t, tasks, 1)
	assert.Equal(t, "Read chapter 3", tasks[0].Title)
	assert.Equal(t, model.StudyTypeID, tasks[0].TypeID)
}

func TestAddTaskFromCalendarUsesFirstCategory(t *testing.T) {
	m, s := newTestModel(t)
	m = press(t, m, "a")
	m.input.SetValue("Call mom")
	press(t, m, "enter")

	tasks := s.Snapshot().Tasks
	require.Len(t, tasks, 1)
	assert.Equal(t, model.WorkTypeID, tasks[0].TypeID)
}

func TestEmptyTitleRejected(t *testing.T) {
	m, s := newTestModel(t)
	m = press(t, m, "a")
	m.input.SetValue("   ")
	m = press(t, m, "enter")

	assert.Equal(t, modeAddTask, m.mode)
	assert.Equal(t, "Title cannot be empty", m.status)
	assert.Empty(t, s.Snapshot().Tasks)

	m = press(t, m, "esc")
	assert.Equal(t, modeBrowse, m.mode)
}

func TestAddCategory(t *testing.T) {
	m, s := newTestModel(t)
	m = press(t, m, "c")
	m.input.SetValue("Chores")
	press(t, m, "enter")

	types := s.Snapshot().TaskTypes
	require.Len(t, types, 4)
	assert.Equal(t, "Chores", types[3].Name)
	assert.Regexp(t, `^#[0-9a-f]{6}$`, types[3].Color)
}

func TestGrabFromBacklogAndDropOnWeekCell(t *testing.T) {
	m, s := newTestModel(t, "Write report")
	require.Equal(t, "2024-03-15", m.layout.Cells[m.cell].Date.String())

	m = press(t, m, "tab", "j", "m")
	assert.Equal(t, "t1", m.carrying)
	assert.Equal(t, focusCalendar, m.focus)

	m = press(t, m, "l", "m")
	assert.Empty(t, m.carrying)

	got, ok := s.Snapshot().Task("t1")
	require.True(t, ok)
	require.NotNil(t, got.Date)
	assert.Equal(t, "2024-03-16", got.Date.String())
	assert.Nil(t, got.ScheduledTime)
	assert.Empty(t, m.panels[0].Backlog)
}

func TestDropOnHourSlotInDayView(t *testing.T) {
	m, s := newTestModel(t, "Write report")

	m = press(t, m, "1")
	require.Equal(t, calendar.ViewDay, m.layout.Mode)
	require.Equal(t, "2024-03-15", m.layout.Anchor.String())

	m = press(t, m, "tab", "j", "m")
	for i := 0; i < 10; i++ {
		m = press(t, m, "j")
	}
	require.Equal(t, 9, m.slot)
	m = press(t, m, "m")

	got, _ := s.Snapshot().Task("t1")
	require.NotNil(t, got.ScheduledTime)
	assert.Equal(t, "2024-03-15", got.Date.String())
	assert.Equal(t, "09:00", got.ScheduledTime.String())
	assert.Len(t, m.layout.Schedule.Slots[9], 1)

	// moving it to the unscheduled pane keeps the date and drops the hour
	m = press(t, m, "m")
	assert.Equal(t, "t1", m.carrying)
	for i := 0; i < 10; i++ {
		m = press(t, m, "k")
	}
	press(t, m, "m")
	got, _ = s.Snapshot().Task("t1")
	assert.Equal(t, "2024-03-15", got.Date.String())
	assert.Nil(t, got.ScheduledTime)
}

func TestCannotDropOnCategoryPanel(t *testing.T) {
	m, s := newTestModel(t, "Write report")
	m = press(t, m, "tab", "j", "m", "tab", "m")

	assert.Equal(t, "Tasks can only be dropped on the calendar", m.status)
	assert.Equal(t, "t1", m.carrying)
	got, _ := s.Snapshot().Task("t1")
	assert.Nil(t, got.Date)

	m = press(t, m, "esc")
	assert.Empty(t, m.carrying)
}

func TestToggleTask(t *testing.T) {
	m, s := newTestModel(t, "Write report")
	m = press(t, m, "tab", "j", " ")

	got, _ := s.Snapshot().Task("t1")
	assert.True(t, got.Completed)

	press(t, m, " ")
	got, _ = s.Snapshot().Task("t1")
	assert.False(t, got.Completed)
}

func TestDeleteCategoryNeedsConfirmation(t *testing.T) {
	m, s := newTestModel(t, "a", "b")

	m = press(t, m, "tab", "D")
	require.Equal(t, modeConfirmDelete, m.mode)
	m = press(t, m, "n")
	assert.Len(t, s.Snapshot().TaskTypes, 3)

	m = press(t, m, "D", "y")
	assert.Equal(t, modeBrowse, m.mode)
	snap := s.Snapshot()
	assert.Len(t, snap.TaskTypes, 2)
	assert.Empty(t, snap.Tasks)
	assert.Equal(t, "Deleted category", m.status)
}

func TestNavigation(t *testing.T) {
	m, s := newTestModel(t)

	m = press(t, m, "]")
	assert.Equal(t, "2024-03-22", s.Snapshot().CurrentDate.String())
	m = press(t, m, "3", "[")
	assert.Equal(t, calendar.ViewMonth, s.Snapshot().ViewMode)
	assert.Equal(t, "2024-02-22", s.Snapshot().CurrentDate.String())
	assert.Len(t, m.layout.Cells, 42)

	m = press(t, m, "t")
	assert.Equal(t, "2024-03-15", s.Snapshot().CurrentDate.String())
	assert.Equal(t, "2024-03-15", m.layout.Cells[m.cell].Date.String())
}

func TestPanelResizeIsClamped(t *testing.T) {
	m, s := newTestModel(t)
	for i := 0; i < 20; i++ {
		m = press(t, m, "<")
	}
	assert.Equal(t, config.MaxPanelWidth, s.Snapshot().PanelWidth)
	for i := 0; i < 20; i++ {
		m = press(t, m, ">")
	}
	assert.Equal(t, config.MinPanelWidth, s.Snapshot().PanelWidth)
}

func TestViewRenders(t *testing.T) {
	m, _ := newTestModel(t, "Write report")
	for _, k := range []string{"2", "3", "1"} {
		m = press(t, m, k)
		out := m.View()
		assert.Contains(t, out, "Task Calendar")
		assert.Contains(t, out, "Task Categories")
	}
	assert.Contains(t, m.View(), "Unscheduled Tasks")
}

func TestHelpListsEveryBrowseKey(t *testing.T) {
	k := config.Default().Keys
	help := renderHelp(k)
	for _, key := range []string{k.Grab + " move task", k.Cancel + " cancel", k.Widen + "/" + k.Narrow + " widen/narrow", "space toggle", k.Quit + " quit"} {
		assert.Contains(t, help, key)
	}
}
