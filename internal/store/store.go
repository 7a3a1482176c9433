// Package store holds the calendar's single source of truth: tasks,
// categories, the active view and its anchor date.
//
// Every mutation replaces the slices it touches instead of editing them in
// place, so a Snapshot taken earlier never changes and two snapshots can be
// compared by Version to detect updates. Operations that name a missing
// task or category do nothing.
package store

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskcal/internal/calendar"
	"taskcal/internal/model"
)

// ErrNoTaskTypes is returned by AddTask when no category was named and
// none exist to default to.
var ErrNoTaskTypes = errors.New("no task categories exist")

const DefaultPanelWidth = 40

// Snapshot is a read-only view of the store at one version. Callers must
// not modify the slices or the values their pointers reference.
type Snapshot struct {
	Tasks       []model.Task
	TaskTypes   []model.TaskType
	ViewMode    calendar.ViewMode
	CurrentDate calendar.Date
	PanelWidth  int
	Version     uint64
}

func (s Snapshot) Task(id string) (model.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func (s Snapshot) TaskType(id string) (model.TaskType, bool) {
	for _, tt := range s.TaskTypes {
		if tt.ID == id {
			return tt, true
		}
	}
	return model.TaskType{}, false
}

type Store struct {
	mu     sync.RWMutex
	state  Snapshot
	newID  func() string
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDFunc replaces the UUID generator, mostly for tests.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithNow(fn func() time.Time) Option {
	return func(s *Store) {
		if fn != nil {
			s.now = fn
		}
	}
}

func WithViewMode(m calendar.ViewMode) Option {
	return func(s *Store) { s.state.ViewMode = m }
}

func WithPanelWidth(w int) Option {
	return func(s *Store) { s.state.PanelWidth = w }
}

// New returns a store seeded with the Work, Study and Personal categories,
// showing the week around today.
func New(opts ...Option) *Store {
	s := &Store{
		newID:  uuid.NewString,
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		state: Snapshot{
			TaskTypes:  model.SeedTaskTypes(),
			ViewMode:   calendar.ViewWeek,
			PanelWidth: DefaultPanelWidth,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.CurrentDate = calendar.Today(s.now())
	return s
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// AddTask appends an unscheduled, incomplete task. An empty typeID means
// the first category. The title is stored as given.
func (s *Store) AddTask(title, typeID string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if typeID == "" {
		if len(s.state.TaskTypes) == 0 {
			return model.Task{}, ErrNoTaskTypes
		}
		typeID = s.state.TaskTypes[0].ID
	}
	t := model.Task{ID: s.newID(), Title: title, TypeID: typeID}
	s.state.Tasks = appendCopy(s.state.Tasks, t)
	s.bump()
	s.logger.Debug("task added", "id", t.ID, "type", typeID)
	return t, nil
}

// AddTaskType appends a category. Names and colours need not be unique.
func (s *Store) AddTaskType(name, color string) model.TaskType {
	s.mu.Lock()
	defer s.mu.Unlock()

	tt := model.TaskType{ID: s.newID(), Name: name, Color: color}
	s.state.TaskTypes = appendCopy(s.state.TaskTypes, tt)
	s.bump()
	s.logger.Debug("task type added", "id", tt.ID, "name", name)
	return tt
}

// DeleteTaskType removes a category together with every task in it.
func (s *Store) DeleteTaskType(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	types := make([]model.TaskType, 0, len(s.state.TaskTypes))
	for _, tt := range s.state.TaskTypes {
		if tt.ID != id {
			types = append(types, tt)
		}
	}
	if len(types) == len(s.state.TaskTypes) {
		s.logger.Debug("task type not found", "id", id)
		return
	}
	tasks := make([]model.Task, 0, len(s.state.Tasks))
	for _, t := range s.state.Tasks {
		if t.TypeID != id {
			tasks = append(tasks, t)
		}
	}
	removed := len(s.state.Tasks) - len(tasks)
	s.state.TaskTypes = types
	s.state.Tasks = tasks
	s.bump()
	s.logger.Debug("task type deleted", "id", id, "tasks_removed", removed)
}

// UpdateTaskDate moves a task to date, or back to the backlog when date is
// nil. The hour slot is always cleared, even when the date is unchanged.
func (s *Store) UpdateTaskDate(taskID string, date *calendar.Date) {
	s.updateTask(taskID, "date", func(t *model.Task) bool {
		t.Date = nil
		if date != nil {
			d := *date
			t.Date = &d
		}
		t.ScheduledTime = nil
		return true
	})
}

// UpdateTaskSchedule sets or clears the hour slot and leaves the date alone.
// An hour outside 0-23, or an hour for a task with no date, changes nothing.
func (s *Store) UpdateTaskSchedule(taskID string, hour *calendar.Hour) {
	if hour != nil {
		if _, err := calendar.NewHour(int(*hour)); err != nil {
			s.logger.Debug("schedule ignored", "id", taskID, "err", err)
			return
		}
	}
	s.updateTask(taskID, "schedule", func(t *model.Task) bool {
		if hour == nil {
			t.ScheduledTime = nil
			return true
		}
		if t.Date == nil {
			s.logger.Debug("schedule ignored: task has no date", "id", taskID)
			return false
		}
		h := *hour
		t.ScheduledTime = &h
		return true
	})
}

func (s *Store) ToggleTaskComplete(taskID string) {
	s.updateTask(taskID, "completed", func(t *model.Task) bool {
		t.Completed = !t.Completed
		return true
	})
}

func (s *Store) SetViewMode(mode calendar.ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ViewMode = mode
	s.bump()
}

func (s *Store) SetCurrentDate(date calendar.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentDate = date
	s.bump()
}

func (s *Store) SetPanelWidth(width int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PanelWidth = width
	s.bump()
}

// updateTask applies a change to a copy of the task. When apply returns false
// the state and version are left untouched.
func (s *Store) updateTask(taskID, field string, apply func(*model.Task) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, t := range s.state.Tasks {
		if t.ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.logger.Debug("task not found", "id", taskID, "field", field)
		return
	}
	tasks := make([]model.Task, len(s.state.Tasks))
	copy(tasks, s.state.Tasks)
	updated := tasks[idx].Clone()
	if !apply(&updated) {
		return
	}
	tasks[idx] = updated
	s.state.Tasks = tasks
	s.bump()
	s.logger.Debug("task updated", "id", taskID, "field", field)
}

func (s *Store) bump() {
	s.state.Version++
}

func appendCopy[T any](src []T, v T) []T {
	out := make([]T, len(src), len(src)+1)
	copy(out, src)
	return append(out, v)
}
