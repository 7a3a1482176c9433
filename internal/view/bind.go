// Package view derives what each calendar cell, hour slot and category
// panel shows from a store snapshot, and turns drops into store calls.
package view

import (
	"time"

	"taskcal/internal/calendar"
	"taskcal/internal/model"
	"taskcal/internal/store"
)

type DayCell struct {
	Date          calendar.Date
	InAnchorMonth bool
	IsToday       bool
	Tasks         []model.Task
}

type DaySchedule struct {
	Date        calendar.Date
	Unscheduled []model.Task
	Slots       [calendar.HoursPerDay][]model.Task
}

type CategoryPanel struct {
	Type    model.TaskType
	Backlog []model.Task
}

// Layout is everything the calendar pane needs for one render.
type Layout struct {
	Mode     calendar.ViewMode
	Anchor   calendar.Date
	Title    string
	Cells    []DayCell
	Schedule *DaySchedule
}

// TasksOn keeps the tasks dated d, in store order.
func TasksOn(tasks []model.Task, d calendar.Date) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.OnDate(d) {
			out = append(out, t)
		}
	}
	return out
}

func BindCells(snap store.Snapshot, cells []calendar.Cell, now time.Time) []DayCell {
	out := make([]DayCell, len(cells))
	for i, c := range cells {
		out[i] = DayCell{
			Date:          c.Date,
			InAnchorMonth: c.InAnchorMonth,
			IsToday:       calendar.IsToday(c.Date, now),
			Tasks:         TasksOn(snap.Tasks, c.Date),
		}
	}
	return out
}

// Schedule splits the tasks dated d into the unscheduled pane and the hour
// slots of the day view.
func Schedule(snap store.Snapshot, d calendar.Date) DaySchedule {
	ds := DaySchedule{Date: d}
	for _, t := range TasksOn(snap.Tasks, d) {
		if t.ScheduledTime == nil {
			ds.Unscheduled = append(ds.Unscheduled, t)
			continue
		}
		h := *t.ScheduledTime
		if h < 0 || int(h) >= calendar.HoursPerDay {
			continue
		}
		ds.Slots[h] = append(ds.Slots[h], t)
	}
	return ds
}

// Backlog lists a category's undated tasks. Once dated, a task only shows
// on the calendar.
func Backlog(snap store.Snapshot, typeID string) []model.Task {
	var out []model.Task
	for _, t := range snap.Tasks {
		if t.TypeID == typeID && !t.Scheduled() {
			out = append(out, t)
		}
	}
	return out
}

func Panels(snap store.Snapshot) []CategoryPanel {
	panels := make([]CategoryPanel, len(snap.TaskTypes))
	for i, tt := range snap.TaskTypes {
		panels[i] = CategoryPanel{Type: tt, Backlog: Backlog(snap, tt.ID)}
	}
	return panels
}

func Calendar(snap store.Snapshot, now time.Time) Layout {
	anchor := snap.CurrentDate
	l := Layout{
		Mode:   snap.ViewMode,
		Anchor: anchor,
		Title:  calendar.RangeTitle(anchor, snap.ViewMode),
		Cells:  BindCells(snap, calendar.Project(anchor, snap.ViewMode), now),
	}
	if snap.ViewMode == calendar.ViewDay {
		ds := Schedule(snap, anchor)
		l.Schedule = &ds
	}
	return l
}

// Color returns the category colour for t, or a neutral grey when the
// category no longer exists.
func Color(snap store.Snapshot, t model.Task) string {
	if tt, ok := snap.TaskType(t.TypeID); ok {
		return tt.Color
	}
	return NeutralColor
}

const NeutralColor = "#71717a"
