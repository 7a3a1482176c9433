package view

import "taskcal/internal/calendar"

// Scheduler is the part of the store a drop needs.
type Scheduler interface {
	UpdateTaskDate(taskID string, date *calendar.Date)
	UpdateTaskSchedule(taskID string, hour *calendar.Hour)
}

// Target is where a dragged task was released: a calendar cell, or an
// hour slot of that date when Hour is set. Category panels are not
// targets; a dated task cannot be dropped back into the backlog.
type Target struct {
	Date calendar.Date
	Hour *calendar.Hour
}

func CellTarget(d calendar.Date) Target {
	return Target{Date: d}
}

func SlotTarget(d calendar.Date, h calendar.Hour) Target {
	return Target{Date: d, Hour: &h}
}

func (t Target) String() string {
	if t.Hour != nil {
		return t.Date.String() + " " + t.Hour.String()
	}
	return t.Date.String()
}

// Drop applies a drop. A slot drop anchors the date first, which clears any
// stale hour, then sets the new hour.
func Drop(s Scheduler, taskID string, t Target) {
	d := t.Date
	s.UpdateTaskDate(taskID, &d)
	if t.Hour != nil {
		s.UpdateTaskSchedule(taskID, t.Hour)
	}
}
