package model

import "taskcal/internal/calendar"

// Task is a to-do item, optionally anchored to a date and an hour slot.
// Date nil means the task is in its category's backlog.
type Task struct {
	ID            string
	Title         string
	TypeID        string
	Date          *calendar.Date
	ScheduledTime *calendar.Hour
	Completed     bool
}

// TaskType is a colour-tagged category. Color is a "#rrggbb" string.
type TaskType struct {
	ID    string
	Name  string
	Color string
}

const (
	WorkTypeID     = "work"
	StudyTypeID    = "study"
	PersonalTypeID = "personal"
)

// SeedTaskTypes are the categories every store starts with.
func SeedTaskTypes() []TaskType {
	return []TaskType{
		{ID: WorkTypeID, Name: "Work", Color: "#3b82f6"},
		{ID: StudyTypeID, Name: "Study", Color: "#10b981"},
		{ID: PersonalTypeID, Name: "Personal", Color: "#8b5cf6"},
	}
}

// Valid reports whether an hour slot is only set on a dated task.
func (t Task) Valid() bool {
	return t.ScheduledTime == nil || t.Date != nil
}

// Scheduled reports whether t has left its category backlog.
func (t Task) Scheduled() bool {
	return t.Date != nil
}

// OnDate reports whether t is dated d.
func (t Task) OnDate(d calendar.Date) bool {
	return t.Date != nil && t.Date.Equal(d)
}

// Clone copies t without sharing the optional fields.
func (t Task) Clone() Task {
	if t.Date != nil {
		d := *t.Date
		t.Date = &d
	}
	if t.ScheduledTime != nil {
		h := *t.ScheduledTime
		t.ScheduledTime = &h
	}
	return t
}
