package domain

import (
	"strings"
	"time"
)

// DefaultTaskPoints is the reward assigned to a task created without explicit points.
const DefaultTaskPoints = 50

// Task represents a unit of academic work, optionally tied to a subject or a group.
// JSON names follow the persisted layout shared with earlier clients.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Subject     string `json:"materia,omitempty"`
	DueDate     string `json:"fechaEntrega,omitempty"`
	Completed   bool   `json:"completada"`
	Points      int    `json:"points"`
	GroupID     string `json:"groupId,omitempty"`
}

// NewTask carries the caller-provided fields of a task about to be created.
// Nil Completed/Points fall back to the defaults.
type NewTask struct {
	Title       string
	Description string
	Subject     string
	DueDate     string
	GroupID     string
	Completed   *bool
	Points      *int
}

// TaskPatch lists the fields to overwrite on an existing task; nil means keep.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Subject     *string `json:"materia,omitempty"`
	DueDate     *string `json:"fechaEntrega,omitempty"`
	Completed   *bool   `json:"completada,omitempty"`
	Points      *int    `json:"points,omitempty"`
	GroupID     *string `json:"groupId,omitempty"`
}

// Apply merges the patch into t.
func (p TaskPatch) Apply(t *Task) {
	if t == nil {
		return
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Subject != nil {
		t.Subject = *p.Subject
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Points != nil {
		t.Points = *p.Points
	}
	if p.GroupID != nil {
		t.GroupID = *p.GroupID
	}
}

// HasSubject reports whether the task carries a non-blank subject.
func (t *Task) HasSubject() bool {
	return t != nil && strings.TrimSpace(t.Subject) != ""
}

// Due parses the stored due date in loc. ok is false when the date is absent or malformed.
func (t *Task) Due(loc *time.Location) (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}
	return ParseDueDate(t.DueDate, loc)
}

var dueLayouts = []string{"2006-01-02", "02/01/2006"}

// ParseDueDate accepts YYYY-MM-DD, DD/MM/YYYY and RFC 3339 timestamps and
// returns midnight of that calendar day in loc.
func ParseDueDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range dueLayouts {
		if parsed, err := time.ParseInLocation(layout, value, loc); err == nil {
			return parsed, true
		}
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		y, m, d := parsed.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), true
	}
	return time.Time{}, false
}
