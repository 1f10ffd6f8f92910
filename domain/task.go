package domain

import (
	"strings"
	"time"
)

// Task is a single to-do item as stored in the task collection.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Deadline  string `json:"deadline"`
}

// TaskPatch carries the fields of a partial update; nil fields are left unchanged.
type TaskPatch struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Deadline  *string `json:"deadline,omitempty"`
}

// Apply returns a copy of t with the patch applied.
func (p TaskPatch) Apply(t Task) Task {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Deadline != nil {
		t.Deadline = *p.Deadline
	}
	return t
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Text == nil && p.Completed == nil && p.Deadline == nil
}

// DeadlineLayouts lists the accepted deadline formats in the order they are tried.
// The first one is what an HTML datetime-local input submits.
var DeadlineLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDeadline parses a deadline string. Layouts without a zone are read in loc.
func ParseDeadline(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrDeadlineRequired
	}
	for _, layout := range DeadlineLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, NewError(ErrCodeInvalid, "deadline "+value+" is not a valid date")
}

// ValidateFields checks the presence and parseability of user-supplied task fields
// and returns the trimmed values.
func ValidateFields(text, deadline string, loc *time.Location) (string, string, error) {
	text = strings.TrimSpace(text)
	deadline = strings.TrimSpace(deadline)
	if text == "" {
		return "", "", ErrTextRequired
	}
	if deadline == "" {
		return "", "", ErrDeadlineRequired
	}
	if _, err := ParseDeadline(deadline, loc); err != nil {
		return "", "", err
	}
	return text, deadline, nil
}
