package task

import (
	"context"
	"fmt"

	"github.com/fastygo/todo/domain"
)

// Form describes an input dialog, prefilled for edits.
type Form struct {
	Title    string
	Text     string
	Deadline string
	Submit   string
}

// Input is what the user entered in a Form.
type Input struct {
	Text     string
	Deadline string
}

// Prompt describes a yes/no confirmation.
type Prompt struct {
	Title   string
	Message string
	Confirm string
}

// Dialog collects input and confirmations from the user. RequestInput reports
// ok=false when the user cancelled.
type Dialog interface {
	RequestInput(ctx context.Context, form Form) (Input, bool, error)
	Confirm(ctx context.Context, prompt Prompt) (bool, error)
}

// AddTask asks for the fields of a new task and creates it.
// It reports ok=false if the dialog was cancelled.
func (m *Manager) AddTask(ctx context.Context, dlg Dialog) (domain.Task, bool, error) {
	input, ok, err := dlg.RequestInput(ctx, Form{Title: "Add a new task", Submit: "Add"})
	if err != nil || !ok {
		return domain.Task{}, false, err
	}
	task, err := m.Create(ctx, input.Text, input.Deadline)
	if err != nil {
		return domain.Task{}, false, err
	}
	return task, true, nil
}

// EditTask opens a dialog prefilled with the task's fields and applies the result.
func (m *Manager) EditTask(ctx context.Context, id string, dlg Dialog) (domain.Task, bool, error) {
	current, found := m.Task(id)
	if !found {
		return domain.Task{}, false, domain.ErrTaskNotFound
	}
	input, ok, err := dlg.RequestInput(ctx, Form{
		Title:    "Edit task",
		Text:     current.Text,
		Deadline: current.Deadline,
		Submit:   "Save",
	})
	if err != nil || !ok {
		return current, false, err
	}
	task, err := m.Edit(ctx, id, input.Text, input.Deadline)
	if err != nil {
		return current, false, err
	}
	return task, true, nil
}

// DeleteTask asks for confirmation and then deletes the task.
// Nothing is sent to the store unless the user confirms.
func (m *Manager) DeleteTask(ctx context.Context, id string, dlg Dialog) (bool, error) {
	if _, found := m.Task(id); !found {
		return false, domain.ErrTaskNotFound
	}
	confirmed, err := dlg.Confirm(ctx, Prompt{
		Title:   "Are you sure you want to delete this task?",
		Message: "This action cannot be undone.",
		Confirm: "Yes, delete it!",
	})
	if err != nil || !confirmed {
		return false, err
	}
	if err := m.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteSelected asks for confirmation and bulk deletes the selection set.
// An empty selection is a no-op that never prompts.
func (m *Manager) DeleteSelected(ctx context.Context, dlg Dialog) (BulkResult, bool, error) {
	if !m.opts.Selection {
		return BulkResult{}, false, domain.ErrSelectionDisabled
	}
	ids := m.Selection()
	if len(ids) == 0 {
		return BulkResult{}, false, nil
	}
	return m.confirmBulkDelete(ctx, ids, dlg)
}

// DeleteMany asks for confirmation and bulk deletes the given identifiers.
func (m *Manager) DeleteMany(ctx context.Context, ids []string, dlg Dialog) (BulkResult, bool, error) {
	if len(ids) == 0 {
		return BulkResult{}, false, nil
	}
	return m.confirmBulkDelete(ctx, ids, dlg)
}

func (m *Manager) confirmBulkDelete(ctx context.Context, ids []string, dlg Dialog) (BulkResult, bool, error) {
	confirmed, err := dlg.Confirm(ctx, Prompt{
		Title:   fmt.Sprintf("Delete %d task(s)?", len(ids)),
		Confirm: "Yes, delete them!",
	})
	if err != nil || !confirmed {
		return BulkResult{}, false, err
	}
	result, err := m.BulkDelete(ctx, ids)
	return result, true, err
}
