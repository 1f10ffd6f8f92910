package testutil

import (
	"context"

	taskUC "github.com/fastygo/todo/usecase/task"
)

// ScriptedDialog answers dialogs with preset values and records what was asked.
type ScriptedDialog struct {
	Input     taskUC.Input
	Cancel    bool
	Confirmed bool
	Err       error

	Forms   []taskUC.Form
	Prompts []taskUC.Prompt
}

// RequestInput implements taskUC.Dialog.
func (d *ScriptedDialog) RequestInput(ctx context.Context, form taskUC.Form) (taskUC.Input, bool, error) {
	d.Forms = append(d.Forms, form)
	if d.Err != nil {
		return taskUC.Input{}, false, d.Err
	}
	if d.Cancel {
		return taskUC.Input{}, false, nil
	}
	return d.Input, true, nil
}

// Confirm implements taskUC.Dialog.
func (d *ScriptedDialog) Confirm(ctx context.Context, prompt taskUC.Prompt) (bool, error) {
	d.Prompts = append(d.Prompts, prompt)
	if d.Err != nil {
		return false, d.Err
	}
	return d.Confirmed, nil
}
