package handler

import (
	"context"
	"strings"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/domain"
	taskUC "github.com/fastygo/todo/usecase/task"
)

// requestDialog answers the manager's dialogs from a single HTTP request: the
// body fills input forms and the confirm flag answers prompts.
type requestDialog struct {
	input     *transport.TaskRequest
	confirmed bool

	prompt *taskUC.Prompt
}

func (d *requestDialog) RequestInput(_ context.Context, _ taskUC.Form) (taskUC.Input, bool, error) {
	if d.input == nil || d.input.Cancel {
		return taskUC.Input{}, false, nil
	}
	text := strings.TrimSpace(d.input.Text)
	deadline := strings.TrimSpace(d.input.Deadline)
	if text == "" {
		return taskUC.Input{}, false, domain.ErrTextRequired
	}
	if deadline == "" {
		return taskUC.Input{}, false, domain.ErrDeadlineRequired
	}
	return taskUC.Input{Text: text, Deadline: deadline}, true, nil
}

func (d *requestDialog) Confirm(_ context.Context, prompt taskUC.Prompt) (bool, error) {
	d.prompt = &prompt
	return d.confirmed, nil
}

// declined reports whether a prompt was shown and not confirmed.
func (d *requestDialog) declined() bool {
	return d.prompt != nil && !d.confirmed
}

var _ taskUC.Dialog = (*requestDialog)(nil)
