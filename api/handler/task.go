package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/internal/countdown"
	"github.com/fastygo/todo/internal/theme"
	"github.com/fastygo/todo/pkg/httpcontext"
	taskUC "github.com/fastygo/todo/usecase/task"
)

// Presenter renders tasks with their countdown label, status and colour.
type Presenter struct {
	Manager    *taskUC.Manager
	Engine     *countdown.Engine
	Palette    theme.Palette
	WindowDays int
}

func (p Presenter) now() time.Time {
	if p.Engine != nil {
		return p.Engine.Now()
	}
	return time.Now()
}

func (p Presenter) View(task domain.Task, now time.Time) transport.TaskView {
	status := countdown.Classify(task, now, p.Manager.Location(), p.WindowDays)
	remaining := countdown.PendingLabel
	if p.Engine != nil {
		remaining = p.Engine.Lookup(task.ID)
	}
	return transport.TaskView{
		ID:        task.ID,
		Text:      task.Text,
		Completed: task.Completed,
		Deadline:  task.Deadline,
		Remaining: remaining,
		Status:    string(status),
		Color:     p.Palette.Color(status),
		Selected:  p.Manager.IsSelected(task.ID),
	}
}

func (p Presenter) Views(tasks []domain.Task) []transport.TaskView {
	now := p.now()
	views := make([]transport.TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, p.View(task, now))
	}
	return views
}

type TaskHandler struct {
	baseHandler
	manager   *taskUC.Manager
	presenter Presenter
}

func NewTaskHandler(presenter Presenter, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		manager:     presenter.Manager,
		presenter:   presenter,
	}
}

// @Summary List tasks
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.presenter.Views(h.manager.Tasks()))
}

// @Summary Add task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	dlg, ok := h.inputDialog(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, done, err := h.manager.AddTask(stdCtx, dlg)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if !done {
		h.respondSuccess(ctx, http.StatusOK, transport.DialogOutcome{Cancelled: true})
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, transport.DialogOutcome{Task: h.presenter.View(task, h.presenter.now())})
}

// @Summary Edit task
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	dlg, ok := h.inputDialog(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, done, err := h.manager.EditTask(stdCtx, pathID(ctx), dlg)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	outcome := transport.DialogOutcome{Cancelled: !done, Task: h.presenter.View(task, h.presenter.now())}
	h.respondSuccess(ctx, http.StatusOK, outcome)
}

// @Summary Toggle completion
// @Tags tasks
// @Router /api/v1/tasks/{id}/toggle [post]
func (h *TaskHandler) ToggleTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.manager.ToggleComplete(stdCtx, pathID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, h.presenter.View(task, h.presenter.now()))
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	dlg := &requestDialog{confirmed: confirmed(ctx)}
	deleted, err := h.manager.DeleteTask(stdCtx, pathID(ctx), dlg)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if !deleted {
		h.respondErrorMeta(ctx, domain.ErrConfirmationNeeded, dlg.prompt)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"deleted": pathID(ctx)})
}

// @Summary Delete several tasks
// @Tags tasks
// @Router /api/v1/tasks/bulk-delete [post]
func (h *TaskHandler) BulkDelete(ctx *fasthttp.RequestCtx) {
	var req transport.BulkDeleteRequest
	if _, err := decodeBody(ctx, &req); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	dlg := &requestDialog{confirmed: confirmed(ctx)}
	result, _, err := h.manager.DeleteMany(stdCtx, req.IDs, dlg)
	h.respondBulk(ctx, dlg, result, err)
}

// @Summary Reload tasks from the store
// @Tags tasks
// @Router /api/v1/tasks/reload [post]
func (h *TaskHandler) Reload(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.manager.Load(stdCtx); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, h.presenter.Views(h.manager.Tasks()))
}

func (h baseHandler) respondBulk(ctx *fasthttp.RequestCtx, dlg *requestDialog, result taskUC.BulkResult, err error) {
	switch {
	case err != nil:
		h.respondErrorMeta(ctx, err, result)
	case dlg.declined():
		h.respondErrorMeta(ctx, domain.ErrConfirmationNeeded, dlg.prompt)
	default:
		h.respondSuccess(ctx, http.StatusOK, result)
	}
}

// inputDialog builds a dialog from the request body. It writes the error
// response itself and reports false when the body is malformed.
func (h *TaskHandler) inputDialog(ctx *fasthttp.RequestCtx) (*requestDialog, bool) {
	var req transport.TaskRequest
	empty, err := decodeBody(ctx, &req)
	if err != nil {
		h.respondError(ctx, err)
		return nil, false
	}
	if empty {
		return &requestDialog{}, true
	}
	return &requestDialog{input: &req}, true
}
