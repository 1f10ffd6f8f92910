package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/pkg/httpcontext"
	taskUC "github.com/fastygo/todo/usecase/task"
)

type SelectionHandler struct {
	baseHandler
	manager *taskUC.Manager
}

func NewSelectionHandler(manager *taskUC.Manager, adapter *httpcontext.Adapter, logger *zap.Logger) *SelectionHandler {
	return &SelectionHandler{
		baseHandler: newBaseHandler(adapter, logger),
		manager:     manager,
	}
}

// @Summary Current selection
// @Tags selection
// @Router /api/v1/selection [get]
func (h *SelectionHandler) GetSelection(ctx *fasthttp.RequestCtx) {
	if !h.manager.SelectionEnabled() {
		h.respondError(ctx, domain.ErrSelectionDisabled)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.SelectionView{IDs: h.manager.Selection()})
}

// @Summary Toggle a task in the selection
// @Tags selection
// @Router /api/v1/selection/{id} [post]
func (h *SelectionHandler) ToggleSelection(ctx *fasthttp.RequestCtx) {
	selected, err := h.manager.ToggleSelection(pathID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.SelectionView{
		IDs:      h.manager.Selection(),
		Selected: &selected,
	})
}

// @Summary Delete the selected tasks
// @Tags selection
// @Router /api/v1/selection [delete]
func (h *SelectionHandler) DeleteSelected(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	dlg := &requestDialog{confirmed: confirmed(ctx)}
	result, _, err := h.manager.DeleteSelected(stdCtx, dlg)
	h.respondBulk(ctx, dlg, result, err)
}
