package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/internal/countdown"
	"github.com/fastygo/todo/internal/infrastructure/monitor"
	"github.com/fastygo/todo/pkg/httpcontext"
	taskUC "github.com/fastygo/todo/usecase/task"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
	engine  *countdown.Engine
	manager *taskUC.Manager
}

func NewHealthHandler(mon *monitor.Monitor, engine *countdown.Engine, manager *taskUC.Manager, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
		engine:      engine,
		manager:     manager,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"store":     status,
		"countdown": map[string]interface{}{
			"last_tick": h.engine.LastTick(),
		},
		"tasks": len(h.manager.Tasks()),
	}

	if status.Store {
		h.respondSuccess(ctx, http.StatusOK, payload)
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "task store unreachable", payload))
}
