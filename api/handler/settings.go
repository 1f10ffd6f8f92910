package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/pkg/httpcontext"
)

type SettingsHandler struct {
	baseHandler
	view transport.SettingsView
}

func NewSettingsHandler(view transport.SettingsView, adapter *httpcontext.Adapter, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		view:        view,
	}
}

// @Summary Presentation settings
// @Tags settings
// @Router /api/v1/settings [get]
func (h *SettingsHandler) Get(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.view)
}
