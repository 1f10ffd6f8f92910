package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/pkg/httpcontext"
)

const headerConfirm = "X-Confirm"

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	h.respondErrorMeta(ctx, err, nil)
}

func (h baseHandler) respondErrorMeta(ctx *fasthttp.RequestCtx, err error, meta interface{}) {
	status, code := mapError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Warn("request failed", zap.String("code", code), zap.Error(err))
	}
	h.respondJSON(ctx, status, transport.NewError(code, err.Error(), meta))
}

func mapError(err error) (int, string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeConfirmationRequired):
		return http.StatusPreconditionRequired, string(domain.ErrCodeConfirmationRequired)
	case domain.IsDomainError(err, domain.ErrCodeStore):
		return http.StatusBadGateway, string(domain.ErrCodeStore)
	case domain.IsDomainError(err, domain.ErrCodeForbidden):
		return http.StatusForbidden, string(domain.ErrCodeForbidden)
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, string(domain.ErrCodeInvalid)
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, string(domain.ErrCodeNotFound)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}

// confirmed reads the user's answer to a destructive prompt from the
// X-Confirm header or the confirm query parameter.
func confirmed(ctx *fasthttp.RequestCtx) bool {
	value := string(ctx.Request.Header.Peek(headerConfirm))
	if value == "" {
		value = string(ctx.QueryArgs().Peek("confirm"))
	}
	ok, _ := strconv.ParseBool(strings.TrimSpace(value))
	return ok
}

func pathID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("id").(string)
	return strings.TrimSpace(id)
}

// decodeBody unmarshals a JSON body into dst. It reports empty=true for a
// missing or blank body.
func decodeBody(ctx *fasthttp.RequestCtx, dst interface{}) (empty bool, err error) {
	body := bytes.TrimSpace(ctx.PostBody())
	if len(body) == 0 {
		return true, nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return false, domain.WrapError(domain.ErrCodeInvalid, "invalid payload", err)
	}
	return false, nil
}
