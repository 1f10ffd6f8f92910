package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo/api/transport"
	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/internal/services/notify"
	"github.com/fastygo/todo/pkg/httpcontext"
)

type NotificationHandler struct {
	baseHandler
	feed *notify.Feed
}

func NewNotificationHandler(feed *notify.Feed, adapter *httpcontext.Adapter, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		baseHandler: newBaseHandler(adapter, logger),
		feed:        feed,
	}
}

// @Summary Poll notifications
// @Tags notifications
// @Param after query int false "last sequence number already seen"
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) List(ctx *fasthttp.RequestCtx) {
	var after uint64
	if raw := string(ctx.QueryArgs().Peek("after")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.respondError(ctx, domain.WrapError(domain.ErrCodeInvalid, "after must be a sequence number", err))
			return
		}
		after = parsed
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NotificationFeedView{
		Items: h.feed.Since(after),
		Last:  h.feed.Last(),
	})
}
