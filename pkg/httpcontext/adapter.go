package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/todo/pkg/logger"
)

const HeaderRequestID = "X-Request-ID"

// Adapter turns a fasthttp request into a context.Context bounded by a timeout
// and by the lifetime of the application.
type Adapter struct {
	parent  context.Context
	timeout time.Duration
}

// NewAdapter derives request contexts from parent. A nil parent means Background.
func NewAdapter(parent context.Context, timeout time.Duration) *Adapter {
	if parent == nil {
		parent = context.Background()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{parent: parent, timeout: timeout}
}

// Attach returns a request context carrying the request id, echoing the id back
// in the response headers.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(a.parent, a.timeout)

	reqID := requestID(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)
	ctx.Response.Header.Set(HeaderRequestID, reqID)

	return stdCtx, cancel
}

func requestID(ctx *fasthttp.RequestCtx) string {
	if header := strings.TrimSpace(string(ctx.Request.Header.Peek(HeaderRequestID))); header != "" {
		return header
	}
	return uuid.NewString()
}
