package httpcontext

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/todo/pkg/logger"
)

func TestAttachKeepsIncomingRequestID(t *testing.T) {
	var rc fasthttp.RequestCtx
	rc.Request.Header.Set(HeaderRequestID, "req-42")

	ctx, cancel := NewAdapter(nil, time.Second).Attach(&rc)
	defer cancel()

	if got := logger.RequestID(ctx); got != "req-42" {
		t.Errorf("RequestID = %q", got)
	}
	if got := string(rc.Response.Header.Peek(HeaderRequestID)); got != "req-42" {
		t.Errorf("response header = %q", got)
	}
	if _, ok := ctx.Deadline(); !ok {
		t.Error("request context should carry a deadline")
	}
}

func TestAttachGeneratesRequestID(t *testing.T) {
	var rc fasthttp.RequestCtx
	ctx, cancel := NewAdapter(context.Background(), 0).Attach(&rc)
	defer cancel()

	if _, err := uuid.Parse(logger.RequestID(ctx)); err != nil {
		t.Errorf("expected a uuid request id, got %q", logger.RequestID(ctx))
	}
}

func TestAttachFollowsParentCancellation(t *testing.T) {
	parent, stop := context.WithCancel(context.Background())
	var rc fasthttp.RequestCtx
	ctx, cancel := NewAdapter(parent, time.Minute).Attach(&rc)
	defer cancel()

	stop()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("request context outlived its parent")
	}
}
