package middleware

import (
	"testing"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestAccessLogRecordsFailures(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	handler := AccessLog(zap.New(core))(func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusBadGateway)
	})

	var rc fasthttp.RequestCtx
	rc.Request.SetRequestURI("/api/v1/tasks")
	handler(&rc)

	entries := logs.FilterMessage("request failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one failure entry, got %d", logs.Len())
	}
	if got := entries[0].ContextMap()["status"]; got != int64(fasthttp.StatusBadGateway) {
		t.Errorf("status field = %v", got)
	}
}

func TestRecover(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := Recover(zap.New(core))(func(ctx *fasthttp.RequestCtx) {
		panic("boom")
	})

	var rc fasthttp.RequestCtx
	handler(&rc)

	if rc.Response.StatusCode() != fasthttp.StatusInternalServerError {
		t.Errorf("status = %d", rc.Response.StatusCode())
	}
	if logs.Len() != 1 {
		t.Errorf("expected the panic to be logged")
	}
}
