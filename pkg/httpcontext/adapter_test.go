package httpcontext_test

import (
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/taskup/pkg/httpcontext"
	"github.com/fastygo/taskup/pkg/logger"
)

func TestAdapter_Attach(t *testing.T) {
	var rctx fasthttp.RequestCtx
	rctx.Request.Header.Set("X-Request-ID", "req-42")
	rctx.Request.Header.Set("X-User-ID", "u1")
	rctx.Request.Header.SetUserAgent("go-test")

	ctx, cancel := httpcontext.NewAdapter(time.Second).Attach(&rctx)
	defer cancel()

	if got := logger.RequestID(ctx); got != "req-42" {
		t.Errorf("request id: got %q", got)
	}
	if got := string(rctx.Response.Header.Peek("X-Request-ID")); got != "req-42" {
		t.Errorf("response header: got %q", got)
	}
	if got := httpcontext.UserID(ctx); got != "u1" {
		t.Errorf("user id: got %q", got)
	}
	if ua, _ := ctx.Value(httpcontext.KeyUserAgent).(string); ua != "go-test" {
		t.Errorf("user agent: got %q", ua)
	}
	if _, ok := ctx.Deadline(); !ok {
		t.Error("expected a deadline")
	}
}

func TestAdapter_GeneratesRequestID(t *testing.T) {
	var rctx fasthttp.RequestCtx
	ctx, cancel := httpcontext.NewAdapter(0).Attach(&rctx)
	defer cancel()

	id := logger.RequestID(ctx)
	if id == "" || string(rctx.Response.Header.Peek("X-Request-ID")) != id {
		t.Errorf("generated id %q not echoed", id)
	}
	if httpcontext.UserID(ctx) != "" {
		t.Error("no user id expected")
	}
}
