package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskup/api/transport"
	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/internal/persist"
	"github.com/fastygo/taskup/pkg/httpcontext"
	appLogger "github.com/fastygo/taskup/pkg/logger"
)

// UserIDHeader is set by the auth middleware once a token is accepted.
const UserIDHeader = "X-User-ID"

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

// respondOutcome reports a mutation result, surfacing save failures and
// absorbed not-found ids in meta.
func (h baseHandler) respondOutcome(ctx context.Context, rctx *fasthttp.RequestCtx, status int, data interface{}, out persist.Outcome) {
	if out.PersistErr != nil {
		appLogger.WithRequestID(ctx, h.logger).Warn("change kept in memory only",
			zap.String("user_id", httpcontext.UserID(ctx)), zap.Error(out.PersistErr))
	}
	var meta interface{}
	if m := transport.MutationMeta(out.Applied, out.Warning()); m != nil {
		meta = m
	}
	h.respondJSON(rctx, status, transport.NewSuccess(data, meta))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, code := mapError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	h.respondJSON(ctx, status, transport.NewError(code, err.Error(), nil))
}

// decode reads the JSON body into dst and answers 400 on failure.
func (h baseHandler) decode(ctx *fasthttp.RequestCtx, dst interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return false
	}
	return true
}

func (h baseHandler) userID(ctx *fasthttp.RequestCtx) string {
	return string(ctx.Request.Header.Peek(UserIDHeader))
}

func pathID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("id").(string)
	return id
}

func mapError(err error) (int, string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return http.StatusUnauthorized, string(domain.ErrCodeUnauthorized)
	case domain.IsDomainError(err, domain.ErrCodeForbidden):
		return http.StatusForbidden, string(domain.ErrCodeForbidden)
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, string(domain.ErrCodeInvalid)
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, string(domain.ErrCodeNotFound)
	case domain.IsDomainError(err, domain.ErrCodeConflict):
		return http.StatusConflict, string(domain.ErrCodeConflict)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}
