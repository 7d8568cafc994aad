package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskup/api/transport"
	"github.com/fastygo/taskup/internal/infrastructure/monitor"
	"github.com/fastygo/taskup/pkg/httpcontext"
)

// StorageStatus reports the last storage health check.
type StorageStatus interface {
	GetStatus() monitor.Status
}

type HealthHandler struct {
	baseHandler
	monitor StorageStatus
}

func NewHealthHandler(mon StorageStatus, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"storage":   status,
	}

	if status.Online {
		h.respondSuccess(ctx, http.StatusOK, payload)
		return
	}
	// Stores keep serving from memory while the backend is down.
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "storage unavailable", payload))
}
