package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskup/api/transport"
	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/pkg/httpcontext"
	authUC "github.com/fastygo/taskup/usecase/auth"
)

type ProfileHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewProfileHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Get profile
// @Tags profile
// @Success 200 {object} transport.Envelope
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetProfile(ctx *fasthttp.RequestCtx) {
	user, ok := h.uc.Current()
	if !ok {
		h.respondError(ctx, domain.ErrNoSession)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Update profile
// @Tags profile
// @Accept json
// @Produce json
// @Router /api/v1/profile [put]
func (h *ProfileHandler) UpdateProfile(ctx *fasthttp.RequestCtx) {
	var req transport.ProfileUpdateRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, out, err := h.uc.UpdateProfile(stdCtx, req.Patch())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if !out.Applied {
		h.respondError(ctx, domain.ErrNoSession)
		return
	}
	h.respondOutcome(stdCtx, ctx, http.StatusOK, user, out)
}
