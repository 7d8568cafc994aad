package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskup/api/transport"
	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/pkg/httpcontext"
	participantUC "github.com/fastygo/taskup/usecase/participant"
)

type ParticipantHandler struct {
	baseHandler
	uc *participantUC.UseCase
}

func NewParticipantHandler(uc *participantUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ParticipantHandler {
	return &ParticipantHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List participants
// @Tags participants
// @Router /api/v1/participants [get]
func (h *ParticipantHandler) GetParticipants(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.uc.List())
}

// @Summary Get participant
// @Tags participants
// @Router /api/v1/participants/{id} [get]
func (h *ParticipantHandler) GetParticipant(ctx *fasthttp.RequestCtx) {
	p, err := h.uc.Get(pathID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, p)
}

// @Summary Add participant
// @Tags participants
// @Router /api/v1/participants [post]
func (h *ParticipantHandler) CreateParticipant(ctx *fasthttp.RequestCtx) {
	var req transport.ParticipantRequest
	if !h.decode(ctx, &req) {
		return
	}
	in, err := req.NewParticipant()
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, out := h.uc.Add(stdCtx, in)
	h.respondOutcome(stdCtx, ctx, http.StatusCreated, created, out)
}

// @Summary Remove participant
// @Tags participants
// @Router /api/v1/participants/{id} [delete]
func (h *ParticipantHandler) DeleteParticipant(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	out := h.uc.Remove(stdCtx, pathID(ctx))
	h.respondOutcome(stdCtx, ctx, http.StatusOK, nil, out)
}

// @Summary Remove all participants
// @Tags participants
// @Router /api/v1/participants [delete]
func (h *ParticipantHandler) ResetParticipants(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	out := h.uc.ResetAll(stdCtx)
	h.respondOutcome(stdCtx, ctx, http.StatusOK, []domain.Participant{}, out)
}

// @Summary Replace participants with the sample leaderboard
// @Tags participants
// @Router /api/v1/participants/sample [post]
func (h *ParticipantHandler) LoadSample(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	rows, out := h.uc.LoadSample(stdCtx)
	h.respondOutcome(stdCtx, ctx, http.StatusOK, rows, out)
}

// @Summary Add points (delta may be negative)
// @Tags participants
// @Router /api/v1/participants/{id}/points [post]
func (h *ParticipantHandler) AdjustPoints(ctx *fasthttp.RequestCtx) {
	var req transport.PointsRequest
	if !h.decode(ctx, &req) {
		return
	}
	if req.Delta == nil {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, out := h.uc.AdjustPoints(stdCtx, pathID(ctx), *req.Delta)
	h.respondOutcome(stdCtx, ctx, http.StatusOK, optional(updated, out.Applied), out)
}

// @Summary Set points
// @Tags participants
// @Router /api/v1/participants/{id}/points [put]
func (h *ParticipantHandler) SetPoints(ctx *fasthttp.RequestCtx) {
	var req transport.PointsRequest
	if !h.decode(ctx, &req) {
		return
	}
	if req.Points == nil {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, out := h.uc.SetPoints(stdCtx, pathID(ctx), *req.Points)
	h.respondOutcome(stdCtx, ctx, http.StatusOK, optional(updated, out.Applied), out)
}
