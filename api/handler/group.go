package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskup/api/transport"
	"github.com/fastygo/taskup/pkg/httpcontext"
	groupUC "github.com/fastygo/taskup/usecase/group"
)

type GroupHandler struct {
	baseHandler
	uc *groupUC.UseCase
}

func NewGroupHandler(uc *groupUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *GroupHandler {
	return &GroupHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List groups
// @Tags groups
// @Router /api/v1/groups [get]
func (h *GroupHandler) GetGroups(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.uc.List())
}

// @Summary Get a group with its tasks
// @Tags groups
// @Router /api/v1/groups/{id} [get]
func (h *GroupHandler) GetGroup(ctx *fasthttp.RequestCtx) {
	g, err := h.uc.WithTasks(pathID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, g)
}

// @Summary Create group
// @Tags groups
// @Router /api/v1/groups [post]
func (h *GroupHandler) CreateGroup(ctx *fasthttp.RequestCtx) {
	var req transport.GroupRequest
	if !h.decode(ctx, &req) {
		return
	}
	in, err := req.NewGroup(h.userID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, out, err := h.uc.Add(stdCtx, in)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondOutcome(stdCtx, ctx, http.StatusCreated, created, out)
}

// @Summary Check a group key
// @Tags groups
// @Router /api/v1/groups/join [post]
func (h *GroupHandler) JoinGroup(ctx *fasthttp.RequestCtx) {
	var req transport.JoinGroupRequest
	if !h.decode(ctx, &req) {
		return
	}
	g, err := h.uc.Join(req.NameOrID, req.Key)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, g)
}

// @Summary Assign a task to a group
// @Tags groups
// @Router /api/v1/groups/{id}/tasks [post]
func (h *GroupHandler) AssignTask(ctx *fasthttp.RequestCtx) {
	var req transport.TaskRequest
	if !h.decode(ctx, &req) {
		return
	}
	in, err := req.NewTask()
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, out, err := h.uc.AssignTask(stdCtx, pathID(ctx), in)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondOutcome(stdCtx, ctx, http.StatusCreated, created, out)
}
