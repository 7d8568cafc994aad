package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskup/api/transport"
	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/pkg/httpcontext"
	taskUC "github.com/fastygo/taskup/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	filter := filterFromQuery(ctx)
	tasks := make([]domain.Task, 0)
	for _, t := range h.uc.List() {
		if filter.Match(t) {
			tasks = append(tasks, t)
		}
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Get task
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	t, err := h.uc.Get(pathID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, t)
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
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

	created, out := h.uc.Add(stdCtx, in)
	h.respondOutcome(stdCtx, ctx, http.StatusCreated, created, out)
}

// @Summary Update task
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	var req transport.TaskRequest
	if !h.decode(ctx, &req) {
		return
	}
	patch, err := req.Patch()
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, out := h.uc.Update(stdCtx, pathID(ctx), patch)
	h.respondOutcome(stdCtx, ctx, http.StatusOK, optional(updated, out.Applied), out)
}

// @Summary Toggle task completion
// @Tags tasks
// @Router /api/v1/tasks/{id}/toggle [post]
func (h *TaskHandler) ToggleTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	toggled, out := h.uc.ToggleComplete(stdCtx, pathID(ctx))
	h.respondOutcome(stdCtx, ctx, http.StatusOK, optional(toggled, out.Applied), out)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	out := h.uc.Delete(stdCtx, pathID(ctx))
	h.respondOutcome(stdCtx, ctx, http.StatusOK, nil, out)
}

// @Summary List distinct subjects
// @Tags tasks
// @Router /api/v1/subjects [get]
func (h *TaskHandler) GetSubjects(ctx *fasthttp.RequestCtx) {
	subjects := h.uc.Subjects()
	if subjects == nil {
		subjects = []string{}
	}
	h.respondSuccess(ctx, http.StatusOK, subjects)
}

// filterFromQuery reads subject, group and status. An empty subject or group
// value selects tasks without one.
func filterFromQuery(ctx *fasthttp.RequestCtx) domain.TaskFilter {
	args := ctx.QueryArgs()
	filter := domain.TaskFilter{
		Subject: domain.FilterAll,
		Group:   domain.FilterAll,
		Status:  string(args.Peek("status")),
	}
	if args.Has("subject") {
		filter.Subject = string(args.Peek("subject"))
		if filter.Subject == "" {
			filter.Subject = domain.NoSubject
		}
	}
	if args.Has("group") {
		filter.Group = string(args.Peek("group"))
		if filter.Group == "" {
			filter.Group = domain.NoGroup
		}
	}
	return filter
}

// optional hides the zero value returned for an unknown id.
func optional[T any](value T, applied bool) interface{} {
	if !applied {
		return nil
	}
	return value
}
