package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/pkg/httpcontext"
	viewsUC "github.com/fastygo/taskup/usecase/views"
)

type ViewHandler struct {
	baseHandler
	uc *viewsUC.UseCase
}

func NewViewHandler(uc *viewsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ViewHandler {
	return &ViewHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Month calendar
// @Tags views
// @Param month query string false "YYYY-MM"
// @Param selected query string false "YYYY-MM-DD"
// @Router /api/v1/views/calendar [get]
func (h *ViewHandler) Calendar(ctx *fasthttp.RequestCtx) {
	loc := h.uc.Location()
	args := ctx.QueryArgs()

	var month time.Time
	if raw := string(args.Peek("month")); raw != "" {
		parsed, err := time.ParseInLocation("2006-01", raw, loc)
		if err != nil {
			h.respondError(ctx, domain.WrapError(domain.ErrCodeInvalid, "month must be YYYY-MM", err))
			return
		}
		month = parsed
	}

	var selected *time.Time
	if raw := string(args.Peek("selected")); raw != "" {
		day, ok := domain.ParseDueDate(raw, loc)
		if !ok {
			h.respondError(ctx, domain.NewError(domain.ErrCodeInvalid, "selected must be a date"))
			return
		}
		selected = &day
	}

	h.respondSuccess(ctx, http.StatusOK, h.uc.Calendar(month, selected, filterFromQuery(ctx)))
}

// @Summary Dashboard charts
// @Tags views
// @Router /api/v1/views/analytics [get]
func (h *ViewHandler) Analytics(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.uc.Analytics())
}

// @Summary Participants ranked by points
// @Tags views
// @Router /api/v1/views/leaderboard [get]
func (h *ViewHandler) Leaderboard(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.uc.Leaderboard())
}

// @Summary Headline counters
// @Tags views
// @Router /api/v1/views/summary [get]
func (h *ViewHandler) Summary(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.uc.Summary())
}

// @Summary Next pending tasks
// @Tags views
// @Param n query int false "how many, default 3"
// @Router /api/v1/views/upcoming [get]
func (h *ViewHandler) Upcoming(ctx *fasthttp.RequestCtx) {
	n, _ := strconv.Atoi(string(ctx.QueryArgs().Peek("n")))
	h.respondSuccess(ctx, http.StatusOK, h.uc.Upcoming(filterFromQuery(ctx), n))
}
