package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskup/api/transport"
	"github.com/fastygo/taskup/pkg/httpcontext"
	authUC "github.com/fastygo/taskup/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Register a local account and sign in
// @Tags auth
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, out, err := h.uc.Register(stdCtx, req.User(), req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondOutcome(stdCtx, ctx, http.StatusCreated, session, out)
}

// @Summary Sign in
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, out, err := h.uc.Login(stdCtx, req.Email, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondOutcome(stdCtx, ctx, http.StatusOK, session, out)
}

// @Summary Sign out
// @Tags auth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	out, err := h.uc.Logout(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondOutcome(stdCtx, ctx, http.StatusOK, nil, out)
}

type sessionState struct {
	Ready bool        `json:"ready"`
	User  interface{} `json:"user"`
}

// @Summary Current session state
// @Tags auth
// @Router /api/v1/auth/session [get]
func (h *AuthHandler) Session(ctx *fasthttp.RequestCtx) {
	state := sessionState{Ready: h.uc.Ready()}
	if user, ok := h.uc.Current(); ok {
		state.User = user
	}
	h.respondSuccess(ctx, http.StatusOK, state)
}
