package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/crypto/bcrypt"

	apiHandler "github.com/fastygo/taskup/api/handler"
	"github.com/fastygo/taskup/internal/app"
	"github.com/fastygo/taskup/internal/infrastructure/monitor"
	"github.com/fastygo/taskup/internal/middleware"
	"github.com/fastygo/taskup/internal/router"
	"github.com/fastygo/taskup/repository"
	"github.com/fastygo/taskup/repository/memory"
	authUC "github.com/fastygo/taskup/usecase/auth"
)

const secret = "handler-secret"

// failingKV fails every write once broken is set.
type failingKV struct {
	repository.KVStore
	broken atomic.Bool
}

func (f *failingKV) Put(ctx context.Context, key string, value []byte) error {
	if f.broken.Load() {
		return errors.New("quota exceeded")
	}
	return f.KVStore.Put(ctx, key, value)
}

type staticStatus struct{ status monitor.Status }

func (s staticStatus) GetStatus() monitor.Status { return s.status }

type envelope struct {
	Status string          `json:"status"`
	Code   string          `json:"code"`
	Data   json.RawMessage `json:"data"`
	Error  json.RawMessage `json:"error"`
	Meta   struct {
		Warning string `json:"warning"`
		Applied *bool  `json:"applied"`
	} `json:"meta"`
}

type server struct {
	t       *testing.T
	handler fasthttp.RequestHandler
	kv      *failingKV
	token   string
}

func newServer(t *testing.T) *server {
	t.Helper()
	kv := &failingKV{KVStore: memory.New()}
	stores, err := app.LoadStores(context.Background(), kv, app.StoreOptions{
		Tokens:      authUC.TokenOptions{Secret: secret, Issuer: "taskup", TTL: time.Hour},
		Location:    time.UTC,
		AuthOptions: []authUC.Option{authUC.WithHashCost(bcrypt.MinCost)},
	})
	if err != nil {
		t.Fatalf("LoadStores: %v", err)
	}

	handlers := router.Handlers{
		Auth:        apiHandler.NewAuthHandler(stores.Auth, nil, nil),
		Profile:     apiHandler.NewProfileHandler(stores.Auth, nil, nil),
		Task:        apiHandler.NewTaskHandler(stores.Tasks, nil, nil),
		Group:       apiHandler.NewGroupHandler(stores.Groups, nil, nil),
		Participant: apiHandler.NewParticipantHandler(stores.Participants, nil, nil),
		View:        apiHandler.NewViewHandler(stores.Views, nil, nil),
		Health:      apiHandler.NewHealthHandler(staticStatus{monitor.Status{Driver: "memory", Online: true}}, nil, nil),
	}
	r := router.New(handlers, middleware.JWTAuth(secret, "taskup", stores.Auth.IsCurrent, nil))
	return &server{t: t, handler: r.Handler, kv: kv}
}

func (s *server) do(method, path, body string) (int, envelope) {
	s.t.Helper()
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != "" {
		ctx.Request.SetBodyString(body)
		ctx.Request.Header.SetContentType("application/json")
	}
	if s.token != "" {
		ctx.Request.Header.Set("Authorization", "Bearer "+s.token)
	}
	s.handler(&ctx)

	var env envelope
	if len(ctx.Response.Body()) > 0 {
		if err := json.Unmarshal(ctx.Response.Body(), &env); err != nil {
			s.t.Fatalf("%s %s: decode %q: %v", method, path, ctx.Response.Body(), err)
		}
	}
	return ctx.Response.StatusCode(), env
}

func (s *server) signIn() {
	s.t.Helper()
	status, env := s.do("POST", "/api/v1/auth/register", `{"name":"Ana","email":"ana@x.io","password":"pw"}`)
	if status != fasthttp.StatusCreated {
		s.t.Fatalf("register: %d %s", status, env.Error)
	}
	var session struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &session); err != nil || session.Token == "" {
		s.t.Fatalf("register token: %v %s", err, env.Data)
	}
	s.token = session.Token
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}

func TestAuthFlow(t *testing.T) {
	s := newServer(t)

	status, env := s.do("GET", "/api/v1/auth/session", "")
	if status != 200 || !strings.Contains(string(env.Data), `"ready":true`) {
		t.Fatalf("session: %d %s", status, env.Data)
	}

	if status, _ := s.do("GET", "/api/v1/tasks", ""); status != fasthttp.StatusUnauthorized {
		t.Fatalf("tasks without token: %d", status)
	}

	s.signIn()
	status, env = s.do("GET", "/api/v1/profile", "")
	if status != 200 || !strings.Contains(string(env.Data), `"name":"Ana"`) {
		t.Fatalf("profile: %d %s", status, env.Data)
	}

	status, env = s.do("PUT", "/api/v1/profile", `{"displayName":"<b>Anita</b>"}`)
	if status != 200 || !strings.Contains(string(env.Data), `"displayName":"Anita"`) {
		t.Fatalf("update profile: %d %s", status, env.Data)
	}

	if status, _ := s.do("POST", "/api/v1/auth/logout", ""); status != 200 {
		t.Fatalf("logout: %d", status)
	}
	// The old token names a user who is no longer signed in.
	if status, _ := s.do("GET", "/api/v1/profile", ""); status != fasthttp.StatusUnauthorized {
		t.Fatalf("profile after logout: %d", status)
	}

	s.token = ""
	if status, env := s.do("POST", "/api/v1/auth/login", `{"email":"ana@x.io","password":"nope"}`); status != 401 || env.Code != "UNAUTHORIZED" {
		t.Fatalf("bad login: %d %s", status, env.Code)
	}
	if status, _ := s.do("POST", "/api/v1/auth/login", `{"email":"ana@x.io","password":"pw"}`); status != 200 {
		t.Fatalf("login: %d", status)
	}
	if status, env := s.do("POST", "/api/v1/auth/register", `{"name":"B","email":"ANA@x.io","password":"pw"}`); status != 409 {
		t.Fatalf("duplicate register: %d %s", status, env.Code)
	}
}

func TestTaskEndpoints(t *testing.T) {
	s := newServer(t)
	s.signIn()

	status, env := s.do("POST", "/api/v1/tasks", `{"title":"  ","materia":"Física"}`)
	if status != 400 || env.Code != "INVALID" {
		t.Fatalf("blank title: %d %s", status, env.Code)
	}

	status, env = s.do("POST", "/api/v1/tasks", `{"title":"Informe","materia":"Física","fechaEntrega":"2025-10-30"}`)
	if status != fasthttp.StatusCreated {
		t.Fatalf("create: %d %s", status, env.Error)
	}
	created := decode[map[string]any](t, env.Data)
	id := created["id"].(string)
	if created["points"].(float64) != 50 || created["completada"].(bool) {
		t.Errorf("defaults: %v", created)
	}

	status, env = s.do("POST", "/api/v1/tasks/"+id+"/toggle", "")
	if status != 200 || !strings.Contains(string(env.Data), `"completada":true`) {
		t.Fatalf("toggle: %d %s", status, env.Data)
	}

	status, env = s.do("PUT", "/api/v1/tasks/missing", `{"title":"x"}`)
	if status != 200 || env.Meta.Applied == nil || *env.Meta.Applied {
		t.Fatalf("unknown id should report applied=false: %d %+v", status, env.Meta)
	}

	status, env = s.do("GET", "/api/v1/tasks?subject=F%C3%ADsica", "")
	if tasks := decode[[]map[string]any](t, env.Data); status != 200 || len(tasks) != 1 {
		t.Fatalf("filtered list: %d %s", status, env.Data)
	}
	status, env = s.do("GET", "/api/v1/tasks?subject=", "")
	if tasks := decode[[]map[string]any](t, env.Data); status != 200 || len(tasks) != 1 {
		t.Fatalf("no-subject list should hold the demo task without subject: %s", env.Data)
	}

	status, env = s.do("GET", "/api/v1/subjects", "")
	if status != 200 || string(env.Data) != `["Cálculo","Física"]` {
		t.Fatalf("subjects: %s", env.Data)
	}

	if status, _ := s.do("DELETE", "/api/v1/tasks/"+id, ""); status != 200 {
		t.Fatalf("delete: %d", status)
	}
	if status, _ := s.do("GET", "/api/v1/tasks/"+id, ""); status != 404 {
		t.Fatalf("get deleted: %d", status)
	}
}

func TestPersistFailureSurfacesWarning(t *testing.T) {
	s := newServer(t)
	s.signIn()
	s.kv.broken.Store(true)

	status, env := s.do("POST", "/api/v1/tasks", `{"title":"Sin guardar"}`)
	if status != fasthttp.StatusCreated || env.Meta.Warning == "" {
		t.Fatalf("expected warning: %d %+v", status, env.Meta)
	}
	// The change is still visible in memory.
	_, env = s.do("GET", "/api/v1/tasks", "")
	if !strings.Contains(string(env.Data), "Sin guardar") {
		t.Errorf("task missing from memory: %s", env.Data)
	}
}

func TestGroupEndpoints(t *testing.T) {
	s := newServer(t)
	s.signIn()

	if status, env := s.do("POST", "/api/v1/groups", `{"name":"Lab","key":""}`); status != 400 || env.Code != "INVALID" {
		t.Fatalf("empty key: %d %s", status, env.Code)
	}
	_, env := s.do("GET", "/api/v1/groups", "")
	if string(env.Data) != "[]" {
		t.Fatalf("groups after rejected create: %s", env.Data)
	}

	status, env := s.do("POST", "/api/v1/groups", `{"name":"Proyecto Final","key":"proy123"}`)
	if status != fasthttp.StatusCreated {
		t.Fatalf("create group: %d %s", status, env.Error)
	}
	group := decode[map[string]any](t, env.Data)
	id := group["id"].(string)
	if group["creatorId"] == "" {
		t.Error("creatorId should be the signed-in user")
	}

	if status, env := s.do("POST", "/api/v1/groups/join", `{"nameOrId":"proyecto final","key":"bad"}`); status != 403 || env.Code != "FORBIDDEN" {
		t.Fatalf("wrong key: %d %s", status, env.Code)
	}
	if status, _ := s.do("POST", "/api/v1/groups/join", `{"nameOrId":"nada","key":"proy123"}`); status != 404 {
		t.Fatalf("unknown group: %d", status)
	}
	if status, _ := s.do("POST", "/api/v1/groups/join", `{"nameOrId":"PROYECTO FINAL","key":"proy123"}`); status != 200 {
		t.Fatalf("join: %d", status)
	}

	if status, _ := s.do("POST", "/api/v1/groups/"+id+"/tasks", `{"title":"Diagrama","fechaEntrega":"2025-10-22"}`); status != fasthttp.StatusCreated {
		t.Fatalf("assign: %d", status)
	}
	status, env = s.do("GET", "/api/v1/groups/"+id, "")
	withTasks := decode[struct {
		Tasks []map[string]any `json:"tasks"`
	}](t, env.Data)
	if status != 200 || len(withTasks.Tasks) != 1 || withTasks.Tasks[0]["groupId"] != id {
		t.Fatalf("group tasks: %d %s", status, env.Data)
	}
}

func TestParticipantEndpoints(t *testing.T) {
	s := newServer(t)
	s.signIn()

	status, env := s.do("POST", "/api/v1/participants", `{"name":"Lucía"}`)
	if status != fasthttp.StatusCreated {
		t.Fatalf("create: %d", status)
	}
	id := decode[map[string]any](t, env.Data)["id"].(string)

	s.do("PUT", "/api/v1/participants/"+id+"/points", `{"points":5}`)
	status, env = s.do("POST", "/api/v1/participants/"+id+"/points", `{"delta":-100}`)
	if status != 200 || !strings.Contains(string(env.Data), `"points":0`) {
		t.Fatalf("floor: %d %s", status, env.Data)
	}
	if status, _ := s.do("POST", "/api/v1/participants/"+id+"/points", `{}`); status != 400 {
		t.Fatalf("missing delta: %d", status)
	}

	status, env = s.do("GET", "/api/v1/participants/"+id, "")
	if status != 200 || decode[map[string]any](t, env.Data)["name"] != "Lucía" {
		t.Fatalf("get participant: %d %s", status, env.Data)
	}
	if status, _ := s.do("GET", "/api/v1/participants/missing", ""); status != 404 {
		t.Fatalf("unknown participant: %d", status)
	}

	s.do("POST", "/api/v1/participants/sample", "")
	_, env = s.do("GET", "/api/v1/views/leaderboard", "")
	board := decode[[]map[string]any](t, env.Data)
	if len(board) != 3 || board[0]["name"] != "María Pérez" {
		t.Fatalf("leaderboard: %s", env.Data)
	}

	s.do("DELETE", "/api/v1/participants", "")
	_, env = s.do("GET", "/api/v1/participants", "")
	if string(env.Data) != "[]" {
		t.Fatalf("after reset: %s", env.Data)
	}
}

func TestViewEndpoints(t *testing.T) {
	s := newServer(t)
	s.signIn()

	status, env := s.do("GET", "/api/v1/views/calendar?month=2025-10&selected=2025-10-25", "")
	if status != 200 {
		t.Fatalf("calendar: %d %s", status, env.Error)
	}
	cal := decode[struct {
		Month string `json:"month"`
		Cells []struct {
			Date       string           `json:"date"`
			IsSelected bool             `json:"isSelected"`
			Tasks      []map[string]any `json:"tasks"`
		} `json:"cells"`
	}](t, env.Data)
	if cal.Month != "2025-10" || len(cal.Cells) != 42 {
		t.Fatalf("calendar shape: %s %d", cal.Month, len(cal.Cells))
	}
	for _, c := range cal.Cells {
		if c.Date == "2025-10-25" && (!c.IsSelected || len(c.Tasks) != 1) {
			t.Errorf("25th: %+v", c)
		}
	}

	if status, _ := s.do("GET", "/api/v1/views/calendar?month=octubre", ""); status != 400 {
		t.Errorf("bad month: %d", status)
	}

	status, env = s.do("GET", "/api/v1/views/analytics", "")
	analytics := decode[struct {
		Daily   []any `json:"daily"`
		Summary struct {
			Tasks int `json:"tasks"`
		} `json:"summary"`
	}](t, env.Data)
	if status != 200 || len(analytics.Daily) != 14 || analytics.Summary.Tasks != 2 {
		t.Errorf("analytics: %d %s", status, env.Data)
	}

	status, env = s.do("GET", "/api/v1/views/summary", "")
	summary := decode[struct {
		Tasks   int `json:"tasks"`
		Pending int `json:"pending"`
	}](t, env.Data)
	if status != 200 || summary.Tasks != analytics.Summary.Tasks || summary.Pending > summary.Tasks {
		t.Errorf("summary: %d %s", status, env.Data)
	}

	if status, _ := s.do("GET", "/api/v1/views/upcoming?n=2", ""); status != 200 {
		t.Errorf("upcoming: %d", status)
	}
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	status, env := s.do("GET", "/health", "")
	if status != 200 || !strings.Contains(string(env.Data), `"online":true`) {
		t.Fatalf("health: %d %s", status, env.Data)
	}
}

func TestMalformedBody(t *testing.T) {
	s := newServer(t)
	s.signIn()
	for _, path := range []string{"/api/v1/tasks", "/api/v1/groups", "/api/v1/participants"} {
		if status, env := s.do("POST", path, "{"); status != 400 || env.Code != "INVALID" {
			t.Errorf("%s: %s", path, fmt.Sprint(status, env.Code))
		}
	}
}
