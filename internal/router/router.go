package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/taskup/api/handler"
)

type Handlers struct {
	Auth        *apiHandler.AuthHandler
	Profile     *apiHandler.ProfileHandler
	Task        *apiHandler.TaskHandler
	Group       *apiHandler.GroupHandler
	Participant *apiHandler.ParticipantHandler
	View        *apiHandler.ViewHandler
	Health      *apiHandler.HealthHandler
}

type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

func New(handlers Handlers, authMiddleware Middleware) *router.Router {
	r := router.New()
	protected := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		if authMiddleware == nil {
			return h
		}
		return authMiddleware(h)
	}

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.GET("/api/v1/auth/session", handlers.Auth.Session)
	r.POST("/api/v1/auth/logout", protected(handlers.Auth.Logout))

	// Protected routes
	r.GET("/api/v1/profile", protected(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", protected(handlers.Profile.UpdateProfile))

	r.GET("/api/v1/tasks", protected(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", protected(handlers.Task.CreateTask))
	r.GET("/api/v1/tasks/{id}", protected(handlers.Task.GetTask))
	r.PUT("/api/v1/tasks/{id}", protected(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", protected(handlers.Task.DeleteTask))
	r.POST("/api/v1/tasks/{id}/toggle", protected(handlers.Task.ToggleTask))
	r.GET("/api/v1/subjects", protected(handlers.Task.GetSubjects))

	r.GET("/api/v1/groups", protected(handlers.Group.GetGroups))
	r.POST("/api/v1/groups", protected(handlers.Group.CreateGroup))
	r.POST("/api/v1/groups/join", protected(handlers.Group.JoinGroup))
	r.GET("/api/v1/groups/{id}", protected(handlers.Group.GetGroup))
	r.POST("/api/v1/groups/{id}/tasks", protected(handlers.Group.AssignTask))

	r.GET("/api/v1/participants", protected(handlers.Participant.GetParticipants))
	r.POST("/api/v1/participants", protected(handlers.Participant.CreateParticipant))
	r.DELETE("/api/v1/participants", protected(handlers.Participant.ResetParticipants))
	r.POST("/api/v1/participants/sample", protected(handlers.Participant.LoadSample))
	r.GET("/api/v1/participants/{id}", protected(handlers.Participant.GetParticipant))
	r.DELETE("/api/v1/participants/{id}", protected(handlers.Participant.DeleteParticipant))
	r.POST("/api/v1/participants/{id}/points", protected(handlers.Participant.AdjustPoints))
	r.PUT("/api/v1/participants/{id}/points", protected(handlers.Participant.SetPoints))

	r.GET("/api/v1/views/calendar", protected(handlers.View.Calendar))
	r.GET("/api/v1/views/analytics", protected(handlers.View.Analytics))
	r.GET("/api/v1/views/leaderboard", protected(handlers.View.Leaderboard))
	r.GET("/api/v1/views/summary", protected(handlers.View.Summary))
	r.GET("/api/v1/views/upcoming", protected(handlers.View.Upcoming))

	return r
}
