package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/todo/api/handler"
)

type Handlers struct {
	Task         *apiHandler.TaskHandler
	Selection    *apiHandler.SelectionHandler
	Notification *apiHandler.NotificationHandler
	Settings     *apiHandler.SettingsHandler
	Health       *apiHandler.HealthHandler
}

// Middleware wraps a handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// New registers the API routes. Middlewares wrap the whole router, the first
// one outermost.
func New(handlers Handlers, middlewares ...Middleware) fasthttp.RequestHandler {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/api/v1/tasks", handlers.Task.GetTasks)
	r.POST("/api/v1/tasks", handlers.Task.CreateTask)
	r.POST("/api/v1/tasks/reload", handlers.Task.Reload)
	r.POST("/api/v1/tasks/bulk-delete", handlers.Task.BulkDelete)
	r.PUT("/api/v1/tasks/{id}", handlers.Task.UpdateTask)
	r.DELETE("/api/v1/tasks/{id}", handlers.Task.DeleteTask)
	r.POST("/api/v1/tasks/{id}/toggle", handlers.Task.ToggleTask)

	r.GET("/api/v1/selection", handlers.Selection.GetSelection)
	r.POST("/api/v1/selection/{id}", handlers.Selection.ToggleSelection)
	r.DELETE("/api/v1/selection", handlers.Selection.DeleteSelected)

	r.GET("/api/v1/notifications", handlers.Notification.List)
	r.GET("/api/v1/settings", handlers.Settings.Get)

	handler := r.Handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
