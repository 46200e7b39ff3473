package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/tasknotify/api/handler"
)

type Handlers struct {
	Health *apiHandler.HealthHandler
	Sweep  *apiHandler.SweepHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Protected routes
	r.POST("/api/v1/sweeps", authMiddleware(handlers.Sweep.Trigger))

	return r
}
