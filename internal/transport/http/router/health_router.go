package router

import (
	"github.com/gitscope-dev/gitscope/internal/transport/http/handler"
)

func (r *Router) healthRouter() {
	r.server.GET("/healthz", handler.HealthHandler())
}
