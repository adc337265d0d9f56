package router

import (
	"io/fs"
	"net/http"

	"github.com/gin-contrib/cors"

	"github.com/gitscope-dev/gitscope/internal/injectable"
	"github.com/gitscope-dev/gitscope/internal/server"
	"github.com/gitscope-dev/gitscope/internal/transport/http/middleware"
	"github.com/gitscope-dev/gitscope/web"
)

type Router struct {
	server *server.Server
	Deps   *injectable.Dependencies
}

// NewRouter creates a new Router instance.
func NewRouter(s *server.Server) *Router {
	deps := injectable.LoadDependencies(s.Config)

	return &Router{
		server: s,
		Deps:   &deps,
	}
}

// RegisterRoutes sets up the routes and middleware for the server.
func (r *Router) RegisterRoutes() {
	r.server.Use(middleware.RecoveryMiddleware())
	r.server.Use(middleware.LoggerMiddleware())

	// Apply CORS middleware; everything served here is public and read-only
	r.server.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Length", "Content-Type"},
	}))

	r.server.StaticFS("/static", http.FS(mustSub(web.Static, "static")))

	r.healthRouter()
	r.browseRouter()
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
