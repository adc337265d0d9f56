package router

import (
	"github.com/gitscope-dev/gitscope/internal/transport/http/handler"
)

func (r *Router) browseRouter() {
	h := handler.NewBrowseHandler(r.Deps.BrowseService)

	r.server.GET("/", h.Index)

	repo := r.server.Group("/:repo")
	{
		repo.GET("", h.Repo)
		repo.GET("/refs", h.Refs)
		repo.GET("/tree/*refpath", h.Tree)
		repo.GET("/blob/*refpath", h.Blob)
		repo.GET("/raw/*refpath", h.Raw)
	}
}
