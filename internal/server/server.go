package server

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/gitscope-dev/gitscope/internal/config"
	"github.com/gitscope-dev/gitscope/web"
)

type Server struct {
	*gin.Engine

	Config *config.Config
}

func New(cfg *config.Config) (*Server, error) {
	// Set Gin mode based on configuration
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)

	return &Server{
		Engine: engine,
		Config: cfg,
	}, nil
}
