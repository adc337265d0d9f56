package injectable

import (
	"github.com/gitscope-dev/gitscope/internal/application/service"
	"github.com/gitscope-dev/gitscope/internal/config"
	domainservice "github.com/gitscope-dev/gitscope/internal/domain/service"
	"github.com/gitscope-dev/gitscope/internal/infrastructure/git"
	"github.com/gitscope-dev/gitscope/pkg/markdown"
)

// Dependencies holds all the dependencies required by the router
type Dependencies struct {
	GitService    domainservice.GitService
	BrowseService *service.BrowseService
}

func LoadDependencies(cfg *config.Config) Dependencies {
	gitService := git.NewStore()
	browseService := service.NewBrowseService(gitService, cfg, markdown.New())

	return Dependencies{
		GitService:    gitService,
		BrowseService: browseService,
	}
}
