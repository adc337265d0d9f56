package service

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/gitscope-dev/gitscope/internal/application/dto"
	"github.com/gitscope-dev/gitscope/internal/domain/models"
	"github.com/gitscope-dev/gitscope/pkg/logger"
)

// ListRepositories scans the configured root for repositories and returns
// them most recently active first. Candidates that fail to open are logged
// and skipped; a missing or unreadable description side-file leaves the
// description empty. Candidates are probed in parallel, bounded by the
// configured scan parallelism.
func (s *BrowseService) ListRepositories(ctx context.Context) ([]dto.RepoSummary, error) {
	dirents, err := os.ReadDir(s.cfg.Scan.Root)
	if err != nil {
		return nil, err
	}

	results := make([]*models.Repository, len(dirents))

	limit := s.cfg.Scan.Parallelism
	if limit <= 0 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, dirent := range dirents {
		// Symlinked repositories are candidates too; a link to anything
		// else fails to open and is skipped like any other non-repo
		if !dirent.IsDir() && dirent.Type()&fs.ModeSymlink == 0 {
			continue
		}
		i, dirent := i, dirent
		g.Go(func() error {
			repo := s.probe(gctx, dirent.Name())
			results[i] = repo
			return nil
		})
	}

	// Workers never return errors; failed candidates are skipped
	_ = g.Wait()

	repos := make([]*models.Repository, 0, len(results))
	for _, repo := range results {
		if repo != nil {
			repos = append(repos, repo)
		}
	}

	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].LastActivity.After(repos[j].LastActivity)
	})

	summaries := make([]dto.RepoSummary, 0, len(repos))
	for _, repo := range repos {
		summaries = append(summaries, dto.RepoSummary{
			Name:         repo.Name,
			Description:  repo.Description,
			LastActivity: repo.LastActivity,
			Recency:      humanize.Time(repo.LastActivity),
			Href:         "/" + repo.Name,
		})
	}

	return summaries, nil
}

// probe opens one candidate directory as a repository and gathers its
// catalog metadata. A nil result means the candidate is not browsable.
func (s *BrowseService) probe(ctx context.Context, name string) *models.Repository {
	path := filepath.Join(s.cfg.Scan.Root, name)

	sess, err := s.git.Open(ctx, path)
	if err != nil {
		logger.WithContext(ctx).Debug("skipping candidate directory",
			logger.Repo(name),
			logger.Err(err),
		)
		return nil
	}

	head, err := sess.Head(ctx)
	if err != nil {
		logger.WithContext(ctx).Debug("skipping repository without head commit",
			logger.Repo(name),
			logger.Err(err),
		)
		return nil
	}

	return &models.Repository{
		Name:         name,
		Path:         path,
		Description:  s.readDescription(path),
		LastActivity: head.When,
	}
}

// readDescription loads the free-text description side-file. Both bare
// layouts (description at the top) and non-bare ones (under .git) are tried.
func (s *BrowseService) readDescription(repoPath string) string {
	for _, p := range []string{
		filepath.Join(repoPath, s.cfg.Scan.DescriptionFile),
		filepath.Join(repoPath, ".git", s.cfg.Scan.DescriptionFile),
	} {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		desc := strings.TrimSpace(string(data))
		// git init writes a stock placeholder description
		if desc == "" || strings.HasPrefix(desc, "Unnamed repository") {
			return ""
		}
		return desc
	}

	return ""
}
