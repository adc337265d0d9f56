package service

import (
	"context"
	"html/template"
	"strings"

	"github.com/gitscope-dev/gitscope/internal/application/dto"
	domainsvc "github.com/gitscope-dev/gitscope/internal/domain/service"
	"github.com/gitscope-dev/gitscope/pkg/logger"
)

// locateReadme finds the first file in the listing whose lower-cased name
// starts with "readme" and renders it to HTML. Absence, fetch failures and
// render failures all yield no readme; a directory page never fails because
// its readme could not be shown.
func (s *BrowseService) locateReadme(ctx context.Context, sess domainsvc.RepoSession, repoName, ref, treePath string, commit *domainsvc.Commit, entries []domainsvc.TreeEntry) (*dto.BlobView, template.HTML) {
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(entry.Name), "readme") {
			continue
		}

		blob, err := sess.Blob(ctx, commit.Hash, entry.Path)
		if err != nil {
			logger.WithContext(ctx).Warn("failed to fetch readme",
				logger.Repo(repoName),
				logger.FilePath(entry.Path),
				logger.Err(err),
			)
			return nil, ""
		}
		if blob.IsBinary {
			return nil, ""
		}

		view := &dto.BlobView{
			Repo: repoName,
			Ref:  ref,
			Path: entry.Path,
			Name: blob.Name,
			Size: blob.Size,
		}

		html, err := s.markdown.Render(blob.Content)
		if err != nil {
			logger.WithContext(ctx).Warn("failed to render readme",
				logger.Repo(repoName),
				logger.FilePath(entry.Path),
				logger.Err(err),
			)
			return view, ""
		}

		return view, html
	}

	return nil, ""
}
