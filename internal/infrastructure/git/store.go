package git

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"

	apperrors "github.com/gitscope-dev/gitscope/pkg/errors"

	"github.com/gitscope-dev/gitscope/internal/domain/service"
)

// Store implements the GitService interface using the go-git library
type Store struct{}

// NewStore creates a new Store instance
func NewStore() *Store {
	return &Store{}
}

// Open opens the repository at path. Discovery is permissive about repository
// layout (worktrees, shared common dirs) but never searches upward from path:
// a directory either is a repository or the open fails.
func (s *Store) Open(ctx context.Context, path string) (service.RepoSession, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          false,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", apperrors.ErrRepositoryOpenFailed, path, err)
	}

	return &repoSession{repo: repo}, nil
}

// Verify interface compliance at compile time
var _ service.GitService = (*Store)(nil)
