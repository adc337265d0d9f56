package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"

	apperrors "github.com/gitscope-dev/gitscope/pkg/errors"

	"github.com/gitscope-dev/gitscope/internal/domain/service"
)

// repoSession is a request-scoped handle on one opened repository
type repoSession struct {
	repo *git.Repository
}

// References returns all branches and tags in store-listing order
func (s *repoSession) References(ctx context.Context) ([]service.Reference, error) {
	refIter, err := s.repo.References()
	if err != nil {
		return nil, fmt.Errorf("%w: list references: %w", apperrors.ErrGitOperationFailed, err)
	}

	refs := []service.Reference{}

	err = refIter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		if !name.IsBranch() && !name.IsTag() {
			return nil
		}
		refs = append(refs, service.Reference{
			Name:      name.String(),
			Shorthand: name.Short(),
			Hash:      ref.Hash().String(),
			IsTag:     name.IsTag(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: iterate references: %w", apperrors.ErrGitOperationFailed, err)
	}

	return refs, nil
}

// HeadReference returns the reference HEAD points at
func (s *repoSession) HeadReference(ctx context.Context) (*service.Reference, error) {
	head, err := s.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, apperrors.ErrReferenceNotFound
		}
		return nil, fmt.Errorf("%w: resolve HEAD: %w", apperrors.ErrGitOperationFailed, err)
	}

	name := head.Name()
	return &service.Reference{
		Name:      name.String(),
		Shorthand: name.Short(),
		Hash:      head.Hash().String(),
		IsTag:     name.IsTag(),
	}, nil
}

// Head returns the commit HEAD resolves to
func (s *repoSession) Head(ctx context.Context) (*service.Commit, error) {
	head, err := s.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, apperrors.ErrReferenceNotFound
		}
		return nil, fmt.Errorf("%w: resolve HEAD: %w", apperrors.ErrGitOperationFailed, err)
	}

	return s.CommitByHash(ctx, head.Hash().String())
}

// CommitByHash looks up a commit object by hash
func (s *repoSession) CommitByHash(ctx context.Context, hash string) (*service.Commit, error) {
	commit, err := s.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: commit %s", apperrors.ErrNotFound, hash)
		}
		return nil, fmt.Errorf("%w: commit %s: %w", apperrors.ErrGitOperationFailed, hash, err)
	}

	return toCommit(commit), nil
}

// CommitAtRef resolves a reference to its commit, peeling annotated tags
func (s *repoSession) CommitAtRef(ctx context.Context, ref service.Reference) (*service.Commit, error) {
	hash := plumbing.NewHash(ref.Hash)

	// An annotated tag ref points at a tag object, not a commit
	if tagObj, err := s.repo.TagObject(hash); err == nil {
		commit, err := tagObj.Commit()
		if err != nil {
			return nil, fmt.Errorf("%w: peel tag %s: %w", apperrors.ErrGitOperationFailed, ref.Shorthand, err)
		}
		return toCommit(commit), nil
	}

	return s.CommitByHash(ctx, ref.Hash)
}

// TreeEntries lists the tree at path within the given commit
func (s *repoSession) TreeEntries(ctx context.Context, commitHash, path string) ([]service.TreeEntry, error) {
	tree, err := s.treeAt(commitHash, path)
	if err != nil {
		return nil, err
	}

	entries := make([]service.TreeEntry, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		entries = append(entries, s.toTreeEntry(entry, path))
	}

	return entries, nil
}

// EntryAt looks up a single entry by full path within the given commit
func (s *repoSession) EntryAt(ctx context.Context, commitHash, path string) (*service.TreeEntry, error) {
	tree, err := s.treeAt(commitHash, "")
	if err != nil {
		return nil, err
	}

	entry, err := tree.FindEntry(path)
	if err != nil {
		if isEntryNotFound(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrEntryNotFound, path)
		}
		return nil, fmt.Errorf("%w: find entry %s: %w", apperrors.ErrGitOperationFailed, path, err)
	}

	dir := ""
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		dir = path[:idx]
	}
	out := s.toTreeEntry(*entry, dir)
	return &out, nil
}

// Blob fetches file content at path within the given commit
func (s *repoSession) Blob(ctx context.Context, commitHash, path string) (*service.BlobContent, error) {
	commit, err := s.repo.CommitObject(plumbing.NewHash(commitHash))
	if err != nil {
		return nil, fmt.Errorf("%w: commit %s: %w", apperrors.ErrGitOperationFailed, commitHash, err)
	}

	file, err := commit.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrEntryNotFound, path)
		}
		return nil, fmt.Errorf("%w: open file %s: %w", apperrors.ErrGitOperationFailed, path, err)
	}

	blob := &service.BlobContent{
		Name: file.Name,
		Path: path,
		Size: file.Blob.Size,
		Hash: file.Blob.Hash.String(),
	}

	binary, err := file.IsBinary()
	if err != nil {
		return nil, fmt.Errorf("%w: inspect file %s: %w", apperrors.ErrGitOperationFailed, path, err)
	}
	blob.IsBinary = binary

	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("%w: read file %s: %w", apperrors.ErrGitOperationFailed, path, err)
	}
	blob.Content = []byte(contents)

	return blob, nil
}

// Blame computes the blame of the file at path as of the given commit.
// go-git attributes individual lines; contiguous runs attributed to the same
// commit are folded into hunks.
func (s *repoSession) Blame(ctx context.Context, commitHash, path string) ([]service.BlameHunk, error) {
	commit, err := s.repo.CommitObject(plumbing.NewHash(commitHash))
	if err != nil {
		return nil, fmt.Errorf("%w: commit %s: %w", apperrors.ErrGitOperationFailed, commitHash, err)
	}

	result, err := git.Blame(commit, path)
	if err != nil {
		return nil, apperrors.BlameError(path, err)
	}

	hunks := []service.BlameHunk{}
	for i, line := range result.Lines {
		hash := line.Hash.String()
		if n := len(hunks); n > 0 && hunks[n-1].CommitHash == hash {
			hunks[n-1].LineCount++
			continue
		}
		hunks = append(hunks, service.BlameHunk{
			StartLine:  i + 1,
			LineCount:  1,
			CommitHash: hash,
			When:       line.Date,
		})
	}

	return hunks, nil
}

func (s *repoSession) treeAt(commitHash, path string) (*object.Tree, error) {
	commit, err := s.repo.CommitObject(plumbing.NewHash(commitHash))
	if err != nil {
		return nil, fmt.Errorf("%w: commit %s: %w", apperrors.ErrGitOperationFailed, commitHash, err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("%w: root tree of %s: %w", apperrors.ErrGitOperationFailed, commitHash, err)
	}

	if path == "" {
		return tree, nil
	}

	subtree, err := tree.Tree(path)
	if err != nil {
		if isEntryNotFound(err) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrEntryNotFound, path)
		}
		return nil, fmt.Errorf("%w: subtree %s: %w", apperrors.ErrGitOperationFailed, path, err)
	}

	return subtree, nil
}

func (s *repoSession) toTreeEntry(entry object.TreeEntry, dir string) service.TreeEntry {
	kind := service.KindBlob
	switch entry.Mode {
	case filemode.Dir:
		kind = service.KindTree
	case filemode.Submodule:
		kind = service.KindSubmodule
	}

	path := entry.Name
	if dir != "" {
		path = dir + "/" + entry.Name
	}

	out := service.TreeEntry{
		Name: entry.Name,
		Path: path,
		Kind: kind,
		Mode: entry.Mode.String(),
		Hash: entry.Hash.String(),
	}

	if kind == service.KindBlob {
		// Size is best effort
		if blob, err := s.repo.BlobObject(entry.Hash); err == nil {
			out.Size = blob.Size
		}
	}

	return out
}

func toCommit(c *object.Commit) *service.Commit {
	summary := c.Message
	if idx := strings.IndexByte(summary, '\n'); idx >= 0 {
		summary = summary[:idx]
	}

	return &service.Commit{
		Hash:        c.Hash.String(),
		ShortHash:   c.Hash.String()[:8],
		Message:     c.Message,
		Summary:     summary,
		Author:      c.Author.Name,
		AuthorEmail: c.Author.Email,
		When:        c.Committer.When,
	}
}

func isEntryNotFound(err error) bool {
	return errors.Is(err, object.ErrEntryNotFound) ||
		errors.Is(err, object.ErrDirectoryNotFound) ||
		errors.Is(err, object.ErrFileNotFound) ||
		errors.Is(err, plumbing.ErrObjectNotFound)
}
