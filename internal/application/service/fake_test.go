package service

import (
	"context"
	"fmt"

	domainsvc "github.com/gitscope-dev/gitscope/internal/domain/service"
	apperrors "github.com/gitscope-dev/gitscope/pkg/errors"
)

// fakeGit hands out canned sessions keyed by repository path
type fakeGit struct {
	sessions map[string]*fakeSession
	openErr  map[string]error
}

func (g *fakeGit) Open(ctx context.Context, path string) (domainsvc.RepoSession, error) {
	if err := g.openErr[path]; err != nil {
		return nil, err
	}
	sess, ok := g.sessions[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrRepositoryOpenFailed, path)
	}
	return sess, nil
}

// fakeSession is an in-memory RepoSession backed by canned data. It records
// which paths were blamed so tests can assert on traversal behavior.
type fakeSession struct {
	refs    []domainsvc.Reference
	headRef *domainsvc.Reference
	head    *domainsvc.Commit
	commits map[string]*domainsvc.Commit
	trees   map[string][]domainsvc.TreeEntry
	entries map[string]*domainsvc.TreeEntry
	blobs   map[string]*domainsvc.BlobContent
	blames  map[string][]domainsvc.BlameHunk

	blameErr    error
	blamedPaths []string
}

func (s *fakeSession) References(ctx context.Context) ([]domainsvc.Reference, error) {
	return s.refs, nil
}

func (s *fakeSession) HeadReference(ctx context.Context) (*domainsvc.Reference, error) {
	if s.headRef == nil {
		return nil, apperrors.ErrReferenceNotFound
	}
	return s.headRef, nil
}

func (s *fakeSession) Head(ctx context.Context) (*domainsvc.Commit, error) {
	if s.head == nil {
		return nil, apperrors.ErrReferenceNotFound
	}
	return s.head, nil
}

func (s *fakeSession) CommitByHash(ctx context.Context, hash string) (*domainsvc.Commit, error) {
	c, ok := s.commits[hash]
	if !ok {
		return nil, fmt.Errorf("%w: commit %s", apperrors.ErrNotFound, hash)
	}
	return c, nil
}

func (s *fakeSession) CommitAtRef(ctx context.Context, ref domainsvc.Reference) (*domainsvc.Commit, error) {
	return s.CommitByHash(ctx, ref.Hash)
}

func (s *fakeSession) TreeEntries(ctx context.Context, commitHash, path string) ([]domainsvc.TreeEntry, error) {
	entries, ok := s.trees[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrEntryNotFound, path)
	}
	return entries, nil
}

func (s *fakeSession) EntryAt(ctx context.Context, commitHash, path string) (*domainsvc.TreeEntry, error) {
	entry, ok := s.entries[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrEntryNotFound, path)
	}
	return entry, nil
}

func (s *fakeSession) Blob(ctx context.Context, commitHash, path string) (*domainsvc.BlobContent, error) {
	blob, ok := s.blobs[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrEntryNotFound, path)
	}
	return blob, nil
}

func (s *fakeSession) Blame(ctx context.Context, commitHash, path string) ([]domainsvc.BlameHunk, error) {
	s.blamedPaths = append(s.blamedPaths, path)
	if s.blameErr != nil {
		return nil, s.blameErr
	}
	hunks, ok := s.blames[path]
	if !ok {
		return nil, apperrors.BlameError(path, apperrors.ErrEntryNotFound)
	}
	return hunks, nil
}

var _ domainsvc.RepoSession = (*fakeSession)(nil)
var _ domainsvc.GitService = (*fakeGit)(nil)
