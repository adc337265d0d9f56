package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gitscope-dev/gitscope/internal/application/dto"
	"github.com/gitscope-dev/gitscope/internal/config"
	domainsvc "github.com/gitscope-dev/gitscope/internal/domain/service"
	apperrors "github.com/gitscope-dev/gitscope/pkg/errors"
	"github.com/gitscope-dev/gitscope/pkg/markdown"
)

// BinaryPlaceholder is shown in place of content for binary blobs
const BinaryPlaceholder = "(binary file not shown)"

// BrowseService implements read-only repository browsing: resolving combined
// ref+path parameters, walking trees, annotating entries with their last
// modifying commit and assembling view models for the transport layer.
type BrowseService struct {
	git      domainsvc.GitService
	cfg      *config.Config
	markdown *markdown.Renderer
}

// NewBrowseService creates a new BrowseService instance
func NewBrowseService(git domainsvc.GitService, cfg *config.Config, md *markdown.Renderer) *BrowseService {
	return &BrowseService{
		git:      git,
		cfg:      cfg,
		markdown: md,
	}
}

// ResolveRefPath splits a combined "<ref>/<subpath>" parameter against the
// repository's references. References are tried in store-listing order and
// the first whose shorthand is a literal prefix of param wins, even when
// shorthands overlap (e.g. "v1" shadowing "v1.2" if listed first). When param
// extends the shorthand, the single character after it is consumed and
// discarded and the remainder is returned verbatim.
func ResolveRefPath(refs []domainsvc.Reference, param string) (*dto.PathResolution, error) {
	for _, ref := range refs {
		if !strings.HasPrefix(param, ref.Shorthand) {
			continue
		}
		if len(param) == len(ref.Shorthand) {
			return &dto.PathResolution{Ref: ref}, nil
		}
		return &dto.PathResolution{
			Ref:  ref,
			Path: param[len(ref.Shorthand)+1:],
		}, nil
	}

	return nil, fmt.Errorf("%w: no reference matches %q", apperrors.ErrReferenceNotFound, param)
}

// BrowseRoot renders the repository landing page: the root tree at HEAD
func (s *BrowseService) BrowseRoot(ctx context.Context, repoName string) (*dto.BrowseResult, error) {
	sess, err := s.open(ctx, repoName)
	if err != nil {
		return nil, err
	}

	ref, err := sess.HeadReference(ctx)
	if err != nil {
		return nil, err
	}

	commit, err := sess.CommitAtRef(ctx, *ref)
	if err != nil {
		return nil, err
	}

	tree, err := s.treeView(ctx, sess, repoName, ref.Shorthand, "", commit)
	if err != nil {
		return nil, err
	}

	return &dto.BrowseResult{Tree: tree}, nil
}

// BrowseTree renders a tree or blob page for a combined ref+path parameter.
// When the resolved path names a file the result carries a blob view; a
// directory (or empty path) yields a tree view.
func (s *BrowseService) BrowseTree(ctx context.Context, repoName, refPath string) (*dto.BrowseResult, error) {
	sess, res, commit, err := s.resolve(ctx, repoName, refPath)
	if err != nil {
		return nil, err
	}

	if res.Path != "" {
		entry, err := sess.EntryAt(ctx, commit.Hash, res.Path)
		if err != nil {
			return nil, err
		}
		switch entry.Kind {
		case domainsvc.KindBlob:
			blob, err := s.blobView(ctx, sess, repoName, res, commit)
			if err != nil {
				return nil, err
			}
			return &dto.BrowseResult{Blob: blob}, nil
		case domainsvc.KindSubmodule:
			// Gitlinks have no content in this repository
			return nil, apperrors.NotFound("submodule "+res.Path, apperrors.ErrEntryNotFound)
		}
	}

	tree, err := s.treeView(ctx, sess, repoName, res.Ref.Shorthand, res.Path, commit)
	if err != nil {
		return nil, err
	}

	return &dto.BrowseResult{Tree: tree}, nil
}

// ViewBlob renders a single file page for a combined ref+path parameter
func (s *BrowseService) ViewBlob(ctx context.Context, repoName, refPath string) (*dto.BlobView, error) {
	sess, res, commit, err := s.resolve(ctx, repoName, refPath)
	if err != nil {
		return nil, err
	}

	if res.Path == "" {
		return nil, apperrors.BadRequest("blob path is required", apperrors.ErrInvalidInput)
	}

	return s.blobView(ctx, sess, repoName, res, commit)
}

// RawBlob fetches raw file bytes for a combined ref+path parameter, for
// serving outside any page chrome.
func (s *BrowseService) RawBlob(ctx context.Context, repoName, refPath string) (*domainsvc.BlobContent, error) {
	sess, res, commit, err := s.resolve(ctx, repoName, refPath)
	if err != nil {
		return nil, err
	}

	if res.Path == "" {
		return nil, apperrors.BadRequest("blob path is required", apperrors.ErrInvalidInput)
	}

	return sess.Blob(ctx, commit.Hash, res.Path)
}

// ListRefs renders the branches and tags page of one repository
func (s *BrowseService) ListRefs(ctx context.Context, repoName string) (*dto.RefsPage, error) {
	sess, err := s.open(ctx, repoName)
	if err != nil {
		return nil, err
	}

	refs, err := sess.References(ctx)
	if err != nil {
		return nil, err
	}

	headName := ""
	if head, err := sess.HeadReference(ctx); err == nil {
		headName = head.Shorthand
	}

	page := &dto.RefsPage{Repo: repoName}
	for _, ref := range refs {
		item := dto.RefItem{
			Name:   ref.Shorthand,
			Hash:   ref.Hash,
			Href:   "/" + repoName + "/" + KindTree + "/" + ref.Shorthand,
			IsHead: !ref.IsTag && ref.Shorthand == headName,
		}
		if ref.IsTag {
			page.Tags = append(page.Tags, item)
		} else {
			page.Branches = append(page.Branches, item)
		}
	}

	return page, nil
}

// open validates a repository name and opens a session on it
func (s *BrowseService) open(ctx context.Context, repoName string) (domainsvc.RepoSession, error) {
	if repoName == "" || strings.ContainsAny(repoName, "/\\") || repoName == "." || repoName == ".." {
		return nil, apperrors.BadRequest("invalid repository name", apperrors.ErrInvalidInput)
	}

	sess, err := s.git.Open(ctx, filepath.Join(s.cfg.Scan.Root, repoName))
	if err != nil {
		return nil, apperrors.NotFound("repository", err)
	}

	return sess, nil
}

// resolve opens the repository and splits the combined ref+path parameter
func (s *BrowseService) resolve(ctx context.Context, repoName, refPath string) (domainsvc.RepoSession, *dto.PathResolution, *domainsvc.Commit, error) {
	sess, err := s.open(ctx, repoName)
	if err != nil {
		return nil, nil, nil, err
	}

	refs, err := sess.References(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	// A detached HEAD is not a branch or tag, so the links BrowseRoot emits
	// carry the literal shorthand "HEAD". Appended last: listed references
	// keep first-match priority.
	if head, err := sess.HeadReference(ctx); err == nil {
		refs = append(refs, *head)
	}

	res, err := ResolveRefPath(refs, strings.Trim(refPath, "/"))
	if err != nil {
		return nil, nil, nil, err
	}

	commit, err := sess.CommitAtRef(ctx, res.Ref)
	if err != nil {
		return nil, nil, nil, err
	}

	return sess, res, commit, nil
}

// treeView assembles the directory listing view: entries in display order,
// each annotated with its last modifying commit, plus the rendered readme.
func (s *BrowseService) treeView(ctx context.Context, sess domainsvc.RepoSession, repoName, ref, path string, commit *domainsvc.Commit) (*dto.TreeView, error) {
	entries, err := sess.TreeEntries(ctx, commit.Hash, path)
	if err != nil {
		return nil, err
	}

	sortEntries(entries)

	annotated, err := s.annotate(ctx, sess, repoName, ref, path, commit, entries)
	if err != nil {
		return nil, err
	}

	view := &dto.TreeView{
		Repo:    repoName,
		Ref:     ref,
		Path:    path,
		Crumbs:  Breadcrumbs(repoName, ref, path, false),
		Entries: annotated,
		Commit:  commit,
	}

	if s.cfg.UI.RenderReadme {
		view.Readme, view.ReadmeHTML = s.locateReadme(ctx, sess, repoName, ref, path, commit, entries)
	}

	return view, nil
}

// blobView assembles the single file view
func (s *BrowseService) blobView(ctx context.Context, sess domainsvc.RepoSession, repoName string, res *dto.PathResolution, commit *domainsvc.Commit) (*dto.BlobView, error) {
	blob, err := sess.Blob(ctx, commit.Hash, res.Path)
	if err != nil {
		return nil, err
	}

	segments := strings.Split(res.Path, "/")
	view := &dto.BlobView{
		Repo:     repoName,
		Ref:      res.Ref.Shorthand,
		Path:     res.Path,
		Name:     blob.Name,
		Size:     blob.Size,
		Crumbs:   Breadcrumbs(repoName, res.Ref.Shorthand, res.Path, true),
		IsBinary: blob.IsBinary,
		RawHref:  rawPath(repoName, res.Ref.Shorthand, segments),
	}

	switch {
	case blob.IsBinary:
		view.Content = BinaryPlaceholder
	case s.cfg.UI.BlobSizeLimit > 0 && blob.Size > s.cfg.UI.BlobSizeLimit:
		view.TooLarge = true
	default:
		view.Content = string(blob.Content)
		view.Lines = countLines(blob.Content)
	}

	return view, nil
}

func rawPath(repo, ref string, segments []string) string {
	return "/" + repo + "/raw/" + ref + "/" + strings.Join(segments, "/")
}

// sortEntries orders a listing directories-first, then by name
func sortEntries(entries []domainsvc.TreeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name < entries[j].Name
	})
}

func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	lines := 1
	for _, b := range content {
		if b == '\n' {
			lines++
		}
	}
	if content[len(content)-1] == '\n' {
		lines--
	}
	return lines
}
