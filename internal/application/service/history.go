package service

import (
	"context"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/gitscope-dev/gitscope/internal/application/dto"
	domainsvc "github.com/gitscope-dev/gitscope/internal/domain/service"
)

// annotate pairs each file entry of one tree with the commit that most
// recently touched any of its lines, derived from per-file blame. Directories
// and submodule gitlinks are listed without a commit; a gitlink has no blob
// to blame. A blame failure on any file aborts the whole listing; the
// per-hunk commit lookups make this O(files x hunks), which is fine for
// small repositories and a known bottleneck for large ones.
func (s *BrowseService) annotate(ctx context.Context, sess domainsvc.RepoSession, repoName, ref, treePath string, commit *domainsvc.Commit, entries []domainsvc.TreeEntry) ([]dto.AnnotatedEntry, error) {
	var prefix []string
	if treePath != "" {
		prefix = strings.Split(treePath, "/")
	}

	annotated := make([]dto.AnnotatedEntry, 0, len(entries))
	for _, entry := range entries {
		segments := append(append([]string{}, prefix...), entry.Name)

		out := dto.AnnotatedEntry{Entry: entry}

		switch entry.Kind {
		case domainsvc.KindTree:
			out.Href = BrowsePath(repoName, KindTree, ref, segments, len(segments)-1)
		case domainsvc.KindBlob:
			out.Href = BrowsePath(repoName, KindBlob, ref, segments, len(segments)-1)
			last, err := s.lastModifyingCommit(ctx, sess, commit.Hash, entry.Path)
			if err != nil {
				return nil, err
			}
			if last != nil {
				out.Commit = last
				out.Recency = humanize.Time(last.When)
			}
		}

		annotated = append(annotated, out)
	}

	return annotated, nil
}

// lastModifyingCommit selects, among all blame hunks of a file, the commit
// with the maximum timestamp. On equal timestamps the hunk examined last
// wins.
func (s *BrowseService) lastModifyingCommit(ctx context.Context, sess domainsvc.RepoSession, commitHash, path string) (*domainsvc.Commit, error) {
	hunks, err := sess.Blame(ctx, commitHash, path)
	if err != nil {
		return nil, err
	}

	var latest *domainsvc.Commit
	for _, hunk := range hunks {
		c, err := sess.CommitByHash(ctx, hunk.CommitHash)
		if err != nil {
			return nil, err
		}
		if latest == nil || !c.When.Before(latest.When) {
			latest = c
		}
	}

	return latest, nil
}
