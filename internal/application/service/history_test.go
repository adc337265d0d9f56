package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitscope-dev/gitscope/internal/config"
	domainsvc "github.com/gitscope-dev/gitscope/internal/domain/service"
	"github.com/gitscope-dev/gitscope/pkg/markdown"
)

func newTestService(git domainsvc.GitService) *BrowseService {
	cfg := &config.Config{
		Scan: config.ScanConfig{
			Root:            "./repos",
			DescriptionFile: "description",
			Parallelism:     2,
		},
		UI: config.UIConfig{
			RenderReadme:  true,
			BlobSizeLimit: 512 * 1024,
		},
	}
	return NewBrowseService(git, cfg, markdown.New())
}

func headCommit(hash string, when time.Time) *domainsvc.Commit {
	return &domainsvc.Commit{
		Hash:      hash,
		ShortHash: hash[:8],
		Summary:   "commit " + hash[:8],
		When:      when,
	}
}

func TestAnnotateSingleHunk(t *testing.T) {
	when := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	sess := &fakeSession{
		commits: map[string]*domainsvc.Commit{
			"aaaaaaaa00000000000000000000000000000000": headCommit("aaaaaaaa00000000000000000000000000000000", when),
		},
		blames: map[string][]domainsvc.BlameHunk{
			"main.go": {
				{StartLine: 1, LineCount: 10, CommitHash: "aaaaaaaa00000000000000000000000000000000", When: when},
			},
		},
	}
	entries := []domainsvc.TreeEntry{
		{Name: "main.go", Path: "main.go", Kind: domainsvc.KindBlob},
	}

	svc := newTestService(&fakeGit{})
	head := headCommit("aaaaaaaa00000000000000000000000000000000", when)

	annotated, err := svc.annotate(context.Background(), sess, "demo", "master", "", head, entries)
	require.NoError(t, err)
	require.Len(t, annotated, 1)
	require.NotNil(t, annotated[0].Commit)
	assert.Equal(t, "aaaaaaaa00000000000000000000000000000000", annotated[0].Commit.Hash)
	assert.NotEmpty(t, annotated[0].Recency)
}

func TestAnnotatePicksMaxTimestamp(t *testing.T) {
	old := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	newest := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	commits := map[string]*domainsvc.Commit{
		"aaaaaaaa00000000000000000000000000000000": headCommit("aaaaaaaa00000000000000000000000000000000", mid),
		"bbbbbbbb00000000000000000000000000000000": headCommit("bbbbbbbb00000000000000000000000000000000", newest),
		"cccccccc00000000000000000000000000000000": headCommit("cccccccc00000000000000000000000000000000", old),
	}
	sess := &fakeSession{
		commits: commits,
		blames: map[string][]domainsvc.BlameHunk{
			"lib/util.go": {
				{StartLine: 1, LineCount: 3, CommitHash: "aaaaaaaa00000000000000000000000000000000", When: mid},
				{StartLine: 4, LineCount: 2, CommitHash: "bbbbbbbb00000000000000000000000000000000", When: newest},
				{StartLine: 6, LineCount: 5, CommitHash: "cccccccc00000000000000000000000000000000", When: old},
			},
		},
	}
	entries := []domainsvc.TreeEntry{
		{Name: "util.go", Path: "lib/util.go", Kind: domainsvc.KindBlob},
	}

	svc := newTestService(&fakeGit{})
	head := headCommit("bbbbbbbb00000000000000000000000000000000", newest)

	annotated, err := svc.annotate(context.Background(), sess, "demo", "master", "lib", head, entries)
	require.NoError(t, err)
	require.NotNil(t, annotated[0].Commit)
	assert.Equal(t, "bbbbbbbb00000000000000000000000000000000", annotated[0].Commit.Hash)
}

func TestAnnotateTieBreakLastWins(t *testing.T) {
	when := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	commits := map[string]*domainsvc.Commit{
		"aaaaaaaa00000000000000000000000000000000": headCommit("aaaaaaaa00000000000000000000000000000000", when),
		"bbbbbbbb00000000000000000000000000000000": headCommit("bbbbbbbb00000000000000000000000000000000", when),
	}
	sess := &fakeSession{
		commits: commits,
		blames: map[string][]domainsvc.BlameHunk{
			"a.txt": {
				{StartLine: 1, LineCount: 1, CommitHash: "aaaaaaaa00000000000000000000000000000000", When: when},
				{StartLine: 2, LineCount: 1, CommitHash: "bbbbbbbb00000000000000000000000000000000", When: when},
			},
		},
	}
	entries := []domainsvc.TreeEntry{
		{Name: "a.txt", Path: "a.txt", Kind: domainsvc.KindBlob},
	}

	svc := newTestService(&fakeGit{})
	head := headCommit("aaaaaaaa00000000000000000000000000000000", when)

	annotated, err := svc.annotate(context.Background(), sess, "demo", "master", "", head, entries)
	require.NoError(t, err)
	require.NotNil(t, annotated[0].Commit)

	// On equal timestamps the hunk examined last wins
	assert.Equal(t, "bbbbbbbb00000000000000000000000000000000", annotated[0].Commit.Hash)
}

func TestAnnotateSkipsDirectories(t *testing.T) {
	when := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sess := &fakeSession{
		commits: map[string]*domainsvc.Commit{
			"aaaaaaaa00000000000000000000000000000000": headCommit("aaaaaaaa00000000000000000000000000000000", when),
		},
		blames: map[string][]domainsvc.BlameHunk{
			"README.md": {
				{StartLine: 1, LineCount: 1, CommitHash: "aaaaaaaa00000000000000000000000000000000", When: when},
			},
		},
	}
	entries := []domainsvc.TreeEntry{
		{Name: "lib", Path: "lib", Kind: domainsvc.KindTree},
		{Name: "README.md", Path: "README.md", Kind: domainsvc.KindBlob},
	}

	svc := newTestService(&fakeGit{})
	head := headCommit("aaaaaaaa00000000000000000000000000000000", when)

	annotated, err := svc.annotate(context.Background(), sess, "demo", "master", "", head, entries)
	require.NoError(t, err)
	require.Len(t, annotated, 2)

	assert.Nil(t, annotated[0].Commit)
	assert.Empty(t, annotated[0].Recency)
	assert.NotNil(t, annotated[1].Commit)

	// Directories are never blamed
	assert.Equal(t, []string{"README.md"}, sess.blamedPaths)
}

func TestAnnotateSkipsSubmodules(t *testing.T) {
	when := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sess := &fakeSession{
		commits: map[string]*domainsvc.Commit{
			"aaaaaaaa00000000000000000000000000000000": headCommit("aaaaaaaa00000000000000000000000000000000", when),
		},
		blames: map[string][]domainsvc.BlameHunk{
			"main.go": {
				{StartLine: 1, LineCount: 1, CommitHash: "aaaaaaaa00000000000000000000000000000000", When: when},
			},
		},
	}
	entries := []domainsvc.TreeEntry{
		{Name: "libfoo", Path: "libfoo", Kind: domainsvc.KindSubmodule},
		{Name: "main.go", Path: "main.go", Kind: domainsvc.KindBlob},
	}

	svc := newTestService(&fakeGit{})
	head := headCommit("aaaaaaaa00000000000000000000000000000000", when)

	annotated, err := svc.annotate(context.Background(), sess, "demo", "master", "", head, entries)
	require.NoError(t, err)
	require.Len(t, annotated, 2)

	// A gitlink has no blob to blame and nowhere to link
	assert.Nil(t, annotated[0].Commit)
	assert.Empty(t, annotated[0].Recency)
	assert.Empty(t, annotated[0].Href)
	assert.NotNil(t, annotated[1].Commit)
	assert.Equal(t, []string{"main.go"}, sess.blamedPaths)
}

func TestAnnotateBlameFailureAbortsListing(t *testing.T) {
	boom := errors.New("pack file corrupted")
	sess := &fakeSession{
		blameErr: boom,
		commits:  map[string]*domainsvc.Commit{},
	}
	entries := []domainsvc.TreeEntry{
		{Name: "ok.txt", Path: "ok.txt", Kind: domainsvc.KindBlob},
		{Name: "bad.txt", Path: "bad.txt", Kind: domainsvc.KindBlob},
	}

	svc := newTestService(&fakeGit{})
	head := headCommit("aaaaaaaa00000000000000000000000000000000", time.Now())

	_, err := svc.annotate(context.Background(), sess, "demo", "master", "", head, entries)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestAnnotateBuildsEntryLinks(t *testing.T) {
	when := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sess := &fakeSession{
		commits: map[string]*domainsvc.Commit{
			"aaaaaaaa00000000000000000000000000000000": headCommit("aaaaaaaa00000000000000000000000000000000", when),
		},
		blames: map[string][]domainsvc.BlameHunk{
			"src/app/main.go": {
				{StartLine: 1, LineCount: 1, CommitHash: "aaaaaaaa00000000000000000000000000000000", When: when},
			},
		},
	}
	entries := []domainsvc.TreeEntry{
		{Name: "vendor", Path: "src/app/vendor", Kind: domainsvc.KindTree},
		{Name: "main.go", Path: "src/app/main.go", Kind: domainsvc.KindBlob},
	}

	svc := newTestService(&fakeGit{})
	head := headCommit("aaaaaaaa00000000000000000000000000000000", when)

	annotated, err := svc.annotate(context.Background(), sess, "demo", "master", "src/app", head, entries)
	require.NoError(t, err)
	assert.Equal(t, "/demo/tree/master/src/app/vendor", annotated[0].Href)
	assert.Equal(t, "/demo/blob/master/src/app/main.go", annotated[1].Href)
}
