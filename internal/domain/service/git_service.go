package service

import (
	"context"
	"time"
)

// EntryKind distinguishes tree members
type EntryKind string

const (
	// KindBlob is a file entry
	KindBlob EntryKind = "blob"

	// KindTree is a directory entry
	KindTree EntryKind = "tree"

	// KindSubmodule is a gitlink entry pinning a commit of another
	// repository. It has no blob or tree object in this repository.
	KindSubmodule EntryKind = "commit"
)

// Reference represents a Git reference (branch or tag)
type Reference struct {
	Name      string // Full name, e.g. refs/heads/master
	Shorthand string // Short display name, e.g. master
	Hash      string
	IsTag     bool
}

// Commit represents a Git commit
type Commit struct {
	Hash        string
	ShortHash   string
	Message     string
	Summary     string // First line of the message
	Author      string
	AuthorEmail string
	When        time.Time // Committer timestamp
}

// TreeEntry represents an entry in a Git tree (file or directory)
type TreeEntry struct {
	Name string    // File or directory name
	Path string    // Full path from repository root
	Kind EntryKind // blob for file, tree for directory
	Mode string    // File mode (e.g., "100644" for regular file)
	Hash string    // Object hash
	Size int64     // File size in bytes (only for blobs)
}

// IsDir returns true for directory entries
func (e TreeEntry) IsDir() bool {
	return e.Kind == KindTree
}

// BlobContent represents the content of a file in a Git repository. Content
// carries the raw bytes regardless of binary-ness; presentation layers decide
// what to show.
type BlobContent struct {
	Name     string
	Path     string
	Size     int64
	Hash     string
	Content  []byte
	IsBinary bool
}

// BlameHunk is a contiguous line range attributed to the commit that last
// changed those lines. A file's blame is an ordered list of hunks covering
// its full current content.
type BlameHunk struct {
	StartLine  int // 1-based
	LineCount  int
	CommitHash string
	When       time.Time
}

// GitService opens repositories from the local filesystem
type GitService interface {
	// Open opens the repository at path. It does not search upward from
	// path and tolerates repositories that cross filesystem boundaries.
	Open(ctx context.Context, path string) (RepoSession, error)
}

// RepoSession is a handle on one opened repository. Sessions are cheap,
// request-scoped and must not be shared across requests.
type RepoSession interface {
	// References returns all branches and tags in store-listing order
	References(ctx context.Context) ([]Reference, error)

	// HeadReference returns the reference HEAD points at. For a detached
	// HEAD the shorthand is "HEAD".
	HeadReference(ctx context.Context) (*Reference, error)

	// Head returns the commit HEAD resolves to
	Head(ctx context.Context) (*Commit, error)

	// CommitByHash looks up a commit object by hash
	CommitByHash(ctx context.Context, hash string) (*Commit, error)

	// CommitAtRef resolves a reference to its commit, peeling annotated tags
	CommitAtRef(ctx context.Context, ref Reference) (*Commit, error)

	// TreeEntries lists the tree at path within the given commit, in tree
	// order. An empty path addresses the root tree.
	TreeEntries(ctx context.Context, commitHash, path string) ([]TreeEntry, error)

	// EntryAt looks up a single entry by full path within the given commit
	EntryAt(ctx context.Context, commitHash, path string) (*TreeEntry, error)

	// Blob fetches file content at path within the given commit
	Blob(ctx context.Context, commitHash, path string) (*BlobContent, error)

	// Blame computes the blame of the file at path as of the given commit
	Blame(ctx context.Context, commitHash, path string) ([]BlameHunk, error)
}
