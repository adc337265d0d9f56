package dto

import (
	"html/template"
	"time"

	"github.com/gitscope-dev/gitscope/internal/domain/service"
)

// RepoSummary is one row of the repository index page
type RepoSummary struct {
	Name         string
	Description  string
	LastActivity time.Time
	Recency      string // Human-readable, e.g. "3 days ago"
	Href         string
}

// PathResolution is the outcome of splitting a combined ref+path parameter
// against the repository's references.
type PathResolution struct {
	Ref  service.Reference
	Path string // Path inside the tree, "" for the tree root
}

// Crumb is one segment of the breadcrumb trail above a tree or blob view
type Crumb struct {
	Name string
	Href string
	Last bool
}

// AnnotatedEntry pairs a tree entry with the commit that most recently
// touched any of its lines. The pairing is fixed at listing time.
type AnnotatedEntry struct {
	Entry   service.TreeEntry
	Commit  *service.Commit // nil for directories and unblameable entries
	Recency string
	Href    string
}

// TreeView is the rendered model of a directory listing
type TreeView struct {
	Repo       string
	Ref        string
	Path       string
	Crumbs     []Crumb
	Entries    []AnnotatedEntry
	Readme     *BlobView
	ReadmeHTML template.HTML
	Commit     *service.Commit // Commit the ref resolved to
}

// BlobView is the rendered model of a single file page
type BlobView struct {
	Repo     string
	Ref      string
	Path     string
	Name     string
	Size     int64
	Crumbs   []Crumb
	Content  string
	IsBinary bool
	Lines    int
	RawHref  string
	TooLarge bool
}

// RefsPage lists a repository's branches and tags
type RefsPage struct {
	Repo     string
	Branches []RefItem
	Tags     []RefItem
}

// RefItem is one branch or tag row on the refs page
type RefItem struct {
	Name   string
	Hash   string
	Href   string
	IsHead bool
}

// BrowseResult is what a combined ref+path lookup renders to: either a
// directory listing or a single file, never both.
type BrowseResult struct {
	Tree *TreeView
	Blob *BlobView
}
