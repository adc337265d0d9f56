package service

import (
	"strings"

	"github.com/gitscope-dev/gitscope/internal/application/dto"
)

// Link kinds used in browse URLs
const (
	KindBlob = "blob"
	KindTree = "tree"
)

// BrowsePath builds a canonical browse URL of the shape
// /<repo>/<kind>/<ref>/<segments up to and including index>.
func BrowsePath(repo, kind, ref string, segments []string, index int) string {
	var b strings.Builder
	b.WriteString("/")
	b.WriteString(repo)
	b.WriteString("/")
	b.WriteString(kind)
	b.WriteString("/")
	b.WriteString(ref)
	for _, seg := range segments[:index+1] {
		b.WriteString("/")
		b.WriteString(seg)
	}
	return b.String()
}

// Breadcrumbs builds the crumb trail for a tree or blob page. The first crumb
// is the repository root at the given ref; every segment after it links to
// its tree, except that the final segment links as a blob when the target is
// a file.
func Breadcrumbs(repo, ref, path string, lastIsBlob bool) []dto.Crumb {
	crumbs := []dto.Crumb{{
		Name: repo,
		Href: "/" + repo + "/" + KindTree + "/" + ref,
	}}

	if path == "" {
		crumbs[0].Last = true
		return crumbs
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		kind := KindTree
		last := i == len(segments)-1
		if last && lastIsBlob {
			kind = KindBlob
		}
		crumbs = append(crumbs, dto.Crumb{
			Name: seg,
			Href: BrowsePath(repo, kind, ref, segments, i),
			Last: last,
		})
	}

	return crumbs
}
