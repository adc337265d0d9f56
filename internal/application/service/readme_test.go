package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainsvc "github.com/gitscope-dev/gitscope/internal/domain/service"
)

func TestLocateReadmeCaseInsensitive(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		found    bool
	}{
		{"uppercase markdown", "README.md", true},
		{"lowercase txt", "readme.txt", true},
		{"mixed case bare", "ReadMe", true},
		{"prefixed name is not a readme", "notreadme.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &fakeSession{
				blobs: map[string]*domainsvc.BlobContent{
					tt.fileName: {
						Name:    tt.fileName,
						Path:    tt.fileName,
						Size:    7,
						Content: []byte("# Hello"),
					},
				},
			}
			entries := []domainsvc.TreeEntry{
				{Name: "lib", Path: "lib", Kind: domainsvc.KindTree},
				{Name: tt.fileName, Path: tt.fileName, Kind: domainsvc.KindBlob},
				{Name: "index.js", Path: "index.js", Kind: domainsvc.KindBlob},
			}

			svc := newTestService(&fakeGit{})
			head := headCommit("aaaaaaaa00000000000000000000000000000000", time.Now())

			readme, html := svc.locateReadme(context.Background(), sess, "demo", "master", "", head, entries)
			if !tt.found {
				assert.Nil(t, readme)
				assert.Empty(t, html)
				return
			}
			require.NotNil(t, readme)
			assert.Equal(t, tt.fileName, readme.Name)
			assert.Contains(t, string(html), "<h1")
		})
	}
}

func TestLocateReadmeFirstInListingOrder(t *testing.T) {
	sess := &fakeSession{
		blobs: map[string]*domainsvc.BlobContent{
			"README.md":  {Name: "README.md", Path: "README.md", Content: []byte("first")},
			"readme.txt": {Name: "readme.txt", Path: "readme.txt", Content: []byte("second")},
		},
	}
	entries := []domainsvc.TreeEntry{
		{Name: "README.md", Path: "README.md", Kind: domainsvc.KindBlob},
		{Name: "readme.txt", Path: "readme.txt", Kind: domainsvc.KindBlob},
	}

	svc := newTestService(&fakeGit{})
	head := headCommit("aaaaaaaa00000000000000000000000000000000", time.Now())

	readme, _ := svc.locateReadme(context.Background(), sess, "demo", "master", "", head, entries)
	require.NotNil(t, readme)
	assert.Equal(t, "README.md", readme.Name)
}

func TestLocateReadmeToleratesFailures(t *testing.T) {
	// Blob fetch fails: the entry is listed but no blob is registered
	sess := &fakeSession{blobs: map[string]*domainsvc.BlobContent{}}
	entries := []domainsvc.TreeEntry{
		{Name: "README.md", Path: "README.md", Kind: domainsvc.KindBlob},
	}

	svc := newTestService(&fakeGit{})
	head := headCommit("aaaaaaaa00000000000000000000000000000000", time.Now())

	readme, html := svc.locateReadme(context.Background(), sess, "demo", "master", "", head, entries)
	assert.Nil(t, readme)
	assert.Empty(t, html)
}

func TestLocateReadmeSkipsBinary(t *testing.T) {
	sess := &fakeSession{
		blobs: map[string]*domainsvc.BlobContent{
			"README": {Name: "README", Path: "README", Content: []byte{0x00, 0x01}, IsBinary: true},
		},
	}
	entries := []domainsvc.TreeEntry{
		{Name: "README", Path: "README", Kind: domainsvc.KindBlob},
	}

	svc := newTestService(&fakeGit{})
	head := headCommit("aaaaaaaa00000000000000000000000000000000", time.Now())

	readme, html := svc.locateReadme(context.Background(), sess, "demo", "master", "", head, entries)
	assert.Nil(t, readme)
	assert.Empty(t, html)
}
