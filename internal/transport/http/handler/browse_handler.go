package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gitscope-dev/gitscope/internal/application/dto"
	"github.com/gitscope-dev/gitscope/internal/application/service"
	domainsvc "github.com/gitscope-dev/gitscope/internal/domain/service"
	apperrors "github.com/gitscope-dev/gitscope/pkg/errors"
	"github.com/gitscope-dev/gitscope/pkg/logger"
)

// BrowseHandler handles repository browsing HTTP requests
type BrowseHandler struct {
	browseService *service.BrowseService
}

// NewBrowseHandler creates a new BrowseHandler instance
func NewBrowseHandler(browseService *service.BrowseService) *BrowseHandler {
	return &BrowseHandler{
		browseService: browseService,
	}
}

// Index handles GET /
func (h *BrowseHandler) Index(c *gin.Context) {
	repos, err := h.browseService.ListRepositories(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "repos.html", gin.H{
		"Title": "Repositories",
		"Repos": repos,
	})
}

// Repo handles GET /:repo and renders the root tree at HEAD
func (h *BrowseHandler) Repo(c *gin.Context) {
	result, err := h.browseService.BrowseRoot(c.Request.Context(), c.Param("repo"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.renderBrowse(c, result)
}

// Tree handles GET /:repo/tree/*refpath. The wildcard carries a combined
// "<ref>/<subpath>" value; when it resolves to a file the blob page is
// rendered instead.
func (h *BrowseHandler) Tree(c *gin.Context) {
	result, err := h.browseService.BrowseTree(c.Request.Context(), c.Param("repo"), c.Param("refpath"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.renderBrowse(c, result)
}

// Blob handles GET /:repo/blob/*refpath
func (h *BrowseHandler) Blob(c *gin.Context) {
	blob, err := h.browseService.ViewBlob(c.Request.Context(), c.Param("repo"), c.Param("refpath"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "blob.html", blob)
}

// Raw handles GET /:repo/raw/*refpath and serves the file bytes unwrapped
func (h *BrowseHandler) Raw(c *gin.Context) {
	blob, err := h.browseService.RawBlob(c.Request.Context(), c.Param("repo"), c.Param("refpath"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Data(http.StatusOK, rawContentType(blob), blob.Content)
}

// rawContentType sniffs binary blobs so browsers get a usable type for
// images and archives. Text blobs are always served as plain text so that
// repository content is never interpreted as markup.
func rawContentType(blob *domainsvc.BlobContent) string {
	if !blob.IsBinary {
		return "text/plain; charset=utf-8"
	}
	return http.DetectContentType(blob.Content)
}

// Refs handles GET /:repo/refs
func (h *BrowseHandler) Refs(c *gin.Context) {
	page, err := h.browseService.ListRefs(c.Request.Context(), c.Param("repo"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "refs.html", page)
}

func (h *BrowseHandler) renderBrowse(c *gin.Context, result *dto.BrowseResult) {
	if result.Blob != nil {
		c.HTML(http.StatusOK, "blob.html", result.Blob)
		return
	}
	c.HTML(http.StatusOK, "tree.html", result.Tree)
}

// handleError renders the error page with a status matching the error kind
func (h *BrowseHandler) handleError(c *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		c.HTML(http.StatusNotFound, "error.html", gin.H{
			"Status":  http.StatusNotFound,
			"Message": "Not found",
		})
	case apperrors.IsBadRequest(err):
		c.HTML(http.StatusBadRequest, "error.html", gin.H{
			"Status":  http.StatusBadRequest,
			"Message": "Bad request",
		})
	default:
		logger.WithContext(c.Request.Context()).Error("request failed", logger.Err(err))
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Status":  http.StatusInternalServerError,
			"Message": "An internal error occurred",
		})
	}
}
