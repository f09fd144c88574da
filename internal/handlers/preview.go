package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"humorpedia/internal/pagemodule"
	"humorpedia/internal/services"
)

// PreviewHandler renders a server-side HTML preview of a document: every
// visible module through the module renderer, in order.
type PreviewHandler struct {
	contentService *services.ContentService
}

func NewPreviewHandler(contentService *services.ContentService) *PreviewHandler {
	return &PreviewHandler{contentService: contentService}
}

// Show handles GET /preview/:type/:idOrSlug.
func (h *PreviewHandler) Show(c *gin.Context) {
	contentType, ok := resolveType(c)
	if !ok {
		return
	}

	doc, err := h.contentService.GetByIDOrSlug(contentType, c.Param("idOrSlug"), false)
	if err != nil {
		respondError(c, err)
		return
	}

	fragments := pagemodule.RenderAll(doc.Modules, doc.RenderContext())
	c.HTML(http.StatusOK, "preview.html", gin.H{
		"Title":     doc.Title,
		"Status":    doc.Status,
		"Fragments": fragments,
	})
}
