package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"humorpedia/internal/apperr"
	"humorpedia/internal/models"
	"humorpedia/internal/repository"
	"humorpedia/internal/services"
)

type ContentHandler struct {
	contentService *services.ContentService
}

func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func resolveType(c *gin.Context) (string, bool) {
	contentType, ok := services.ResolveContentType(c.Param("type"))
	if !ok {
		respondError(c, apperr.BadRequest("неизвестный тип контента: "+c.Param("type")))
		return "", false
	}
	return contentType, true
}

// List handles GET /api/content/:type with status, tag, search, letter and
// paging query parameters.
func (h *ContentHandler) List(c *gin.Context) {
	contentType, ok := resolveType(c)
	if !ok {
		return
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	filter := repository.ContentFilter{
		Status: c.Query("status"),
		Tag:    c.Query("tag"),
		Search: c.Query("search"),
		Letter: c.Query("letter"),
		Skip:   skip,
		Limit:  limit,
	}

	result, err := h.contentService.List(contentType, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Search handles GET /api/content/search?q=&types=, full-text search across
// content types. types is a comma-separated list; empty means all.
func (h *ContentHandler) Search(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var types []string
	if raw := c.Query("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}

	result, err := h.contentService.Search(c.Query("q"), types, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/content/:type/:idOrSlug. Every read ticks the view
// counter unless the client opts out with ?count_view=false (the admin
// panel does, so editing a page is not a view).
func (h *ContentHandler) Get(c *gin.Context) {
	contentType, ok := resolveType(c)
	if !ok {
		return
	}
	countView := c.Query("count_view") != "false"

	doc, err := h.contentService.GetByIDOrSlug(contentType, c.Param("idOrSlug"), countView)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *ContentHandler) Create(c *gin.Context) {
	contentType, ok := resolveType(c)
	if !ok {
		return
	}

	var doc models.ContentDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		respondError(c, apperr.BadRequest(err.Error()))
		return
	}
	doc.ContentType = contentType

	if err := h.contentService.Create(&doc, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (h *ContentHandler) Update(c *gin.Context) {
	contentType, ok := resolveType(c)
	if !ok {
		return
	}

	doc, err := h.contentService.GetByIDOrSlug(contentType, c.Param("idOrSlug"), false)
	if err != nil {
		respondError(c, err)
		return
	}

	oldTags := append([]string(nil), doc.Tags...)
	id, createdAt, createdBy := doc.ID, doc.CreatedAt, doc.CreatedBy
	if err := c.ShouldBindJSON(doc); err != nil {
		respondError(c, apperr.BadRequest(err.Error()))
		return
	}
	// Identity and provenance fields are not client-writable.
	doc.ID, doc.ContentType, doc.CreatedAt, doc.CreatedBy = id, contentType, createdAt, createdBy

	if err := h.contentService.Update(doc, oldTags, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *ContentHandler) Delete(c *gin.Context) {
	contentType, ok := resolveType(c)
	if !ok {
		return
	}
	if err := h.contentService.Delete(contentType, c.Param("idOrSlug")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "документ удалён"})
}
