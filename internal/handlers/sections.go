package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"humorpedia/internal/apperr"
	"humorpedia/internal/models"
	"humorpedia/internal/services"
)

type SectionHandler struct {
	sectionService *services.SectionService
}

func NewSectionHandler(sectionService *services.SectionService) *SectionHandler {
	return &SectionHandler{sectionService: sectionService}
}

func (h *SectionHandler) List(c *gin.Context) {
	sections, err := h.sectionService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sections)
}

// Tree handles GET /api/sections/tree.
func (h *SectionHandler) Tree(c *gin.Context) {
	tree, err := h.sectionService.Tree()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

func (h *SectionHandler) Get(c *gin.Context) {
	section, err := h.sectionService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

// GetByPath handles GET /api/sections/by-path?path=/kvn/vysshaya-liga.
func (h *SectionHandler) GetByPath(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		respondError(c, apperr.BadRequest("параметр path обязателен"))
		return
	}
	section, err := h.sectionService.GetByPath(path)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

func (h *SectionHandler) Create(c *gin.Context) {
	var section models.Section
	if err := c.ShouldBindJSON(&section); err != nil {
		respondError(c, apperr.BadRequest(err.Error()))
		return
	}
	if err := h.sectionService.Create(&section); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, section)
}

func (h *SectionHandler) Update(c *gin.Context) {
	section, err := h.sectionService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	id, createdAt := section.ID, section.CreatedAt
	if err := c.ShouldBindJSON(section); err != nil {
		respondError(c, apperr.BadRequest(err.Error()))
		return
	}
	section.ID, section.CreatedAt = id, createdAt

	if err := h.sectionService.Update(section); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

func (h *SectionHandler) Delete(c *gin.Context) {
	if err := h.sectionService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "раздел удалён"})
}
