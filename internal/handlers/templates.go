package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"humorpedia/internal/apperr"
	"humorpedia/internal/models"
	"humorpedia/internal/pagemodule"
	"humorpedia/internal/services"
)

type TemplateHandler struct {
	tplService *services.TemplateService
}

func NewTemplateHandler(tplService *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{tplService: tplService}
}

func (h *TemplateHandler) List(c *gin.Context) {
	contentType := c.Query("content_type")
	if contentType != "" && !models.KnownContentType(contentType) {
		respondError(c, apperr.BadRequest("неизвестный тип контента: "+contentType))
		return
	}
	templates, err := h.tplService.List(contentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

// ModuleTypes handles GET /api/templates/modules/types: the module type
// catalog, optionally narrowed to one content type.
func (h *TemplateHandler) ModuleTypes(c *gin.Context) {
	contentType := c.Query("content_type")
	if contentType == "" {
		c.JSON(http.StatusOK, pagemodule.AllTypes())
		return
	}
	c.JSON(http.StatusOK, pagemodule.AllowedTypes(contentType))
}

func (h *TemplateHandler) Get(c *gin.Context) {
	tpl, err := h.tplService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// GetDefault handles GET /api/templates/default/:contentType. A content
// type without a default yields 404.
func (h *TemplateHandler) GetDefault(c *gin.Context) {
	contentType := c.Param("contentType")
	if !models.KnownContentType(contentType) {
		respondError(c, apperr.BadRequest("неизвестный тип контента: "+contentType))
		return
	}
	tpl, err := h.tplService.GetDefault(contentType)
	if err != nil {
		respondError(c, err)
		return
	}
	if tpl == nil {
		respondError(c, apperr.NotFound("шаблон по умолчанию"))
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *TemplateHandler) Create(c *gin.Context) {
	var tpl models.Template
	if err := c.ShouldBindJSON(&tpl); err != nil {
		respondError(c, apperr.BadRequest(err.Error()))
		return
	}
	if err := h.tplService.Create(&tpl, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

func (h *TemplateHandler) Update(c *gin.Context) {
	tpl, err := h.tplService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	id, contentType, createdAt, createdBy := tpl.ID, tpl.ContentType, tpl.CreatedAt, tpl.CreatedBy
	if err := c.ShouldBindJSON(tpl); err != nil {
		respondError(c, apperr.BadRequest(err.Error()))
		return
	}
	tpl.ID, tpl.ContentType, tpl.CreatedAt, tpl.CreatedBy = id, contentType, createdAt, createdBy

	if err := h.tplService.Update(tpl, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// SetDefault handles POST /api/templates/:id/set-default.
func (h *TemplateHandler) SetDefault(c *gin.Context) {
	tpl, err := h.tplService.SetDefault(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.tplService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "шаблон удалён"})
}
