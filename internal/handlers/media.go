package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"humorpedia/internal/apperr"
	"humorpedia/internal/services"
)

type MediaHandler struct {
	mediaService *services.MediaService
}

func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload handles POST /api/media as multipart form data with a "file"
// part and optional alt/caption fields.
func (h *MediaHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperr.BadRequest("файл не передан"))
		return
	}

	file, err := h.mediaService.Upload(header, c.PostForm("alt"), c.PostForm("caption"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, file)
}

func (h *MediaHandler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	result, err := h.mediaService.List(c.Query("search"), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *MediaHandler) Get(c *gin.Context) {
	file, err := h.mediaService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, file)
}

func (h *MediaHandler) Update(c *gin.Context) {
	var body struct {
		Alt     string `json:"alt"`
		Caption string `json:"caption"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, apperr.BadRequest(err.Error()))
		return
	}

	file, err := h.mediaService.UpdateMeta(c.Param("id"), body.Alt, body.Caption)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, file)
}

func (h *MediaHandler) Delete(c *gin.Context) {
	if err := h.mediaService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "файл удалён"})
}
