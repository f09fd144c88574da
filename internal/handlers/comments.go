package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"humorpedia/internal/apperr"
	"humorpedia/internal/constants"
	"humorpedia/internal/models"
	"humorpedia/internal/services"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create handles POST /api/comments. Authenticated callers are attributed
// by id; anonymous ones must supply a name.
func (h *CommentHandler) Create(c *gin.Context) {
	var comment models.Comment
	if err := c.ShouldBindJSON(&comment); err != nil {
		respondError(c, apperr.BadRequest(err.Error()))
		return
	}
	if userID := currentUserID(c); userID != "" {
		comment.AuthorID = &userID
	} else if comment.AuthorName == "" {
		respondError(c, apperr.BadRequest("укажите имя автора"))
		return
	}

	if err := h.commentService.Create(&comment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListForDocument handles GET /api/comments/document/:documentID; only
// approved comments are visible without moderation rights.
func (h *CommentHandler) ListForDocument(c *gin.Context) {
	status := models.CommentApproved
	if models.CanModerate(c.GetString(constants.ContextKeyRole)) && c.Query("status") != "" {
		status = c.Query("status")
	}

	comments, err := h.commentService.ListForDocument(c.Param("documentID"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Queue handles GET /api/comments/queue for moderators.
func (h *CommentHandler) Queue(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	result, err := h.commentService.Queue(c.DefaultQuery("status", models.CommentPending), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CommentHandler) SetStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, apperr.BadRequest(err.Error()))
		return
	}

	comment, err := h.commentService.SetStatus(c.Param("id"), body.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.commentService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "комментарий удалён"})
}
