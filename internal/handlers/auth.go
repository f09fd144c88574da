package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"humorpedia/internal/apperr"
	"humorpedia/internal/constants"
	"humorpedia/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

func NewAuthHandler(authService *services.AuthService, userService *services.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, apperr.BadRequest(err.Error()))
		return
	}

	user, err := h.authService.Register(body.Username, body.Email, body.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user.Public())
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, apperr.BadRequest(err.Error()))
		return
	}

	token, user, err := h.authService.Login(body.Username, body.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   int(h.authService.TokenTTL().Seconds()),
		"user":         user.Public(),
	})
}

// Me handles GET /api/auth/me for the authenticated caller.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.userService.Get(c.GetString(constants.ContextKeyUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}
