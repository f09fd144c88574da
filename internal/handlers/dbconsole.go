package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"humorpedia/internal/apperr"
	"humorpedia/internal/services"
)

// DBConsoleHandler exposes the admin database console: raw per-collection
// export, import and wipe. Admin only.
type DBConsoleHandler struct {
	consoleService *services.DBConsoleService
}

func NewDBConsoleHandler(consoleService *services.DBConsoleService) *DBConsoleHandler {
	return &DBConsoleHandler{consoleService: consoleService}
}

// Collections handles GET /api/db/collections.
func (h *DBConsoleHandler) Collections(c *gin.Context) {
	infos, err := h.consoleService.Collections()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, infos)
}

// Export handles GET /api/db/export/:collection.
func (h *DBConsoleHandler) Export(c *gin.Context) {
	records, err := h.consoleService.Export(c.Param("collection"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+c.Param("collection")+`.json"`)
	c.JSON(http.StatusOK, records)
}

// Import handles POST /api/db/import/:collection with a JSON array body.
func (h *DBConsoleHandler) Import(c *gin.Context) {
	var raw json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		respondError(c, apperr.BadRequest(err.Error()))
		return
	}

	count, err := h.consoleService.Import(c.Param("collection"), raw)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": count})
}

// Wipe handles POST /api/db/delete/:collection.
func (h *DBConsoleHandler) Wipe(c *gin.Context) {
	deleted, err := h.consoleService.Wipe(c.Param("collection"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
