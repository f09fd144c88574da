package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"humorpedia/internal/apperr"
	"humorpedia/internal/constants"
	"humorpedia/internal/services"
	"humorpedia/internal/tasks"
)

// SettingsHandler manages site settings and the backup controls. Admin
// only.
type SettingsHandler struct {
	settingService *services.SettingService
	backupService  *services.BackupService
	scheduler      *tasks.Scheduler
}

func NewSettingsHandler(settingService *services.SettingService, backupService *services.BackupService, scheduler *tasks.Scheduler) *SettingsHandler {
	return &SettingsHandler{
		settingService: settingService,
		backupService:  backupService,
		scheduler:      scheduler,
	}
}

var secretSettings = map[string]bool{
	constants.SettingBackupPassword: true,
	constants.SettingGithubToken:    true,
	constants.SettingWebdavPassword: true,
}

// List returns all settings with secret values masked.
func (h *SettingsHandler) List(c *gin.Context) {
	settings, err := h.settingService.GetAllSettings()
	if err != nil {
		respondError(c, err)
		return
	}
	for key := range settings {
		if secretSettings[key] && settings[key] != "" {
			settings[key] = "********"
		}
	}
	c.JSON(http.StatusOK, settings)
}

// Update accepts a partial settings map; masked placeholder values are
// dropped so a form round-trip does not clobber stored secrets.
func (h *SettingsHandler) Update(c *gin.Context) {
	var body map[string]string
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, apperr.BadRequest(err.Error()))
		return
	}
	for key, value := range body {
		if secretSettings[key] && value == "********" {
			delete(body, key)
		}
	}

	if err := h.settingService.UpdateSettings(body); err != nil {
		respondError(c, err)
		return
	}
	h.scheduler.Reload()
	c.JSON(http.StatusOK, gin.H{"detail": "настройки сохранены"})
}

// RunBackup handles POST /api/backup/run?target=github|webdav.
func (h *SettingsHandler) RunBackup(c *gin.Context) {
	var err error
	switch c.Query("target") {
	case "github":
		repo, _ := h.settingService.GetSetting(constants.SettingGithubRepo)
		branch, _ := h.settingService.GetSetting(constants.SettingGithubBranch)
		token, _ := h.settingService.GetSetting(constants.SettingGithubToken)
		err = h.backupService.BackupToGithub(repo, branch, token)
	case "webdav":
		url, _ := h.settingService.GetSetting(constants.SettingWebdavURL)
		user, _ := h.settingService.GetSetting(constants.SettingWebdavUser)
		password, _ := h.settingService.GetSetting(constants.SettingWebdavPassword)
		err = h.backupService.BackupToWebdav(url, user, password)
	default:
		respondError(c, apperr.BadRequest("target должен быть github или webdav"))
		return
	}

	if errors.Is(err, services.ErrBackupNoChange) {
		c.JSON(http.StatusOK, gin.H{"detail": err.Error()})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "резервная копия создана"})
}

// RestoreBackup handles POST /api/backup/restore: a multipart upload of an
// encrypted backup archive. The optional password field overrides the
// stored one. Replaces the whole site state.
func (h *SettingsHandler) RestoreBackup(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperr.BadRequest("файл резервной копии обязателен"))
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, apperr.BadRequest(err.Error()))
		return
	}
	defer src.Close()
	archive, err := io.ReadAll(src)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.backupService.Restore(archive, c.PostForm("password")); err != nil {
		respondError(c, apperr.BadRequest(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "резервная копия восстановлена"})
}

// TestBackup handles POST /api/backup/test?target=github|webdav with the
// candidate credentials in the body.
func (h *SettingsHandler) TestBackup(c *gin.Context) {
	var body struct {
		Repo     string `json:"repo"`
		Token    string `json:"token"`
		URL      string `json:"url"`
		User     string `json:"user"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, apperr.BadRequest(err.Error()))
		return
	}

	var err error
	switch c.Query("target") {
	case "github":
		err = h.backupService.TestGithubConnection(body.Repo, body.Token)
	case "webdav":
		err = h.backupService.TestWebdavConnection(body.URL, body.User, body.Password)
	default:
		respondError(c, apperr.BadRequest("target должен быть github или webdav"))
		return
	}

	if err != nil {
		respondError(c, apperr.BadRequest(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "подключение успешно"})
}
