package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/go-github/v39/github"
	"github.com/yeka/zip"
	"golang.org/x/oauth2"

	"humorpedia/internal/constants"
	"humorpedia/internal/models"
	"humorpedia/internal/repository"
)

var ErrBackupNoChange = errors.New("данные не изменились, резервная копия не нужна")

type BackupService struct {
	contentRepo    *repository.ContentRepository
	tagRepo        *repository.TagRepository
	templateRepo   *repository.TemplateRepository
	sectionRepo    *repository.SectionRepository
	settingService *SettingService
}

func NewBackupService(
	contentRepo *repository.ContentRepository,
	tagRepo *repository.TagRepository,
	templateRepo *repository.TemplateRepository,
	sectionRepo *repository.SectionRepository,
	settingService *SettingService,
) *BackupService {
	return &BackupService{
		contentRepo:    contentRepo,
		tagRepo:        tagRepo,
		templateRepo:   templateRepo,
		sectionRepo:    sectionRepo,
		settingService: settingService,
	}
}

func (s *BackupService) generateBackupDataAndHash() (*models.SiteBackup, string, error) {
	docs, err := s.contentRepo.FindAllForBackup()
	if err != nil {
		return nil, "", fmt.Errorf("выгрузка документов: %w", err)
	}
	tags, err := s.tagRepo.FindAllForBackup()
	if err != nil {
		return nil, "", fmt.Errorf("выгрузка тегов: %w", err)
	}
	templates, err := s.templateRepo.FindAllForBackup()
	if err != nil {
		return nil, "", fmt.Errorf("выгрузка шаблонов: %w", err)
	}
	sections, err := s.sectionRepo.FindAllForBackup()
	if err != nil {
		return nil, "", fmt.Errorf("выгрузка разделов: %w", err)
	}
	settings, err := s.settingService.GetAllSettings()
	if err != nil {
		return nil, "", fmt.Errorf("выгрузка настроек: %w", err)
	}

	// Hash markers from the previous run must not feed the next hash.
	delete(settings, constants.SettingGithubLastBackupHash)
	delete(settings, constants.SettingWebdavLastBackupHash)

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	stableSettings := make(map[string]string, len(settings))
	for _, k := range keys {
		stableSettings[k] = settings[k]
	}

	backupData := &models.SiteBackup{
		Documents: docs,
		Tags:      tags,
		Templates: templates,
		Sections:  sections,
		Settings:  stableSettings,
	}

	jsonData, err := json.Marshal(backupData)
	if err != nil {
		return nil, "", fmt.Errorf("сериализация JSON: %w", err)
	}
	hash := sha256.Sum256(jsonData)
	return backupData, hex.EncodeToString(hash[:]), nil
}

func (s *BackupService) BackupToGithub(repoName, branch, token string) error {
	backupData, newHash, err := s.generateBackupDataAndHash()
	if err != nil {
		return err
	}

	lastHash, _ := s.settingService.GetSetting(constants.SettingGithubLastBackupHash)
	if newHash == lastHash {
		return ErrBackupNoChange
	}

	backupContent, err := s.createEncryptedBackup(backupData)
	if err != nil {
		return fmt.Errorf("создание файла резервной копии: %w", err)
	}

	parts := strings.Split(repoName, "/")
	if len(parts) != 2 {
		return fmt.Errorf("неверный формат имени репозитория, ожидается 'user/repo'")
	}
	owner, repo := parts[0], parts[1]
	path := fmt.Sprintf("humorpedia_backup_%s.zip", time.Now().Format("20060102150405"))
	message := "Automated site backup"

	ctx := context.Background()
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	opts := &github.RepositoryContentFileOptions{
		Message: &message,
		Content: backupContent,
		Branch:  &branch,
	}

	_, _, err = client.Repositories.CreateFile(ctx, owner, repo, path, opts)
	if err != nil {
		fileContent, _, _, getErr := client.Repositories.GetContents(ctx, owner, repo, path, &github.RepositoryContentGetOptions{Ref: branch})
		if getErr != nil {
			return fmt.Errorf("создание файла в GitHub не удалось: %w", err)
		}
		opts.SHA = fileContent.SHA
		_, _, updateErr := client.Repositories.UpdateFile(ctx, owner, repo, path, opts)
		if updateErr != nil {
			return fmt.Errorf("обновление файла в GitHub не удалось: %w", updateErr)
		}
	}

	return s.settingService.UpdateSettings(map[string]string{
		constants.SettingGithubLastBackupHash: newHash,
	})
}

func (s *BackupService) BackupToWebdav(url, user, password string) error {
	backupData, newHash, err := s.generateBackupDataAndHash()
	if err != nil {
		return err
	}

	lastHash, _ := s.settingService.GetSetting(constants.SettingWebdavLastBackupHash)
	if newHash == lastHash {
		return ErrBackupNoChange
	}

	backupContent, err := s.createEncryptedBackup(backupData)
	if err != nil {
		return fmt.Errorf("создание файла резервной копии: %w", err)
	}

	fileName := fmt.Sprintf("humorpedia_backup_%s.zip", time.Now().Format("20060102150405"))
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	fullURL := url + fileName

	req, err := http.NewRequest(http.MethodPut, fullURL, bytes.NewReader(backupContent))
	if err != nil {
		return fmt.Errorf("создание WebDAV-запроса: %w", err)
	}
	if user != "" && password != "" {
		req.SetBasicAuth(user, password)
	}
	req.Header.Set("Content-Type", "application/zip")

	client := &http.Client{Timeout: 120 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("загрузка на WebDAV-сервер: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("WebDAV-сервер вернул ошибку: %s, ответ: %s", resp.Status, string(body))
	}

	return s.settingService.UpdateSettings(map[string]string{
		constants.SettingWebdavLastBackupHash: newHash,
	})
}

func (s *BackupService) createEncryptedBackup(backupData *models.SiteBackup) ([]byte, error) {
	password, err := s.settingService.GetSetting(constants.SettingBackupPassword)
	if err != nil {
		return nil, fmt.Errorf("чтение пароля резервной копии: %w", err)
	}
	if password == "" {
		return nil, fmt.Errorf("пароль резервной копии не задан")
	}

	jsonData, err := json.MarshalIndent(backupData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("сериализация JSON: %w", err)
	}

	buf := new(bytes.Buffer)
	zipWriter := zip.NewWriter(buf)
	zipFile, err := zipWriter.Encrypt("backup.json", password, zip.AES256Encryption)
	if err != nil {
		return nil, fmt.Errorf("создание зашифрованного ZIP: %w", err)
	}
	if _, err := zipFile.Write(jsonData); err != nil {
		return nil, fmt.Errorf("запись в ZIP: %w", err)
	}
	zipWriter.Close()

	return buf.Bytes(), nil
}

// Restore replaces the whole site state with the contents of an encrypted
// backup archive. password overrides the stored backup password when set.
func (s *BackupService) Restore(archive []byte, password string) error {
	if password == "" {
		password, _ = s.settingService.GetSetting(constants.SettingBackupPassword)
	}
	if password == "" {
		return fmt.Errorf("пароль резервной копии не задан")
	}

	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return fmt.Errorf("чтение ZIP-архива: %w", err)
	}

	var backupData models.SiteBackup
	found := false
	for _, f := range reader.File {
		if f.Name != "backup.json" {
			continue
		}
		if f.IsEncrypted() {
			f.SetPassword(password)
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("расшифровка архива (проверьте пароль): %w", err)
		}
		jsonData, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("чтение данных архива: %w", err)
		}
		if err := json.Unmarshal(jsonData, &backupData); err != nil {
			return fmt.Errorf("разбор JSON резервной копии: %w", err)
		}
		found = true
		break
	}
	if !found {
		return fmt.Errorf("backup.json не найден в архиве")
	}

	if err := s.contentRepo.DeleteAll(); err != nil {
		return fmt.Errorf("очистка документов: %w", err)
	}
	if err := s.tagRepo.DeleteAll(); err != nil {
		return fmt.Errorf("очистка тегов: %w", err)
	}
	if err := s.templateRepo.DeleteAll(); err != nil {
		return fmt.Errorf("очистка шаблонов: %w", err)
	}
	if err := s.sectionRepo.DeleteAll(); err != nil {
		return fmt.Errorf("очистка разделов: %w", err)
	}

	if err := s.contentRepo.CreateBatch(backupData.Documents); err != nil {
		return fmt.Errorf("восстановление документов: %w", err)
	}
	if err := s.tagRepo.CreateBatch(backupData.Tags); err != nil {
		return fmt.Errorf("восстановление тегов: %w", err)
	}
	if err := s.templateRepo.CreateBatch(backupData.Templates); err != nil {
		return fmt.Errorf("восстановление шаблонов: %w", err)
	}
	if err := s.sectionRepo.CreateBatch(backupData.Sections); err != nil {
		return fmt.Errorf("восстановление разделов: %w", err)
	}
	if len(backupData.Settings) > 0 {
		if err := s.settingService.UpdateSettings(backupData.Settings); err != nil {
			return fmt.Errorf("восстановление настроек: %w", err)
		}
	}

	// The FTS index is derived data; rebuild it from the restored rows.
	for i := range backupData.Documents {
		doc := &backupData.Documents[i]
		if err := s.contentRepo.UpdateFtsIndex(doc.ID, doc.Title, searchBody(doc)); err != nil {
			return fmt.Errorf("перестроение поискового индекса: %w", err)
		}
	}
	return nil
}

func (s *BackupService) TestGithubConnection(repoName, token string) error {
	if repoName == "" || token == "" {
		return fmt.Errorf("имя репозитория и токен обязательны")
	}

	parts := strings.Split(repoName, "/")
	if len(parts) != 2 {
		return fmt.Errorf("неверный формат имени репозитория, ожидается 'user/repo'")
	}
	owner, repo := parts[0], parts[1]

	ctx := context.Background()
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	_, _, err := client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		_, _, userErr := client.Users.Get(ctx, "")
		if userErr != nil {
			return fmt.Errorf("токен недействителен: %v", userErr)
		}
		return fmt.Errorf("репозиторий недоступен (проверьте имя и права): %v", err)
	}
	return nil
}

func (s *BackupService) TestWebdavConnection(url, user, password string) error {
	if url == "" {
		return fmt.Errorf("адрес сервера обязателен")
	}

	req, err := http.NewRequest("OPTIONS", url, nil)
	if err != nil {
		return fmt.Errorf("создание запроса: %v", err)
	}
	if user != "" && password != "" {
		req.SetBasicAuth(user, password)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("подключение к WebDAV-серверу: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return fmt.Errorf("WebDAV-сервер вернул ошибку: %s", resp.Status)
}
