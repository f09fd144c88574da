package services

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"humorpedia/internal/apperr"
	"humorpedia/internal/logger"
	"humorpedia/internal/models"
	"humorpedia/internal/repository"
	"humorpedia/internal/utils"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".mp4":  true,
	".webm": true,
	".mp3":  true,
	".pdf":  true,
}

type MediaService struct {
	repo      *repository.MediaRepository
	uploadDir string
	maxSize   int64
	log       *logger.Logger
}

func NewMediaService(repo *repository.MediaRepository, uploadDir string, maxSize int64, log *logger.Logger) *MediaService {
	return &MediaService{repo: repo, uploadDir: uploadDir, maxSize: maxSize, log: log}
}

// Upload stores one file under a date-partitioned uuid name and records it
// in the media library.
func (s *MediaService) Upload(header *multipart.FileHeader, alt, caption, userID string) (*models.MediaFile, error) {
	if header.Size > s.maxSize {
		return nil, apperr.BadRequest(fmt.Sprintf("файл слишком большой (максимум %d МБ)", s.maxSize/(1<<20)))
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return nil, apperr.BadRequest("недопустимый тип файла: " + ext)
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	now := time.Now()
	relDir := filepath.Join(now.Format("2006"), now.Format("01"))
	if err := os.MkdirAll(filepath.Join(s.uploadDir, relDir), 0o755); err != nil {
		return nil, err
	}

	filename := uuid.NewString() + ext
	relPath := filepath.Join(relDir, filename)
	dst, err := os.Create(filepath.Join(s.uploadDir, relPath))
	if err != nil {
		return nil, err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	file := &models.MediaFile{
		ID:           uuid.NewString(),
		Filename:     filename,
		OriginalName: header.Filename,
		Path:         relPath,
		URL:          "/uploads/" + filepath.ToSlash(relPath),
		MimeType:     header.Header.Get("Content-Type"),
		FileSize:     header.Size,
		Alt:          alt,
		Caption:      caption,
		Status:       models.MediaActive,
		UploadedBy:   userID,
		UploadedAt:   now,
	}

	if w, h, ok := imageDimensions(filepath.Join(s.uploadDir, relPath)); ok {
		file.Width = &w
		file.Height = &h
	}

	if err := s.repo.Create(file); err != nil {
		return nil, err
	}
	return file, nil
}

// imageDimensions reads the image header only, not the full pixel data.
func imageDimensions(path string) (int, int, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, false
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}

func (s *MediaService) Get(id string) (*models.MediaFile, error) {
	file, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("файл")
	}
	return file, err
}

func (s *MediaService) List(search string, skip, limit int) (utils.ListResult, error) {
	skip, limit = utils.ClampPage(skip, limit)
	files, err := s.repo.FindAll(search, skip, limit)
	if err != nil {
		return utils.ListResult{}, err
	}
	total, err := s.repo.Count(search)
	if err != nil {
		return utils.ListResult{}, err
	}
	return utils.NewListResult(files, total, skip, limit), nil
}

func (s *MediaService) UpdateMeta(id, alt, caption string) (*models.MediaFile, error) {
	file, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	file.Alt = alt
	file.Caption = caption
	if err := s.repo.Update(file); err != nil {
		return nil, err
	}
	return file, nil
}

// Delete soft-deletes the record; the file is kept on disk so existing
// pages that embed its URL keep working.
func (s *MediaService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.MarkDeleted(id)
}
