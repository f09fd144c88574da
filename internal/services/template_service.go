package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"humorpedia/internal/apperr"
	"humorpedia/internal/models"
	"humorpedia/internal/pagemodule"
	"humorpedia/internal/repository"
)

type TemplateService struct {
	repo *repository.TemplateRepository
}

func NewTemplateService(repo *repository.TemplateRepository) *TemplateService {
	return &TemplateService{repo: repo}
}

func (s *TemplateService) Create(tpl *models.Template, userID string) error {
	if strings.TrimSpace(tpl.Name) == "" {
		return apperr.BadRequest("имя шаблона обязательно")
	}
	if !models.KnownContentType(tpl.ContentType) {
		return apperr.BadRequest("неизвестный тип контента: " + tpl.ContentType)
	}
	if existing, err := s.repo.FindByName(tpl.Name); err == nil {
		return apperr.Conflict("шаблон «" + existing.Name + "» уже существует")
	}

	tpl.ID = uuid.NewString()
	tpl.CreatedBy = userID
	tpl.UpdatedBy = userID
	tpl.Modules = pagemodule.NormalizeList(tpl.Modules)

	if err := s.repo.Create(tpl); err != nil {
		return err
	}
	// The first template of a content type becomes its default.
	if tpl.IsDefault {
		return s.repo.SetDefault(tpl.ID, tpl.ContentType)
	}
	if _, err := s.repo.FindDefault(tpl.ContentType); errors.Is(err, gorm.ErrRecordNotFound) {
		return s.repo.SetDefault(tpl.ID, tpl.ContentType)
	}
	return nil
}

func (s *TemplateService) Update(tpl *models.Template, userID string) error {
	if strings.TrimSpace(tpl.Name) == "" {
		return apperr.BadRequest("имя шаблона обязательно")
	}
	if other, err := s.repo.FindByName(tpl.Name); err == nil && other.ID != tpl.ID {
		return apperr.Conflict("шаблон «" + other.Name + "» уже существует")
	}
	tpl.UpdatedBy = userID
	tpl.Modules = pagemodule.NormalizeList(tpl.Modules)
	return s.repo.Update(tpl)
}

func (s *TemplateService) Get(id string) (*models.Template, error) {
	tpl, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("шаблон")
	}
	return tpl, err
}

func (s *TemplateService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *TemplateService) List(contentType string) ([]models.Template, error) {
	return s.repo.FindAll(contentType)
}

// GetDefault returns the default template for a content type, or nil when
// the type has none.
func (s *TemplateService) GetDefault(contentType string) (*models.Template, error) {
	tpl, err := s.repo.FindDefault(contentType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tpl, nil
}

// SetDefault makes the template the single default for its content type.
func (s *TemplateService) SetDefault(id string) (*models.Template, error) {
	tpl, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetDefault(tpl.ID, tpl.ContentType); err != nil {
		return nil, err
	}
	tpl.IsDefault = true
	return tpl, nil
}
