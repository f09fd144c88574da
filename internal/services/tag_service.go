package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"humorpedia/internal/apperr"
	"humorpedia/internal/logger"
	"humorpedia/internal/models"
	"humorpedia/internal/repository"
	"humorpedia/internal/utils"
)

type TagService struct {
	repo        *repository.TagRepository
	contentRepo *repository.ContentRepository
	log         *logger.Logger
}

func NewTagService(repo *repository.TagRepository, contentRepo *repository.ContentRepository, log *logger.Logger) *TagService {
	return &TagService{repo: repo, contentRepo: contentRepo, log: log}
}

// findExisting resolves a tag name case-insensitively. Names fold to the
// same slug regardless of casing, including Cyrillic, which SQLite's
// ASCII-only lower() cannot do.
func (s *TagService) findExisting(name string) (*models.Tag, error) {
	return s.repo.FindBySlug(slug.Make(name))
}

func (s *TagService) Create(name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.BadRequest("имя тега обязательно")
	}
	if existing, err := s.findExisting(name); err == nil {
		return nil, apperr.Conflict("тег «" + existing.Name + "» уже существует")
	}
	tag := &models.Tag{
		ID:   uuid.NewString(),
		Name: name,
		Slug: slug.Make(name),
	}
	if err := s.repo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Rename changes the tag name without touching documents: they reference
// tags by name, so pages keep the old string until re-saved.
func (s *TagService) Rename(id, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.BadRequest("имя тега обязательно")
	}
	tag, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if other, err := s.findExisting(name); err == nil && other.ID != tag.ID {
		return nil, apperr.Conflict("тег «" + other.Name + "» уже существует")
	}
	tag.Name = name
	tag.Slug = slug.Make(name)
	if err := s.repo.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Get(id string) (*models.Tag, error) {
	tag, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("тег")
	}
	return tag, err
}

func (s *TagService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *TagService) List(search string, skip, limit int) (utils.ListResult, error) {
	skip, limit = utils.ClampPage(skip, limit)
	tags, err := s.repo.FindAll(search, skip, limit)
	if err != nil {
		return utils.ListResult{}, err
	}
	total, err := s.repo.Count(search)
	if err != nil {
		return utils.ListResult{}, err
	}
	return utils.NewListResult(tags, total, skip, limit), nil
}

// Canonicalize resolves a document's tag list to canonical tag names:
// missing tags get records created, existing tags contribute their stored
// casing, duplicates collapse. Call before persisting the document.
func (s *TagService) Canonicalize(names []string) ([]string, error) {
	canonical := make([]string, 0, len(names))
	seen := make(map[string]bool)

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag, err := s.findExisting(name)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = &models.Tag{
				ID:   uuid.NewString(),
				Name: name,
				Slug: slug.Make(name),
			}
			if err := s.repo.Create(tag); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		key := strings.ToLower(tag.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		canonical = append(canonical, tag.Name)
	}
	return canonical, nil
}

// ReconcileUsage recounts usage for every tag that entered or left a
// document's tag list. Call after the document row is persisted (or
// deleted), so the counts see the new state.
func (s *TagService) ReconcileUsage(oldTags, newTags []string) {
	isNew := make(map[string]bool, len(newTags))
	for _, name := range newTags {
		isNew[strings.ToLower(name)] = true
	}
	wasOld := make(map[string]bool, len(oldTags))
	for _, name := range oldTags {
		wasOld[strings.ToLower(name)] = true
	}

	for _, name := range newTags {
		if !wasOld[strings.ToLower(name)] {
			s.recount(name)
		}
	}
	for _, name := range oldTags {
		if !isNew[strings.ToLower(name)] {
			s.recount(name)
		}
	}
}

// recount recomputes one tag's usage count from documents. Counting is
// best effort: a failed recount logs and moves on, the nightly job fixes
// drift.
func (s *TagService) recount(name string) {
	tag, err := s.findExisting(name)
	if err != nil {
		return
	}
	count, err := s.contentRepo.CountTagUsage(tag.Name)
	if err != nil {
		s.log.Warn("не удалось пересчитать использование тега", "tag", tag.Name, "error", err)
		return
	}
	if err := s.repo.SetUsageCount(tag.ID, count); err != nil {
		s.log.Warn("не удалось обновить счётчик тега", "tag", tag.Name, "error", err)
	}
}

// RecountAll refreshes usage counts for every tag. Run by the scheduler.
func (s *TagService) RecountAll() error {
	tags, err := s.repo.FindAllForBackup()
	if err != nil {
		return err
	}
	for _, tag := range tags {
		s.recount(tag.Name)
	}
	return nil
}
