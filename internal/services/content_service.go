package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"humorpedia/internal/apperr"
	"humorpedia/internal/logger"
	"humorpedia/internal/models"
	"humorpedia/internal/pagemodule"
	"humorpedia/internal/repository"
	"humorpedia/internal/utils"
)

// pathTypes maps URL path segments to content type keys.
var pathTypes = map[string]string{
	"people":   models.TypePerson,
	"persons":  models.TypePerson,
	"teams":    models.TypeTeam,
	"shows":    models.TypeShow,
	"articles": models.TypeArticle,
	"news":     models.TypeNews,
	"quizzes":  models.TypeQuiz,
	"wiki":     models.TypeWiki,
	"pages":    models.TypePage,
}

// ResolveContentType accepts either a content type key or its URL path
// segment ("people" resolves to "person").
func ResolveContentType(pathType string) (string, bool) {
	if models.KnownContentType(pathType) {
		return pathType, true
	}
	if t, ok := pathTypes[pathType]; ok {
		return t, true
	}
	return "", false
}

type ContentService struct {
	repo       *repository.ContentRepository
	tagService *TagService
	tplService *TemplateService
	log        *logger.Logger
}

func NewContentService(repo *repository.ContentRepository, tagService *TagService, tplService *TemplateService, log *logger.Logger) *ContentService {
	return &ContentService{
		repo:       repo,
		tagService: tagService,
		tplService: tplService,
		log:        log,
	}
}

// Create persists a new document. Empty slugs are generated from the title,
// always unique within the content type. When no modules were supplied the
// default template for the content type seeds them.
func (s *ContentService) Create(doc *models.ContentDocument, userID string) error {
	if !models.KnownContentType(doc.ContentType) {
		return apperr.BadRequest(fmt.Sprintf("неизвестный тип контента: %s", doc.ContentType))
	}
	if strings.TrimSpace(doc.Title) == "" {
		return apperr.BadRequest("заголовок обязателен")
	}

	doc.ID = uuid.NewString()
	doc.CreatedBy = userID
	doc.UpdatedBy = userID

	slugStr, err := s.ensureSlug(doc.ContentType, doc.Slug, doc.Title, "")
	if err != nil {
		return err
	}
	doc.Slug = slugStr

	if doc.Status == "" {
		doc.Status = models.StatusDraft
	}
	if doc.Status == models.StatusPublished && doc.PublishedAt == nil {
		now := time.Now()
		doc.PublishedAt = &now
	}

	if len(doc.Modules) == 0 {
		doc.Modules = s.modulesFromDefaultTemplate(doc.ContentType)
	}
	doc.Modules = pagemodule.NormalizeList(doc.Modules)

	canonical, err := s.tagService.Canonicalize(doc.Tags)
	if err != nil {
		return err
	}
	doc.Tags = canonical

	if err := s.repo.Create(doc); err != nil {
		return err
	}
	s.tagService.ReconcileUsage(nil, doc.Tags)
	s.updateSearchIndex(doc)
	return nil
}

// Update persists changes to an existing document. oldTags are the tags as
// they were before the caller applied the request body, so usage counts can
// be reconciled.
func (s *ContentService) Update(doc *models.ContentDocument, oldTags []string, userID string) error {
	if strings.TrimSpace(doc.Title) == "" {
		return apperr.BadRequest("заголовок обязателен")
	}

	doc.UpdatedBy = userID

	slugStr, err := s.ensureSlug(doc.ContentType, doc.Slug, doc.Title, doc.ID)
	if err != nil {
		return err
	}
	doc.Slug = slugStr

	// PublishedAt is set once, on the first transition to published.
	if doc.Status == models.StatusPublished && doc.PublishedAt == nil {
		now := time.Now()
		doc.PublishedAt = &now
	}

	doc.Modules = pagemodule.NormalizeList(doc.Modules)

	canonical, err := s.tagService.Canonicalize(doc.Tags)
	if err != nil {
		return err
	}
	doc.Tags = canonical

	if err := s.repo.Update(doc); err != nil {
		return err
	}
	s.tagService.ReconcileUsage(oldTags, doc.Tags)
	s.updateSearchIndex(doc)
	return nil
}

func (s *ContentService) Delete(contentType, idOrSlug string) error {
	doc, err := s.GetByIDOrSlug(contentType, idOrSlug, false)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(doc.ID); err != nil {
		return err
	}
	s.tagService.ReconcileUsage(doc.Tags, nil)
	if err := s.repo.DeleteFtsIndex(doc.ID); err != nil {
		s.log.Warn("не удалось удалить документ из поискового индекса", "id", doc.ID, "error", err)
	}
	return nil
}

func (s *ContentService) GetByIDOrSlug(contentType, idOrSlug string, countView bool) (*models.ContentDocument, error) {
	doc, err := s.repo.FindByIDOrSlug(contentType, idOrSlug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("документ")
	}
	if err != nil {
		return nil, err
	}
	if countView {
		if err := s.repo.IncrementViews(doc.ID); err != nil {
			s.log.Warn("не удалось увеличить счётчик просмотров", "id", doc.ID, "error", err)
		} else {
			doc.Views++
		}
	}
	return doc, nil
}

func (s *ContentService) List(contentType string, f repository.ContentFilter) (utils.ListResult, error) {
	f.Skip, f.Limit = utils.ClampPage(f.Skip, f.Limit)
	items, err := s.repo.List(contentType, f)
	if err != nil {
		return utils.ListResult{}, err
	}
	total, err := s.repo.Count(contentType, f)
	if err != nil {
		return utils.ListResult{}, err
	}
	return utils.NewListResult(items, total, f.Skip, f.Limit), nil
}

// Search runs full-text search across content types. typeFilters accepts
// either content type keys or their URL path segments.
func (s *ContentService) Search(query string, typeFilters []string, skip, limit int) (utils.ListResult, error) {
	if strings.TrimSpace(query) == "" {
		return utils.ListResult{}, apperr.BadRequest("поисковый запрос обязателен")
	}
	types := make([]string, 0, len(typeFilters))
	for _, t := range typeFilters {
		resolved, ok := ResolveContentType(t)
		if !ok {
			return utils.ListResult{}, apperr.BadRequest("неизвестный тип контента: " + t)
		}
		types = append(types, resolved)
	}

	skip, limit = utils.ClampPage(skip, limit)
	items, err := s.repo.SearchAll(types, query, skip, limit)
	if err != nil {
		return utils.ListResult{}, err
	}
	total, err := s.repo.CountSearchAll(types, query)
	if err != nil {
		return utils.ListResult{}, err
	}
	return utils.NewListResult(items, total, skip, limit), nil
}

// ensureSlug returns requested if it is free, otherwise a slug derived from
// title with a numeric suffix until unique within the content type.
func (s *ContentService) ensureSlug(contentType, requested, title, excludeID string) (string, error) {
	baseSlug := requested
	if baseSlug == "" {
		baseSlug = slug.Make(title)
	} else {
		baseSlug = slug.Make(baseSlug)
	}
	if baseSlug == "" {
		baseSlug = "untitled"
	}
	finalSlug := baseSlug
	counter := 1
	for {
		exists, err := s.repo.CheckSlugExists(contentType, finalSlug, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
		finalSlug = fmt.Sprintf("%s-%d", baseSlug, counter)
		counter++
	}
	return finalSlug, nil
}

// modulesFromDefaultTemplate copies the default template's modules with
// fresh ids, so edits to the document never touch the template.
func (s *ContentService) modulesFromDefaultTemplate(contentType string) pagemodule.List {
	tpl, err := s.tplService.GetDefault(contentType)
	if err != nil || tpl == nil {
		return pagemodule.List{}
	}
	modules := make(pagemodule.List, len(tpl.Modules))
	copy(modules, tpl.Modules)
	for i := range modules {
		modules[i].ID = uuid.NewString()
	}
	return modules
}

func (s *ContentService) updateSearchIndex(doc *models.ContentDocument) {
	if err := s.repo.UpdateFtsIndex(doc.ID, doc.Title, searchBody(doc)); err != nil {
		s.log.Warn("не удалось обновить поисковый индекс", "id", doc.ID, "error", err)
	}
}

// searchBody gathers the searchable plain text of a document: its prose
// fields plus the textual module payloads.
func searchBody(doc *models.ContentDocument) string {
	var parts []string
	for _, p := range []string{doc.FullName, doc.Name, doc.Excerpt, doc.Content, doc.Description} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, doc.Tags...)
	for _, m := range doc.Modules {
		data, err := pagemodule.Decode(m)
		if err != nil {
			continue
		}
		switch d := data.(type) {
		case pagemodule.TextBlockData:
			if d.Title != "" {
				parts = append(parts, d.Title)
			}
			if d.Content != "" {
				parts = append(parts, d.Content)
			}
		case pagemodule.QuoteData:
			if d.Text != "" {
				parts = append(parts, d.Text)
			}
		}
	}
	return strings.Join(parts, "\n")
}
