package services

import (
	"encoding/json"

	"humorpedia/internal/apperr"
	"humorpedia/internal/models"
	"humorpedia/internal/repository"
)

// Collection names of the database console. Content types are exposed as
// separate collections; the rest are the auxiliary tables.
const (
	collectionTags      = "tags"
	collectionTemplates = "templates"
	collectionSections  = "sections"
)

// CollectionInfo is one row of the console's collection listing.
type CollectionInfo struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DBConsoleService backs the admin database console: per-collection
// export, import and wipe.
type DBConsoleService struct {
	contentRepo  *repository.ContentRepository
	tagRepo      *repository.TagRepository
	templateRepo *repository.TemplateRepository
	sectionRepo  *repository.SectionRepository
}

func NewDBConsoleService(
	contentRepo *repository.ContentRepository,
	tagRepo *repository.TagRepository,
	templateRepo *repository.TemplateRepository,
	sectionRepo *repository.SectionRepository,
) *DBConsoleService {
	return &DBConsoleService{
		contentRepo:  contentRepo,
		tagRepo:      tagRepo,
		templateRepo: templateRepo,
		sectionRepo:  sectionRepo,
	}
}

func (s *DBConsoleService) Collections() ([]CollectionInfo, error) {
	byType, err := s.contentRepo.CountByType()
	if err != nil {
		return nil, err
	}

	var infos []CollectionInfo
	for _, t := range []string{
		models.TypePerson, models.TypeTeam, models.TypeShow, models.TypeArticle,
		models.TypeNews, models.TypeQuiz, models.TypeWiki, models.TypeWikiHeader, models.TypePage,
	} {
		infos = append(infos, CollectionInfo{Name: t, Count: byType[t]})
	}

	tagCount, err := s.tagRepo.Count("")
	if err != nil {
		return nil, err
	}
	infos = append(infos, CollectionInfo{Name: collectionTags, Count: tagCount})

	templates, err := s.templateRepo.FindAll("")
	if err != nil {
		return nil, err
	}
	infos = append(infos, CollectionInfo{Name: collectionTemplates, Count: int64(len(templates))})

	sections, err := s.sectionRepo.FindAll()
	if err != nil {
		return nil, err
	}
	infos = append(infos, CollectionInfo{Name: collectionSections, Count: int64(len(sections))})

	return infos, nil
}

// Export returns every record of one collection as a JSON-encodable value.
func (s *DBConsoleService) Export(collection string) (interface{}, error) {
	switch collection {
	case collectionTags:
		return s.tagRepo.FindAllForBackup()
	case collectionTemplates:
		return s.templateRepo.FindAllForBackup()
	case collectionSections:
		return s.sectionRepo.FindAllForBackup()
	default:
		if !models.KnownContentType(collection) {
			return nil, apperr.BadRequest("неизвестная коллекция: " + collection)
		}
		return s.contentRepo.FindAllByType(collection)
	}
}

// Import inserts records from a raw JSON array into a collection. Existing
// records are kept; id collisions fail the batch.
func (s *DBConsoleService) Import(collection string, raw json.RawMessage) (int, error) {
	switch collection {
	case collectionTags:
		var tags []models.Tag
		if err := json.Unmarshal(raw, &tags); err != nil {
			return 0, apperr.BadRequest("неверный формат данных: " + err.Error())
		}
		return len(tags), s.tagRepo.CreateBatch(tags)
	case collectionTemplates:
		var tpls []models.Template
		if err := json.Unmarshal(raw, &tpls); err != nil {
			return 0, apperr.BadRequest("неверный формат данных: " + err.Error())
		}
		return len(tpls), s.templateRepo.CreateBatch(tpls)
	case collectionSections:
		var sections []models.Section
		if err := json.Unmarshal(raw, &sections); err != nil {
			return 0, apperr.BadRequest("неверный формат данных: " + err.Error())
		}
		return len(sections), s.sectionRepo.CreateBatch(sections)
	default:
		if !models.KnownContentType(collection) {
			return 0, apperr.BadRequest("неизвестная коллекция: " + collection)
		}
		var docs []models.ContentDocument
		if err := json.Unmarshal(raw, &docs); err != nil {
			return 0, apperr.BadRequest("неверный формат данных: " + err.Error())
		}
		for i := range docs {
			docs[i].ContentType = collection
		}
		return len(docs), s.contentRepo.CreateBatch(docs)
	}
}

// Wipe deletes every record of one content type collection. The auxiliary
// collections cannot be wiped from the console.
func (s *DBConsoleService) Wipe(collection string) (int64, error) {
	if !models.KnownContentType(collection) {
		return 0, apperr.BadRequest("очищать можно только коллекции контента")
	}
	return s.contentRepo.DeleteAllByType(collection)
}
