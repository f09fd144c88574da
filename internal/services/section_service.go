package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"humorpedia/internal/apperr"
	"humorpedia/internal/models"
	"humorpedia/internal/pagemodule"
	"humorpedia/internal/repository"
)

type SectionService struct {
	repo *repository.SectionRepository
}

func NewSectionService(repo *repository.SectionRepository) *SectionService {
	return &SectionService{repo: repo}
}

func (s *SectionService) Create(section *models.Section) error {
	if strings.TrimSpace(section.Title) == "" {
		return apperr.BadRequest("заголовок раздела обязателен")
	}
	if section.Slug == "" {
		section.Slug = slug.Make(section.Title)
	} else {
		section.Slug = slug.Make(section.Slug)
	}

	section.ID = uuid.NewString()
	if err := s.placeUnderParent(section); err != nil {
		return err
	}

	exists, err := s.repo.CheckFullPathExists(section.FullPath, "")
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("раздел с путём " + section.FullPath + " уже существует")
	}

	if section.Status == "" {
		section.Status = models.StatusDraft
	}
	section.Modules = pagemodule.NormalizeList(section.Modules)
	return s.repo.Create(section)
}

// Update moves the section if its parent or slug changed and rebuilds the
// full paths of the whole subtree.
func (s *SectionService) Update(section *models.Section) error {
	if strings.TrimSpace(section.Title) == "" {
		return apperr.BadRequest("заголовок раздела обязателен")
	}
	section.Slug = slug.Make(section.Slug)
	if section.Slug == "" {
		section.Slug = slug.Make(section.Title)
	}

	if err := s.checkNotCircular(section); err != nil {
		return err
	}
	if err := s.placeUnderParent(section); err != nil {
		return err
	}

	exists, err := s.repo.CheckFullPathExists(section.FullPath, section.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("раздел с путём " + section.FullPath + " уже существует")
	}

	section.Modules = pagemodule.NormalizeList(section.Modules)
	if err := s.repo.Update(section); err != nil {
		return err
	}
	return s.rebuildChildPaths(section)
}

// placeUnderParent derives ParentPath, Level and FullPath from the parent
// chain.
func (s *SectionService) placeUnderParent(section *models.Section) error {
	if section.ParentID == nil || *section.ParentID == "" {
		section.ParentID = nil
		section.ParentPath = ""
		section.Level = 0
		section.FullPath = "/" + section.Slug
		return nil
	}
	parent, err := s.repo.FindByID(*section.ParentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.BadRequest("родительский раздел не найден")
	}
	if err != nil {
		return err
	}
	section.ParentPath = parent.FullPath
	section.Level = parent.Level + 1
	section.FullPath = parent.FullPath + "/" + section.Slug
	return nil
}

// checkNotCircular rejects moves that would put a section under itself or
// one of its descendants.
func (s *SectionService) checkNotCircular(section *models.Section) error {
	if section.ParentID == nil || *section.ParentID == "" {
		return nil
	}
	currentID := *section.ParentID
	for currentID != "" {
		if currentID == section.ID {
			return apperr.BadRequest("раздел не может быть вложен сам в себя")
		}
		parent, err := s.repo.FindByID(currentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.BadRequest("родительский раздел не найден")
		}
		if err != nil {
			return err
		}
		if parent.ParentID == nil {
			break
		}
		currentID = *parent.ParentID
	}
	return nil
}

// rebuildChildPaths walks the subtree depth-first and recomputes each
// descendant's derived path fields.
func (s *SectionService) rebuildChildPaths(parent *models.Section) error {
	children, err := s.repo.FindChildren(parent.ID)
	if err != nil {
		return err
	}
	for i := range children {
		child := &children[i]
		child.ParentPath = parent.FullPath
		child.Level = parent.Level + 1
		child.FullPath = parent.FullPath + "/" + child.Slug
		if err := s.repo.Update(child); err != nil {
			return err
		}
		if err := s.rebuildChildPaths(child); err != nil {
			return err
		}
	}
	return nil
}

func (s *SectionService) Get(id string) (*models.Section, error) {
	section, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("раздел")
	}
	return section, err
}

func (s *SectionService) GetByPath(fullPath string) (*models.Section, error) {
	if !strings.HasPrefix(fullPath, "/") {
		fullPath = "/" + fullPath
	}
	section, err := s.repo.FindByFullPath(fullPath)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("раздел")
	}
	return section, err
}

// Delete refuses to remove a section that still has children.
func (s *SectionService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	count, err := s.repo.CountChildren(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("сначала удалите или переместите вложенные разделы")
	}
	return s.repo.Delete(id)
}

func (s *SectionService) List() ([]models.Section, error) {
	return s.repo.FindAll()
}

// Tree assembles the section hierarchy. Orphans whose parent is missing
// surface as roots rather than disappearing.
func (s *SectionService) Tree() ([]*models.SectionNode, error) {
	sections, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*models.SectionNode, len(sections))
	for i := range sections {
		sec := &sections[i]
		nodes[sec.ID] = &models.SectionNode{
			ID:         sec.ID,
			Title:      sec.Title,
			Slug:       sec.Slug,
			FullPath:   sec.FullPath,
			Level:      sec.Level,
			Order:      sec.Order,
			Status:     sec.Status,
			InMainMenu: sec.InMainMenu,
			Children:   []*models.SectionNode{},
		}
	}

	var roots []*models.SectionNode
	for i := range sections {
		sec := &sections[i]
		node := nodes[sec.ID]
		if sec.ParentID != nil {
			if parent, ok := nodes[*sec.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots, nil
}
