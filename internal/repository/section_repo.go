package repository

import (
	"humorpedia/internal/models"

	"gorm.io/gorm"
)

type SectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

func (r *SectionRepository) Create(section *models.Section) error {
	return r.db.Create(section).Error
}

func (r *SectionRepository) Update(section *models.Section) error {
	return r.db.Save(section).Error
}

func (r *SectionRepository) Delete(id string) error {
	return r.db.Delete(&models.Section{}, "id = ?", id).Error
}

func (r *SectionRepository) FindByID(id string) (*models.Section, error) {
	var section models.Section
	err := r.db.First(&section, "id = ?", id).Error
	return &section, err
}

func (r *SectionRepository) FindByFullPath(fullPath string) (*models.Section, error) {
	var section models.Section
	err := r.db.Where("full_path = ?", fullPath).First(&section).Error
	return &section, err
}

func (r *SectionRepository) FindChildren(parentID string) ([]models.Section, error) {
	var sections []models.Section
	err := r.db.Where("parent_id = ?", parentID).
		Order("sort_order asc, title asc").Find(&sections).Error
	return sections, err
}

func (r *SectionRepository) CountChildren(parentID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Section{}).Where("parent_id = ?", parentID).Count(&count).Error
	return count, err
}

// FindAll returns every section ordered for tree assembly: parents before
// children, siblings by sort order.
func (r *SectionRepository) FindAll() ([]models.Section, error) {
	var sections []models.Section
	err := r.db.Order("level asc, sort_order asc, title asc").Find(&sections).Error
	return sections, err
}

func (r *SectionRepository) CheckFullPathExists(fullPath, excludeID string) (bool, error) {
	var count int64
	query := r.db.Model(&models.Section{}).Where("full_path = ?", fullPath)
	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *SectionRepository) FindAllForBackup() ([]models.Section, error) {
	var sections []models.Section
	err := r.db.Order("full_path asc").Find(&sections).Error
	return sections, err
}

func (r *SectionRepository) CreateBatch(sections []models.Section) error {
	if len(sections) == 0 {
		return nil
	}
	return r.db.CreateInBatches(&sections, 100).Error
}

func (r *SectionRepository) DeleteAll() error {
	return r.db.Exec(`DELETE FROM sections`).Error
}
