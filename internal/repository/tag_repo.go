package repository

import (
	"humorpedia/internal/models"

	"gorm.io/gorm"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

func (r *TagRepository) Update(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

func (r *TagRepository) Delete(id string) error {
	return r.db.Delete(&models.Tag{}, "id = ?", id).Error
}

func (r *TagRepository) FindByID(id string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, "id = ?", id).Error
	return &tag, err
}

// FindByName matches the stored name exactly. Case-insensitive resolution
// goes through FindBySlug: SQLite's lower() folds ASCII only, so it cannot
// be trusted with Cyrillic names.
func (r *TagRepository) FindByName(name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	return &tag, err
}

func (r *TagRepository) FindBySlug(slug string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("slug = ?", slug).First(&tag).Error
	return &tag, err
}

func (r *TagRepository) FindAll(search string, skip, limit int) ([]models.Tag, error) {
	var tags []models.Tag
	query := r.db.Order("usage_count desc, name asc")
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	err := query.Offset(skip).Limit(limit).Find(&tags).Error
	return tags, err
}

func (r *TagRepository) Count(search string) (int64, error) {
	var count int64
	query := r.db.Model(&models.Tag{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *TagRepository) FindAllForBackup() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Order("name asc").Find(&tags).Error
	return tags, err
}

func (r *TagRepository) CreateBatch(tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	return r.db.CreateInBatches(&tags, 100).Error
}

func (r *TagRepository) DeleteAll() error {
	return r.db.Exec(`DELETE FROM tags`).Error
}

func (r *TagRepository) SetUsageCount(id string, count int64) error {
	return r.db.Model(&models.Tag{}).Where("id = ?", id).
		UpdateColumn("usage_count", count).Error
}
