package repository

import (
	"humorpedia/internal/models"

	"gorm.io/gorm"
)

type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) Create(file *models.MediaFile) error {
	return r.db.Create(file).Error
}

func (r *MediaRepository) Update(file *models.MediaFile) error {
	return r.db.Save(file).Error
}

func (r *MediaRepository) FindByID(id string) (*models.MediaFile, error) {
	var file models.MediaFile
	err := r.db.First(&file, "id = ?", id).Error
	return &file, err
}

// FindAll lists active media, newest uploads first.
func (r *MediaRepository) FindAll(search string, skip, limit int) ([]models.MediaFile, error) {
	var files []models.MediaFile
	query := r.db.Where("status = ?", models.MediaActive).Order("uploaded_at desc")
	if search != "" {
		query = query.Where("original_name LIKE ? OR alt LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	err := query.Offset(skip).Limit(limit).Find(&files).Error
	return files, err
}

func (r *MediaRepository) Count(search string) (int64, error) {
	var count int64
	query := r.db.Model(&models.MediaFile{}).Where("status = ?", models.MediaActive)
	if search != "" {
		query = query.Where("original_name LIKE ? OR alt LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	err := query.Count(&count).Error
	return count, err
}

// MarkDeleted soft-deletes the record; the file stays on disk.
func (r *MediaRepository) MarkDeleted(id string) error {
	return r.db.Model(&models.MediaFile{}).Where("id = ?", id).
		Update("status", models.MediaDeleted).Error
}
