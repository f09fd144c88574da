package repository

import (
	"humorpedia/internal/models"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *CommentRepository) Delete(id string) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}

func (r *CommentRepository) FindByID(id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.First(&comment, "id = ?", id).Error
	return &comment, err
}

func (r *CommentRepository) FindByDocument(documentID, status string) ([]models.Comment, error) {
	var comments []models.Comment
	query := r.db.Where("document_id = ?", documentID).Order("created_at asc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&comments).Error
	return comments, err
}

// FindByStatus lists comments across documents for the moderation queue,
// oldest first.
func (r *CommentRepository) FindByStatus(status string, skip, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	query := r.db.Order("created_at asc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Offset(skip).Limit(limit).Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) CountByStatus(status string) (int64, error) {
	var count int64
	query := r.db.Model(&models.Comment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *CommentRepository) SetStatus(id, status string) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", id).
		Update("status", status).Error
}
