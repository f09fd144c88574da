package repository

import (
	"humorpedia/internal/models"

	"gorm.io/gorm"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Create(tpl *models.Template) error {
	return r.db.Create(tpl).Error
}

func (r *TemplateRepository) Update(tpl *models.Template) error {
	return r.db.Save(tpl).Error
}

func (r *TemplateRepository) Delete(id string) error {
	return r.db.Delete(&models.Template{}, "id = ?", id).Error
}

func (r *TemplateRepository) FindByID(id string) (*models.Template, error) {
	var tpl models.Template
	err := r.db.First(&tpl, "id = ?", id).Error
	return &tpl, err
}

func (r *TemplateRepository) FindByName(name string) (*models.Template, error) {
	var tpl models.Template
	err := r.db.Where("name = ?", name).First(&tpl).Error
	return &tpl, err
}

func (r *TemplateRepository) FindAll(contentType string) ([]models.Template, error) {
	var tpls []models.Template
	query := r.db.Order("content_type asc, name asc")
	if contentType != "" {
		query = query.Where("content_type = ?", contentType)
	}
	err := query.Find(&tpls).Error
	return tpls, err
}

func (r *TemplateRepository) FindDefault(contentType string) (*models.Template, error) {
	var tpl models.Template
	err := r.db.Where("content_type = ? AND is_default = ?", contentType, true).First(&tpl).Error
	return &tpl, err
}

// SetDefault makes id the only default template for its content type, in
// one transaction.
func (r *TemplateRepository) SetDefault(id, contentType string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Template{}).
			Where("content_type = ? AND id != ?", contentType, id).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Template{}).
			Where("id = ?", id).
			Update("is_default", true).Error
	})
}

func (r *TemplateRepository) FindAllForBackup() ([]models.Template, error) {
	var tpls []models.Template
	err := r.db.Order("name asc").Find(&tpls).Error
	return tpls, err
}

func (r *TemplateRepository) CreateBatch(tpls []models.Template) error {
	if len(tpls) == 0 {
		return nil
	}
	return r.db.CreateInBatches(&tpls, 100).Error
}

func (r *TemplateRepository) DeleteAll() error {
	return r.db.Exec(`DELETE FROM templates`).Error
}
