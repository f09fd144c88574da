package repository

import (
	"strings"

	"humorpedia/internal/models"

	"gorm.io/gorm"
)

// ftsQuery turns free user input into a safe FTS5 MATCH expression: each
// token becomes a quoted prefix term, tokens are ANDed.
func ftsQuery(input string) string {
	fields := strings.Fields(input)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, `"`, `""`)
		terms = append(terms, `"`+f+`"*`)
	}
	return strings.Join(terms, " ")
}

// ContentFilter narrows document listings. Zero values mean "no filter".
type ContentFilter struct {
	Status string
	Tag    string
	Search string
	Letter string
	Skip   int
	Limit  int
}

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) Create(doc *models.ContentDocument) error {
	return r.db.Create(doc).Error
}

func (r *ContentRepository) Update(doc *models.ContentDocument) error {
	return r.db.Save(doc).Error
}

func (r *ContentRepository) Delete(id string) error {
	return r.db.Delete(&models.ContentDocument{}, "id = ?", id).Error
}

func (r *ContentRepository) FindByID(id string) (*models.ContentDocument, error) {
	var doc models.ContentDocument
	err := r.db.First(&doc, "id = ?", id).Error
	return &doc, err
}

// FindByIDOrSlug looks a document up within a content type, by id first and
// slug second, so slugs that happen to look like uuids still resolve.
func (r *ContentRepository) FindByIDOrSlug(contentType, idOrSlug string) (*models.ContentDocument, error) {
	var doc models.ContentDocument
	err := r.db.Where("content_type = ? AND id = ?", contentType, idOrSlug).First(&doc).Error
	if err == gorm.ErrRecordNotFound {
		err = r.db.Where("content_type = ? AND slug = ?", contentType, idOrSlug).First(&doc).Error
	}
	return &doc, err
}

// CheckSlugExists reports whether slug is taken within contentType by a
// document other than excludeID. Pass excludeID "" when creating.
func (r *ContentRepository) CheckSlugExists(contentType, slug, excludeID string) (bool, error) {
	var count int64
	query := r.db.Model(&models.ContentDocument{}).
		Where("content_type = ? AND slug = ?", contentType, slug)
	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *ContentRepository) applyFilter(query *gorm.DB, contentType string, f ContentFilter) *gorm.DB {
	query = query.Where("content_type = ?", contentType)
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Tag != "" {
		// Tags are a JSON array in a text column; matching the quoted
		// element is enough because tag names cannot contain quotes.
		query = query.Where("tags LIKE ?", `%"`+f.Tag+`"%`)
	}
	if f.Letter != "" {
		query = query.Where("title LIKE ?", f.Letter+"%")
	}
	if f.Search != "" {
		subQuery := r.db.Table("documents_fts").Select("doc_id").Where("documents_fts MATCH ?", ftsQuery(f.Search))
		query = query.Where("id IN (?)", subQuery)
	}
	return query
}

// List returns the summary projection for a filtered page of documents,
// newest first. Module payloads are excluded from the select.
func (r *ContentRepository) List(contentType string, f ContentFilter) ([]models.DocumentSummary, error) {
	var items []models.DocumentSummary
	query := r.applyFilter(r.db.Model(&models.ContentDocument{}), contentType, f)
	err := query.Order("created_at desc").
		Offset(f.Skip).Limit(f.Limit).
		Find(&items).Error
	return items, err
}

func (r *ContentRepository) Count(contentType string, f ContentFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.Model(&models.ContentDocument{}), contentType, f).Count(&count).Error
	return count, err
}

func (r *ContentRepository) applySearchAll(types []string, search string) *gorm.DB {
	subQuery := r.db.Table("documents_fts").Select("doc_id").Where("documents_fts MATCH ?", ftsQuery(search))
	query := r.db.Model(&models.ContentDocument{}).Where("id IN (?)", subQuery)
	if len(types) > 0 {
		query = query.Where("content_type IN ?", types)
	}
	return query
}

// SearchAll runs full-text search across content types. An empty types
// slice searches everything.
func (r *ContentRepository) SearchAll(types []string, search string, skip, limit int) ([]models.DocumentSummary, error) {
	var items []models.DocumentSummary
	err := r.applySearchAll(types, search).
		Order("views desc, created_at desc").
		Offset(skip).Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *ContentRepository) CountSearchAll(types []string, search string) (int64, error) {
	var count int64
	err := r.applySearchAll(types, search).Count(&count).Error
	return count, err
}

func (r *ContentRepository) CountByType() (map[string]int64, error) {
	type row struct {
		ContentType string
		N           int64
	}
	var rows []row
	err := r.db.Model(&models.ContentDocument{}).
		Select("content_type, count(*) as n").
		Group("content_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.ContentType] = rw.N
	}
	return counts, nil
}

func (r *ContentRepository) IncrementViews(id string) error {
	return r.db.Model(&models.ContentDocument{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *ContentRepository) CountTagUsage(tagName string) (int64, error) {
	var count int64
	err := r.db.Model(&models.ContentDocument{}).
		Where("tags LIKE ?", `%"`+tagName+`"%`).
		Count(&count).Error
	return count, err
}

func (r *ContentRepository) UpdateFtsIndex(id, title, body string) error {
	if err := r.DeleteFtsIndex(id); err != nil {
		return err
	}
	query := `INSERT INTO documents_fts (doc_id, title, body) VALUES (?, ?, ?)`
	return r.db.Exec(query, id, title, body).Error
}

func (r *ContentRepository) DeleteFtsIndex(id string) error {
	query := `DELETE FROM documents_fts WHERE doc_id = ?`
	return r.db.Exec(query, id).Error
}

func (r *ContentRepository) FindAllByType(contentType string) ([]models.ContentDocument, error) {
	var docs []models.ContentDocument
	err := r.db.Where("content_type = ?", contentType).Order("created_at asc").Find(&docs).Error
	return docs, err
}

func (r *ContentRepository) FindAllForBackup() ([]models.ContentDocument, error) {
	var docs []models.ContentDocument
	err := r.db.Order("content_type asc, slug asc").Find(&docs).Error
	return docs, err
}

func (r *ContentRepository) CreateBatch(docs []models.ContentDocument) error {
	if len(docs) == 0 {
		return nil
	}
	return r.db.CreateInBatches(&docs, 100).Error
}

// DeleteAllByType removes every document of contentType and its FTS rows.
// Used by the database console.
func (r *ContentRepository) DeleteAllByType(contentType string) (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM documents_fts WHERE doc_id IN (SELECT id FROM documents WHERE content_type = ?)`,
			contentType,
		).Error; err != nil {
			return err
		}
		result := tx.Where("content_type = ?", contentType).Delete(&models.ContentDocument{})
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}

// DeleteAll removes every document and the whole FTS index. Used when
// restoring a backup.
func (r *ContentRepository) DeleteAll() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM documents_fts`).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM documents`).Error
	})
}

func (r *ContentRepository) GetDB() *gorm.DB {
	return r.db
}
