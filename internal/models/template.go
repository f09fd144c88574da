package models

import (
	"time"

	"humorpedia/internal/pagemodule"
)

// Template is a reusable, named preset list of modules used as the
// starting point for new documents of one content type. At most one
// template per content type carries IsDefault; that is enforced by the
// set-default operation, not by a column constraint.
type Template struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	Name        string          `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string          `json:"description,omitempty"`
	ContentType string          `gorm:"size:32;not null;index" json:"content_type"`
	Modules     pagemodule.List `gorm:"serializer:json" json:"modules"`
	IsDefault   bool            `gorm:"default:false" json:"is_default"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	CreatedBy   string          `gorm:"size:36" json:"created_by,omitempty"`
	UpdatedBy   string          `gorm:"size:36" json:"updated_by,omitempty"`
}
