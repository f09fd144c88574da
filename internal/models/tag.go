package models

import "time"

// Tag is referenced from documents by name, not id, so renames do not
// cascade into content.
type Tag struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Slug       string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	UsageCount int       `gorm:"default:0" json:"usage_count"`
	OldID      *int      `json:"old_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
