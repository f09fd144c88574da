package models

import "time"

const (
	CommentPending  = "pending"
	CommentApproved = "approved"
	CommentRejected = "rejected"
)

type Comment struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	DocumentID string  `gorm:"size:36;index;not null" json:"document_id"`
	ParentID   *string `gorm:"size:36;index" json:"parent_id,omitempty"`

	AuthorID    *string `gorm:"size:36" json:"author_id,omitempty"`
	AuthorName  string  `gorm:"size:128" json:"author_name"`
	AuthorEmail string  `gorm:"size:255" json:"-"`

	Content string `gorm:"not null" json:"content"`
	Status  string `gorm:"size:16;default:pending;index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
