package models

import "time"

// Media library record statuses.
const (
	MediaActive  = "active"
	MediaDeleted = "deleted"
)

// MediaFile is one uploaded file in the media library. Deletion is soft:
// the record flips to deleted, the file stays on disk.
type MediaFile struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Filename     string `gorm:"size:255;not null" json:"filename"`
	OriginalName string `gorm:"size:255" json:"original_name"`
	Path         string `gorm:"size:512" json:"path"`
	URL          string `gorm:"size:512" json:"url"`
	MimeType     string `gorm:"size:128" json:"mime_type"`
	FileSize     int64  `json:"file_size"`
	Width        *int   `json:"width,omitempty"`
	Height       *int   `json:"height,omitempty"`
	Alt          string `json:"alt,omitempty"`
	Caption      string `json:"caption,omitempty"`
	Status       string `gorm:"size:16;default:active" json:"status"`
	UploadedBy   string `gorm:"size:36" json:"uploaded_by,omitempty"`

	UploadedAt time.Time `json:"uploaded_at"`
}

func (MediaFile) TableName() string { return "media" }
