package models

import (
	"time"

	"humorpedia/internal/pagemodule"
)

// Section is a hierarchical site page: /kvn, /kvn/vysshaya-liga, ...
// FullPath is derived from the parent chain and rebuilt recursively when a
// section moves or its slug changes.
type Section struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Slug        string `gorm:"size:255;not null" json:"slug"`
	FullPath    string `gorm:"size:512;not null;uniqueIndex" json:"full_path"`
	Description string `json:"description,omitempty"`
	CoverImage  *Media `gorm:"serializer:json" json:"cover_image,omitempty"`

	ParentID   *string `gorm:"size:36;index" json:"parent_id,omitempty"`
	ParentPath string  `gorm:"size:512" json:"parent_path,omitempty"`
	Level      int     `json:"level"`
	Order      int     `gorm:"column:sort_order" json:"order"`

	InMainMenu bool   `json:"in_main_menu"`
	MenuTitle  string `json:"menu_title,omitempty"`

	Modules          pagemodule.List `gorm:"serializer:json" json:"modules"`
	ChildTypes       StringList      `gorm:"serializer:json" json:"child_types,omitempty"`
	ShowChildrenList bool            `gorm:"default:true" json:"show_children_list"`

	SEO    SEOData    `gorm:"serializer:json" json:"seo"`
	Tags   StringList `gorm:"serializer:json" json:"tags"`
	Status string     `gorm:"size:16;default:draft" json:"status"`

	Views int `json:"views"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SectionNode is a section with its children, for the tree view.
type SectionNode struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Slug       string         `json:"slug"`
	FullPath   string         `json:"full_path"`
	Level      int            `json:"level"`
	Order      int            `json:"order"`
	Status     string         `json:"status"`
	InMainMenu bool           `json:"in_main_menu"`
	Children   []*SectionNode `json:"children"`
}
