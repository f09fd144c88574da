package models

import (
	"time"

	"gorm.io/datatypes"

	"humorpedia/internal/pagemodule"
)

// Content types. wiki_header is a wiki page with a hero header; page is
// the generic fallback used by the module picker.
const (
	TypePerson     = "person"
	TypeTeam       = "team"
	TypeShow       = "show"
	TypeArticle    = "article"
	TypeNews       = "news"
	TypeQuiz       = "quiz"
	TypeWiki       = "wiki"
	TypeWikiHeader = "wiki_header"
	TypePage       = "page"
)

// Publication status values.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// KnownContentType reports whether t is one of the managed content types.
func KnownContentType(t string) bool {
	switch t {
	case TypePerson, TypeTeam, TypeShow, TypeArticle, TypeNews, TypeQuiz, TypeWiki, TypeWikiHeader, TypePage:
		return true
	}
	return false
}

// SEOData is per-page SEO metadata.
type SEOData struct {
	MetaTitle       string   `json:"meta_title,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	OGImage         string   `json:"og_image,omitempty"`
}

// Media is an embedded media file reference (not the library record).
type Media struct {
	URL       string `json:"url"`
	Alt       string `json:"alt,omitempty"`
	Caption   string `json:"caption,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// PersonBio is the biographical block on a person page.
type PersonBio struct {
	BirthDate    string   `json:"birth_date,omitempty"`
	DeathDate    string   `json:"death_date,omitempty"`
	BirthPlace   string   `json:"birth_place,omitempty"`
	CurrentCity  string   `json:"current_city,omitempty"`
	Occupation   []string `json:"occupation,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// ContentDocument is the generic envelope for every content page type. A
// single table holds all types; type-specific fields are nullable JSON
// columns unused by the other types. Slug is unique per content type.
type ContentDocument struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	ContentType string `gorm:"size:32;not null;uniqueIndex:idx_documents_type_slug,priority:1;index" json:"content_type"`
	Slug        string `gorm:"size:255;not null;uniqueIndex:idx_documents_type_slug,priority:2" json:"slug"`
	Title       string `gorm:"not null" json:"title"`
	Status      string `gorm:"size:16;not null;default:draft" json:"status"`

	Tags    StringList      `gorm:"serializer:json" json:"tags"`
	SEO     SEOData         `gorm:"serializer:json" json:"seo"`
	Modules pagemodule.List `gorm:"serializer:json" json:"modules"`

	// Person / team / show
	FullName    string                `gorm:"size:255" json:"full_name,omitempty"`
	Name        string                `gorm:"size:255" json:"name,omitempty"`
	TeamType    string                `gorm:"size:32" json:"team_type,omitempty"`
	Poster      *Media                `gorm:"serializer:json" json:"poster,omitempty"`
	Bio         *PersonBio            `gorm:"serializer:json" json:"bio,omitempty"`
	Facts       []pagemodule.FactItem `gorm:"serializer:json" json:"facts,omitempty"`
	SocialLinks datatypes.JSONMap     `json:"social_links,omitempty"`

	// Article / news / wiki
	Excerpt     string `json:"excerpt,omitempty"`
	Content     string `gorm:"type:text" json:"content,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	CoverImage  *Media `gorm:"serializer:json" json:"cover_image,omitempty"`
	AuthorID    string `gorm:"size:36" json:"author_id,omitempty"`
	AuthorName  string `gorm:"size:255" json:"author_name,omitempty"`
	Important   bool   `json:"important"`
	Featured    bool   `json:"featured"`

	// Hierarchy and relations (ids into this same table)
	ParentID   *string    `gorm:"size:36;index" json:"parent_id,omitempty"`
	RelatedIDs StringList `gorm:"serializer:json" json:"related_ids,omitempty"`

	// Statistics
	Views      int      `json:"views"`
	Rating     *float64 `json:"rating,omitempty"`
	VotesCount int      `json:"votes_count"`

	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CreatedBy   string     `gorm:"size:36" json:"created_by,omitempty"`
	UpdatedBy   string     `gorm:"size:36" json:"updated_by,omitempty"`

	// Legacy MODX id kept for migrated pages.
	OldID *int `json:"old_id,omitempty"`
}

func (ContentDocument) TableName() string { return "documents" }

// DocumentSummary is the listing projection: everything except the module
// payloads, which can dominate row size.
type DocumentSummary struct {
	ID          string     `json:"id"`
	ContentType string     `json:"content_type"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	Tags        StringList `gorm:"serializer:json" json:"tags"`
	FullName    string     `json:"full_name,omitempty"`
	Name        string     `json:"name,omitempty"`
	TeamType    string     `json:"team_type,omitempty"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Important   bool       `json:"important"`
	Featured    bool       `json:"featured"`
	Views       int        `json:"views"`
	Rating      *float64   `json:"rating,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RenderContext builds the renderer's view of this document.
func (d *ContentDocument) RenderContext() pagemodule.DocumentContext {
	ctx := pagemodule.DocumentContext{
		Title:       d.Title,
		ContentType: d.ContentType,
		Facts:       d.Facts,
		Rating:      d.Rating,
		VotesCount:  d.VotesCount,
		Tags:        d.Tags,
		SocialLinks: map[string]string{},
	}
	if d.Poster != nil {
		ctx.PosterURL = d.Poster.URL
		ctx.PosterAlt = d.Poster.Alt
	} else if d.CoverImage != nil {
		ctx.PosterURL = d.CoverImage.URL
		ctx.PosterAlt = d.CoverImage.Alt
	}
	for k, v := range d.SocialLinks {
		if s, ok := v.(string); ok && s != "" {
			ctx.SocialLinks[k] = s
		}
	}
	return ctx
}

// StringList is a JSON-serialized list of strings.
type StringList []string
