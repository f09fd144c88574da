package models

import "time"

// User roles, least to most privileged.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleEditor    = "editor"
	RoleAdmin     = "admin"
)

// UserProfile is the editable profile block.
type UserProfile struct {
	FullName  string `json:"full_name,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Bio       string `json:"bio,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	Location  string `json:"location,omitempty"`
}

type User struct {
	ID           string       `gorm:"primaryKey;size:36" json:"id"`
	Username     string       `gorm:"size:64;not null;uniqueIndex" json:"username"`
	Email        string       `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	PasswordHash string       `gorm:"size:255" json:"-"`
	Role         string       `gorm:"size:16;not null;default:user" json:"role"`
	Profile      *UserProfile `gorm:"serializer:json" json:"profile,omitempty"`

	Active   bool `gorm:"default:true" json:"active"`
	Verified bool `gorm:"default:false" json:"verified"`
	Banned   bool `gorm:"default:false" json:"banned"`

	OldID *int `json:"old_id,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// PublicUser is the wire shape for user info in auth responses; it never
// carries the password hash.
type PublicUser struct {
	ID       string       `json:"id"`
	Username string       `json:"username"`
	Email    string       `json:"email,omitempty"`
	Role     string       `json:"role"`
	Profile  *UserProfile `json:"profile,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role, Profile: u.Profile}
}

// CanEdit reports whether the role may create or change content.
func CanEdit(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}

// CanModerate reports whether the role may moderate user content and media.
func CanModerate(role string) bool {
	return role == RoleAdmin || role == RoleEditor || role == RoleModerator
}
