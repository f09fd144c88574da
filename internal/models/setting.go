package models

import "gorm.io/gorm"

// Setting is a site-level key/value pair (backup config, feature toggles).
type Setting struct {
	gorm.Model
	Key   string `gorm:"type:varchar(255);uniqueIndex"`
	Value string `gorm:"type:text"`
}
