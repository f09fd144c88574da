package utils

import (
	"humorpedia/internal/constants"
	"humorpedia/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func InitDatabase(dbPath string) (*gorm.DB, error) {
	if dbPath == "" {
		dbPath = "humorpedia.db"
	}
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.ContentDocument{},
		&models.Tag{},
		&models.Template{},
		&models.Section{},
		&models.User{},
		&models.MediaFile{},
		&models.Comment{},
		&models.Setting{},
	)
	if err != nil {
		return nil, err
	}

	// FTS5 virtual table for full-text search over documents. Documents use
	// uuid primary keys, so doc_id is carried as an unindexed column instead
	// of relying on rowid mapping. The repository layer keeps it in sync on
	// save and delete.
	ftsTableSQL := `
	CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
		doc_id UNINDEXED,
		title,
		body,
		tokenize = 'unicode61 remove_diacritics 2'
	);`
	if err := db.Exec(ftsTableSQL).Error; err != nil {
		return nil, err
	}

	if err := seedSettings(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedSettings populates the database with default settings if they don't exist.
func seedSettings(db *gorm.DB) error {
	defaultSettings := map[string]string{
		constants.SettingSiteTitle:        "Хумор-педия",
		constants.SettingSiteDescription:  "Энциклопедия юмора",
		constants.SettingBackupPassword:   "",
		constants.SettingGithubRepo:       "",
		constants.SettingGithubBranch:     "main",
		constants.SettingGithubToken:      "",
		constants.SettingGithubBackupCron: "",
		constants.SettingWebdavURL:        "",
		constants.SettingWebdavUser:       "",
		constants.SettingWebdavPassword:   "",
		constants.SettingWebdavBackupCron: "",
	}

	for key, value := range defaultSettings {
		setting := models.Setting{Key: key}
		result := db.FirstOrCreate(&setting, models.Setting{Key: key})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			setting.Value = value
			db.Save(&setting)
		}
	}

	return nil
}
