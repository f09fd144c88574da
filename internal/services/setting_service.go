package services

import (
	"sync"

	"humorpedia/internal/logger"
	"humorpedia/internal/repository"
)

// SettingService keeps all settings in an in-memory cache refreshed on
// every write.
type SettingService struct {
	repo         *repository.SettingRepository
	log          *logger.Logger
	settings     map[string]string
	settingsLock sync.RWMutex
}

func NewSettingService(repo *repository.SettingRepository, log *logger.Logger) *SettingService {
	s := &SettingService{
		repo:     repo,
		log:      log,
		settings: make(map[string]string),
	}
	s.loadSettings()
	return s
}

func (s *SettingService) loadSettings() {
	s.settingsLock.Lock()
	defer s.settingsLock.Unlock()

	settings, err := s.repo.GetAllSettings()
	if err != nil {
		s.log.Error("не удалось загрузить настройки", "error", err)
		return
	}
	s.settings = settings
}

// GetSetting returns one setting value from the cache.
func (s *SettingService) GetSetting(key string) (string, error) {
	s.settingsLock.RLock()
	defer s.settingsLock.RUnlock()
	return s.settings[key], nil
}

// GetAllSettings returns a copy of the settings cache.
func (s *SettingService) GetAllSettings() (map[string]string, error) {
	s.settingsLock.RLock()
	defer s.settingsLock.RUnlock()

	settingsCopy := make(map[string]string, len(s.settings))
	for key, value := range s.settings {
		settingsCopy[key] = value
	}
	return settingsCopy, nil
}

// UpdateSettings updates multiple settings at once and refreshes the cache.
func (s *SettingService) UpdateSettings(settings map[string]string) error {
	for key, value := range settings {
		if err := s.repo.UpdateSetting(key, value); err != nil {
			return err
		}
	}
	s.loadSettings()
	return nil
}
