package tasks

import (
	"errors"
	"sync"

	"github.com/robfig/cron/v3"

	"humorpedia/internal/constants"
	"humorpedia/internal/logger"
	"humorpedia/internal/services"
)

// Scheduler runs the cron-driven jobs: remote backups on their configured
// schedules and the nightly tag usage recount.
type Scheduler struct {
	cron           *cron.Cron
	settingService *services.SettingService
	backupService  *services.BackupService
	tagService     *services.TagService
	log            *logger.Logger
	mu             sync.Mutex
}

func NewScheduler(settingService *services.SettingService, backupService *services.BackupService, tagService *services.TagService, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		settingService: settingService,
		backupService:  backupService,
		tagService:     tagService,
		log:            log,
	}
}

func (s *Scheduler) Start() {
	s.log.Info("запуск планировщика фоновых задач")
	s.Reload()
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Reload rebuilds the cron table from current settings. Called on start
// and whenever settings change.
func (s *Scheduler) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		s.cron.Stop()
	}
	s.cron = cron.New()

	settings, err := s.settingService.GetAllSettings()
	if err != nil {
		s.log.Error("не удалось загрузить настройки для планировщика", "error", err)
		return
	}

	s.addBackupTask(settings, constants.SettingGithubBackupCron, "GitHub", func() error {
		repo := settings[constants.SettingGithubRepo]
		branch := settings[constants.SettingGithubBranch]
		token := settings[constants.SettingGithubToken]
		if repo == "" || branch == "" || token == "" {
			return errors.New("настройки резервного копирования неполные")
		}
		return s.backupService.BackupToGithub(repo, branch, token)
	})

	s.addBackupTask(settings, constants.SettingWebdavBackupCron, "WebDAV", func() error {
		url := settings[constants.SettingWebdavURL]
		user := settings[constants.SettingWebdavUser]
		password := settings[constants.SettingWebdavPassword]
		if url == "" {
			return errors.New("адрес WebDAV не настроен")
		}
		return s.backupService.BackupToWebdav(url, user, password)
	})

	// Usage counts drift when recounts fail mid-save; a nightly pass
	// resets them from the documents table.
	if _, err := s.cron.AddFunc("0 4 * * *", s.recoveryWrapper(func() {
		if err := s.tagService.RecountAll(); err != nil {
			s.log.Error("ночной пересчёт тегов не удался", "error", err)
		} else {
			s.log.Info("ночной пересчёт тегов завершён")
		}
	})); err != nil {
		s.log.Error("не удалось добавить задачу пересчёта тегов", "error", err)
	}

	s.cron.Start()
	s.log.Info("планировщик перезапущен", "tasks", len(s.cron.Entries()))
}

func (s *Scheduler) addBackupTask(settings map[string]string, cronKey, taskName string, backupFunc func() error) {
	spec := settings[cronKey]
	if spec == "" {
		return
	}

	job := func() {
		s.log.Info("запуск резервного копирования по расписанию", "target", taskName)
		err := backupFunc()
		switch {
		case errors.Is(err, services.ErrBackupNoChange):
			s.log.Info("данные не изменились, копия не создана", "target", taskName)
		case err != nil:
			s.log.Error("резервное копирование не удалось", "target", taskName, "error", err)
		default:
			s.log.Info("резервная копия создана", "target", taskName)
		}
	}

	if _, err := s.cron.AddFunc(spec, s.recoveryWrapper(job)); err != nil {
		s.log.Error("не удалось добавить задачу резервного копирования", "target", taskName, "spec", spec, "error", err)
	} else {
		s.log.Info("задача резервного копирования запланирована", "target", taskName, "spec", spec)
	}
}

func (s *Scheduler) recoveryWrapper(job func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("паника в фоновой задаче", "panic", r)
			}
		}()
		job()
	}
}
