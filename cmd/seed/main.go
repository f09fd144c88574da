// Command seed bootstraps a fresh database: the admin account, a starter
// module template per content type and one demo article.
package main

import (
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"humorpedia/internal/config"
	"humorpedia/internal/logger"
	"humorpedia/internal/models"
	"humorpedia/internal/pagemodule"
	"humorpedia/internal/repository"
	"humorpedia/internal/services"
	"humorpedia/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}
	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD must be set to seed the admin account")
	}

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatal("failed to init logger: ", err)
	}
	defer appLog.Sync()
	pagemodule.SetLogger(appLog)

	db, err := utils.InitDatabase(cfg.DBPath)
	if err != nil {
		appLog.Fatal("инициализация базы данных не удалась", "error", err)
	}

	userRepo := repository.NewUserRepository(db)
	contentRepo := repository.NewContentRepository(db)
	tagRepo := repository.NewTagRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	adminID, err := seedAdmin(userRepo, cfg)
	if err != nil {
		appLog.Fatal("создание администратора не удалось", "error", err)
	}
	appLog.Info("администратор готов", "id", adminID)

	tagService := services.NewTagService(tagRepo, contentRepo, appLog)
	templateService := services.NewTemplateService(templateRepo)
	contentService := services.NewContentService(contentRepo, tagService, templateService, appLog)

	if err := seedTemplates(templateService, adminID); err != nil {
		appLog.Fatal("создание шаблонов не удалось", "error", err)
	}
	if err := seedDemoArticle(contentService, adminID); err != nil {
		appLog.Fatal("создание демо-статьи не удалось", "error", err)
	}
	appLog.Info("база данных наполнена начальными данными")
}

func seedAdmin(userRepo *repository.UserRepository, cfg *config.Config) (string, error) {
	if existing, err := userRepo.FindByUsername("admin"); err == nil {
		return existing.ID, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	admin := &models.User{
		ID:           uuid.NewString(),
		Username:     "admin",
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Active:       true,
		Verified:     true,
	}
	if err := userRepo.Create(admin); err != nil {
		return "", err
	}
	return admin.ID, nil
}

// starterModules lists the module set each content type starts with.
var starterModules = map[string][]string{
	models.TypePerson:  {pagemodule.TypeHeroCard, pagemodule.TypeTextBlock, pagemodule.TypeTimeline, pagemodule.TypeGallery},
	models.TypeTeam:    {pagemodule.TypeHeroCard, pagemodule.TypeTextBlock, pagemodule.TypeTeamMembers, pagemodule.TypeGamesList},
	models.TypeShow:    {pagemodule.TypeHeroCard, pagemodule.TypeTextBlock, pagemodule.TypeParticipants, pagemodule.TypeEpisodesList},
	models.TypeArticle: {pagemodule.TypeTextBlock, pagemodule.TypeGallery},
	models.TypeQuiz:    {pagemodule.TypeQuizQuestions, pagemodule.TypeQuizResults},
}

func seedTemplates(templateService *services.TemplateService, adminID string) error {
	for contentType, moduleTypes := range starterModules {
		existing, err := templateService.GetDefault(contentType)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		var modules pagemodule.List
		for _, mt := range moduleTypes {
			modules, _ = modules.Add(mt)
		}
		tpl := &models.Template{
			Name:        "Стандартный: " + contentType,
			Description: "Базовый набор модулей",
			ContentType: contentType,
			Modules:     modules,
			IsDefault:   true,
		}
		if err := templateService.Create(tpl, adminID); err != nil {
			return err
		}
	}
	return nil
}

func seedDemoArticle(contentService *services.ContentService, adminID string) error {
	if _, err := contentService.GetByIDOrSlug(models.TypeArticle, "dobro-pozhalovat", false); err == nil {
		return nil
	}

	modules, id := pagemodule.List{}.Add(pagemodule.TypeTextBlock)
	modules, _ = modules.Update(id, pagemodule.Patch{
		Data: map[string]any{
			"content": "Это демонстрационная статья. Отредактируйте или удалите её в админ-панели.",
		},
	})

	doc := &models.ContentDocument{
		ContentType: models.TypeArticle,
		Slug:        "dobro-pozhalovat",
		Title:       "Добро пожаловать",
		Status:      models.StatusPublished,
		Excerpt:     "Первая статья на сайте.",
		Tags:        []string{"сайт"},
		Modules:     modules,
	}
	return contentService.Create(doc, adminID)
}
