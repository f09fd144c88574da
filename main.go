package main

import (
	"html/template"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"

	"humorpedia/internal/config"
	"humorpedia/internal/handlers"
	"humorpedia/internal/logger"
	"humorpedia/internal/models"
	"humorpedia/internal/pagemodule"
	"humorpedia/internal/repository"
	"humorpedia/internal/services"
	"humorpedia/internal/tasks"
	"humorpedia/internal/utils"
)

func createRenderer() multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	add := func(name string, files ...string) {
		tpl, err := template.ParseFS(templatesFS, files...)
		if err != nil {
			log.Fatalf("failed to parse template %s: %v", name, err)
		}
		r.Add(name, tpl)
	}

	add("preview.html", "base.html", "preview.html")

	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
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

	contentRepo := repository.NewContentRepository(db)
	tagRepo := repository.NewTagRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	userRepo := repository.NewUserRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	settingService := services.NewSettingService(settingRepo, appLog)
	tagService := services.NewTagService(tagRepo, contentRepo, appLog)
	templateService := services.NewTemplateService(templateRepo)
	contentService := services.NewContentService(contentRepo, tagService, templateService, appLog)
	sectionService := services.NewSectionService(sectionRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	userService := services.NewUserService(userRepo)
	mediaService := services.NewMediaService(mediaRepo, cfg.UploadDir, cfg.MaxUploadSize, appLog)
	commentService := services.NewCommentService(commentRepo, contentRepo)
	backupService := services.NewBackupService(contentRepo, tagRepo, templateRepo, sectionRepo, settingService)
	consoleService := services.NewDBConsoleService(contentRepo, tagRepo, templateRepo, sectionRepo)

	scheduler := tasks.NewScheduler(settingService, backupService, tagService, appLog)
	scheduler.Start()
	defer scheduler.Stop()

	contentHandler := handlers.NewContentHandler(contentService)
	tagHandler := handlers.NewTagHandler(tagService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	mediaHandler := handlers.NewMediaHandler(mediaService)
	sectionHandler := handlers.NewSectionHandler(sectionService)
	commentHandler := handlers.NewCommentHandler(commentService)
	consoleHandler := handlers.NewDBConsoleHandler(consoleService)
	settingsHandler := handlers.NewSettingsHandler(settingService, backupService, scheduler)
	previewHandler := handlers.NewPreviewHandler(contentService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.HTMLRender = createRenderer()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/uploads", cfg.UploadDir)

	requireAuth := handlers.RequireAuth(authService)
	requireEditor := handlers.RequireRole(models.CanEdit)
	requireModerator := handlers.RequireRole(models.CanModerate)
	requireAdmin := handlers.RequireRole(func(role string) bool { return role == models.RoleAdmin })

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", requireAuth, authHandler.Me)
		}

		content := api.Group("/content")
		{
			content.GET("/search", contentHandler.Search)
			content.GET("/:type", contentHandler.List)
			content.GET("/:type/:idOrSlug", contentHandler.Get)
			content.POST("/:type", requireAuth, requireEditor, contentHandler.Create)
			content.PUT("/:type/:idOrSlug", requireAuth, requireEditor, contentHandler.Update)
			content.DELETE("/:type/:idOrSlug", requireAuth, requireEditor, contentHandler.Delete)
		}

		tags := api.Group("/tags")
		{
			tags.GET("", tagHandler.List)
			tags.GET("/popular", tagHandler.Popular)
			tags.POST("", requireAuth, requireEditor, tagHandler.Create)
			tags.POST("/update-counts", requireAuth, requireEditor, tagHandler.UpdateCounts)
			tags.PUT("/:id", requireAuth, requireEditor, tagHandler.Update)
			tags.DELETE("/:id", requireAuth, requireEditor, tagHandler.Delete)
		}

		templates := api.Group("/templates")
		{
			templates.GET("", templateHandler.List)
			templates.GET("/modules/types", templateHandler.ModuleTypes)
			templates.GET("/default/:contentType", templateHandler.GetDefault)
			templates.GET("/:id", templateHandler.Get)
			templates.POST("", requireAuth, requireEditor, templateHandler.Create)
			templates.PUT("/:id", requireAuth, requireEditor, templateHandler.Update)
			templates.POST("/:id/set-default", requireAuth, requireEditor, templateHandler.SetDefault)
			templates.DELETE("/:id", requireAuth, requireEditor, templateHandler.Delete)
		}

		sections := api.Group("/sections")
		{
			sections.GET("", sectionHandler.List)
			sections.GET("/tree", sectionHandler.Tree)
			sections.GET("/by-path", sectionHandler.GetByPath)
			sections.GET("/:id", sectionHandler.Get)
			sections.POST("", requireAuth, requireEditor, sectionHandler.Create)
			sections.PUT("/:id", requireAuth, requireEditor, sectionHandler.Update)
			sections.DELETE("/:id", requireAuth, requireEditor, sectionHandler.Delete)
		}

		users := api.Group("/users", requireAuth)
		{
			users.PUT("/profile", userHandler.UpdateProfile)
			users.POST("/change-password", userHandler.ChangePassword)
			users.GET("", requireAdmin, userHandler.List)
			users.GET("/:id", requireAdmin, userHandler.Get)
			users.PUT("/:id/role", requireAdmin, userHandler.SetRole)
			users.PUT("/:id/ban", requireAdmin, userHandler.SetBanned)
			users.DELETE("/:id", requireAdmin, userHandler.Delete)
		}

		media := api.Group("/media", requireAuth)
		{
			media.GET("", mediaHandler.List)
			media.GET("/:id", mediaHandler.Get)
			media.POST("", requireEditor, mediaHandler.Upload)
			media.PUT("/:id", requireEditor, mediaHandler.Update)
			media.DELETE("/:id", requireModerator, mediaHandler.Delete)
		}

		comments := api.Group("/comments")
		{
			comments.POST("", commentHandler.Create)
			comments.GET("/document/:documentID", commentHandler.ListForDocument)
			comments.GET("/queue", requireAuth, requireModerator, commentHandler.Queue)
			comments.PUT("/:id/status", requireAuth, requireModerator, commentHandler.SetStatus)
			comments.DELETE("/:id", requireAuth, requireModerator, commentHandler.Delete)
		}

		dbConsole := api.Group("/db", requireAuth, requireAdmin)
		{
			dbConsole.GET("/collections", consoleHandler.Collections)
			dbConsole.GET("/export/:collection", consoleHandler.Export)
			dbConsole.POST("/import/:collection", consoleHandler.Import)
			dbConsole.POST("/delete/:collection", consoleHandler.Wipe)
		}

		settings := api.Group("/settings", requireAuth, requireAdmin)
		{
			settings.GET("", settingsHandler.List)
			settings.PUT("", settingsHandler.Update)
		}

		backup := api.Group("/backup", requireAuth, requireAdmin)
		{
			backup.POST("/run", settingsHandler.RunBackup)
			backup.POST("/restore", settingsHandler.RestoreBackup)
			backup.POST("/test", settingsHandler.TestBackup)
		}
	}

	r.GET("/api/preview/:type/:idOrSlug", requireAuth, requireEditor, previewHandler.Show)

	appLog.Info("сервер запускается", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		appLog.Fatal("сервер остановился с ошибкой", "error", err)
	}
}
