package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"humorpedia/internal/logger"
	"humorpedia/internal/models"
	"humorpedia/internal/repository"
	"humorpedia/internal/services"
	"humorpedia/internal/utils"
)

type apiEnv struct {
	router *gin.Engine
	auth   *services.AuthService
	users  *repository.UserRepository
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := utils.InitDatabase(":memory:")
	require.NoError(t, err)

	log := logger.NewNop()
	contentRepo := repository.NewContentRepository(db)
	tagRepo := repository.NewTagRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	userRepo := repository.NewUserRepository(db)

	tagService := services.NewTagService(tagRepo, contentRepo, log)
	templateService := services.NewTemplateService(templateRepo)
	contentService := services.NewContentService(contentRepo, tagService, templateService, log)
	authService := services.NewAuthService(userRepo, "test-secret")
	userService := services.NewUserService(userRepo)

	contentHandler := NewContentHandler(contentService)
	authHandler := NewAuthHandler(authService, userService)

	requireAuth := RequireAuth(authService)
	requireEditor := RequireRole(models.CanEdit)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", requireAuth, authHandler.Me)
	api.GET("/content/search", contentHandler.Search)
	api.GET("/content/:type", contentHandler.List)
	api.GET("/content/:type/:idOrSlug", contentHandler.Get)
	api.POST("/content/:type", requireAuth, requireEditor, contentHandler.Create)

	return &apiEnv{router: r, auth: authService, users: userRepo}
}

func (e *apiEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// editorToken registers a user, promotes them to editor and logs in.
func editorToken(t *testing.T, env *apiEnv) string {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "редактор", "email": "editor@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NoError(t, env.users.UpdateFields(created.ID, map[string]interface{}{"role": models.RoleEditor}))

	w = env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "редактор", "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, "bearer", login.TokenType)
	assert.Equal(t, 7*24*3600, login.ExpiresIn)
	return login.AccessToken
}

func TestContentEndpointsRequireEditor(t *testing.T) {
	env := newAPIEnv(t)

	w := env.do(t, http.MethodPost, "/api/content/articles", "", gin.H{"title": "Без токена"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Plain users authenticate but may not edit.
	reg := env.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "читатель", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, reg.Code)
	login := env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "читатель", "password": "password123",
	})
	var body struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &body))

	w = env.do(t, http.MethodPost, "/api/content/articles", body.AccessToken, gin.H{"title": "Мало прав"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestContentCreateAndFetchRoundTrip(t *testing.T) {
	env := newAPIEnv(t)
	token := editorToken(t, env)

	w := env.do(t, http.MethodPost, "/api/content/people", token, gin.H{
		"title": "Иван Ургант",
		"tags":  []string{"Телеведущие"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var doc models.ContentDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, models.TypePerson, doc.ContentType)
	assert.Equal(t, "ivan-urgant", doc.Slug)

	// Fetch by slug through the path alias.
	w = env.do(t, http.MethodGet, "/api/content/persons/ivan-urgant", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// List excludes module payloads.
	w = env.do(t, http.MethodGet, "/api/content/people", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"modules"`)
}

func TestGetCountsViewsByDefault(t *testing.T) {
	env := newAPIEnv(t)
	token := editorToken(t, env)

	w := env.do(t, http.MethodPost, "/api/content/articles", token, gin.H{"title": "Читаемая статья"})
	require.Equal(t, http.StatusCreated, w.Code)

	var doc models.ContentDocument
	w = env.do(t, http.MethodGet, "/api/content/articles/chitaemaya-statya", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, 1, doc.Views)

	// The admin panel opts out so edits are not views.
	w = env.do(t, http.MethodGet, "/api/content/articles/chitaemaya-statya?count_view=false", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, 1, doc.Views)
}

func TestErrorBodiesCarryDetail(t *testing.T) {
	env := newAPIEnv(t)

	w := env.do(t, http.MethodGet, "/api/content/bogus-type", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["detail"], "неизвестный тип контента")

	w = env.do(t, http.MethodGet, "/api/content/articles/net-takogo", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCrossTypeSearch(t *testing.T) {
	env := newAPIEnv(t)
	token := editorToken(t, env)

	w := env.do(t, http.MethodPost, "/api/content/people", token, gin.H{"title": "Гарик Харламов"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.do(t, http.MethodPost, "/api/content/articles", token, gin.H{"title": "История Камеди Клаб"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/content/search?q=Харламов", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result struct {
		Items []models.DocumentSummary `json:"items"`
		Total int64                    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Equal(t, int64(1), result.Total)
	assert.Equal(t, "Гарик Харламов", result.Items[0].Title)

	// Type filter excludes the person.
	w = env.do(t, http.MethodGet, "/api/content/search?q=Харламов&types=articles", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, int64(0), result.Total)

	// Missing query is a validation error.
	w = env.do(t, http.MethodGet, "/api/content/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
