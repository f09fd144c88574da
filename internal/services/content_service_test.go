package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"humorpedia/internal/logger"
	"humorpedia/internal/models"
	"humorpedia/internal/pagemodule"
	"humorpedia/internal/repository"
	"humorpedia/internal/utils"
)

type testEnv struct {
	db       *gorm.DB
	content  *ContentService
	tags     *TagService
	tpls     *TemplateService
	tagRepo  *repository.TagRepository
	contRepo *repository.ContentRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := utils.InitDatabase(":memory:")
	require.NoError(t, err)

	log := logger.NewNop()
	contRepo := repository.NewContentRepository(db)
	tagRepo := repository.NewTagRepository(db)
	tplRepo := repository.NewTemplateRepository(db)

	tags := NewTagService(tagRepo, contRepo, log)
	tpls := NewTemplateService(tplRepo)
	content := NewContentService(contRepo, tags, tpls, log)

	return &testEnv{db: db, content: content, tags: tags, tpls: tpls, tagRepo: tagRepo, contRepo: contRepo}
}

func TestCreateTransliteratesSlug(t *testing.T) {
	env := newTestEnv(t)

	doc := &models.ContentDocument{ContentType: models.TypePerson, Title: "Иван Петров"}
	require.NoError(t, env.content.Create(doc, "u1"))

	assert.Equal(t, "ivan-petrov", doc.Slug)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, models.StatusDraft, doc.Status)
}

func TestCreateResolvesSlugCollision(t *testing.T) {
	env := newTestEnv(t)

	first := &models.ContentDocument{ContentType: models.TypePerson, Title: "Иван Петров"}
	require.NoError(t, env.content.Create(first, "u1"))

	second := &models.ContentDocument{ContentType: models.TypePerson, Title: "Иван Петров"}
	require.NoError(t, env.content.Create(second, "u1"))
	assert.Equal(t, "ivan-petrov-1", second.Slug)

	// Same slug under a different content type does not collide.
	other := &models.ContentDocument{ContentType: models.TypeTeam, Title: "Иван Петров"}
	require.NoError(t, env.content.Create(other, "u1"))
	assert.Equal(t, "ivan-petrov", other.Slug)
}

func TestTextBlockContentStoredVerbatim(t *testing.T) {
	env := newTestEnv(t)

	html := `<p>Известен по <a href="/kvn">КВН</a> &amp; другим шоу.</p>`
	modules, id := pagemodule.List{}.Add(pagemodule.TypeTextBlock)
	modules, _ = modules.Update(id, pagemodule.Patch{Data: map[string]any{"content": html}})

	doc := &models.ContentDocument{ContentType: models.TypeArticle, Title: "Статья", Modules: modules}
	require.NoError(t, env.content.Create(doc, "u1"))

	reloaded, err := env.content.GetByIDOrSlug(models.TypeArticle, doc.Slug, false)
	require.NoError(t, err)

	d, err := pagemodule.Decode(reloaded.Modules[0])
	require.NoError(t, err)
	assert.Equal(t, html, d.(pagemodule.TextBlockData).Content)
}

func TestCreateSeedsModulesFromDefaultTemplate(t *testing.T) {
	env := newTestEnv(t)

	var tplModules pagemodule.List
	tplModules, _ = tplModules.Add(pagemodule.TypeHeroCard)
	tplModules, _ = tplModules.Add(pagemodule.TypeTextBlock)
	tpl := &models.Template{Name: "Персона", ContentType: models.TypePerson, Modules: tplModules, IsDefault: true}
	require.NoError(t, env.tpls.Create(tpl, "u1"))

	doc := &models.ContentDocument{ContentType: models.TypePerson, Title: "Новая персона"}
	require.NoError(t, env.content.Create(doc, "u1"))

	require.Len(t, doc.Modules, 2)
	assert.Equal(t, pagemodule.TypeHeroCard, doc.Modules[0].Type)
	// Module ids are fresh copies, not the template's.
	assert.NotEqual(t, tplModules[0].ID, doc.Modules[0].ID)
}

func TestPublishedAtSetOnce(t *testing.T) {
	env := newTestEnv(t)

	doc := &models.ContentDocument{ContentType: models.TypeNews, Title: "Новость"}
	require.NoError(t, env.content.Create(doc, "u1"))
	require.Nil(t, doc.PublishedAt)

	doc.Status = models.StatusPublished
	require.NoError(t, env.content.Update(doc, doc.Tags, "u1"))
	require.NotNil(t, doc.PublishedAt)
	firstPublish := *doc.PublishedAt

	doc.Title = "Новость (обновлено)"
	require.NoError(t, env.content.Update(doc, doc.Tags, "u1"))
	assert.Equal(t, firstPublish, *doc.PublishedAt, "re-saving must not move published_at")
}

func TestTagSyncCreatesAndCanonicalizes(t *testing.T) {
	env := newTestEnv(t)

	existing, err := env.tags.Create("КВН")
	require.NoError(t, err)

	doc := &models.ContentDocument{
		ContentType: models.TypePerson,
		Title:       "Иван Петров",
		Tags:        []string{"квн", "Юмор", "квн"},
	}
	require.NoError(t, env.content.Create(doc, "u1"))

	// Existing tag casing wins; duplicates collapse.
	assert.Equal(t, models.StringList{"КВН", "Юмор"}, doc.Tags)

	tag, err := env.tagRepo.FindByID(existing.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, tag.UsageCount)

	created, err := env.tagRepo.FindByName("Юмор")
	require.NoError(t, err)
	assert.Equal(t, "Юмор", created.Name)
	assert.Equal(t, 1, created.UsageCount)
}

func TestTagSyncOnRemoval(t *testing.T) {
	env := newTestEnv(t)

	doc := &models.ContentDocument{ContentType: models.TypePerson, Title: "Иван", Tags: []string{"квн"}}
	require.NoError(t, env.content.Create(doc, "u1"))

	oldTags := append([]string(nil), doc.Tags...)
	doc.Tags = nil
	require.NoError(t, env.content.Update(doc, oldTags, "u1"))

	tag, err := env.tagRepo.FindByName("квн")
	require.NoError(t, err)
	assert.Equal(t, 0, tag.UsageCount, "removed tag usage should drop")
}

func TestListExcludesModulesAndFilters(t *testing.T) {
	env := newTestEnv(t)

	modules, id := pagemodule.List{}.Add(pagemodule.TypeTextBlock)
	modules, _ = modules.Update(id, pagemodule.Patch{Data: map[string]any{"content": "текст"}})

	published := &models.ContentDocument{ContentType: models.TypeArticle, Title: "Альфа", Status: models.StatusPublished, Modules: modules}
	require.NoError(t, env.content.Create(published, "u1"))
	draft := &models.ContentDocument{ContentType: models.TypeArticle, Title: "Бета"}
	require.NoError(t, env.content.Create(draft, "u1"))

	all, err := env.content.List(models.TypeArticle, repository.ContentFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Total)

	onlyPublished, err := env.content.List(models.TypeArticle, repository.ContentFilter{Status: models.StatusPublished})
	require.NoError(t, err)
	require.EqualValues(t, 1, onlyPublished.Total)
	items := onlyPublished.Items.([]models.DocumentSummary)
	assert.Equal(t, "Альфа", items[0].Title)

	byLetter, err := env.content.List(models.TypeArticle, repository.ContentFilter{Letter: "Б"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, byLetter.Total)
}

func TestSearchFindsModuleText(t *testing.T) {
	env := newTestEnv(t)

	modules, id := pagemodule.List{}.Add(pagemodule.TypeTextBlock)
	modules, _ = modules.Update(id, pagemodule.Patch{Data: map[string]any{"content": "выступал в Юрмале на фестивале"}})

	doc := &models.ContentDocument{ContentType: models.TypePerson, Title: "Иван Петров", Modules: modules}
	require.NoError(t, env.content.Create(doc, "u1"))

	found, err := env.content.List(models.TypePerson, repository.ContentFilter{Search: "Юрмале"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, found.Total)

	none, err := env.content.List(models.TypePerson, repository.ContentFilter{Search: "Сочи"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, none.Total)
}

func TestDeleteRemovesDocumentAndIndex(t *testing.T) {
	env := newTestEnv(t)

	doc := &models.ContentDocument{ContentType: models.TypePerson, Title: "Иван Петров", Tags: []string{"квн"}}
	require.NoError(t, env.content.Create(doc, "u1"))

	require.NoError(t, env.content.Delete(models.TypePerson, doc.Slug))

	_, err := env.content.GetByIDOrSlug(models.TypePerson, doc.Slug, false)
	assert.Error(t, err)

	found, err := env.content.List(models.TypePerson, repository.ContentFilter{Search: "Петров"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, found.Total)

	tag, err := env.tagRepo.FindByName("квн")
	require.NoError(t, err)
	assert.Equal(t, 0, tag.UsageCount)
}

func TestViewCounter(t *testing.T) {
	env := newTestEnv(t)

	doc := &models.ContentDocument{ContentType: models.TypeArticle, Title: "Статья"}
	require.NoError(t, env.content.Create(doc, "u1"))

	_, err := env.content.GetByIDOrSlug(models.TypeArticle, doc.Slug, false)
	require.NoError(t, err)
	counted, err := env.content.GetByIDOrSlug(models.TypeArticle, doc.Slug, true)
	require.NoError(t, err)
	assert.Equal(t, 1, counted.Views)
}

func TestResolveContentType(t *testing.T) {
	for path, want := range map[string]string{
		"people":   models.TypePerson,
		"person":   models.TypePerson,
		"teams":    models.TypeTeam,
		"quizzes":  models.TypeQuiz,
		"articles": models.TypeArticle,
	} {
		got, ok := ResolveContentType(path)
		require.True(t, ok, path)
		assert.Equal(t, want, got)
	}
	_, ok := ResolveContentType("bogus")
	assert.False(t, ok)
}
