package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"humorpedia/internal/apperr"
	"humorpedia/internal/models"
)

func TestTagCreateConflictIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.tags.Create("Юмор")
	require.NoError(t, err)

	_, err = env.tags.Create("юмор")
	require.Error(t, err)
	assert.Equal(t, 409, apperr.StatusOf(err))
}

func TestSlugTransliterationScheme(t *testing.T) {
	env := newTestEnv(t)

	cases := map[string]string{
		"Юмор":  "yumor",
		"Хохма": "hohma",
		"Ёлка":  "yolka",
		"Щука":  "schuka",
		"Йога":  "yoga",
		"Объём": "obyom",
	}
	for name, want := range cases {
		tag, err := env.tags.Create(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, tag.Slug, name)
	}
}

func TestTagSyncFoldsCyrillicCase(t *testing.T) {
	env := newTestEnv(t)

	first := &models.ContentDocument{
		ContentType: models.TypeArticle,
		Title:       "Первая",
		Tags:        models.StringList{"КВН"},
	}
	require.NoError(t, env.content.Create(first, "u1"))

	// The differently-cased name must resolve to the existing tag instead
	// of colliding with it and failing the save.
	second := &models.ContentDocument{
		ContentType: models.TypeArticle,
		Title:       "Вторая",
		Tags:        models.StringList{"квн"},
	}
	require.NoError(t, env.content.Create(second, "u1"))
	assert.Equal(t, models.StringList{"КВН"}, second.Tags)

	tag, err := env.tagRepo.FindByName("КВН")
	require.NoError(t, err)
	assert.Equal(t, 2, tag.UsageCount)
}

func TestTagRenameDoesNotTouchDocuments(t *testing.T) {
	env := newTestEnv(t)

	doc := &models.ContentDocument{
		ContentType: models.TypeArticle,
		Title:       "Статья",
		Tags:        models.StringList{"Сатира"},
	}
	require.NoError(t, env.content.Create(doc, "u1"))

	tag, err := env.tagRepo.FindByName("Сатира")
	require.NoError(t, err)

	renamed, err := env.tags.Rename(tag.ID, "Классическая сатира")
	require.NoError(t, err)
	assert.Equal(t, "klassicheskaya-satira", renamed.Slug)

	// Documents keep the old string until re-saved.
	stored, err := env.content.GetByIDOrSlug(models.TypeArticle, doc.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"Сатира"}, stored.Tags)
}

func TestTagRenameConflict(t *testing.T) {
	env := newTestEnv(t)

	a, err := env.tags.Create("КВН")
	require.NoError(t, err)
	_, err = env.tags.Create("Аншлаг")
	require.NoError(t, err)

	_, err = env.tags.Rename(a.ID, "аншлаг")
	require.Error(t, err)
	assert.Equal(t, 409, apperr.StatusOf(err))
}

func TestRecountAllFixesDrift(t *testing.T) {
	env := newTestEnv(t)

	doc := &models.ContentDocument{
		ContentType: models.TypePerson,
		Title:       "Иван",
		Tags:        models.StringList{"Стендап"},
	}
	require.NoError(t, env.content.Create(doc, "u1"))

	tag, err := env.tagRepo.FindByName("Стендап")
	require.NoError(t, err)
	require.NoError(t, env.tagRepo.SetUsageCount(tag.ID, int64(99)))

	require.NoError(t, env.tags.RecountAll())

	fixed, err := env.tagRepo.FindByName("Стендап")
	require.NoError(t, err)
	assert.Equal(t, 1, fixed.UsageCount)
}
