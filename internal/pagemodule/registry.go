package pagemodule

// Module type keys. Content modules render from their own data; system
// modules render from the parent document's core fields.
const (
	TypeHeroCard      = "hero_card"
	TypeTextBlock     = "text_block"
	TypeTimeline      = "timeline"
	TypeTags          = "tags"
	TypeTable         = "table"
	TypeGallery       = "gallery"
	TypeVideo         = "video"
	TypeQuote         = "quote"
	TypeTeamMembers   = "team_members"
	TypeTVAppearances = "tv_appearances"
	TypeGamesList     = "games_list"
	TypeEpisodesList  = "episodes_list"
	TypeParticipants  = "participants"
	TypeBestArticles  = "best_articles"
	TypeInteresting   = "interesting"
	TypeRandomPage    = "random_page"
	TypeQuizQuestions = "quiz_questions"
	TypeQuizResults   = "quiz_results"
	TypeTOC           = "table_of_contents"

	TypePosterPhoto  = "poster_photo"
	TypeFactsTable   = "facts_table"
	TypeRatingWidget = "rating_widget"
	TypeTagsCloud    = "tags_cloud"
	TypeSocialLinks  = "social_links"
)

// TypeInfo describes one registered module type.
type TypeInfo struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	ForTypes    []string `json:"for_types"`
	// System module types read the parent document's core fields instead
	// of module data.
	System bool `json:"system,omitempty"`
	// DefaultStyle is the presentation variant used when data.style is absent.
	DefaultStyle string `json:"default_style,omitempty"`
}

// registry is the closed, hand-maintained module type table. Adding a new
// type means registering it here, in the editor normalization dispatch and,
// for public-facing types, in the renderer dispatch.
var registry = []TypeInfo{
	{Type: TypeHeroCard, Name: "Карточка с фото", Description: "Фото с краткими фактами", Icon: "user", ForTypes: []string{"person", "team", "show"}},
	{Type: TypeTextBlock, Name: "Текстовый блок", Description: "Блок текста с заголовком", Icon: "file-text", ForTypes: []string{"all"}},
	{Type: TypeTimeline, Name: "Хронология", Description: "Таймлайн событий", Icon: "clock", ForTypes: []string{"person", "team", "show"}},
	{Type: TypeTags, Name: "Теги", Description: "Отображение тегов", Icon: "tag", ForTypes: []string{"all"}},
	{Type: TypeTable, Name: "Таблица", Description: "Таблица данных с сортировкой", Icon: "table", ForTypes: []string{"all"}},
	{Type: TypeGallery, Name: "Галерея", Description: "Галерея изображений", Icon: "image", ForTypes: []string{"all"}},
	{Type: TypeVideo, Name: "Видео", Description: "Встроенное видео", Icon: "play", ForTypes: []string{"all"}},
	{Type: TypeQuote, Name: "Цитата", Description: "Блок цитаты", Icon: "quote", ForTypes: []string{"article", "news"}, DefaultStyle: "plain"},
	{Type: TypeTeamMembers, Name: "Состав команды", Description: "Список участников", Icon: "users", ForTypes: []string{"team"}},
	{Type: TypeTVAppearances, Name: "ТВ эфиры", Description: "Таблица ТВ эфиров", Icon: "tv", ForTypes: []string{"team"}},
	{Type: TypeGamesList, Name: "Список игр", Description: "Список игр команды", Icon: "list", ForTypes: []string{"team"}},
	{Type: TypeEpisodesList, Name: "Список выпусков", Description: "Список эпизодов шоу", Icon: "film", ForTypes: []string{"show"}},
	{Type: TypeParticipants, Name: "Участники", Description: "Список участников шоу", Icon: "users", ForTypes: []string{"show"}},
	{Type: TypeQuizQuestions, Name: "Вопросы квиза", Description: "Блок вопросов", Icon: "help-circle", ForTypes: []string{"quiz"}},
	{Type: TypeQuizResults, Name: "Результаты квиза", Description: "Описание результатов", Icon: "award", ForTypes: []string{"quiz"}},
	{Type: TypeBestArticles, Name: "Лучшие статьи", Description: "Виджет лучших статей", Icon: "star", ForTypes: []string{"page"}},
	{Type: TypeInteresting, Name: "Интересное", Description: "Виджет интересного контента", Icon: "zap", ForTypes: []string{"page"}},
	{Type: TypeRandomPage, Name: "Случайная страница", Description: "Ссылка на случайную страницу", Icon: "shuffle", ForTypes: []string{"page"}},
	{Type: TypeTOC, Name: "Оглавление", Description: "Навигация по странице", Icon: "list", ForTypes: []string{"person", "team", "article", "wiki"}},

	{Type: TypePosterPhoto, Name: "Постер", Description: "Главное фото страницы", Icon: "image", ForTypes: []string{"person", "team", "show"}, System: true, DefaultStyle: "plain"},
	{Type: TypeFactsTable, Name: "Факты", Description: "Таблица фактов страницы", Icon: "info", ForTypes: []string{"person", "team", "show"}, System: true, DefaultStyle: "list"},
	{Type: TypeRatingWidget, Name: "Рейтинг", Description: "Оценка страницы", Icon: "star", ForTypes: []string{"person", "team", "show"}, System: true, DefaultStyle: "stars"},
	{Type: TypeTagsCloud, Name: "Облако тегов", Description: "Теги страницы", Icon: "tag", ForTypes: []string{"all"}, System: true, DefaultStyle: "cloud"},
	{Type: TypeSocialLinks, Name: "Соцсети", Description: "Ссылки на соцсети страницы", Icon: "share-2", ForTypes: []string{"person", "team"}, System: true},
}

// allowed maps a content type to the ordered module types offered in its
// "add module" picker. Unknown content types fall back to the "page" list.
var allowed = map[string][]string{
	"person": {TypeHeroCard, TypeTextBlock, TypeTimeline, TypeTable, TypeGallery, TypeVideo, TypeTOC,
		TypePosterPhoto, TypeFactsTable, TypeRatingWidget, TypeTagsCloud, TypeSocialLinks},
	"team": {TypeHeroCard, TypeTextBlock, TypeTimeline, TypeTable, TypeGallery, TypeVideo,
		TypeTeamMembers, TypeTVAppearances, TypeGamesList, TypeTOC,
		TypePosterPhoto, TypeFactsTable, TypeRatingWidget, TypeTagsCloud, TypeSocialLinks},
	"show": {TypeHeroCard, TypeTextBlock, TypeTimeline, TypeTable, TypeGallery, TypeVideo,
		TypeEpisodesList, TypeParticipants,
		TypePosterPhoto, TypeFactsTable, TypeRatingWidget, TypeTagsCloud},
	"article":     {TypeTextBlock, TypeQuote, TypeGallery, TypeVideo, TypeTable, TypeTOC, TypeTagsCloud},
	"news":        {TypeTextBlock, TypeQuote, TypeGallery, TypeVideo, TypeTagsCloud},
	"quiz":        {TypeQuizQuestions, TypeQuizResults, TypeTextBlock},
	"wiki":        {TypeTextBlock, TypeTable, TypeGallery, TypeVideo, TypeTOC, TypeTagsCloud},
	"wiki_header": {TypeTextBlock, TypeTable, TypeGallery, TypeVideo, TypeTOC, TypeTagsCloud},
	"section":     {TypeTextBlock, TypeGallery, TypeTable},
	"page":        {TypeTextBlock, TypeTable, TypeGallery, TypeVideo, TypeQuote, TypeBestArticles, TypeInteresting, TypeRandomPage},
}

// LookupType returns the registry entry for a module type key.
func LookupType(moduleType string) (TypeInfo, bool) {
	for _, ti := range registry {
		if ti.Type == moduleType {
			return ti, true
		}
	}
	return TypeInfo{}, false
}

// AllTypes returns the registry in declaration order.
func AllTypes() []TypeInfo {
	out := make([]TypeInfo, len(registry))
	copy(out, registry)
	return out
}

// AllowedTypes returns the module types offered for a content type, in
// picker order. Unknown content types get the generic page list.
func AllowedTypes(contentType string) []TypeInfo {
	keys, ok := allowed[contentType]
	if !ok {
		keys = allowed["page"]
	}
	out := make([]TypeInfo, 0, len(keys))
	for _, k := range keys {
		if ti, ok := LookupType(k); ok {
			out = append(out, ti)
		}
	}
	return out
}

// IsSystemType reports whether a module type renders from the parent
// document's core fields rather than its own data.
func IsSystemType(moduleType string) bool {
	ti, ok := LookupType(moduleType)
	return ok && ti.System
}

// DisplayName returns the module title override when set, otherwise the
// registered display name, otherwise the raw type key.
func DisplayName(m Module) string {
	if m.Title != "" {
		return m.Title
	}
	if ti, ok := LookupType(m.Type); ok {
		return ti.Name
	}
	return m.Type
}
