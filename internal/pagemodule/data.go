package pagemodule

import (
	"encoding/json"
	"fmt"
)

// TypedData is the tagged union over module payloads. Each module kind has
// its own variant; unrecognized types decode to UnknownData so the raw
// payload round-trips untouched instead of being silently coerced.
type TypedData interface {
	moduleData()
}

// FactItem is a single label/value fact, optionally linking elsewhere.
type FactItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Link  string `json:"link,omitempty"`
}

type HeroCardData struct {
	Photo       string            `json:"photo,omitempty"`
	PhotoAlt    string            `json:"photo_alt,omitempty"`
	Facts       []FactItem        `json:"facts,omitempty"`
	SocialLinks map[string]string `json:"social_links,omitempty"`
}

type TextBlockData struct {
	Title string `json:"title,omitempty"`
	// Content is HTML, stored verbatim. When Format is "markdown" the
	// renderer converts it at display time; storage is never rewritten.
	Content string `json:"content"`
	Format  string `json:"format,omitempty"`
}

// TimelineEvent carries either a year or a free-form date.
type TimelineEvent struct {
	Year        int    `json:"year,omitempty"`
	Month       int    `json:"month,omitempty"`
	Date        string `json:"date,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Link        string `json:"link,omitempty"`
	Kind        string `json:"type,omitempty"`
}

// TimelineData reads both the current `events` key and the legacy `items`
// key; saving always writes `events` (see normalize.go).
type TimelineData struct {
	Title  string          `json:"title,omitempty"`
	Events []TimelineEvent `json:"events"`
	Items  []TimelineEvent `json:"items,omitempty"`
}

type TagsData struct {
	Tags []string `json:"tags"`
}

// TableData invariant: every row has exactly len(Headers) cells whenever
// HasHeaders is set.
type TableData struct {
	Title      string     `json:"title,omitempty"`
	Headers    []string   `json:"headers"`
	Rows       [][]string `json:"rows"`
	HasHeaders bool       `json:"hasHeaders"`
	Style      string     `json:"style,omitempty"`
}

type GalleryItem struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Alt       string `json:"alt,omitempty"`
	Caption   string `json:"caption,omitempty"`
}

type GalleryData struct {
	Title string        `json:"title,omitempty"`
	Items []GalleryItem `json:"items"`
}

type VideoData struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Caption string `json:"caption,omitempty"`
}

type QuoteData struct {
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
	Source string `json:"source,omitempty"`
	Style  string `json:"style,omitempty"`
}

type TeamMember struct {
	PersonID   string `json:"person_id,omitempty"`
	Name       string `json:"name"`
	Role       string `json:"role,omitempty"`
	JoinedYear int    `json:"joined_year,omitempty"`
	LeftYear   int    `json:"left_year,omitempty"`
	Active     bool   `json:"active"`
	Photo      string `json:"photo,omitempty"`
}

type TeamMembersData struct {
	Title   string       `json:"title,omitempty"`
	Members []TeamMember `json:"members"`
}

type TVAppearance struct {
	Date     string  `json:"date,omitempty"`
	Season   string  `json:"season,omitempty"`
	League   string  `json:"league,omitempty"`
	Episode  string  `json:"episode,omitempty"`
	Result   string  `json:"result,omitempty"`
	Score    float64 `json:"score,omitempty"`
	VideoURL string  `json:"video_url,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

type TVAppearancesData struct {
	Title       string         `json:"title,omitempty"`
	Appearances []TVAppearance `json:"appearances"`
}

type GameEntry struct {
	Date     string `json:"date,omitempty"`
	Opponent string `json:"opponent,omitempty"`
	League   string `json:"league,omitempty"`
	Result   string `json:"result,omitempty"`
	VideoURL string `json:"video_url,omitempty"`
}

type GamesListData struct {
	Title string      `json:"title,omitempty"`
	Games []GameEntry `json:"games"`
}

type Episode struct {
	Season      int      `json:"season,omitempty"`
	Episode     int      `json:"episode,omitempty"`
	Title       string   `json:"title,omitempty"`
	AirDate     string   `json:"air_date,omitempty"`
	Guests      []string `json:"guests,omitempty"`
	VideoURL    string   `json:"video_url,omitempty"`
	Description string   `json:"description,omitempty"`
}

type EpisodesListData struct {
	Title    string    `json:"title,omitempty"`
	Episodes []Episode `json:"episodes"`
}

type Participant struct {
	PersonID      string `json:"person_id,omitempty"`
	Name          string `json:"name"`
	Role          string `json:"role,omitempty"`
	FromYear      int    `json:"from_year,omitempty"`
	ToYear        int    `json:"to_year,omitempty"`
	EpisodesCount int    `json:"episodes_count,omitempty"`
}

type ParticipantsData struct {
	Title        string        `json:"title,omitempty"`
	Participants []Participant `json:"participants"`
}

// Quiz question answer kinds.
const (
	QuestionSingle   = "single"
	QuestionMultiple = "multiple"
	QuestionText     = "text"
)

type QuizOption struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// QuizQuestion holds Options for single/multiple questions and
// CorrectAnswer for text questions; switching kinds discards the other
// representation (a deliberate, lossy transition).
type QuizQuestion struct {
	ID            int          `json:"id"`
	Type          string       `json:"type"`
	Question      string       `json:"question"`
	Image         string       `json:"image,omitempty"`
	Options       []QuizOption `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer,omitempty"`
	Explanation   string       `json:"explanation,omitempty"`
}

type QuizQuestionsData struct {
	Questions []QuizQuestion `json:"questions"`
}

// QuizResult score ranges are stored as entered; overlaps and gaps are not
// validated here.
type QuizResult struct {
	MinScore    int    `json:"min_score"`
	MaxScore    int    `json:"max_score"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

type QuizResultsData struct {
	Results []QuizResult `json:"results"`
}

// PresentationData is all a system module carries in its own payload:
// style variant, size and a title override. The content comes from the
// parent document.
type PresentationData struct {
	Style string `json:"style,omitempty"`
	Size  string `json:"size,omitempty"`
	Title string `json:"title,omitempty"`
}

// UnknownData preserves the payload of unrecognized module types.
type UnknownData struct {
	Raw map[string]any
}

func (HeroCardData) moduleData()      {}
func (TextBlockData) moduleData()     {}
func (TimelineData) moduleData()      {}
func (TagsData) moduleData()          {}
func (TableData) moduleData()         {}
func (GalleryData) moduleData()       {}
func (VideoData) moduleData()         {}
func (QuoteData) moduleData()         {}
func (TeamMembersData) moduleData()   {}
func (TVAppearancesData) moduleData() {}
func (GamesListData) moduleData()     {}
func (EpisodesListData) moduleData()  {}
func (ParticipantsData) moduleData()  {}
func (QuizQuestionsData) moduleData() {}
func (QuizResultsData) moduleData()   {}
func (PresentationData) moduleData()  {}
func (UnknownData) moduleData()       {}

// Decode interprets a module's payload per its type tag. Unrecognized
// types yield UnknownData carrying the raw payload.
func Decode(m Module) (TypedData, error) {
	switch m.Type {
	case TypeHeroCard:
		return decodeInto[HeroCardData](m)
	case TypeTextBlock:
		return decodeInto[TextBlockData](m)
	case TypeTimeline:
		return decodeInto[TimelineData](m)
	case TypeTags:
		return decodeInto[TagsData](m)
	case TypeTable:
		return decodeInto[TableData](m)
	case TypeGallery:
		return decodeInto[GalleryData](m)
	case TypeVideo:
		return decodeInto[VideoData](m)
	case TypeQuote:
		return decodeInto[QuoteData](m)
	case TypeTeamMembers:
		return decodeInto[TeamMembersData](m)
	case TypeTVAppearances:
		return decodeInto[TVAppearancesData](m)
	case TypeGamesList:
		return decodeInto[GamesListData](m)
	case TypeEpisodesList:
		return decodeInto[EpisodesListData](m)
	case TypeParticipants:
		return decodeInto[ParticipantsData](m)
	case TypeQuizQuestions:
		return decodeInto[QuizQuestionsData](m)
	case TypeQuizResults:
		return decodeInto[QuizResultsData](m)
	case TypePosterPhoto, TypeFactsTable, TypeRatingWidget, TypeTagsCloud, TypeSocialLinks:
		return decodeInto[PresentationData](m)
	default:
		return UnknownData{Raw: m.Data}, nil
	}
}

func decodeInto[T TypedData](m Module) (TypedData, error) {
	raw, err := json.Marshal(m.Data)
	if err != nil {
		return nil, fmt.Errorf("encode module %s data: %w", m.ID, err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s module %s: %w", m.Type, m.ID, err)
	}
	return out, nil
}

// EncodeData converts a typed payload back into the loose map form a
// Module carries on the wire.
func EncodeData(d TypedData) (map[string]any, error) {
	if u, ok := d.(UnknownData); ok {
		return u.Raw, nil
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
