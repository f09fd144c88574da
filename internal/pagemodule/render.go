package pagemodule

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// DocumentContext is the slice of a parent document the renderer needs.
// System modules read these fields; content modules never do.
type DocumentContext struct {
	Title       string
	ContentType string
	PosterURL   string
	PosterAlt   string
	Facts       []FactItem
	Rating      *float64
	VotesCount  int
	Tags        []string
	SocialLinks map[string]string
}

var htmlMinifier = func() *minify.M {
	m := minify.New()
	// Stored HTML must survive rendering byte-recognizable; stripping
	// attribute quotes would rewrite what the editor saved.
	m.Add("text/html", &mhtml.Minifier{KeepQuotes: true})
	return m
}()

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Render produces the read-only public-facing HTML for one module. The
// module's type alone decides the source family: content modules render
// from module.Data, system modules from the parent document. A module with
// nothing to show returns ok=false and no output; callers must tolerate a
// module contributing nothing.
func Render(m Module, doc DocumentContext) (template.HTML, bool) {
	if !m.Visible {
		return "", false
	}
	if IsSystemType(m.Type) {
		return renderSystem(m, doc)
	}
	d, err := Decode(Normalize(m))
	if err != nil {
		return "", false
	}
	var buf bytes.Buffer
	var ok bool
	switch v := d.(type) {
	case TextBlockData:
		ok = renderTextBlock(&buf, m, v)
	case TimelineData:
		ok = renderTemplate(&buf, tplTimeline, m, v, len(v.Events) > 0)
	case TagsData:
		ok = renderTemplate(&buf, tplTags, m, v, len(v.Tags) > 0)
	case TableData:
		ok = renderTemplate(&buf, tplTable, m, v, len(v.Rows) > 0)
	case GalleryData:
		ok = renderTemplate(&buf, tplGallery, m, v, len(v.Items) > 0)
	case VideoData:
		ok = renderTemplate(&buf, tplVideo, m, v, v.URL != "")
	case QuoteData:
		ok = renderTemplate(&buf, tplQuote, m, v, v.Text != "")
	case HeroCardData:
		ok = renderTemplate(&buf, tplHeroCard, m, v, v.Photo != "" || len(v.Facts) > 0)
	case TeamMembersData:
		ok = renderTemplate(&buf, tplTeamMembers, m, v, len(v.Members) > 0)
	case EpisodesListData:
		ok = renderTemplate(&buf, tplEpisodes, m, v, len(v.Episodes) > 0)
	case ParticipantsData:
		ok = renderTemplate(&buf, tplParticipants, m, v, len(v.Participants) > 0)
	case TVAppearancesData:
		ok = renderTemplate(&buf, tplTVAppearances, m, v, len(v.Appearances) > 0)
	case GamesListData:
		ok = renderTemplate(&buf, tplGames, m, v, len(v.Games) > 0)
	default:
		// Widget types (best_articles, quiz blocks, toc, unknown) have no
		// static public rendering here.
		return "", false
	}
	if !ok {
		return "", false
	}
	return minified(buf.String()), true
}

// RenderAll renders the visible modules of a document in order, skipping
// those that contribute nothing.
func RenderAll(l List, doc DocumentContext) []template.HTML {
	out := make([]template.HTML, 0, len(l))
	for _, m := range l {
		if frag, ok := Render(m, doc); ok {
			out = append(out, frag)
		}
	}
	return out
}

func renderSystem(m Module, doc DocumentContext) (template.HTML, bool) {
	var pres PresentationData
	if d, err := Decode(m); err == nil {
		if p, ok := d.(PresentationData); ok {
			pres = p
		}
	}
	style := pres.Style
	if style == "" {
		if ti, ok := LookupType(m.Type); ok {
			style = ti.DefaultStyle
		}
	}
	title := pres.Title
	if title == "" {
		title = DisplayName(m)
	}
	ctx := systemContext{Doc: doc, Style: style, Size: pres.Size, Title: title}

	var buf bytes.Buffer
	var ok bool
	switch m.Type {
	case TypePosterPhoto:
		ok = renderSystemTemplate(&buf, tplPoster, ctx, doc.PosterURL != "")
	case TypeFactsTable:
		ok = renderSystemTemplate(&buf, tplFacts, ctx, len(doc.Facts) > 0)
	case TypeRatingWidget:
		ok = renderSystemTemplate(&buf, tplRating, ctx, doc.Rating != nil)
	case TypeTagsCloud:
		ok = renderSystemTemplate(&buf, tplTagsCloud, ctx, len(doc.Tags) > 0)
	case TypeSocialLinks:
		ok = renderSystemTemplate(&buf, tplSocial, ctx, len(doc.SocialLinks) > 0)
	}
	if !ok {
		return "", false
	}
	return minified(buf.String()), true
}

type moduleContext struct {
	Module Module
	Title  string
	Data   any
}

type systemContext struct {
	Doc   DocumentContext
	Style string
	Size  string
	Title string
}

func renderTextBlock(buf *bytes.Buffer, m Module, d TextBlockData) bool {
	if strings.TrimSpace(d.Content) == "" {
		return false
	}
	content := d.Content
	if d.Format == "markdown" {
		var md bytes.Buffer
		if err := markdown.Convert([]byte(d.Content), &md); err == nil {
			content = md.String()
		}
	}
	ctx := struct {
		Title   string
		Content template.HTML
	}{Title: d.Title, Content: template.HTML(content)}
	return tplTextBlock.Execute(buf, ctx) == nil
}

func renderTemplate(buf *bytes.Buffer, tpl *template.Template, m Module, data any, hasContent bool) bool {
	if !hasContent {
		return false
	}
	ctx := moduleContext{Module: m, Title: moduleHeading(m, data), Data: data}
	return tpl.Execute(buf, ctx) == nil
}

func renderSystemTemplate(buf *bytes.Buffer, tpl *template.Template, ctx systemContext, hasContent bool) bool {
	if !hasContent {
		return false
	}
	return tpl.Execute(buf, ctx) == nil
}

// moduleHeading prefers the payload's own title, then the module override,
// then nothing (type names are editor chrome, not public output).
func moduleHeading(m Module, data any) string {
	switch v := data.(type) {
	case TimelineData:
		if v.Title != "" {
			return v.Title
		}
	case TableData:
		if v.Title != "" {
			return v.Title
		}
	case GalleryData:
		if v.Title != "" {
			return v.Title
		}
	case TeamMembersData:
		if v.Title != "" {
			return v.Title
		}
	case EpisodesListData:
		if v.Title != "" {
			return v.Title
		}
	case ParticipantsData:
		if v.Title != "" {
			return v.Title
		}
	case TVAppearancesData:
		if v.Title != "" {
			return v.Title
		}
	case GamesListData:
		if v.Title != "" {
			return v.Title
		}
	case VideoData:
		if v.Title != "" {
			return v.Title
		}
	}
	return m.Title
}

func minified(s string) template.HTML {
	out, err := htmlMinifier.String("text/html", s)
	if err != nil {
		return template.HTML(s)
	}
	return template.HTML(out)
}

func mustTpl(name, text string) *template.Template {
	return template.Must(template.New(name).Parse(text))
}

var (
	tplTextBlock = mustTpl("text_block", `<section class="module module-text">{{if .Title}}<h2>{{.Title}}</h2>{{end}}<div class="text-content">{{.Content}}</div></section>`)

	tplTimeline = mustTpl("timeline", `<section class="module module-timeline">{{if .Title}}<h2>{{.Title}}</h2>{{end}}<ul class="timeline">{{range .Data.Events}}<li>{{if .Year}}<span class="year">{{.Year}}</span>{{else if .Date}}<span class="year">{{.Date}}</span>{{end}}<strong>{{.Title}}</strong>{{if .Description}}<p>{{.Description}}</p>{{end}}</li>{{end}}</ul></section>`)

	tplTags = mustTpl("tags", `<section class="module module-tags"><ul class="tags">{{range .Data.Tags}}<li>{{.}}</li>{{end}}</ul></section>`)

	tplTable = mustTpl("table", `<section class="module module-table">{{if .Title}}<h2>{{.Title}}</h2>{{end}}<table>{{if .Data.HasHeaders}}<thead><tr>{{range .Data.Headers}}<th>{{.}}</th>{{end}}</tr></thead>{{end}}<tbody>{{range .Data.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody></table></section>`)

	tplGallery = mustTpl("gallery", `<section class="module module-gallery">{{if .Title}}<h2>{{.Title}}</h2>{{end}}<div class="gallery">{{range .Data.Items}}<figure><img src="{{.URL}}" alt="{{.Alt}}">{{if .Caption}}<figcaption>{{.Caption}}</figcaption>{{end}}</figure>{{end}}</div></section>`)

	tplVideo = mustTpl("video", `<section class="module module-video">{{if .Title}}<h2>{{.Title}}</h2>{{end}}<div class="video"><a href="{{.Data.URL}}">{{if .Data.Caption}}{{.Data.Caption}}{{else}}{{.Data.URL}}{{end}}</a></div></section>`)

	tplQuote = mustTpl("quote", `<section class="module module-quote quote-{{if .Data.Style}}{{.Data.Style}}{{else}}plain{{end}}"><blockquote><p>{{.Data.Text}}</p>{{if .Data.Author}}<cite>{{.Data.Author}}{{if .Data.Source}}, {{.Data.Source}}{{end}}</cite>{{end}}</blockquote></section>`)

	tplHeroCard = mustTpl("hero_card", `<section class="module module-hero">{{if .Data.Photo}}<img src="{{.Data.Photo}}" alt="{{.Data.PhotoAlt}}">{{end}}{{if .Data.Facts}}<dl>{{range .Data.Facts}}<dt>{{.Label}}</dt><dd>{{if .Link}}<a href="{{.Link}}">{{.Value}}</a>{{else}}{{.Value}}{{end}}</dd>{{end}}</dl>{{end}}</section>`)

	tplTeamMembers = mustTpl("team_members", `<section class="module module-members">{{if .Title}}<h2>{{.Title}}</h2>{{end}}<ul>{{range .Data.Members}}<li><strong>{{.Name}}</strong>{{if .Role}} — {{.Role}}{{end}}{{if not .Active}} <span class="left">(покинул команду)</span>{{end}}</li>{{end}}</ul></section>`)

	tplEpisodes = mustTpl("episodes_list", `<section class="module module-episodes">{{if .Title}}<h2>{{.Title}}</h2>{{end}}<ol>{{range .Data.Episodes}}<li>{{if .Season}}С{{.Season}}{{if .Episode}}Э{{.Episode}}{{end}}: {{end}}{{.Title}}{{if .AirDate}} ({{.AirDate}}){{end}}</li>{{end}}</ol></section>`)

	tplParticipants = mustTpl("participants", `<section class="module module-participants">{{if .Title}}<h2>{{.Title}}</h2>{{end}}<ul>{{range .Data.Participants}}<li><strong>{{.Name}}</strong>{{if .Role}} — {{.Role}}{{end}}</li>{{end}}</ul></section>`)

	tplTVAppearances = mustTpl("tv_appearances", `<section class="module module-tv">{{if .Title}}<h2>{{.Title}}</h2>{{end}}<table><tbody>{{range .Data.Appearances}}<tr><td>{{.Date}}</td><td>{{.League}}</td><td>{{.Episode}}</td><td>{{.Result}}</td></tr>{{end}}</tbody></table></section>`)

	tplGames = mustTpl("games_list", `<section class="module module-games">{{if .Title}}<h2>{{.Title}}</h2>{{end}}<ul>{{range .Data.Games}}<li>{{.Date}} {{.Opponent}}{{if .Result}} — {{.Result}}{{end}}</li>{{end}}</ul></section>`)

	tplPoster = mustTpl("poster_photo", `<section class="module module-poster poster-{{.Style}}{{if .Size}} poster-{{.Size}}{{end}}"><img src="{{.Doc.PosterURL}}" alt="{{if .Doc.PosterAlt}}{{.Doc.PosterAlt}}{{else}}{{.Doc.Title}}{{end}}"></section>`)

	tplFacts = mustTpl("facts_table", `<section class="module module-facts facts-{{.Style}}"><h2>{{.Title}}</h2>{{if eq .Style "table"}}<table><tbody>{{range .Doc.Facts}}<tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>{{end}}</tbody></table>{{else}}<dl>{{range .Doc.Facts}}<dt>{{.Label}}</dt><dd>{{.Value}}</dd>{{end}}</dl>{{end}}</section>`)

	tplRating = mustTpl("rating_widget", `<section class="module module-rating rating-{{.Style}}"><span class="value">{{.Doc.Rating}}</span>{{if .Doc.VotesCount}}<span class="votes">{{.Doc.VotesCount}}</span>{{end}}</section>`)

	tplTagsCloud = mustTpl("tags_cloud", `<section class="module module-tagscloud tags-{{.Style}}"><ul>{{range .Doc.Tags}}<li>{{.}}</li>{{end}}</ul></section>`)

	tplSocial = mustTpl("social_links", `<section class="module module-social"><ul>{{range $k, $v := .Doc.SocialLinks}}<li><a href="{{$v}}" rel="nofollow">{{$k}}</a></li>{{end}}</ul></section>`)
)
