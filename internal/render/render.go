// Package render turns catalog views into HTML fragments.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"slices"
	"sort"
	"strconv"

	"sigandsys.dev/internal/catalog"
	"sigandsys.dev/internal/content"
	"sigandsys.dev/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// DateLayout is how article and tool dates are displayed
const DateLayout = "Jan 2, 2006"

// Renderer executes the page fragment templates
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates
func New() (*Renderer, error) {
	tmpl, err := template.New("render").Funcs(template.FuncMap{
		"formatDate": FormatDate,
		"markup":     markup,
		"notLast":    notLast,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// ArticleList is the data behind the article fragment
type ArticleList struct {
	catalog.Snapshot
	BasePath string
	Shown    int
}

// MoreURL links to the same list with one more page revealed
func (l ArticleList) MoreURL() string {
	return l.url(l.Shown+catalog.PageSize, l.openIDs())
}

// ToggleURL links to the same list with id expanded or collapsed
func (l ArticleList) ToggleURL(id string) string {
	open := l.openIDs()
	if i := slices.Index(open, id); i >= 0 {
		open = slices.Delete(open, i, i+1)
	} else {
		open = append(open, id)
		sort.Strings(open)
	}
	return l.url(l.Shown, open)
}

func (l ArticleList) openIDs() []string {
	ids := make([]string, 0, len(l.Expanded))
	for id := range l.Expanded {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (l ArticleList) url(shown int, open []string) string {
	q := url.Values{}
	if l.Term != "" {
		q.Set("q", l.Term)
	}
	if l.Topic != "" {
		q.Set("topic", l.Topic)
	} else if shown > catalog.PageSize {
		q.Set("shown", strconv.Itoa(shown))
	}
	for _, id := range open {
		q.Add("open", id)
	}
	if len(q) == 0 {
		return l.BasePath
	}
	return l.BasePath + "?" + q.Encode()
}

// ToolGrid is the data behind the tools fragment
type ToolGrid struct {
	Tools  []models.Tool
	Banner *models.AdEntry
}

// Articles writes the article list, its empty state, and the load more link
func (r *Renderer) Articles(w io.Writer, list ArticleList) error {
	return r.tmpl.ExecuteTemplate(w, "articles", list)
}

// Tools writes the tool grid with the banner between consecutive cards
func (r *Renderer) Tools(w io.Writer, grid ToolGrid) error {
	return r.tmpl.ExecuteTemplate(w, "tools", grid)
}

// Updates writes the recent tool updates list
func (r *Renderer) Updates(w io.Writer, updates []models.ToolUpdate) error {
	return r.tmpl.ExecuteTemplate(w, "updates", updates)
}

// FormatDate renders a content date for display, "Recently" when unknown
func FormatDate(s string) string {
	t := content.ParseDate(s)
	if t.IsZero() {
		return "Recently"
	}
	return t.Format(DateLayout)
}

// markup passes article bodies through unescaped; they come from our own content files
func markup(s string) template.HTML {
	return template.HTML(s)
}

func notLast(i int, tools []models.Tool) bool {
	return i < len(tools)-1
}
