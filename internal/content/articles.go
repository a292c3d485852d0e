package content

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/net/html"

	"sigandsys.dev/internal/models"
)

// excerptLength is the rune length of excerpts derived from content
const excerptLength = 200

// LoadArticles fetches locations, decodes each document and returns the
// normalized article list. Bad documents are skipped, never surfaced.
func (l *Loader) LoadArticles(ctx context.Context, locations []string) []models.Article {
	result := l.FetchAll(ctx, locations)

	batches := make([][]models.Article, 0, len(result.Documents))
	for _, doc := range result.Documents {
		articles, skipped, err := Decode[models.Article](doc.Data, "articles")
		if err != nil {
			l.logger.Warn().Err(err).Str("location", doc.Location).Msg("skipping unparsable article document")
			continue
		}
		for _, e := range skipped {
			l.logger.Warn().Err(e).Str("location", doc.Location).Msg("skipping malformed article")
		}
		batches = append(batches, articles)
	}

	articles := NormalizeArticles(batches)
	l.logger.Debug().Int("documents", len(result.Documents)).Int("articles", len(articles)).Msg("articles loaded")
	return articles
}

// NormalizeArticles flattens batches, drops entries without an id and
// repeated ids (first wins), fills missing excerpts and sorts newest first.
// Articles whose date does not parse sort after every dated article;
// otherwise input order is kept.
func NormalizeArticles(batches [][]models.Article) []models.Article {
	seen := make(map[string]struct{})
	var out []models.Article

	for _, batch := range batches {
		for _, a := range batch {
			a.ID = strings.TrimSpace(a.ID)
			if a.ID == "" {
				continue
			}
			if _, dup := seen[a.ID]; dup {
				continue
			}
			seen[a.ID] = struct{}{}

			a.Published = ParseDate(a.Date)
			if strings.TrimSpace(a.Excerpt) == "" {
				a.Excerpt = Excerpt(a.Content, excerptLength)
			}
			if a.Tags == nil {
				a.Tags = []string{}
			}
			out = append(out, a)
		}
	}

	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders articles by descending publication date, undated last
func SortNewestFirst(articles []models.Article) {
	slices.SortStableFunc(articles, func(a, b models.Article) int {
		az, bz := a.Published.IsZero(), b.Published.IsZero()
		switch {
		case az && bz:
			return 0
		case az:
			return 1
		case bz:
			return -1
		}
		return b.Published.Compare(a.Published)
	})
}

// ParseDate parses a calendar date in any common layout as UTC.
// It returns the zero time when s is empty or unparsable.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Excerpt returns the first n runes of the visible text in markup
func Excerpt(markup string, n int) string {
	text := []rune(visibleText(markup))
	if len(text) <= n {
		return string(text)
	}
	cut := strings.TrimRight(string(text[:n]), " ")
	if i := strings.LastIndexByte(cut, ' '); i > n/2 {
		cut = cut[:i]
	}
	return cut + "…"
}

func visibleText(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var (
		b    strings.Builder
		skip int
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			if name, _ := z.TagName(); isHidden(string(name)) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); isHidden(string(name)) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func isHidden(tag string) bool {
	return tag == "script" || tag == "style"
}
