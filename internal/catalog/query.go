// Package catalog holds the pure list transforms behind the article and
// tool pages: search, topic and category filters, pagination.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/samber/lo"

	"sigandsys.dev/internal/models"
)

// PageSize is the number of articles revealed per page
const PageSize = 6

// AllTopics resets the topic filter
const AllTopics = "all"

// Search keeps articles whose title, excerpt or a tag contains term, ignoring case.
// An empty term keeps everything.
func Search(articles []models.Article, term string) []models.Article {
	term = normalize(term)
	if term == "" {
		return articles
	}
	return lo.Filter(articles, func(a models.Article, _ int) bool {
		return contains(a.Title, term) || contains(a.Excerpt, term) || anyContains(a.Tags, term)
	})
}

// FilterTopic keeps articles tagged exactly with topic. "" and "all" keep everything.
func FilterTopic(articles []models.Article, topic string) []models.Article {
	if !TopicActive(topic) {
		return articles
	}
	topic = strings.TrimSpace(topic)
	return lo.Filter(articles, func(a models.Article, _ int) bool {
		return slices.Contains(a.Tags, topic)
	})
}

// TopicActive reports whether topic narrows the list
func TopicActive(topic string) bool {
	topic = strings.TrimSpace(topic)
	return topic != "" && !strings.EqualFold(topic, AllTopics)
}

// Paginate returns the first shown items and whether more remain
func Paginate[T any](items []T, shown int) ([]T, bool) {
	if shown < 0 {
		shown = 0
	}
	if shown >= len(items) {
		return items, false
	}
	return items[:shown], true
}

// Topics counts tags across articles, most used first then by name
func Topics(articles []models.Article) []models.TopicCount {
	counts := make(map[string]int)
	for _, a := range articles {
		for _, tag := range lo.Uniq(a.Tags) {
			if tag = strings.TrimSpace(tag); tag != "" {
				counts[tag]++
			}
		}
	}

	topics := lo.MapToSlice(counts, func(topic string, n int) models.TopicCount {
		return models.TopicCount{Topic: topic, Count: n}
	})
	slices.SortFunc(topics, func(a, b models.TopicCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Topic, b.Topic)
	})
	return topics
}

// Query builds one page of articles. An active topic shows the whole
// filtered set and ignores the search term; otherwise the search result
// is paginated to shown items (PageSize when shown is not positive).
func Query(articles []models.Article, term, topic string, shown int) models.ArticlePage {
	if shown <= 0 {
		shown = PageSize
	}

	if TopicActive(topic) {
		filtered := FilterTopic(articles, topic)
		return models.ArticlePage{
			Articles: nonNil(filtered),
			Total:    len(filtered),
			Shown:    len(filtered),
			Topic:    strings.TrimSpace(topic),
		}
	}

	filtered := Search(articles, term)
	page, more := Paginate(filtered, shown)
	return models.ArticlePage{
		Articles: nonNil(page),
		Total:    len(filtered),
		Shown:    len(page),
		HasMore:  more,
		Query:    strings.TrimSpace(term),
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func contains(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}

func anyContains(values []string, lowerTerm string) bool {
	return lo.SomeBy(values, func(v string) bool { return contains(v, lowerTerm) })
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
