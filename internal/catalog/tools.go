package catalog

import (
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"sigandsys.dev/internal/content"
	"sigandsys.dev/internal/models"
)

// RecentLimit is how many tools the updates list shows
const RecentLimit = 5

// undatedTool is the date assumed for tools with neither updated nor added
const undatedTool = "2025-01-01"

// FilterTools keeps tools in category (or any category for "all" or "")
// whose name, description or a tag contains term, ignoring case.
func FilterTools(tools []models.Tool, category, term string) []models.Tool {
	category = strings.TrimSpace(category)
	term = normalize(term)

	return nonNil(lo.Filter(tools, func(t models.Tool, _ int) bool {
		if TopicActive(category) && t.Category != category {
			return false
		}
		if term == "" {
			return true
		}
		return contains(t.Name, term) || contains(t.Description, term) || anyContains(t.Tags, term)
	}))
}

// Categories lists the distinct tool categories in first-seen order
func Categories(tools []models.Tool) []string {
	return lo.Uniq(lo.FilterMap(tools, func(t models.Tool, _ int) (string, bool) {
		return t.Category, t.Category != ""
	}))
}

// RecentUpdates returns the n most recently updated or added tools.
// The input slice is not reordered.
func RecentUpdates(tools []models.Tool, n int) []models.ToolUpdate {
	sorted := slices.Clone(tools)
	slices.SortStableFunc(sorted, func(a, b models.Tool) int {
		return toolDate(b).Compare(toolDate(a))
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	return nonNil(lo.Map(sorted, func(t models.Tool, _ int) models.ToolUpdate {
		return models.ToolUpdate{Name: t.Name, Date: lastChange(t)}
	}))
}

func lastChange(t models.Tool) string {
	if t.Updated != "" {
		return t.Updated
	}
	return t.Added
}

func toolDate(t models.Tool) time.Time {
	s := lastChange(t)
	if s == "" {
		s = undatedTool
	}
	return content.ParseDate(s)
}
