package content

import (
	"context"

	"sigandsys.dev/internal/models"
)

// LoadTools fetches and decodes tool documents, keeping document order.
// A document may be an array, a single tool, or {"tools": [...]}.
func (l *Loader) LoadTools(ctx context.Context, locations []string) []models.Tool {
	result := l.FetchAll(ctx, locations)

	var tools []models.Tool
	for _, doc := range result.Documents {
		batch, skipped, err := Decode[models.Tool](doc.Data, "tools")
		if err != nil {
			l.logger.Warn().Err(err).Str("location", doc.Location).Msg("skipping unparsable tool document")
			continue
		}
		for _, e := range skipped {
			l.logger.Warn().Err(e).Str("location", doc.Location).Msg("skipping malformed tool")
		}
		for _, t := range batch {
			if t.Tags == nil {
				t.Tags = []string{}
			}
			tools = append(tools, t)
		}
	}

	l.logger.Debug().Int("tools", len(tools)).Msg("tools loaded")
	return tools
}
