package services

import (
	"sigandsys.dev/internal/catalog"
	"sigandsys.dev/internal/models"
)

// ToolSource provides the current tool snapshot
type ToolSource interface {
	Tools() []models.Tool
}

// ToolService handles tool-related operations
type ToolService struct {
	source ToolSource
}

// NewToolService creates a new ToolService
func NewToolService(source ToolSource) *ToolService {
	return &ToolService{source: source}
}

// GetAll returns all tools in document order
func (s *ToolService) GetAll() []models.Tool {
	return s.source.Tools()
}

// Filter returns tools in category matching term
func (s *ToolService) Filter(category, term string) []models.Tool {
	return catalog.FilterTools(s.source.Tools(), category, term)
}

// Categories returns the distinct tool categories
func (s *ToolService) Categories() []string {
	return catalog.Categories(s.source.Tools())
}

// RecentUpdates returns the most recently changed tools
func (s *ToolService) RecentUpdates() []models.ToolUpdate {
	return catalog.RecentUpdates(s.source.Tools(), catalog.RecentLimit)
}
