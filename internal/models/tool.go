package models

// Tool represents an entry in the tools catalog
type Tool struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	URL           string   `json:"url"`
	Image         string   `json:"image,omitempty"`
	Documentation string   `json:"documentation,omitempty"`
	HowToUse      string   `json:"howToUse,omitempty"`
	Price         string   `json:"price,omitempty"`
	Added         string   `json:"added,omitempty"`
	Updated       string   `json:"updated,omitempty"`
}

// ToolUpdate is a recently added or updated tool
type ToolUpdate struct {
	Name string `json:"name"`
	Date string `json:"date"`
}
