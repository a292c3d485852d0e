package models

import "time"

// Article represents a blog post loaded from a content document
type Article struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Author  string   `json:"author"`
	Date    string   `json:"date"`
	Excerpt string   `json:"excerpt"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`

	// Published is Date parsed at load time; zero when Date is missing or unparsable
	Published time.Time `json:"-"`
}

// ArticlePage is a paginated slice of articles sent to the client
type ArticlePage struct {
	Articles []Article `json:"articles"`
	Total    int       `json:"total"`
	Shown    int       `json:"shown"`
	HasMore  bool      `json:"has_more"`
	Query    string    `json:"query,omitempty"`
	Topic    string    `json:"topic,omitempty"`
}

// TopicCount is a tag with the number of articles carrying it
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}
