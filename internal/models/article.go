package models

import "strings"

// Article is one displayable news item.
type Article struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Author   string `json:"author"`
	ImageURL string `json:"image_url"`
}

// HasImage reports whether the article carries a resolved image URL.
// Only articles with an image are persisted and displayed.
func (a Article) HasImage() bool {
	return a.ImageURL != ""
}

// FilterByTitle returns the subsequence of articles whose title contains
// query as a case-insensitive substring. An empty query matches everything,
// so the full set comes back in the original order.
func FilterByTitle(articles []Article, query string) []Article {
	q := strings.ToLower(query)
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if strings.Contains(strings.ToLower(a.Title), q) {
			out = append(out, a)
		}
	}
	return out
}
