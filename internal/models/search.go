package models

import "net/url"

// SearchResponse mirrors the envelope returned by the article search API.
// Unknown fields are ignored; any field may be absent or null.
type SearchResponse struct {
	Response struct {
		Docs []Doc `json:"docs"`
	} `json:"response"`
}

// Doc is a single document inside the search envelope.
type Doc struct {
	Abstract string `json:"abstract"`
	Headline struct {
		Main string `json:"main"`
	} `json:"headline"`
	Byline struct {
		Original string `json:"original"`
	} `json:"byline"`
	Multimedia []Media `json:"multimedia"`
}

// Media is one multimedia candidate attached to a document.
type Media struct {
	URL string `json:"url"`
}

// ResolveImageURL picks the first multimedia entry with a non-empty URL.
// Absolute URLs are used as-is; relative ones are joined onto base.
// Returns "" when no candidate has a URL.
func ResolveImageURL(media []Media, base string) string {
	for _, m := range media {
		if m.URL == "" {
			continue
		}
		if u, err := url.Parse(m.URL); err == nil && u.IsAbs() {
			return m.URL
		}
		return base + m.URL
	}
	return ""
}

// ArticleFromDoc converts a search document into a display article,
// resolving its image URL against base.
func ArticleFromDoc(d Doc, base string) Article {
	return Article{
		Title:    d.Headline.Main,
		Summary:  d.Abstract,
		Author:   d.Byline.Original,
		ImageURL: ResolveImageURL(d.Multimedia, base),
	}
}

// ArticlesFromDocs maps every document and keeps only those that resolved
// an image, preserving the response order.
func ArticlesFromDocs(docs []Doc, base string) []Article {
	out := make([]Article, 0, len(docs))
	for _, d := range docs {
		a := ArticleFromDoc(d, base)
		if a.HasImage() {
			out = append(out, a)
		}
	}
	return out
}
