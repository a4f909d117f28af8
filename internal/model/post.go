// Package model defines the data structures shared by the client and views.
package model

import (
	"html/template"
	"slices"
	"strings"
	"time"
)

type PostID string

// Post is the blog article entity as the remote API serves it. The API owns
// the lifecycle; everything here is a transient copy.
type Post struct {
	ID         PostID    `json:"_id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Content    string    `json:"content"`
	Excerpt    string    `json:"excerpt,omitempty"`
	CoverImage string    `json:"coverImage,omitempty"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// HTML returns the rich content for template rendering. The content comes
// from the rich-text editor and is trusted as-is.
func (p Post) HTML() template.HTML {
	return template.HTML(p.Content)
}

// Summary prefers the explicit excerpt and falls back to the first part of
// the content with tags stripped.
func (p Post) Summary() string {
	if p.Excerpt != "" {
		return p.Excerpt
	}

	plain := stripTags(p.Content)
	const max = 200
	if len(plain) > max {
		return strings.TrimSpace(plain[:max]) + "…"
	}
	return plain
}

func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Sort orders accepted by SortPosts. The zero/unknown order leaves the
// collection as-is.
const (
	SortNewOld = "new-old" // newest first (default)
	SortOldNew = "old-new"
	SortTitleAZ = "a-z"
	SortTitleZA = "z-a"
)

// FilterPosts returns the posts whose title or content contains the query,
// case-insensitively. An empty query returns the collection unchanged.
func FilterPosts(posts []Post, query string) []Post {
	if query == "" {
		return posts
	}

	q := strings.ToLower(query)
	filtered := make([]Post, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Content), q) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// SortPosts returns a sorted copy of posts. Title sorts are stable so that
// equal titles keep their relative order.
func SortPosts(posts []Post, order string) []Post {
	sorted := slices.Clone(posts)

	switch order {
	case SortOldNew:
		slices.SortStableFunc(sorted, func(a, b Post) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case SortTitleAZ:
		slices.SortStableFunc(sorted, func(a, b Post) int {
			return strings.Compare(a.Title, b.Title)
		})
	case SortTitleZA:
		slices.SortStableFunc(sorted, func(a, b Post) int {
			return -strings.Compare(a.Title, b.Title)
		})
	default:
		// Newest first.
		slices.SortStableFunc(sorted, func(a, b Post) int {
			return -a.CreatedAt.Compare(b.CreatedAt)
		})
	}

	return sorted
}
