package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// Draft is an uncommitted working copy of a Post held by the editor. It is
// not persisted server-side until an explicit save.
type Draft struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Content    string `json:"content"`
	Published  bool   `json:"published"`
	CoverImage string `json:"coverImage"`
}

var ErrDraftIncomplete = errors.New("title and content are required")

// Validate enforces the local save preconditions. It must pass before any
// network call is made.
func (d Draft) Validate() error {
	if d.Title == "" || d.Content == "" {
		return ErrDraftIncomplete
	}
	return nil
}

// EncodePreview serializes the draft into the URL-encoded JSON form carried
// by the preview view's "data" query parameter.
func (d Draft) EncodePreview() string {
	data, _ := json.Marshal(d)
	return url.QueryEscape(string(data))
}

// DecodePreview parses a preview query parameter value as produced by
// EncodePreview. The value is expected to be already URL-decoded, which is
// what net/url's query accessors return.
func DecodePreview(raw string) (*Draft, error) {
	if raw == "" {
		return nil, errors.New("empty preview data")
	}

	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, fmt.Errorf("failed to parse preview data: %w", err)
	}
	return &d, nil
}

// DraftOf seeds a Draft from an existing Post for editing.
func DraftOf(p *Post) Draft {
	return Draft{
		Title:      p.Title,
		Slug:       p.Slug,
		Content:    p.Content,
		Published:  p.Published,
		CoverImage: p.CoverImage,
	}
}
