package model

import (
	"net/url"
	"testing"
	"time"
)

func samplePosts() []Post {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []Post{
		{ID: "1", Title: "Banana Bread", Content: "<p>A recipe</p>", CreatedAt: base},
		{ID: "2", Title: "Apple Pie", Content: "<p>Another recipe with banana hints</p>", CreatedAt: base.Add(48 * time.Hour)},
		{ID: "3", Title: "Cherry Tart", Content: "<p>Dessert</p>", CreatedAt: base.Add(24 * time.Hour)},
	}
}

func TestFilterPosts(t *testing.T) {
	posts := samplePosts()

	t.Run("Empty query returns all posts unchanged", func(t *testing.T) {
		got := FilterPosts(posts, "")
		if len(got) != len(posts) {
			t.Fatalf("Expected %d posts, got %d", len(posts), len(got))
		}
		for i := range posts {
			if got[i].ID != posts[i].ID {
				t.Errorf("Expected post %s at index %d, got %s", posts[i].ID, i, got[i].ID)
			}
		}
	})

	t.Run("Matches title case-insensitively", func(t *testing.T) {
		got := FilterPosts(posts, "APPLE")
		if len(got) != 1 {
			t.Fatalf("Expected 1 post, got %d", len(got))
		}
		if got[0].ID != "2" {
			t.Errorf("Expected post 2, got %s", got[0].ID)
		}
	})

	t.Run("Matches content as well as title", func(t *testing.T) {
		got := FilterPosts(posts, "banana")
		if len(got) != 2 {
			t.Fatalf("Expected 2 posts, got %d", len(got))
		}
	})

	t.Run("No matches returns empty slice", func(t *testing.T) {
		got := FilterPosts(posts, "durian")
		if len(got) != 0 {
			t.Errorf("Expected no posts, got %d", len(got))
		}
	})
}

func TestSortPosts(t *testing.T) {
	posts := samplePosts()

	t.Run("Default order is newest first", func(t *testing.T) {
		got := SortPosts(posts, "")
		if got[0].ID != "2" || got[1].ID != "3" || got[2].ID != "1" {
			t.Errorf("Expected order 2,3,1, got %s,%s,%s", got[0].ID, got[1].ID, got[2].ID)
		}
	})

	t.Run("Oldest first", func(t *testing.T) {
		got := SortPosts(posts, SortOldNew)
		if got[0].ID != "1" || got[2].ID != "2" {
			t.Errorf("Expected order 1,3,2, got %s,%s,%s", got[0].ID, got[1].ID, got[2].ID)
		}
	})

	t.Run("Title A-Z", func(t *testing.T) {
		got := SortPosts(posts, SortTitleAZ)
		if got[0].Title != "Apple Pie" || got[2].Title != "Cherry Tart" {
			t.Errorf("Unexpected order: %s, %s, %s", got[0].Title, got[1].Title, got[2].Title)
		}
	})

	t.Run("Title Z-A", func(t *testing.T) {
		got := SortPosts(posts, SortTitleZA)
		if got[0].Title != "Cherry Tart" || got[2].Title != "Apple Pie" {
			t.Errorf("Unexpected order: %s, %s, %s", got[0].Title, got[1].Title, got[2].Title)
		}
	})

	t.Run("Does not mutate the input", func(t *testing.T) {
		before := posts[0].ID
		_ = SortPosts(posts, SortTitleZA)
		if posts[0].ID != before {
			t.Error("Expected input slice to be untouched")
		}
	})

	t.Run("Equal titles keep relative order", func(t *testing.T) {
		same := []Post{
			{ID: "a", Title: "Same", CreatedAt: time.Now()},
			{ID: "b", Title: "Same", CreatedAt: time.Now()},
		}
		got := SortPosts(same, SortTitleAZ)
		if got[0].ID != "a" || got[1].ID != "b" {
			t.Errorf("Expected stable order a,b, got %s,%s", got[0].ID, got[1].ID)
		}
	})
}

func TestDraftValidate(t *testing.T) {
	t.Run("Complete draft passes", func(t *testing.T) {
		d := Draft{Title: "Hello", Content: "<p>World</p>"}
		if err := d.Validate(); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("Missing title fails", func(t *testing.T) {
		d := Draft{Content: "<p>World</p>"}
		if err := d.Validate(); err != ErrDraftIncomplete {
			t.Errorf("Expected ErrDraftIncomplete, got %v", err)
		}
	})

	t.Run("Missing content fails", func(t *testing.T) {
		d := Draft{Title: "Hello"}
		if err := d.Validate(); err != ErrDraftIncomplete {
			t.Errorf("Expected ErrDraftIncomplete, got %v", err)
		}
	})
}

func TestPreviewRoundTrip(t *testing.T) {
	d := Draft{
		Title:      "Hello, World!",
		Slug:       "hello-world",
		Content:    "<p>Some content & more</p>",
		Published:  true,
		CoverImage: "https://example.com/img.png",
	}

	encoded := d.EncodePreview()

	// The handler receives the value already URL-decoded by the query parser.
	decodedParam, err := url.QueryUnescape(encoded)
	if err != nil {
		t.Fatalf("Failed to unescape preview data: %v", err)
	}

	got, err := DecodePreview(decodedParam)
	if err != nil {
		t.Fatalf("Failed to decode preview data: %v", err)
	}
	if *got != d {
		t.Errorf("Expected %+v, got %+v", d, *got)
	}
}

func TestDecodePreviewErrors(t *testing.T) {
	t.Run("Empty data", func(t *testing.T) {
		if _, err := DecodePreview(""); err == nil {
			t.Error("Expected error for empty data")
		}
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		if _, err := DecodePreview("{not json"); err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})
}

func TestPostSummary(t *testing.T) {
	t.Run("Prefers excerpt", func(t *testing.T) {
		p := Post{Excerpt: "Short version", Content: "<p>Long version</p>"}
		if got := p.Summary(); got != "Short version" {
			t.Errorf("Expected excerpt, got %q", got)
		}
	})

	t.Run("Strips tags from content", func(t *testing.T) {
		p := Post{Content: "<p>Hello <b>world</b></p>"}
		if got := p.Summary(); got != "Hello world" {
			t.Errorf("Expected plain text, got %q", got)
		}
	})
}
