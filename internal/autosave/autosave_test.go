package autosave

import (
	"path/filepath"
	"testing"

	"inkwell/internal/db"
	"inkwell/internal/model"
	"inkwell/internal/util/compression"
)

func TestKey(t *testing.T) {
	if got := Key("abc"); got != "inkwell:draft:abc" {
		t.Errorf("Expected inkwell:draft:abc, got %s", got)
	}
}

func testStoreRoundTrip(t *testing.T, store Store) {
	t.Helper()

	draft := model.Draft{
		Title:      "Recovered",
		Slug:       "recovered",
		Content:    "<p>work in progress</p>",
		Published:  false,
		CoverImage: "https://example.com/img.png",
	}
	key := Key("browser-1")

	t.Run("Load before save yields nil", func(t *testing.T) {
		got, err := store.Load(key)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil draft, got %+v", got)
		}
	})

	t.Run("Save then load", func(t *testing.T) {
		if err := store.Save(key, draft); err != nil {
			t.Fatalf("Failed to save draft: %v", err)
		}
		got, err := store.Load(key)
		if err != nil {
			t.Fatalf("Failed to load draft: %v", err)
		}
		if got == nil {
			t.Fatal("Expected a draft")
		}
		if *got != draft {
			t.Errorf("Expected %+v, got %+v", draft, *got)
		}
	})

	t.Run("Save overwrites", func(t *testing.T) {
		updated := draft
		updated.Title = "Recovered v2"
		if err := store.Save(key, updated); err != nil {
			t.Fatalf("Failed to save draft: %v", err)
		}
		got, err := store.Load(key)
		if err != nil {
			t.Fatalf("Failed to load draft: %v", err)
		}
		if got.Title != "Recovered v2" {
			t.Errorf("Expected updated title, got %q", got.Title)
		}
	})

	t.Run("Clear removes the draft", func(t *testing.T) {
		if err := store.Clear(key); err != nil {
			t.Fatalf("Failed to clear draft: %v", err)
		}
		got, err := store.Load(key)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil draft after clear, got %+v", got)
		}
	})

	t.Run("Keys are independent", func(t *testing.T) {
		other := Key("browser-2")
		if err := store.Save(other, draft); err != nil {
			t.Fatalf("Failed to save draft: %v", err)
		}
		got, err := store.Load(key)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got != nil {
			t.Error("Expected cleared key to stay empty")
		}
	})
}

func TestMemoryStore(t *testing.T) {
	testStoreRoundTrip(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	database := db.NewSQLite(filepath.Join(t.TempDir(), "drafts.db"))
	if err := database.Init(); err != nil {
		t.Fatalf("Failed to init database: %v", err)
	}
	defer database.Close()

	for _, tc := range []struct {
		name       string
		compressor compression.Compressor
	}{
		{"Zstd", compression.ZstdCompressor{}},
		{"Gzip", compression.GzipCompressor{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			testStoreRoundTrip(t, NewSQLiteStore(database, tc.compressor))
		})
	}
}
