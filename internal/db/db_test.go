package db

import (
	"path/filepath"
	"testing"
)

func TestSQLite(t *testing.T) {
	database := NewSQLite(filepath.Join(t.TempDir(), "test.db"))

	t.Run("Init creates the drafts table", func(t *testing.T) {
		if err := database.Init(); err != nil {
			t.Fatalf("Failed to init database: %v", err)
		}
		if database.Get() == nil {
			t.Fatal("Expected a live connection")
		}

		var name string
		row := database.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='drafts'`)
		if err := row.Scan(&name); err != nil {
			t.Fatalf("Expected drafts table: %v", err)
		}
	})

	t.Run("Exec and Query round trip", func(t *testing.T) {
		if _, err := database.Exec(`INSERT INTO drafts (key, payload) VALUES (?, ?)`, "k", []byte("v")); err != nil {
			t.Fatalf("Failed to insert: %v", err)
		}

		rows, err := database.Query(`SELECT key FROM drafts`)
		if err != nil {
			t.Fatalf("Failed to query: %v", err)
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			count++
		}
		if count != 1 {
			t.Errorf("Expected 1 row, got %d", count)
		}
	})

	t.Run("Close is idempotent on nil", func(t *testing.T) {
		empty := NewSQLite("unused")
		if err := empty.Close(); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	if err := database.Close(); err != nil {
		t.Errorf("Failed to close database: %v", err)
	}
}
