package autosave

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"inkwell/internal/db"
	"inkwell/internal/model"
	"inkwell/internal/util/compression"
)

// SQLiteStore persists drafts across front-end restarts. Payloads are JSON,
// compressed at rest.
type SQLiteStore struct {
	db         db.DB
	compressor compression.Compressor
}

func NewSQLiteStore(database db.DB, compressor compression.Compressor) *SQLiteStore {
	return &SQLiteStore{
		db:         database,
		compressor: compressor,
	}
}

func (s *SQLiteStore) Save(key string, draft model.Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("error encoding draft: %w", err)
	}

	compressed, err := s.compressor.Compress(payload)
	if err != nil {
		return fmt.Errorf("error compressing draft: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO drafts (key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, compressed, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("error saving draft: %w", err)
	}

	autosaveLogger.Debug().Str("key", key).Msg("Draft autosaved")
	return nil
}

func (s *SQLiteStore) Load(key string) (*model.Draft, error) {
	var compressed []byte
	row := s.db.QueryRow(`SELECT payload FROM drafts WHERE key = ?`, key)
	if err := row.Scan(&compressed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading draft: %w", err)
	}

	payload, err := s.compressor.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("error decompressing draft: %w", err)
	}

	var draft model.Draft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("error decoding draft: %w", err)
	}
	return &draft, nil
}

func (s *SQLiteStore) Clear(key string) error {
	if _, err := s.db.Exec(`DELETE FROM drafts WHERE key = ?`, key); err != nil {
		return fmt.Errorf("error clearing draft: %w", err)
	}
	return nil
}
