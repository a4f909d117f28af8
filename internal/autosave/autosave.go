// Package autosave is the editor's draft-recovery port: every field change
// is mirrored into a Store and cleared again on a successful save, so a
// draft survives navigating to the preview and back.
package autosave

import (
	"github.com/rs/zerolog"

	"inkwell/internal/model"
)

// Namespace prefixes every stored draft key so the store can be shared with
// other state later without collisions.
const Namespace = "inkwell:draft"

var autosaveLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	autosaveLogger = l
}

// Key builds the store key for a browser's draft id.
func Key(id string) string {
	return Namespace + ":" + id
}

// Store persists uncommitted drafts. Load returns (nil, nil) when nothing
// is stored under the key.
type Store interface {
	Save(key string, draft model.Draft) error
	Load(key string) (*model.Draft, error)
	Clear(key string) error
}
