package autosave

import (
	"sync"

	"inkwell/internal/model"
)

// MemoryStore keeps drafts in process. Recovery then only survives as long
// as the front end itself, which matches the session-storage behavior the
// editor expects.
type MemoryStore struct {
	drafts sync.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(key string, draft model.Draft) error {
	m.drafts.Store(key, draft)
	return nil
}

func (m *MemoryStore) Load(key string) (*model.Draft, error) {
	if v, ok := m.drafts.Load(key); ok {
		draft := v.(model.Draft)
		return &draft, nil
	}
	return nil, nil
}

func (m *MemoryStore) Clear(key string) error {
	m.drafts.Delete(key)
	return nil
}
