package store

import (
	"sort"
	"sync"

	"github.com/hxaxnxa/Image-to-React/internal/types"
)

type MemoryStore struct {
	uploads map[string]*Upload
	mu      sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		uploads: make(map[string]*Upload),
	}
}

func (m *MemoryStore) Put(u *Upload) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u.Generated == nil {
		u.Generated = make(map[types.CodeFormat]types.NormalizedCode)
	}
	m.uploads[u.ID] = u
	return nil
}

func (m *MemoryStore) Get(id string) (*Upload, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, exists := m.uploads[id]
	if !exists {
		return nil, ErrUploadNotFound
	}
	return copyUpload(u), nil
}

func (m *MemoryStore) List() ([]*Upload, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	uploads := make([]*Upload, 0, len(m.uploads))
	for _, u := range m.uploads {
		uploads = append(uploads, copyUpload(u))
	}
	sort.Slice(uploads, func(i, j int) bool {
		if uploads[i].CreatedAt.Equal(uploads[j].CreatedAt) {
			return uploads[i].ID < uploads[j].ID
		}
		return uploads[i].CreatedAt.Before(uploads[j].CreatedAt)
	})
	return uploads, nil
}

func (m *MemoryStore) SetDescription(id, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, exists := m.uploads[id]
	if !exists {
		return ErrUploadNotFound
	}
	u.Description = description
	return nil
}

func (m *MemoryStore) SetGenerated(id string, code types.NormalizedCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, exists := m.uploads[id]
	if !exists {
		return ErrUploadNotFound
	}
	u.Generated[code.Format] = code
	return nil
}

func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.uploads[id]; !exists {
		return ErrUploadNotFound
	}
	delete(m.uploads, id)
	return nil
}

// copyUpload snapshots an upload so callers never share mutable state
// with the map.
func copyUpload(u *Upload) *Upload {
	c := *u
	c.Generated = make(map[types.CodeFormat]types.NormalizedCode, len(u.Generated))
	for k, v := range u.Generated {
		c.Generated[k] = v
	}
	return &c
}
