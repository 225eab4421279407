package storage

import (
	"context"
	"strings"
	"sync"
)

// Memory keeps objects in a map. URLs are baseURL + "/" + key.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
	types   map[string]string
	acls    map[string]ACL
	baseURL string
}

// NewMemory creates an empty in-memory storage.
func NewMemory(baseURL string) *Memory {
	return &Memory{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
		acls:    make(map[string]ACL),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (m *Memory) Put(_ context.Context, obj Object) (*FileInfo, error) {
	contentType, data, err := prepare(obj)
	if err != nil {
		return nil, err
	}

	key := objectKey(obj, contentType)
	acl := resolveACL(obj.ACL)
	m.mu.Lock()
	m.objects[key] = data
	m.types[key] = contentType
	m.acls[key] = acl
	m.mu.Unlock()

	return &FileInfo{Key: key, URL: m.URL(key), ContentType: contentType, Size: int64(len(data)), ACL: acl}, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return ErrNotFound
	}
	delete(m.objects, key)
	delete(m.types, key)
	delete(m.acls, key)
	return nil
}

func (m *Memory) URL(key string) string {
	return m.baseURL + "/" + key
}

// Object returns the stored bytes and content type of key.
func (m *Memory) Object(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	return data, m.types[key], ok
}

// ACL returns the access policy key was stored with.
func (m *Memory) ACL(key string) (ACL, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	acl, ok := m.acls[key]
	return acl, ok
}

// Keys returns all stored keys in no particular order.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}

var _ Storage = (*Memory)(nil)
