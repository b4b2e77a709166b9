package drivestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryBackend is an in-process Backend. It backs the store in tests and
// when running without Google credentials; nothing survives a restart.
type MemoryBackend struct {
	mu      sync.Mutex
	nextID  int
	folders map[string]string
	files   map[string]memoryObject
}

type memoryObject struct {
	info    ObjectInfo
	content []byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		folders: make(map[string]string),
		files:   make(map[string]memoryObject),
	}
}

func (m *MemoryBackend) newID(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

// FindFolder looks up a folder by name directly under parentID.
func (m *MemoryBackend) FindFolder(_ context.Context, parentID, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.folders[parentID+"/"+name]
	if !ok {
		return "", ErrNotFound
	}

	return id, nil
}

// CreateFolder creates a folder under parentID.
func (m *MemoryBackend) CreateFolder(_ context.Context, parentID, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.newID("folder")
	m.folders[parentID+"/"+name] = id

	return id, nil
}

// CreateFile stores content as a new file in the folder.
func (m *MemoryBackend) CreateFile(
	_ context.Context,
	_, name, mimeType string,
	content io.Reader,
) (ObjectInfo, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return ObjectInfo{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	info := ObjectInfo{
		ID:       m.newID("file"),
		Name:     name,
		MimeType: mimeType,
		Size:     int64(len(data)),
	}

	m.files[info.ID] = memoryObject{info: info, content: data}

	return info, nil
}

// GetFile returns the info and content of one object by id.
func (m *MemoryBackend) GetFile(_ context.Context, id string) (ObjectInfo, io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.files[id]
	if !ok {
		return ObjectInfo{}, nil, ErrNotFound
	}

	return obj.info, io.NopCloser(bytes.NewReader(obj.content)), nil
}

// DeleteFile removes one object by id.
func (m *MemoryBackend) DeleteFile(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[id]; !ok {
		return ErrNotFound
	}

	delete(m.files, id)

	return nil
}
