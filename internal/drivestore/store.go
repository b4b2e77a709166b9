package drivestore

import (
	"context"
	"errors"
	"io"
	"sync"
)

// Folder names under the root folder. Handlers pick one per media kind.
const (
	FolderImages     = "Images"
	FolderAudio      = "Audio"
	FolderVideos     = "Videos"
	FolderDocuments  = "Documents"
	FolderUserPhotos = "UserPhotos"
)

// Folders lists every folder the store manages.
func Folders() []string {
	return []string{FolderImages, FolderAudio, FolderVideos, FolderDocuments, FolderUserPhotos}
}

// Store is the binary object store adapter on top of a backend.
type Store struct {
	backend Backend
	rootID  string

	mu      sync.Mutex
	folders map[string]string
}

// New creates a Store rooted at the given parent folder id.
func New(backend Backend, rootID string) (*Store, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}

	return &Store{
		backend: backend,
		rootID:  rootID,
		folders: make(map[string]string),
	}, nil
}

// ensureFolder resolves the id of a named folder under the root, creating the
// folder on first use. The id is cached for the life of the process. Two
// processes racing on first use can each create a folder of the same name;
// Drive allows duplicate names and each process keeps using the one it made.
func (s *Store) ensureFolder(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.folders[name]; ok {
		return id, nil
	}

	id, err := s.backend.FindFolder(ctx, s.rootID, name)
	if errors.Is(err, ErrNotFound) {
		id, err = s.backend.CreateFolder(ctx, s.rootID, name)
	}

	if err != nil {
		return "", err
	}

	s.folders[name] = id

	return id, nil
}

// Put stores content as a new object in the named folder. Every call creates
// a new object, even for a name already in use.
func (s *Store) Put(ctx context.Context, folder, name, mimeType string, content io.Reader) (ObjectInfo, error) {
	folderID, err := s.ensureFolder(ctx, folder)
	if err != nil {
		return ObjectInfo{}, err
	}

	return s.backend.CreateFile(ctx, folderID, name, mimeType, content)
}

// Get returns the info and content of one object by id.
func (s *Store) Get(ctx context.Context, id string) (ObjectInfo, io.ReadCloser, error) {
	return s.backend.GetFile(ctx, id)
}

// Delete removes one object by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.backend.DeleteFile(ctx, id)
}
