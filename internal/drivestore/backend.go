// Package drivestore implements the binary object store adapter: media files
// organized into a fixed set of folders under one Drive parent folder. Folder
// ids are resolved lazily and cached for the life of the process.
package drivestore

import (
	"context"
	"io"
)

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	ID       string
	Name     string
	MimeType string
	Size     int64
}

// Backend is the raw file-level access to the remote store. All folder-name
// bookkeeping lives in Store; the backend only deals in ids.
type Backend interface {
	// FindFolder returns the id of the named folder under parentID, or
	// ErrNotFound if no such folder exists.
	FindFolder(ctx context.Context, parentID, name string) (string, error)

	// CreateFolder creates a folder under parentID and returns its id.
	CreateFolder(ctx context.Context, parentID, name string) (string, error)

	// CreateFile stores content as a new file in the folder and returns its
	// info. Names are not unique; every call creates a new object.
	CreateFile(ctx context.Context, folderID, name, mimeType string, content io.Reader) (ObjectInfo, error)

	// GetFile returns the info and content of one object by id.
	GetFile(ctx context.Context, id string) (ObjectInfo, io.ReadCloser, error)

	// DeleteFile removes one object by id.
	DeleteFile(ctx context.Context, id string) error
}
