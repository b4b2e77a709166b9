package drivestore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// GoogleBackend talks to Google Drive.
type GoogleBackend struct {
	svc *drive.Service
}

// NewGoogleBackend builds a drive client from service-account credentials.
// The client handle is constructed once here and injected into the Store;
// there is no hidden package-level singleton.
func NewGoogleBackend(ctx context.Context, credentialsJSON []byte) (*GoogleBackend, error) {
	jwtCfg, err := google.JWTConfigFromJSON(credentialsJSON, drive.DriveScope)
	if err != nil {
		return nil, errors.Wrap(err, "drive: parse service-account credentials")
	}

	svc, err := drive.NewService(ctx, option.WithTokenSource(jwtCfg.TokenSource(ctx)))
	if err != nil {
		return nil, errors.Wrap(err, "drive: create service")
	}

	return &GoogleBackend{svc: svc}, nil
}

// FindFolder looks up a folder by name directly under parentID.
func (b *GoogleBackend) FindFolder(ctx context.Context, parentID, name string) (string, error) {
	query := fmt.Sprintf(
		"mimeType = '%s' and name = '%s' and '%s' in parents and trashed = false",
		folderMimeType, escapeQuery(name), parentID,
	)

	list, err := b.svc.Files.List().
		Q(query).
		Fields("files(id)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", errors.Wrapf(err, "drive: find folder %s", name)
	}

	if len(list.Files) == 0 {
		return "", ErrNotFound
	}

	return list.Files[0].Id, nil
}

// CreateFolder creates a folder under parentID.
func (b *GoogleBackend) CreateFolder(ctx context.Context, parentID, name string) (string, error) {
	folder, err := b.svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{parentID},
	}).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", errors.Wrapf(err, "drive: create folder %s", name)
	}

	return folder.Id, nil
}

// CreateFile uploads content as a new file in the folder.
func (b *GoogleBackend) CreateFile(
	ctx context.Context,
	folderID, name, mimeType string,
	content io.Reader,
) (ObjectInfo, error) {
	file, err := b.svc.Files.Create(&drive.File{
		Name:    name,
		Parents: []string{folderID},
	}).
		Media(content, googleapi.ContentType(mimeType)).
		Fields("id", "name", "mimeType", "size").
		Context(ctx).
		Do()
	if err != nil {
		return ObjectInfo{}, errors.Wrapf(err, "drive: upload file %s", name)
	}

	return ObjectInfo{
		ID:       file.Id,
		Name:     file.Name,
		MimeType: file.MimeType,
		Size:     file.Size,
	}, nil
}

// GetFile downloads one file by id.
func (b *GoogleBackend) GetFile(ctx context.Context, id string) (ObjectInfo, io.ReadCloser, error) {
	meta, err := b.svc.Files.Get(id).
		Fields("id", "name", "mimeType", "size").
		Context(ctx).
		Do()
	if err != nil {
		return ObjectInfo{}, nil, mapNotFound(err, "drive: get file %s", id)
	}

	resp, err := b.svc.Files.Get(id).Context(ctx).Download()
	if err != nil {
		return ObjectInfo{}, nil, mapNotFound(err, "drive: download file %s", id)
	}

	info := ObjectInfo{
		ID:       meta.Id,
		Name:     meta.Name,
		MimeType: meta.MimeType,
		Size:     meta.Size,
	}

	return info, resp.Body, nil
}

// DeleteFile removes one file by id.
func (b *GoogleBackend) DeleteFile(ctx context.Context, id string) error {
	if err := b.svc.Files.Delete(id).Context(ctx).Do(); err != nil {
		return mapNotFound(err, "drive: delete file %s", id)
	}

	return nil
}

// mapNotFound turns a drive 404 into ErrNotFound and wraps everything else.
func mapNotFound(err error, format string, args ...interface{}) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 404 { //nolint: mnd
		return ErrNotFound
	}

	return errors.Wrapf(err, format, args...)
}

// escapeQuery escapes single quotes for use inside a drive query literal.
func escapeQuery(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
