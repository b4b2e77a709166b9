// Package media implements the upload endpoints. Each upload kind maps to
// one folder in the object store. When the store rejects an upload the file
// is returned to the caller as an inline data URI with the degraded flag set,
// so clients can keep working while the store is down.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/takapay/takapay/internal/config"
	"github.com/takapay/takapay/internal/drivestore"
	"github.com/takapay/takapay/internal/uniuri"
	"github.com/takapay/takapay/internal/web/handler"
)

// Path is the base path of the media endpoints.
const Path = handler.RootPath + "/media"

// nameLen is the random part of a generated object name.
const nameLen = 8

// folderOf maps an upload kind to its object store folder.
var folderOf = map[string]string{
	"image": drivestore.FolderImages,
	"audio": drivestore.FolderAudio,
	"video": drivestore.FolderVideos,
	"photo": drivestore.FolderUserPhotos,
	"file":  drivestore.FolderDocuments,
}

// Service is the media handler service.
type Service struct {
	handler.Service
	cfg     *config.Config
	objects *drivestore.Store
}

// Handler is the media handler.
var Handler = Service{}

// Init initializes the media handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.objects = deps.Objects

	app.Post(Path+"/upload/:kind", s.Upload)
	app.Get(Path+"/:id", s.Download)
	app.Delete(Path+"/:id", deps.RequireAdmin, s.Delete)

	return nil
}

// Upload stores one multipart file in the folder of the requested kind.
func (s *Service) Upload(c *fiber.Ctx) error {
	folder, ok := folderOf[c.Params("kind")]
	if !ok {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	// sniff the real content type; the multipart header is client-supplied
	mime := mimetype.Detect(data)
	name := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uniuri.NewLen(nameLen), mime.Extension())

	info, err := s.objects.Put(c.Context(), folder, name, mime.String(), bytes.NewReader(data))
	if err != nil {
		log.Warn().Err(err).
			Str("folder", folder).
			Str("name", fileHeader.Filename).
			Msg("upload failed, returning inline data uri")

		return handler.OK(c, fiber.Map{
			"degraded":     true,
			"originalName": fileHeader.Filename,
			"mimeType":     mime.String(),
			"size":         len(data),
			"dataUri":      dataURI(mime.String(), data),
		})
	}

	return handler.OK(c, fiber.Map{
		"id":           info.ID,
		"name":         info.Name,
		"originalName": fileHeader.Filename,
		"mimeType":     info.MimeType,
		"size":         info.Size,
	})
}

// Download streams one stored object back to the client.
func (s *Service) Download(c *fiber.Ctx) error {
	info, body, err := s.objects.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handler.Fail(c, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return handler.Fail(c, err)
	}

	c.Set(fiber.HeaderContentType, info.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", info.Name))

	return c.Send(data)
}

// Delete removes one stored object. Admin only.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := s.objects.Delete(c.Context(), c.Params("id")); err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, nil)
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
