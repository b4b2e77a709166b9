package social

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/takapay/takapay/internal/schema"
	"github.com/takapay/takapay/internal/web/handler"
)

// StoryTTL is how long a story stays visible.
const StoryTTL = 24 * time.Hour

type createStoryRequest struct {
	Phone    string `json:"phone" validate:"required,len=11,numeric"`
	Media    string `json:"media" validate:"required"`
	MimeType string `json:"mimeType" validate:"required"`
}

// CreateStory adds one story, visible for StoryTTL.
func (s *Service) CreateStory(c *fiber.Ctx) error {
	in := new(createStoryRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	now := time.Now()
	row := schema.Row{
		"id":       uuid.NewString(),
		"phone":    in.Phone,
		"media":    in.Media,
		"mimeType": in.MimeType,
	}
	row.SetTime("createdAt", now)
	row.SetTime("expiresAt", now.Add(StoryTTL))

	if err := s.records.Append(c.Context(), schema.Stories, row); err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"story": row})
}

// ListStories returns all stories that have not expired yet. Expired rows
// stay in the table; they are only filtered on read.
func (s *Service) ListStories(c *fiber.Ctx) error {
	rows, err := s.records.ReadAll(c.Context(), schema.Stories)
	if err != nil {
		return handler.Fail(c, err)
	}

	now := time.Now()
	stories := make([]schema.Row, 0, len(rows))

	for _, row := range rows {
		expiresAt, err := row.Time("expiresAt")
		if err != nil || expiresAt.Before(now) {
			continue
		}

		stories = append(stories, row)
	}

	return handler.OK(c, fiber.Map{"stories": stories})
}
