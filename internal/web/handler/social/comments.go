package social

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/takapay/takapay/internal/schema"
	"github.com/takapay/takapay/internal/web/handler"
)

type createCommentRequest struct {
	PostID string `json:"postId" validate:"required"`
	Phone  string `json:"phone" validate:"required,len=11,numeric"`
	Text   string `json:"text" validate:"required"`
}

// CreateComment adds one comment to a post.
func (s *Service) CreateComment(c *fiber.Ctx) error {
	in := new(createCommentRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	// commenting on a post that is gone is a 404
	if _, _, err := s.records.FindFirst(c.Context(), schema.Posts, "id", in.PostID); err != nil {
		return handler.Fail(c, err)
	}

	row := schema.Row{
		"id":     uuid.NewString(),
		"postId": in.PostID,
		"phone":  in.Phone,
		"text":   in.Text,
	}
	row.SetTime("createdAt", time.Now())

	if err := s.records.Append(c.Context(), schema.Comments, row); err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"comment": row})
}

// ListComments returns the comments of one post.
func (s *Service) ListComments(c *fiber.Ctx) error {
	postID := c.Query("postId")
	if postID == "" {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	rows, err := s.records.FindAll(c.Context(), schema.Comments, "postId", postID)
	if err != nil {
		return handler.Fail(c, err)
	}

	if rows == nil {
		rows = []schema.Row{}
	}

	return handler.OK(c, fiber.Map{"comments": rows})
}
