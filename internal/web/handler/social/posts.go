package social

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/takapay/takapay/internal/schema"
	"github.com/takapay/takapay/internal/web/handler"
)

type createPostRequest struct {
	Phone string `json:"phone" validate:"required,len=11,numeric"`
	Text  string `json:"text" validate:"required_without=Image"`
	Image string `json:"image"`
}

// CreatePost adds one post to the feed.
func (s *Service) CreatePost(c *fiber.Ctx) error {
	in := new(createPostRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	row := schema.Row{
		"id":    uuid.NewString(),
		"phone": in.Phone,
		"text":  in.Text,
		"image": in.Image,
	}
	row.SetTime("createdAt", time.Now())

	if err := s.records.Append(c.Context(), schema.Posts, row); err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"post": row})
}

// ListPosts returns all posts, optionally filtered by author phone.
func (s *Service) ListPosts(c *fiber.Ctx) error {
	phone := c.Query("phone")

	var (
		rows []schema.Row
		err  error
	)

	if phone == "" {
		rows, err = s.records.ReadAll(c.Context(), schema.Posts)
	} else {
		rows, err = s.records.FindAll(c.Context(), schema.Posts, "phone", phone)
	}

	if err != nil {
		return handler.Fail(c, err)
	}

	if rows == nil {
		rows = []schema.Row{}
	}

	return handler.OK(c, fiber.Map{"posts": rows})
}

// DeletePost removes one post by id.
func (s *Service) DeletePost(c *fiber.Ctx) error {
	if err := s.records.DeleteWhere(c.Context(), schema.Posts, "id", c.Params("id")); err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, nil)
}
