package social

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/takapay/takapay/internal/schema"
	"github.com/takapay/takapay/internal/web/handler"
)

type toggleLikeRequest struct {
	PostID string `json:"postId" validate:"required"`
	Phone  string `json:"phone" validate:"required,len=11,numeric"`
}

// ToggleLike adds a like if the phone has not liked the post yet, removes it
// otherwise.
func (s *Service) ToggleLike(c *fiber.Ctx) error {
	in := new(toggleLikeRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	likes, err := s.records.FindAll(c.Context(), schema.Likes, "postId", in.PostID)
	if err != nil {
		return handler.Fail(c, err)
	}

	for _, like := range likes {
		if like.Get("phone") != in.Phone {
			continue
		}

		if err := s.records.DeleteWhere(c.Context(), schema.Likes, "id", like.Get("id")); err != nil {
			return handler.Fail(c, err)
		}

		return handler.OK(c, fiber.Map{"liked": false, "count": len(likes) - 1})
	}

	row := schema.Row{
		"id":     uuid.NewString(),
		"postId": in.PostID,
		"phone":  in.Phone,
	}
	row.SetTime("createdAt", time.Now())

	if err := s.records.Append(c.Context(), schema.Likes, row); err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"liked": true, "count": len(likes) + 1})
}

// ListLikes returns the likes of one post.
func (s *Service) ListLikes(c *fiber.Ctx) error {
	postID := c.Query("postId")
	if postID == "" {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	rows, err := s.records.FindAll(c.Context(), schema.Likes, "postId", postID)
	if err != nil {
		return handler.Fail(c, err)
	}

	if rows == nil {
		rows = []schema.Row{}
	}

	return handler.OK(c, fiber.Map{"likes": rows, "count": len(rows)})
}
