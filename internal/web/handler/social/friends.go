package social

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/takapay/takapay/internal/schema"
	"github.com/takapay/takapay/internal/web/handler"
)

// StatusRequested is the status of a freshly created friend request.
const StatusRequested = "requested"

type createFriendRequest struct {
	FromPhone string `json:"fromPhone" validate:"required,len=11,numeric"`
	ToPhone   string `json:"toPhone" validate:"required,len=11,numeric,nefield=FromPhone"`
}

// CreateFriendRequest opens a friend request between two phones. An open or
// accepted request between the same pair is a conflict, in either direction.
func (s *Service) CreateFriendRequest(c *fiber.Ctx) error {
	in := new(createFriendRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	rows, err := s.records.ReadAll(c.Context(), schema.FriendRequests)
	if err != nil {
		return handler.Fail(c, err)
	}

	for _, row := range rows {
		if row.Get("status") == "rejected" {
			continue
		}

		samePair := row.Get("fromPhone") == in.FromPhone && row.Get("toPhone") == in.ToPhone
		reversed := row.Get("fromPhone") == in.ToPhone && row.Get("toPhone") == in.FromPhone

		if samePair || reversed {
			return handler.Fail(c, handler.ErrConflict)
		}
	}

	row := schema.Row{
		"id":        uuid.NewString(),
		"fromPhone": in.FromPhone,
		"toPhone":   in.ToPhone,
		"status":    StatusRequested,
	}
	row.SetTime("createdAt", time.Now())

	if err := s.records.Append(c.Context(), schema.FriendRequests, row); err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"request": row})
}

// ListFriendRequests returns the friend requests a phone is part of, on
// either side.
func (s *Service) ListFriendRequests(c *fiber.Ctx) error {
	phone := c.Query("phone")
	if phone == "" {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	rows, err := s.records.ReadAll(c.Context(), schema.FriendRequests)
	if err != nil {
		return handler.Fail(c, err)
	}

	requests := make([]schema.Row, 0)

	for _, row := range rows {
		if row.Get("fromPhone") == phone || row.Get("toPhone") == phone {
			requests = append(requests, row)
		}
	}

	return handler.OK(c, fiber.Map{"requests": requests})
}

type friendStatusRequest struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// SetFriendRequestStatus accepts or rejects one friend request.
func (s *Service) SetFriendRequestStatus(c *fiber.Ctx) error {
	in := new(friendStatusRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	updated, err := s.records.UpdateWhere(c.Context(), schema.FriendRequests, "id", in.ID,
		func(row schema.Row) (schema.Row, error) {
			row["status"] = in.Status
			return row, nil
		})
	if err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"request": updated})
}
