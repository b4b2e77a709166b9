package somiti

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/takapay/takapay/internal/schema"
	"github.com/takapay/takapay/internal/web/handler"
)

type createMemberRequest struct {
	SomitiID string `json:"somitiId" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,len=11,numeric"`
	Role     string `json:"role" validate:"omitempty,oneof=member treasurer leader"`
}

// CreateMember adds one member to a group and bumps the group's member count.
func (s *Service) CreateMember(c *fiber.Ctx) error {
	in := new(createMemberRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if in.Role == "" {
		in.Role = "member"
	}

	// joining an unknown group is a 404
	if _, _, err := s.records.FindFirst(c.Context(), schema.Somiti, "id", in.SomitiID); err != nil {
		return handler.Fail(c, err)
	}

	row := schema.Row{
		"id":       uuid.NewString(),
		"somitiId": in.SomitiID,
		"name":     in.Name,
		"phone":    in.Phone,
		"role":     in.Role,
	}
	row.SetTime("joinedAt", time.Now())

	if err := s.records.Append(c.Context(), schema.Members, row); err != nil {
		return handler.Fail(c, err)
	}

	_, err := s.records.UpdateWhere(c.Context(), schema.SomitiDetails, "somitiId", in.SomitiID,
		func(details schema.Row) (schema.Row, error) {
			count, err := details.Number("memberCount")
			if err != nil {
				return nil, err
			}

			details.SetNumber("memberCount", count+1)
			details.SetTime("updatedAt", time.Now())

			return details, nil
		})
	if err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"member": row})
}

// ListMembers returns members, optionally filtered by group.
func (s *Service) ListMembers(c *fiber.Ctx) error {
	somitiID := c.Query("somitiId")

	var (
		rows []schema.Row
		err  error
	)

	if somitiID == "" {
		rows, err = s.records.ReadAll(c.Context(), schema.Members)
	} else {
		rows, err = s.records.FindAll(c.Context(), schema.Members, "somitiId", somitiID)
	}

	if err != nil {
		return handler.Fail(c, err)
	}

	if rows == nil {
		rows = []schema.Row{}
	}

	return handler.OK(c, fiber.Map{"members": rows})
}
