package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskboard-hq/taskboard-backend/internal/authctx"
	"github.com/taskboard-hq/taskboard-backend/internal/dto"
	"github.com/taskboard-hq/taskboard-backend/internal/models"
	"github.com/taskboard-hq/taskboard-backend/internal/store"
)

// AdminRequired rejects callers without the admin role. The role claim in
// the token is authoritative; the store is consulted as a fallback for
// tokens minted before a role was present in claims.
func AdminRequired(users store.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := authctx.CurrentCaller(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if caller.IsAdmin() {
			return c.Next()
		}

		if user, err := users.ByID(caller.ID); err == nil && user.Role == models.RoleAdmin {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Access denied. Admin only.",
		})
	}
}
