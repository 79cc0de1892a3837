// file: internals/helpers/parse_param.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ParseUUIDParam: ambil & parse path param UUID.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params(name)))
}

// GetActorUUID: user id dari Locals (diisi AuthJWT); uuid.Nil kalau tidak ada.
// Dipakai endpoint yang cuma butuh audit trail, bukan penolakan akses.
func GetActorUUID(c *fiber.Ctx) uuid.UUID {
	if raw := c.Locals("user_id"); raw != nil {
		switch v := raw.(type) {
		case uuid.UUID:
			return v
		case string:
			if parsed, err := uuid.Parse(v); err == nil {
				return parsed
			}
		}
	}
	return uuid.Nil
}
