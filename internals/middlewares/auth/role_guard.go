// file: internals/middlewares/auth/role_guard.go
package auth

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRoles: lolos kalau salah satu role di klaim cocok.
// Dipasang SETELAH AuthJWT (baca Locals("roles")).
func RequireRoles(allowed ...string) fiber.Handler {
	allowSet := make(map[string]bool, len(allowed))
	for _, r := range allowed {
		allowSet[r] = true
	}

	return func(c *fiber.Ctx) error {
		for _, r := range rolesFromLocals(c) {
			if allowSet[r] {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Akses ditolak: role tidak mencukupi")
	}
}

// rolesFromLocals: klaim "roles" bisa string tunggal, []string, atau
// []any hasil decode JSON.
func rolesFromLocals(c *fiber.Ctx) []string {
	raw := c.Locals("roles")
	switch v := raw.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
