// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pilotage_backend/internals/configs"
	"pilotage_backend/internals/constants"
	"pilotage_backend/internals/middlewares/auth"

	objRoute "pilotage_backend/internals/features/objectives/route"
)

// SetupRoutes mendaftarkan seluruh route aplikasi.
// /api/a/* = group admin, wajib JWT.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	admin := api.Group("/a",
		auth.AuthJWT(auth.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		auth.RequireRoles(constants.RoleSuperAdmin, constants.RoleAdmin, constants.RoleManager),
	)

	objRoute.ObjectiveAdminRoutes(admin, db)

	log.Println("✅ Routes terdaftar: /api/a/objectives")
}
