// file: internals/features/objectives/route/objective_admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	objController "pilotage_backend/internals/features/objectives/controller"
	objService "pilotage_backend/internals/features/objectives/service"
	"pilotage_backend/internals/middlewares"
)

// ObjectiveAdminRoutes: seluruh endpoint objective di bawah group admin
// (sudah lewat AuthJWT di internals/route).
func ObjectiveAdminRoutes(admin fiber.Router, db *gorm.DB) {
	svc := objService.New(db)
	ctl := objController.NewObjectiveController(db, svc)

	obj := admin.Group("/objectives")

	// Reference data (types / units / metrics) — didaftarkan sebelum /:id
	// supaya path statis tidak ketangkap param.
	obj.Get("/types", ctl.ListTypes)
	obj.Post("/types", ctl.CreateType)
	obj.Put("/types/:id", ctl.UpdateType)
	obj.Delete("/types/:id", ctl.DeactivateType)
	obj.Get("/units", ctl.ListUnits)
	obj.Post("/units", ctl.CreateUnit)
	obj.Put("/units/:id", ctl.UpdateUnit)
	obj.Delete("/units/:id", ctl.DeactivateUnit)
	obj.Get("/types/:id/impacted-metrics", ctl.ImpactedMetrics)
	obj.Get("/metrics", ctl.ListMetrics)
	obj.Post("/metrics", ctl.CreateMetric)
	obj.Get("/metrics/:id", ctl.GetMetricByID)
	obj.Put("/metrics/:id", ctl.UpdateMetric)
	obj.Post("/metric-sources", ctl.CreateMetricSource)
	obj.Get("/metric-codes", ctl.MetricCodes)

	// Hierarchy & lifecycle
	obj.Get("/hierarchy", ctl.GetHierarchy)
	obj.Post("/", ctl.Create)
	obj.Get("/:id", ctl.GetByID)
	obj.Delete("/:id", ctl.Delete)

	// Distribusi
	obj.Post("/distribute", ctl.Distribute)
	obj.Post("/grade-assign", ctl.GradeAssign)
	obj.Get("/:id/remaining", ctl.RemainingCapacity)
	obj.Get("/:id/available-children", ctl.AvailableChildren)
	obj.Get("/:id/distribution-summary", ctl.DistributionSummary)

	// Progress & tracking
	obj.Put("/progress", ctl.UpdateProgress)
	obj.Get("/:id/progress", ctl.GetProgress)
	obj.Post("/track", middlewares.TrackingRateLimiter(), ctl.Track)
}
