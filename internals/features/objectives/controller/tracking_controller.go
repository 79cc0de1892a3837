// file: internals/features/objectives/controller/tracking_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	helper "pilotage_backend/internals/helpers"

	"pilotage_backend/internals/features/objectives/dto"
	"pilotage_backend/internals/features/objectives/service"
)

// PUT /api/a/objectives/progress
func (ctl *ObjectiveController) UpdateProgress(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	level, err := service.ParseLevel(req.Level)
	if err != nil {
		return mapServiceError(c, err)
	}

	p, err := ctl.Service.UpdateProgress(c.Context(), level, req.ObjectiveID, req.CurrentValue, req.Notes, actorID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Progress berhasil diupdate", p)
}

// GET /api/a/objectives/:id/progress?level=...
func (ctl *ObjectiveController) GetProgress(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	level, err := service.ParseLevel(c.Query("level"))
	if err != nil {
		return mapServiceError(c, err)
	}

	p, err := ctl.Service.GetProgress(c.Context(), level, id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonOK(c, "OK", p)
}

// POST /api/a/objectives/track — refresh satu metric AUTOMATIC.
// Dipanggil cron sistem luar atau manual dari halaman admin.
func (ctl *ObjectiveController) Track(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.TrackRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ctl.Service.RefreshAutomaticMetric(c.Context(), req.MetricCode, req.FiscalYearID, actorID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonOK(c, "Metric berhasil di-refresh", res)
}

// GET /api/a/objectives/metric-codes — daftar kode yang bisa dipakai
// tracking AUTOMATIC.
func (ctl *ObjectiveController) MetricCodes(c *fiber.Ctx) error {
	return helper.JsonList(c, "OK", ctl.Service.Metrics().Codes())
}
