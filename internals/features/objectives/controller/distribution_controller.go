// file: internals/features/objectives/controller/distribution_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	helper "pilotage_backend/internals/helpers"

	"pilotage_backend/internals/features/objectives/dto"
	"pilotage_backend/internals/features/objectives/service"
)

// POST /api/a/objectives/distribute
func (ctl *ObjectiveController) Distribute(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.DistributeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var parentLevel service.Level
	if req.ParentLevel != "" {
		if parentLevel, err = service.ParseLevel(req.ParentLevel); err != nil {
			return mapServiceError(c, err)
		}
	}

	children := make([]service.DistributionChild, 0, len(req.Children))
	for _, ch := range req.Children {
		children = append(children, service.DistributionChild{
			EntityID:    ch.EntityID,
			TargetValue: ch.TargetValue,
			Title:       ch.Title,
			Description: ch.Description,
		})
	}

	res, err := ctl.Service.Distribute(c.Context(), req.ParentID, parentLevel, children, actorID)
	if err != nil {
		return mapServiceError(c, err)
	}
	// Warning kapasitas tetap 201: over-alokasi itu advisory, bukan penolakan.
	return helper.JsonCreated(c, "Distribusi berhasil", res)
}

// GET /api/a/objectives/:id/remaining?level=...
func (ctl *ObjectiveController) RemainingCapacity(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	levelHint, err := levelFromQuery(c)
	if err != nil {
		return mapServiceError(c, err)
	}

	rc, err := ctl.Service.GetRemainingCapacity(c.Context(), id, levelHint)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonOK(c, "OK", rc)
}

// GET /api/a/objectives/:id/available-children?level=...&grade_id=...&include_distributed=true
func (ctl *ObjectiveController) AvailableChildren(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	levelHint, err := levelFromQuery(c)
	if err != nil {
		return mapServiceError(c, err)
	}

	var gradeFilter *uuid.UUID
	if raw := strings.TrimSpace(c.Query("grade_id")); raw != "" {
		gid, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "grade_id tidak valid")
		}
		gradeFilter = &gid
	}
	includeDistributed := c.QueryBool("include_distributed", false)

	out, err := ctl.Service.GetAvailableChildren(c.Context(), id, levelHint, gradeFilter, includeDistributed)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonList(c, "OK", out)
}

// GET /api/a/objectives/:id/distribution-summary?level=...
func (ctl *ObjectiveController) DistributionSummary(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	levelHint, err := levelFromQuery(c)
	if err != nil {
		return mapServiceError(c, err)
	}

	sum, err := ctl.Service.GetDistributionSummary(c.Context(), id, levelHint)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonOK(c, "OK", sum)
}

// POST /api/a/objectives/grade-assign
func (ctl *ObjectiveController) GradeAssign(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.GradeAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ctl.Service.AssignToGrade(c.Context(), req.ParentID, req.GradeID, req.TargetValue, req.Title, req.Description, actorID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonCreated(c, "Objective berhasil di-assign ke grade", res)
}
