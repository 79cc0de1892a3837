// file: internals/features/objectives/controller/objective_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "pilotage_backend/internals/helpers"

	"pilotage_backend/internals/features/objectives/dto"
	"pilotage_backend/internals/features/objectives/service"
)

var validate = validator.New()

type ObjectiveController struct {
	DB      *gorm.DB
	Service *service.Service
}

func NewObjectiveController(db *gorm.DB, svc *service.Service) *ObjectiveController {
	return &ObjectiveController{DB: db, Service: svc}
}

// mapServiceError: taksonomi error service → status HTTP.
func mapServiceError(c *fiber.Ctx, err error) error {
	var (
		ve *service.ValidationError
		ce *service.ConsistencyError
		ne *service.NotFoundError
	)
	switch {
	case errors.As(err, &ve):
		return helper.JsonError(c, fiber.StatusBadRequest, ve.Error())
	case errors.As(err, &ce):
		return helper.JsonError(c, fiber.StatusBadRequest, ce.Error())
	case errors.As(err, &ne):
		return helper.JsonError(c, fiber.StatusNotFound, ne.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan internal")
	}
}

// levelFromQuery: level hint opsional dari query (?level=...).
func levelFromQuery(c *fiber.Ctx) (service.Level, error) {
	raw := strings.TrimSpace(c.Query("level"))
	if raw == "" {
		return "", nil
	}
	return service.ParseLevel(raw)
}

// POST /api/a/objectives
func (ctl *ObjectiveController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateObjectiveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	level, err := service.ParseLevel(req.ObjectiveLevel)
	if err != nil {
		return mapServiceError(c, err)
	}

	in := service.CreateObjectiveInput{
		FiscalYearID: req.ObjectiveFiscalYearID,
		Mode:         req.ObjectiveMode,
		TypeID:       req.ObjectiveTypeID,
		MetricID:     req.ObjectiveMetricID,
		TrackingType: req.ObjectiveTrackingType,
		MetricCode:   req.ObjectiveMetricCode,
		TargetValue:  req.ObjectiveTargetValue,
		Title:        req.ObjectiveTitle,
		Description:  req.ObjectiveDescription,
		CreatedBy:    actorID,
	}
	if req.ObjectiveEntityID != nil {
		in.EntityID = *req.ObjectiveEntityID
	}

	row, err := ctl.Service.CreateObjective(c.Context(), level, in)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonCreated(c, "Objective berhasil dibuat", fiber.Map{
		"level":     level,
		"objective": row,
	})
}

// GET /api/a/objectives/hierarchy?fiscal_year_id=...&business_unit_ids=a,b
func (ctl *ObjectiveController) GetHierarchy(c *fiber.Ctx) error {
	fyID, err := uuid.Parse(c.Query("fiscal_year_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "fiscal_year_id tidak valid")
	}

	var scopeFilter []uuid.UUID
	if raw := strings.TrimSpace(c.Query("business_unit_ids")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				return helper.JsonError(c, fiber.StatusBadRequest, "business_unit_ids mengandung id tidak valid")
			}
			scopeFilter = append(scopeFilter, id)
		}
	}

	h, err := ctl.Service.GetHierarchy(c.Context(), fyID, scopeFilter)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonOK(c, "OK", h)
}

// GET /api/a/objectives/:id?level=...
func (ctl *ObjectiveController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	levelHint, err := levelFromQuery(c)
	if err != nil {
		return mapServiceError(c, err)
	}

	level, row, err := ctl.Service.GetObjective(c.Context(), id, levelHint)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonOK(c, "OK", fiber.Map{
		"level":     level,
		"objective": row,
	})
}

// DELETE /api/a/objectives/:id?level=...  (level WAJIB: delete tidak boleh
// mengandalkan probing kalau id kebetulan tabrakan antar tabel)
func (ctl *ObjectiveController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	level, err := service.ParseLevel(c.Query("level"))
	if err != nil {
		return mapServiceError(c, err)
	}

	orphaned, err := ctl.Service.DeleteObjective(c.Context(), level, id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Objective berhasil dihapus", fiber.Map{
		"objective_id":      id,
		"level":             level,
		"orphaned_children": orphaned,
	})
}
