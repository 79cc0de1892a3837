// file: internals/features/objectives/controller/reference_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	helper "pilotage_backend/internals/helpers"

	"pilotage_backend/internals/features/objectives/dto"
	"pilotage_backend/internals/features/objectives/model"
)

// ===================== OBJECTIVE TYPES =====================

// GET /api/a/objectives/types?page=&per_page=
func (ctl *ObjectiveController) ListTypes(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, helper.AdminOpts)

	var total int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.ObjectiveTypeModel{}).
		Where("objective_type_is_active = TRUE").
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil objective types")
	}

	var rows []model.ObjectiveTypeModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("objective_type_is_active = TRUE").
		Order("objective_type_category ASC, objective_type_label ASC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil objective types")
	}
	return helper.JsonList(c, "OK", fiber.Map{
		"items":      rows,
		"pagination": helper.BuildMeta(total, p),
	})
}

// POST /api/a/objectives/types
func (ctl *ObjectiveController) CreateType(c *fiber.Ctx) error {
	var req dto.CreateObjectiveTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	row := model.ObjectiveTypeModel{
		ObjectiveTypeCode:        strings.ToUpper(strings.TrimSpace(req.ObjectiveTypeCode)),
		ObjectiveTypeLabel:       strings.TrimSpace(req.ObjectiveTypeLabel),
		ObjectiveTypeCategory:    req.ObjectiveTypeCategory,
		ObjectiveTypeUnit:        req.ObjectiveTypeUnit,
		ObjectiveTypeIsFinancial: req.ObjectiveTypeIsFinancial,
		ObjectiveTypeDescription: req.ObjectiveTypeDescription,
		ObjectiveTypeIsActive:    true,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Kode objective type sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat objective type")
	}
	return helper.JsonCreated(c, "Objective type berhasil dibuat", row)
}

// PUT /api/a/objectives/types/:id
func (ctl *ObjectiveController) UpdateType(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var req dto.UpdateObjectiveTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row model.ObjectiveTypeModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("objective_type_id = ?", id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Objective type tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil objective type")
	}

	if req.ObjectiveTypeLabel != nil {
		row.ObjectiveTypeLabel = strings.TrimSpace(*req.ObjectiveTypeLabel)
	}
	if req.ObjectiveTypeCategory != nil {
		row.ObjectiveTypeCategory = *req.ObjectiveTypeCategory
	}
	if req.ObjectiveTypeUnit != nil {
		row.ObjectiveTypeUnit = req.ObjectiveTypeUnit
	}
	if req.ObjectiveTypeIsFinancial != nil {
		row.ObjectiveTypeIsFinancial = *req.ObjectiveTypeIsFinancial
	}
	if req.ObjectiveTypeDescription != nil {
		row.ObjectiveTypeDescription = req.ObjectiveTypeDescription
	}
	if req.ObjectiveTypeIsActive != nil {
		row.ObjectiveTypeIsActive = *req.ObjectiveTypeIsActive
	}

	if err := ctl.DB.WithContext(c.Context()).Save(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengupdate objective type")
	}
	return helper.JsonUpdated(c, "Objective type berhasil diupdate", row)
}

// ===================== OBJECTIVE UNITS =====================

// GET /api/a/objectives/units
func (ctl *ObjectiveController) ListUnits(c *fiber.Ctx) error {
	var rows []model.ObjectiveUnitModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("objective_unit_is_active = TRUE").
		Order("objective_unit_label ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil objective units")
	}
	return helper.JsonList(c, "OK", rows)
}

// POST /api/a/objectives/units
func (ctl *ObjectiveController) CreateUnit(c *fiber.Ctx) error {
	var req dto.CreateObjectiveUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	row := model.ObjectiveUnitModel{
		ObjectiveUnitCode:     strings.ToUpper(strings.TrimSpace(req.ObjectiveUnitCode)),
		ObjectiveUnitLabel:    strings.TrimSpace(req.ObjectiveUnitLabel),
		ObjectiveUnitSymbol:   req.ObjectiveUnitSymbol,
		ObjectiveUnitIsActive: true,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Kode unit sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat unit")
	}
	return helper.JsonCreated(c, "Unit berhasil dibuat", row)
}

// PUT /api/a/objectives/units/:id
func (ctl *ObjectiveController) UpdateUnit(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var req dto.UpdateObjectiveUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row model.ObjectiveUnitModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("objective_unit_id = ?", id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Unit tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil unit")
	}

	if req.ObjectiveUnitLabel != nil {
		row.ObjectiveUnitLabel = strings.TrimSpace(*req.ObjectiveUnitLabel)
	}
	if req.ObjectiveUnitSymbol != nil {
		row.ObjectiveUnitSymbol = req.ObjectiveUnitSymbol
	}
	if req.ObjectiveUnitIsActive != nil {
		row.ObjectiveUnitIsActive = *req.ObjectiveUnitIsActive
	}

	if err := ctl.DB.WithContext(c.Context()).Save(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengupdate unit")
	}
	return helper.JsonUpdated(c, "Unit berhasil diupdate", row)
}

// DELETE /api/a/objectives/types/:id — soft deactivate, data historis tetap utuh
func (ctl *ObjectiveController) DeactivateType(c *fiber.Ctx) error {
	return ctl.deactivateByID(c, &model.ObjectiveTypeModel{}, "objective_type_id", "objective_type_is_active", "Objective type")
}

// DELETE /api/a/objectives/units/:id
func (ctl *ObjectiveController) DeactivateUnit(c *fiber.Ctx) error {
	return ctl.deactivateByID(c, &model.ObjectiveUnitModel{}, "objective_unit_id", "objective_unit_is_active", "Unit")
}

func (ctl *ObjectiveController) deactivateByID(c *fiber.Ctx, mdl any, idCol, activeCol, label string) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	res := ctl.DB.WithContext(c.Context()).
		Model(mdl).
		Where(idCol+" = ?", id).
		Update(activeCol, false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menonaktifkan "+label)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, label+" tidak ditemukan")
	}
	return helper.JsonDeleted(c, label+" berhasil dinonaktifkan", fiber.Map{"id": id})
}

// ===================== OBJECTIVE METRICS =====================

// GET /api/a/objectives/metrics?page=&per_page=
func (ctl *ObjectiveController) ListMetrics(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, helper.AdminOpts)

	var total int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.ObjectiveMetricModel{}).
		Where("objective_metric_is_active = TRUE").
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil objective metrics")
	}

	var rows []model.ObjectiveMetricModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("objective_metric_is_active = TRUE").
		Order("objective_metric_label ASC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil objective metrics")
	}
	return helper.JsonList(c, "OK", fiber.Map{
		"items":      rows,
		"pagination": helper.BuildMeta(total, p),
	})
}

// POST /api/a/objectives/metrics
func (ctl *ObjectiveController) CreateMetric(c *fiber.Ctx) error {
	var req dto.CreateObjectiveMetricRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	row := model.ObjectiveMetricModel{
		ObjectiveMetricCode:            strings.ToUpper(strings.TrimSpace(req.ObjectiveMetricCode)),
		ObjectiveMetricLabel:           strings.TrimSpace(req.ObjectiveMetricLabel),
		ObjectiveMetricDescription:     req.ObjectiveMetricDescription,
		ObjectiveMetricCalculationType: req.ObjectiveMetricCalculationType,
		ObjectiveMetricUnitID:          req.ObjectiveMetricUnitID,
		ObjectiveMetricLevels:          pq.StringArray(req.ObjectiveMetricLevels),
		ObjectiveMetricIsActive:        true,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Kode metric sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat metric")
	}
	return helper.JsonCreated(c, "Metric berhasil dibuat", row)
}

// PUT /api/a/objectives/metrics/:id
func (ctl *ObjectiveController) UpdateMetric(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var req dto.UpdateObjectiveMetricRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var row model.ObjectiveMetricModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("objective_metric_id = ?", id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Metric tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil metric")
	}

	if req.ObjectiveMetricLabel != nil {
		row.ObjectiveMetricLabel = strings.TrimSpace(*req.ObjectiveMetricLabel)
	}
	if req.ObjectiveMetricDescription != nil {
		row.ObjectiveMetricDescription = req.ObjectiveMetricDescription
	}
	if req.ObjectiveMetricCalculationType != nil {
		row.ObjectiveMetricCalculationType = *req.ObjectiveMetricCalculationType
	}
	if req.ObjectiveMetricUnitID != nil {
		row.ObjectiveMetricUnitID = req.ObjectiveMetricUnitID
	}
	if req.ObjectiveMetricLevels != nil {
		row.ObjectiveMetricLevels = pq.StringArray(req.ObjectiveMetricLevels)
	}
	if req.ObjectiveMetricIsActive != nil {
		row.ObjectiveMetricIsActive = *req.ObjectiveMetricIsActive
	}

	if err := ctl.DB.WithContext(c.Context()).Save(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengupdate metric")
	}
	return helper.JsonUpdated(c, "Metric berhasil diupdate", row)
}

// GET /api/a/objectives/metrics/:id — detail metric + sumber datanya
func (ctl *ObjectiveController) GetMetricByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var row model.ObjectiveMetricModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("objective_metric_id = ?", id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Metric tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil metric")
	}

	var sources []model.ObjectiveMetricSourceModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("objective_metric_source_metric_id = ?", id).
		Order("objective_metric_source_created_at ASC").
		Find(&sources).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sumber metric")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"metric":  row,
		"sources": sources,
	})
}

// POST /api/a/objectives/metric-sources
func (ctl *ObjectiveController) CreateMetricSource(c *fiber.Ctx) error {
	var req dto.CreateObjectiveMetricSourceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// metric induk wajib ada
	var metric model.ObjectiveMetricModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("objective_metric_id = ?", req.ObjectiveMetricSourceMetricID).
		Take(&metric).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Metric tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil metric")
	}

	var conditions datatypes.JSON
	if req.ObjectiveMetricSourceConditions != nil {
		b, err := sonic.Marshal(req.ObjectiveMetricSourceConditions)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Filter conditions tidak valid")
		}
		conditions = datatypes.JSON(b)
	}

	weight := 1.0
	if req.ObjectiveMetricSourceWeight != nil {
		weight = *req.ObjectiveMetricSourceWeight
	}

	row := model.ObjectiveMetricSourceModel{
		ObjectiveMetricSourceMetricID:     req.ObjectiveMetricSourceMetricID,
		ObjectiveMetricSourceTypeID:       req.ObjectiveMetricSourceTypeID,
		ObjectiveMetricSourceUnitID:       req.ObjectiveMetricSourceUnitID,
		ObjectiveMetricSourceTable:        req.ObjectiveMetricSourceTable,
		ObjectiveMetricSourceValueColumn:  req.ObjectiveMetricSourceValueColumn,
		ObjectiveMetricSourceFilterColumn: req.ObjectiveMetricSourceFilterColumn,
		ObjectiveMetricSourceConditions:   conditions,
		ObjectiveMetricSourceWeight:       weight,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat sumber metric")
	}
	return helper.JsonCreated(c, "Sumber metric berhasil dibuat", row)
}

// GET /api/a/objectives/types/:id/impacted-metrics?unit_id=
// Metric aktif yang salah satu sumbernya menunjuk objective type ini.
func (ctl *ObjectiveController) ImpactedMetrics(c *fiber.Ctx) error {
	typeID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	q := ctl.DB.WithContext(c.Context()).
		Model(&model.ObjectiveMetricModel{}).
		Distinct("objective_metrics.*").
		Joins("JOIN objective_metric_sources s ON s.objective_metric_source_metric_id = objective_metrics.objective_metric_id").
		Where("s.objective_metric_source_type_id = ?", typeID).
		Where("objective_metrics.objective_metric_is_active = TRUE")

	if raw := strings.TrimSpace(c.Query("unit_id")); raw != "" {
		unitID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "unit_id tidak valid")
		}
		q = q.Where("s.objective_metric_source_unit_id = ?", unitID)
	}

	var rows []model.ObjectiveMetricModel
	if err := q.Order("objective_metrics.objective_metric_label ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil impacted metrics")
	}
	return helper.JsonList(c, "OK", rows)
}

// isUniqueViolation: Postgres 23505.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key")
}
