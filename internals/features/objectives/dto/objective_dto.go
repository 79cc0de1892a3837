// file: internals/features/objectives/dto/objective_dto.go
package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/* ===================== REQUEST ===================== */

// CreateObjectiveRequest: authoring langsung di satu level.
type CreateObjectiveRequest struct {
	ObjectiveLevel        string          `json:"objective_level" validate:"required,oneof=GLOBAL BUSINESS_UNIT DIVISION GRADE INDIVIDUAL"`
	ObjectiveFiscalYearID uuid.UUID       `json:"objective_fiscal_year_id" validate:"required"`
	ObjectiveEntityID     *uuid.UUID      `json:"objective_entity_id"`
	ObjectiveMode         string          `json:"objective_mode" validate:"required,oneof=TYPE METRIC"`
	ObjectiveTypeID       *uuid.UUID      `json:"objective_type_id"`
	ObjectiveMetricID     *uuid.UUID      `json:"objective_metric_id"`
	ObjectiveTrackingType string          `json:"objective_tracking_type" validate:"required,oneof=MANUAL AUTOMATIC"`
	ObjectiveMetricCode   *string         `json:"objective_metric_code"`
	ObjectiveTargetValue  decimal.Decimal `json:"objective_target_value"`
	ObjectiveTitle        *string         `json:"objective_title" validate:"omitempty,max=160"`
	ObjectiveDescription  *string         `json:"objective_description"`
}

// DistributeChildRequest: satu alokasi dalam batch distribusi.
type DistributeChildRequest struct {
	EntityID    uuid.UUID       `json:"entity_id" validate:"required"`
	TargetValue decimal.Decimal `json:"target_value"`
	Title       *string         `json:"title" validate:"omitempty,max=160"`
	Description *string         `json:"description"`
}

// DistributeRequest: cascade target parent ke level anak.
type DistributeRequest struct {
	ParentID    uuid.UUID                `json:"parent_id" validate:"required"`
	ParentLevel string                   `json:"parent_level" validate:"omitempty,oneof=GLOBAL BUSINESS_UNIT DIVISION GRADE"`
	Children    []DistributeChildRequest `json:"children" validate:"required,min=1,dive"`
}

// GradeAssignRequest: fan-out objective division ke pemegang grade.
type GradeAssignRequest struct {
	ParentID    uuid.UUID       `json:"parent_id" validate:"required"`
	GradeID     uuid.UUID       `json:"grade_id" validate:"required"`
	TargetValue decimal.Decimal `json:"target_value"`
	Title       *string         `json:"title" validate:"omitempty,max=160"`
	Description *string         `json:"description"`
}

// UpdateProgressRequest: input progres manual.
type UpdateProgressRequest struct {
	Level        string          `json:"level" validate:"required,oneof=GLOBAL BUSINESS_UNIT DIVISION GRADE INDIVIDUAL"`
	ObjectiveID  uuid.UUID       `json:"objective_id" validate:"required"`
	CurrentValue decimal.Decimal `json:"current_value"`
	Notes        *string         `json:"notes"`
}

// TrackRequest: trigger refresh satu metric (dipanggil cron luar / admin).
type TrackRequest struct {
	MetricCode   string     `json:"metric_code" validate:"required,max=60"`
	FiscalYearID *uuid.UUID `json:"fiscal_year_id"`
}
