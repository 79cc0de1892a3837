// file: internals/features/objectives/dto/reference_dto.go
package dto

import "github.com/google/uuid"

// CreateObjectiveTypeRequest
type CreateObjectiveTypeRequest struct {
	ObjectiveTypeCode        string  `json:"objective_type_code" validate:"required,max=60"`
	ObjectiveTypeLabel       string  `json:"objective_type_label" validate:"required,max=120"`
	ObjectiveTypeCategory    string  `json:"objective_type_category" validate:"required,oneof=STRATEGIC COMMERCIAL OPERATIONS FINANCIAL"`
	ObjectiveTypeUnit        *string `json:"objective_type_unit" validate:"omitempty,max=20"`
	ObjectiveTypeIsFinancial bool    `json:"objective_type_is_financial"`
	ObjectiveTypeDescription *string `json:"objective_type_description"`
}

// UpdateObjectiveTypeRequest (partial)
type UpdateObjectiveTypeRequest struct {
	ObjectiveTypeLabel       *string `json:"objective_type_label" validate:"omitempty,max=120"`
	ObjectiveTypeCategory    *string `json:"objective_type_category" validate:"omitempty,oneof=STRATEGIC COMMERCIAL OPERATIONS FINANCIAL"`
	ObjectiveTypeUnit        *string `json:"objective_type_unit" validate:"omitempty,max=20"`
	ObjectiveTypeIsFinancial *bool   `json:"objective_type_is_financial"`
	ObjectiveTypeDescription *string `json:"objective_type_description"`
	ObjectiveTypeIsActive    *bool   `json:"objective_type_is_active"`
}

// CreateObjectiveUnitRequest
type CreateObjectiveUnitRequest struct {
	ObjectiveUnitCode   string  `json:"objective_unit_code" validate:"required,max=30"`
	ObjectiveUnitLabel  string  `json:"objective_unit_label" validate:"required,max=80"`
	ObjectiveUnitSymbol *string `json:"objective_unit_symbol" validate:"omitempty,max=10"`
}

// UpdateObjectiveUnitRequest (partial)
type UpdateObjectiveUnitRequest struct {
	ObjectiveUnitLabel    *string `json:"objective_unit_label" validate:"omitempty,max=80"`
	ObjectiveUnitSymbol   *string `json:"objective_unit_symbol" validate:"omitempty,max=10"`
	ObjectiveUnitIsActive *bool   `json:"objective_unit_is_active"`
}

// CreateObjectiveMetricRequest
type CreateObjectiveMetricRequest struct {
	ObjectiveMetricCode            string     `json:"objective_metric_code" validate:"required,max=60"`
	ObjectiveMetricLabel           string     `json:"objective_metric_label" validate:"required,max=120"`
	ObjectiveMetricDescription     *string    `json:"objective_metric_description"`
	ObjectiveMetricCalculationType string     `json:"objective_metric_calculation_type" validate:"required,oneof=COUNT SUM RATIO"`
	ObjectiveMetricUnitID          *uuid.UUID `json:"objective_metric_unit_id"`
	ObjectiveMetricLevels          []string   `json:"objective_metric_levels" validate:"omitempty,dive,oneof=GLOBAL BUSINESS_UNIT DIVISION GRADE INDIVIDUAL"`
}

// UpdateObjectiveMetricRequest (partial)
type UpdateObjectiveMetricRequest struct {
	ObjectiveMetricLabel           *string    `json:"objective_metric_label" validate:"omitempty,max=120"`
	ObjectiveMetricDescription     *string    `json:"objective_metric_description"`
	ObjectiveMetricCalculationType *string    `json:"objective_metric_calculation_type" validate:"omitempty,oneof=COUNT SUM RATIO"`
	ObjectiveMetricUnitID          *uuid.UUID `json:"objective_metric_unit_id"`
	ObjectiveMetricLevels          []string   `json:"objective_metric_levels" validate:"omitempty,dive,oneof=GLOBAL BUSINESS_UNIT DIVISION GRADE INDIVIDUAL"`
	ObjectiveMetricIsActive        *bool      `json:"objective_metric_is_active"`
}

// CreateObjectiveMetricSourceRequest
type CreateObjectiveMetricSourceRequest struct {
	ObjectiveMetricSourceMetricID     uuid.UUID      `json:"objective_metric_source_metric_id" validate:"required"`
	ObjectiveMetricSourceTypeID       *uuid.UUID     `json:"objective_metric_source_type_id"`
	ObjectiveMetricSourceUnitID       *uuid.UUID     `json:"objective_metric_source_unit_id"`
	ObjectiveMetricSourceTable        *string        `json:"objective_metric_source_table" validate:"omitempty,max=60"`
	ObjectiveMetricSourceValueColumn  *string        `json:"objective_metric_source_value_column" validate:"omitempty,max=60"`
	ObjectiveMetricSourceFilterColumn *string        `json:"objective_metric_source_filter_column" validate:"omitempty,max=60"`
	ObjectiveMetricSourceConditions   map[string]any `json:"objective_metric_source_conditions"`
	ObjectiveMetricSourceWeight       *float64       `json:"objective_metric_source_weight"`
}
