// file: internals/features/objectives/model/objective_type_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Kategori objective type
const (
	CategoryStrategic  = "STRATEGIC"
	CategoryCommercial = "COMMERCIAL"
	CategoryOperations = "OPERATIONS"
	CategoryFinancial  = "FINANCIAL"
)

// ObjectiveTypeModel: reference data, immutable secara logis (soft-deactivate).
type ObjectiveTypeModel struct {
	ObjectiveTypeID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:objective_type_id" json:"objective_type_id"`
	ObjectiveTypeCode        string    `gorm:"type:varchar(60);not null;uniqueIndex;column:objective_type_code"        json:"objective_type_code"`
	ObjectiveTypeLabel       string    `gorm:"type:varchar(120);not null;column:objective_type_label"                  json:"objective_type_label"`
	ObjectiveTypeCategory    string    `gorm:"type:varchar(20);not null;column:objective_type_category"                json:"objective_type_category"`
	ObjectiveTypeUnit        *string   `gorm:"type:varchar(20);column:objective_type_unit"                             json:"objective_type_unit,omitempty"`
	ObjectiveTypeIsFinancial bool      `gorm:"not null;default:false;column:objective_type_is_financial"               json:"objective_type_is_financial"`
	ObjectiveTypeDescription *string   `gorm:"type:text;column:objective_type_description"                             json:"objective_type_description,omitempty"`
	ObjectiveTypeIsActive    bool      `gorm:"not null;default:true;column:objective_type_is_active"                   json:"objective_type_is_active"`
	ObjectiveTypeCreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();column:objective_type_created_at" json:"objective_type_created_at"`
	ObjectiveTypeUpdatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();column:objective_type_updated_at" json:"objective_type_updated_at"`
}

func (ObjectiveTypeModel) TableName() string { return "objective_types" }

// ObjectiveUnitModel: satuan pengukuran (€, %, jours, ...).
type ObjectiveUnitModel struct {
	ObjectiveUnitID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:objective_unit_id" json:"objective_unit_id"`
	ObjectiveUnitCode      string    `gorm:"type:varchar(30);not null;uniqueIndex;column:objective_unit_code"        json:"objective_unit_code"`
	ObjectiveUnitLabel     string    `gorm:"type:varchar(80);not null;column:objective_unit_label"                   json:"objective_unit_label"`
	ObjectiveUnitSymbol    *string   `gorm:"type:varchar(10);column:objective_unit_symbol"                           json:"objective_unit_symbol,omitempty"`
	ObjectiveUnitIsActive  bool      `gorm:"not null;default:true;column:objective_unit_is_active"                   json:"objective_unit_is_active"`
	ObjectiveUnitCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:objective_unit_created_at" json:"objective_unit_created_at"`
	ObjectiveUnitUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:objective_unit_updated_at" json:"objective_unit_updated_at"`
}

func (ObjectiveUnitModel) TableName() string { return "objective_units" }
