// file: internals/features/objectives/model/objective_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Mode & tracking type objective
const (
	ObjectiveModeType   = "TYPE"
	ObjectiveModeMetric = "METRIC"

	TrackingManual    = "MANUAL"
	TrackingAutomatic = "AUTOMATIC"
)

// ObjectiveModel adalah bentuk baris untuk KELIMA tabel objectives
// (global_objectives, business_unit_objectives, division_objectives,
// grade_objectives, individual_objectives). Tabel dipilih lewat registry
// level di service, jadi struct ini sengaja TIDAK punya TableName():
// semua query wajib lewat db.Table(...).
type ObjectiveModel struct {
	// PK
	ObjectiveID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:objective_id" json:"objective_id"`

	// Exercice fiscal (diisi di semua level; BU/Division/Grade mewarisi dari parent saat distribusi)
	ObjectiveFiscalYearID *uuid.UUID `gorm:"type:uuid;column:objective_fiscal_year_id" json:"objective_fiscal_year_id,omitempty"`

	// Mode: TYPE (objective_type) atau METRIC (objective_metric)
	ObjectiveMode     string     `gorm:"type:varchar(10);not null;default:'TYPE';column:objective_mode" json:"objective_mode"`
	ObjectiveTypeID   *uuid.UUID `gorm:"type:uuid;column:objective_type_id"   json:"objective_type_id,omitempty"`
	ObjectiveMetricID *uuid.UUID `gorm:"type:uuid;column:objective_metric_id" json:"objective_metric_id,omitempty"`

	// Tracking: MANUAL atau AUTOMATIC + kode metrik
	ObjectiveTrackingType string  `gorm:"type:varchar(10);not null;default:'MANUAL';column:objective_tracking_type" json:"objective_tracking_type"`
	ObjectiveMetricCode   *string `gorm:"type:varchar(60);column:objective_metric_code" json:"objective_metric_code,omitempty"`

	// Target & bobot
	ObjectiveTargetValue decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0;column:objective_target_value" json:"objective_target_value"`
	ObjectiveWeight      decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0;column:objective_weight"        json:"objective_weight"`

	// Cascade linkage (parent = objective tepat satu level di atas)
	ObjectiveParentID   *uuid.UUID `gorm:"type:uuid;column:objective_parent_id" json:"objective_parent_id,omitempty"`
	ObjectiveIsCascaded bool       `gorm:"not null;default:false;column:objective_is_cascaded" json:"objective_is_cascaded"`

	// Scope entity (tepat satu terisi, sesuai tabel level)
	ObjectiveBusinessUnitID *uuid.UUID `gorm:"type:uuid;column:objective_business_unit_id" json:"objective_business_unit_id,omitempty"`
	ObjectiveDivisionID     *uuid.UUID `gorm:"type:uuid;column:objective_division_id"      json:"objective_division_id,omitempty"`
	ObjectiveGradeID        *uuid.UUID `gorm:"type:uuid;column:objective_grade_id"         json:"objective_grade_id,omitempty"`
	ObjectiveCollaboratorID *uuid.UUID `gorm:"type:uuid;column:objective_collaborator_id"  json:"objective_collaborator_id,omitempty"`

	// Diisi untuk individual objective hasil fan-out per grade
	ObjectiveTargetGradeID *uuid.UUID `gorm:"type:uuid;column:objective_target_grade_id" json:"objective_target_grade_id,omitempty"`

	// Deskripsi
	ObjectiveTitle       *string `gorm:"type:varchar(160);column:objective_title"     json:"objective_title,omitempty"`
	ObjectiveDescription *string `gorm:"type:text;column:objective_description"       json:"objective_description,omitempty"`

	// Audit
	ObjectiveCreatedBy uuid.UUID `gorm:"type:uuid;not null;column:objective_created_by" json:"objective_created_by"`
	ObjectiveCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:objective_created_at" json:"objective_created_at"`
	ObjectiveUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:objective_updated_at" json:"objective_updated_at"`
}
