// file: internals/features/objectives/model/objective_metric_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Tipe kalkulasi metrik
const (
	CalcCount = "COUNT"
	CalcSum   = "SUM"
	CalcRatio = "RATIO"
)

// ObjectiveMetricModel: definisi metrik sistem (kode → cara hitung).
// Kalkulator konkret ada di service (metric registry); baris ini metadata +
// konfigurasi sumber data untuk UI admin.
type ObjectiveMetricModel struct {
	ObjectiveMetricID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:objective_metric_id" json:"objective_metric_id"`
	ObjectiveMetricCode            string         `gorm:"type:varchar(60);not null;uniqueIndex;column:objective_metric_code"        json:"objective_metric_code"`
	ObjectiveMetricLabel           string         `gorm:"type:varchar(120);not null;column:objective_metric_label"                  json:"objective_metric_label"`
	ObjectiveMetricDescription     *string        `gorm:"type:text;column:objective_metric_description"                             json:"objective_metric_description,omitempty"`
	ObjectiveMetricCalculationType string         `gorm:"type:varchar(20);not null;default:'COUNT';column:objective_metric_calculation_type" json:"objective_metric_calculation_type"`
	ObjectiveMetricUnitID          *uuid.UUID     `gorm:"type:uuid;column:objective_metric_unit_id"                                 json:"objective_metric_unit_id,omitempty"`
	ObjectiveMetricLevels          pq.StringArray `gorm:"type:text[];column:objective_metric_levels"                                json:"objective_metric_levels,omitempty"`
	ObjectiveMetricIsActive        bool           `gorm:"not null;default:true;column:objective_metric_is_active"                   json:"objective_metric_is_active"`
	ObjectiveMetricCreatedAt       time.Time      `gorm:"type:timestamptz;not null;default:now();column:objective_metric_created_at" json:"objective_metric_created_at"`
	ObjectiveMetricUpdatedAt       time.Time      `gorm:"type:timestamptz;not null;default:now();column:objective_metric_updated_at" json:"objective_metric_updated_at"`
}

func (ObjectiveMetricModel) TableName() string { return "objective_metrics" }

// ObjectiveMetricSourceModel: sumber data sebuah metrik
// (tabel + kolom nilai + filter kondisi JSONB).
type ObjectiveMetricSourceModel struct {
	ObjectiveMetricSourceID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:objective_metric_source_id" json:"objective_metric_source_id"`
	ObjectiveMetricSourceMetricID     uuid.UUID      `gorm:"type:uuid;not null;index;column:objective_metric_source_metric_id"                json:"objective_metric_source_metric_id"`
	ObjectiveMetricSourceTypeID       *uuid.UUID     `gorm:"type:uuid;index;column:objective_metric_source_type_id"                           json:"objective_metric_source_type_id,omitempty"`
	ObjectiveMetricSourceUnitID       *uuid.UUID     `gorm:"type:uuid;column:objective_metric_source_unit_id"                                 json:"objective_metric_source_unit_id,omitempty"`
	ObjectiveMetricSourceTable        *string        `gorm:"type:varchar(60);column:objective_metric_source_table"                            json:"objective_metric_source_table,omitempty"`
	ObjectiveMetricSourceValueColumn  *string        `gorm:"type:varchar(60);column:objective_metric_source_value_column"                     json:"objective_metric_source_value_column,omitempty"`
	ObjectiveMetricSourceFilterColumn *string        `gorm:"type:varchar(60);column:objective_metric_source_filter_column"                    json:"objective_metric_source_filter_column,omitempty"`
	ObjectiveMetricSourceConditions   datatypes.JSON `gorm:"type:jsonb;column:objective_metric_source_conditions"                             json:"objective_metric_source_conditions,omitempty"`
	ObjectiveMetricSourceWeight       float64        `gorm:"type:numeric(6,3);not null;default:1;column:objective_metric_source_weight"       json:"objective_metric_source_weight"`
	ObjectiveMetricSourceCreatedAt    time.Time      `gorm:"type:timestamptz;not null;default:now();column:objective_metric_source_created_at" json:"objective_metric_source_created_at"`
}

func (ObjectiveMetricSourceModel) TableName() string { return "objective_metric_sources" }
