// file: internals/features/objectives/model/objective_progress_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ObjectiveProgressModel: satu baris progress per objective (semua level).
// Key gabungan (level, objective_id) karena id antar tabel level bisa tabrakan.
// Hidupnya mengikuti objective-nya: dibuat saat create, dihapus saat delete.
type ObjectiveProgressModel struct {
	ObjectiveProgressLevel       string    `gorm:"type:varchar(20);primaryKey;column:objective_progress_level"        json:"objective_progress_level"`
	ObjectiveProgressObjectiveID uuid.UUID `gorm:"type:uuid;primaryKey;column:objective_progress_objective_id"        json:"objective_progress_objective_id"`

	// Snapshot target (denormalisasi, di-sync saat target berubah)
	ObjectiveProgressTargetValue  decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0;column:objective_progress_target_value"  json:"objective_progress_target_value"`
	ObjectiveProgressCurrentValue decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0;column:objective_progress_current_value" json:"objective_progress_current_value"`

	ObjectiveProgressNotes      *string    `gorm:"type:text;column:objective_progress_notes"            json:"objective_progress_notes,omitempty"`
	ObjectiveProgressUpdatedBy  *uuid.UUID `gorm:"type:uuid;column:objective_progress_updated_by"       json:"objective_progress_updated_by,omitempty"`
	ObjectiveProgressMeasuredAt *time.Time `gorm:"type:timestamptz;column:objective_progress_measured_at" json:"objective_progress_measured_at,omitempty"`

	ObjectiveProgressCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:objective_progress_created_at" json:"objective_progress_created_at"`
	ObjectiveProgressUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:objective_progress_updated_at" json:"objective_progress_updated_at"`
}

func (ObjectiveProgressModel) TableName() string { return "objective_progress" }
