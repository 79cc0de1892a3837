// file: internals/seeds/objective_reference_seed.go
package seeds

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pilotage_backend/internals/features/objectives/model"
)

func strPtr(s string) *string { return &s }

// SeedObjectiveUnits: satuan pengukuran dasar.
func SeedObjectiveUnits(db *gorm.DB) error {
	rows := []model.ObjectiveUnitModel{
		{ObjectiveUnitCode: "EUR", ObjectiveUnitLabel: "Euro", ObjectiveUnitSymbol: strPtr("€"), ObjectiveUnitIsActive: true},
		{ObjectiveUnitCode: "PCT", ObjectiveUnitLabel: "Pourcentage", ObjectiveUnitSymbol: strPtr("%"), ObjectiveUnitIsActive: true},
		{ObjectiveUnitCode: "COUNT", ObjectiveUnitLabel: "Nombre", ObjectiveUnitSymbol: strPtr("#"), ObjectiveUnitIsActive: true},
		{ObjectiveUnitCode: "DAYS", ObjectiveUnitLabel: "Jours", ObjectiveUnitSymbol: strPtr("j"), ObjectiveUnitIsActive: true},
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "objective_unit_code"}},
		DoNothing: true,
	}).Create(&rows).Error
}

// SeedObjectiveTypes: katalog tipe objective standar.
func SeedObjectiveTypes(db *gorm.DB) error {
	rows := []model.ObjectiveTypeModel{
		{ObjectiveTypeCode: "CA_SIGNE", ObjectiveTypeLabel: "Chiffre d'affaires signé", ObjectiveTypeCategory: model.CategoryCommercial, ObjectiveTypeUnit: strPtr("€"), ObjectiveTypeIsFinancial: true},
		{ObjectiveTypeCode: "CA_FACTURE", ObjectiveTypeLabel: "Chiffre d'affaires facturé", ObjectiveTypeCategory: model.CategoryFinancial, ObjectiveTypeUnit: strPtr("€"), ObjectiveTypeIsFinancial: true},
		{ObjectiveTypeCode: "MARGE_BRUTE", ObjectiveTypeLabel: "Marge brute", ObjectiveTypeCategory: model.CategoryFinancial, ObjectiveTypeUnit: strPtr("%"), ObjectiveTypeIsFinancial: true},
		{ObjectiveTypeCode: "NOUVEAUX_CLIENTS", ObjectiveTypeLabel: "Nouveaux clients", ObjectiveTypeCategory: model.CategoryCommercial, ObjectiveTypeUnit: strPtr("#")},
		{ObjectiveTypeCode: "TAUX_OCCUPATION", ObjectiveTypeLabel: "Taux d'occupation", ObjectiveTypeCategory: model.CategoryOperations, ObjectiveTypeUnit: strPtr("%")},
		{ObjectiveTypeCode: "SATISFACTION_CLIENT", ObjectiveTypeLabel: "Satisfaction client", ObjectiveTypeCategory: model.CategoryStrategic, ObjectiveTypeUnit: strPtr("%")},
	}
	for i := range rows {
		rows[i].ObjectiveTypeIsActive = true
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "objective_type_code"}},
		DoNothing: true,
	}).Create(&rows).Error
}

// SeedObjectiveMetrics: metadata metric yang kalkulatornya ada di registry.
func SeedObjectiveMetrics(db *gorm.DB) error {
	allLevels := pq.StringArray{"GLOBAL", "BUSINESS_UNIT", "DIVISION", "GRADE", "INDIVIDUAL"}
	rows := []model.ObjectiveMetricModel{
		{ObjectiveMetricCode: "CAMPAIGNS_COUNT", ObjectiveMetricLabel: "Nombre de campagnes", ObjectiveMetricCalculationType: model.CalcCount, ObjectiveMetricLevels: allLevels},
		{ObjectiveMetricCode: "OPPORTUNITIES_WON_RATE", ObjectiveMetricLabel: "Taux d'opportunités gagnées", ObjectiveMetricCalculationType: model.CalcRatio, ObjectiveMetricLevels: allLevels},
		{ObjectiveMetricCode: "MISSIONS_BUDGET_SUM", ObjectiveMetricLabel: "Budget missions cumulé", ObjectiveMetricCalculationType: model.CalcSum, ObjectiveMetricLevels: allLevels},
		{ObjectiveMetricCode: "ACTIVE_MISSIONS_COUNT", ObjectiveMetricLabel: "Missions actives", ObjectiveMetricCalculationType: model.CalcCount, ObjectiveMetricLevels: allLevels},
	}
	for i := range rows {
		rows[i].ObjectiveMetricIsActive = true
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "objective_metric_code"}},
		DoNothing: true,
	}).Create(&rows).Error
}
