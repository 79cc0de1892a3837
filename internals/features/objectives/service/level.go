// file: internals/features/objectives/service/level.go
package service

import (
	"strings"

	"github.com/google/uuid"

	objModel "pilotage_backend/internals/features/objectives/model"
)

// Level hirarki objective. Lima tabel paralel dengan id masing-masing,
// jadi SEMUA referensi objective harus bawa level (id saja ambigu).
type Level string

const (
	LevelGlobal       Level = "GLOBAL"
	LevelBusinessUnit Level = "BUSINESS_UNIT"
	LevelDivision     Level = "DIVISION"
	LevelGrade        Level = "GRADE"
	LevelIndividual   Level = "INDIVIDUAL"
)

type levelInfo struct {
	Table string
	// level anak untuk cascade (kosong = daun)
	Child Level
	// level parent untuk cascade (kosong = akar)
	Parent Level
}

var levelRegistry = map[Level]levelInfo{
	LevelGlobal:       {Table: "global_objectives", Child: LevelBusinessUnit},
	LevelBusinessUnit: {Table: "business_unit_objectives", Child: LevelDivision, Parent: LevelGlobal},
	LevelDivision:     {Table: "division_objectives", Child: LevelIndividual, Parent: LevelBusinessUnit},
	LevelGrade:        {Table: "grade_objectives", Child: LevelIndividual, Parent: LevelDivision},
	LevelIndividual:   {Table: "individual_objectives", Parent: LevelDivision},
}

// Urutan probing kalau caller tidak kasih level hint (atas → bawah).
var probeOrder = []Level{LevelGlobal, LevelBusinessUnit, LevelDivision, LevelGrade, LevelIndividual}

func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levelRegistry[l]; !ok {
		return "", &ValidationError{Reason: "Level objective tidak dikenal: " + s}
	}
	return l, nil
}

func (l Level) valid() bool {
	_, ok := levelRegistry[l]
	return ok
}

func (l Level) table() string { return levelRegistry[l].Table }

// ChildLevel: level anak cascade; false kalau daun (INDIVIDUAL).
func (l Level) ChildLevel() (Level, bool) {
	c := levelRegistry[l].Child
	return c, c != ""
}

// ScopeEntityID: id entity pemilik portfolio objective baris ini.
// Global pakai fiscal year sebagai "entity" (portfolio firm-wide per exercice).
func ScopeEntityID(level Level, o *objModel.ObjectiveModel) uuid.UUID {
	switch level {
	case LevelGlobal:
		if o.ObjectiveFiscalYearID != nil {
			return *o.ObjectiveFiscalYearID
		}
	case LevelBusinessUnit:
		if o.ObjectiveBusinessUnitID != nil {
			return *o.ObjectiveBusinessUnitID
		}
	case LevelDivision:
		if o.ObjectiveDivisionID != nil {
			return *o.ObjectiveDivisionID
		}
	case LevelGrade:
		if o.ObjectiveGradeID != nil {
			return *o.ObjectiveGradeID
		}
	case LevelIndividual:
		if o.ObjectiveCollaboratorID != nil {
			return *o.ObjectiveCollaboratorID
		}
	}
	return uuid.Nil
}

// setScopeEntity mengisi kolom scope yang sesuai level.
func setScopeEntity(level Level, o *objModel.ObjectiveModel, entityID uuid.UUID) {
	id := entityID
	switch level {
	case LevelGlobal:
		o.ObjectiveFiscalYearID = &id
	case LevelBusinessUnit:
		o.ObjectiveBusinessUnitID = &id
	case LevelDivision:
		o.ObjectiveDivisionID = &id
	case LevelGrade:
		o.ObjectiveGradeID = &id
	case LevelIndividual:
		o.ObjectiveCollaboratorID = &id
	}
}

// scopeColumn: kolom scope per tabel level (untuk query GORM).
func scopeColumn(level Level) string {
	switch level {
	case LevelGlobal:
		return "objective_fiscal_year_id"
	case LevelBusinessUnit:
		return "objective_business_unit_id"
	case LevelDivision:
		return "objective_division_id"
	case LevelGrade:
		return "objective_grade_id"
	default:
		return "objective_collaborator_id"
	}
}
