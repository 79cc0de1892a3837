// file: internals/features/organization/model/organization_models.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Model organisasi di bawah ini read-only untuk modul objectives:
// CRUD-nya dimiliki sistem luar, kita hanya butuh id + relasi struktural
// (division → BU, collaborator → division/BU/grade) untuk scoping distribusi.

type BusinessUnitModel struct {
	BusinessUnitID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:business_unit_id" json:"business_unit_id"`
	BusinessUnitCode     string    `gorm:"type:varchar(30);not null;uniqueIndex;column:business_unit_code"        json:"business_unit_code"`
	BusinessUnitName     string    `gorm:"type:varchar(120);not null;column:business_unit_name"                   json:"business_unit_name"`
	BusinessUnitIsActive bool      `gorm:"not null;default:true;column:business_unit_is_active"                   json:"business_unit_is_active"`
}

func (BusinessUnitModel) TableName() string { return "business_units" }

type DivisionModel struct {
	DivisionID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:division_id" json:"division_id"`
	DivisionName           string    `gorm:"type:varchar(120);not null;column:division_name"                   json:"division_name"`
	DivisionBusinessUnitID uuid.UUID `gorm:"type:uuid;not null;index;column:division_business_unit_id"         json:"division_business_unit_id"`
	DivisionIsActive       bool      `gorm:"not null;default:true;column:division_is_active"                   json:"division_is_active"`
}

func (DivisionModel) TableName() string { return "divisions" }

type GradeModel struct {
	GradeID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:grade_id" json:"grade_id"`
	GradeName string    `gorm:"type:varchar(80);not null;column:grade_name"                    json:"grade_name"`
	GradeRank *int      `gorm:"column:grade_rank"                                              json:"grade_rank,omitempty"`
}

func (GradeModel) TableName() string { return "grades" }

type CollaboratorModel struct {
	CollaboratorID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:collaborator_id" json:"collaborator_id"`
	CollaboratorUserID         *uuid.UUID `gorm:"type:uuid;column:collaborator_user_id"                                 json:"collaborator_user_id,omitempty"`
	CollaboratorFullName       string     `gorm:"type:varchar(160);not null;column:collaborator_full_name"              json:"collaborator_full_name"`
	CollaboratorDivisionID     *uuid.UUID `gorm:"type:uuid;index;column:collaborator_division_id"                       json:"collaborator_division_id,omitempty"`
	CollaboratorBusinessUnitID *uuid.UUID `gorm:"type:uuid;index;column:collaborator_business_unit_id"                  json:"collaborator_business_unit_id,omitempty"`
	CollaboratorGradeID        *uuid.UUID `gorm:"type:uuid;index;column:collaborator_grade_id"                          json:"collaborator_grade_id,omitempty"`
	CollaboratorIsActive       bool       `gorm:"not null;default:true;column:collaborator_is_active"                   json:"collaborator_is_active"`
}

func (CollaboratorModel) TableName() string { return "collaborateurs" }

type FiscalYearModel struct {
	FiscalYearID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:fiscal_year_id" json:"fiscal_year_id"`
	FiscalYearLabel     string    `gorm:"type:varchar(20);not null;column:fiscal_year_label"                   json:"fiscal_year_label"`
	FiscalYearStartDate time.Time `gorm:"type:date;not null;column:fiscal_year_start_date"                     json:"fiscal_year_start_date"`
	FiscalYearEndDate   time.Time `gorm:"type:date;not null;column:fiscal_year_end_date"                       json:"fiscal_year_end_date"`
	FiscalYearIsCurrent bool      `gorm:"not null;default:false;column:fiscal_year_is_current"                 json:"fiscal_year_is_current"`
}

func (FiscalYearModel) TableName() string { return "fiscal_years" }
