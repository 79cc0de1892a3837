// file: internals/features/pipeline/model/pipeline_models.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Data mentah yang dibaca metric registry (campaigns, opportunities, missions).
// CRUD-nya milik sistem luar; di sini cuma kolom yang dibutuhkan kalkulator.

const (
	OpportunityOpen = "OPEN"
	OpportunityWon  = "WON"
	OpportunityLost = "LOST"

	MissionActive = "ACTIVE"
	MissionClosed = "CLOSED"
)

type CampaignModel struct {
	CampaignID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:campaign_id" json:"campaign_id"`
	CampaignName      string     `gorm:"type:varchar(160);not null;column:campaign_name"                   json:"campaign_name"`
	CampaignStatus    string     `gorm:"type:varchar(20);not null;default:'DRAFT';column:campaign_status"  json:"campaign_status"`
	CampaignFiscalYearID *uuid.UUID `gorm:"type:uuid;index;column:campaign_fiscal_year_id" json:"campaign_fiscal_year_id,omitempty"`
	CampaignCreatedBy *uuid.UUID `gorm:"type:uuid;column:campaign_created_by"                              json:"campaign_created_by,omitempty"`
	CampaignCreatedAt time.Time  `gorm:"type:timestamptz;not null;default:now();column:campaign_created_at" json:"campaign_created_at"`
}

func (CampaignModel) TableName() string { return "campaigns" }

type OpportunityModel struct {
	OpportunityID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:opportunity_id" json:"opportunity_id"`
	OpportunityStatus    string          `gorm:"type:varchar(20);not null;default:'OPEN';index;column:opportunity_status" json:"opportunity_status"`
	OpportunityAmount    decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0;column:opportunity_amount"      json:"opportunity_amount"`
	OpportunityFiscalYearID *uuid.UUID   `gorm:"type:uuid;index;column:opportunity_fiscal_year_id" json:"opportunity_fiscal_year_id,omitempty"`
	OpportunityCreatedAt time.Time       `gorm:"type:timestamptz;not null;default:now();column:opportunity_created_at" json:"opportunity_created_at"`
}

func (OpportunityModel) TableName() string { return "opportunities" }

type MissionModel struct {
	MissionID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:mission_id" json:"mission_id"`
	MissionStatus    string          `gorm:"type:varchar(20);not null;default:'ACTIVE';index;column:mission_status" json:"mission_status"`
	MissionBudget    decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0;column:mission_budget"      json:"mission_budget"`
	MissionFiscalYearID *uuid.UUID   `gorm:"type:uuid;index;column:mission_fiscal_year_id" json:"mission_fiscal_year_id,omitempty"`
	MissionCreatedAt time.Time       `gorm:"type:timestamptz;not null;default:now();column:mission_created_at" json:"mission_created_at"`
}

func (MissionModel) TableName() string { return "missions" }
