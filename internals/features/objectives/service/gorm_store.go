// file: internals/features/objectives/service/gorm_store.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	objModel "pilotage_backend/internals/features/objectives/model"
	orgModel "pilotage_backend/internals/features/organization/model"
	pipModel "pilotage_backend/internals/features/pipeline/model"
)

/* =========================================================
   ObjectiveStore (GORM / Postgres)
========================================================= */

type gormObjectiveStore struct {
	db *gorm.DB
}

func (s *gormObjectiveStore) tbl(ctx context.Context, level Level) *gorm.DB {
	return s.db.WithContext(ctx).Table(level.table())
}

func (s *gormObjectiveStore) Get(ctx context.Context, level Level, id uuid.UUID) (*objModel.ObjectiveModel, error) {
	var o objModel.ObjectiveModel
	err := s.tbl(ctx, level).Where("objective_id = ?", id).Take(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *gormObjectiveStore) ListByScope(ctx context.Context, level Level, entityID uuid.UUID) ([]objModel.ObjectiveModel, error) {
	var out []objModel.ObjectiveModel
	err := s.tbl(ctx, level).
		Where(scopeColumn(level)+" = ?", entityID).
		Order("objective_created_at ASC").
		Find(&out).Error
	return out, err
}

func (s *gormObjectiveStore) ListByFiscalYear(ctx context.Context, level Level, fiscalYearID uuid.UUID, scopeIDs []uuid.UUID) ([]objModel.ObjectiveModel, error) {
	q := s.tbl(ctx, level).Where("objective_fiscal_year_id = ?", fiscalYearID)
	if len(scopeIDs) > 0 {
		q = q.Where(scopeColumn(level)+" IN ?", scopeIDs)
	}
	var out []objModel.ObjectiveModel
	err := q.Order("objective_created_at ASC").Find(&out).Error
	return out, err
}

func (s *gormObjectiveStore) ListCascadedChildren(ctx context.Context, childLevel Level, parentID uuid.UUID) ([]objModel.ObjectiveModel, error) {
	var out []objModel.ObjectiveModel
	err := s.tbl(ctx, childLevel).
		Where("objective_parent_id = ? AND objective_is_cascaded = TRUE", parentID).
		Order("objective_created_at ASC").
		Find(&out).Error
	return out, err
}

func (s *gormObjectiveStore) FindCascaded(ctx context.Context, childLevel Level, parentID, entityID uuid.UUID) (*objModel.ObjectiveModel, error) {
	var o objModel.ObjectiveModel
	err := s.tbl(ctx, childLevel).
		Where("objective_parent_id = ? AND objective_is_cascaded = TRUE AND "+scopeColumn(childLevel)+" = ?", parentID, entityID).
		Take(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *gormObjectiveStore) ListAutomaticByMetricCode(ctx context.Context, level Level, metricCode string) ([]objModel.ObjectiveModel, error) {
	var out []objModel.ObjectiveModel
	err := s.tbl(ctx, level).
		Where("objective_tracking_type = ? AND objective_metric_code = ?", objModel.TrackingAutomatic, metricCode).
		Find(&out).Error
	return out, err
}

func (s *gormObjectiveStore) Create(ctx context.Context, level Level, o *objModel.ObjectiveModel) error {
	if o.ObjectiveID == uuid.Nil {
		o.ObjectiveID = uuid.New()
	}
	now := time.Now()
	o.ObjectiveCreatedAt = now
	o.ObjectiveUpdatedAt = now
	return s.tbl(ctx, level).Create(o).Error
}

func (s *gormObjectiveStore) Update(ctx context.Context, level Level, o *objModel.ObjectiveModel) error {
	o.ObjectiveUpdatedAt = time.Now()
	res := s.tbl(ctx, level).
		Where("objective_id = ?", o.ObjectiveID).
		Updates(o)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Resource: "Objective", Detail: o.ObjectiveID.String()}
	}
	return nil
}

func (s *gormObjectiveStore) UpdateWeights(ctx context.Context, level Level, weights map[uuid.UUID]decimal.Decimal) error {
	now := time.Now()
	for id, w := range weights {
		if err := s.tbl(ctx, level).
			Where("objective_id = ?", id).
			Updates(map[string]any{
				"objective_weight":     w,
				"objective_updated_at": now,
			}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *gormObjectiveStore) Delete(ctx context.Context, level Level, id uuid.UUID) error {
	res := s.tbl(ctx, level).Where("objective_id = ?", id).Delete(&objModel.ObjectiveModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Resource: "Objective", Detail: id.String()}
	}
	return nil
}

/* =========================================================
   ProgressStore (GORM / Postgres)
========================================================= */

type gormProgressStore struct {
	db *gorm.DB
}

func (s *gormProgressStore) Get(ctx context.Context, level Level, objectiveID uuid.UUID) (*objModel.ObjectiveProgressModel, error) {
	var p objModel.ObjectiveProgressModel
	err := s.db.WithContext(ctx).
		Where("objective_progress_level = ? AND objective_progress_objective_id = ?", string(level), objectiveID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *gormProgressStore) Upsert(ctx context.Context, p *objModel.ObjectiveProgressModel) error {
	now := time.Now()
	if p.ObjectiveProgressCreatedAt.IsZero() {
		p.ObjectiveProgressCreatedAt = now
	}
	p.ObjectiveProgressUpdatedAt = now
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "objective_progress_level"},
				{Name: "objective_progress_objective_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"objective_progress_target_value",
				"objective_progress_current_value",
				"objective_progress_notes",
				"objective_progress_updated_by",
				"objective_progress_measured_at",
				"objective_progress_updated_at",
			}),
		}).
		Create(p).Error
}

func (s *gormProgressStore) Delete(ctx context.Context, level Level, objectiveID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("objective_progress_level = ? AND objective_progress_objective_id = ?", string(level), objectiveID).
		Delete(&objModel.ObjectiveProgressModel{}).Error
}

/* =========================================================
   Directory (GORM / Postgres, read-only)
========================================================= */

type gormDirectory struct {
	db *gorm.DB
}

func (d *gormDirectory) exists(ctx context.Context, model any, where string, args ...any) (bool, error) {
	var n int64
	err := d.db.WithContext(ctx).Model(model).Where(where, args...).Count(&n).Error
	return n > 0, err
}

func (d *gormDirectory) FiscalYearExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return d.exists(ctx, &orgModel.FiscalYearModel{}, "fiscal_year_id = ?", id)
}

func (d *gormDirectory) BusinessUnitExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return d.exists(ctx, &orgModel.BusinessUnitModel{}, "business_unit_id = ? AND business_unit_is_active = TRUE", id)
}

func (d *gormDirectory) DivisionExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return d.exists(ctx, &orgModel.DivisionModel{}, "division_id = ? AND division_is_active = TRUE", id)
}

func (d *gormDirectory) GradeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return d.exists(ctx, &orgModel.GradeModel{}, "grade_id = ?", id)
}

func (d *gormDirectory) CollaboratorExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return d.exists(ctx, &orgModel.CollaboratorModel{}, "collaborator_id = ? AND collaborator_is_active = TRUE", id)
}

func (d *gormDirectory) DivisionInBusinessUnit(ctx context.Context, divisionID, businessUnitID uuid.UUID) (bool, error) {
	return d.exists(ctx, &orgModel.DivisionModel{},
		"division_id = ? AND division_business_unit_id = ? AND division_is_active = TRUE", divisionID, businessUnitID)
}

func (d *gormDirectory) CollaboratorInDivision(ctx context.Context, collaboratorID, divisionID uuid.UUID) (bool, error) {
	return d.exists(ctx, &orgModel.CollaboratorModel{},
		"collaborator_id = ? AND collaborator_division_id = ? AND collaborator_is_active = TRUE", collaboratorID, divisionID)
}

func (d *gormDirectory) CollaboratorHasGrade(ctx context.Context, collaboratorID, gradeID uuid.UUID) (bool, error) {
	return d.exists(ctx, &orgModel.CollaboratorModel{},
		"collaborator_id = ? AND collaborator_grade_id = ? AND collaborator_is_active = TRUE", collaboratorID, gradeID)
}

func (d *gormDirectory) ListBusinessUnits(ctx context.Context) ([]orgModel.BusinessUnitModel, error) {
	var out []orgModel.BusinessUnitModel
	err := d.db.WithContext(ctx).
		Where("business_unit_is_active = TRUE").
		Order("business_unit_name ASC").
		Find(&out).Error
	return out, err
}

func (d *gormDirectory) ListDivisionsOfBusinessUnit(ctx context.Context, businessUnitID uuid.UUID) ([]orgModel.DivisionModel, error) {
	var out []orgModel.DivisionModel
	err := d.db.WithContext(ctx).
		Where("division_business_unit_id = ? AND division_is_active = TRUE", businessUnitID).
		Order("division_name ASC").
		Find(&out).Error
	return out, err
}

func (d *gormDirectory) ListActiveCollaboratorsOfDivision(ctx context.Context, divisionID uuid.UUID) ([]orgModel.CollaboratorModel, error) {
	var out []orgModel.CollaboratorModel
	err := d.db.WithContext(ctx).
		Where("collaborator_division_id = ? AND collaborator_is_active = TRUE", divisionID).
		Order("collaborator_full_name ASC").
		Find(&out).Error
	return out, err
}

func (d *gormDirectory) ListGradeCollaboratorsOfDivision(ctx context.Context, gradeID, divisionID uuid.UUID) ([]orgModel.CollaboratorModel, error) {
	var out []orgModel.CollaboratorModel
	err := d.db.WithContext(ctx).
		Where("collaborator_grade_id = ? AND collaborator_division_id = ? AND collaborator_is_active = TRUE", gradeID, divisionID).
		Order("collaborator_full_name ASC").
		Find(&out).Error
	return out, err
}

/* =========================================================
   MetricSource (GORM / Postgres)
========================================================= */

type gormMetricSource struct {
	db *gorm.DB
}

func fyScoped(q *gorm.DB, column string, fiscalYearID *uuid.UUID) *gorm.DB {
	if fiscalYearID != nil {
		return q.Where(column+" = ?", *fiscalYearID)
	}
	return q
}

func (m *gormMetricSource) CampaignsCount(ctx context.Context, fiscalYearID *uuid.UUID) (int64, error) {
	var n int64
	q := m.db.WithContext(ctx).Model(&pipModel.CampaignModel{})
	err := fyScoped(q, "campaign_fiscal_year_id", fiscalYearID).Count(&n).Error
	return n, err
}

func (m *gormMetricSource) OpportunitiesWonAndTotal(ctx context.Context, fiscalYearID *uuid.UUID) (int64, int64, error) {
	var won, total int64
	if err := fyScoped(m.db.WithContext(ctx).Model(&pipModel.OpportunityModel{}), "opportunity_fiscal_year_id", fiscalYearID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := fyScoped(m.db.WithContext(ctx).Model(&pipModel.OpportunityModel{}), "opportunity_fiscal_year_id", fiscalYearID).
		Where("opportunity_status = ?", pipModel.OpportunityWon).
		Count(&won).Error; err != nil {
		return 0, 0, err
	}
	return won, total, nil
}

func (m *gormMetricSource) MissionsBudgetSum(ctx context.Context, fiscalYearID *uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	q := m.db.WithContext(ctx).Model(&pipModel.MissionModel{}).
		Select("COALESCE(SUM(mission_budget), 0) AS total")
	err := fyScoped(q, "mission_fiscal_year_id", fiscalYearID).Scan(&row).Error
	return row.Total, err
}

func (m *gormMetricSource) ActiveMissionsCount(ctx context.Context, fiscalYearID *uuid.UUID) (int64, error) {
	var n int64
	q := m.db.WithContext(ctx).Model(&pipModel.MissionModel{}).
		Where("mission_status = ?", pipModel.MissionActive)
	err := fyScoped(q, "mission_fiscal_year_id", fiscalYearID).Count(&n).Error
	return n, err
}

/* =========================================================
   Wiring
========================================================= */

// NewGormStores merakit semua store di atas satu koneksi GORM.
func NewGormStores(db *gorm.DB) *Stores {
	return &Stores{
		Objectives: &gormObjectiveStore{db: db},
		Progress:   &gormProgressStore{db: db},
		Dir:        &gormDirectory{db: db},
		Metrics:    &gormMetricSource{db: db},
	}
}

type gormTxRunner struct {
	db *gorm.DB
}

// NewGormTxRunner: TxRunner di atas gorm.DB.Transaction.
func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) RunInTx(ctx context.Context, fn func(tx *Stores) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStores(tx))
	})
}
