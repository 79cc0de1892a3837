// file: internals/features/objectives/service/hierarchy.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	objModel "pilotage_backend/internals/features/objectives/model"
)

// Hierarchy: potret objective satu exercice, dikelompokkan per level.
type Hierarchy struct {
	FiscalYearID uuid.UUID                 `json:"fiscal_year_id"`
	Global       []objModel.ObjectiveModel `json:"global"`
	BusinessUnit []objModel.ObjectiveModel `json:"business_unit"`
	Division     []objModel.ObjectiveModel `json:"division"`
	Grade        []objModel.ObjectiveModel `json:"grade"`
	Individual   []objModel.ObjectiveModel `json:"individual"`
}

// GetHierarchy mengambil seluruh objective satu fiscal year. scopeFilter
// (himpunan business unit id) dipakai layer HTTP untuk pembatasan akses:
// kosong = semua level termasuk GLOBAL; terisi = GLOBAL disembunyikan
// (caller dianggap terbatas scope) dan baris BU/Division/Individual
// dibatasi ke BU tersebut. Grade objectives tidak terikat BU, jadi ikut
// disembunyikan saat filter aktif.
func (s *Service) GetHierarchy(ctx context.Context, fiscalYearID uuid.UUID, scopeFilter []uuid.UUID) (*Hierarchy, error) {
	ok, err := s.stores.Dir.FiscalYearExists(ctx, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{Resource: "Fiscal year", Detail: fiscalYearID.String()}
	}

	h := &Hierarchy{FiscalYearID: fiscalYearID}

	if len(scopeFilter) == 0 {
		if h.Global, err = s.stores.Objectives.ListByFiscalYear(ctx, LevelGlobal, fiscalYearID, nil); err != nil {
			return nil, err
		}
		if h.BusinessUnit, err = s.stores.Objectives.ListByFiscalYear(ctx, LevelBusinessUnit, fiscalYearID, nil); err != nil {
			return nil, err
		}
		if h.Division, err = s.stores.Objectives.ListByFiscalYear(ctx, LevelDivision, fiscalYearID, nil); err != nil {
			return nil, err
		}
		if h.Grade, err = s.stores.Objectives.ListByFiscalYear(ctx, LevelGrade, fiscalYearID, nil); err != nil {
			return nil, err
		}
		if h.Individual, err = s.stores.Objectives.ListByFiscalYear(ctx, LevelIndividual, fiscalYearID, nil); err != nil {
			return nil, err
		}
		return h, nil
	}

	// Scope terbatas: turunkan himpunan division & collaborateur dari BU.
	var divisionIDs, collaboratorIDs []uuid.UUID
	for _, buID := range scopeFilter {
		divs, err := s.stores.Dir.ListDivisionsOfBusinessUnit(ctx, buID)
		if err != nil {
			return nil, err
		}
		for _, d := range divs {
			divisionIDs = append(divisionIDs, d.DivisionID)
			collabs, err := s.stores.Dir.ListActiveCollaboratorsOfDivision(ctx, d.DivisionID)
			if err != nil {
				return nil, err
			}
			for _, c := range collabs {
				collaboratorIDs = append(collaboratorIDs, c.CollaboratorID)
			}
		}
	}

	if h.BusinessUnit, err = s.stores.Objectives.ListByFiscalYear(ctx, LevelBusinessUnit, fiscalYearID, scopeFilter); err != nil {
		return nil, err
	}
	if len(divisionIDs) > 0 {
		if h.Division, err = s.stores.Objectives.ListByFiscalYear(ctx, LevelDivision, fiscalYearID, divisionIDs); err != nil {
			return nil, err
		}
	}
	if len(collaboratorIDs) > 0 {
		if h.Individual, err = s.stores.Objectives.ListByFiscalYear(ctx, LevelIndividual, fiscalYearID, collaboratorIDs); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// CreateObjectiveInput: authoring langsung di satu level (bukan cascade).
type CreateObjectiveInput struct {
	FiscalYearID uuid.UUID
	EntityID     uuid.UUID // BU / division / grade / collaborateur sesuai level; diabaikan untuk GLOBAL
	Mode         string
	TypeID       *uuid.UUID
	MetricID     *uuid.UUID
	TrackingType string
	MetricCode   *string
	TargetValue  decimal.Decimal
	Title        *string
	Description  *string
	CreatedBy    uuid.UUID
}

// CreateObjective menulis objective non-cascade di level manapun,
// menginisialisasi progress (current 0), lalu rebalance portfolio entity.
func (s *Service) CreateObjective(ctx context.Context, level Level, in CreateObjectiveInput) (*objModel.ObjectiveModel, error) {
	if !level.valid() {
		return nil, &ValidationError{Reason: "Level objective tidak dikenal: " + string(level)}
	}
	if in.TargetValue.IsNegative() {
		return nil, &ValidationError{Reason: "Target value tidak boleh negatif: " + in.TargetValue.String()}
	}
	switch in.Mode {
	case objModel.ObjectiveModeType:
		if in.TypeID == nil {
			return nil, &ValidationError{Reason: "Mode TYPE butuh objective_type_id"}
		}
	case objModel.ObjectiveModeMetric:
		if in.MetricID == nil {
			return nil, &ValidationError{Reason: "Mode METRIC butuh objective_metric_id"}
		}
	default:
		return nil, &ValidationError{Reason: "Mode objective tidak dikenal: " + in.Mode}
	}
	switch in.TrackingType {
	case objModel.TrackingManual:
	case objModel.TrackingAutomatic:
		if in.MetricCode == nil {
			return nil, &ValidationError{Reason: "Tracking AUTOMATIC butuh metric_code"}
		}
		if _, ok := s.metrics.Lookup(*in.MetricCode); !ok {
			return nil, &ValidationError{Reason: "Metric code tidak terdaftar: " + *in.MetricCode}
		}
	default:
		return nil, &ValidationError{Reason: "Tracking type tidak dikenal: " + in.TrackingType}
	}

	fyOK, err := s.stores.Dir.FiscalYearExists(ctx, in.FiscalYearID)
	if err != nil {
		return nil, err
	}
	if !fyOK {
		return nil, &NotFoundError{Resource: "Fiscal year", Detail: in.FiscalYearID.String()}
	}

	entityID := in.EntityID
	if level == LevelGlobal {
		// Portfolio global digantung ke fiscal year.
		entityID = in.FiscalYearID
	} else {
		if entityID == uuid.Nil {
			return nil, &ValidationError{Reason: "entity_id wajib diisi untuk level " + string(level)}
		}
		if err := s.checkEntityExists(ctx, level, entityID); err != nil {
			return nil, err
		}
	}

	fy := in.FiscalYearID
	row := &objModel.ObjectiveModel{
		ObjectiveID:           uuid.New(),
		ObjectiveFiscalYearID: &fy,
		ObjectiveMode:         in.Mode,
		ObjectiveTypeID:       in.TypeID,
		ObjectiveMetricID:     in.MetricID,
		ObjectiveTrackingType: in.TrackingType,
		ObjectiveMetricCode:   in.MetricCode,
		ObjectiveTargetValue:  in.TargetValue,
		ObjectiveTitle:        in.Title,
		ObjectiveDescription:  in.Description,
		ObjectiveCreatedBy:    in.CreatedBy,
	}
	setScopeEntity(level, row, entityID)

	unlock := s.lockScope(level, entityID)
	defer unlock()

	err = s.tx.RunInTx(ctx, func(tx *Stores) error {
		if err := tx.Objectives.Create(ctx, level, row); err != nil {
			return err
		}
		if err := s.syncProgress(ctx, tx, level, row, in.CreatedBy); err != nil {
			return err
		}
		_, err := s.rebalanceScope(ctx, tx, level, entityID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) checkEntityExists(ctx context.Context, level Level, entityID uuid.UUID) error {
	var (
		ok  bool
		err error
		res string
	)
	switch level {
	case LevelBusinessUnit:
		ok, err = s.stores.Dir.BusinessUnitExists(ctx, entityID)
		res = "Business unit"
	case LevelDivision:
		ok, err = s.stores.Dir.DivisionExists(ctx, entityID)
		res = "Division"
	case LevelGrade:
		ok, err = s.stores.Dir.GradeExists(ctx, entityID)
		res = "Grade"
	case LevelIndividual:
		ok, err = s.stores.Dir.CollaboratorExists(ctx, entityID)
		res = "Collaborateur"
	}
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Resource: res, Detail: entityID.String()}
	}
	return nil
}

// GetObjective: satu objective by (level?, id).
func (s *Service) GetObjective(ctx context.Context, id uuid.UUID, levelHint Level) (Level, *objModel.ObjectiveModel, error) {
	return s.ResolveObjective(ctx, id, levelHint)
}

// DeleteObjective menghapus objective + progress-nya. Anak cascade TIDAK
// ikut terhapus dan TIDAK diubah: parent_id-nya tetap menunjuk id yang sudah
// dihapus (orphan). Mereka hidup terus di level-nya dan dianggap manual saat
// diedit berikutnya; tidak ada path yang resolve parent dari sisi anak, jadi
// referensi menggantung ini aman dibaca.
func (s *Service) DeleteObjective(ctx context.Context, level Level, id uuid.UUID) (int64, error) {
	if !level.valid() {
		return 0, &ValidationError{Reason: "Level objective tidak dikenal: " + string(level)}
	}
	o, err := s.stores.Objectives.Get(ctx, level, id)
	if err != nil {
		return 0, err
	}
	if o == nil {
		return 0, &NotFoundError{Resource: "Objective", Detail: id.String()}
	}
	entityID := ScopeEntityID(level, o)

	unlock := s.lockScope(level, entityID)
	defer unlock()

	var orphaned int64
	err = s.tx.RunInTx(ctx, func(tx *Stores) error {
		if childLevel, ok := level.ChildLevel(); ok {
			children, err := tx.Objectives.ListCascadedChildren(ctx, childLevel, id)
			if err != nil {
				return err
			}
			orphaned = int64(len(children))
		}
		if err := tx.Progress.Delete(ctx, level, id); err != nil {
			return err
		}
		if err := tx.Objectives.Delete(ctx, level, id); err != nil {
			return err
		}
		_, err := s.rebalanceScope(ctx, tx, level, entityID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return orphaned, nil
}
