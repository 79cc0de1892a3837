// file: internals/features/objectives/service/distribution.go
package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	objModel "pilotage_backend/internals/features/objectives/model"
)

// DistributionChild: satu alokasi target ke satu entity level anak.
type DistributionChild struct {
	EntityID    uuid.UUID
	TargetValue decimal.Decimal
	Title       *string
	Description *string
}

// DistributionResult: hasil satu batch distribusi.
type DistributionResult struct {
	ParentID         uuid.UUID                 `json:"parent_id"`
	ParentLevel      Level                     `json:"parent_level"`
	ChildLevel       Level                     `json:"child_level"`
	Created          int                       `json:"created"`
	Updated          int                       `json:"updated"`
	TotalDistributed decimal.Decimal           `json:"total_distributed"`
	RemainingAfter   decimal.Decimal           `json:"remaining_after"`
	Children         []objModel.ObjectiveModel `json:"children"`
	Warning          *CapacityWarning          `json:"capacity_warning,omitempty"`
}

// RemainingCapacity: sisa kapasitas parent terhadap anak cascade-nya.
type RemainingCapacity struct {
	ObjectiveID   uuid.UUID       `json:"objective_id"`
	Level         Level           `json:"level"`
	TargetValue   decimal.Decimal `json:"target_value"`
	Allocated     decimal.Decimal `json:"allocated"`
	Remaining     decimal.Decimal `json:"remaining"`
	ChildrenCount int             `json:"children_count"`
}

// CandidateEntity: kandidat distribusi di level anak, plus anotasi
// apakah sudah punya objective cascade dari parent ini.
type CandidateEntity struct {
	EntityID            uuid.UUID        `json:"entity_id"`
	Name                string           `json:"name"`
	GradeID             *uuid.UUID       `json:"grade_id,omitempty"`
	AlreadyDistributed  bool             `json:"already_distributed"`
	ExistingObjectiveID *uuid.UUID       `json:"existing_objective_id,omitempty"`
	ExistingTarget      *decimal.Decimal `json:"existing_target,omitempty"`
}

// DistributionSummary: parent + semua anak cascade-nya + totalnya.
type DistributionSummary struct {
	Parent           objModel.ObjectiveModel   `json:"parent"`
	ParentLevel      Level                     `json:"parent_level"`
	ChildLevel       Level                     `json:"child_level"`
	Children         []objModel.ObjectiveModel `json:"children"`
	ChildrenCount    int                       `json:"children_count"`
	TotalDistributed decimal.Decimal           `json:"total_distributed"`
	Remaining        decimal.Decimal           `json:"remaining"`
}

// Distribute meng-cascade target parent ke entity-entity level anak.
// Validasi dulu SEMUA anak, baru menulis: batch yang setengah valid tidak
// boleh meninggalkan tulisan parsial. Over-alokasi bukan error — cuma
// CapacityWarning di result.
func (s *Service) Distribute(ctx context.Context, parentID uuid.UUID, parentLevel Level, children []DistributionChild, createdBy uuid.UUID) (*DistributionResult, error) {
	level, parent, err := s.ResolveObjective(ctx, parentID, parentLevel)
	if err != nil {
		return nil, err
	}
	childLevel, ok := level.ChildLevel()
	if !ok {
		return nil, &ValidationError{Reason: "Objective level INDIVIDUAL tidak bisa didistribusi lagi"}
	}
	if err := s.validateChildren(ctx, level, parent, childLevel, children); err != nil {
		return nil, err
	}
	return s.distribute(ctx, level, parent, childLevel, children, nil, createdBy)
}

// validateChildren: fase validasi sebelum tulis (mode, target, membership).
func (s *Service) validateChildren(ctx context.Context, parentLevel Level, parent *objModel.ObjectiveModel, childLevel Level, children []DistributionChild) error {
	if len(children) == 0 {
		return &ValidationError{Reason: "Daftar distribusi kosong"}
	}
	if parent.ObjectiveMode == objModel.ObjectiveModeMetric && childLevel == LevelIndividual {
		return &ValidationError{Reason: "Objective mode METRIC tidak bisa didistribusi ke level INDIVIDUAL"}
	}

	seen := make(map[uuid.UUID]bool, len(children))
	for _, c := range children {
		if c.EntityID == uuid.Nil {
			return &ValidationError{Reason: "entity_id wajib diisi"}
		}
		if seen[c.EntityID] {
			return &ValidationError{Reason: "Entity duplikat dalam satu batch: " + c.EntityID.String()}
		}
		seen[c.EntityID] = true
		if c.TargetValue.IsNegative() {
			return &ValidationError{Reason: "Target value tidak boleh negatif: " + c.TargetValue.String()}
		}
		if err := s.checkMembership(ctx, parentLevel, parent, c.EntityID); err != nil {
			return err
		}
	}
	return nil
}

// checkMembership: entity anak memang di bawah scope parent?
func (s *Service) checkMembership(ctx context.Context, parentLevel Level, parent *objModel.ObjectiveModel, entityID uuid.UUID) error {
	switch {
	case parentLevel == LevelGlobal:
		ok, err := s.stores.Dir.BusinessUnitExists(ctx, entityID)
		if err != nil {
			return err
		}
		if !ok {
			return &NotFoundError{Resource: "Business unit", Detail: entityID.String()}
		}
	case parentLevel == LevelBusinessUnit:
		ok, err := s.stores.Dir.DivisionExists(ctx, entityID)
		if err != nil {
			return err
		}
		if !ok {
			return &NotFoundError{Resource: "Division", Detail: entityID.String()}
		}
		if parent.ObjectiveBusinessUnitID == nil {
			return &ConsistencyError{Reason: "Objective parent tidak punya business unit"}
		}
		in, err := s.stores.Dir.DivisionInBusinessUnit(ctx, entityID, *parent.ObjectiveBusinessUnitID)
		if err != nil {
			return err
		}
		if !in {
			return &ConsistencyError{Reason: fmt.Sprintf("Division %s bukan bagian business unit %s", entityID, *parent.ObjectiveBusinessUnitID)}
		}
	case parentLevel == LevelDivision:
		ok, err := s.stores.Dir.CollaboratorExists(ctx, entityID)
		if err != nil {
			return err
		}
		if !ok {
			return &NotFoundError{Resource: "Collaborateur", Detail: entityID.String()}
		}
		if parent.ObjectiveDivisionID == nil {
			return &ConsistencyError{Reason: "Objective parent tidak punya division"}
		}
		in, err := s.stores.Dir.CollaboratorInDivision(ctx, entityID, *parent.ObjectiveDivisionID)
		if err != nil {
			return err
		}
		if !in {
			return &ConsistencyError{Reason: fmt.Sprintf("Collaborateur %s bukan anggota division %s", entityID, *parent.ObjectiveDivisionID)}
		}
	case parentLevel == LevelGrade:
		ok, err := s.stores.Dir.CollaboratorExists(ctx, entityID)
		if err != nil {
			return err
		}
		if !ok {
			return &NotFoundError{Resource: "Collaborateur", Detail: entityID.String()}
		}
		if parent.ObjectiveGradeID == nil {
			return &ConsistencyError{Reason: "Objective parent tidak punya grade"}
		}
		has, err := s.stores.Dir.CollaboratorHasGrade(ctx, entityID, *parent.ObjectiveGradeID)
		if err != nil {
			return err
		}
		if !has {
			return &ConsistencyError{Reason: fmt.Sprintf("Collaborateur %s tidak memegang grade %s", entityID, *parent.ObjectiveGradeID)}
		}
	default:
		return &ValidationError{Reason: "Level parent tidak bisa didistribusi: " + string(parentLevel)}
	}
	return nil
}

// distribute: fase tulis. Upsert idempoten per (parent, entity), lalu
// rebalance tiap entity yang tersentuh. Satu transaksi untuk seluruh batch.
func (s *Service) distribute(ctx context.Context, parentLevel Level, parent *objModel.ObjectiveModel, childLevel Level, children []DistributionChild, targetGradeID *uuid.UUID, createdBy uuid.UUID) (*DistributionResult, error) {
	// Serialisasi per entity anak: dua batch konkuren yang menyentuh entity
	// sama tidak boleh menghitung bobot dari N basi. Urutkan dulu supaya
	// urutan ambil lock deterministik.
	entityIDs := make([]uuid.UUID, 0, len(children))
	for _, c := range children {
		entityIDs = append(entityIDs, c.EntityID)
	}
	sort.Slice(entityIDs, func(i, j int) bool { return entityIDs[i].String() < entityIDs[j].String() })
	for _, id := range entityIDs {
		unlock := s.lockScope(childLevel, id)
		defer unlock()
	}

	res := &DistributionResult{
		ParentID:         parent.ObjectiveID,
		ParentLevel:      parentLevel,
		ChildLevel:       childLevel,
		TotalDistributed: decimal.Zero,
	}

	err := s.tx.RunInTx(ctx, func(tx *Stores) error {
		for _, c := range children {
			existing, err := tx.Objectives.FindCascaded(ctx, childLevel, parent.ObjectiveID, c.EntityID)
			if err != nil {
				return err
			}
			var row *objModel.ObjectiveModel
			if existing != nil {
				existing.ObjectiveTargetValue = c.TargetValue
				if c.Title != nil {
					existing.ObjectiveTitle = c.Title
				}
				if c.Description != nil {
					existing.ObjectiveDescription = c.Description
				}
				if err := tx.Objectives.Update(ctx, childLevel, existing); err != nil {
					return err
				}
				res.Updated++
				row = existing
			} else {
				row = s.newCascadedChild(parent, childLevel, c, targetGradeID, createdBy)
				if err := tx.Objectives.Create(ctx, childLevel, row); err != nil {
					return err
				}
				res.Created++
			}
			if err := s.syncProgress(ctx, tx, childLevel, row, createdBy); err != nil {
				return err
			}
			res.TotalDistributed = res.TotalDistributed.Add(c.TargetValue)
			res.Children = append(res.Children, *row)
		}

		for _, id := range entityIDs {
			if _, err := s.rebalanceScope(ctx, tx, childLevel, id); err != nil {
				return err
			}
		}

		// Kapasitas dihitung SETELAH batch, di transaksi yang sama.
		allocated, _, err := s.allocatedToChildren(ctx, tx, childLevel, parent.ObjectiveID)
		if err != nil {
			return err
		}
		res.RemainingAfter = parent.ObjectiveTargetValue.Sub(allocated)
		if allocated.GreaterThan(parent.ObjectiveTargetValue) {
			excess := allocated.Sub(parent.ObjectiveTargetValue)
			res.Warning = &CapacityWarning{
				ParentTarget:   parent.ObjectiveTargetValue.String(),
				TotalAllocated: allocated.String(),
				Excess:         excess.String(),
				Message:        "Total distribusi melebihi target parent sebesar " + excess.String(),
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// newCascadedChild: baris anak baru mewarisi mode/type/metric/tracking/
// fiscal year dari parent.
func (s *Service) newCascadedChild(parent *objModel.ObjectiveModel, childLevel Level, c DistributionChild, targetGradeID *uuid.UUID, createdBy uuid.UUID) *objModel.ObjectiveModel {
	parentID := parent.ObjectiveID
	row := &objModel.ObjectiveModel{
		ObjectiveID:           uuid.New(),
		ObjectiveFiscalYearID: parent.ObjectiveFiscalYearID,
		ObjectiveMode:         parent.ObjectiveMode,
		ObjectiveTypeID:       parent.ObjectiveTypeID,
		ObjectiveMetricID:     parent.ObjectiveMetricID,
		ObjectiveTrackingType: parent.ObjectiveTrackingType,
		ObjectiveMetricCode:   parent.ObjectiveMetricCode,
		ObjectiveTargetValue:  c.TargetValue,
		ObjectiveParentID:     &parentID,
		ObjectiveIsCascaded:   true,
		ObjectiveTargetGradeID: targetGradeID,
		ObjectiveTitle:        c.Title,
		ObjectiveDescription:  c.Description,
		ObjectiveCreatedBy:    createdBy,
	}
	if row.ObjectiveTitle == nil {
		row.ObjectiveTitle = parent.ObjectiveTitle
	}
	if row.ObjectiveDescription == nil {
		row.ObjectiveDescription = parent.ObjectiveDescription
	}
	setScopeEntity(childLevel, row, c.EntityID)
	return row
}

// syncProgress: upsert snapshot progress (target mengikuti objective,
// current dipertahankan oleh ON CONFLICT hanya kalau baris baru — update
// di sini cuma menyetel ulang target snapshot).
func (s *Service) syncProgress(ctx context.Context, tx *Stores, level Level, row *objModel.ObjectiveModel, actorID uuid.UUID) error {
	existing, err := tx.Progress.Get(ctx, level, row.ObjectiveID)
	if err != nil {
		return err
	}
	p := &objModel.ObjectiveProgressModel{
		ObjectiveProgressLevel:       string(level),
		ObjectiveProgressObjectiveID: row.ObjectiveID,
		ObjectiveProgressTargetValue: row.ObjectiveTargetValue,
	}
	if existing != nil {
		p.ObjectiveProgressCurrentValue = existing.ObjectiveProgressCurrentValue
		p.ObjectiveProgressNotes = existing.ObjectiveProgressNotes
		p.ObjectiveProgressUpdatedBy = existing.ObjectiveProgressUpdatedBy
		p.ObjectiveProgressMeasuredAt = existing.ObjectiveProgressMeasuredAt
		p.ObjectiveProgressCreatedAt = existing.ObjectiveProgressCreatedAt
	} else {
		actor := actorID
		p.ObjectiveProgressUpdatedBy = &actor
	}
	return tx.Progress.Upsert(ctx, p)
}

// allocatedToChildren: Σ target anak cascade langsung (is_cascaded saja —
// saudara yang ditulis manual di level anak TIDAK memakan kapasitas parent).
func (s *Service) allocatedToChildren(ctx context.Context, st *Stores, childLevel Level, parentID uuid.UUID) (decimal.Decimal, int, error) {
	rows, err := st.Objectives.ListCascadedChildren(ctx, childLevel, parentID)
	if err != nil {
		return decimal.Zero, 0, err
	}
	total := decimal.Zero
	for i := range rows {
		total = total.Add(rows[i].ObjectiveTargetValue)
	}
	return total, len(rows), nil
}

// GetRemainingCapacity: target parent dikurangi total anak cascade.
func (s *Service) GetRemainingCapacity(ctx context.Context, id uuid.UUID, levelHint Level) (*RemainingCapacity, error) {
	level, o, err := s.ResolveObjective(ctx, id, levelHint)
	if err != nil {
		return nil, err
	}
	childLevel, ok := level.ChildLevel()
	if !ok {
		// Daun: kapasitas penuh, tak ada anak.
		return &RemainingCapacity{
			ObjectiveID: o.ObjectiveID, Level: level,
			TargetValue: o.ObjectiveTargetValue,
			Allocated:   decimal.Zero,
			Remaining:   o.ObjectiveTargetValue,
		}, nil
	}
	allocated, n, err := s.allocatedToChildren(ctx, s.stores, childLevel, o.ObjectiveID)
	if err != nil {
		return nil, err
	}
	return &RemainingCapacity{
		ObjectiveID:   o.ObjectiveID,
		Level:         level,
		TargetValue:   o.ObjectiveTargetValue,
		Allocated:     allocated,
		Remaining:     o.ObjectiveTargetValue.Sub(allocated),
		ChildrenCount: n,
	}, nil
}

// GetAvailableChildren: kandidat entity level anak di bawah scope parent,
// dianotasi status distribusinya. Default: yang sudah terdistribusi
// disembunyikan (includeDistributed untuk UI "edit existing").
func (s *Service) GetAvailableChildren(ctx context.Context, parentID uuid.UUID, parentLevel Level, gradeFilter *uuid.UUID, includeDistributed bool) ([]CandidateEntity, error) {
	level, parent, err := s.ResolveObjective(ctx, parentID, parentLevel)
	if err != nil {
		return nil, err
	}
	childLevel, ok := level.ChildLevel()
	if !ok {
		return nil, &ValidationError{Reason: "Objective level INDIVIDUAL tidak punya kandidat anak"}
	}

	var candidates []CandidateEntity
	switch level {
	case LevelGlobal:
		bus, err := s.stores.Dir.ListBusinessUnits(ctx)
		if err != nil {
			return nil, err
		}
		for _, bu := range bus {
			candidates = append(candidates, CandidateEntity{EntityID: bu.BusinessUnitID, Name: bu.BusinessUnitName})
		}
	case LevelBusinessUnit:
		if parent.ObjectiveBusinessUnitID == nil {
			return nil, &ConsistencyError{Reason: "Objective parent tidak punya business unit"}
		}
		divs, err := s.stores.Dir.ListDivisionsOfBusinessUnit(ctx, *parent.ObjectiveBusinessUnitID)
		if err != nil {
			return nil, err
		}
		for _, d := range divs {
			candidates = append(candidates, CandidateEntity{EntityID: d.DivisionID, Name: d.DivisionName})
		}
	case LevelDivision:
		if parent.ObjectiveDivisionID == nil {
			return nil, &ConsistencyError{Reason: "Objective parent tidak punya division"}
		}
		collabs, err := s.listDivisionCandidates(ctx, *parent.ObjectiveDivisionID, gradeFilter)
		if err != nil {
			return nil, err
		}
		candidates = collabs
	default:
		return nil, &ValidationError{Reason: "Distribusi dari level " + string(level) + " pakai endpoint grade-assign"}
	}

	// Anotasi: sudah punya objective cascade dari parent ini?
	existing, err := s.stores.Objectives.ListCascadedChildren(ctx, childLevel, parent.ObjectiveID)
	if err != nil {
		return nil, err
	}
	byEntity := make(map[uuid.UUID]*objModel.ObjectiveModel, len(existing))
	for i := range existing {
		byEntity[ScopeEntityID(childLevel, &existing[i])] = &existing[i]
	}

	out := make([]CandidateEntity, 0, len(candidates))
	for _, c := range candidates {
		if row, ok := byEntity[c.EntityID]; ok {
			if !includeDistributed {
				continue
			}
			c.AlreadyDistributed = true
			oid := row.ObjectiveID
			t := row.ObjectiveTargetValue
			c.ExistingObjectiveID = &oid
			c.ExistingTarget = &t
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Service) listDivisionCandidates(ctx context.Context, divisionID uuid.UUID, gradeFilter *uuid.UUID) ([]CandidateEntity, error) {
	var out []CandidateEntity
	if gradeFilter != nil {
		collabs, err := s.stores.Dir.ListGradeCollaboratorsOfDivision(ctx, *gradeFilter, divisionID)
		if err != nil {
			return nil, err
		}
		for _, c := range collabs {
			out = append(out, CandidateEntity{EntityID: c.CollaboratorID, Name: c.CollaboratorFullName, GradeID: c.CollaboratorGradeID})
		}
		return out, nil
	}
	collabs, err := s.stores.Dir.ListActiveCollaboratorsOfDivision(ctx, divisionID)
	if err != nil {
		return nil, err
	}
	for _, c := range collabs {
		out = append(out, CandidateEntity{EntityID: c.CollaboratorID, Name: c.CollaboratorFullName, GradeID: c.CollaboratorGradeID})
	}
	return out, nil
}

// GetDistributionSummary: parent + anak cascade-nya + total & sisa.
func (s *Service) GetDistributionSummary(ctx context.Context, id uuid.UUID, levelHint Level) (*DistributionSummary, error) {
	level, o, err := s.ResolveObjective(ctx, id, levelHint)
	if err != nil {
		return nil, err
	}
	childLevel, ok := level.ChildLevel()
	if !ok {
		return &DistributionSummary{
			Parent: *o, ParentLevel: level,
			TotalDistributed: decimal.Zero,
			Remaining:        o.ObjectiveTargetValue,
		}, nil
	}
	children, err := s.stores.Objectives.ListCascadedChildren(ctx, childLevel, o.ObjectiveID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for i := range children {
		total = total.Add(children[i].ObjectiveTargetValue)
	}
	return &DistributionSummary{
		Parent:           *o,
		ParentLevel:      level,
		ChildLevel:       childLevel,
		Children:         children,
		ChildrenCount:    len(children),
		TotalDistributed: total,
		Remaining:        o.ObjectiveTargetValue.Sub(total),
	}, nil
}

// AssignToGrade: fan-out satu objective division ke SEMUA collaborateur
// aktif pemegang grade di division itu. Tiap baris individual dicap
// target_grade_id supaya asalnya bisa ditelusuri.
func (s *Service) AssignToGrade(ctx context.Context, parentID, gradeID uuid.UUID, targetPerCollaborator decimal.Decimal, title, description *string, createdBy uuid.UUID) (*DistributionResult, error) {
	level, parent, err := s.ResolveObjective(ctx, parentID, LevelDivision)
	if err != nil {
		return nil, err
	}
	if targetPerCollaborator.IsNegative() {
		return nil, &ValidationError{Reason: "Target value tidak boleh negatif: " + targetPerCollaborator.String()}
	}
	if parent.ObjectiveMode == objModel.ObjectiveModeMetric {
		return nil, &ValidationError{Reason: "Objective mode METRIC tidak bisa didistribusi ke level INDIVIDUAL"}
	}
	if parent.ObjectiveDivisionID == nil {
		return nil, &ConsistencyError{Reason: "Objective parent tidak punya division"}
	}
	ok, err := s.stores.Dir.GradeExists(ctx, gradeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{Resource: "Grade", Detail: gradeID.String()}
	}

	members, err := s.stores.Dir.ListGradeCollaboratorsOfDivision(ctx, gradeID, *parent.ObjectiveDivisionID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, &NotFoundError{Resource: "Collaborateur aktif dengan grade tersebut", Detail: gradeID.String()}
	}

	children := make([]DistributionChild, 0, len(members))
	for _, m := range members {
		children = append(children, DistributionChild{
			EntityID:    m.CollaboratorID,
			TargetValue: targetPerCollaborator,
			Title:       title,
			Description: description,
		})
	}
	gid := gradeID
	return s.distribute(ctx, level, parent, LevelIndividual, children, &gid, createdBy)
}
