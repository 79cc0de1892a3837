// file: internals/features/objectives/service/memstore_test.go
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	objModel "pilotage_backend/internals/features/objectives/model"
	orgModel "pilotage_backend/internals/features/organization/model"
)

// memData: seluruh state fake in-memory untuk test service tanpa DB.
type memData struct {
	mu sync.Mutex

	objs     map[Level][]*objModel.ObjectiveModel
	progress map[string]*objModel.ObjectiveProgressModel

	fiscalYears   map[uuid.UUID]orgModel.FiscalYearModel
	businessUnits map[uuid.UUID]orgModel.BusinessUnitModel
	divisions     map[uuid.UUID]orgModel.DivisionModel
	grades        map[uuid.UUID]orgModel.GradeModel
	collaborators map[uuid.UUID]orgModel.CollaboratorModel

	campaigns      int64
	oppsWon        int64
	oppsTotal      int64
	missionsBudget decimal.Decimal
	activeMissions int64
	metricErr      error
}

func newMemData() *memData {
	return &memData{
		objs:          map[Level][]*objModel.ObjectiveModel{},
		progress:      map[string]*objModel.ObjectiveProgressModel{},
		fiscalYears:   map[uuid.UUID]orgModel.FiscalYearModel{},
		businessUnits: map[uuid.UUID]orgModel.BusinessUnitModel{},
		divisions:     map[uuid.UUID]orgModel.DivisionModel{},
		grades:        map[uuid.UUID]orgModel.GradeModel{},
		collaborators: map[uuid.UUID]orgModel.CollaboratorModel{},
	}
}

func (d *memData) stores() *Stores {
	return &Stores{
		Objectives: &memObjectives{d},
		Progress:   &memProgress{d},
		Dir:        &memDirectory{d},
		Metrics:    &memMetrics{d},
	}
}

func progressKey(level Level, id uuid.UUID) string { return string(level) + "|" + id.String() }

func ptrUUID() *uuid.UUID {
	id := uuid.New()
	return &id
}

func cloneObj(o *objModel.ObjectiveModel) *objModel.ObjectiveModel {
	cp := *o
	return &cp
}

/* ---------- ObjectiveStore ---------- */

type memObjectives struct{ d *memData }

func (m *memObjectives) Get(_ context.Context, level Level, id uuid.UUID) (*objModel.ObjectiveModel, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	for _, o := range m.d.objs[level] {
		if o.ObjectiveID == id {
			return cloneObj(o), nil
		}
	}
	return nil, nil
}

func (m *memObjectives) ListByScope(_ context.Context, level Level, entityID uuid.UUID) ([]objModel.ObjectiveModel, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	var out []objModel.ObjectiveModel
	for _, o := range m.d.objs[level] {
		if ScopeEntityID(level, o) == entityID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memObjectives) ListByFiscalYear(_ context.Context, level Level, fiscalYearID uuid.UUID, scopeIDs []uuid.UUID) ([]objModel.ObjectiveModel, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	allowed := map[uuid.UUID]bool{}
	for _, id := range scopeIDs {
		allowed[id] = true
	}
	var out []objModel.ObjectiveModel
	for _, o := range m.d.objs[level] {
		if o.ObjectiveFiscalYearID == nil || *o.ObjectiveFiscalYearID != fiscalYearID {
			continue
		}
		if len(allowed) > 0 && !allowed[ScopeEntityID(level, o)] {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (m *memObjectives) ListCascadedChildren(_ context.Context, childLevel Level, parentID uuid.UUID) ([]objModel.ObjectiveModel, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	var out []objModel.ObjectiveModel
	for _, o := range m.d.objs[childLevel] {
		if o.ObjectiveIsCascaded && o.ObjectiveParentID != nil && *o.ObjectiveParentID == parentID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memObjectives) FindCascaded(_ context.Context, childLevel Level, parentID, entityID uuid.UUID) (*objModel.ObjectiveModel, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	for _, o := range m.d.objs[childLevel] {
		if o.ObjectiveIsCascaded && o.ObjectiveParentID != nil && *o.ObjectiveParentID == parentID &&
			ScopeEntityID(childLevel, o) == entityID {
			return cloneObj(o), nil
		}
	}
	return nil, nil
}

func (m *memObjectives) ListAutomaticByMetricCode(_ context.Context, level Level, metricCode string) ([]objModel.ObjectiveModel, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	var out []objModel.ObjectiveModel
	for _, o := range m.d.objs[level] {
		if o.ObjectiveTrackingType == objModel.TrackingAutomatic &&
			o.ObjectiveMetricCode != nil && *o.ObjectiveMetricCode == metricCode {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memObjectives) Create(_ context.Context, level Level, o *objModel.ObjectiveModel) error {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	if o.ObjectiveID == uuid.Nil {
		o.ObjectiveID = uuid.New()
	}
	now := time.Now()
	o.ObjectiveCreatedAt = now
	o.ObjectiveUpdatedAt = now
	m.d.objs[level] = append(m.d.objs[level], cloneObj(o))
	return nil
}

func (m *memObjectives) Update(_ context.Context, level Level, o *objModel.ObjectiveModel) error {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	for i, cur := range m.d.objs[level] {
		if cur.ObjectiveID == o.ObjectiveID {
			o.ObjectiveUpdatedAt = time.Now()
			m.d.objs[level][i] = cloneObj(o)
			return nil
		}
	}
	return &NotFoundError{Resource: "Objective", Detail: o.ObjectiveID.String()}
}

func (m *memObjectives) UpdateWeights(_ context.Context, level Level, weights map[uuid.UUID]decimal.Decimal) error {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	for _, o := range m.d.objs[level] {
		if w, ok := weights[o.ObjectiveID]; ok {
			o.ObjectiveWeight = w
		}
	}
	return nil
}

func (m *memObjectives) Delete(_ context.Context, level Level, id uuid.UUID) error {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	rows := m.d.objs[level]
	for i, o := range rows {
		if o.ObjectiveID == id {
			m.d.objs[level] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Resource: "Objective", Detail: id.String()}
}

/* ---------- ProgressStore ---------- */

type memProgress struct{ d *memData }

func (m *memProgress) Get(_ context.Context, level Level, objectiveID uuid.UUID) (*objModel.ObjectiveProgressModel, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	p, ok := m.d.progress[progressKey(level, objectiveID)]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProgress) Upsert(_ context.Context, p *objModel.ObjectiveProgressModel) error {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	cp := *p
	m.d.progress[progressKey(Level(p.ObjectiveProgressLevel), p.ObjectiveProgressObjectiveID)] = &cp
	return nil
}

func (m *memProgress) Delete(_ context.Context, level Level, objectiveID uuid.UUID) error {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	delete(m.d.progress, progressKey(level, objectiveID))
	return nil
}

/* ---------- Directory ---------- */

type memDirectory struct{ d *memData }

func (m *memDirectory) FiscalYearExists(_ context.Context, id uuid.UUID) (bool, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	_, ok := m.d.fiscalYears[id]
	return ok, nil
}

func (m *memDirectory) BusinessUnitExists(_ context.Context, id uuid.UUID) (bool, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	bu, ok := m.d.businessUnits[id]
	return ok && bu.BusinessUnitIsActive, nil
}

func (m *memDirectory) DivisionExists(_ context.Context, id uuid.UUID) (bool, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	dv, ok := m.d.divisions[id]
	return ok && dv.DivisionIsActive, nil
}

func (m *memDirectory) GradeExists(_ context.Context, id uuid.UUID) (bool, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	_, ok := m.d.grades[id]
	return ok, nil
}

func (m *memDirectory) CollaboratorExists(_ context.Context, id uuid.UUID) (bool, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	c, ok := m.d.collaborators[id]
	return ok && c.CollaboratorIsActive, nil
}

func (m *memDirectory) DivisionInBusinessUnit(_ context.Context, divisionID, businessUnitID uuid.UUID) (bool, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	dv, ok := m.d.divisions[divisionID]
	return ok && dv.DivisionIsActive && dv.DivisionBusinessUnitID == businessUnitID, nil
}

func (m *memDirectory) CollaboratorInDivision(_ context.Context, collaboratorID, divisionID uuid.UUID) (bool, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	c, ok := m.d.collaborators[collaboratorID]
	return ok && c.CollaboratorIsActive && c.CollaboratorDivisionID != nil && *c.CollaboratorDivisionID == divisionID, nil
}

func (m *memDirectory) CollaboratorHasGrade(_ context.Context, collaboratorID, gradeID uuid.UUID) (bool, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	c, ok := m.d.collaborators[collaboratorID]
	return ok && c.CollaboratorIsActive && c.CollaboratorGradeID != nil && *c.CollaboratorGradeID == gradeID, nil
}

func (m *memDirectory) ListBusinessUnits(_ context.Context) ([]orgModel.BusinessUnitModel, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	var out []orgModel.BusinessUnitModel
	for _, bu := range m.d.businessUnits {
		if bu.BusinessUnitIsActive {
			out = append(out, bu)
		}
	}
	return out, nil
}

func (m *memDirectory) ListDivisionsOfBusinessUnit(_ context.Context, businessUnitID uuid.UUID) ([]orgModel.DivisionModel, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	var out []orgModel.DivisionModel
	for _, dv := range m.d.divisions {
		if dv.DivisionIsActive && dv.DivisionBusinessUnitID == businessUnitID {
			out = append(out, dv)
		}
	}
	return out, nil
}

func (m *memDirectory) ListActiveCollaboratorsOfDivision(_ context.Context, divisionID uuid.UUID) ([]orgModel.CollaboratorModel, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	var out []orgModel.CollaboratorModel
	for _, c := range m.d.collaborators {
		if c.CollaboratorIsActive && c.CollaboratorDivisionID != nil && *c.CollaboratorDivisionID == divisionID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memDirectory) ListGradeCollaboratorsOfDivision(_ context.Context, gradeID, divisionID uuid.UUID) ([]orgModel.CollaboratorModel, error) {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	var out []orgModel.CollaboratorModel
	for _, c := range m.d.collaborators {
		if c.CollaboratorIsActive &&
			c.CollaboratorGradeID != nil && *c.CollaboratorGradeID == gradeID &&
			c.CollaboratorDivisionID != nil && *c.CollaboratorDivisionID == divisionID {
			out = append(out, c)
		}
	}
	return out, nil
}

/* ---------- MetricSource ---------- */

type memMetrics struct{ d *memData }

func (m *memMetrics) CampaignsCount(_ context.Context, _ *uuid.UUID) (int64, error) {
	if m.d.metricErr != nil {
		return 0, m.d.metricErr
	}
	return m.d.campaigns, nil
}

func (m *memMetrics) OpportunitiesWonAndTotal(_ context.Context, _ *uuid.UUID) (int64, int64, error) {
	if m.d.metricErr != nil {
		return 0, 0, m.d.metricErr
	}
	return m.d.oppsWon, m.d.oppsTotal, nil
}

func (m *memMetrics) MissionsBudgetSum(_ context.Context, _ *uuid.UUID) (decimal.Decimal, error) {
	if m.d.metricErr != nil {
		return decimal.Zero, m.d.metricErr
	}
	return m.d.missionsBudget, nil
}

func (m *memMetrics) ActiveMissionsCount(_ context.Context, _ *uuid.UUID) (int64, error) {
	if m.d.metricErr != nil {
		return 0, m.d.metricErr
	}
	return m.d.activeMissions, nil
}

/* ---------- TxRunner ---------- */

type memTx struct{ d *memData }

func (t *memTx) RunInTx(_ context.Context, fn func(tx *Stores) error) error {
	return fn(t.d.stores())
}

/* ---------- Fixture ---------- */

type fixture struct {
	svc  *Service
	data *memData

	fy    uuid.UUID
	bu1   uuid.UUID
	bu2   uuid.UUID
	bu3   uuid.UUID
	div1  uuid.UUID
	div2  uuid.UUID // milik bu2
	grade uuid.UUID
	c1    uuid.UUID // div1, grade
	c2    uuid.UUID // div1, grade
	c3    uuid.UUID // div1, tanpa grade
	actor uuid.UUID
}

func newFixture() *fixture {
	d := newMemData()
	f := &fixture{
		data:  d,
		fy:    uuid.New(),
		bu1:   uuid.New(),
		bu2:   uuid.New(),
		bu3:   uuid.New(),
		div1:  uuid.New(),
		div2:  uuid.New(),
		grade: uuid.New(),
		c1:    uuid.New(),
		c2:    uuid.New(),
		c3:    uuid.New(),
		actor: uuid.New(),
	}

	d.fiscalYears[f.fy] = orgModel.FiscalYearModel{FiscalYearID: f.fy, FiscalYearLabel: "2026"}
	d.businessUnits[f.bu1] = orgModel.BusinessUnitModel{BusinessUnitID: f.bu1, BusinessUnitName: "BU Conseil", BusinessUnitIsActive: true}
	d.businessUnits[f.bu2] = orgModel.BusinessUnitModel{BusinessUnitID: f.bu2, BusinessUnitName: "BU Tech", BusinessUnitIsActive: true}
	d.businessUnits[f.bu3] = orgModel.BusinessUnitModel{BusinessUnitID: f.bu3, BusinessUnitName: "BU Finance", BusinessUnitIsActive: true}
	d.divisions[f.div1] = orgModel.DivisionModel{DivisionID: f.div1, DivisionName: "Division Sud", DivisionBusinessUnitID: f.bu1, DivisionIsActive: true}
	d.divisions[f.div2] = orgModel.DivisionModel{DivisionID: f.div2, DivisionName: "Division Nord", DivisionBusinessUnitID: f.bu2, DivisionIsActive: true}
	d.grades[f.grade] = orgModel.GradeModel{GradeID: f.grade, GradeName: "Senior"}

	mkCollab := func(id uuid.UUID, name string, div uuid.UUID, grade *uuid.UUID) {
		d.collaborators[id] = orgModel.CollaboratorModel{
			CollaboratorID:       id,
			CollaboratorFullName: name,
			CollaboratorDivisionID: &div,
			CollaboratorGradeID:  grade,
			CollaboratorIsActive: true,
		}
	}
	mkCollab(f.c1, "Alice Martin", f.div1, &f.grade)
	mkCollab(f.c2, "Bruno Leroy", f.div1, &f.grade)
	mkCollab(f.c3, "Chloé Dubois", f.div1, nil)

	f.svc = NewWithStores(d.stores(), &memTx{d})
	return f
}

// seedObjective: tulis objective langsung ke fake (tanpa lewat service).
func (f *fixture) seedObjective(level Level, entityID uuid.UUID, target int64, mode string) *objModel.ObjectiveModel {
	fy := f.fy
	o := &objModel.ObjectiveModel{
		ObjectiveID:           uuid.New(),
		ObjectiveFiscalYearID: &fy,
		ObjectiveMode:         mode,
		ObjectiveTrackingType: objModel.TrackingManual,
		ObjectiveTargetValue:  decimal.NewFromInt(target),
		ObjectiveCreatedBy:    f.actor,
	}
	setScopeEntity(level, o, entityID)
	_ = (&memObjectives{f.data}).Create(context.Background(), level, o)
	return o
}

// seedAutomatic: objective AUTOMATIC dengan metric code.
func (f *fixture) seedAutomatic(level Level, entityID uuid.UUID, target int64, code string) *objModel.ObjectiveModel {
	o := f.seedObjective(level, entityID, target, objModel.ObjectiveModeType)
	o.ObjectiveTrackingType = objModel.TrackingAutomatic
	o.ObjectiveMetricCode = &code
	_ = (&memObjectives{f.data}).Update(context.Background(), level, o)
	return o
}
