// file: internals/features/objectives/service/distribution_test.go
package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	objModel "pilotage_backend/internals/features/objectives/model"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestDistribute_GlobalToBusinessUnits(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	parent := f.seedObjective(LevelGlobal, f.fy, 1000, objModel.ObjectiveModeType)

	res, err := f.svc.Distribute(ctx, parent.ObjectiveID, "", []DistributionChild{
		{EntityID: f.bu1, TargetValue: dec(400)},
		{EntityID: f.bu2, TargetValue: dec(300)},
	}, f.actor)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 0, res.Updated)
	assert.Equal(t, LevelBusinessUnit, res.ChildLevel)
	assert.True(t, res.TotalDistributed.Equal(dec(700)))
	assert.True(t, res.RemainingAfter.Equal(dec(300)))
	assert.Nil(t, res.Warning)

	// Anak mewarisi mode/tracking/fiscal year parent dan tercatat cascade.
	for _, child := range res.Children {
		assert.Equal(t, parent.ObjectiveMode, child.ObjectiveMode)
		assert.True(t, child.ObjectiveIsCascaded)
		require.NotNil(t, child.ObjectiveParentID)
		assert.Equal(t, parent.ObjectiveID, *child.ObjectiveParentID)
		require.NotNil(t, child.ObjectiveFiscalYearID)
		assert.Equal(t, f.fy, *child.ObjectiveFiscalYearID)

		// Progress terinisialisasi: current 0, target snapshot = target anak.
		p, err := f.svc.GetProgress(ctx, LevelBusinessUnit, child.ObjectiveID)
		require.NoError(t, err)
		assert.True(t, p.ObjectiveProgressCurrentValue.IsZero())
		assert.True(t, p.ObjectiveProgressTargetValue.Equal(child.ObjectiveTargetValue))
	}

	// Satu objective per BU → bobot 100.
	rows, err := f.data.stores().Objectives.ListByScope(ctx, LevelBusinessUnit, f.bu1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].ObjectiveWeight.Equal(dec(100)))
}

func TestDistribute_OverAllocationWarnsButSucceeds(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	parent := f.seedObjective(LevelGlobal, f.fy, 1000, objModel.ObjectiveModeType)

	_, err := f.svc.Distribute(ctx, parent.ObjectiveID, "", []DistributionChild{
		{EntityID: f.bu1, TargetValue: dec(400)},
		{EntityID: f.bu2, TargetValue: dec(300)},
	}, f.actor)
	require.NoError(t, err)

	// 400+300+500 = 1200 > 1000: tetap sukses, warning excess 200.
	res, err := f.svc.Distribute(ctx, parent.ObjectiveID, "", []DistributionChild{
		{EntityID: f.bu3, TargetValue: dec(500)},
	}, f.actor)
	require.NoError(t, err)
	require.NotNil(t, res.Warning)
	assert.Equal(t, "200", res.Warning.Excess)
	assert.Equal(t, "1200", res.Warning.TotalAllocated)
	assert.True(t, res.RemainingAfter.Equal(dec(-200)))

	rc, err := f.svc.GetRemainingCapacity(ctx, parent.ObjectiveID, "")
	require.NoError(t, err)
	assert.True(t, rc.Remaining.Equal(dec(-200)))
	assert.Equal(t, 3, rc.ChildrenCount)
}

func TestDistribute_UpsertIsIdempotentPerEntity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	parent := f.seedObjective(LevelGlobal, f.fy, 1000, objModel.ObjectiveModeType)

	first, err := f.svc.Distribute(ctx, parent.ObjectiveID, "", []DistributionChild{
		{EntityID: f.bu1, TargetValue: dec(400)},
	}, f.actor)
	require.NoError(t, err)
	require.Equal(t, 1, first.Created)
	originalID := first.Children[0].ObjectiveID

	// Distribusi ulang ke entity yang sama: update in place, bukan baris baru.
	second, err := f.svc.Distribute(ctx, parent.ObjectiveID, "", []DistributionChild{
		{EntityID: f.bu1, TargetValue: dec(450)},
	}, f.actor)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 1, second.Updated)
	assert.Equal(t, originalID, second.Children[0].ObjectiveID)
	assert.True(t, second.Children[0].ObjectiveTargetValue.Equal(dec(450)))

	rows, err := f.data.stores().Objectives.ListByScope(ctx, LevelBusinessUnit, f.bu1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestDistribute_MetricModeToIndividualRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	parent := f.seedObjective(LevelDivision, f.div1, 500, objModel.ObjectiveModeMetric)

	_, err := f.svc.Distribute(ctx, parent.ObjectiveID, LevelDivision, []DistributionChild{
		{EntityID: f.c1, TargetValue: dec(100)},
	}, f.actor)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	rows, _ := f.data.stores().Objectives.ListByScope(ctx, LevelIndividual, f.c1)
	assert.Empty(t, rows)
}

func TestDistribute_NegativeTargetRejected(t *testing.T) {
	f := newFixture()
	parent := f.seedObjective(LevelGlobal, f.fy, 1000, objModel.ObjectiveModeType)

	_, err := f.svc.Distribute(context.Background(), parent.ObjectiveID, "", []DistributionChild{
		{EntityID: f.bu1, TargetValue: dec(-5)},
	}, f.actor)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestDistribute_EntityOutsideParentScopeIsConsistencyError(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	parent := f.seedObjective(LevelBusinessUnit, f.bu1, 400, objModel.ObjectiveModeType)

	// div2 milik bu2, parent milik bu1. Batch gagal total: baris valid di
	// batch yang sama pun tidak boleh tertulis.
	_, err := f.svc.Distribute(ctx, parent.ObjectiveID, LevelBusinessUnit, []DistributionChild{
		{EntityID: f.div1, TargetValue: dec(100)},
		{EntityID: f.div2, TargetValue: dec(100)},
	}, f.actor)
	var ce *ConsistencyError
	require.ErrorAs(t, err, &ce)

	rows, _ := f.data.stores().Objectives.ListByScope(ctx, LevelDivision, f.div1)
	assert.Empty(t, rows)
}

func TestDistribute_UnknownParent(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Distribute(context.Background(), uuid.New(), "", []DistributionChild{
		{EntityID: f.bu1, TargetValue: dec(10)},
	}, f.actor)
	var ne *NotFoundError
	require.ErrorAs(t, err, &ne)
}

func TestDistribute_IndividualParentIsLeaf(t *testing.T) {
	f := newFixture()
	parent := f.seedObjective(LevelIndividual, f.c1, 50, objModel.ObjectiveModeType)

	_, err := f.svc.Distribute(context.Background(), parent.ObjectiveID, LevelIndividual, []DistributionChild{
		{EntityID: uuid.New(), TargetValue: dec(10)},
	}, f.actor)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestDistribute_ManualSiblingsDoNotConsumeCapacity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	parent := f.seedObjective(LevelGlobal, f.fy, 1000, objModel.ObjectiveModeType)

	// Objective BU yang ditulis manual (bukan cascade) di level anak.
	f.seedObjective(LevelBusinessUnit, f.bu1, 999, objModel.ObjectiveModeType)

	rc, err := f.svc.GetRemainingCapacity(ctx, parent.ObjectiveID, "")
	require.NoError(t, err)
	assert.True(t, rc.Remaining.Equal(dec(1000)))
	assert.Equal(t, 0, rc.ChildrenCount)
}

func TestAssignToGrade_FansOutToGradeMembers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	parent := f.seedObjective(LevelDivision, f.div1, 600, objModel.ObjectiveModeType)

	res, err := f.svc.AssignToGrade(ctx, parent.ObjectiveID, f.grade, dec(200), nil, nil, f.actor)
	require.NoError(t, err)

	// c1 dan c2 pegang grade; c3 tidak.
	assert.Equal(t, 2, res.Created)
	for _, child := range res.Children {
		require.NotNil(t, child.ObjectiveTargetGradeID)
		assert.Equal(t, f.grade, *child.ObjectiveTargetGradeID)
		assert.True(t, child.ObjectiveTargetValue.Equal(dec(200)))
		assert.True(t, child.ObjectiveIsCascaded)
	}
	rows, _ := f.data.stores().Objectives.ListByScope(ctx, LevelIndividual, f.c3)
	assert.Empty(t, rows)
}

func TestAssignToGrade_NoMembers(t *testing.T) {
	f := newFixture()
	parent := f.seedObjective(LevelDivision, f.div1, 600, objModel.ObjectiveModeType)
	emptyGrade := uuid.New()
	f.data.grades[emptyGrade] = f.data.grades[f.grade]

	_, err := f.svc.AssignToGrade(context.Background(), parent.ObjectiveID, emptyGrade, dec(100), nil, nil, f.actor)
	var ne *NotFoundError
	require.ErrorAs(t, err, &ne)
}

func TestGetAvailableChildren_ExcludesDistributedByDefault(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	parent := f.seedObjective(LevelGlobal, f.fy, 1000, objModel.ObjectiveModeType)

	_, err := f.svc.Distribute(ctx, parent.ObjectiveID, "", []DistributionChild{
		{EntityID: f.bu1, TargetValue: dec(400)},
	}, f.actor)
	require.NoError(t, err)

	out, err := f.svc.GetAvailableChildren(ctx, parent.ObjectiveID, "", nil, false)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, cand := range out {
		assert.NotEqual(t, f.bu1, cand.EntityID)
		assert.False(t, cand.AlreadyDistributed)
	}

	// Opt-in: yang sudah terdistribusi ikut, dianotasi target existing-nya.
	all, err := f.svc.GetAvailableChildren(ctx, parent.ObjectiveID, "", nil, true)
	require.NoError(t, err)
	require.Len(t, all, 3)
	var found bool
	for _, cand := range all {
		if cand.EntityID == f.bu1 {
			found = true
			assert.True(t, cand.AlreadyDistributed)
			require.NotNil(t, cand.ExistingTarget)
			assert.True(t, cand.ExistingTarget.Equal(dec(400)))
		}
	}
	assert.True(t, found)
}

func TestGetAvailableChildren_GradeFilter(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	parent := f.seedObjective(LevelDivision, f.div1, 600, objModel.ObjectiveModeType)

	out, err := f.svc.GetAvailableChildren(ctx, parent.ObjectiveID, LevelDivision, &f.grade, false)
	require.NoError(t, err)
	assert.Len(t, out, 2) // c1, c2 — c3 tersaring grade

	all, err := f.svc.GetAvailableChildren(ctx, parent.ObjectiveID, LevelDivision, nil, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetDistributionSummary(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	parent := f.seedObjective(LevelGlobal, f.fy, 1000, objModel.ObjectiveModeType)

	_, err := f.svc.Distribute(ctx, parent.ObjectiveID, "", []DistributionChild{
		{EntityID: f.bu1, TargetValue: dec(400)},
		{EntityID: f.bu2, TargetValue: dec(300)},
	}, f.actor)
	require.NoError(t, err)

	sum, err := f.svc.GetDistributionSummary(ctx, parent.ObjectiveID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, sum.ChildrenCount)
	assert.True(t, sum.TotalDistributed.Equal(dec(700)))
	assert.True(t, sum.Remaining.Equal(dec(300)))
	assert.Equal(t, LevelBusinessUnit, sum.ChildLevel)
}

func TestDeleteObjective_ChildrenKeepParentReference(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	parent := f.seedObjective(LevelGlobal, f.fy, 1000, objModel.ObjectiveModeType)

	res, err := f.svc.Distribute(ctx, parent.ObjectiveID, "", []DistributionChild{
		{EntityID: f.bu1, TargetValue: dec(400)},
		{EntityID: f.bu2, TargetValue: dec(300)},
	}, f.actor)
	require.NoError(t, err)

	orphaned, err := f.svc.DeleteObjective(ctx, LevelGlobal, parent.ObjectiveID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), orphaned)

	// Anak tetap hidup, TIDAK disentuh: parent_id-nya masih menunjuk id
	// yang sudah dihapus (referensi menggantung disengaja).
	for _, child := range res.Children {
		row, err := f.data.stores().Objectives.Get(ctx, LevelBusinessUnit, child.ObjectiveID)
		require.NoError(t, err)
		require.NotNil(t, row)
		require.NotNil(t, row.ObjectiveParentID)
		assert.Equal(t, parent.ObjectiveID, *row.ObjectiveParentID)
		assert.True(t, row.ObjectiveIsCascaded)
	}

	// Parent + progress-nya hilang; lookup parent jawab not-found, bukan error lain.
	gone, err := f.data.stores().Objectives.Get(ctx, LevelGlobal, parent.ObjectiveID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	_, _, err = f.svc.GetObjective(ctx, parent.ObjectiveID, LevelGlobal)
	var ne *NotFoundError
	require.ErrorAs(t, err, &ne)
	_, err = f.svc.GetProgress(ctx, LevelGlobal, parent.ObjectiveID)
	require.ErrorAs(t, err, &ne)
}
