// file: internals/features/objectives/service/rebalance_test.go
package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	objModel "pilotage_backend/internals/features/objectives/model"
)

func TestEqualWeights(t *testing.T) {
	assert.True(t, EqualWeights(0).IsZero())
	assert.True(t, EqualWeights(1).Equal(decimal.NewFromInt(100)))
	assert.True(t, EqualWeights(4).Equal(decimal.NewFromInt(25)))
	// 100/3 dibulatkan 2 desimal: total 99.99 diterima.
	assert.Equal(t, "33.33", EqualWeights(3).String())
}

func TestRebalance_EqualSplitAcrossScopePortfolio(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mk := func() {
		_, err := f.svc.CreateObjective(ctx, LevelBusinessUnit, CreateObjectiveInput{
			FiscalYearID: f.fy,
			EntityID:     f.bu1,
			Mode:         objModel.ObjectiveModeType,
			TypeID:       ptrUUID(),
			TrackingType: objModel.TrackingManual,
			TargetValue:  dec(100),
			CreatedBy:    f.actor,
		})
		require.NoError(t, err)
	}

	mk()
	rows, _ := f.data.stores().Objectives.ListByScope(ctx, LevelBusinessUnit, f.bu1)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].ObjectiveWeight.Equal(dec(100)))

	mk()
	mk()
	rows, _ = f.data.stores().Objectives.ListByScope(ctx, LevelBusinessUnit, f.bu1)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, "33.33", r.ObjectiveWeight.String())
	}
}

func TestRebalance_ManualWeightDoesNotSurvive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	o1 := f.seedObjective(LevelBusinessUnit, f.bu1, 100, objModel.ObjectiveModeType)
	o1.ObjectiveWeight = dec(70) // setelan manual
	require.NoError(t, f.data.stores().Objectives.Update(ctx, LevelBusinessUnit, o1))

	// Objective kedua lewat service → rebalance seluruh portfolio.
	_, err := f.svc.CreateObjective(ctx, LevelBusinessUnit, CreateObjectiveInput{
		FiscalYearID: f.fy,
		EntityID:     f.bu1,
		Mode:         objModel.ObjectiveModeType,
		TypeID:       ptrUUID(),
		TrackingType: objModel.TrackingManual,
		TargetValue:  dec(100),
		CreatedBy:    f.actor,
	})
	require.NoError(t, err)

	rows, _ := f.data.stores().Objectives.ListByScope(ctx, LevelBusinessUnit, f.bu1)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.True(t, r.ObjectiveWeight.Equal(dec(50)))
	}
}

func TestRebalance_RunsAfterDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	parent := f.seedObjective(LevelGlobal, f.fy, 1000, objModel.ObjectiveModeType)

	res, err := f.svc.Distribute(ctx, parent.ObjectiveID, "", []DistributionChild{
		{EntityID: f.bu1, TargetValue: dec(400)},
	}, f.actor)
	require.NoError(t, err)

	// Dua objective di bu1: cascade + manual via service.
	_, err = f.svc.CreateObjective(ctx, LevelBusinessUnit, CreateObjectiveInput{
		FiscalYearID: f.fy,
		EntityID:     f.bu1,
		Mode:         objModel.ObjectiveModeType,
		TypeID:       ptrUUID(),
		TrackingType: objModel.TrackingManual,
		TargetValue:  dec(50),
		CreatedBy:    f.actor,
	})
	require.NoError(t, err)

	rows, _ := f.data.stores().Objectives.ListByScope(ctx, LevelBusinessUnit, f.bu1)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.True(t, r.ObjectiveWeight.Equal(dec(50)))
	}

	// Hapus satu → sisanya kembali 100.
	_, err = f.svc.DeleteObjective(ctx, LevelBusinessUnit, res.Children[0].ObjectiveID)
	require.NoError(t, err)

	rows, _ = f.data.stores().Objectives.ListByScope(ctx, LevelBusinessUnit, f.bu1)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].ObjectiveWeight.Equal(dec(100)))
}
