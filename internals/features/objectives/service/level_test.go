// file: internals/features/objectives/service/level_test.go
package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	objModel "pilotage_backend/internals/features/objectives/model"
)

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("business_unit")
	require.NoError(t, err)
	assert.Equal(t, LevelBusinessUnit, l)

	l, err = ParseLevel("  GLOBAL ")
	require.NoError(t, err)
	assert.Equal(t, LevelGlobal, l)

	_, err = ParseLevel("REGION")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestChildLevelChain(t *testing.T) {
	c, ok := LevelGlobal.ChildLevel()
	require.True(t, ok)
	assert.Equal(t, LevelBusinessUnit, c)

	c, ok = LevelBusinessUnit.ChildLevel()
	require.True(t, ok)
	assert.Equal(t, LevelDivision, c)

	c, ok = LevelDivision.ChildLevel()
	require.True(t, ok)
	assert.Equal(t, LevelIndividual, c)

	c, ok = LevelGrade.ChildLevel()
	require.True(t, ok)
	assert.Equal(t, LevelIndividual, c)

	_, ok = LevelIndividual.ChildLevel()
	assert.False(t, ok)
}

func TestResolveObjective_ProbesTopDown(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	g := f.seedObjective(LevelGlobal, f.fy, 1000, objModel.ObjectiveModeType)
	b := f.seedObjective(LevelBusinessUnit, f.bu1, 400, objModel.ObjectiveModeType)

	level, row, err := f.svc.ResolveObjective(ctx, g.ObjectiveID, "")
	require.NoError(t, err)
	assert.Equal(t, LevelGlobal, level)
	assert.Equal(t, g.ObjectiveID, row.ObjectiveID)

	level, row, err = f.svc.ResolveObjective(ctx, b.ObjectiveID, "")
	require.NoError(t, err)
	assert.Equal(t, LevelBusinessUnit, level)
	assert.Equal(t, b.ObjectiveID, row.ObjectiveID)
}

func TestResolveObjective_HintPinsTheTable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b := f.seedObjective(LevelBusinessUnit, f.bu1, 400, objModel.ObjectiveModeType)

	// Hint level salah → not found, bukan fallback probing.
	_, _, err := f.svc.ResolveObjective(ctx, b.ObjectiveID, LevelDivision)
	var ne *NotFoundError
	require.ErrorAs(t, err, &ne)

	level, _, err := f.svc.ResolveObjective(ctx, b.ObjectiveID, LevelBusinessUnit)
	require.NoError(t, err)
	assert.Equal(t, LevelBusinessUnit, level)
}

func TestGetHierarchy_ScopeFilterHidesGlobalAndGrade(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedObjective(LevelGlobal, f.fy, 1000, objModel.ObjectiveModeType)
	f.seedObjective(LevelBusinessUnit, f.bu1, 400, objModel.ObjectiveModeType)
	f.seedObjective(LevelBusinessUnit, f.bu2, 300, objModel.ObjectiveModeType)
	f.seedObjective(LevelDivision, f.div1, 200, objModel.ObjectiveModeType)
	f.seedObjective(LevelGrade, f.grade, 50, objModel.ObjectiveModeType)
	f.seedObjective(LevelIndividual, f.c1, 60, objModel.ObjectiveModeType)

	// Tanpa filter: semua level termasuk GLOBAL dan GRADE.
	h, err := f.svc.GetHierarchy(ctx, f.fy, nil)
	require.NoError(t, err)
	assert.Len(t, h.Global, 1)
	assert.Len(t, h.BusinessUnit, 2)
	assert.Len(t, h.Division, 1)
	assert.Len(t, h.Grade, 1)
	assert.Len(t, h.Individual, 1)

	// Filter bu1: GLOBAL & GRADE hilang, BU dibatasi, div1/c1 ikut (di bawah bu1).
	h, err = f.svc.GetHierarchy(ctx, f.fy, []uuid.UUID{f.bu1})
	require.NoError(t, err)
	assert.Empty(t, h.Global)
	require.Len(t, h.BusinessUnit, 1)
	assert.Equal(t, f.bu1, *h.BusinessUnit[0].ObjectiveBusinessUnitID)
	assert.Len(t, h.Division, 1)
	assert.Empty(t, h.Grade)
	assert.Len(t, h.Individual, 1)

	// Filter bu2: div1/c1 (bu1) tersaring.
	h, err = f.svc.GetHierarchy(ctx, f.fy, []uuid.UUID{f.bu2})
	require.NoError(t, err)
	require.Len(t, h.BusinessUnit, 1)
	assert.Empty(t, h.Division)
	assert.Empty(t, h.Individual)
}

func TestGetHierarchy_UnknownFiscalYear(t *testing.T) {
	f := newFixture()
	_, err := f.svc.GetHierarchy(context.Background(), uuid.New(), nil)
	var ne *NotFoundError
	require.ErrorAs(t, err, &ne)
}
