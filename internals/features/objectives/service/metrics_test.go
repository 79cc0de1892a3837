// file: internals/features/objectives/service/metrics_test.go
package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calc(t *testing.T, d *memData, code string) decimal.Decimal {
	t.Helper()
	reg := DefaultMetricRegistry()
	fn, ok := reg.Lookup(code)
	require.True(t, ok, "kode %s harus terdaftar", code)
	v, err := fn(context.Background(), &memMetrics{d}, nil)
	require.NoError(t, err)
	return v
}

func TestMetric_CampaignsCount(t *testing.T) {
	d := newMemData()
	d.campaigns = 12
	assert.True(t, calc(t, d, MetricCampaignsCount).Equal(decimal.NewFromInt(12)))
}

func TestMetric_WonRate(t *testing.T) {
	d := newMemData()
	d.oppsWon, d.oppsTotal = 3, 8
	assert.Equal(t, "37.5", calc(t, d, MetricOpportunitiesWonRate).String())

	d.oppsWon, d.oppsTotal = 1, 3
	assert.Equal(t, "33.33", calc(t, d, MetricOpportunitiesWonRate).String())
}

func TestMetric_WonRateEmptyDatasetIsZero(t *testing.T) {
	d := newMemData()
	// Tanpa opportunity sama sekali: 0, bukan NaN/error.
	assert.True(t, calc(t, d, MetricOpportunitiesWonRate).IsZero())
}

func TestMetric_MissionsBudgetSum(t *testing.T) {
	d := newMemData()
	d.missionsBudget = decimal.RequireFromString("1250.50")
	assert.Equal(t, "1250.5", calc(t, d, MetricMissionsBudgetSum).String())
}

func TestMetric_ActiveMissionsCount(t *testing.T) {
	d := newMemData()
	d.activeMissions = 4
	assert.True(t, calc(t, d, MetricActiveMissionsCount).Equal(decimal.NewFromInt(4)))
}

func TestMetricRegistry_Codes(t *testing.T) {
	codes := DefaultMetricRegistry().Codes()
	assert.ElementsMatch(t, []string{
		MetricCampaignsCount,
		MetricOpportunitiesWonRate,
		MetricMissionsBudgetSum,
		MetricActiveMissionsCount,
	}, codes)
}
