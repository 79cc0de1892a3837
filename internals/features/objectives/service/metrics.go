// file: internals/features/objectives/service/metrics.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kode metric bawaan. Registry fixed: tambah kode baru = tambah Calculator
// di DefaultMetricRegistry, bukan lewat data.
const (
	MetricCampaignsCount       = "CAMPAIGNS_COUNT"
	MetricOpportunitiesWonRate = "OPPORTUNITIES_WON_RATE"
	MetricMissionsBudgetSum    = "MISSIONS_BUDGET_SUM"
	MetricActiveMissionsCount  = "ACTIVE_MISSIONS_COUNT"
)

var decimalHundred = decimal.NewFromInt(100)

// Calculator menghitung satu nilai global dari data pipeline.
// fiscalYearID nil = seluruh data (tanpa filter exercice).
type Calculator func(ctx context.Context, src MetricSource, fiscalYearID *uuid.UUID) (decimal.Decimal, error)

// MetricRegistry: map kode → kalkulator.
type MetricRegistry map[string]Calculator

func (r MetricRegistry) Lookup(code string) (Calculator, bool) {
	c, ok := r[code]
	return c, ok
}

// Codes: daftar kode terdaftar (buat endpoint & pesan error).
func (r MetricRegistry) Codes() []string {
	out := make([]string, 0, len(r))
	for code := range r {
		out = append(out, code)
	}
	return out
}

// DefaultMetricRegistry: semua kode bawaan.
func DefaultMetricRegistry() MetricRegistry {
	return MetricRegistry{
		MetricCampaignsCount: func(ctx context.Context, src MetricSource, fy *uuid.UUID) (decimal.Decimal, error) {
			n, err := src.CampaignsCount(ctx, fy)
			return decimal.NewFromInt(n), err
		},
		// won/total * 100; kosong = 0, bukan error (aturan pembagi nol).
		MetricOpportunitiesWonRate: func(ctx context.Context, src MetricSource, fy *uuid.UUID) (decimal.Decimal, error) {
			won, total, err := src.OpportunitiesWonAndTotal(ctx, fy)
			if err != nil {
				return decimal.Zero, err
			}
			if total == 0 {
				return decimal.Zero, nil
			}
			return decimal.NewFromInt(won).
				Div(decimal.NewFromInt(total)).
				Mul(decimalHundred).
				Round(2), nil
		},
		MetricMissionsBudgetSum: func(ctx context.Context, src MetricSource, fy *uuid.UUID) (decimal.Decimal, error) {
			return src.MissionsBudgetSum(ctx, fy)
		},
		MetricActiveMissionsCount: func(ctx context.Context, src MetricSource, fy *uuid.UUID) (decimal.Decimal, error) {
			n, err := src.ActiveMissionsCount(ctx, fy)
			return decimal.NewFromInt(n), err
		},
	}
}
