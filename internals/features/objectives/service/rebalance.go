// file: internals/features/objectives/service/rebalance.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EqualWeights: bobot rata untuk n objective, dibulatkan 2 desimal.
// n=3 → 33.33 (total 99.99 — pembulatan diterima, tidak dikoreksi).
func EqualWeights(n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return decimalHundred.DivRound(decimal.NewFromInt(int64(n)), 2)
}

// rebalanceScope menyetel ulang bobot SEMUA objective satu entity ke rata.
// Dipanggil setelah create/distribute/delete; bobot manual tidak
// dipertahankan — portfolio selalu equal-weight.
func (s *Service) rebalanceScope(ctx context.Context, st *Stores, level Level, entityID uuid.UUID) (int, error) {
	rows, err := st.Objectives.ListByScope(ctx, level, entityID)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	w := EqualWeights(len(rows))
	weights := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for i := range rows {
		if !rows[i].ObjectiveWeight.Equal(w) {
			weights[rows[i].ObjectiveID] = w
		}
	}
	if len(weights) == 0 {
		return len(rows), nil
	}
	if err := st.Objectives.UpdateWeights(ctx, level, weights); err != nil {
		return 0, err
	}
	return len(rows), nil
}
