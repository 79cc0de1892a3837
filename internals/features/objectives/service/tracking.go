// file: internals/features/objectives/service/tracking.go
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	objModel "pilotage_backend/internals/features/objectives/model"
)

// RefreshResult: hasil satu kali refresh metric.
type RefreshResult struct {
	MetricCode   string          `json:"metric_code"`
	Value        decimal.Decimal `json:"value"`
	UpdatedCount int             `json:"updated_count"`
	MeasuredAt   time.Time       `json:"measured_at"`
}

// RefreshAutomaticMetric menghitung nilai global satu metric lalu
// menyiarkannya ke SEMUA objective AUTOMATIC dengan kode itu, di semua
// level. Ini memang broadcast: metrik dihitung global, bukan per scope,
// jadi angkanya sama untuk setiap baris. Gagal hitung = tidak ada tulisan.
// Refresh kode yang sama diserialisasi supaya nilai basi tidak menimpa
// yang baru.
func (s *Service) RefreshAutomaticMetric(ctx context.Context, metricCode string, fiscalYearID *uuid.UUID, actorID uuid.UUID) (*RefreshResult, error) {
	calc, ok := s.metrics.Lookup(metricCode)
	if !ok {
		return nil, &ValidationError{Reason: "Metric code tidak terdaftar: " + metricCode}
	}

	unlock := s.lockMetric(metricCode)
	defer unlock()

	value, err := calc(ctx, s.stores.Metrics, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("hitung metric %s: %w", metricCode, err)
	}

	now := time.Now()
	actor := actorID
	res := &RefreshResult{MetricCode: metricCode, Value: value, MeasuredAt: now}

	err = s.tx.RunInTx(ctx, func(tx *Stores) error {
		for _, level := range probeOrder {
			rows, err := tx.Objectives.ListAutomaticByMetricCode(ctx, level, metricCode)
			if err != nil {
				return err
			}
			for i := range rows {
				existing, err := tx.Progress.Get(ctx, level, rows[i].ObjectiveID)
				if err != nil {
					return err
				}
				p := &objModel.ObjectiveProgressModel{
					ObjectiveProgressLevel:        string(level),
					ObjectiveProgressObjectiveID:  rows[i].ObjectiveID,
					ObjectiveProgressTargetValue:  rows[i].ObjectiveTargetValue,
					ObjectiveProgressCurrentValue: value,
					ObjectiveProgressUpdatedBy:    &actor,
					ObjectiveProgressMeasuredAt:   &now,
				}
				if existing != nil {
					p.ObjectiveProgressNotes = existing.ObjectiveProgressNotes
					p.ObjectiveProgressCreatedAt = existing.ObjectiveProgressCreatedAt
				}
				if err := tx.Progress.Upsert(ctx, p); err != nil {
					return err
				}
				res.UpdatedCount++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] refresh metric %s → %s (%d objective diupdate)", metricCode, value.String(), res.UpdatedCount)
	return res, nil
}

// UpdateProgress: input manual dari user untuk satu objective.
func (s *Service) UpdateProgress(ctx context.Context, level Level, objectiveID uuid.UUID, currentValue decimal.Decimal, notes *string, actorID uuid.UUID) (*objModel.ObjectiveProgressModel, error) {
	if !level.valid() {
		return nil, &ValidationError{Reason: "Level objective tidak dikenal: " + string(level)}
	}
	o, err := s.stores.Objectives.Get(ctx, level, objectiveID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, &NotFoundError{Resource: "Objective", Detail: objectiveID.String()}
	}

	now := time.Now()
	actor := actorID
	p := &objModel.ObjectiveProgressModel{
		ObjectiveProgressLevel:        string(level),
		ObjectiveProgressObjectiveID:  objectiveID,
		ObjectiveProgressTargetValue:  o.ObjectiveTargetValue,
		ObjectiveProgressCurrentValue: currentValue,
		ObjectiveProgressNotes:        notes,
		ObjectiveProgressUpdatedBy:    &actor,
		ObjectiveProgressMeasuredAt:   &now,
	}
	existing, err := s.stores.Progress.Get(ctx, level, objectiveID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		p.ObjectiveProgressCreatedAt = existing.ObjectiveProgressCreatedAt
		if notes == nil {
			p.ObjectiveProgressNotes = existing.ObjectiveProgressNotes
		}
	}
	if err := s.stores.Progress.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProgress: snapshot progress satu objective.
func (s *Service) GetProgress(ctx context.Context, level Level, objectiveID uuid.UUID) (*objModel.ObjectiveProgressModel, error) {
	if !level.valid() {
		return nil, &ValidationError{Reason: "Level objective tidak dikenal: " + string(level)}
	}
	p, err := s.stores.Progress.Get(ctx, level, objectiveID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &NotFoundError{Resource: "Progress objective", Detail: objectiveID.String()}
	}
	return p, nil
}
