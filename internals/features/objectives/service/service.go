// file: internals/features/objectives/service/service.go
package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	objModel "pilotage_backend/internals/features/objectives/model"
)

// Service: engine distribusi & tracking objective.
// Semua mutasi per-entity diserialisasi lewat keyed mutex supaya
// rebalance tidak saling timpa saat dua request pegang entity yang sama.
type Service struct {
	stores  *Stores
	tx      TxRunner
	metrics MetricRegistry

	// key "LEVEL|entity_uuid" → mutex portfolio entity itu
	scopeMu sync.Map
	// key metric code → mutex refresh metric itu
	metricMu sync.Map
}

// New: wiring produksi (GORM).
func New(db *gorm.DB) *Service {
	return &Service{
		stores:  NewGormStores(db),
		tx:      NewGormTxRunner(db),
		metrics: DefaultMetricRegistry(),
	}
}

// NewWithStores: wiring test (fake in-memory).
func NewWithStores(stores *Stores, tx TxRunner) *Service {
	return &Service{
		stores:  stores,
		tx:      tx,
		metrics: DefaultMetricRegistry(),
	}
}

func (s *Service) Metrics() MetricRegistry { return s.metrics }

func (s *Service) lockScope(level Level, entityID uuid.UUID) func() {
	key := string(level) + "|" + entityID.String()
	v, _ := s.scopeMu.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Service) lockMetric(code string) func() {
	v, _ := s.metricMu.LoadOrStore(code, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// ResolveObjective mencari objective by id. Kalau levelHint kosong, probe
// tabel dari atas ke bawah; id yang tabrakan antar level wajib bawa hint.
func (s *Service) ResolveObjective(ctx context.Context, id uuid.UUID, levelHint Level) (Level, *objModel.ObjectiveModel, error) {
	if levelHint != "" {
		if !levelHint.valid() {
			return "", nil, &ValidationError{Reason: "Level objective tidak dikenal: " + string(levelHint)}
		}
		o, err := s.stores.Objectives.Get(ctx, levelHint, id)
		if err != nil {
			return "", nil, err
		}
		if o == nil {
			return "", nil, &NotFoundError{Resource: "Objective", Detail: id.String()}
		}
		return levelHint, o, nil
	}
	for _, level := range probeOrder {
		o, err := s.stores.Objectives.Get(ctx, level, id)
		if err != nil {
			return "", nil, err
		}
		if o != nil {
			return level, o, nil
		}
	}
	return "", nil, &NotFoundError{Resource: "Objective", Detail: id.String()}
}
