// file: internals/features/objectives/service/store.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	objModel "pilotage_backend/internals/features/objectives/model"
	orgModel "pilotage_backend/internals/features/organization/model"
)

// ObjectiveStore: akses lima tabel objective lewat satu interface.
// Implementasi GORM memilih tabel dari level (db.Table), jadi service
// tidak pernah menyebut nama tabel.
//
// Konvensi: Get/Find* return (nil, nil) kalau baris tidak ada — bukan error.
type ObjectiveStore interface {
	Get(ctx context.Context, level Level, id uuid.UUID) (*objModel.ObjectiveModel, error)

	// ListByScope: semua objective milik satu entity (portfolio) di satu level.
	ListByScope(ctx context.Context, level Level, entityID uuid.UUID) ([]objModel.ObjectiveModel, error)

	// ListByFiscalYear: semua objective satu exercice di satu level.
	// scopeIDs kosong = tanpa filter scope; terisi = kolom scope level itu
	// harus masuk himpunan (untuk hierarchy terfilter akses).
	ListByFiscalYear(ctx context.Context, level Level, fiscalYearID uuid.UUID, scopeIDs []uuid.UUID) ([]objModel.ObjectiveModel, error)

	// ListCascadedChildren: baris hasil cascade dari satu parent
	// (parent_id = parentID AND is_cascaded = true) di tabel level anak.
	ListCascadedChildren(ctx context.Context, childLevel Level, parentID uuid.UUID) ([]objModel.ObjectiveModel, error)

	// FindCascaded: baris cascade untuk (parent, entity) — kunci idempotensi upsert.
	FindCascaded(ctx context.Context, childLevel Level, parentID, entityID uuid.UUID) (*objModel.ObjectiveModel, error)

	// ListAutomaticByMetricCode: objective AUTOMATIC dengan metric_code tertentu
	// di satu level (untuk broadcast refresh).
	ListAutomaticByMetricCode(ctx context.Context, level Level, metricCode string) ([]objModel.ObjectiveModel, error)

	Create(ctx context.Context, level Level, o *objModel.ObjectiveModel) error
	Update(ctx context.Context, level Level, o *objModel.ObjectiveModel) error

	// UpdateWeights: tulis bobot baru per id dalam satu batch.
	UpdateWeights(ctx context.Context, level Level, weights map[uuid.UUID]decimal.Decimal) error

	Delete(ctx context.Context, level Level, id uuid.UUID) error
}

// ProgressStore: snapshot progres per (level, objective_id).
type ProgressStore interface {
	Get(ctx context.Context, level Level, objectiveID uuid.UUID) (*objModel.ObjectiveProgressModel, error)
	Upsert(ctx context.Context, p *objModel.ObjectiveProgressModel) error
	Delete(ctx context.Context, level Level, objectiveID uuid.UUID) error
}

// Directory: direktori organisasi read-only. Engine tidak pernah menulis
// ke tabel organisasi, hanya validasi scope & enumerasi kandidat cascade.
type Directory interface {
	FiscalYearExists(ctx context.Context, id uuid.UUID) (bool, error)
	BusinessUnitExists(ctx context.Context, id uuid.UUID) (bool, error)
	DivisionExists(ctx context.Context, id uuid.UUID) (bool, error)
	GradeExists(ctx context.Context, id uuid.UUID) (bool, error)
	CollaboratorExists(ctx context.Context, id uuid.UUID) (bool, error)

	// DivisionInBusinessUnit: division memang di bawah BU ini?
	DivisionInBusinessUnit(ctx context.Context, divisionID, businessUnitID uuid.UUID) (bool, error)
	// CollaboratorInDivision: collaborateur aktif & terdaftar di division ini?
	CollaboratorInDivision(ctx context.Context, collaboratorID, divisionID uuid.UUID) (bool, error)
	// CollaboratorHasGrade: collaborateur aktif memegang grade ini?
	CollaboratorHasGrade(ctx context.Context, collaboratorID, gradeID uuid.UUID) (bool, error)

	ListBusinessUnits(ctx context.Context) ([]orgModel.BusinessUnitModel, error)
	ListDivisionsOfBusinessUnit(ctx context.Context, businessUnitID uuid.UUID) ([]orgModel.DivisionModel, error)
	ListActiveCollaboratorsOfDivision(ctx context.Context, divisionID uuid.UUID) ([]orgModel.CollaboratorModel, error)
	// ListGradeCollaboratorsOfDivision: collaborateur aktif dengan grade tertentu
	// di division tertentu (fan-out assign-to-grade).
	ListGradeCollaboratorsOfDivision(ctx context.Context, gradeID, divisionID uuid.UUID) ([]orgModel.CollaboratorModel, error)
}

// MetricSource: angka mentah dari tabel pipeline untuk kalkulator metric.
type MetricSource interface {
	CampaignsCount(ctx context.Context, fiscalYearID *uuid.UUID) (int64, error)
	OpportunitiesWonAndTotal(ctx context.Context, fiscalYearID *uuid.UUID) (won int64, total int64, err error)
	MissionsBudgetSum(ctx context.Context, fiscalYearID *uuid.UUID) (decimal.Decimal, error)
	ActiveMissionsCount(ctx context.Context, fiscalYearID *uuid.UUID) (int64, error)
}

// Stores: bundel dependensi data engine. Dipisah supaya test bisa pasang
// fake in-memory tanpa DB.
type Stores struct {
	Objectives ObjectiveStore
	Progress   ProgressStore
	Dir        Directory
	Metrics    MetricSource
}

// TxRunner menjalankan fn dalam satu transaksi; Stores yang diterima fn
// sudah terikat ke transaksi itu. Implementasi in-memory cukup memanggil
// fn dengan stores yang sama.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx *Stores) error) error
}
