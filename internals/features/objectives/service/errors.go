// file: internals/features/objectives/service/errors.go
package service

import "fmt"

// ValidationError: request-nya sendiri yang salah (mode/target/level).
// Controller map ke 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ConsistencyError: request valid secara bentuk, tapi melanggar struktur
// organisasi (entity di luar scope parent). Controller map ke 400 juga,
// dibedakan supaya pesan & kode error-nya beda.
type ConsistencyError struct {
	Reason string
}

func (e *ConsistencyError) Error() string { return e.Reason }

// NotFoundError: objective / entity referensi tidak ada. Controller map ke 404.
type NotFoundError struct {
	Resource string
	Detail   string
}

func (e *NotFoundError) Error() string {
	if e.Detail == "" {
		return e.Resource + " tidak ditemukan"
	}
	return fmt.Sprintf("%s tidak ditemukan: %s", e.Resource, e.Detail)
}

// CapacityWarning BUKAN error: distribusi yang melebihi target parent tetap
// ditulis, warning-nya cuma advisory di response. Nilai decimal disimpan
// sebagai string supaya presisi tidak hilang di JSON.
type CapacityWarning struct {
	ParentTarget   string `json:"parent_target"`
	TotalAllocated string `json:"total_allocated"`
	Excess         string `json:"excess"`
	Message        string `json:"message"`
}
