// file: internals/seeds/runner.go
package seeds

import (
	"log"

	"gorm.io/gorm"
)

// RunAllSeeds: seed reference data (types, units, metrics). Idempoten —
// kode yang sudah ada dilewati, aman dipanggil setiap start.
func RunAllSeeds(db *gorm.DB) {
	if err := SeedObjectiveUnits(db); err != nil {
		log.Printf("[ERROR] seed objective units: %v", err)
	}
	if err := SeedObjectiveTypes(db); err != nil {
		log.Printf("[ERROR] seed objective types: %v", err)
	}
	if err := SeedObjectiveMetrics(db); err != nil {
		log.Printf("[ERROR] seed objective metrics: %v", err)
	}
	log.Println("✅ Seeds selesai")
}
