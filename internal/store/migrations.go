package store

import (
	"gorm.io/gorm"

	"github.com/beesaferoot/tenancy/internal/models"
)

// Migrations is the schema history of the tenancy store.
func Migrations() []*Migration {
	return []*Migration{
		{
			Version: "20241001000001",
			Name:    "create_tenancy_tables",
			Up: func(tx *gorm.DB) error {
				return tx.AutoMigrate(models.All()...)
			},
			Down: func(tx *gorm.DB) error {
				all := models.All()
				for i := len(all) - 1; i >= 0; i-- {
					if err := tx.Migrator().DropTable(all[i]); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			// At most one ACTIVE lease per property.
			Version: "20241001000002",
			Name:    "one_active_lease_per_property",
			Up: func(tx *gorm.DB) error {
				return tx.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_leases_one_active
					ON leases (property_id) WHERE status = 'ACTIVE'`).Error
			},
			Down: func(tx *gorm.DB) error {
				return tx.Exec(`DROP INDEX IF EXISTS idx_leases_one_active`).Error
			},
		},
	}
}

// Migrate applies every pending schema migration.
func (s *Store) Migrate() error {
	_, err := s.Migrator().Up()
	return err
}

// Migrator returns a migrator loaded with the store's schema history.
func (s *Store) Migrator() *Migrator {
	return NewMigrator(s.db, Migrations()...)
}
