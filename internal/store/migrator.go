package store

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

// Migration is a single versioned schema change.
type Migration struct {
	Version string // sortable, e.g. a timestamp
	Name    string
	Up      func(*gorm.DB) error
	Down    func(*gorm.DB) error
}

// MigrationRecord represents a record of an applied migration.
type MigrationRecord struct {
	Version   string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

// MigrationStatus pairs a known migration with whether it was applied.
type MigrationStatus struct {
	Version string
	Name    string
	Applied bool
}

// Migrator handles the execution of migrations
type Migrator struct {
	db         *gorm.DB
	migrations []*Migration
}

// NewMigrator creates a Migrator over the given migrations, ordered by
// version.
func NewMigrator(db *gorm.DB, migrations ...*Migration) *Migrator {
	m := &Migrator{db: db}
	for _, mr := range migrations {
		m.Register(mr)
	}
	return m
}

// Register adds a migration to the migrator
func (m *Migrator) Register(migration *Migration) {
	m.migrations = append(m.migrations, migration)
	sort.SliceStable(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version < m.migrations[j].Version
	})
}

func (m *Migrator) ensureVersionTable() error {
	return m.db.AutoMigrate(&MigrationRecord{})
}

// AppliedVersions returns the set of applied migration versions.
func (m *Migrator) AppliedVersions() (map[string]bool, error) {
	if err := m.ensureVersionTable(); err != nil {
		return nil, err
	}

	var records []MigrationRecord
	if err := m.db.Find(&records).Error; err != nil {
		return nil, err
	}

	versions := make(map[string]bool, len(records))
	for _, record := range records {
		versions[record.Version] = true
	}
	return versions, nil
}

// Pending lists migrations not applied yet, in order.
func (m *Migrator) Pending() ([]*Migration, error) {
	applied, err := m.AppliedVersions()
	if err != nil {
		return nil, err
	}

	var pending []*Migration
	for _, mr := range m.migrations {
		if !applied[mr.Version] {
			pending = append(pending, mr)
		}
	}
	return pending, nil
}

// Up applies all pending migrations, each in its own transaction, and
// returns the ones it applied.
func (m *Migrator) Up() ([]*Migration, error) {
	pending, err := m.Pending()
	if err != nil {
		return nil, err
	}

	for i, mr := range pending {
		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := mr.Up(tx); err != nil {
				return err
			}
			return tx.Create(&MigrationRecord{
				Version:   mr.Version,
				Name:      mr.Name,
				AppliedAt: time.Now(),
			}).Error
		})
		if err != nil {
			return pending[:i], fmt.Errorf("failed to apply migration %s: %w", mr.Name, err)
		}
	}
	return pending, nil
}

// Down reverts the most recently applied migration. It returns nil, nil
// when nothing is applied.
func (m *Migrator) Down() (*Migration, error) {
	if err := m.ensureVersionTable(); err != nil {
		return nil, err
	}

	var records []MigrationRecord
	if err := m.db.Order("version DESC").Limit(1).Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	last := records[0]

	var target *Migration
	for _, mr := range m.migrations {
		if mr.Version == last.Version {
			target = mr
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("migration for version %s not found", last.Version)
	}

	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := target.Down(tx); err != nil {
			return err
		}
		return tx.Delete(&last).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to revert migration %s: %w", target.Name, err)
	}
	return target, nil
}

// Status reports every known migration in order.
func (m *Migrator) Status() ([]MigrationStatus, error) {
	applied, err := m.AppliedVersions()
	if err != nil {
		return nil, err
	}

	out := make([]MigrationStatus, 0, len(m.migrations))
	for _, mr := range m.migrations {
		out = append(out, MigrationStatus{Version: mr.Version, Name: mr.Name, Applied: applied[mr.Version]})
	}
	return out, nil
}

// History returns applied migration records, newest first.
func (m *Migrator) History() ([]MigrationRecord, error) {
	if err := m.ensureVersionTable(); err != nil {
		return nil, err
	}
	var records []MigrationRecord
	if err := m.db.Order("applied_at DESC").Order("version DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
