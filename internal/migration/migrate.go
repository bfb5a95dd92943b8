package migration

import (
	"fmt"

	"github.com/damoang/angple-notes/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for the notes table.
// The table is created when missing; an existing table only gains missing columns/indexes.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Note{})
}

// Report describes the current state of the notes schema
type Report struct {
	TableExists bool
	Rows        int64
	// MissingColumns lists model columns the table does not have yet
	MissingColumns []string
}

// Inspect reports whether the notes table matches the model without changing it
func Inspect(db *gorm.DB) (*Report, error) {
	m := db.Migrator()
	note := &domain.Note{}

	report := &Report{}
	if !m.HasTable(note) {
		return report, nil
	}
	report.TableExists = true

	for _, column := range []string{"id", "created_at", "note_title", "note_text"} {
		if !m.HasColumn(note, column) {
			report.MissingColumns = append(report.MissingColumns, column)
		}
	}

	if err := db.Model(note).Count(&report.Rows).Error; err != nil {
		return nil, fmt.Errorf("count notes: %w", err)
	}
	return report, nil
}

// UpToDate reports whether no migration is pending
func (r *Report) UpToDate() bool {
	return r.TableExists && len(r.MissingColumns) == 0
}
