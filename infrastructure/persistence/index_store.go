// Package persistence stores built indexes in a relational database so
// they can be searched later without re-piping JSON through stdin.
package persistence

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sourcefield/sfind/domain/search"
	"github.com/sourcefield/sfind/internal/database"
)

// ErrIndexNotFound indicates no saved index exists under the given name.
var ErrIndexNotFound = errors.New("index not found")

// RecordJSON stores a search.Record as a JSON column.
type RecordJSON search.Record

// Scan implements sql.Scanner.
func (r *RecordJSON) Scan(value any) error {
	if value == nil {
		*r = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into RecordJSON", value)
	}

	return json.Unmarshal(data, r)
}

// Value implements driver.Valuer.
func (r RecordJSON) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

// indexEntry is one embedding record of a saved index. Position
// preserves scan order, which the search cutoff depends on.
type indexEntry struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	IndexName string     `gorm:"column:index_name;index:idx_index_position,unique,priority:1"`
	Position  int        `gorm:"column:position;index:idx_index_position,unique,priority:2"`
	Record    RecordJSON `gorm:"column:record;type:json"`
}

// TableName implements the GORM table name convention.
func (indexEntry) TableName() string { return "sfind_index_entries" }

// IndexStore persists named indexes, one row per embedding record.
type IndexStore struct {
	db *database.Database
}

// NewIndexStore creates an IndexStore and migrates its schema.
func NewIndexStore(db *database.Database) (*IndexStore, error) {
	if err := db.GORM().AutoMigrate(&indexEntry{}); err != nil {
		return nil, fmt.Errorf("migrate index store: %w", err)
	}
	return &IndexStore{db: db}, nil
}

// Save stores records under name, replacing any existing index with
// that name. Record order is preserved.
func (s *IndexStore) Save(ctx context.Context, name string, records []search.Record) error {
	session := s.db.Session(ctx)

	return session.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("index_name = ?", name).Delete(&indexEntry{}).Error; err != nil {
			return fmt.Errorf("clear index %q: %w", name, err)
		}

		entries := make([]indexEntry, len(records))
		for i, rec := range records {
			entries[i] = indexEntry{
				IndexName: name,
				Position:  i,
				Record:    RecordJSON(rec),
			}
		}
		if len(entries) == 0 {
			return nil
		}
		if err := tx.Create(&entries).Error; err != nil {
			return fmt.Errorf("save index %q: %w", name, err)
		}
		return nil
	})
}

// Load returns the records of a saved index in their original order.
func (s *IndexStore) Load(ctx context.Context, name string) ([]search.Record, error) {
	var entries []indexEntry
	err := s.db.Session(ctx).
		Where("index_name = ?", name).
		Order("position ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("load index %q: %w", name, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrIndexNotFound, name)
	}

	records := make([]search.Record, len(entries))
	for i, entry := range entries {
		records[i] = search.Record(entry.Record)
	}
	return records, nil
}

// Delete removes a saved index. Deleting a missing index is not an error.
func (s *IndexStore) Delete(ctx context.Context, name string) error {
	err := s.db.Session(ctx).Where("index_name = ?", name).Delete(&indexEntry{}).Error
	if err != nil {
		return fmt.Errorf("delete index %q: %w", name, err)
	}
	return nil
}

// Names lists the saved index names.
func (s *IndexStore) Names(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.Session(ctx).
		Model(&indexEntry{}).
		Distinct("index_name").
		Order("index_name ASC").
		Pluck("index_name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("list indexes: %w", err)
	}
	return names, nil
}
