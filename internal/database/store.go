package database

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"larder/internal/pantry"
)

// PantryRow is a stored pantry record. Values are kept as the free-form
// strings a spreadsheet-style source provides; coercion into typed fields
// is the normalizer's job, not the store's.
type PantryRow struct {
	gorm.Model
	Name        string
	Price       string
	Weight      string
	Expiry      string
	Remaining   string
	AverageDays string
	ShelfLife   string
}

// PantryStore is the row-oriented datastore collaborator: read all rows,
// add a row, update a row
type PantryStore struct {
	db *gorm.DB
}

// NewPantryStore creates a store over an open database handle
func NewPantryStore(db *gorm.DB) *PantryStore {
	return &PantryStore{db: db}
}

// ReadAllRows returns every pantry row as an opaque field map, in insert
// order. Blank columns are left off the map so normalization applies its
// defaults.
func (s *PantryStore) ReadAllRows(ctx context.Context) ([]pantry.Row, error) {
	var stored []PantryRow
	if err := s.db.Order("id").Find(&stored).Error; err != nil {
		return nil, fmt.Errorf("query pantry rows: %w", err)
	}

	rows := make([]pantry.Row, 0, len(stored))
	for _, r := range stored {
		rows = append(rows, rowFields(r))
	}
	return rows, nil
}

// AddRow inserts a new pantry row from the given fields and returns its id
func (s *PantryStore) AddRow(ctx context.Context, fields map[string]string) (uint, error) {
	row := PantryRow{}
	applyFields(&row, fields)

	if err := s.db.Create(&row).Error; err != nil {
		return 0, fmt.Errorf("insert pantry row: %w", err)
	}
	return row.ID, nil
}

// UpdateRow overwrites the given fields on an existing row
func (s *PantryStore) UpdateRow(ctx context.Context, id uint, fields map[string]string) error {
	var row PantryRow
	if err := s.db.First(&row, id).Error; err != nil {
		return fmt.Errorf("find pantry row %d: %w", id, err)
	}

	applyFields(&row, fields)
	if err := s.db.Save(&row).Error; err != nil {
		return fmt.Errorf("update pantry row %d: %w", id, err)
	}
	return nil
}

// rowFields converts a stored row into the opaque accessor shape the
// normalizer consumes
func rowFields(r PantryRow) pantry.Row {
	row := pantry.Row{}
	put := func(field, value string) {
		if value != "" {
			row[field] = value
		}
	}
	put(pantry.FieldName, r.Name)
	put(pantry.FieldPrice, r.Price)
	put(pantry.FieldWeight, r.Weight)
	put(pantry.FieldExpiry, r.Expiry)
	put(pantry.FieldRemaining, r.Remaining)
	put(pantry.FieldAverageDays, r.AverageDays)
	put(pantry.FieldShelfLife, r.ShelfLife)
	return row
}

// applyFields copies recognised fields onto the stored row, ignoring
// anything else the caller sent
func applyFields(row *PantryRow, fields map[string]string) {
	for field, value := range fields {
		switch field {
		case pantry.FieldName:
			row.Name = value
		case pantry.FieldPrice:
			row.Price = value
		case pantry.FieldWeight:
			row.Weight = value
		case pantry.FieldExpiry:
			row.Expiry = value
		case pantry.FieldRemaining:
			row.Remaining = value
		case pantry.FieldAverageDays:
			row.AverageDays = value
		case pantry.FieldShelfLife:
			row.ShelfLife = value
		}
	}
}
