package pantry

import (
	"strconv"
	"strings"

	"larder/internal/models"
)

// Row is an opaque record as it comes back from the row store. Values stay
// strings until Normalize coerces them; missing fields are simply absent.
type Row map[string]string

// Get returns the named field and whether it was present on the row
func (r Row) Get(field string) (string, bool) {
	v, ok := r[field]
	return v, ok
}

// Field names recognised on a pantry row
const (
	FieldName        = "name"
	FieldPrice       = "price"
	FieldWeight      = "weight"
	FieldExpiry      = "expiry"
	FieldRemaining   = "remaining"
	FieldAverageDays = "averageDays"
	FieldShelfLife   = "shelfLife"
)

// Defaults applied when a field is missing or fails to parse
const (
	DefaultWeight      = "unspecified"
	DefaultAverageDays = 3
	DefaultShelfLife   = 7
)

// Normalize maps raw rows into canonical inventory items. Every row
// normalizes successfully no matter how many fields are missing; bad
// values fall back to their defaults instead of producing an error.
func Normalize(rows []Row) []models.InventoryItem {
	items := make([]models.InventoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, normalizeRow(row))
	}
	return items
}

func normalizeRow(row Row) models.InventoryItem {
	return models.InventoryItem{
		Name:        textField(row, FieldName, ""),
		Price:       nonNegativeField(row, FieldPrice, 0),
		Weight:      textField(row, FieldWeight, DefaultWeight),
		Expiry:      textField(row, FieldExpiry, ""),
		Remaining:   percentField(row, FieldRemaining),
		AverageDays: positiveField(row, FieldAverageDays, DefaultAverageDays),
		ShelfLife:   positiveField(row, FieldShelfLife, DefaultShelfLife),
	}
}

// textField returns the trimmed field value, or def when missing/blank
func textField(row Row, field, def string) string {
	v, ok := row.Get(field)
	if !ok {
		return def
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

// numberField parses the field as a float, returning def on any failure
func numberField(row Row, field string, def float64) float64 {
	v, ok := row.Get(field)
	if !ok {
		return def
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return n
}

// nonNegativeField is numberField floored at zero
func nonNegativeField(row Row, field string, def float64) float64 {
	n := numberField(row, field, def)
	if n < 0 {
		return def
	}
	return n
}

// positiveField is numberField for values that must stay strictly positive,
// such as consumption horizons and shelf lives
func positiveField(row Row, field string, def float64) float64 {
	n := numberField(row, field, def)
	if n <= 0 {
		return def
	}
	return n
}

// percentField clamps the parsed value into the [0,100] remaining range
func percentField(row Row, field string) float64 {
	n := numberField(row, field, 0)
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
