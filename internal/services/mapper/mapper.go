// Package mapper turns server-shaped records into flat view rows. There is
// one Mapper per resource because the endpoints do not share a schema.
package mapper

import "finedesk/internal/models"

type Mapper interface {
	Type() string
	Map(raw models.RawRecord) models.ViewRow
}

// MapAll maps every element of items. Elements that are not objects map to a
// row of defaults.
func MapAll(m Mapper, items []any) []models.ViewRow {
	rows := make([]models.ViewRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, m.Map(models.AsRecord(it)))
	}
	return rows
}

func DefaultRegistry() map[string]Mapper {
	return map[string]Mapper{
		Fines{}.Type():        Fines{},
		Appeals{}.Type():      Appeals{},
		ChargedFines{}.Type(): ChargedFines{},
	}
}
