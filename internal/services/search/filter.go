// Package search filters mapped rows on the client side.
package search

import (
	"strings"

	"finedesk/internal/models"
)

// Field extracts one searchable text from a row.
type Field func(models.ViewRow) string

var (
	ByDriver   Field = func(r models.ViewRow) string { return r.Driver }
	ByOfficer  Field = func(r models.ViewRow) string { return r.Officer }
	ByID       Field = func(r models.ViewRow) string { return r.ID }
	ByFineID   Field = func(r models.ViewRow) string { return r.FineID }
	ByFineName Field = func(r models.ViewRow) string { return r.FineName }
)

// Filter keeps the rows where any field contains term, ignoring case. An
// empty term returns rows as given. rows is never modified.
func Filter(rows []models.ViewRow, term string, fields ...Field) []models.ViewRow {
	if term == "" {
		return rows
	}
	q := strings.ToLower(term)

	out := make([]models.ViewRow, 0, len(rows))
	for _, r := range rows {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(r)), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Page returns at most the first n rows; n <= 0 means all.
func Page(rows []models.ViewRow, n int) []models.ViewRow {
	if n <= 0 || len(rows) <= n {
		return rows
	}
	return rows[:n:n]
}
