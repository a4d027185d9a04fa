package mapper

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"finedesk/internal/models"
)

func decode(t *testing.T, s string) models.RawRecord {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		t.Fatalf("bad fixture %s: %v", s, err)
	}
	return models.RawRecord(m)
}

// assertDefined fails when a text field is empty or the status is unset.
func assertDefined(t *testing.T, name string, row models.ViewRow) {
	t.Helper()
	v := reflect.ValueOf(row)
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			t.Fatalf("%s: field %s is empty", name, v.Type().Field(i).Name)
		}
	}
}

func TestMappers_tolerateSparseRecords(t *testing.T) {
	fixtures := []string{
		`{}`,
		`{"id": null}`,
		`{"fine": null}`,
		`{"fine": "not an object"}`,
		`{"fine": {"id": {}}}`,
		`{"charged_fine": null}`,
		`{"charged_fine": 5}`,
		`{"charged_fine": {"fine": [], "driver_user": "x", "issuing_police_officer": null}}`,
		`{"charged_fine": {"fine": {"title": ""}, "driver_user": {}}}`,
		`{"driver_user": {"name": 12}, "paid_at": ""}`,
		`{"accepted": "maybe", "status": 3}`,
	}
	mappers := DefaultRegistry()
	if len(mappers) != 3 {
		t.Fatalf("registry has %d mappers", len(mappers))
	}

	for _, fx := range fixtures {
		raw := decode(t, fx)
		for _, m := range mappers {
			assertDefined(t, m.Type()+" "+fx, m.Map(raw))
		}
	}

	for _, m := range mappers {
		assertDefined(t, m.Type()+" nil", m.Map(nil))
	}
}

func TestFines_nestedFine(t *testing.T) {
	raw := decode(t, `{
		"id": 31,
		"fine": {"id": 4, "name": "Speeding", "amount": 2500, "description": "Over the limit"},
		"issued_at": "2025-03-01T10:00:00Z",
		"paid_at": null,
		"expires_at": "2025-03-15T10:00:00Z",
		"police_user_id": 9
	}`)

	row := Fines{}.Map(raw)
	if row.ID != "31" || row.FineID != "4" {
		t.Fatalf("unexpected ids: %+v", row)
	}
	if row.FineName != "Speeding" || row.Amount != "2500" || row.Description != "Over the limit" {
		t.Fatalf("unexpected fine fields: %+v", row)
	}
	if row.Officer != "9" {
		t.Fatalf("expected officer 9, got %q", row.Officer)
	}
	if row.PaidAt != nil || row.Status != models.StatusUnpaid {
		t.Fatalf("expected unpaid, got %+v", row)
	}
	if row.IssuedAt == nil || *row.IssuedAt != "2025-03-01T10:00:00Z" {
		t.Fatalf("issuedAt must pass through raw, got %v", row.IssuedAt)
	}
	if row.Station != models.NotAvailable {
		t.Fatalf("expected N/A station, got %q", row.Station)
	}
}

func TestFines_flatDefinition(t *testing.T) {
	row := Fines{}.Map(decode(t, `{"id": 1, "name": "Speeding"}`))
	if row.FineID != "1" || row.FineName != "Speeding" || row.ID != "1" {
		t.Fatalf("unexpected row %+v", row)
	}
}

func TestFines_keyCasingAliases(t *testing.T) {
	row := Fines{}.Map(decode(t, `{"fineID": 8, "charged_at": "2025-01-01", "paidAt": "2025-01-02"}`))
	if row.FineID != "8" {
		t.Fatalf("expected fineID alias, got %q", row.FineID)
	}
	if row.IssuedAt == nil || *row.IssuedAt != "2025-01-01" {
		t.Fatalf("expected charged_at alias, got %v", row.IssuedAt)
	}
	if row.Status != models.StatusPaid {
		t.Fatalf("expected paid via paidAt alias, got %q", row.Status)
	}
}

func TestAppeals_mapping(t *testing.T) {
	cases := []struct {
		accepted string
		want     models.Status
	}{
		{`null`, models.StatusPending},
		{`true`, models.StatusAccepted},
		{`false`, models.StatusDeclined},
		{`1`, models.StatusAccepted},
		{`0`, models.StatusDeclined},
	}

	for _, c := range cases {
		raw := decode(t, `{
			"id": 5,
			"reason": "",
			"description": "I was not driving",
			"accepted": `+c.accepted+`,
			"charged_fine": {
				"id": 77,
				"fine": {"name": "Red light"},
				"driver_user": {"name": "Nimal Perera"},
				"issuing_police_officer": {"name": "Sgt. Silva"}
			}
		}`)
		row := Appeals{}.Map(raw)
		if row.Status != c.want {
			t.Fatalf("accepted=%s: want %q got %q", c.accepted, c.want, row.Status)
		}
		if row.ID != "5" || row.FineID != "77" {
			t.Fatalf("unexpected ids %+v", row)
		}
		if row.Driver != "Nimal Perera" || row.Officer != "Sgt. Silva" {
			t.Fatalf("unexpected people %+v", row)
		}
		if row.FineName != "Red light" {
			t.Fatalf("expected offense fallback to name, got %q", row.FineName)
		}
		if row.Reason != "I was not driving" {
			t.Fatalf("expected reason fallback to description, got %q", row.Reason)
		}
	}
}

func TestAppeals_statusString(t *testing.T) {
	row := Appeals{}.Map(decode(t, `{"id": 1, "status": "Rejected"}`))
	if row.Status != models.StatusDeclined {
		t.Fatalf("expected declined, got %q", row.Status)
	}
}

func TestChargedFines_mapping(t *testing.T) {
	row := ChargedFines{}.Map(decode(t, `{"id": 12, "driver_user_id": 300, "fine_id": 4, "traffic_police_id": "TP-9", "paid_at": "2025-02-02 08:00:00"}`))
	if row.ID != "12" || row.DriverID != "300" || row.FineID != "4" || row.Officer != "TP-9" {
		t.Fatalf("unexpected row %+v", row)
	}
	if row.Status != models.StatusPaid {
		t.Fatalf("expected paid, got %q", row.Status)
	}
}

func TestMapAll_nonObjects(t *testing.T) {
	rows := MapAll(Fines{}, []any{"x", nil, map[string]any{"id": json.Number("2")}})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].ID != models.NotAvailable || rows[2].ID != "2" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("not-a-date"); got != InvalidDate {
		t.Fatalf("expected %q, got %q", InvalidDate, got)
	}
	if got := FormatDate(""); got != InvalidDate {
		t.Fatalf("expected invalid for empty, got %q", got)
	}
	if got := FormatDatePtr(nil); got != InvalidDate {
		t.Fatalf("expected invalid for nil, got %q", got)
	}

	want := time.Date(2025, 3, 1, 14, 5, 9, 0, time.Local).Format(DateLayout)
	if got := FormatDate("2025-03-01 14:05:09"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := FormatDate("2025-03-01T14:05:09.000000Z"); got == InvalidDate {
		t.Fatalf("fractional RFC3339 should parse")
	}
}
