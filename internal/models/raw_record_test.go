package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func record(t *testing.T, s string) RawRecord {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatal(err)
	}
	return AsRecord(v)
}

func TestRawRecord_lookup(t *testing.T) {
	r := record(t, `{"id": 7, "fine": {"name": "Speeding", "amount": 12.5}, "empty": "  ", "nil": null, "list": [1]}`)

	cases := []struct {
		path []string
		want string
		ok   bool
	}{
		{P("id"), "7", true},
		{P("fine", "name"), "Speeding", true},
		{P("fine", "amount"), "12.5", true},
		{P("fine", "name", "deeper"), "", false},
		{P("missing", "x"), "", false},
		{P("empty"), "", false},
		{P("nil"), "", false},
		{P("list"), "", false},
		{P("fine"), "", false},
	}
	for _, c := range cases {
		got, ok := r.String(c.path...)
		if got != c.want || ok != c.ok {
			t.Fatalf("%v: got %q %v", c.path, got, ok)
		}
	}

	if got := r.Text(NotAvailable, P("fine", "title"), P("fine", "name")); got != "Speeding" {
		t.Fatalf("Text = %q", got)
	}
	if got := r.Text(NotAvailable, P("nope")); got != NotAvailable {
		t.Fatalf("Text default = %q", got)
	}
	if len(r.Record("nil")) != 0 || len(r.Record("id")) != 0 {
		t.Fatalf("Record on non-object not empty")
	}
	var nilRec RawRecord
	if _, ok := nilRec.String("id"); ok || len(nilRec.Record("x")) != 0 {
		t.Fatalf("nil record not tolerated")
	}
}

func TestRawRecord_bool(t *testing.T) {
	r := record(t, `{"t": true, "f": false, "one": 1, "zero": 0, "s": "true", "null": null, "bad": "maybe"}`)

	for key, want := range map[string]bool{"t": true, "f": false, "one": true, "zero": false, "s": true} {
		b := r.Bool(key)
		if b == nil || *b != want {
			t.Fatalf("%s: got %v", key, b)
		}
	}
	for _, key := range []string{"null", "bad", "missing"} {
		if b := r.Bool(key); b != nil {
			t.Fatalf("%s: got %v, want nil", key, *b)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if !StatusAccepted.Terminal() || !StatusDeclined.Terminal() || StatusPending.Terminal() || StatusUnknown.Terminal() {
		t.Fatal("terminal states wrong")
	}
}
