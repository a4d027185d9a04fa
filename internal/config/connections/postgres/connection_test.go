package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestDSN(t *testing.T) {
	info := ConnectionInfo{Host: "db", Port: "5432", User: "fines", Password: "p@ss word", DB: "finedesk", SSLMode: "disable", MaxConns: 4}

	cfg, err := pgxpool.ParseConfig(info.DSN())
	if err != nil {
		t.Fatal(err)
	}
	cc := cfg.ConnConfig
	if cc.Host != "db" || cc.Port != 5432 || cc.User != "fines" || cc.Password != "p@ss word" || cc.Database != "finedesk" {
		t.Fatalf("parsed = %s:%d %s %q %s", cc.Host, cc.Port, cc.User, cc.Password, cc.Database)
	}
}
