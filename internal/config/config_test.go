package config

import (
	"testing"
	"time"
)

func TestLoad_defaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "API_BASE_URL", "API_TIMEOUT_SECONDS", "NOTICE_TTL_MS", "PDF_ARCHIVE", "AWS_BUCKET"} {
		t.Setenv(k, "")
	}

	st := Load()
	if st.Port != "8070" || st.APIBaseURL != "http://localhost:8000/api" {
		t.Fatalf("settings = %+v", st)
	}
	if st.APITimeout != 15*time.Second || st.NoticeTTL != 3*time.Second {
		t.Fatalf("timeouts = %s %s", st.APITimeout, st.NoticeTTL)
	}
	if st.PDFArchive != "s3://finedesk/charged-fines" {
		t.Fatalf("archive = %q", st.PDFArchive)
	}
}

func TestLoad_env(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://fines.example.com/api/")
	t.Setenv("API_TIMEOUT_SECONDS", "4")
	t.Setenv("NOTICE_TTL_MS", "nope")
	t.Setenv("PDF_ARCHIVE", "/var/lib/finedesk/pdf")
	t.Setenv("PG_MAX_CONNS", "8")

	st := Load()
	if st.APIBaseURL != "https://fines.example.com/api" {
		t.Fatalf("base = %q", st.APIBaseURL)
	}
	if st.APITimeout != 4*time.Second || st.NoticeTTL != 3*time.Second {
		t.Fatalf("timeouts = %s %s", st.APITimeout, st.NoticeTTL)
	}
	if st.Postgres.MaxConns != 8 {
		t.Fatalf("max conns = %d", st.Postgres.MaxConns)
	}
	if _, ok := st.ArchiveBucket(); ok {
		t.Fatalf("file archive reported a bucket")
	}
}

func TestArchiveBucket(t *testing.T) {
	cases := map[string]string{
		"s3://fines/charged": "fines",
		"s3://fines":         "fines",
		"s3://":              "",
		"file:///tmp":        "",
	}
	for in, want := range cases {
		got, ok := Settings{PDFArchive: in}.ArchiveBucket()
		if got != want || ok != (want != "") {
			t.Fatalf("%q: got %q %v", in, got, ok)
		}
	}
}
