package screens

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"finedesk/internal/models"
	"finedesk/internal/ports"
	"finedesk/internal/services/batch"
	"finedesk/internal/services/fetcher"
)

type reply struct {
	body any
	err  error
}

// fakeAPI answers by path; calls records every request in order.
type fakeAPI struct {
	mu     sync.Mutex
	routes map[string]func(ports.Request) reply
	calls  []ports.Request

	pdf     []byte
	pdfMeta ports.Meta
	pdfErr  error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{routes: map[string]func(ports.Request) reply{}}
}

func (f *fakeAPI) on(path string, fn func(ports.Request) reply) { f.routes[path] = fn }

func (f *fakeAPI) JSON(ctx context.Context, sess models.Session, req ports.Request) (any, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	fn := f.routes[req.Path]
	f.mu.Unlock()

	if fn == nil {
		return nil, errors.New("no route " + req.Path)
	}
	r := fn(req)
	return r.body, r.err
}

func (f *fakeAPI) Download(ctx context.Context, sess models.Session, req ports.Request) (io.ReadCloser, ports.Meta, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if f.pdfErr != nil {
		return nil, ports.Meta{}, f.pdfErr
	}
	return io.NopCloser(bytes.NewReader(f.pdf)), f.pdfMeta, nil
}

func (f *fakeAPI) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Method + " " + c.Path
	}
	return out
}

func (f *fakeAPI) callsTo(path string) []ports.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ports.Request
	for _, c := range f.calls {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

type memAudit struct {
	mu      sync.Mutex
	entries []ports.AuditEntry
}

func (m *memAudit) Log(_ context.Context, e ports.AuditEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
}

type memSink struct {
	name string
	data []byte
	meta ports.Meta
	err  error
}

func (m *memSink) Save(_ context.Context, name string, r io.Reader, meta ports.Meta) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.name, m.data, m.meta = name, b, meta
	return "mem://" + name, nil
}

var sess = models.Session{ID: 1, UserID: 42, Role: models.RoleDriver, Token: "t"}

func deps(a *fakeAPI, audit *memAudit) Deps {
	return Deps{
		API:       a,
		Fetcher:   fetcher.NewService(a),
		Batch:     batch.NewDispatcher(audit),
		Audit:     audit,
		NoticeTTL: time.Minute,
	}
}

func ok(s string) func(ports.Request) reply {
	return func(ports.Request) reply { return reply{body: decodeJSON(s)} }
}

func decodeJSON(s string) any {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		panic("bad fixture: " + err.Error())
	}
	return v
}

func ids(rows []models.ViewRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func mustEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
