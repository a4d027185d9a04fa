package ports

import (
	"context"
	"io"
	"net/url"

	"finedesk/internal/models"
)

// Request describes one call against the fines API. Path is relative to the
// configured base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Meta describes a binary payload (downloads and archived copies).
type Meta struct {
	Source      string
	ContentType string
	Size        int64
	Filename    string
	Bucket      string
	Key         string
}

type API interface {
	// JSON performs the call and returns the decoded body with numbers kept
	// as json.Number. An oversized or non-JSON 2xx body is an error.
	JSON(ctx context.Context, sess models.Session, req Request) (any, error)
	Download(ctx context.Context, sess models.Session, req Request) (io.ReadCloser, Meta, error)
}

type Sink interface {
	Save(ctx context.Context, name string, r io.Reader, meta Meta) (string, error)
}

type AuditEntry struct {
	BatchID  string
	Action   string
	TargetID string
	UserID   int64
	Status   string
	Errors   string
}

type AuditLogger interface {
	Log(ctx context.Context, e AuditEntry)
}

// NopAudit discards entries.
type NopAudit struct{}

func (NopAudit) Log(context.Context, AuditEntry) {}
