package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"finedesk/internal/repository/audit"
	"finedesk/internal/services/screens"
)

// AuditReader lists the recent action trail.
type AuditReader interface {
	List(ctx context.Context, f audit.Filter) ([]audit.Item, error)
}

type Handlers struct {
	Screens *Registry
	Audit   AuditReader

	// Check reports the state of backing connections for /health.
	Check func(ctx context.Context) error

	Logger *log.Logger
}

func New(deps screens.Deps, auditLog AuditReader, check func(context.Context) error) *Handlers {
	return &Handlers{
		Screens: NewRegistry(deps),
		Audit:   auditLog,
		Check:   check,
		Logger:  log.Default(),
	}
}

func (h *Handlers) JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
