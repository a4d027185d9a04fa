package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"finedesk/internal/handlers"
	"finedesk/internal/models"
	"finedesk/internal/transport/auth"
)

type Server struct {
	httpServer *http.Server
}

// Routes registers every endpoint. Everything but /health runs behind
// sessionMW and a role check.
func Routes(h *handlers.Handlers, sessionMW func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()
	if h == nil {
		return mux
	}

	mux.HandleFunc("/health", h.Health)

	role := func(fn http.HandlerFunc, roles ...models.Role) http.Handler {
		return sessionMW(auth.RequireRole(fn, roles...))
	}
	driver := []models.Role{models.RoleDriver}
	officer := []models.Role{models.RoleOfficer}
	admin := []models.Role{models.RoleAdmin}

	mux.Handle("/driver/fines", role(h.DriverFines, driver...))
	mux.Handle("/driver/fines/export", role(h.DriverFinesExport, driver...))
	mux.Handle("/driver/payments", role(h.Payments, driver...))
	mux.Handle("/driver/payments/toggle", role(h.PaymentsToggle, driver...))
	mux.Handle("/driver/payments/pay", role(h.PaymentsPay, driver...))
	mux.Handle("/driver/appeal", role(h.DriverAppeal, driver...))
	mux.Handle("/driver/appeal/submit", role(h.DriverAppealSubmit, driver...))

	mux.Handle("/officer/appeals", role(h.Appeals, officer...))
	mux.Handle("/officer/appeals/search", role(h.AppealsSearch, officer...))
	mux.Handle("/officer/appeals/detail", role(h.AppealDetail, officer...))
	mux.Handle("/officer/appeals/accept", role(h.AppealAccept, officer...))
	mux.Handle("/officer/appeals/decline", role(h.AppealDecline, officer...))
	mux.Handle("/officer/appeals/export", role(h.AppealsExport, officer...))

	mux.Handle("/admin/charged-fines", role(h.ChargedFines, admin...))
	mux.Handle("/admin/charged-fines/pdf", role(h.ChargedFinesPDF, admin...))
	mux.Handle("/admin/charged-fines/export", role(h.ChargedFinesExport, admin...))
	mux.Handle("/admin/police", role(h.Police, admin...))

	mux.Handle("/audit", role(h.AuditLog, models.RoleDriver, models.RoleOfficer, models.RoleAdmin))

	return mux
}

func NewServer(port string, h *handlers.Handlers, sessionMW func(http.Handler) http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      Routes(h, sessionMW),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shCtx)
	case err := <-errCh:
		return err
	}
}
