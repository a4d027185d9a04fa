package screens

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"finedesk/internal/models"
	"finedesk/internal/ports"
	"finedesk/internal/services/fetcher"
	"finedesk/internal/services/notice"
	"finedesk/internal/services/search"

	"github.com/google/uuid"
)

// DefaultAppealsLimit is how many filtered appeals the table shows.
const DefaultAppealsLimit = 10

type decision struct {
	action  string
	path    string
	ok      string
	variant notice.Variant
	failed  string
}

var (
	acceptAppeal = decision{
		action:  "accept_appeal",
		path:    PathAcceptAppeal,
		ok:      "Appeal approved.",
		variant: notice.Success,
		failed:  "Error approving appeal.",
	}
	declineAppeal = decision{
		action:  "decline_appeal",
		path:    PathDeclineAppeal,
		ok:      "Appeal declined.",
		variant: notice.Warning,
		failed:  "Error declining appeal.",
	}
)

// Appeals is the officer's appeal review screen.
type Appeals struct {
	d      Deps
	list   *fetcher.Collection
	notice *notice.Notice
}

func NewAppeals(d Deps) *Appeals {
	return &Appeals{
		d:      d,
		list:   fetcher.NewCollection(d.Fetcher, appealsResource()),
		notice: notice.New(d.NoticeTTL),
	}
}

// Load fetches all appeals. A failure also shows as the notice.
func (s *Appeals) Load(ctx context.Context, sess models.Session) fetcher.State {
	st := s.list.Load(ctx, sess)
	if st.Status == fetcher.StatusError {
		s.notice.Show(st.Message, notice.Danger)
	}
	return st
}

func (s *Appeals) State() fetcher.State { return s.list.State() }

// Visible returns the rows matching term on driver, officer or appeal id,
// capped at limit.
func (s *Appeals) Visible(term string, limit int) []models.ViewRow {
	rows := search.Filter(s.list.Rows(), term, search.ByDriver, search.ByOfficer, search.ByID)
	return search.Page(rows, limit)
}

// Detail returns the full row of one loaded appeal.
func (s *Appeals) Detail(id string) (models.ViewRow, error) {
	row, ok := findRow(s.list.Rows(), strings.TrimSpace(id))
	if !ok {
		return models.ViewRow{}, ErrUnknownRow
	}
	return row, nil
}

func (s *Appeals) Accept(ctx context.Context, sess models.Session, id string) error {
	return s.decide(ctx, sess, id, acceptAppeal)
}

func (s *Appeals) Decline(ctx context.Context, sess models.Session, id string) error {
	return s.decide(ctx, sess, id, declineAppeal)
}

func (s *Appeals) Notice() notice.Message { return s.notice.Current() }

// Close stops the notice timer; call it when the screen is replaced.
func (s *Appeals) Close() { s.notice.Close() }

func (s *Appeals) decide(ctx context.Context, sess models.Session, id string, d decision) error {
	if row, ok := findRow(s.list.Rows(), id); ok && row.Status.Terminal() {
		msg := fmt.Sprintf("Appeal already %s.", row.Status)
		s.notice.Show(msg, notice.Danger)
		return &Error{Message: msg, Err: ErrAppealClosed}
	}

	auditID := uuid.NewString()
	_, err := s.d.API.JSON(ctx, sess, ports.Request{
		Method: http.MethodPost,
		Path:   d.path,
		Body:   map[string]any{"appeal_id": idValue(id)},
	})
	if err != nil {
		log.Printf("[APPEAL][ERR] action=%s appeal=%s: %v", d.action, id, err)
		s.audit(ctx, sess, auditID, d.action, id, "failed", err.Error())
		s.notice.Show(d.failed, notice.Danger)
		return &Error{Message: d.failed, Err: err}
	}

	log.Printf("[APPEAL][OK] action=%s appeal=%s", d.action, id)
	s.audit(ctx, sess, auditID, d.action, id, "done", "")
	s.notice.Show(d.ok, d.variant)
	s.Load(ctx, sess)
	return nil
}

func (s *Appeals) audit(ctx context.Context, sess models.Session, batchID, action, id, status, errs string) {
	s.d.audit().Log(ctx, ports.AuditEntry{
		BatchID:  batchID,
		Action:   action,
		TargetID: id,
		UserID:   sess.UserID,
		Status:   status,
		Errors:   errs,
	})
}
