package screens

import (
	"context"
	"log"
	"strings"

	"finedesk/internal/models"
	"finedesk/internal/ports"
	"finedesk/internal/services/batch"
	"finedesk/internal/services/fetcher"

	"github.com/google/uuid"
)

const (
	appealNeedsFine   = "Please select a fine to appeal."
	appealSubmitted   = "Appeal submitted!"
	appealSubmitState = "submitted"
)

// AppealOption is one entry of the fine picker.
type AppealOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AppealForm struct {
	FineID      string `json:"fineId"`
	IssueType   string `json:"issueType"`
	Description string `json:"description"`
}

// DriverAppeal is the driver's appeal form over the unpaid fines. The fines
// API has no appeal intake, so a valid submission is only recorded in the
// audit log.
type DriverAppeal struct {
	d    Deps
	list *fetcher.Collection
}

func NewDriverAppeal(d Deps) *DriverAppeal {
	return &DriverAppeal{
		d:    d,
		list: fetcher.NewCollection(d.Fetcher, unpaidFinesResource()),
	}
}

func (s *DriverAppeal) Load(ctx context.Context, sess models.Session) fetcher.State {
	s.list.Load(ctx, sess)
	return s.State()
}

func (s *DriverAppeal) State() fetcher.State {
	st := s.list.State()
	st.Rows = byStatus(st.Rows, models.StatusUnpaid)
	return st
}

// Options lists the appealable fines in server order.
func (s *DriverAppeal) Options() []AppealOption {
	rows := s.State().Rows
	out := make([]AppealOption, len(rows))
	for i, r := range rows {
		out[i] = AppealOption{ID: r.ID, Name: r.FineName}
	}
	return out
}

// Submit validates the form against the loaded options and records it.
func (s *DriverAppeal) Submit(ctx context.Context, sess models.Session, f AppealForm) (Outcome, error) {
	f.FineID = strings.TrimSpace(f.FineID)
	f.IssueType = strings.TrimSpace(f.IssueType)
	switch {
	case f.FineID == "":
		return Outcome{Message: fineIDRequired}, &batch.ValidationError{Message: fineIDRequired}
	case f.IssueType == "":
		return Outcome{Message: appealNeedsFine}, &batch.ValidationError{Message: appealNeedsFine}
	}
	if _, ok := findRow(s.State().Rows, f.IssueType); !ok {
		return Outcome{Message: appealNeedsFine}, ErrUnknownRow
	}

	log.Printf("[APPEAL][OK] submitted fine=%s issue=%s user=%d description_len=%d", f.FineID, f.IssueType, sess.UserID, len(f.Description))
	s.d.audit().Log(ctx, ports.AuditEntry{
		BatchID:  uuid.NewString(),
		Action:   "submit_appeal",
		TargetID: f.FineID,
		UserID:   sess.UserID,
		Status:   appealSubmitState,
	})
	return Outcome{OK: true, Message: appealSubmitted}, nil
}
