package screens

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"finedesk/internal/adapters/api"
	"finedesk/internal/models"
	"finedesk/internal/ports"
	"finedesk/internal/services/batch"
	"finedesk/internal/services/fetcher"
	"finedesk/internal/utils"

	"github.com/google/uuid"
)

const (
	finesFoundMessage   = "Fines fetched successfully."
	finesMissingMessage = "No fines found for this Police ID."
	policeFoundMessage  = "Police ID found."
	policeMissing       = "No police found for this Fine ID."
	fineIDRequired      = "Enter a Fine ID first."
	policeFailed        = "Error fetching police ID"
	pdfNeedsPolice      = "Enter a Police ID first."
	pdfDoneMessage      = "PDF downloaded."
	pdfFailedMessage    = "Failed to download PDF"
)

var maxPDFBytes int64 = 32 << 20

// ErrPDFTooLarge is returned when the report exceeds maxPDFBytes.
var ErrPDFTooLarge = errors.New("pdf report too large")

// Outcome is the result of one admin lookup, always carrying the message
// the screen shows.
type Outcome struct {
	OK       bool             `json:"ok"`
	Message  string           `json:"message"`
	Rows     []models.ViewRow `json:"rows,omitempty"`
	PoliceID string           `json:"policeId,omitempty"`
}

// PDF is a downloaded report.
type PDF struct {
	Filename    string
	ContentType string
	Data        []byte
	Location    string
}

// ChargedFines is the admin screen: fines charged by a police officer, the
// reverse lookup from a fine to its officer, and the PDF report.
type ChargedFines struct {
	d    Deps
	list *fetcher.Collection
}

func NewChargedFines(d Deps) *ChargedFines {
	return &ChargedFines{
		d:    d,
		list: fetcher.NewCollection(d.Fetcher, chargedFinesResource("")),
	}
}

func (s *ChargedFines) State() fetcher.State { return s.list.State() }

// ByPolice replaces the list with the fines charged by policeID.
func (s *ChargedFines) ByPolice(ctx context.Context, sess models.Session, policeID string) (Outcome, error) {
	policeID = strings.TrimSpace(policeID)
	if policeID == "" {
		return Outcome{Message: pdfNeedsPolice}, &batch.ValidationError{Message: pdfNeedsPolice}
	}

	st := s.list.LoadFrom(ctx, sess, chargedFinesResource(policeID))
	switch {
	case st.Status == fetcher.StatusError:
		return Outcome{Message: st.Message}, &Error{Message: st.Message, Err: st.Err}
	case len(st.Rows) == 0:
		return Outcome{Message: finesMissingMessage, Rows: st.Rows}, nil
	}

	msg := st.ServerMessage
	if msg == "" {
		msg = finesFoundMessage
	}
	return Outcome{OK: true, Message: msg, Rows: st.Rows}, nil
}

// FindPolice resolves the officer who charged fineID.
func (s *ChargedFines) FindPolice(ctx context.Context, sess models.Session, fineID string) (Outcome, error) {
	fineID = strings.TrimSpace(fineID)
	if fineID == "" {
		return Outcome{Message: fineIDRequired}, &batch.ValidationError{Message: fineIDRequired}
	}

	body, err := s.d.API.JSON(ctx, sess, ports.Request{
		Method: http.MethodPost,
		Path:   PathPoliceByFine,
		Body:   map[string]any{"fine_id": fineID},
	})
	if err != nil {
		msg := api.Message(err, policeFailed)
		log.Printf("[ADMIN][ERR] find police fine=%s: %v", fineID, err)
		return Outcome{Message: msg}, &Error{Message: msg, Err: err}
	}

	rec := models.AsRecord(body)
	id, ok := rec.First(models.P("policeId"), models.P("police_id"), models.P("traffic_police_id"), models.P("data", "policeId"))
	if !ok {
		return Outcome{Message: policeMissing}, nil
	}
	return Outcome{OK: true, Message: rec.Text(policeFoundMessage, models.P("message")), PoliceID: id}, nil
}

// DownloadPDF fetches the charged fines report for policeID and archives a
// copy when an archive is configured. A failed archive does not fail the
// download.
func (s *ChargedFines) DownloadPDF(ctx context.Context, sess models.Session, policeID string) (PDF, Outcome, error) {
	policeID = strings.TrimSpace(policeID)
	if policeID == "" {
		return PDF{}, Outcome{Message: pdfNeedsPolice}, &batch.ValidationError{Message: pdfNeedsPolice}
	}

	auditID := uuid.NewString()
	rc, meta, err := s.d.API.Download(ctx, sess, ports.Request{
		Method: http.MethodGet,
		Path:   PathFinesPDF,
		Query:  url.Values{"police_id": {policeID}},
	})
	if err != nil {
		return s.pdfFailed(ctx, sess, auditID, policeID, err)
	}
	defer rc.Close()

	if meta.Size > maxPDFBytes {
		return s.pdfFailed(ctx, sess, auditID, policeID, fmt.Errorf("%w: declared %d bytes", ErrPDFTooLarge, meta.Size))
	}
	data, err := io.ReadAll(io.LimitReader(rc, maxPDFBytes+1))
	if err != nil {
		return s.pdfFailed(ctx, sess, auditID, policeID, err)
	}
	if int64(len(data)) > maxPDFBytes {
		return s.pdfFailed(ctx, sess, auditID, policeID, fmt.Errorf("%w: over %d bytes", ErrPDFTooLarge, maxPDFBytes))
	}

	pdf := PDF{
		Filename:    meta.Filename,
		ContentType: meta.ContentType,
		Data:        data,
	}
	if pdf.Filename == "" {
		pdf.Filename = utils.ChargedFinesPDFName(policeID)
	}
	if pdf.ContentType == "" {
		pdf.ContentType = "application/pdf"
	}

	if s.d.Sink != nil {
		meta.Size = int64(len(data))
		meta.Filename = pdf.Filename
		loc, err := s.d.Sink.Save(ctx, pdf.Filename, bytes.NewReader(data), meta)
		if err != nil {
			log.Printf("[ADMIN][WARN] archive pdf %s: %v", pdf.Filename, err)
		}
		pdf.Location = loc
	}

	log.Printf("[ADMIN][OK] pdf police=%s file=%s size=%d location=%q", policeID, pdf.Filename, len(data), pdf.Location)
	s.audit(ctx, sess, auditID, policeID, "done", "")
	return pdf, Outcome{OK: true, Message: pdfDoneMessage, PoliceID: policeID}, nil
}

func (s *ChargedFines) pdfFailed(ctx context.Context, sess models.Session, auditID, policeID string, err error) (PDF, Outcome, error) {
	msg := api.Message(err, pdfFailedMessage)
	log.Printf("[ADMIN][ERR] pdf police=%s: %v", policeID, err)
	s.audit(ctx, sess, auditID, policeID, "failed", err.Error())
	return PDF{}, Outcome{Message: msg}, &Error{Message: msg, Err: err}
}

func (s *ChargedFines) audit(ctx context.Context, sess models.Session, id, policeID, status, errs string) {
	s.d.audit().Log(ctx, ports.AuditEntry{
		BatchID:  id,
		Action:   "download_pdf",
		TargetID: policeID,
		UserID:   sess.UserID,
		Status:   status,
		Errors:   errs,
	})
}
