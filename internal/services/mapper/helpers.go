package mapper

import (
	"strings"
	"time"

	"finedesk/internal/models"
)

var p = models.P

const na = models.NotAvailable

var (
	issuedKeys  = [][]string{p("issued_at"), p("charged_at"), p("issuedAt"), p("issued_time")}
	paidKeys    = [][]string{p("paid_at"), p("paidAt")}
	expiresKeys = [][]string{p("expires_at"), p("expiresAt"), p("deadline")}
)

func optional(raw models.RawRecord, paths ...[]string) *string {
	if s, ok := raw.First(paths...); ok {
		return &s
	}
	return nil
}

func paymentStatus(paidAt *string) models.Status {
	if paidAt != nil {
		return models.StatusPaid
	}
	return models.StatusUnpaid
}

func parseTimeLoose(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"02.01.2006 15:04:05",
		"02.01.2006",
		"2006-01-02",
		"2006/01/02",
	}
	for _, l := range layouts {
		if t, err := time.ParseInLocation(l, s, time.Local); err == nil {
			return &t
		}
	}
	for _, l := range []string{time.RFC1123Z, time.RFC1123} {
		if t, err := time.Parse(l, s); err == nil {
			return &t
		}
	}
	return nil
}
