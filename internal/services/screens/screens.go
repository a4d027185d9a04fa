// Package screens holds the per-screen state of the driver, officer and
// admin views: which lists are loaded, what is selected and what message is
// showing. One value per mounted screen; a new mount gets a new value.
package screens

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"finedesk/internal/ports"
	"finedesk/internal/services/batch"
	"finedesk/internal/services/fetcher"
	"finedesk/internal/services/mapper"
)

const (
	PathMyFines         = "/get-my-fines"
	PathUnpaidFines     = "/get-all-unpaid-fines"
	PathProcessPayment  = "/process-payment"
	PathAppeals         = "h-police/get-all-appeals"
	PathAcceptAppeal    = "h-police/accept-appeal"
	PathDeclineAppeal   = "h-police/decline-appeal"
	PathChargedByPolice = "get-charged-fines/traffic-police/by-police-id"
	PathPoliceByFine    = "get-traffic-police-id/by-charged-fine-id"
	PathFinesPDF        = "s-admin/generate-pdf"
)

const fineDetailsFallback = "Failed to load Fine Details. Please try again."

var (
	ErrAppealClosed = errors.New("appeal already decided")
	ErrUnknownRow   = errors.New("row is not on this screen")
)

// Error is a failed upstream action, carrying the message the screen shows.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

type Deps struct {
	API       ports.API
	Fetcher   *fetcher.Service
	Batch     *batch.Dispatcher
	Audit     ports.AuditLogger
	Sink      ports.Sink
	NoticeTTL time.Duration
}

func (d Deps) audit() ports.AuditLogger {
	if d.Audit == nil {
		return ports.NopAudit{}
	}
	return d.Audit
}

func myFinesResource() fetcher.Resource {
	return fetcher.Resource{
		Name:     "my_fines",
		Path:     PathMyFines,
		Envelope: []string{"fines"},
		Mapper:   mapper.Fines{},
		Fallback: fineDetailsFallback,
	}
}

func unpaidFinesResource() fetcher.Resource {
	return fetcher.Resource{
		Name:     "unpaid_fines",
		Path:     PathUnpaidFines,
		Envelope: []string{"fines"},
		Mapper:   mapper.Fines{},
		Fallback: fineDetailsFallback,
	}
}

func appealsResource() fetcher.Resource {
	return fetcher.Resource{
		Name:     "appeals",
		Path:     PathAppeals,
		Envelope: []string{"appeals"},
		Mapper:   mapper.Appeals{},
		Fallback: fetcher.DefaultFallback,
	}
}

func chargedFinesResource(policeID string) fetcher.Resource {
	return fetcher.Resource{
		Name:     "charged_fines",
		Method:   "POST",
		Path:     PathChargedByPolice,
		Body:     map[string]any{"traffic_police_id": policeID},
		Envelope: []string{"chargedFines"},
		Mapper:   mapper.ChargedFines{},
		Fallback: "Error fetching fines",
	}
}

// idValue sends numeric ids as JSON numbers, everything else as strings.
func idValue(id string) any {
	id = strings.TrimSpace(id)
	if _, err := strconv.ParseInt(id, 10, 64); err == nil {
		return json.Number(id)
	}
	return id
}
