package screens

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"

	"finedesk/internal/models"
	"finedesk/internal/ports"
	"finedesk/internal/services/batch"
	"finedesk/internal/services/fetcher"
	"finedesk/internal/services/selection"
)

const (
	paySelectMessage = "Please select fines to pay."
	payFailedMessage = "Failed to process payment"
)

// Payments is the driver's payment screen: the unpaid list with a selection
// for paying, and the paid history.
type Payments struct {
	d Deps

	unpaid  *fetcher.Collection
	history *fetcher.Collection

	mu  sync.Mutex
	sel selection.Set
}

func NewPayments(d Deps) *Payments {
	return &Payments{
		d:       d,
		unpaid:  fetcher.NewCollection(d.Fetcher, unpaidFinesResource()),
		history: fetcher.NewCollection(d.Fetcher, myFinesResource()),
	}
}

func (s *Payments) Load(ctx context.Context, sess models.Session) (unpaid, paid fetcher.State) {
	s.unpaid.Load(ctx, sess)
	s.history.Load(ctx, sess)
	return s.Unpaid(), s.Paid()
}

func (s *Payments) Unpaid() fetcher.State {
	st := s.unpaid.State()
	st.Rows = byStatus(st.Rows, models.StatusUnpaid)
	return st
}

func (s *Payments) Paid() fetcher.State {
	st := s.history.State()
	st.Rows = byStatus(st.Rows, models.StatusPaid)
	return st
}

// Toggle flips id in the selection. Only rows of the unpaid list qualify.
func (s *Payments) Toggle(id string) (selection.Set, error) {
	if _, ok := findRow(s.Unpaid().Rows, id); !ok {
		return s.Selection(), ErrUnknownRow
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = s.sel.Toggle(id)
	return s.sel, nil
}

func (s *Payments) Selection() selection.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// Pay sends one payment request per selected fine, in selection order. The
// paid ids are dropped from the selection only when every request succeeded;
// either way both lists are reloaded since some fines may have been paid.
func (s *Payments) Pay(ctx context.Context, sess models.Session) (batch.Result, error) {
	set := s.Selection()

	res, err := s.d.Batch.Run(ctx, sess, set, batch.Action{
		Name:  "pay",
		Empty: paySelectMessage,
		Do: func(ctx context.Context, id string) error {
			_, err := s.d.API.JSON(ctx, sess, ports.Request{
				Method: http.MethodPost,
				Path:   PathProcessPayment,
				Body:   map[string]any{"fineIds": []any{idValue(id)}},
			})
			return err
		},
	})

	var ve *batch.ValidationError
	if errors.As(err, &ve) {
		return res, err
	}

	// Only the ids that were paid leave the selection; a fine toggled
	// while the batch ran stays selected.
	if err == nil {
		s.mu.Lock()
		for _, id := range res.Processed {
			if s.sel.Contains(id) {
				s.sel = s.sel.Toggle(id)
			}
		}
		s.mu.Unlock()
	}

	s.Load(ctx, sess)

	if err != nil {
		log.Printf("[PAY][ERR] batch=%s processed=%v failed=%s: %v", res.BatchID, res.Processed, res.Failed, err)
		return res, &Error{Message: payFailedMessage, Err: err}
	}
	log.Printf("[PAY][OK] batch=%s processed=%v", res.BatchID, res.Processed)
	return res, nil
}

func byStatus(rows []models.ViewRow, st models.Status) []models.ViewRow {
	out := make([]models.ViewRow, 0, len(rows))
	for _, r := range rows {
		if r.Status == st {
			out = append(out, r)
		}
	}
	return out
}

func findRow(rows []models.ViewRow, id string) (models.ViewRow, bool) {
	for _, r := range rows {
		if r.ID == id {
			return r, true
		}
	}
	return models.ViewRow{}, false
}
