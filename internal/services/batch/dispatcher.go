// Package batch runs one request per selected id.
package batch

import (
	"context"
	"fmt"
	"log"
	"time"

	"finedesk/internal/models"
	"finedesk/internal/ports"
	"finedesk/internal/services/selection"

	"github.com/google/uuid"
)

// ValidationError rejects a batch before any request is sent.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

type Action struct {
	Name  string
	Empty string
	Do    func(ctx context.Context, id string) error
}

type Result struct {
	BatchID   string
	Action    string
	Processed []string
	Failed    string
	Skipped   []string
}

type Dispatcher struct {
	Audit ports.AuditLogger
}

func NewDispatcher(audit ports.AuditLogger) *Dispatcher {
	if audit == nil {
		audit = ports.NopAudit{}
	}
	return &Dispatcher{Audit: audit}
}

// Run calls act.Do for each id of set in insertion order, one at a time, and
// stops at the first failure. Ids already processed stay processed.
func (d *Dispatcher) Run(ctx context.Context, sess models.Session, set selection.Set, act Action) (Result, error) {
	if set.Len() == 0 {
		return Result{}, &ValidationError{Message: act.Empty}
	}

	ids := set.IDs()
	res := Result{BatchID: uuid.NewString(), Action: act.Name}
	t0 := time.Now()
	log.Printf("[BATCH][START] id=%s action=%s size=%d", res.BatchID, act.Name, len(ids))

	for i, id := range ids {
		err := ctx.Err()
		if err == nil {
			err = act.Do(ctx, id)
		}
		if err != nil {
			res.Failed = id
			res.Skipped = append(res.Skipped, ids[i+1:]...)
			d.log(ctx, sess, res.BatchID, act.Name, id, "failed", err.Error())
			for _, s := range res.Skipped {
				d.log(ctx, sess, res.BatchID, act.Name, s, "skipped", "")
			}
			log.Printf("[BATCH][ERR] id=%s action=%s target=%s processed=%d skipped=%d err=%v",
				res.BatchID, act.Name, id, len(res.Processed), len(res.Skipped), err)
			return res, fmt.Errorf("%s %s: %w", act.Name, id, err)
		}
		res.Processed = append(res.Processed, id)
		d.log(ctx, sess, res.BatchID, act.Name, id, "done", "")
	}

	log.Printf("[BATCH][DONE] id=%s action=%s processed=%d took=%s", res.BatchID, act.Name, len(res.Processed), time.Since(t0))
	return res, nil
}

func (d *Dispatcher) log(ctx context.Context, sess models.Session, batchID, action, target, status, errs string) {
	d.Audit.Log(ctx, ports.AuditEntry{
		BatchID:  batchID,
		Action:   action,
		TargetID: target,
		UserID:   sess.UserID,
		Status:   status,
		Errors:   errs,
	})
}
