package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"finedesk/internal/models"
	"finedesk/internal/services/batch"
	"finedesk/internal/services/screens"
)

// DriverFines mounts the "my fines" screen and loads it.
func (h *Handlers) DriverFines(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	st := h.Screens.MyFines(sess, true).Load(r.Context(), sess)
	if h.loadFailed(w, st) {
		return
	}
	h.JSON(w, http.StatusOK, listOf(st))
}

func (h *Handlers) DriverFinesExport(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	st := h.Screens.MyFines(sess, false).Load(r.Context(), sess)
	if h.loadFailed(w, st) {
		return
	}
	h.xlsx(w, "my-fines", st.Rows)
}

type paymentsResp struct {
	Unpaid   listResp `json:"unpaid"`
	Paid     listResp `json:"paid"`
	Selected []string `json:"selected"`
}

// Payments mounts the payment screen: both lists reload and the selection
// starts empty.
func (h *Handlers) Payments(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	scr := h.Screens.Payments(sess, true)
	unpaid, paid := scr.Load(r.Context(), sess)
	if h.loadFailed(w, unpaid, paid) {
		return
	}
	h.JSON(w, http.StatusOK, paymentsResp{
		Unpaid:   listOf(unpaid),
		Paid:     listOf(paid),
		Selected: scr.Selection().IDs(),
	})
}

func (h *Handlers) PaymentsToggle(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodPost) {
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	id, err := readID(r, "fine_id", "fineId", "id")
	if err != nil {
		h.fail(w, err, nil)
		return
	}
	set, err := h.Screens.Payments(sess, false).Toggle(id)
	if err != nil {
		h.fail(w, err, map[string]any{"selected": set.IDs()})
		return
	}
	h.JSON(w, http.StatusOK, map[string]any{"selected": set.IDs()})
}

type payResp struct {
	BatchID   string   `json:"batch_id,omitempty"`
	Processed []string `json:"processed"`
	Failed    string   `json:"failed,omitempty"`
	Skipped   []string `json:"skipped,omitempty"`
}

func (h *Handlers) PaymentsPay(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodPost) {
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	scr := h.Screens.Payments(sess, false)
	res, err := scr.Pay(r.Context(), sess)
	out := payResp{BatchID: res.BatchID, Processed: res.Processed, Failed: res.Failed, Skipped: res.Skipped}
	if out.Processed == nil {
		out.Processed = []string{}
	}
	if err != nil {
		h.fail(w, err, map[string]any{"result": out, "selected": scr.Selection().IDs()})
		return
	}
	h.JSON(w, http.StatusOK, map[string]any{
		"result":   out,
		"unpaid":   listOf(scr.Unpaid()),
		"paid":     listOf(scr.Paid()),
		"selected": scr.Selection().IDs(),
	})
}

type driverAppealResp struct {
	listResp
	Options []screens.AppealOption `json:"options"`
}

// DriverAppeal mounts the appeal form and loads the fines it can target.
func (h *Handlers) DriverAppeal(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	scr := h.Screens.DriverAppeal(sess, true)
	st := scr.Load(r.Context(), sess)
	if h.loadFailed(w, st) {
		return
	}
	h.JSON(w, http.StatusOK, driverAppealResp{listResp: listOf(st), Options: scr.Options()})
}

func (h *Handlers) DriverAppealSubmit(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodPost) {
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	form, err := readAppealForm(r)
	if err != nil {
		h.fail(w, err, nil)
		return
	}

	out, err := h.Screens.DriverAppeal(sess, false).Submit(r.Context(), sess, form)
	if err != nil {
		h.fail(w, err, map[string]any{"message": out.Message})
		return
	}
	h.JSON(w, http.StatusOK, out)
}

// readAppealForm accepts ids as strings or numbers.
func readAppealForm(r *http.Request) (screens.AppealForm, error) {
	dec := json.NewDecoder(io.LimitReader(r.Body, 64<<10))
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		return screens.AppealForm{}, &batch.ValidationError{Message: "bad json: " + err.Error()}
	}

	rec := models.AsRecord(body)
	return screens.AppealForm{
		FineID:      rec.Text("", models.P("fineId"), models.P("fine_id")),
		IssueType:   rec.Text("", models.P("issueType"), models.P("issue_type")),
		Description: rec.Text("", models.P("description")),
	}, nil
}
