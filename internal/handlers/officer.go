package handlers

import (
	"context"
	"net/http"

	"finedesk/internal/models"
	"finedesk/internal/services/fetcher"
	"finedesk/internal/services/notice"
	"finedesk/internal/services/screens"
)

type appealsResp struct {
	listResp
	Notice *notice.Message `json:"notice,omitempty"`
}

func (h *Handlers) appealsView(scr *screens.Appeals, r *http.Request) appealsResp {
	st := scr.State()
	q := r.URL.Query().Get("q")
	st.Rows = scr.Visible(q, queryInt(r, "limit", screens.DefaultAppealsLimit))

	out := appealsResp{listResp: listOf(st)}
	if n := scr.Notice(); !n.Empty() {
		out.Notice = &n
	}
	return out
}

// Appeals mounts the appeal review screen and loads every appeal; q and
// limit narrow what is shown.
func (h *Handlers) Appeals(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	scr := h.Screens.Appeals(sess, true)
	if h.loadFailed(w, scr.Load(r.Context(), sess)) {
		return
	}
	h.JSON(w, http.StatusOK, h.appealsView(scr, r))
}

// AppealsSearch filters the loaded appeals without refetching.
func (h *Handlers) AppealsSearch(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	h.JSON(w, http.StatusOK, h.appealsView(h.Screens.Appeals(sess, false), r))
}

// AppealDetail returns every field of one appeal for the detail view.
func (h *Handlers) AppealDetail(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	scr := h.Screens.Appeals(sess, false)
	if scr.State().Status == fetcher.StatusIdle {
		if h.loadFailed(w, scr.Load(r.Context(), sess)) {
			return
		}
	}
	row, err := scr.Detail(r.URL.Query().Get("id"))
	if err != nil {
		h.fail(w, err, nil)
		return
	}
	h.JSON(w, http.StatusOK, map[string]any{"appeal": views([]models.ViewRow{row})[0]})
}

func (h *Handlers) AppealAccept(w http.ResponseWriter, r *http.Request) {
	h.decideAppeal(w, r, (*screens.Appeals).Accept)
}

func (h *Handlers) AppealDecline(w http.ResponseWriter, r *http.Request) {
	h.decideAppeal(w, r, (*screens.Appeals).Decline)
}

type appealAction func(*screens.Appeals, context.Context, models.Session, string) error

func (h *Handlers) decideAppeal(w http.ResponseWriter, r *http.Request, act appealAction) {
	if !h.allow(w, r, http.MethodPost) {
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	id, err := readID(r, "appeal_id", "appealId", "id")
	if err != nil {
		h.fail(w, err, nil)
		return
	}

	scr := h.Screens.Appeals(sess, false)
	if err := act(scr, r.Context(), sess, id); err != nil {
		h.fail(w, err, map[string]any{"notice": scr.Notice()})
		return
	}
	h.JSON(w, http.StatusOK, h.appealsView(scr, r))
}

func (h *Handlers) AppealsExport(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	scr := h.Screens.Appeals(sess, false)
	if scr.State().Status == fetcher.StatusIdle {
		if h.loadFailed(w, scr.Load(r.Context(), sess)) {
			return
		}
	}
	h.xlsx(w, "appeals", scr.Visible(r.URL.Query().Get("q"), 0))
}
