package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"finedesk/internal/adapters/api"
	"finedesk/internal/models"
	"finedesk/internal/services/batch"
	"finedesk/internal/services/fetcher"
	"finedesk/internal/services/mapper"
	"finedesk/internal/services/screens"
	"finedesk/internal/transport/auth"
)

// rowView is a row as the screens render it, raw timestamps plus their
// display text.
type rowView struct {
	models.ViewRow
	IssuedAtText  string `json:"issuedAtText"`
	PaidAtText    string `json:"paidAtText"`
	ExpiresAtText string `json:"expiresAtText"`
}

func views(rows []models.ViewRow) []rowView {
	out := make([]rowView, len(rows))
	for i, r := range rows {
		out[i] = rowView{
			ViewRow:       r,
			IssuedAtText:  mapper.FormatDatePtr(r.IssuedAt),
			PaidAtText:    mapper.FormatDatePtr(r.PaidAt),
			ExpiresAtText: mapper.FormatDatePtr(r.ExpiresAt),
		}
	}
	return out
}

type listResp struct {
	Status  fetcher.Status `json:"status"`
	Message string         `json:"message,omitempty"`
	Rows    []rowView      `json:"rows"`
}

func listOf(st fetcher.State) listResp {
	return listResp{Status: st.Status, Message: st.Message, Rows: views(st.Rows)}
}

func (h *Handlers) allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	h.JSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "use " + method})
	return false
}

func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (models.Session, bool) {
	sess, err := auth.GetSession(r.Context())
	if err != nil {
		auth.LoginRequired(w)
		return models.Session{}, false
	}
	return sess, true
}

// loadFailed answers for a load that lost its session; other load errors
// are part of the list state.
func (h *Handlers) loadFailed(w http.ResponseWriter, states ...fetcher.State) bool {
	for _, st := range states {
		if errors.Is(st.Err, api.ErrNoSession) {
			auth.LoginRequired(w)
			return true
		}
	}
	return false
}

func (h *Handlers) fail(w http.ResponseWriter, err error, extra map[string]any) {
	var (
		ve   *batch.ValidationError
		se   *screens.Error
		code int
		msg  string
	)
	switch {
	case errors.Is(err, api.ErrNoSession):
		auth.LoginRequired(w)
		return
	case errors.As(err, &ve):
		code, msg = http.StatusBadRequest, ve.Message
	case errors.Is(err, screens.ErrUnknownRow):
		code, msg = http.StatusNotFound, "unknown row"
	case errors.Is(err, screens.ErrAppealClosed) && errors.As(err, &se):
		code, msg = http.StatusConflict, se.Message
	case errors.As(err, &se):
		code, msg = http.StatusBadGateway, se.Message
	default:
		code, msg = http.StatusInternalServerError, "internal error"
	}

	h.Logger.Printf("[HTTP][ERR] code=%d: %v", code, err)
	body := map[string]any{"error": msg}
	for k, v := range extra {
		body[k] = v
	}
	h.JSON(w, code, body)
}

// readID reads the first present key of a JSON object body. Numbers and
// strings are both accepted.
func readID(r *http.Request, keys ...string) (string, error) {
	dec := json.NewDecoder(io.LimitReader(r.Body, 64<<10))
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		return "", &batch.ValidationError{Message: "bad json: " + err.Error()}
	}

	rec := models.AsRecord(body)
	for _, k := range keys {
		if s, ok := rec.String(k); ok {
			return strings.TrimSpace(s), nil
		}
	}
	return "", &batch.ValidationError{Message: keys[0] + " is required"}
}

func queryInt(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 0 {
		return def
	}
	return n
}

func (h *Handlers) xlsx(w http.ResponseWriter, name string, rows []models.ViewRow) {
	b, err := screens.Export(name, rows)
	if err != nil {
		h.Logger.Printf("[EXPORT][ERR] %s: %v", name, err)
		h.JSON(w, http.StatusInternalServerError, map[string]any{"error": "export failed"})
		return
	}
	w.Header().Set("Content-Type", screens.XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
