package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"finedesk/internal/models"
	"finedesk/internal/repository/audit"
	"finedesk/internal/transport/auth"
)

// ChargedFines lists the fines charged by one police officer.
func (h *Handlers) ChargedFines(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodPost) {
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	id, err := readID(r, "traffic_police_id", "police_id", "policeId")
	if err != nil {
		h.fail(w, err, nil)
		return
	}

	out, err := h.Screens.ChargedFines(sess).ByPolice(r.Context(), sess, id)
	if err != nil {
		h.fail(w, err, map[string]any{"message": out.Message})
		return
	}
	h.JSON(w, http.StatusOK, map[string]any{
		"ok":      out.OK,
		"message": out.Message,
		"rows":    views(out.Rows),
	})
}

// Police resolves the officer who charged a fine.
func (h *Handlers) Police(w http.ResponseWriter, r *http.Request) {
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

	out, err := h.Screens.ChargedFines(sess).FindPolice(r.Context(), sess, id)
	if err != nil {
		h.fail(w, err, map[string]any{"message": out.Message})
		return
	}
	h.JSON(w, http.StatusOK, out)
}

func (h *Handlers) ChargedFinesPDF(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	pdf, out, err := h.Screens.ChargedFines(sess).DownloadPDF(r.Context(), sess, r.URL.Query().Get("police_id"))
	if err != nil {
		h.fail(w, err, map[string]any{"message": out.Message})
		return
	}

	w.Header().Set("Content-Type", pdf.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, pdf.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf.Data)))
	w.Header().Set("X-Message", out.Message)
	if pdf.Location != "" {
		w.Header().Set("X-Archive-Location", pdf.Location)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf.Data)
}

// ChargedFinesExport exports the officer's fines as a workbook. Without
// police_id it exports what the screen last loaded.
func (h *Handlers) ChargedFinesExport(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	scr := h.Screens.ChargedFines(sess)
	rows := scr.State().Rows
	if id := r.URL.Query().Get("police_id"); id != "" {
		out, err := scr.ByPolice(r.Context(), sess, id)
		if err != nil {
			h.fail(w, err, map[string]any{"message": out.Message})
			return
		}
		rows = out.Rows
	}
	h.xlsx(w, "charged-fines", rows)
}

// AuditLog lists recent audit items. Non-admins only see their own.
func (h *Handlers) AuditLog(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	sess, err := auth.GetSession(r.Context())
	if err != nil {
		auth.LoginRequired(w)
		return
	}
	if h.Audit == nil {
		h.JSON(w, http.StatusServiceUnavailable, map[string]any{"error": "audit log not configured"})
		return
	}

	f := audit.Filter{
		Action: r.URL.Query().Get("action"),
		Limit:  queryInt(r, "limit", audit.DefaultListLimit),
	}
	if sess.Role != models.RoleAdmin {
		f.UserID = sess.UserID
	}

	items, err := h.Audit.List(r.Context(), f)
	if err != nil {
		h.Logger.Printf("[AUDIT][ERR] list: %v", err)
		h.JSON(w, http.StatusInternalServerError, map[string]any{"error": "audit log unavailable"})
		return
	}
	h.JSON(w, http.StatusOK, map[string]any{"items": items})
}
