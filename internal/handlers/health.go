package handlers

import (
	"context"
	"net/http"
	"time"
)

type healthResp struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors,omitempty"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var errs []string
	if h.Check != nil {
		if err := h.Check(ctx); err != nil {
			if j, ok := err.(interface{ Unwrap() []error }); ok {
				for _, e := range j.Unwrap() {
					errs = append(errs, e.Error())
				}
			} else {
				errs = append(errs, err.Error())
			}
		}
	}

	if len(errs) > 0 {
		h.Logger.Printf("[HEALTH][ERR] %v", errs)
		h.JSON(w, http.StatusInternalServerError, healthResp{Errors: errs})
		return
	}
	h.JSON(w, http.StatusOK, healthResp{OK: true})
}
