package handlers

import (
	"errors"
	nethttp "net/http"

	"github.com/preston-bernstein/dashboard-service/internal/logging"
	"github.com/preston-bernstein/dashboard-service/internal/prefs"
)

type themeRequest struct {
	Theme string `json:"theme"`
}

func (h *Handler) Preferences(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.prefs == nil {
		writeError(w, r, nethttp.StatusNotFound, "preferences not configured", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.prefs.State(), h.logger)
}

// SetTheme stores light or dark; "toggle" flips the current theme.
func (h *Handler) SetTheme(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.prefs == nil {
		writeError(w, r, nethttp.StatusNotFound, "preferences not configured", h.logger)
		return
	}
	var req themeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}

	var theme prefs.Theme
	if req.Theme == "toggle" {
		theme = h.prefs.State().Theme.Toggle()
	} else {
		parsed, err := prefs.ParseTheme(req.Theme)
		if err != nil {
			writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
			return
		}
		theme = parsed
	}

	if err := h.prefs.SetTheme(theme); err != nil {
		status := nethttp.StatusInternalServerError
		if errors.Is(err, prefs.ErrInvalidTheme) {
			status = nethttp.StatusBadRequest
		}
		logging.Error(loggerFromContext(r, h.logger), "set theme failed", err)
		writeError(w, r, status, err.Error(), h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.prefs.State(), h.logger)
}
