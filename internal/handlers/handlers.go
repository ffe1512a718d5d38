package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"framescan/internal/decode"
	"framescan/internal/models"
	"framescan/internal/scan"
)

type Handler struct {
	scanService *scan.Service
}

func New() *Handler {
	return &Handler{
		scanService: scan.NewService(decode.NewDetector()),
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	h.writeJSON(w, code, models.ErrorResponse{Error: message})
}
