package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"framescan/internal/models"
	"framescan/internal/scan"
)

// Limit frame payloads to 10MB
const maxScanBody = 10 * 1024 * 1024

// HandleScan accepts one base64-encoded camera frame and returns the first
// barcode decoded from it. A frame that is not a decodable image is a 400; a
// decodable frame with no barcode in it is a normal {"found":false} response.
func (h *Handler) HandleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxScanBody+1))
	if err != nil {
		h.writeError(w, "Failed to read request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(body) > maxScanBody {
		h.writeError(w, "Frame too large (max 10MB)", http.StatusBadRequest)
		return
	}

	var request models.ScanRequest
	if err := json.Unmarshal(body, &request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.Image == "" {
		h.writeError(w, "No image data provided", http.StatusBadRequest)
		return
	}

	result, err := h.scanService.ScanBase64(request.Image)
	if err != nil {
		if errors.Is(err, scan.ErrInvalidImage) {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.writeError(w, "Scan failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// HandleHealth reports process liveness. The response is constant and does
// not probe the decode library.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
}
