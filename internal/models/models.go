package models

// ScanRequest is the body of a POST /scan request. Image holds the frame as
// base64, optionally wrapped in a data-URI prefix as produced by
// canvas.toDataURL.
type ScanRequest struct {
	Image string `json:"image"`
}

// ScanResult is the outcome of scanning one frame. Data and Type are only
// present when Found is true.
type ScanResult struct {
	Found bool   `json:"found"`
	Data  string `json:"data,omitempty"`
	Type  string `json:"type,omitempty"`
}

// ErrorResponse is returned with a 4xx status when the submitted frame cannot
// be decoded as an image at all. It is deliberately distinct from
// ScanResult{Found: false}, which means a valid image with no barcode in it.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the constant GET /health body.
type HealthResponse struct {
	Status string `json:"status"`
}
