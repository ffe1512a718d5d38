package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"

	"framescan/internal/models"
)

// ean13PNG returns a base64-encoded PNG containing the EAN-13 barcode
// 4006381333931.
func ean13PNG(t *testing.T) string {
	t.Helper()
	matrix, err := oned.NewEAN13Writer().Encode("4006381333931", gozxing.BarcodeFormat_EAN_13, 200, 100, nil)
	if err != nil {
		t.Fatalf("failed to generate barcode fixture: %v", err)
	}

	img := image.NewGray(image.Rect(0, 0, matrix.GetWidth(), matrix.GetHeight()))
	for y := 0; y < matrix.GetHeight(); y++ {
		for x := 0; x < matrix.GetWidth(); x++ {
			if matrix.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode fixture PNG: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// blankPNG returns a base64-encoded solid-white PNG.
func blankPNG(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode fixture PNG: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func postScan(t *testing.T, h *Handler, image string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(models.ScanRequest{Image: image})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/scan", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.HandleScan(rr, req)
	return rr
}

func TestHandleScanDecodesBarcode(t *testing.T) {
	rr := postScan(t, New(), ean13PNG(t))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body.String())
	}

	var result models.ScanResult
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.Found {
		t.Fatal("expected found=true")
	}
	if result.Data != "4006381333931" {
		t.Errorf("data = %q, want %q", result.Data, "4006381333931")
	}
	if result.Type != "EAN13" {
		t.Errorf("type = %q, want %q", result.Type, "EAN13")
	}
}

func TestHandleScanAcceptsDataURIPrefix(t *testing.T) {
	rr := postScan(t, New(), "data:image/png;base64,"+ean13PNG(t))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"found":true`) {
		t.Errorf("expected a found result, got %s", rr.Body.String())
	}
}

func TestHandleScanBlankImage(t *testing.T) {
	rr := postScan(t, New(), blankPNG(t))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body.String())
	}

	var result models.ScanResult
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Found {
		t.Errorf("expected found=false for a blank image, got %+v", result)
	}
}

func TestHandleScanRejectsUndecodableInput(t *testing.T) {
	tests := []struct {
		name  string
		image string
	}{
		{"empty image field", ""},
		{"garbage base64", "!!!not-base64!!!"},
		{"non-image payload", base64.StdEncoding.EncodeToString([]byte("plain text, not pixels"))},
	}

	h := New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postScan(t, h, tt.image)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body: %s", rr.Code, rr.Body.String())
			}

			var errResp models.ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &errResp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if errResp.Error == "" {
				t.Error("error response must carry a message")
			}
			// An undecodable frame must never masquerade as "no barcode found"
			if strings.Contains(rr.Body.String(), `"found"`) {
				t.Errorf("undecodable input leaked a scan result: %s", rr.Body.String())
			}
		})
	}
}

func TestHandleScanInvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	New().HandleScan(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestHandleScanMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/scan", nil)
	rr := httptest.NewRecorder()
	New().HandleScan(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rr.Code)
	}
}

func TestHandleScanIdempotent(t *testing.T) {
	h := New()
	frame := ean13PNG(t)

	first := postScan(t, h, frame)
	second := postScan(t, h, frame)

	if first.Code != second.Code || first.Body.String() != second.Body.String() {
		t.Errorf("identical frames must yield identical responses:\n%s\n%s",
			first.Body.String(), second.Body.String())
	}
}

func TestHandleHealth(t *testing.T) {
	h := New()

	// Health must be constant regardless of prior scan traffic, including
	// failing requests.
	postScan(t, h, "!!!not-base64!!!")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.HandleHealth(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var health models.HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &health); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("status = %q, want %q", health.Status, "ok")
	}
}
