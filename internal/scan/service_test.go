package scan

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"framescan/internal/decode"
)

type fakeDetector struct {
	symbols []decode.Symbol
	err     error
	calls   int
}

func (f *fakeDetector) Detect(img image.Image) ([]decode.Symbol, error) {
	f.calls++
	return f.symbols, f.err
}

// whitePNG returns the bytes of a solid-white PNG frame.
func whitePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode fixture PNG: %v", err)
	}
	return buf.Bytes()
}

func TestScanBase64StripsDataURIPrefix(t *testing.T) {
	detector := &fakeDetector{symbols: []decode.Symbol{{Data: "4006381333931", Format: "EAN13"}}}
	svc := NewService(detector)

	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString(whitePNG(t))
	result, err := svc.ScanBase64(encoded)
	if err != nil {
		t.Fatalf("ScanBase64 returned error: %v", err)
	}

	if !result.Found {
		t.Fatal("expected found=true")
	}
	if result.Data != "4006381333931" || result.Type != "EAN13" {
		t.Errorf("unexpected result: %+v", result)
	}
	if detector.calls != 1 {
		t.Errorf("detector called %d times, want 1", detector.calls)
	}
}

func TestScanBase64InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty payload", ""},
		{"data URI with empty payload", "data:image/jpeg;base64,"},
		{"garbage base64", "!!!not-base64!!!"},
		{"valid base64 of non-image bytes", base64.StdEncoding.EncodeToString([]byte("definitely not a raster image"))},
	}

	svc := NewService(&fakeDetector{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ScanBase64(tt.encoded)
			if !errors.Is(err, ErrInvalidImage) {
				t.Errorf("expected ErrInvalidImage, got %v", err)
			}
		})
	}
}

func TestScanBytesEmpty(t *testing.T) {
	svc := NewService(&fakeDetector{})
	if _, err := svc.ScanBytes(nil); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("expected ErrInvalidImage for empty bytes, got %v", err)
	}
}

func TestScanFirstSymbolWins(t *testing.T) {
	detector := &fakeDetector{symbols: []decode.Symbol{
		{Data: "first", Format: "QR_CODE"},
		{Data: "second", Format: "CODE128"},
	}}
	svc := NewService(detector)

	result, err := svc.ScanBytes(whitePNG(t))
	if err != nil {
		t.Fatalf("ScanBytes returned error: %v", err)
	}
	if !result.Found || result.Data != "first" || result.Type != "QR_CODE" {
		t.Errorf("expected first symbol to win, got %+v", result)
	}
}

func TestScanNoSymbols(t *testing.T) {
	svc := NewService(&fakeDetector{})

	result, err := svc.ScanBytes(whitePNG(t))
	if err != nil {
		t.Fatalf("ScanBytes returned error: %v", err)
	}
	if result.Found {
		t.Errorf("expected found=false, got %+v", result)
	}
	if result.Data != "" || result.Type != "" {
		t.Errorf("not-found result must carry no payload, got %+v", result)
	}
}

func TestScanDetectorFailureDegeneratesToNotFound(t *testing.T) {
	svc := NewService(&fakeDetector{err: errors.New("internal reader failure")})

	result, err := svc.ScanBytes(whitePNG(t))
	if err != nil {
		t.Fatalf("a detector failure on a valid image must not be an error, got %v", err)
	}
	if result.Found {
		t.Errorf("expected found=false, got %+v", result)
	}
}

func TestScanIdempotent(t *testing.T) {
	detector := &fakeDetector{symbols: []decode.Symbol{{Data: "abc", Format: "QR_CODE"}}}
	svc := NewService(detector)

	frame := whitePNG(t)
	first, err := svc.ScanBytes(frame)
	if err != nil {
		t.Fatalf("first scan failed: %v", err)
	}
	second, err := svc.ScanBytes(frame)
	if err != nil {
		t.Fatalf("second scan failed: %v", err)
	}
	if first != second {
		t.Errorf("identical input must yield identical results: %+v vs %+v", first, second)
	}
}
