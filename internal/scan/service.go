package scan

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"strings"

	"framescan/internal/decode"
	"framescan/internal/models"
)

// ErrInvalidImage reports input that could not be decoded as a raster image.
// It is kept distinct from a "no barcode found" result so clients can tell a
// broken frame apart from a valid frame with nothing in it.
var ErrInvalidImage = errors.New("invalid image data")

// Service turns one encoded frame into a ScanResult.
type Service struct {
	detector decode.Detector
}

func NewService(detector decode.Detector) *Service {
	return &Service{detector: detector}
}

// ScanBase64 decodes a base64 frame, optionally wrapped in a data-URI prefix
// ("data:image/jpeg;base64,..."), and scans it.
func (s *Service) ScanBase64(encoded string) (models.ScanResult, error) {
	// Strip the data-URI scheme wrapper if present
	if i := strings.IndexByte(encoded, ','); i >= 0 {
		encoded = encoded[i+1:]
	}
	if encoded == "" {
		return models.ScanResult{}, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return models.ScanResult{}, fmt.Errorf("%w: bad base64: %v", ErrInvalidImage, err)
	}

	return s.ScanBytes(raw)
}

// ScanBytes decodes raw image bytes (JPEG, PNG, or GIF) and scans them.
func (s *Service) ScanBytes(raw []byte) (models.ScanResult, error) {
	if len(raw) == 0 {
		return models.ScanResult{}, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return models.ScanResult{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	return s.ScanImage(img), nil
}

// ScanImage runs detection on a decoded frame. The frame is converted to
// grayscale first, which improves detection rates. When several symbols are
// present the first one in the detector's scan order wins and the rest are
// discarded. A detector failure on a valid image degenerates to "not found"
// rather than an error.
func (s *Service) ScanImage(img image.Image) models.ScanResult {
	symbols, err := s.detector.Detect(grayscale(img))
	if err != nil {
		slog.Warn("Barcode detection failed", "err", err)
		return models.ScanResult{Found: false}
	}
	if len(symbols) == 0 {
		return models.ScanResult{Found: false}
	}

	first := symbols[0]
	return models.ScanResult{
		Found: true,
		Data:  first.Data,
		Type:  first.Format,
	}
}

func grayscale(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}
