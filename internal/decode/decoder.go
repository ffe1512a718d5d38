package decode

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi"
)

// Symbol is one decoded barcode: its payload text and symbology name.
type Symbol struct {
	Data   string
	Format string
}

// Detector locates and decodes barcode symbols in a frame. Implementations
// return symbols in their own scan order; callers that only want one symbol
// take the first.
type Detector interface {
	Detect(img image.Image) ([]Symbol, error)
}

type multiReader interface {
	DecodeMultiple(img *gozxing.BinaryBitmap, hints map[gozxing.DecodeHintType]interface{}) ([]*gozxing.Result, error)
}

type zxingDetector struct {
	reader multiReader
	hints  map[gozxing.DecodeHintType]interface{}
}

// NewDetector returns a Detector backed by gozxing's multi-format reader.
// All symbologies the library knows (EAN, UPC, Code39/93/128, ITF, Codabar,
// QR, DataMatrix, Aztec, PDF417) are tried on every frame.
func NewDetector() Detector {
	return &zxingDetector{
		reader: multi.NewGenericMultipleBarcodeReader(gozxing.NewMultiFormatReader()),
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

func (d *zxingDetector) Detect(img image.Image) ([]Symbol, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to build luminance bitmap: %w", err)
	}

	zresults, err := d.reader.DecodeMultiple(bmp, d.hints)
	if err != nil {
		// Nothing detected is a normal outcome, not an error.
		if _, ok := err.(gozxing.NotFoundException); ok {
			return nil, nil
		}
		return nil, err
	}

	symbols := make([]Symbol, 0, len(zresults))
	for _, r := range zresults {
		symbols = append(symbols, Symbol{
			Data:   r.GetText(),
			Format: FormatName(r.GetBarcodeFormat()),
		})
	}
	return symbols, nil
}
