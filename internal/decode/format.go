package decode

import "github.com/makiuchi-d/gozxing"

// FormatName maps gozxing's barcode format onto the symbology names the scan
// API reports (EAN13, CODE128, QR_CODE, ...). Unknown formats fall through to
// the library's own name.
func FormatName(f gozxing.BarcodeFormat) string {
	switch f {
	case gozxing.BarcodeFormat_EAN_13:
		return "EAN13"
	case gozxing.BarcodeFormat_EAN_8:
		return "EAN8"
	case gozxing.BarcodeFormat_UPC_A:
		return "UPCA"
	case gozxing.BarcodeFormat_UPC_E:
		return "UPCE"
	case gozxing.BarcodeFormat_CODE_39:
		return "CODE39"
	case gozxing.BarcodeFormat_CODE_93:
		return "CODE93"
	case gozxing.BarcodeFormat_CODE_128:
		return "CODE128"
	case gozxing.BarcodeFormat_ITF:
		return "ITF"
	case gozxing.BarcodeFormat_CODABAR:
		return "CODABAR"
	case gozxing.BarcodeFormat_QR_CODE:
		return "QR_CODE"
	case gozxing.BarcodeFormat_DATA_MATRIX:
		return "DATA_MATRIX"
	case gozxing.BarcodeFormat_AZTEC:
		return "AZTEC"
	case gozxing.BarcodeFormat_PDF_417:
		return "PDF417"
	default:
		return f.String()
	}
}
