package dataset

// Record labels one fixture image with its expected decode outcome. Image is
// a path resolved relative to the manifest file; Data and Type are the
// expected payload and symbology name (e.g. "EAN13", "QR_CODE").
type Record struct {
	Image string `json:"image" parquet:"image"`
	Data  string `json:"data" parquet:"data"`
	Type  string `json:"type" parquet:"type"`
}
