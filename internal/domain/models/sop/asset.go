package sop

// AssetRecord is an externally-produced image or PDF attached to a
// document's metadata for embedding during export. Image payloads carry a
// base64 PNG in Base64; non-image payloads (PDF flowcharts) carry raw
// bytes in Raw.
type AssetRecord struct {
	Name     string `json:"name"`
	Format   string `json:"format"` // e.g. "PNG", "JPEG", "PDF"
	Size     int64  `json:"size"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Base64   string `json:"base64,omitempty"`
	Raw      []byte `json:"raw,omitempty"`
	MIMEType string `json:"mime_type"`
}

// HasImageData reports whether the record carries an embeddable image
// payload.
func (a *AssetRecord) HasImageData() bool {
	return a.Base64 != ""
}

// IsPDF reports whether the record is a PDF attachment. PDFs are
// referenced by name in rendered output instead of embedded inline.
func (a *AssetRecord) IsPDF() bool {
	return a.Format == "PDF"
}

// Clone returns an independent copy of the record.
func (a *AssetRecord) Clone() AssetRecord {
	out := *a
	if a.Raw != nil {
		out.Raw = append([]byte(nil), a.Raw...)
	}
	return out
}
