package domain

// ScannedRecord is a product record produced by a barcode scan or provider lookup.
// Empty strings and nil values mean the field is absent.
type ScannedRecord struct {
	Barcode        string         `json:"barcode"`
	UPC            string         `json:"upc,omitempty"`
	EAN            string         `json:"ean,omitempty"`
	Name           string         `json:"name"`
	Brand          string         `json:"brand,omitempty"`
	Category       string         `json:"category,omitempty"`
	PriceCents     *int64         `json:"priceCents,omitempty"`
	Images         []string       `json:"images,omitempty"`
	Specifications map[string]any `json:"specifications,omitempty"`
	Manufacturer   string         `json:"manufacturer,omitempty"`
	MPN            string         `json:"mpn,omitempty"`
	Description    string         `json:"description,omitempty"`
}

// Barcodes returns the non-empty barcode aliases of the record in barcode, upc, ean order.
func (r *ScannedRecord) Barcodes() []string {
	var codes []string
	for _, code := range []string{r.Barcode, r.UPC, r.EAN} {
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// ImageCount returns the number of non-empty image references
func (r *ScannedRecord) ImageCount() int {
	n := 0
	for _, img := range r.Images {
		if img != "" {
			n++
		}
	}
	return n
}
