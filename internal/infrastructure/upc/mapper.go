package upc

import (
	"math"
	"strings"

	"github.com/stocklens/backend/internal/domain"
)

// MapToScannedRecord converts a provider item into a scanned record for barcode.
// The requested barcode is kept as the primary code; the provider's UPC and EAN become aliases.
func MapToScannedRecord(barcode string, item *Item) *domain.ScannedRecord {
	record := &domain.ScannedRecord{
		Barcode:     barcode,
		UPC:         strings.TrimSpace(item.UPC),
		EAN:         strings.TrimSpace(item.EAN),
		Name:        strings.TrimSpace(item.Title),
		Brand:       strings.TrimSpace(item.Brand),
		Category:    strings.TrimSpace(item.Category),
		MPN:         strings.TrimSpace(item.Model),
		Description: strings.TrimSpace(item.Description),
		Images:      extractImages(item.Images),
	}

	if cents, ok := extractPriceCents(item); ok {
		record.PriceCents = &cents
	}

	if specs := extractSpecifications(item); len(specs) > 0 {
		record.Specifications = specs
	}

	return record
}

// extractPriceCents uses the cheapest positive offer, falling back to the lowest recorded price
func extractPriceCents(item *Item) (int64, bool) {
	lowest := 0.0
	for _, offer := range item.Offers {
		if offer.Price > 0 && (lowest == 0 || offer.Price < lowest) {
			lowest = offer.Price
		}
	}
	if lowest == 0 {
		lowest = item.LowestRecordedPrice
	}
	if lowest <= 0 {
		return 0, false
	}
	return int64(math.Round(lowest * 100)), true
}

// extractSpecifications collects the descriptive attributes the provider reports
func extractSpecifications(item *Item) map[string]any {
	specs := make(map[string]any)
	for key, value := range map[string]string{
		"color":     item.Color,
		"size":      item.Size,
		"dimension": item.Dimension,
		"weight":    item.Weight,
	} {
		if v := strings.TrimSpace(value); v != "" {
			specs[key] = v
		}
	}
	return specs
}

// extractImages drops blank and duplicate image URLs, keeping provider order
func extractImages(images []string) []string {
	var result []string
	seen := make(map[string]bool)
	for _, img := range images {
		img = strings.TrimSpace(img)
		if img == "" || seen[img] {
			continue
		}
		seen[img] = true
		result = append(result, img)
	}
	return result
}
