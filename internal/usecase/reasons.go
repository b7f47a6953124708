package usecase

import (
	"github.com/stocklens/backend/internal/domain"
)

// Match reason strings, reported in this order
const (
	ReasonExactBarcode     = "Exact barcode match"
	ReasonVerySimilarName  = "Very similar product name"
	ReasonSimilarName      = "Similar product name"
	ReasonSameBrand        = "Same brand"
	ReasonSameCategory     = "Same category"
	ReasonVerySimilarPrice = "Very similar price"
	ReasonSimilarPrice     = "Similar price range"
	ReasonMatchingMPN      = "Matching manufacturer part number"
	ReasonQuickStartWizard = "Created by Quick Start Wizard"
	ReasonNeedsEnrichment  = "Needs enrichment"
)

const (
	verySimilarNameMinimum  = 0.8
	similarNameMinimum      = 0.6
	verySimilarPriceMaximum = 0.1
)

// ExplainMatch lists why a candidate matched the scanned record. Conditions are checked
// directly against both records rather than taken from the field scores.
func ExplainMatch(candidate *domain.CatalogCandidate, scanned *domain.ScannedRecord) []string {
	reasons := []string{}
	if candidate == nil || scanned == nil {
		return reasons
	}

	if matched, _ := barcodeMatches(candidate, scanned); matched {
		reasons = append(reasons, ReasonExactBarcode)
	}

	if !isBlank(candidate.Name) && !isBlank(scanned.Name) {
		sim := Similarity(candidate.Name, scanned.Name)
		switch {
		case sim > verySimilarNameMinimum:
			reasons = append(reasons, ReasonVerySimilarName)
		case sim > similarNameMinimum:
			reasons = append(reasons, ReasonSimilarName)
		}
	}

	if !isBlank(candidate.Brand) && !isBlank(scanned.Brand) && brandsEqual(candidate.Brand, scanned.Brand) {
		reasons = append(reasons, ReasonSameBrand)
	}

	if matched, _ := categoryMatches(candidate, scanned); matched {
		reasons = append(reasons, ReasonSameCategory)
	}

	if diff, ok := priceDifference(candidate, scanned); ok {
		switch {
		case diff < verySimilarPriceMaximum:
			reasons = append(reasons, ReasonVerySimilarPrice)
		case diff < priceTolerance:
			reasons = append(reasons, ReasonSimilarPrice)
		}
	}

	if candidate.MPN != "" && candidate.MPN == scanned.MPN {
		reasons = append(reasons, ReasonMatchingMPN)
	}

	if candidate.CreatedByQuickStart {
		reasons = append(reasons, ReasonQuickStartWizard)
	}
	if candidate.NeedsEnrichment {
		reasons = append(reasons, ReasonNeedsEnrichment)
	}

	return reasons
}
