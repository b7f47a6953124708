package usecase

import (
	"fmt"
	"maps"
	"slices"

	"github.com/stocklens/backend/internal/domain"
)

// Enrichment value weights. They total 100.
const (
	enrichmentValueImages      = 30
	enrichmentValueDescription = 25
	enrichmentValueSpecs       = 20
	enrichmentValueBrand       = 15
	enrichmentValueName        = 10
)

// SelectEnrichableFields returns the candidate fields the scanned record can fill, in
// domain.EnrichableFieldOrder.
func SelectEnrichableFields(candidate *domain.CatalogCandidate, scanned *domain.ScannedRecord) []domain.EnrichableField {
	fields := []domain.EnrichableField{}
	if candidate == nil || scanned == nil {
		return fields
	}

	gaps := AnalyzeGaps(candidate)

	// A longer scanned name is taken as the more descriptive one
	if textLength(scanned.Name) > textLength(candidate.Name) {
		fields = append(fields, domain.FieldName)
	}
	if gaps.MissingDescription && !isBlank(scanned.Description) {
		fields = append(fields, domain.FieldDescription)
	}
	if gaps.MissingImages && scanned.ImageCount() > 0 {
		fields = append(fields, domain.FieldImages)
	}
	if gaps.MissingBrand && !isBlank(scanned.Brand) {
		fields = append(fields, domain.FieldBrand)
	}
	if gaps.MissingSpecs && len(scanned.Specifications) > 0 {
		fields = append(fields, domain.FieldSpecs)
	}
	// Price and category are never "missing"; they are offered whenever the scan has them
	if scanned.PriceCents != nil && *scanned.PriceCents > 0 {
		fields = append(fields, domain.FieldPrice)
	}
	if !isBlank(scanned.Category) {
		fields = append(fields, domain.FieldCategory)
	}

	return fields
}

// ValueEnrichment scores how much applying the scanned data would improve the catalog
// entry, independent of match confidence. Improvements are listed images, description,
// specs, brand, name.
func ValueEnrichment(scanned *domain.ScannedRecord, fields []domain.EnrichableField) (int, []string) {
	value := 0
	improvements := []string{}
	if scanned == nil {
		return value, improvements
	}

	if slices.Contains(fields, domain.FieldImages) {
		value += enrichmentValueImages
		improvements = append(improvements, fmt.Sprintf("Add %d product image(s)", scanned.ImageCount()))
	}
	if slices.Contains(fields, domain.FieldDescription) {
		value += enrichmentValueDescription
		improvements = append(improvements, "Add detailed description")
	}
	if slices.Contains(fields, domain.FieldSpecs) {
		value += enrichmentValueSpecs
		improvements = append(improvements, "Add product specifications")
	}
	if slices.Contains(fields, domain.FieldBrand) {
		value += enrichmentValueBrand
		improvements = append(improvements, "Add brand information")
	}
	if slices.Contains(fields, domain.FieldName) {
		value += enrichmentValueName
		improvements = append(improvements, "Improve product name")
	}

	return value, improvements
}

// BuildEnrichmentPatch collects the scanned values for every enrichable field of the
// candidate. The candidate is not modified.
func BuildEnrichmentPatch(candidate *domain.CatalogCandidate, scanned *domain.ScannedRecord) domain.EnrichmentPatch {
	patch := domain.EnrichmentPatch{Fields: SelectEnrichableFields(candidate, scanned)}
	if candidate == nil || scanned == nil {
		return patch
	}
	patch.CandidateID = candidate.ID

	for _, field := range patch.Fields {
		switch field {
		case domain.FieldName:
			patch.Name = stringPtr(scanned.Name)
		case domain.FieldDescription:
			patch.Description = stringPtr(scanned.Description)
		case domain.FieldImages:
			for _, img := range scanned.Images {
				if img != "" {
					patch.Images = append(patch.Images, img)
				}
			}
		case domain.FieldBrand:
			patch.Brand = stringPtr(scanned.Brand)
		case domain.FieldSpecs:
			patch.Specifications = maps.Clone(scanned.Specifications)
		case domain.FieldPrice:
			price := *scanned.PriceCents
			patch.PriceCents = &price
		case domain.FieldCategory:
			patch.Category = stringPtr(scanned.Category)
		}
	}

	return patch
}

func stringPtr(s string) *string {
	return &s
}
