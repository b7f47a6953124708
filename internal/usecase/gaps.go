package usecase

import (
	"strings"

	"github.com/stocklens/backend/internal/domain"
)

// minDescriptionLength is the shortest description considered complete
const minDescriptionLength = 20

// AnalyzeGaps recomputes which fields a candidate is missing. A stored flag that says
// missing always wins; otherwise the field's current value decides. Image state lives
// outside the record, so the images flag is taken as-is.
func AnalyzeGaps(candidate *domain.CatalogCandidate) domain.FieldGaps {
	if candidate == nil {
		return domain.FieldGaps{}
	}

	return domain.FieldGaps{
		MissingImages:      candidate.MissingImages,
		MissingDescription: candidate.MissingDescription || textLength(strings.TrimSpace(candidate.Description)) < minDescriptionLength,
		MissingSpecs:       candidate.MissingSpecs || len(candidate.Metadata) == 0,
		MissingBrand:       candidate.MissingBrand || isBlank(candidate.Brand),
	}
}
