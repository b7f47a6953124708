package domain

// CatalogCandidate is an existing catalog item evaluated as a possible match for a scan.
// Candidates are read-only to the matching engine and are already scoped to one tenant.
type CatalogCandidate struct {
	ID           string         `json:"id" binding:"required"`
	Name         string         `json:"name"`
	Brand        string         `json:"brand,omitempty"`
	GTIN         string         `json:"gtin,omitempty"`
	CategoryPath []string       `json:"categoryPath,omitempty"`
	PriceCents   *int64         `json:"priceCents,omitempty"`
	MPN          string         `json:"mpn,omitempty"`
	Description  string         `json:"description,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`

	// Flags tracked by the catalog. They may be stale.
	MissingImages      bool `json:"missingImages"`
	MissingDescription bool `json:"missingDescription"`
	MissingSpecs       bool `json:"missingSpecs"`
	MissingBrand       bool `json:"missingBrand"`

	// Provenance, passed through to match reasons
	CreatedByQuickStart bool `json:"createdByQuickStart"`
	NeedsEnrichment     bool `json:"needsEnrichment"`
}

// LeafCategory returns the most specific category segment, or "" when there is none.
func (c *CatalogCandidate) LeafCategory() string {
	if len(c.CategoryPath) == 0 {
		return ""
	}
	return c.CategoryPath[len(c.CategoryPath)-1]
}

// FieldGaps reports which catalog fields are missing or incomplete on a candidate
type FieldGaps struct {
	MissingImages      bool `json:"missingImages"`
	MissingDescription bool `json:"missingDescription"`
	MissingSpecs       bool `json:"missingSpecs"`
	MissingBrand       bool `json:"missingBrand"`
}

// EnrichmentPatch holds the values a downstream applier would write to a candidate.
// Nil fields are left untouched.
type EnrichmentPatch struct {
	CandidateID    string            `json:"candidateId"`
	Fields         []EnrichableField `json:"fields"`
	Name           *string           `json:"name,omitempty"`
	Description    *string           `json:"description,omitempty"`
	Images         []string          `json:"images,omitempty"`
	Brand          *string           `json:"brand,omitempty"`
	Specifications map[string]any    `json:"specifications,omitempty"`
	PriceCents     *int64            `json:"priceCents,omitempty"`
	Category       *string           `json:"category,omitempty"`
}
