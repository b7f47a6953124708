package domain

// Confidence is a coarse bucket summarizing a match score
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// EnrichableField names a catalog field that scanned data can fill
type EnrichableField string

const (
	FieldName        EnrichableField = "name"
	FieldDescription EnrichableField = "description"
	FieldImages      EnrichableField = "images"
	FieldBrand       EnrichableField = "brand"
	FieldSpecs       EnrichableField = "specs"
	FieldPrice       EnrichableField = "price"
	FieldCategory    EnrichableField = "category"
)

// EnrichableFieldOrder is the canonical order enrichable fields are reported in.
var EnrichableFieldOrder = []EnrichableField{
	FieldName, FieldDescription, FieldImages, FieldBrand, FieldSpecs, FieldPrice, FieldCategory,
}

// MatchResult is a surfaced catalog match for a scanned record
type MatchResult struct {
	CandidateID            string            `json:"candidateId"`
	MatchScore             float64           `json:"matchScore"` // 0-100, one decimal
	Confidence             Confidence        `json:"confidence"`
	Reasons                []string          `json:"reasons"`
	EnrichableFields       []EnrichableField `json:"enrichableFields"`
	EnrichmentValue        int               `json:"enrichmentValue"` // 0-100
	EnrichmentImprovements []string          `json:"enrichmentImprovements"`
}

// HasField reports whether field is among the enrichable fields of the result
func (m *MatchResult) HasField(field EnrichableField) bool {
	for _, f := range m.EnrichableFields {
		if f == field {
			return true
		}
	}
	return false
}
