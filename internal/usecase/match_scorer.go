package usecase

import (
	"math"
	"strings"

	"github.com/stocklens/backend/internal/domain"
)

// Field weights for match scoring. A field only counts toward the total when it is
// present on both the candidate and the scanned record.
const (
	weightBarcode  = 50.0
	weightName     = 25.0
	weightBrand    = 15.0
	weightCategory = 10.0
	weightPrice    = 10.0
	weightMPN      = 10.0
)

// priceTolerance is the relative price difference at which price stops contributing
const priceTolerance = 0.3

// MatchField identifies a scored field
type MatchField string

const (
	MatchFieldBarcode  MatchField = "barcode"
	MatchFieldName     MatchField = "name"
	MatchFieldBrand    MatchField = "brand"
	MatchFieldCategory MatchField = "category"
	MatchFieldPrice    MatchField = "price"
	MatchFieldMPN      MatchField = "mpn"
)

// FieldScore is the contribution of one applicable field to a match score
type FieldScore struct {
	Field  MatchField
	Weight float64
	Points float64
}

// ScoreFields returns the contribution of every field present on both sides, in weight
// table order. Fields missing on either side are omitted entirely.
func ScoreFields(candidate *domain.CatalogCandidate, scanned *domain.ScannedRecord) []FieldScore {
	if candidate == nil || scanned == nil {
		return nil
	}

	var scores []FieldScore

	if matched, ok := barcodeMatches(candidate, scanned); ok {
		points := 0.0
		if matched {
			points = weightBarcode
		}
		scores = append(scores, FieldScore{Field: MatchFieldBarcode, Weight: weightBarcode, Points: points})
	}

	if !isBlank(candidate.Name) && !isBlank(scanned.Name) {
		scores = append(scores, FieldScore{
			Field:  MatchFieldName,
			Weight: weightName,
			Points: weightName * Similarity(candidate.Name, scanned.Name),
		})
	}

	if !isBlank(candidate.Brand) && !isBlank(scanned.Brand) {
		points := weightBrand
		if !brandsEqual(candidate.Brand, scanned.Brand) {
			points = weightBrand * Similarity(candidate.Brand, scanned.Brand)
		}
		scores = append(scores, FieldScore{Field: MatchFieldBrand, Weight: weightBrand, Points: points})
	}

	if matched, ok := categoryMatches(candidate, scanned); ok {
		points := 0.0
		if matched {
			points = weightCategory
		}
		scores = append(scores, FieldScore{Field: MatchFieldCategory, Weight: weightCategory, Points: points})
	}

	if diff, ok := priceDifference(candidate, scanned); ok {
		points := 0.0
		if diff < priceTolerance {
			points = weightPrice * (1 - diff/priceTolerance)
		}
		scores = append(scores, FieldScore{Field: MatchFieldPrice, Weight: weightPrice, Points: points})
	}

	if candidate.MPN != "" && scanned.MPN != "" {
		points := 0.0
		if candidate.MPN == scanned.MPN {
			points = weightMPN
		}
		scores = append(scores, FieldScore{Field: MatchFieldMPN, Weight: weightMPN, Points: points})
	}

	return scores
}

// ScoreMatch combines the applicable field scores into a 0-100 match score rounded to
// one decimal. Returns 0 when no field is present on both sides.
func ScoreMatch(candidate *domain.CatalogCandidate, scanned *domain.ScannedRecord) float64 {
	var points, weight float64
	for _, fs := range ScoreFields(candidate, scanned) {
		points += fs.Points
		weight += fs.Weight
	}

	if weight == 0 {
		return 0
	}

	return roundTo(math.Min(100, points/weight*100), 1)
}

// barcodeMatches compares the candidate GTIN against every barcode alias of the scan.
// ok is false when either side has no barcode.
func barcodeMatches(candidate *domain.CatalogCandidate, scanned *domain.ScannedRecord) (matched, ok bool) {
	codes := scanned.Barcodes()
	if candidate.GTIN == "" || len(codes) == 0 {
		return false, false
	}
	for _, code := range codes {
		if code == candidate.GTIN {
			return true, true
		}
	}
	return false, true
}

// brandsEqual compares brands case-insensitively after normalization
func brandsEqual(a, b string) bool {
	return normalizeText(a) == normalizeText(b)
}

// categoryMatches checks whether the candidate's leaf category and the scanned category
// contain one another, ignoring case. ok is false when either side has no category.
func categoryMatches(candidate *domain.CatalogCandidate, scanned *domain.ScannedRecord) (matched, ok bool) {
	leaf := strings.ToLower(strings.TrimSpace(candidate.LeafCategory()))
	category := strings.ToLower(strings.TrimSpace(scanned.Category))
	if leaf == "" || category == "" {
		return false, false
	}
	return strings.Contains(category, leaf) || strings.Contains(leaf, category), true
}

// priceDifference returns |candidate - scanned| / candidate. ok is false unless both
// prices are present and the candidate price is positive.
func priceDifference(candidate *domain.CatalogCandidate, scanned *domain.ScannedRecord) (float64, bool) {
	if candidate.PriceCents == nil || scanned.PriceCents == nil || *candidate.PriceCents <= 0 {
		return 0, false
	}
	c := float64(*candidate.PriceCents)
	s := float64(*scanned.PriceCents)
	return math.Abs(c-s) / c, true
}

// roundTo rounds v to the given number of decimal places
func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
