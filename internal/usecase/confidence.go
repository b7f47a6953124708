package usecase

import (
	"fmt"

	"github.com/stocklens/backend/internal/domain"
)

// Default score cutoffs
const (
	DefaultMinMatchScore    = 60.0
	DefaultHighConfidence   = 85.0
	DefaultMediumConfidence = 70.0
)

// ConfidenceThresholds holds the surfacing cutoff and the tier boundaries. All bounds
// are inclusive.
type ConfidenceThresholds struct {
	MinScore float64
	High     float64
	Medium   float64
}

// DefaultConfidenceThresholds returns the standard 60/70/85 cutoffs
func DefaultConfidenceThresholds() ConfidenceThresholds {
	return ConfidenceThresholds{
		MinScore: DefaultMinMatchScore,
		High:     DefaultHighConfidence,
		Medium:   DefaultMediumConfidence,
	}
}

// withDefaults returns the default cutoffs when none are set. A partially set value is
// kept as is, zeros included.
func (t ConfidenceThresholds) withDefaults() ConfidenceThresholds {
	if t == (ConfidenceThresholds{}) {
		return DefaultConfidenceThresholds()
	}
	return t
}

// Validate checks 0 <= MinScore <= Medium <= High <= 100
func (t ConfidenceThresholds) Validate() error {
	if t.MinScore < 0 || t.MinScore > t.Medium || t.Medium > t.High || t.High > 100 {
		return fmt.Errorf("thresholds must satisfy 0 <= min (%.1f) <= medium (%.1f) <= high (%.1f) <= 100",
			t.MinScore, t.Medium, t.High)
	}
	return nil
}

// IsMatch reports whether score clears the surfacing cutoff
func (t ConfidenceThresholds) IsMatch(score float64) bool {
	return score >= t.MinScore
}

// Classify maps a surfaced score to its confidence tier
func (t ConfidenceThresholds) Classify(score float64) domain.Confidence {
	switch {
	case score >= t.High:
		return domain.ConfidenceHigh
	case score >= t.Medium:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
