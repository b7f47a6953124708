package usecase

import (
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stocklens/backend/internal/domain"
)

// defaultParallelThreshold is the candidate count at which scoring fans out to workers
const defaultParallelThreshold = 64

// MatchConfig holds configuration for the match engine
type MatchConfig struct {
	Thresholds         ConfidenceThresholds
	Workers            int // 0 or 1 scores candidates serially
	ParallelThreshold  int
	EnableDebugLogging bool
}

// MatchEngine scores catalog candidates against a scanned record and ranks the matches.
// It holds no mutable state and is safe for concurrent use.
type MatchEngine struct {
	thresholds         ConfidenceThresholds
	workers            int
	parallelThreshold  int
	enableDebugLogging bool
	logger             *zap.Logger
}

// NewMatchEngine creates a new match engine with the given configuration
func NewMatchEngine(config MatchConfig, logger *zap.Logger) *MatchEngine {
	if logger == nil {
		logger = zap.NewNop()
	}

	logger = logger.Named("match_engine")

	thresholds := config.Thresholds.withDefaults()
	if err := thresholds.Validate(); err != nil {
		logger.Warn("invalid confidence thresholds, using defaults",
			zap.Float64("min_score", thresholds.MinScore),
			zap.Float64("medium_score", thresholds.Medium),
			zap.Float64("high_score", thresholds.High),
			zap.Error(err),
		)
		thresholds = DefaultConfidenceThresholds()
	}

	parallelThreshold := config.ParallelThreshold
	if parallelThreshold <= 0 {
		parallelThreshold = defaultParallelThreshold
	}

	return &MatchEngine{
		thresholds:         thresholds,
		workers:            max(config.Workers, 0),
		parallelThreshold:  parallelThreshold,
		enableDebugLogging: config.EnableDebugLogging,
		logger:             logger,
	}
}

// Thresholds returns the cutoffs the engine classifies with
func (e *MatchEngine) Thresholds() ConfidenceThresholds {
	return e.thresholds
}

// FindMatches scores every candidate, drops those under the surfacing cutoff and returns
// the rest sorted by score, highest first. Equal scores keep their input order.
// Candidates are never modified and a candidate with unusable fields simply scores lower.
func (e *MatchEngine) FindMatches(scanned *domain.ScannedRecord, candidates []domain.CatalogCandidate) []domain.MatchResult {
	results := []domain.MatchResult{}
	if scanned == nil || len(candidates) == 0 {
		return results
	}

	slots := make([]*domain.MatchResult, len(candidates))

	if e.workers > 1 && len(candidates) >= e.parallelThreshold {
		var g errgroup.Group
		g.SetLimit(e.workers)
		for i := range candidates {
			i := i
			g.Go(func() error {
				slots[i] = e.evaluate(scanned, &candidates[i])
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range candidates {
			slots[i] = e.evaluate(scanned, &candidates[i])
		}
	}

	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	if e.enableDebugLogging {
		e.logger.Debug("match complete",
			zap.String("barcode", scanned.Barcode),
			zap.Int("candidates", len(candidates)),
			zap.Int("matches", len(results)),
		)
	}

	return results
}

// evaluate scores a single candidate. Returns nil when the score is under the cutoff.
func (e *MatchEngine) evaluate(scanned *domain.ScannedRecord, candidate *domain.CatalogCandidate) *domain.MatchResult {
	score := ScoreMatch(candidate, scanned)

	if e.enableDebugLogging {
		e.logger.Debug("scored candidate",
			zap.String("candidate_id", candidate.ID),
			zap.String("candidate_name", candidate.Name),
			zap.Float64("score", score),
		)
	}

	if !e.thresholds.IsMatch(score) {
		return nil
	}

	fields := SelectEnrichableFields(candidate, scanned)
	value, improvements := ValueEnrichment(scanned, fields)

	return &domain.MatchResult{
		CandidateID:            candidate.ID,
		MatchScore:             score,
		Confidence:             e.thresholds.Classify(score),
		Reasons:                ExplainMatch(candidate, scanned),
		EnrichableFields:       fields,
		EnrichmentValue:        value,
		EnrichmentImprovements: improvements,
	}
}

// SelectAutoApply picks the high-confidence match whose enrichment adds the most value.
// Ties go to the higher match score, then to the earlier result. Returns nil when no
// result is high confidence or none would add anything.
func SelectAutoApply(results []domain.MatchResult) *domain.MatchResult {
	var best *domain.MatchResult
	for i := range results {
		r := &results[i]
		if r.Confidence != domain.ConfidenceHigh || r.EnrichmentValue == 0 {
			continue
		}
		if best == nil ||
			r.EnrichmentValue > best.EnrichmentValue ||
			(r.EnrichmentValue == best.EnrichmentValue && r.MatchScore > best.MatchScore) {
			best = r
		}
	}
	return best
}
