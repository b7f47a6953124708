package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/stocklens/backend/internal/domain"
)

// Lookup sources and outcomes reported to the recorder
const (
	LookupSourceCache    = "cache"
	LookupSourceProvider = "provider"

	LookupOutcomeHit      = "hit"
	LookupOutcomeMiss     = "miss"
	LookupOutcomeNotFound = "not_found"
	LookupOutcomeError    = "error"
)

// Recorder receives match and lookup observations
type Recorder interface {
	ObserveMatch(candidates int, results []domain.MatchResult, elapsed time.Duration)
	ObserveLookup(source, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveMatch(int, []domain.MatchResult, time.Duration) {}
func (nopRecorder) ObserveLookup(string, string)                         {}

// ScanServiceConfig holds configuration for the scan service
type ScanServiceConfig struct {
	CacheTTL time.Duration
}

// ScanService resolves scans and matches them against caller-supplied catalog candidates
type ScanService struct {
	cache    domain.CacheRepository
	lookup   domain.BarcodeLookupClient
	engine   *MatchEngine
	recorder Recorder
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewScanService creates a new scan service with dependencies
func NewScanService(
	cache domain.CacheRepository,
	lookup domain.BarcodeLookupClient,
	engine *MatchEngine,
	recorder Recorder,
	logger *zap.Logger,
	config ScanServiceConfig,
) *ScanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &ScanService{
		cache:    cache,
		lookup:   lookup,
		engine:   engine,
		recorder: recorder,
		logger:   logger.Named("scan_service"),
		cacheTTL: cacheTTL,
	}
}

// MatchScan ranks candidates against an already resolved scan.
// Candidates without an id or name are skipped.
func (s *ScanService) MatchScan(
	ctx context.Context,
	scanned *domain.ScannedRecord,
	candidates []domain.CatalogCandidate,
) ([]domain.MatchResult, error) {
	if scanned == nil || (isBlank(scanned.Name) && len(scanned.Barcodes()) == 0) {
		return nil, domain.ErrInvalidRequest
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	usable := usableCandidates(candidates)
	if skipped := len(candidates) - len(usable); skipped > 0 {
		s.logger.Warn("skipping candidates without id or name", zap.Int("skipped", skipped))
	}

	start := time.Now()
	results := s.engine.FindMatches(scanned, usable)
	elapsed := time.Since(start)

	s.recorder.ObserveMatch(len(usable), results, elapsed)
	s.logger.Info("scan matched",
		zap.String("barcode", scanned.Barcode),
		zap.Int("candidates", len(usable)),
		zap.Int("matches", len(results)),
		zap.Duration("elapsed", elapsed),
	)

	return results, nil
}

// LookupAndMatch resolves barcode through the cache or the lookup provider, then matches
// the resulting scan against candidates.
func (s *ScanService) LookupAndMatch(
	ctx context.Context,
	barcode string,
	candidates []domain.CatalogCandidate,
) (*domain.ScannedRecord, []domain.MatchResult, error) {
	scanned, err := s.Lookup(ctx, barcode)
	if err != nil {
		return nil, nil, err
	}

	results, err := s.MatchScan(ctx, scanned, candidates)
	if err != nil {
		return nil, nil, err
	}

	return scanned, results, nil
}

// Lookup resolves a barcode into a scanned record.
// Flow: check cache -> query provider -> cache -> return
func (s *ScanService) Lookup(ctx context.Context, barcode string) (*domain.ScannedRecord, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := generateCacheKey(barcode)

	cached, err := s.getFromCache(ctx, cacheKey)
	if err == nil {
		s.recorder.ObserveLookup(LookupSourceCache, LookupOutcomeHit)
		return cached, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.Warn("cache read failed", zap.String("key", cacheKey), zap.Error(err))
	}
	s.recorder.ObserveLookup(LookupSourceCache, LookupOutcomeMiss)

	if s.lookup == nil {
		return nil, fmt.Errorf("%w: no lookup provider configured", domain.ErrLookupFailure)
	}

	scanned, err := s.lookup.Lookup(ctx, barcode)
	if err != nil {
		outcome := LookupOutcomeError
		if errors.Is(err, domain.ErrProductNotFound) {
			outcome = LookupOutcomeNotFound
		}
		s.recorder.ObserveLookup(LookupSourceProvider, outcome)
		return nil, err
	}
	s.recorder.ObserveLookup(LookupSourceProvider, LookupOutcomeHit)

	// Caching failures never fail the lookup
	if err := s.setInCache(ctx, cacheKey, scanned); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", cacheKey), zap.Error(err))
	}

	return scanned, nil
}

// Preview returns the values enriching candidate with scanned would write
func (s *ScanService) Preview(scanned *domain.ScannedRecord, candidate *domain.CatalogCandidate) (domain.EnrichmentPatch, error) {
	if scanned == nil || candidate == nil || candidate.ID == "" {
		return domain.EnrichmentPatch{}, domain.ErrInvalidRequest
	}
	return BuildEnrichmentPatch(candidate, scanned), nil
}

// generateCacheKey creates the cache key for a barcode.
// Format: "scan:{barcode}"
func generateCacheKey(barcode string) string {
	return "scan:" + barcode
}

// getFromCache retrieves a scanned record from cache
func (s *ScanService) getFromCache(ctx context.Context, key string) (*domain.ScannedRecord, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var scanned domain.ScannedRecord
	if err := json.Unmarshal(data, &scanned); err != nil {
		return nil, fmt.Errorf("%w: corrupt entry: %v", domain.ErrCacheUnavailable, err)
	}

	return &scanned, nil
}

// setInCache stores a scanned record in cache
func (s *ScanService) setInCache(ctx context.Context, key string, scanned *domain.ScannedRecord) error {
	if s.cache == nil {
		return nil
	}

	data, err := json.Marshal(scanned)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, data, s.cacheTTL)
}

// usableCandidates drops candidates the engine cannot identify
func usableCandidates(candidates []domain.CatalogCandidate) []domain.CatalogCandidate {
	usable := make([]domain.CatalogCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == "" || isBlank(c.Name) {
			continue
		}
		usable = append(usable, c)
	}
	return usable
}
