package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stocklens/backend/internal/domain"
)

// Registry exposes match engine and lookup metrics on its own prometheus registry
type Registry struct {
	reg *prometheus.Registry

	MatchRequests   prometheus.Counter
	CandidatesTotal prometheus.Counter
	MatchesTotal    *prometheus.CounterVec
	MatchLatencySec prometheus.Histogram
	MatchScores     prometheus.Histogram
	LookupsTotal    *prometheus.CounterVec
}

// NewRegistry creates a registry with all collectors registered
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	requests := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stocklens_match_requests_total",
		Help: "Match runs performed.",
	})
	candidates := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stocklens_match_candidates_total",
		Help: "Catalog candidates scored across all match runs.",
	})
	matches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stocklens_matches_total",
		Help: "Surfaced matches by confidence tier.",
	}, []string{"confidence"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "stocklens_match_latency_seconds",
		Help:    "Time spent scoring and ranking candidates per match run.",
		Buckets: prometheus.DefBuckets,
	})
	scores := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "stocklens_match_score",
		Help:    "Scores of surfaced matches.",
		Buckets: prometheus.LinearBuckets(60, 5, 9),
	})
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stocklens_lookups_total",
		Help: "Barcode lookups by source and outcome.",
	}, []string{"source", "outcome"})

	r.MustRegister(requests, candidates, matches, latency, scores, lookups)
	return &Registry{
		reg:             r,
		MatchRequests:   requests,
		CandidatesTotal: candidates,
		MatchesTotal:    matches,
		MatchLatencySec: latency,
		MatchScores:     scores,
		LookupsTotal:    lookups,
	}
}

// ObserveMatch records one match run and the confidence and score of every surfaced result
func (r *Registry) ObserveMatch(candidates int, results []domain.MatchResult, elapsed time.Duration) {
	r.MatchRequests.Inc()
	r.CandidatesTotal.Add(float64(candidates))
	r.MatchLatencySec.Observe(elapsed.Seconds())
	for _, res := range results {
		r.MatchesTotal.WithLabelValues(string(res.Confidence)).Inc()
		r.MatchScores.Observe(res.MatchScore)
	}
}

// ObserveLookup counts one barcode lookup step by source and outcome
func (r *Registry) ObserveLookup(source, outcome string) {
	r.LookupsTotal.WithLabelValues(source, outcome).Inc()
}

// TrackCacheEntries exposes size as the stocklens_cache_entries gauge, read at scrape time
func (r *Registry) TrackCacheEntries(size func() int) {
	r.reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "stocklens_cache_entries",
		Help: "Entries currently held by the lookup cache.",
	}, func() float64 {
		return float64(size())
	}))
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
