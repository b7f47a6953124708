package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklens/backend/internal/domain"
	"github.com/stocklens/backend/internal/usecase"
)

var _ usecase.Recorder = (*Registry)(nil)

func TestObserveMatch(t *testing.T) {
	r := NewRegistry()

	r.ObserveMatch(3, []domain.MatchResult{
		{CandidateID: "a", MatchScore: 100, Confidence: domain.ConfidenceHigh},
		{CandidateID: "b", MatchScore: 91.7, Confidence: domain.ConfidenceHigh},
		{CandidateID: "c", MatchScore: 68.8, Confidence: domain.ConfidenceLow},
	}, 5*time.Millisecond)
	r.ObserveMatch(2, nil, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.MatchRequests))
	assert.Equal(t, 5.0, testutil.ToFloat64(r.CandidatesTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.MatchesTotal.WithLabelValues("high")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.MatchesTotal.WithLabelValues("low")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.MatchesTotal.WithLabelValues("medium")))
}

func TestObserveLookup(t *testing.T) {
	r := NewRegistry()

	r.ObserveLookup(usecase.LookupSourceCache, usecase.LookupOutcomeMiss)
	r.ObserveLookup(usecase.LookupSourceProvider, usecase.LookupOutcomeHit)
	r.ObserveLookup(usecase.LookupSourceCache, usecase.LookupOutcomeMiss)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.LookupsTotal.WithLabelValues("cache", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.LookupsTotal.WithLabelValues("provider", "hit")))
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.ObserveLookup("cache", "hit")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `stocklens_lookups_total{outcome="hit",source="cache"} 1`)
}

func TestTrackCacheEntries(t *testing.T) {
	r := NewRegistry()
	entries := 3
	r.TrackCacheEntries(func() int { return entries })

	scrape := func() string {
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		return rec.Body.String()
	}

	assert.Contains(t, scrape(), "stocklens_cache_entries 3")

	entries = 7
	assert.Contains(t, scrape(), "stocklens_cache_entries 7")
}

func TestCollectorsHaveHelp(t *testing.T) {
	r := NewRegistry()
	r.ObserveMatch(1, []domain.MatchResult{{MatchScore: 90, Confidence: domain.ConfidenceHigh}}, time.Millisecond)
	r.ObserveLookup("cache", "hit")

	families, err := r.reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
	for _, mf := range families {
		assert.NotEmpty(t, mf.GetHelp(), mf.GetName())
	}
}
