package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SearchMetrics records facet search activity.
type SearchMetrics struct {
	duration   *prometheus.HistogramVec
	searches   *prometheus.CounterVec
	dropped    prometheus.Counter
	candidates prometheus.Histogram
}

// NewSearchMetrics registers the search metrics on the provided registerer.
func NewSearchMetrics(reg prometheus.Registerer) *SearchMetrics {
	if reg == nil {
		return &SearchMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_search_duration_seconds",
		Help:    "Duration of catalog facet searches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	searches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_searches_total",
		Help: "Facet searches by outcome.",
	}, []string{"outcome"})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_dropped_criteria_total",
		Help: "Filter criteria dropped as malformed or unknown.",
	})
	candidates := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_search_candidates",
		Help:    "Candidate counts returned per search.",
		Buckets: []float64{0, 1, 5, 10, 25, 50},
	})
	reg.MustRegister(duration, searches, dropped, candidates)
	return &SearchMetrics{
		duration:   duration,
		searches:   searches,
		dropped:    dropped,
		candidates: candidates,
	}
}

// ObserveSearch records one completed search.
func (s *SearchMetrics) ObserveSearch(outcome string, duration time.Duration, candidates int) {
	if s == nil || s.duration == nil {
		return
	}
	outcome = normalizeLabel(outcome)
	s.duration.WithLabelValues(outcome).Observe(duration.Seconds())
	s.searches.WithLabelValues(outcome).Inc()
	s.candidates.Observe(float64(candidates))
}

// AddDroppedCriteria counts criteria discarded during parsing/compilation.
func (s *SearchMetrics) AddDroppedCriteria(n int) {
	if s == nil || s.dropped == nil || n <= 0 {
		return
	}
	s.dropped.Add(float64(n))
}

func normalizeLabel(outcome string) string {
	if outcome == "" {
		return "unknown"
	}
	return outcome
}
