package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Predictions served, by mode (single, batch)
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "finaid_predictions_total",
		Help: "Total number of financial aid predictions computed",
	}, []string{"mode"})

	PredictDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "finaid_predict_duration_seconds",
		Help:    "Time spent computing predictions",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
	}, []string{"mode"})

	PredictBatchSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "finaid_predict_batch_size",
		Help:    "Number of universities per batch prediction",
		Buckets: []float64{1, 2, 5, 10, 15, 20},
	})

	MatchRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "match_requests_total",
		Help: "Total number of university match requests",
	})

	MatchResultSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "match_result_size",
		Help:    "Number of universities returned per match request",
		Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
	})

	// result: hit, miss, error
	MatchCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "match_cache_lookups_total",
		Help: "Match result cache lookups by result",
	}, []string{"result"})
)

func Init() {
	prometheus.MustRegister(
		PredictionsTotal,
		PredictDuration,
		PredictBatchSize,
		MatchRequests,
		MatchResultSize,
		MatchCacheLookups,
	)
}
