package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crimemap_http_request_duration_seconds",
		Help:    "HTTP request duration by route and status",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status"})
	CacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crimemap_cache_lookups_total",
		Help: "Cache lookups by endpoint and result (hit, miss, error)",
	}, []string{"endpoint", "result"})
	QueriesByModeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crimemap_queries_total",
		Help: "Store queries issued by level-of-detail mode",
	}, []string{"mode"})
	DroppedRowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crimemap_dropped_rows_total",
		Help: "Rows skipped because their geometry could not be decoded",
	}, []string{"endpoint"})
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crimemap_predictions_total",
		Help: "Category predictions by outcome",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(CacheLookupsTotal)
	prometheus.MustRegister(QueriesByModeTotal)
	prometheus.MustRegister(DroppedRowsTotal)
	prometheus.MustRegister(PredictionsTotal)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
