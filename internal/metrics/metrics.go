package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tikscope/tikscope/internal/logger"
)

var (
	AnalysesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tikscope_analyses_total",
		Help: "Number of successfully completed profile analyses",
	})

	QuotaRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tikscope_quota_rejections_total",
		Help: "Number of analysis requests rejected because the free quota was exhausted",
	})

	FetchFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tikscope_fetch_failures_total",
		Help: "Number of profile page fetches that failed or timed out",
	})

	ExtractionFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tikscope_extraction_failures_total",
		Help: "Number of fetched pages whose numeric fields could not be parsed",
	})

	EmptyExtractionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tikscope_empty_extractions_total",
		Help: "Number of pages where no stat marker was found (degenerate all-zero result)",
	})

	MalformedPayloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tikscope_malformed_payloads_total",
		Help: "Number of selection payloads that failed structural validation",
	})
)

// StartServer exposes /metrics and /health on the given port. It never blocks;
// a serve error is logged, not fatal.
func StartServer(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	go func() {
		logger.Info("Metrics server starting", map[string]interface{}{
			"port":      port,
			"endpoints": []string{"/metrics", "/health"},
		})
		if err := http.ListenAndServe(":"+port, mux); err != nil {
			logger.Error("Metrics server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()
}
