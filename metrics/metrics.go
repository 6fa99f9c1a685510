// Package metrics exposes ingestion counters and a small HTTP listener
// with /metrics and /healthz endpoints.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RowsAppended counts rows appended to daily partitions, by feed kind.
	RowsAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gtfsrt_rows_appended_total",
		Help: "Rows appended to daily partitions, by feed kind.",
	}, []string{"feed"})

	// FeedErrors counts failed poll attempts, by feed kind.
	FeedErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gtfsrt_feed_errors_total",
		Help: "Failed poll attempts, by feed kind.",
	}, []string{"feed"})

	// FeedTimestamp tracks the header timestamp of the most recent
	// successfully ingested feed message, by feed kind.
	FeedTimestamp = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "gtfsrt_feed_header_timestamp_seconds",
		Help: "Header timestamp of the most recent successfully ingested feed.",
	}, []string{"feed"})
)

var latestFeedEpoch atomic.Int64

// SetLatestFeedEpoch records the newest feed header timestamp seen so far.
func SetLatestFeedEpoch(ts int64) {
	for {
		cur := latestFeedEpoch.Load()
		if ts <= cur || latestFeedEpoch.CompareAndSwap(cur, ts) {
			return
		}
	}
}

type healthResponse struct {
	Status          string `json:"status"`
	LatestFeedEpoch int64  `json:"latest_feed_epoch"`
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{
		Status:          "ok",
		LatestFeedEpoch: latestFeedEpoch.Load(),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// Serve blocks, exposing /metrics and /healthz on the given port.
func Serve(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", handleHealth)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}
