/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import (
	"net/http"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// NumQueries counts polygon queries, by outcome.
	NumQueries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "q3c_queries_total",
		Help: "Total number of polygon queries",
	}, []string{"status"})
	// NumObjects counts objects written to or returned from the catalog.
	NumObjects = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "q3c_objects_total",
		Help: "Total number of catalog objects, by operation",
	}, []string{"op"})
	// NumCells counts cells scanned by queries, by relation to the polygon.
	NumCells = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "q3c_cells_scanned_total",
		Help: "Total number of covering cells scanned",
	}, []string{"relation"})
	// CacheHits counts query polygons served from the cache.
	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "q3c_polygon_cache_total",
		Help: "Lookups of built query polygons, by result",
	}, []string{"result"})
	// LatencyMs tracks the duration of catalog operations.
	LatencyMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "q3c_latency_ms",
		Help:    "Latency of catalog operations",
		Buckets: prometheus.ExponentialBuckets(0.1, 4, 10),
	}, []string{"method"})
)

func init() {
	prometheus.MustRegister(NumQueries, NumObjects, NumCells, CacheHits, LatencyMs)
}

// ServeMetrics exposes the registered metrics on addr under /metrics. It
// returns immediately; the server runs until the process exits.
func ServeMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		glog.Infof("Serving metrics at %s/metrics", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			glog.Errorf("metrics server stopped: %v", err)
		}
	}()
}
