/*
 * ChatCLI - Command Line Interface for LLM interaction
 * Copyright (c) 2024 Edilson Freitas
 * License: MIT
 */

// Package metrics exposes a custom Prometheus registry and the typed
// collectors that mi.Parser and annotation.Parser report through.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Namespace is the Prometheus namespace for every metric this package
// registers.
const Namespace = "gdbmi"

// Registry is the custom registry for this module's metrics. A
// dedicated registry keeps the default global registry untouched for
// embedders that run their own collectors alongside this one.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// Parser holds the counters backing mi.Metrics, plus a LineLatency
// histogram that mi.Parser does not record into; only code holding the
// Parser directly can observe it.
type Parser struct {
	linesProcessedCounter       prometheus.Counter
	parseErrorsRecoveredCounter prometheus.Counter
	LineLatency                 prometheus.Histogram
}

// NewParser creates and registers the mi.Parser metrics on Registry.
func NewParser() *Parser {
	return newParserOn(Registry)
}

func newParserOn(reg *prometheus.Registry) *Parser {
	m := &Parser{
		linesProcessedCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "mi",
			Name:      "lines_processed_total",
			Help:      "Total complete lines handed to the MI grammar.",
		}),
		parseErrorsRecoveredCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "mi",
			Name:      "parse_errors_recovered_total",
			Help:      "Total lines that failed to parse and were recovered as ParseError records.",
		}),
		LineLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "mi",
			Name:      "line_processing_seconds",
			Help:      "Time spent lexing and parsing one line.",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 12),
		}),
	}

	reg.MustRegister(m.linesProcessedCounter, m.parseErrorsRecoveredCounter, m.LineLatency)
	return m
}

// LinesProcessed implements mi.Metrics.
func (m *Parser) LinesProcessed(n int) { m.linesProcessedCounter.Add(float64(n)) }

// ParseErrorsRecovered implements mi.Metrics.
func (m *Parser) ParseErrorsRecovered(n int) { m.parseErrorsRecoveredCounter.Add(float64(n)) }

// Annotation holds the counters backing annotation.Metrics.
type Annotation struct {
	MarkersRecognized *prometheus.CounterVec
	MarkersUnknown    *prometheus.CounterVec
}

// NewAnnotation creates and registers the annotation.Parser metrics
// on Registry.
func NewAnnotation() *Annotation {
	return newAnnotationOn(Registry)
}

func newAnnotationOn(reg *prometheus.Registry) *Annotation {
	m := &Annotation{
		MarkersRecognized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "annotation",
			Name:      "markers_recognized_total",
			Help:      "Total annotation markers matched to a known Kind, by name.",
		}, []string{"name"}),
		MarkersUnknown: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "annotation",
			Name:      "markers_unknown_total",
			Help:      "Total annotation markers with no entry in the known-name table, by name.",
		}, []string{"name"}),
	}

	reg.MustRegister(m.MarkersRecognized, m.MarkersUnknown)
	return m
}

// MarkerRecognized implements annotation.Metrics.
func (m *Annotation) MarkerRecognized(name string) {
	m.MarkersRecognized.WithLabelValues(name).Inc()
}

// MarkerUnknown implements annotation.Metrics.
func (m *Annotation) MarkerUnknown(name string) {
	m.MarkersUnknown.WithLabelValues(name).Inc()
}

// Server serves the /metrics and /healthz HTTP endpoints.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates a metrics HTTP server bound to the given port.
func NewServer(port int, logger *zap.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(Registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start begins serving metrics in a background goroutine.
func (s *Server) Start() {
	go func() {
		s.logger.Info("metrics server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("metrics server error", zap.Error(err))
		}
	}()
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("metrics server shutdown error", zap.Error(err))
	}
}
