package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewHTMXResponse().JSON(map[string]string{
		"status":    "ok",
		"timestamp": s.now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	}).Write(w)
}

// handleReady reports ready only when the store answers.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := map[string]string{"templates": "ok", "store": "ok"}

	if s.opts.Ready != nil {
		if err := s.opts.Ready(ctx); err != nil {
			checks["store"] = "failed: " + err.Error()
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
			s.logger.WarnContext(r.Context(), "Readiness check failed", "error", err)
		}
	}

	NewHTMXResponse().Status(httpStatus).JSON(map[string]any{
		"status":    status,
		"timestamp": s.now().UTC().Format(time.RFC3339),
		"checks":    checks,
	}).Write(w)
}

type metric struct {
	name, help, kind string
	value            any
}

// handleMetrics writes counters in the Prometheus text format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	traceMetrics := s.traceMiddleware.GetMetrics()
	rateLimitMetrics := s.rateLimiter.GetMetrics()
	securityMetrics := s.securityDetector.GetMetrics()

	metrics := []metric{
		{"http_requests_total", "Total number of HTTP requests", "counter", traceMetrics.TotalRequests},
		{"http_server_errors_total", "Responses with a 5xx status", "counter", traceMetrics.ServerErrors},
		{"http_response_time_microseconds_avg", "Average response time", "gauge", traceMetrics.AverageResponseTime},
		{"rate_limit_hits_total", "Requests rejected by the rate limiter", "counter", rateLimitMetrics.TotalHits},
		{"rate_limit_active_clients", "Clients tracked by the rate limiter", "gauge", rateLimitMetrics.ClientCount},
		{"security_suspicious_requests_total", "Requests flagged as suspicious", "counter", securityMetrics.SuspiciousRequests},
		{"security_invalid_ip_total", "Requests with unparseable client addresses", "counter", securityMetrics.InvalidIPAttempts},
	}

	if s.svc.Aggregation != nil {
		cacheStats := s.svc.Aggregation.CacheStats()
		metrics = append(metrics,
			metric{"cache_hits_total", "Dashboard cache hits", "counter", cacheStats.Hits},
			metric{"cache_misses_total", "Dashboard cache misses", "counter", cacheStats.Misses},
			metric{"cache_entries", "Dashboard cache entries", "gauge", cacheStats.Entries},
		)
	}
	if s.opts.EventsPublished != nil {
		metrics = append(metrics,
			metric{"events_published_total", "Change events published to the broker", "counter", s.opts.EventsPublished()})
	}
	metrics = append(metrics,
		metric{"uptime_seconds", "Seconds since the server started", "gauge", int64(time.Since(s.started).Seconds())})

	var b strings.Builder
	for _, m := range metrics {
		fmt.Fprintf(&b, "# HELP %s %s\n# TYPE %s %s\n%s %v\n\n", m.name, m.help, m.name, m.kind, m.name, m.value)
	}

	NewHTMXResponse().
		Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8").
		Body([]byte(b.String())).
		Write(w)
}
