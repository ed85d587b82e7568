package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestAPIMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAPIMetrics(reg)
	m.ObserveRequest("GET", "200", 0.05)
	m.ObserveRequest("POST", "error", 1.2)
}

func TestAPIMetricsNilSafe(t *testing.T) {
	var m *APIMetrics
	m.ObserveRequest("GET", "200", 0.1)
}
