package tools

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK      = "ok"
	outcomeError   = "error"
	outcomeUnknown = "unknown_tool"

	// unknownToolLabel stands in for names that are not registered, which
	// come straight from clients.
	unknownToolLabel = "unknown"
)

var (
	toolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "codemash",
		Subsystem: "tools",
		Name:      "calls_total",
		Help:      "Tool calls by tool name and outcome.",
	}, []string{"tool", "outcome"})

	toolDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "codemash",
		Subsystem: "tools",
		Name:      "call_duration_seconds",
		Help:      "Tool call latency.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"tool"})
)
