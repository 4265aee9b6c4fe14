// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TurnsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_turns_completed_total",
			Help: "Total number of conversation turns completed",
		},
		[]string{"outcome"}, // success or error
	)

	TurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_turn_duration_seconds",
			Help: "Duration of a conversation turn including the remote call",
		},
		[]string{"outcome"},
	)

	PropertiesNormalized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_properties_normalized_total",
			Help: "Total number of backend result records normalized",
		},
	)

	MapPanelVisible = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "assistant_map_panel_visible",
			Help: "Whether the map panel is currently visible (1) or hidden (0)",
		},
	)
)
