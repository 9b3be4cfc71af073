// Package metrics exposes Prometheus instrumentation for the switchboard:
// call volume and duration, prompt plays, and every navigation error path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pkarlsen/switchboard/pkg/call"
	"github.com/pkarlsen/switchboard/pkg/menu"
	"github.com/pkarlsen/switchboard/pkg/navigator"
)

// Metrics holds the switchboard collectors.
type Metrics struct {
	CallsStarted      prometheus.Counter
	CallsEnded        prometheus.Counter
	CallDuration      prometheus.Histogram
	PromptsPlayed     *prometheus.CounterVec
	InvalidSelections *prometheus.CounterVec
	InvalidExtensions prometheus.Counter
	MenuTimeouts      prometheus.Counter
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CallsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "switchboard_calls_started_total",
			Help: "Calls answered (handset lifted).",
		}),
		CallsEnded: factory.NewCounter(prometheus.CounterOpts{
			Name: "switchboard_calls_ended_total",
			Help: "Calls completed (handset returned).",
		}),
		CallDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "switchboard_call_duration_seconds",
			Help:    "Duration of completed calls.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		PromptsPlayed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "switchboard_prompts_played_total",
			Help: "Prompt playbacks by prompt ID.",
		}, []string{"prompt"}),
		InvalidSelections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "switchboard_invalid_selections_total",
			Help: "Unmapped single-digit key presses, split by whether the error prompt was suppressed.",
		}, []string{"suppressed"}),
		InvalidExtensions: factory.NewCounter(prometheus.CounterOpts{
			Name: "switchboard_invalid_extensions_total",
			Help: "Dialed extensions that matched no option.",
		}),
		MenuTimeouts: factory.NewCounter(prometheus.CounterOpts{
			Name: "switchboard_menu_timeouts_total",
			Help: "Menus abandoned to the inactivity timeout.",
		}),
	}
}

// Hooks returns navigation hooks that feed the collectors.
func (m *Metrics) Hooks() navigator.Hooks {
	return navigator.Hooks{
		OnPromptStart: func(promptID string) {
			m.PromptsPlayed.WithLabelValues(promptID).Inc()
		},
		OnInvalidSelection: func(key rune, suppressed bool) {
			label := "false"
			if suppressed {
				label = "true"
			}
			m.InvalidSelections.WithLabelValues(label).Inc()
		},
		OnInvalidExtension: func(extension string) {
			m.InvalidExtensions.Inc()
		},
		OnMenuTimeout: func(node *menu.Node) {
			m.MenuTimeouts.Inc()
		},
	}
}

// CallStarted records a new call.
func (m *Metrics) CallStarted() {
	m.CallsStarted.Inc()
}

// CallEnded records a completed call.
func (m *Metrics) CallEnded(rec call.Record) {
	m.CallsEnded.Inc()
	m.CallDuration.Observe(rec.Duration().Seconds())
}
