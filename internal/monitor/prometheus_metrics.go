package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

var SummaryVecMetrics = map[MetricTag]*prometheus.SummaryVec{
	HTTPRequestDurationTag: prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: "ramp_gateway", Subsystem: "http", Name: string(HTTPRequestDurationTag),
		Help: "HTTP requests durations, sliding window = 10m",
	},
		[]string{"status", "route", "method"},
	),
}

var HistogramVecMetrics = map[MetricTag]*prometheus.HistogramVec{
	ProviderAPIRequestDurationTag: prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ramp_gateway", Subsystem: "transak", Name: string(ProviderAPIRequestDurationTag),
		Help: "A histogram of the Transak API request durations",
	},
		ProviderAPILabelNames,
	),
}

var CounterVecMetrics = map[MetricTag]*prometheus.CounterVec{
	ProviderAPIRequestsTotalTag: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ramp_gateway", Subsystem: "transak", Name: string(ProviderAPIRequestsTotalTag),
		Help: "A counter of the Transak API requests",
	},
		ProviderAPILabelNames,
	),
	WidgetURLsCreatedCounterTag: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ramp_gateway", Subsystem: "widget", Name: string(WidgetURLsCreatedCounterTag),
		Help: "A counter of the widget URLs created",
	},
		WidgetURLLabelNames,
	),
}
