package monitor

import (
	"net/http"
	"time"
)

type MonitorClient interface {
	GetMetricHTTPHandler() http.Handler
	GetMetricType() MetricType
	MonitorHTTPRequestDuration(duration time.Duration, labels HTTPRequestLabels)
	MonitorCounters(tag MetricTag, labels map[string]string)
	MonitorHistogram(value float64, tag MetricTag, labels map[string]string)
}
