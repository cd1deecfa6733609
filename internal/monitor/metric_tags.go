package monitor

type MetricTag string

const (
	HTTPRequestDurationTag MetricTag = "requests_duration_seconds"
	// Provider gateway requests
	ProviderAPIRequestDurationTag MetricTag = "api_request_duration_seconds"
	ProviderAPIRequestsTotalTag   MetricTag = "api_requests_total"
	// Widget sessions
	WidgetURLsCreatedCounterTag MetricTag = "urls_created_total"
)

func (m MetricTag) ListAll() []MetricTag {
	return []MetricTag{
		HTTPRequestDurationTag,
		ProviderAPIRequestDurationTag,
		ProviderAPIRequestsTotalTag,
		WidgetURLsCreatedCounterTag,
	}
}
