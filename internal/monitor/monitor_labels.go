package monitor

type HTTPRequestLabels struct {
	Status string
	Route  string
	Method string
}

// ProviderAPILabels describe a single call to the widget provider gateway.
type ProviderAPILabels struct {
	Method     string
	Endpoint   string
	Status     string
	StatusCode string
}

func (p ProviderAPILabels) ToMap() map[string]string {
	return map[string]string{
		"method":      p.Method,
		"endpoint":    p.Endpoint,
		"status":      p.Status,
		"status_code": p.StatusCode,
	}
}

var ProviderAPILabelNames = []string{"method", "endpoint", "status", "status_code"}

type WidgetURLLabels struct {
	Network      string
	FiatCurrency string
	Flow         string
}

func (w WidgetURLLabels) ToMap() map[string]string {
	return map[string]string{
		"network":       w.Network,
		"fiat_currency": w.FiatCurrency,
		"flow":          w.Flow,
	}
}

var WidgetURLLabelNames = []string{"network", "fiat_currency", "flow"}
