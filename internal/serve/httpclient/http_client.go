package httpclient

import (
	"net/http"
	"time"
)

type HTTPClientInterface interface {
	Do(*http.Request) (*http.Response, error)
}

// TimeoutClientInSeconds bounds every outbound call made through DefaultClient. Calls are never retried.
const TimeoutClientInSeconds = 40

// DefaultClient returns a default HTTP client with a timeout.
func DefaultClient() HTTPClientInterface {
	return &http.Client{Timeout: TimeoutClientInSeconds * time.Second}
}

var _ HTTPClientInterface = DefaultClient()
