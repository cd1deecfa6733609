package httphandler

import (
	"net/http"

	"github.com/stellar/go-stellar-sdk/support/render/httpjson"
)

// Status indicates whether the service is health or not.
type Status string

const (
	// StatusPass indicates that the service is healthy.
	StatusPass Status = "pass"
	// StatusFail indicates that the service is unhealthy.
	StatusFail Status = "fail"
)

// HealthResponse follows the health check response format for HTTP APIs,
// based on the format defined in the draft IETF network working group
// standard, Health Check Response Format for HTTP APIs.
//
// https://datatracker.ietf.org/doc/html/draft-inadarei-api-health-check-06#name-api-health-response
type HealthResponse struct {
	Status    Status            `json:"status"`
	Version   string            `json:"version,omitempty"`
	ServiceID string            `json:"service_id,omitempty"`
	ReleaseID string            `json:"release_id,omitempty"`
	Services  map[string]Status `json:"services,omitempty"`
}

// HealthHandler reports whether the gateway can serve widget sessions. It never calls the provider.
type HealthHandler struct {
	Version               string
	ServiceID             string
	ReleaseID             string
	CredentialsConfigured bool
}

// ServeHTTP implements the http.Handler interface.
func (h HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	credentialsStatus := StatusPass
	if !h.CredentialsConfigured {
		credentialsStatus = StatusFail
	}

	response := HealthResponse{
		Status:    credentialsStatus,
		Version:   h.Version,
		ServiceID: h.ServiceID,
		ReleaseID: h.ReleaseID,
		Services: map[string]Status{
			"transak_credentials": credentialsStatus,
		},
	}

	// Without credentials every widget session fails, so the orchestrator should not route traffic here.
	if response.Status == StatusFail {
		httpjson.RenderStatus(w, http.StatusServiceUnavailable, response, httpjson.JSON)
		return
	}

	httpjson.RenderStatus(w, http.StatusOK, response, httpjson.JSON)
}
