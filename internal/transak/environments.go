package transak

import (
	"fmt"
	"strings"
)

// Environment holds the base URL of the Transak API gateway.
type Environment string

const (
	Production Environment = "https://api-gateway.transak.com"
	Staging    Environment = "https://api-gateway-stg.transak.com"
)

// ParseEnvironment maps the STAGING/PRODUCTION selector to the gateway base URL.
func ParseEnvironment(environment string) (Environment, error) {
	switch strings.ToUpper(strings.TrimSpace(environment)) {
	case "PRODUCTION":
		return Production, nil
	case "STAGING", "":
		return Staging, nil
	default:
		return "", fmt.Errorf("invalid transak environment %q", environment)
	}
}

// Name returns the selector the gateway expects inside the widget params.
func (e Environment) Name() string {
	if e == Production {
		return "PRODUCTION"
	}
	return "STAGING"
}
