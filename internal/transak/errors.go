package transak

import (
	"errors"
	"fmt"
)

// RemoteError is returned when the gateway answers with a non-2xx status.
type RemoteError struct {
	StatusCode int
	// Message is the gateway's `message` field, or "HTTP <code>" when it did not send one.
	Message string
}

func (e RemoteError) Error() string {
	return fmt.Sprintf("transak API error: status=%d, message=%s", e.StatusCode, e.Message)
}

// ParseError is returned when a 2xx response body is not valid JSON.
type ParseError struct {
	StatusCode int
	Err        error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("invalid JSON response from Transak API (status %d): %v", e.StatusCode, e.Err)
}

func (e ParseError) Unwrap() error {
	return e.Err
}

// ConfigError is returned when a credential needed by the call is not configured.
type ConfigError struct {
	Option string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Option)
}

var (
	ErrMissingAPIKey    = ConfigError{Option: "transak-api-key"}
	ErrMissingAPISecret = ConfigError{Option: "transak-api-secret"}
	// ErrMissingAccessToken is returned when a 2xx token response carries no access_token.
	ErrMissingAccessToken = errors.New("no access_token received from Transak API")
	// ErrMissingWidgetURL is returned when a 2xx create-url response carries no widget URL.
	ErrMissingWidgetURL = errors.New("no widgetUrl received from Transak API")
)

// IsConfigError reports whether err was caused by missing configuration.
func IsConfigError(err error) bool {
	var configErr ConfigError
	return errors.As(err, &configErr)
}
