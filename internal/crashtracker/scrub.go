package crashtracker

import (
	"regexp"

	"github.com/getsentry/sentry-go"
)

var (
	rxBearerToken = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9\-._~+/]+=*`)
	rxSecretField = regexp.MustCompile(`(?i)("?(?:api_key|api_secret|apiKey|access_token|refresh_token)"?\s*[:=]\s*"?)[^",\s}]+`)
)

var scrubbedHeaders = []string{"Authorization", "Cookie", "Set-Cookie"}

// ScrubSecrets replaces bearer tokens and provider credentials in s with a placeholder.
func ScrubSecrets(s string) string {
	s = rxBearerToken.ReplaceAllString(s, "${1}[REDACTED]")
	return rxSecretField.ReplaceAllString(s, "${1}[REDACTED]")
}

// scrubEvent is installed as the Sentry BeforeSend hook.
func scrubEvent(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if event == nil {
		return nil
	}

	event.Message = ScrubSecrets(event.Message)
	for i := range event.Exception {
		event.Exception[i].Value = ScrubSecrets(event.Exception[i].Value)
	}

	if event.Request != nil {
		for _, h := range scrubbedHeaders {
			if _, ok := event.Request.Headers[h]; ok {
				event.Request.Headers[h] = "[REDACTED]"
			}
		}
		event.Request.Data = ScrubSecrets(event.Request.Data)
		event.Request.Cookies = ""
	}

	return event
}
