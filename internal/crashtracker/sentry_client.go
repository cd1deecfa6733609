package crashtracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stellar/go-stellar-sdk/support/log"
)

type hubSentryInterface interface {
	CaptureException(exception error) *sentry.EventID
	CaptureMessage(message string) *sentry.EventID
	Flush(timeout time.Duration) bool
	Recover(err interface{}) *sentry.EventID
}

var _ hubSentryInterface = (*sentry.Hub)(nil)

type sentryClient struct {
	hub hubSentryInterface
}

// LogAndReportErrors logs err and captures it in Sentry. Canceled requests are only logged, since they happen
// whenever a widget page reloads its configuration.
func (s *sentryClient) LogAndReportErrors(ctx context.Context, err error, msg string) {
	if errors.Is(err, context.Canceled) {
		log.Ctx(ctx).Warn("context canceled, not reporting error to sentry")
		return
	}

	if msg != "" {
		err = fmt.Errorf("%s: %w", msg, err)
	}
	log.Ctx(ctx).WithStack(err).Error(ScrubSecrets(err.Error()))
	s.hub.CaptureException(err)
}

func (s *sentryClient) LogAndReportMessages(ctx context.Context, msg string) {
	log.Ctx(ctx).Info(ScrubSecrets(msg))
	s.hub.CaptureMessage(msg)
}

// FlushEvents waits up to waitTime for buffered events to be sent before the process exits.
func (s *sentryClient) FlushEvents(waitTime time.Duration) bool {
	return s.hub.Flush(waitTime)
}

// Recover captures an unhandled panic. It must be deferred directly.
func (s *sentryClient) Recover() {
	if err := recover(); err != nil {
		s.hub.Recover(err)
	}
}

// NewSentryClient initializes the global Sentry client and wraps its current hub. Events are scrubbed of
// credentials and bearer tokens before they leave the process.
func NewSentryClient(opts CrashTrackerOptions) (*sentryClient, error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         opts.SentryDSN,
		Release:     opts.GitCommit,
		Environment: opts.Environment,
		BeforeSend:  scrubEvent,
	})
	if err != nil {
		return nil, fmt.Errorf("error setting up Sentry: %w", err)
	}

	return &sentryClient{hub: sentry.CurrentHub()}, nil
}

var _ CrashTrackerClient = (*sentryClient)(nil)
