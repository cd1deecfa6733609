package crashtracker

import (
	"context"
	"fmt"
	"time"

	"github.com/stellar/go-stellar-sdk/support/log"
)

type dryRunClient struct{}

func (d *dryRunClient) LogAndReportErrors(ctx context.Context, err error, msg string) {
	if msg != "" {
		err = fmt.Errorf("%s: %w", msg, err)
	}
	log.Ctx(ctx).Errorf("[DRY_RUN Crash Reporter] %s", ScrubSecrets(err.Error()))
}

func (d *dryRunClient) LogAndReportMessages(ctx context.Context, msg string) {
	log.Ctx(ctx).Infof("[DRY_RUN Crash Reporter] %s", ScrubSecrets(msg))
}

func (d *dryRunClient) FlushEvents(time.Duration) bool {
	return false
}

func (d *dryRunClient) Recover() {
	if r := recover(); r != nil {
		log.Errorf("[DRY_RUN Crash Reporter] recovered from panic: %v", r)
	}
}

func NewDryRunClient() *dryRunClient {
	return &dryRunClient{}
}

var _ CrashTrackerClient = (*dryRunClient)(nil)
