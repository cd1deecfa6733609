package crashtracker

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockCrashTrackerClient struct {
	mock.Mock
}

func (m *MockCrashTrackerClient) LogAndReportErrors(ctx context.Context, err error, msg string) {
	m.Called(ctx, err, msg)
}

func (m *MockCrashTrackerClient) LogAndReportMessages(ctx context.Context, msg string) {
	m.Called(ctx, msg)
}

func (m *MockCrashTrackerClient) FlushEvents(waitTime time.Duration) bool {
	return m.Called(waitTime).Bool(0)
}

func (m *MockCrashTrackerClient) Recover() {
	m.Called()
}

var _ CrashTrackerClient = (*MockCrashTrackerClient)(nil)
