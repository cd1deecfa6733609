package cmd

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cmdUtils "github.com/rampworks/ramp-gateway/cmd/utils"
	"github.com/rampworks/ramp-gateway/internal/crashtracker"
	"github.com/rampworks/ramp-gateway/internal/monitor"
	"github.com/rampworks/ramp-gateway/internal/serve"
	"github.com/rampworks/ramp-gateway/internal/transak"
)

type mockServer struct {
	wg sync.WaitGroup
	mock.Mock
}

// Making sure that mockServer implements ServerServiceInterface
var _ ServerServiceInterface = (*mockServer)(nil)

func (m *mockServer) StartServe(opts serve.ServeOptions, httpServer serve.HTTPServerInterface) {
	m.Called(opts, httpServer)
	m.wg.Wait()
}

func (m *mockServer) StartMetricsServe(opts serve.MetricsServeOptions, httpServer serve.HTTPServerInterface) {
	m.Called(opts, httpServer)
	m.wg.Done()
}

func Test_serve_wasCalled(t *testing.T) {
	// setup
	rootCmd := SetupCLI("x.y.z", "1234567890abcdef")
	serveCmdFound := false

	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "serve" {
			serveCmdFound = true
		}
	}
	require.True(t, serveCmdFound, "serve command not found")
	rootCmd.SetArgs([]string{"serve", "--help"})
	var out bytes.Buffer
	rootCmd.SetOut(&out)

	// test
	err := rootCmd.Execute()
	require.NoError(t, err)

	// assert
	assert.Contains(t, out.String(), "ramp-gateway serve [flags]", "should have printed help message for serve command")
	assert.Contains(t, out.String(), "--transak-api-key", "should list the Transak options")
	assert.Contains(t, out.String(), "--cors-allowed-origins", "should list the CORS option")
}

// replaceServeCommand swaps the serve command of rootCmd for one running the given mocks.
func replaceServeCommand(t *testing.T, mServer *mockServer, mMonitorService *monitor.MockMonitorService) *cobra.Command {
	t.Helper()

	rootCmd := SetupCLI("x.y.z", "1234567890abcdef")
	originalCommands := rootCmd.Commands()
	rootCmd.ResetCommands()
	serveCmdFound := false
	for _, cmd := range originalCommands {
		if cmd.Use == "serve" {
			serveCmdFound = true
			rootCmd.AddCommand((&ServeCommand{}).Command(mServer, mMonitorService))
		} else {
			rootCmd.AddCommand(cmd)
		}
	}
	require.True(t, serveCmdFound, "serve command not found")

	return rootCmd
}

func Test_serve(t *testing.T) {
	cmdUtils.ClearTestEnvironment(t)
	ctx := context.Background()

	mMonitorService := monitor.MockMonitorService{}
	mMonitorService.On("Start", monitor.MetricOptions{
		MetricType:  monitor.MetricTypePrometheus,
		Environment: "staging",
	}).Return(nil).Once()
	defer mMonitorService.AssertExpectations(t)

	crashTrackerClient, err := crashtracker.GetClient(ctx, crashtracker.CrashTrackerOptions{
		CrashTrackerType: crashtracker.CrashTrackerTypeDryRun,
	})
	require.NoError(t, err)

	serveOpts := serve.ServeOptions{
		Environment:        "staging",
		GitCommit:          "1234567890abcdef",
		Port:               8010,
		Version:            "x.y.z",
		MonitorService:     &mMonitorService,
		CrashTrackerClient: crashTrackerClient,
		CorsAllowedOrigins: []string{"https://app.example.com", "https://*.example.org"},
		RateLimitPerMinute: 30,
		TransakEnvironment: transak.Production,
		TransakAPIKey:      "api-key-123",
		TransakAPISecret:   "api-secret-456",
		WidgetPageTitle:    "Buy Crypto",
	}

	serveMetricOpts := serve.MetricsServeOptions{
		Port:           8012,
		Environment:    "staging",
		MetricType:     monitor.MetricTypePrometheus,
		MonitorService: &mMonitorService,
	}

	// mock server
	mServer := mockServer{}
	mServer.On("StartMetricsServe", serveMetricOpts, mock.AnythingOfType("*serve.HTTPServer")).Once()
	mServer.On("StartServe", serveOpts, mock.AnythingOfType("*serve.HTTPServer")).Once()
	mServer.wg.Add(1)
	defer mServer.AssertExpectations(t)

	rootCmd := replaceServeCommand(t, &mServer, &mMonitorService)

	t.Setenv("ENVIRONMENT", "STAGING")
	t.Setenv("PORT", "8010")
	t.Setenv("METRICS_PORT", "8012")
	t.Setenv("METRICS_TYPE", "PROMETHEUS")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://*.example.org")
	t.Setenv("RATE_LIMIT_REQUESTS_PER_MINUTE", "30")
	t.Setenv("TRANSAK_ENVIRONMENT", "production")
	t.Setenv("TRANSAK_API_KEY", "api-key-123")
	t.Setenv("TRANSAK_API_SECRET", "api-secret-456")

	// test & assert
	rootCmd.SetArgs([]string{"serve"})
	err = rootCmd.Execute()
	require.NoError(t, err)
}

func Test_serve_withoutCredentials(t *testing.T) {
	cmdUtils.ClearTestEnvironment(t)

	mMonitorService := monitor.MockMonitorService{}
	mMonitorService.On("Start", mock.AnythingOfType("monitor.MetricOptions")).Return(nil).Once()
	defer mMonitorService.AssertExpectations(t)

	var startedWith serve.ServeOptions
	mServer := mockServer{}
	mServer.On("StartMetricsServe", mock.AnythingOfType("serve.MetricsServeOptions"), mock.AnythingOfType("*serve.HTTPServer")).Once()
	mServer.
		On("StartServe", mock.AnythingOfType("serve.ServeOptions"), mock.AnythingOfType("*serve.HTTPServer")).
		Run(func(args mock.Arguments) { startedWith = args.Get(0).(serve.ServeOptions) }).
		Once()
	mServer.wg.Add(1)
	defer mServer.AssertExpectations(t)

	rootCmd := replaceServeCommand(t, &mServer, &mMonitorService)
	rootCmd.SetArgs([]string{"serve"})
	err := rootCmd.Execute()
	require.NoError(t, err)

	assert.Equal(t, "development", startedWith.Environment)
	assert.Equal(t, 8000, startedWith.Port)
	assert.Equal(t, []string{"*"}, startedWith.CorsAllowedOrigins)
	assert.Equal(t, transak.Staging, startedWith.TransakEnvironment)
	assert.False(t, startedWith.CredentialsConfigured())
}
