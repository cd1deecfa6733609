package serve

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	supporthttp "github.com/stellar/go-stellar-sdk/support/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rampworks/ramp-gateway/internal/crashtracker"
	"github.com/rampworks/ramp-gateway/internal/monitor"
	"github.com/rampworks/ramp-gateway/internal/serve/httperror"
	"github.com/rampworks/ramp-gateway/internal/transak"
)

type mockHTTPServer struct {
	mock.Mock
}

func (m *mockHTTPServer) Run(conf supporthttp.Config) {
	m.Called(conf)
}

func Test_Serve(t *testing.T) {
	mockCrashTrackerClient := &crashtracker.MockCrashTrackerClient{}

	opts := ServeOptions{
		CrashTrackerClient: mockCrashTrackerClient,
		Environment:        "test",
		GitCommit:          "1234567890abcdef",
		Port:               8000,
		Version:            "x.y.z",
		TransakEnvironment: transak.Staging,
		TransakAPIKey:      "test-api-key",
		TransakAPISecret:   "test-api-secret",
		CorsAllowedOrigins: []string{"*"},
	}

	// Mock supportHTTPRun
	mHTTPServer := mockHTTPServer{}
	mHTTPServer.On("Run", mock.AnythingOfType("http.Config")).Run(func(args mock.Arguments) {
		conf, ok := args.Get(0).(supporthttp.Config)
		require.True(t, ok, "should be of type supporthttp.Config")
		assert.Equal(t, ":8000", conf.ListenAddr)
		assert.Equal(t, time.Minute*3, conf.TCPKeepAlive)
		assert.Equal(t, time.Second*50, conf.ShutdownGracePeriod)
		assert.Equal(t, time.Second*5, conf.ReadTimeout)
		assert.Equal(t, time.Second*45, conf.WriteTimeout)
		assert.Equal(t, time.Minute*2, conf.IdleTimeout)
		assert.Nil(t, conf.TLS)
		assert.NotNil(t, conf.Handler)
		conf.OnStopping()
	}).Once()
	mockCrashTrackerClient.On("FlushEvents", 2*time.Second).Return(false).Once()
	mockCrashTrackerClient.On("Recover").Once()
	mockCrashTrackerClient.On("LogAndReportErrors", mock.Anything, mock.Anything, mock.Anything).Maybe()

	// test and assert
	err := Serve(opts, &mHTTPServer)
	require.NoError(t, err)
	mHTTPServer.AssertExpectations(t)
	mockCrashTrackerClient.AssertExpectations(t)
}

func Test_Serve_invalidTransakEnvironment(t *testing.T) {
	mockCrashTrackerClient := &crashtracker.MockCrashTrackerClient{}
	mockCrashTrackerClient.On("FlushEvents", 2*time.Second).Return(false).Once()
	mockCrashTrackerClient.On("Recover").Once()
	mockCrashTrackerClient.On("LogAndReportErrors", mock.Anything, mock.Anything, mock.Anything).Maybe()

	mHTTPServer := mockHTTPServer{}

	err := Serve(ServeOptions{
		CrashTrackerClient: mockCrashTrackerClient,
		TransakEnvironment: transak.Environment("https://example.com"),
	}, &mHTTPServer)
	require.ErrorContains(t, err, "starting dependencies: creating Transak client")
	mHTTPServer.AssertNotCalled(t, "Run", mock.Anything)
	mockCrashTrackerClient.AssertExpectations(t)
}

func Test_ServeOptions_modes(t *testing.T) {
	assert.True(t, (&ServeOptions{Environment: "development"}).ExposeErrorDetail())
	assert.False(t, (&ServeOptions{Environment: "production"}).ExposeErrorDetail())
	assert.False(t, (&ServeOptions{}).ExposeErrorDetail())

	assert.True(t, (&ServeOptions{TransakAPIKey: "k", TransakAPISecret: "s"}).CredentialsConfigured())
	assert.False(t, (&ServeOptions{TransakAPIKey: "k"}).CredentialsConfigured())
	assert.False(t, (&ServeOptions{TransakAPISecret: "s"}).CredentialsConfigured())
}

func serveRequest(t *testing.T, handler http.Handler, method, path, body string, headers map[string]string) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(respBody)
}

func Test_handleHTTP_Health(t *testing.T) {
	mMonitorService := &monitor.MockMonitorService{}
	mLabels := monitor.HTTPRequestLabels{
		Status: "200",
		Route:  "/health",
		Method: "GET",
	}
	mMonitorService.On("MonitorHTTPRequestDuration", mock.AnythingOfType("time.Duration"), mLabels).Return(nil).Once()

	handlerMux := handleHTTP(ServeOptions{
		Environment:      "test",
		GitCommit:        "1234567890abcdef",
		MonitorService:   mMonitorService,
		Version:          "x.y.z",
		TransakAPIKey:    "test-api-key",
		TransakAPISecret: "test-api-secret",
	})

	resp, body := serveRequest(t, handlerMux, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	wantBody := `{
		"status": "pass",
		"version": "x.y.z",
		"service_id": "serve",
		"release_id": "1234567890abcdef",
		"services": {"transak_credentials": "pass"}
	}`
	assert.JSONEq(t, wantBody, body)
	mMonitorService.AssertExpectations(t)
}

func Test_handleHTTP_HealthWithoutCredentials(t *testing.T) {
	handlerMux := handleHTTP(ServeOptions{Version: "x.y.z", TransakAPIKey: "test-api-key"})

	resp, body := serveRequest(t, handlerMux, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.JSONEq(t, `{
		"status": "fail",
		"version": "x.y.z",
		"service_id": "serve",
		"services": {"transak_credentials": "fail"}
	}`, body)
}

func Test_handleHTTP_routes(t *testing.T) {
	transakClientMock := transak.NewMockClient(t)
	handlerMux := handleHTTP(ServeOptions{
		CorsAllowedOrigins: []string{"*"},
		TransakEnvironment: transak.Staging,
		transakClient:      transakClientMock,
	})

	t.Run("POST /auth", func(t *testing.T) {
		transakClientMock.
			On("GetAccessToken", mock.Anything).
			Return(&transak.AccessToken{AccessToken: "tok", ExpiresIn: 604800, TokenType: "Bearer"}, nil).
			Once()
		transakClientMock.On("Environment").Return(transak.Staging).Maybe()

		resp, body := serveRequest(t, handlerMux, http.MethodPost, "/auth", "", map[string]string{"Origin": "https://app.example.com"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"access_token": "tok", "expires_in": 604800, "token_type": "Bearer"}`, body)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type, Authorization", resp.Header.Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "86400", resp.Header.Get("Access-Control-Max-Age"))
	})

	t.Run("POST /create-widget-url without bearer token", func(t *testing.T) {
		resp, body := serveRequest(t, handlerMux, http.MethodPost, "/create-widget-url", `{}`, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.JSONEq(t, `{"error": "Missing or invalid authorization header"}`, body)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("POST /refresh-token without refresh token", func(t *testing.T) {
		resp, body := serveRequest(t, handlerMux, http.MethodPost, "/refresh-token", `{}`, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"error": "refresh_token is required"}`, body)
	})

	for _, path := range []string{"/auth", "/create-widget-url", "/refresh-token"} {
		t.Run("GET "+path+" is not allowed", func(t *testing.T) {
			resp, body := serveRequest(t, handlerMux, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
			assert.JSONEq(t, `{"error": "Method not allowed"}`, body)
			assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		})

		t.Run("OPTIONS "+path, func(t *testing.T) {
			resp, body := serveRequest(t, handlerMux, http.MethodOptions, path, "", map[string]string{"Origin": "https://app.example.com"})
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Empty(t, body)
			assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		})
	}

	t.Run("GET /widget", func(t *testing.T) {
		resp, body := serveRequest(t, handlerMux, http.MethodGet, "/widget", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
		assert.Contains(t, body, "<title>Buy Crypto</title>")
	})

	t.Run("unknown route", func(t *testing.T) {
		resp, body := serveRequest(t, handlerMux, http.MethodGet, "/unknown", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.JSONEq(t, `{"error": "Resource not found"}`, body)
	})
}

func Test_handleHTTP_errorDetailByEnvironment(t *testing.T) {
	testCases := []struct {
		environment string
		wantMessage string
	}{
		{environment: "development", wantMessage: "transak API error: status=500, message=HTTP 500"},
		{environment: "production", wantMessage: "Internal server error"},
	}

	for _, tc := range testCases {
		t.Run(tc.environment, func(t *testing.T) {
			mockCrashTrackerClient := &crashtracker.MockCrashTrackerClient{}
			mockCrashTrackerClient.On("LogAndReportErrors", mock.Anything, mock.Anything, "Authentication failed").Once()
			defer mockCrashTrackerClient.AssertExpectations(t)
			httperror.SetDefaultReportErrorFunc(mockCrashTrackerClient.LogAndReportErrors)
			transakClientMock := transak.NewMockClient(t)
			transakClientMock.
				On("GetAccessToken", mock.Anything).
				Return(nil, transak.RemoteError{StatusCode: http.StatusInternalServerError, Message: "HTTP 500"}).
				Once()
			transakClientMock.On("Environment").Return(transak.Staging).Maybe()

			handlerMux := handleHTTP(ServeOptions{
				Environment:   tc.environment,
				transakClient: transakClientMock,
			})

			resp, body := serveRequest(t, handlerMux, http.MethodPost, "/auth", "", nil)
			assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
			assert.JSONEq(t, `{"error": "Authentication failed", "message": "`+tc.wantMessage+`"}`, body)
		})
	}
}

func Test_handleHTTP_rateLimit(t *testing.T) {
	mockCrashTrackerClient := &crashtracker.MockCrashTrackerClient{}
	mockCrashTrackerClient.On("LogAndReportErrors", mock.Anything, mock.Anything, "Token refresh failed").Once()
	defer mockCrashTrackerClient.AssertExpectations(t)
	httperror.SetDefaultReportErrorFunc(mockCrashTrackerClient.LogAndReportErrors)

	transakClientMock := transak.NewMockClient(t)
	transakClientMock.
		On("RefreshAccessToken", mock.Anything, "refresh-1").
		Return(nil, errors.New("upstream unavailable")).
		Once()

	handlerMux := handleHTTP(ServeOptions{RateLimitPerMinute: 1, transakClient: transakClientMock})

	resp, _ := serveRequest(t, handlerMux, http.MethodPost, "/refresh-token", `{"refresh_token": "refresh-1"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, body := serveRequest(t, handlerMux, http.MethodPost, "/refresh-token", `{"refresh_token": "refresh-1"}`, nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.JSONEq(t, `{"error": "Too many requests"}`, body)

	// The rate limit only applies to the API routes.
	resp, _ = serveRequest(t, handlerMux, http.MethodGet, "/widget", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
