package serve

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	supporthttp "github.com/stellar/go-stellar-sdk/support/http"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/rampworks/ramp-gateway/internal/crashtracker"
	"github.com/rampworks/ramp-gateway/internal/monitor"
	"github.com/rampworks/ramp-gateway/internal/serve/httpclient"
	"github.com/rampworks/ramp-gateway/internal/serve/httperror"
	"github.com/rampworks/ramp-gateway/internal/serve/httphandler"
	"github.com/rampworks/ramp-gateway/internal/serve/middleware"
	"github.com/rampworks/ramp-gateway/internal/transak"
	"github.com/rampworks/ramp-gateway/internal/utils"
)

const (
	ServiceID = "serve"
	// DevelopmentEnvironment is the runtime mode in which error details are returned to the caller.
	DevelopmentEnvironment = "development"
)

type HTTPServerInterface interface {
	Run(conf supporthttp.Config)
}

type HTTPServer struct{}

func (h *HTTPServer) Run(conf supporthttp.Config) {
	supporthttp.Run(conf)
}

type ServeOptions struct {
	Environment        string
	GitCommit          string
	Port               int
	Version            string
	MonitorService     monitor.MonitorServiceInterface
	CrashTrackerClient crashtracker.CrashTrackerClient
	CorsAllowedOrigins []string
	// RateLimitPerMinute is the number of API requests accepted per client IP and minute, 0 disables the limit.
	RateLimitPerMinute int
	TransakEnvironment transak.Environment
	TransakAPIKey      string
	TransakAPISecret   string
	WidgetPageTitle    string
	transakClient      transak.ClientInterface
}

// ExposeErrorDetail reports whether the underlying error messages are returned to the caller.
func (opts *ServeOptions) ExposeErrorDetail() bool {
	return opts.Environment == DevelopmentEnvironment
}

// CredentialsConfigured reports whether both Transak credentials are present.
func (opts *ServeOptions) CredentialsConfigured() bool {
	return opts.TransakAPIKey != "" && opts.TransakAPISecret != ""
}

// SetupDependencies uses the serve options to setup the dependencies for the server.
func (opts *ServeOptions) SetupDependencies() error {
	// Setup crash tracker:
	// Call crash tracker FlushEvents to flush buffered events before the server terminates
	defer opts.CrashTrackerClient.FlushEvents(2 * time.Second)
	// Call crash tracker Recover for recover from unhandled panics
	defer opts.CrashTrackerClient.Recover()
	// Set crash tracker LogAndReportErrors as DefaultReportErrorFunc
	httperror.SetDefaultReportErrorFunc(opts.CrashTrackerClient.LogAndReportErrors)

	if opts.transakClient == nil {
		transakClient, err := transak.NewClient(transak.ClientOptions{
			Environment:    opts.TransakEnvironment,
			APIKey:         opts.TransakAPIKey,
			APISecret:      opts.TransakAPISecret,
			HTTPClient:     httpclient.DefaultClient(),
			MonitorService: opts.MonitorService,
		})
		if err != nil {
			return fmt.Errorf("creating Transak client: %w", err)
		}
		opts.transakClient = transakClient
	}

	if !opts.CredentialsConfigured() {
		log.Warnf("Transak credentials are not configured, token and widget requests will fail until %s and %s are set",
			transak.ErrMissingAPIKey.Option, transak.ErrMissingAPISecret.Option)
	} else {
		log.Infof("Using Transak %s gateway with API key %s", opts.TransakEnvironment.Name(), utils.MaskSecret(opts.TransakAPIKey))
	}

	return nil
}

func Serve(opts ServeOptions, httpServer HTTPServerInterface) error {
	err := opts.SetupDependencies()
	if err != nil {
		return fmt.Errorf("starting dependencies: %w", err)
	}

	// Start the server
	listenAddr := fmt.Sprintf(":%d", opts.Port)
	serverConfig := supporthttp.Config{
		ListenAddr:          listenAddr,
		Handler:             handleHTTP(opts),
		TCPKeepAlive:        time.Minute * 3,
		ShutdownGracePeriod: time.Second * 50,
		ReadTimeout:         time.Second * 5,
		WriteTimeout:        time.Second * 45,
		IdleTimeout:         time.Minute * 2,
		OnStarting: func() {
			log.Info("Starting Ramp Gateway Server")
			log.Infof("Listening on %s", listenAddr)
		},
		OnStopping: func() {
			log.Info("Stopping Ramp Gateway Server")
		},
	}
	httpServer.Run(serverConfig)
	return nil
}

func handleHTTP(o ServeOptions) *chi.Mux {
	mux := chi.NewMux()

	// Middleware
	mux.Use(middleware.CorsMiddleware(o.CorsAllowedOrigins))
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.RecoverHandler)
	if o.MonitorService != nil {
		mux.Use(middleware.MetricsRequestHandler(o.MonitorService))
	}

	mux.MethodNotAllowed(func(rw http.ResponseWriter, _ *http.Request) {
		httperror.MethodNotAllowed().Render(rw)
	})
	mux.NotFound(func(rw http.ResponseWriter, _ *http.Request) {
		httperror.NotFound("", nil).Render(rw)
	})

	exposeErrorDetail := o.ExposeErrorDetail()

	// API routes, forwarded to the Transak gateway
	mux.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitMiddleware(o.RateLimitPerMinute))

		r.Post("/auth", httphandler.AuthHandler{
			TransakClient:     o.transakClient,
			ExposeErrorDetail: exposeErrorDetail,
		}.PostAuth)

		r.Post("/create-widget-url", httphandler.WidgetURLHandler{
			TransakClient:     o.transakClient,
			AllowedOrigins:    o.CorsAllowedOrigins,
			ExposeErrorDetail: exposeErrorDetail,
			MonitorService:    o.MonitorService,
		}.PostWidgetURL)

		r.Post("/refresh-token", httphandler.RefreshTokenHandler{
			TransakClient:     o.transakClient,
			ExposeErrorDetail: exposeErrorDetail,
		}.PostRefreshToken)
	})

	mux.Get("/health", httphandler.HealthHandler{
		ReleaseID:             o.GitCommit,
		ServiceID:             ServiceID,
		Version:               o.Version,
		CredentialsConfigured: o.CredentialsConfigured(),
	}.ServeHTTP)

	mux.Get("/widget", httphandler.WidgetPageHandler{
		Title:       o.WidgetPageTitle,
		Environment: o.TransakEnvironment,
	}.GetWidgetPage)

	return mux
}
