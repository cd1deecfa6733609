package cmd

import (
	"context"
	"go/types"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	cmdUtils "github.com/rampworks/ramp-gateway/cmd/utils"
	"github.com/rampworks/ramp-gateway/internal/crashtracker"
	"github.com/rampworks/ramp-gateway/internal/monitor"
	"github.com/rampworks/ramp-gateway/internal/serve"
)

type ServeCommand struct{}

type ServerServiceInterface interface {
	StartServe(opts serve.ServeOptions, httpServer serve.HTTPServerInterface)
	StartMetricsServe(opts serve.MetricsServeOptions, httpServer serve.HTTPServerInterface)
}

type ServerService struct{}

// Making sure that ServerService implements ServerServiceInterface
var _ ServerServiceInterface = (*ServerService)(nil)

func (s *ServerService) StartServe(opts serve.ServeOptions, httpServer serve.HTTPServerInterface) {
	err := serve.Serve(opts, httpServer)
	if err != nil {
		log.Fatalf("Error starting server: %s", err.Error())
	}
}

func (s *ServerService) StartMetricsServe(opts serve.MetricsServeOptions, httpServer serve.HTTPServerInterface) {
	err := serve.MetricsServe(opts, httpServer)
	if err != nil {
		log.Fatalf("Error starting metrics server: %s", err.Error())
	}
}

func (c *ServeCommand) Command(serverService ServerServiceInterface, monitorService monitor.MonitorServiceInterface) *cobra.Command {
	serveOpts := serve.ServeOptions{}

	configOpts := config.ConfigOptions{
		{
			Name:        "port",
			Usage:       "Port where the server will be listening on",
			OptType:     types.Int,
			ConfigKey:   &serveOpts.Port,
			FlagDefault: 8000,
			Required:    true,
		},
		{
			Name:           "cors-allowed-origins",
			Usage:          `Cors URLs that are allowed to access the endpoints, separated by ","`,
			OptType:        types.String,
			CustomSetValue: cmdUtils.SetCorsAllowedOrigins,
			ConfigKey:      &serveOpts.CorsAllowedOrigins,
			FlagDefault:    "*",
			Required:       false,
		},
		{
			Name:        "rate-limit-requests-per-minute",
			Usage:       "The number of API requests accepted per client IP and minute. Use 0 to disable the limit.",
			OptType:     types.Int,
			ConfigKey:   &serveOpts.RateLimitPerMinute,
			FlagDefault: 60,
			Required:    false,
		},
		{
			Name:        "widget-page-title",
			Usage:       "The title of the page served at /widget.",
			OptType:     types.String,
			ConfigKey:   &serveOpts.WidgetPageTitle,
			FlagDefault: "Buy Crypto",
			Required:    false,
		},
	}

	// transak options
	transakOpts := cmdUtils.TransakOptions{}
	transakConfigOpts := cmdUtils.TransakConfigOptions(&transakOpts)
	configOpts = append(configOpts, transakConfigOpts...)

	// crash tracker options
	crashTrackerOptions := crashtracker.CrashTrackerOptions{}
	configOpts = append(configOpts, cmdUtils.CrashTrackerTypeConfigOption(&crashTrackerOptions.CrashTrackerType))

	// metrics server options
	metricsServeOpts := serve.MetricsServeOptions{}
	configOpts = append(configOpts,
		cmdUtils.MetricsTypeConfigOption(&metricsServeOpts.MetricType),
		&config.ConfigOption{
			Name:        "metrics-port",
			Usage:       "Port where the metrics server will be listening on",
			OptType:     types.Int,
			ConfigKey:   &metricsServeOpts.Port,
			FlagDefault: 8002,
			Required:    true,
		})

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ramp gateway API and the widget page",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmdUtils.DefaultPersistentPreRun(cmd, args)

			// Validate & ingest input parameters
			err := cmdUtils.BindTransakFlags(cmd, transakConfigOpts)
			if err != nil {
				log.Fatalf("Error binding Transak flags: %s", err.Error())
			}
			configOpts.Require()
			err = configOpts.SetValues()
			if err != nil {
				log.Fatalf("Error setting values of config options: %s", err.Error())
			}

			// Initializing monitor service
			metricOptions := monitor.MetricOptions{
				MetricType:  metricsServeOpts.MetricType,
				Environment: globalOptions.Environment,
			}
			err = monitorService.Start(metricOptions)
			if err != nil {
				log.Fatalf("Error creating monitor service: %s", err.Error())
			}

			// Inject crash tracker options dependencies
			globalOptions.PopulateCrashTrackerOptions(&crashTrackerOptions)

			// Inject server dependencies
			serveOpts.Environment = globalOptions.Environment
			serveOpts.GitCommit = globalOptions.GitCommit
			serveOpts.Version = globalOptions.Version
			serveOpts.MonitorService = monitorService
			serveOpts.TransakEnvironment = transakOpts.Environment
			serveOpts.TransakAPIKey = transakOpts.APIKey
			serveOpts.TransakAPISecret = transakOpts.APISecret

			// Inject metrics server dependencies
			metricsServeOpts.MonitorService = monitorService
			metricsServeOpts.Environment = globalOptions.Environment
		},
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			crashTrackerClient, err := crashtracker.GetClient(ctx, crashTrackerOptions)
			if err != nil {
				log.Ctx(ctx).Fatalf("Error creating crash tracker client: %s", err.Error())
			}
			serveOpts.CrashTrackerClient = crashTrackerClient

			log.Ctx(ctx).Info("Starting Metrics Server...")
			go serverService.StartMetricsServe(metricsServeOpts, &serve.HTTPServer{})

			log.Ctx(ctx).Info("Starting Ramp Gateway Server...")
			serverService.StartServe(serveOpts, &serve.HTTPServer{})
		},
	}

	err := configOpts.Init(cmd)
	if err != nil {
		log.Fatalf("Error initializing a config option: %s", err.Error())
	}

	return cmd
}
