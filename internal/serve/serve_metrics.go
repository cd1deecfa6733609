package serve

import (
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"
	supporthttp "github.com/stellar/go-stellar-sdk/support/http"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/rampworks/ramp-gateway/internal/monitor"
)

type MetricsServeOptions struct {
	Port        int
	Environment string

	MonitorService monitor.MonitorServiceInterface
	MetricType     monitor.MetricType
}

func MetricsServe(opts MetricsServeOptions, httpServer HTTPServerInterface) error {
	metricsHandler, err := handleMetricsHTTP(opts)
	if err != nil {
		return fmt.Errorf("creating metrics handler: %w", err)
	}

	metricsAddr := fmt.Sprintf(":%d", opts.Port)
	metricsServerConfig := supporthttp.Config{
		ListenAddr:   metricsAddr,
		Handler:      metricsHandler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  2 * time.Minute,
		OnStarting: func() {
			log.Infof("Starting %s Metrics Server", opts.MetricType)
			log.Infof("Listening on %s", metricsAddr)
		},
		OnStopping: func() {
			log.Infof("Stopping %s Metrics Server", opts.MetricType)
		},
	}

	httpServer.Run(metricsServerConfig)
	return nil
}

func handleMetricsHTTP(opts MetricsServeOptions) (*chi.Mux, error) {
	mux := chi.NewMux()

	metricHTTPHandler, err := opts.MonitorService.GetMetricHTTPHandler()
	if err != nil {
		return nil, fmt.Errorf("getting metric http.handler: %w", err)
	}

	mux.Handle("/metrics", metricHTTPHandler)
	return mux, nil
}
