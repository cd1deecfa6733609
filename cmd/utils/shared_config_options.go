package utils

import (
	"fmt"
	"go/types"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stellar/go-stellar-sdk/support/config"

	"github.com/rampworks/ramp-gateway/internal/crashtracker"
	"github.com/rampworks/ramp-gateway/internal/monitor"
	"github.com/rampworks/ramp-gateway/internal/transak"
)

// TransakOptions are the provider credentials and gateway shared by every command that calls Transak.
type TransakOptions struct {
	Environment transak.Environment
	APIKey      string
	APISecret   string
}

// ClientOptions builds the options of a Transak client from the CLI options.
func (o TransakOptions) ClientOptions(monitorService monitor.MonitorServiceInterface) transak.ClientOptions {
	return transak.ClientOptions{
		Environment:    o.Environment,
		APIKey:         o.APIKey,
		APISecret:      o.APISecret,
		MonitorService: monitorService,
	}
}

// TransakConfigOptions are not required: the server starts without credentials and reports them as missing.
func TransakConfigOptions(opts *TransakOptions) []*config.ConfigOption {
	return []*config.ConfigOption{
		{
			Name:           "transak-environment",
			Usage:          `The Transak API gateway to use. Options: "STAGING", "PRODUCTION".`,
			OptType:        types.String,
			CustomSetValue: SetConfigOptionTransakEnvironment,
			ConfigKey:      &opts.Environment,
			FlagDefault:    "STAGING",
			Required:       false,
		},
		{
			Name:      "transak-api-key",
			Usage:     "The partner API key issued by Transak.",
			OptType:   types.String,
			ConfigKey: &opts.APIKey,
			Required:  false,
		},
		{
			Name:      "transak-api-secret",
			Usage:     "The partner API secret issued by Transak.",
			OptType:   types.String,
			ConfigKey: &opts.APISecret,
			Required:  false,
		},
	}
}

func CrashTrackerTypeConfigOption(targetPointer interface{}) *config.ConfigOption {
	return &config.ConfigOption{
		Name:           "crash-tracker-type",
		Usage:          `Crash tracker type. Options: "SENTRY", "DRY_RUN"`,
		OptType:        types.String,
		CustomSetValue: SetConfigOptionCrashTrackerType,
		ConfigKey:      targetPointer,
		FlagDefault:    string(crashtracker.CrashTrackerTypeDryRun),
		Required:       true,
	}
}

func MetricsTypeConfigOption(targetPointer interface{}) *config.ConfigOption {
	return &config.ConfigOption{
		Name:           "metrics-type",
		Usage:          `Metric monitor type. Options: "PROMETHEUS"`,
		OptType:        types.String,
		CustomSetValue: SetConfigOptionMetricType,
		ConfigKey:      targetPointer,
		FlagDefault:    string(monitor.MetricTypePrometheus),
		Required:       true,
	}
}

// BindTransakFlags binds the Transak options to the flags of cmd. Every command declaring them rebinds the same viper
// keys, so the running command must bind them again before reading the values.
func BindTransakFlags(cmd *cobra.Command, opts []*config.ConfigOption) error {
	for _, co := range opts {
		flag := cmd.PersistentFlags().Lookup(co.Name)
		if flag == nil {
			continue
		}
		if err := viper.BindPFlag(co.Name, flag); err != nil {
			return fmt.Errorf("binding flag %s: %w", co.Name, err)
		}
	}
	return nil
}
