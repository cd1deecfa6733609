package utils

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/rampworks/ramp-gateway/internal/crashtracker"
	"github.com/rampworks/ramp-gateway/internal/monitor"
	"github.com/rampworks/ramp-gateway/internal/transak"
	"github.com/rampworks/ramp-gateway/internal/utils"
)

// RuntimeEnvironments are the accepted values of the `environment` option.
var RuntimeEnvironments = []string{"development", "staging", "production"}

func SetConfigOptionMetricType(co *config.ConfigOption) error {
	metricType := viper.GetString(co.Name)

	metricTypeParsed, err := monitor.ParseMetricType(metricType)
	if err != nil {
		return fmt.Errorf("couldn't parse metric type: %w", err)
	}

	*(co.ConfigKey.(*monitor.MetricType)) = metricTypeParsed
	return nil
}

func SetConfigOptionCrashTrackerType(co *config.ConfigOption) error {
	ctType := viper.GetString(co.Name)

	ctTypeParsed, err := crashtracker.ParseCrashTrackerType(ctType)
	if err != nil {
		return fmt.Errorf("couldn't parse crash tracker type: %w", err)
	}

	*(co.ConfigKey.(*crashtracker.CrashTrackerType)) = ctTypeParsed
	return nil
}

func SetConfigOptionTransakEnvironment(co *config.ConfigOption) error {
	environment, err := transak.ParseEnvironment(viper.GetString(co.Name))
	if err != nil {
		return fmt.Errorf("couldn't parse transak environment: %w", err)
	}

	key, ok := co.ConfigKey.(*transak.Environment)
	if !ok {
		return fmt.Errorf("configKey has an invalid type %T", co.ConfigKey)
	}
	*key = environment
	return nil
}

// SetConfigOptionRuntimeEnvironment accepts one of RuntimeEnvironments, case-insensitive.
func SetConfigOptionRuntimeEnvironment(co *config.ConfigOption) error {
	environment := strings.ToLower(strings.TrimSpace(viper.GetString(co.Name)))
	if !slices.Contains(RuntimeEnvironments, environment) {
		return fmt.Errorf("invalid environment %q, expected one of %v", environment, RuntimeEnvironments)
	}

	key, ok := co.ConfigKey.(*string)
	if !ok {
		return fmt.Errorf("configKey has an invalid type %T", co.ConfigKey)
	}
	*key = environment
	return nil
}

func SetConfigOptionLogLevel(co *config.ConfigOption) error {
	// parse string to logLevel object
	logLevelStr := viper.GetString(co.Name)
	logLevel, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		return fmt.Errorf("couldn't parse log level: %w", err)
	}

	// update the configKey
	key, ok := co.ConfigKey.(*logrus.Level)
	if !ok {
		return fmt.Errorf("configKey has an invalid type %T", co.ConfigKey)
	}
	*key = logLevel

	// Log for debugging
	if config.IsExplicitlySet(co) {
		log.Debugf("Setting log level to: %q", logLevel)
		log.DefaultLogger.SetLevel(*key)
	} else {
		log.Debugf("Using default log level: %q", logLevel)
	}
	return nil
}

// SetCorsAllowedOrigins parses a comma-separated list of origins with ParseCorsAllowedOrigins.
func SetCorsAllowedOrigins(co *config.ConfigOption) error {
	corsAllowedOrigins, err := ParseCorsAllowedOrigins(viper.GetString(co.Name))
	if err != nil {
		return err
	}
	if slices.Contains(corsAllowedOrigins, "*") {
		log.Warn(`The value "*" for the CORS Allowed Origins is too permissive and not recommended in production.`)
	}

	key, ok := co.ConfigKey.(*[]string)
	if !ok {
		return fmt.Errorf("the expected type for this config key is a string slice, but got a %T instead", co.ConfigKey)
	}
	*key = corsAllowedOrigins

	return nil
}

// ParseCorsAllowedOrigins splits a comma-separated list of origins. "*" allows every origin and entries such as
// `https://*.example.com` allow every subdomain.
func ParseCorsAllowedOrigins(value string) ([]string, error) {
	if strings.TrimSpace(value) == "" {
		return nil, fmt.Errorf("cors allowed addresses cannot be empty")
	}

	corsAllowedOrigins := strings.Split(value, ",")
	for i, address := range corsAllowedOrigins {
		address = strings.TrimSpace(address)
		corsAllowedOrigins[i] = address

		switch {
		case address == "*":
		case strings.Contains(address, "*"):
			if _, err := url.ParseRequestURI(address); err != nil {
				return nil, fmt.Errorf("error parsing cors addresses: %w", err)
			}
		default:
			if err := utils.ValidateOrigin(address); err != nil {
				return nil, fmt.Errorf("error parsing cors addresses: %w", err)
			}
		}
	}

	return corsAllowedOrigins, nil
}
