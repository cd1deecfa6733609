package cmd

import (
	"go/types"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	cmdUtils "github.com/rampworks/ramp-gateway/cmd/utils"
	"github.com/rampworks/ramp-gateway/internal/monitor"
	"github.com/rampworks/ramp-gateway/internal/ui"
)

// globalOptions is a variable that holds the global CLI options that can be
// applied to any command or subcommand.
var globalOptions cmdUtils.GlobalOptionsType

func rootCmd() *cobra.Command {
	configOpts := config.ConfigOptions{
		{
			Name:           "log-level",
			Usage:          `The log level used in this project. Options: "TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL", or "PANIC".`,
			OptType:        types.String,
			FlagDefault:    "TRACE",
			ConfigKey:      &globalOptions.LogLevel,
			CustomSetValue: cmdUtils.SetConfigOptionLogLevel,
			Required:       true,
		},
		{
			Name:      "sentry-dsn",
			Usage:     "The DSN (client key) of the Sentry project. If not provided, Sentry will not be used.",
			OptType:   types.String,
			ConfigKey: &globalOptions.SentryDSN,
			Required:  false,
		},
		{
			Name:           "environment",
			Usage:          `The runtime mode of the gateway. Options: "development", "staging", "production". Error details are only exposed in "development".`,
			OptType:        types.String,
			FlagDefault:    "development",
			ConfigKey:      &globalOptions.Environment,
			CustomSetValue: cmdUtils.SetConfigOptionRuntimeEnvironment,
			Required:       true,
		},
		{
			Name:      "env-file",
			Usage:     "The env file the configuration is loaded from, and the file written by the setup command. Defaults to ENV_FILE, then to .env in the working directory.",
			OptType:   types.String,
			ConfigKey: &globalOptions.EnvFile,
			Required:  false,
		},
	}

	rootCmd := &cobra.Command{
		Use:     "ramp-gateway",
		Short:   "Transak ramp widget gateway",
		Long:    "The ramp gateway keeps the Transak partner credentials on the server, creating widget sessions on behalf of the browser.",
		Version: globalOptions.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			configOpts.Require()
			err := configOpts.SetValues()
			if err != nil {
				log.Fatalf("Error setting values of config options: %s", err.Error())
			}
			log.Info("Version: ", globalOptions.Version)
			log.Info("GitCommit: ", globalOptions.GitCommit)
		},
		Run: func(cmd *cobra.Command, args []string) {
			err := cmd.Help()
			if err != nil {
				log.Fatalf("Error calling help command: %s", err.Error())
			}
		},
	}

	err := configOpts.Init(rootCmd)
	if err != nil {
		log.Fatalf("Error initializing a config option: %s", err.Error())
	}

	return rootCmd
}

// SetupCLI sets up the CLI and returns the root command with the subcommands
// attached.
func SetupCLI(version, gitCommit string) *cobra.Command {
	globalOptions.Version = version
	globalOptions.GitCommit = gitCommit
	rootCmd := rootCmd()

	// Add subcommands
	rootCmd.AddCommand((&ServeCommand{}).Command(&ServerService{}, &monitor.MonitorService{}))
	rootCmd.AddCommand((&SetupCommand{}).Command(ui.Terminal{}, nil))
	rootCmd.AddCommand((&AuthCheckCommand{}).Command(nil))

	return rootCmd
}
