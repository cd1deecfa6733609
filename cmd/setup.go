package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/log"

	cmdUtils "github.com/rampworks/ramp-gateway/cmd/utils"
	"github.com/rampworks/ramp-gateway/internal/envfile"
	"github.com/rampworks/ramp-gateway/internal/transak"
	"github.com/rampworks/ramp-gateway/internal/ui"
	"github.com/rampworks/ramp-gateway/internal/utils"
)

const (
	defaultPort            = 8000
	credentialCheckTimeout = 30 * time.Second
)

// TransakClientFactory builds the client used to verify the credentials. It is replaced in tests.
type TransakClientFactory func(opts transak.ClientOptions) (transak.ClientInterface, error)

func defaultTransakClientFactory(opts transak.ClientOptions) (transak.ClientInterface, error) {
	return transak.NewClient(opts)
}

type SetupCommand struct{}

func (c *SetupCommand) Command(prompter ui.Prompter, newClient TransakClientFactory) *cobra.Command {
	if newClient == nil {
		newClient = defaultTransakClientFactory
	}

	return &cobra.Command{
		Use:   "setup",
		Short: "Interactively write the gateway configuration to the env file and verify the Transak credentials",
		Args:  cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmdUtils.DefaultPersistentPreRun(cmd, args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			envPath := cmdUtils.ResolveEnvFilePath()
			if globalOptions.EnvFile != "" {
				envPath = globalOptions.EnvFile
			}

			wizard := setupWizard{prompter: prompter, out: cmd.OutOrStdout(), newClient: newClient}
			err := wizard.run(ctx, envPath)
			if errors.Is(err, ui.ErrCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), "Setup cancelled.")
				return nil
			}
			return err
		},
	}
}

type setupWizard struct {
	prompter  ui.Prompter
	out       io.Writer
	newClient TransakClientFactory
}

func (w setupWizard) run(ctx context.Context, envPath string) error {
	current, err := envfile.Read(envPath)
	if err != nil {
		return fmt.Errorf("reading current configuration: %w", err)
	}

	fmt.Fprintf(w.out, "Configuring the ramp gateway in %s\n\n", envPath)

	cfg, err := w.promptConfig(current)
	if err != nil {
		return err
	}

	save, err := w.prompter.ConfirmWithDefault(fmt.Sprintf("Write the configuration to %s", envPath), ui.ConfirmationDefaultYes)
	if err != nil {
		return fmt.Errorf("confirming configuration: %w", err)
	}
	if !save {
		fmt.Fprintln(w.out, "Configuration discarded.")
		return nil
	}

	if err = envfile.Write(cfg, envPath); err != nil {
		return fmt.Errorf("writing configuration: %w", err)
	}
	log.Ctx(ctx).Infof("Configuration written to %s", envPath)

	if cfg.TransakAPIKey == "" || cfg.TransakAPISecret == "" {
		fmt.Fprintln(w.out, "Transak credentials are not set, the widget endpoints will answer with a configuration error.")
		return nil
	}

	check, err := w.prompter.ConfirmWithDefault("Verify the Transak credentials now", ui.ConfirmationDefaultYes)
	if err != nil {
		return fmt.Errorf("confirming credential check: %w", err)
	}
	if !check {
		return nil
	}

	environment, err := transak.ParseEnvironment(cfg.TransakEnvironment)
	if err != nil {
		return fmt.Errorf("parsing transak environment: %w", err)
	}
	client, err := w.newClient(transak.ClientOptions{
		Environment: environment,
		APIKey:      cfg.TransakAPIKey,
		APISecret:   cfg.TransakAPISecret,
	})
	if err != nil {
		return fmt.Errorf("creating Transak client: %w", err)
	}

	return checkCredentials(ctx, client, w.out)
}

func (w setupWizard) promptConfig(current envfile.Config) (envfile.Config, error) {
	var cfg envfile.Config
	var err error

	if cfg.Environment, err = w.prompter.Select("Runtime environment", cmdUtils.RuntimeEnvironments); err != nil {
		return cfg, fmt.Errorf("selecting runtime environment: %w", err)
	}

	defaultPortValue := strconv.Itoa(defaultPort)
	if current.Port > 0 {
		defaultPortValue = strconv.Itoa(current.Port)
	}
	portValue, err := w.prompter.Input("Port", defaultPortValue, validatePort)
	if err != nil {
		return cfg, fmt.Errorf("reading port: %w", err)
	}
	if cfg.Port, err = strconv.Atoi(portValue); err != nil {
		return cfg, fmt.Errorf("parsing port %q: %w", portValue, err)
	}

	defaultOrigins := "*"
	if current.CorsAllowedOrigins != "" {
		defaultOrigins = current.CorsAllowedOrigins
	}
	cfg.CorsAllowedOrigins, err = w.prompter.Input("CORS allowed origins (comma-separated)", defaultOrigins, func(value string) error {
		_, parseErr := cmdUtils.ParseCorsAllowedOrigins(value)
		return parseErr
	})
	if err != nil {
		return cfg, fmt.Errorf("reading cors allowed origins: %w", err)
	}

	if cfg.TransakEnvironment, err = w.prompter.Select("Transak environment", []string{transak.Staging.Name(), transak.Production.Name()}); err != nil {
		return cfg, fmt.Errorf("selecting transak environment: %w", err)
	}

	if cfg.TransakAPIKey, err = w.promptCredential("Transak API key", current.TransakAPIKey); err != nil {
		return cfg, err
	}
	if cfg.TransakAPISecret, err = w.promptCredential("Transak API secret", current.TransakAPISecret); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// promptCredential keeps the current value when the answer is empty.
func (w setupWizard) promptCredential(label, current string) (string, error) {
	if current != "" {
		label = fmt.Sprintf("%s [%s, empty keeps it]", label, utils.MaskSecret(current))
	}

	value, err := w.prompter.Secret(label, nil)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", label, err)
	}
	if value == "" {
		return current, nil
	}
	return value, nil
}

func validatePort(value string) error {
	port, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}

// checkCredentials requests an access token and prints it masked.
func checkCredentials(ctx context.Context, client transak.ClientInterface, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, credentialCheckTimeout)
	defer cancel()

	token, err := client.GetAccessToken(ctx)
	if err != nil {
		var remoteErr transak.RemoteError
		if errors.As(err, &remoteErr) && (remoteErr.StatusCode == http.StatusUnauthorized || remoteErr.StatusCode == http.StatusForbidden) {
			return fmt.Errorf("the Transak %s environment rejected the credentials: %w", client.Environment().Name(), err)
		}
		return fmt.Errorf("checking Transak credentials: %w", err)
	}

	fmt.Fprintf(out, "Credentials accepted by the Transak %s environment.\n", client.Environment().Name())
	fmt.Fprintf(out, "Access token: %s\n", utils.MaskSecret(token.AccessToken))
	if token.ExpiresIn > 0 {
		fmt.Fprintf(out, "Expires in: %s\n", time.Duration(token.ExpiresIn)*time.Second)
	}

	return nil
}
