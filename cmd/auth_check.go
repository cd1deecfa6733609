package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	cmdUtils "github.com/rampworks/ramp-gateway/cmd/utils"
)

type AuthCheckCommand struct{}

// Command returns the auth-check command, which exchanges the configured credentials for an access token.
func (c *AuthCheckCommand) Command(newClient TransakClientFactory) *cobra.Command {
	if newClient == nil {
		newClient = defaultTransakClientFactory
	}

	transakOpts := cmdUtils.TransakOptions{}
	transakConfigOpts := cmdUtils.TransakConfigOptions(&transakOpts)
	configOpts := config.ConfigOptions(transakConfigOpts)

	cmd := &cobra.Command{
		Use:   "auth-check",
		Short: "Verify the Transak credentials by requesting an access token",
		Args:  cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmdUtils.DefaultPersistentPreRun(cmd, args)

			if err := cmdUtils.BindTransakFlags(cmd, transakConfigOpts); err != nil {
				log.Fatalf("Error binding Transak flags: %s", err.Error())
			}
			configOpts.Require()
			if err := configOpts.SetValues(); err != nil {
				log.Fatalf("Error setting values of config options: %s", err.Error())
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			client, err := newClient(transakOpts.ClientOptions(nil))
			if err != nil {
				return fmt.Errorf("creating Transak client: %w", err)
			}

			return checkCredentials(ctx, client, cmd.OutOrStdout())
		},
	}

	if err := configOpts.Init(cmd); err != nil {
		log.Fatalf("Error initializing a config option: %s", err.Error())
	}

	return cmd
}
