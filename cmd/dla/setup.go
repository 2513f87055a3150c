package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/conn-castle/doc-layer/internal/credentials"
	"github.com/conn-castle/doc-layer/internal/discovery"
	"github.com/conn-castle/doc-layer/internal/hostconfig"
	"github.com/conn-castle/doc-layer/internal/messages"
	"github.com/conn-castle/doc-layer/internal/reconcile"
	"github.com/conn-castle/doc-layer/internal/setup"
)

var runSetup = setup.Run

func newSetupCmd() *cobra.Command {
	var dryRun bool
	var global bool
	cmd := &cobra.Command{
		Use:   messages.SetupUse,
		Short: messages.SetupShort,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New(messages.SetupMissingURL)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := getwd()
			if err != nil {
				return err
			}
			return runSetup(cmd.Context(), hostconfig.RealSystem{}, root, setup.Options{
				Mode:        reconcile.ModeSetup,
				ServerURL:   args[0],
				DryRun:      dryRun,
				Global:      global,
				Version:     Version,
				Credentials: credentials.NewEnvProvider(root),
				Discoverer:  &discovery.MCPDiscoverer{Version: Version},
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, messages.FlagDryRun)
	cmd.Flags().BoolVar(&global, "global", false, messages.FlagGlobal)
	return cmd
}
