package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/doc-layer/internal/credentials"
	"github.com/conn-castle/doc-layer/internal/discovery"
	"github.com/conn-castle/doc-layer/internal/hostconfig"
	"github.com/conn-castle/doc-layer/internal/messages"
	"github.com/conn-castle/doc-layer/internal/reconcile"
	"github.com/conn-castle/doc-layer/internal/setup"
)

func newRescanCmd() *cobra.Command {
	var dryRun bool
	var global bool
	cmd := &cobra.Command{
		Use:   messages.RescanUse,
		Short: messages.RescanShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := getwd()
			if err != nil {
				return err
			}
			return runSetup(cmd.Context(), hostconfig.RealSystem{}, root, setup.Options{
				Mode:        reconcile.ModeRescan,
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
