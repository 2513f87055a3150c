package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/doc-layer/internal/corpus"
	"github.com/conn-castle/doc-layer/internal/messages"
)

func newFetchCmd() *cobra.Command {
	var manifestPath string
	var logLevel string
	cmd := &cobra.Command{
		Use:   messages.FetchUse,
		Short: messages.FetchShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := getwd()
			if err != nil {
				return err
			}
			if manifestPath == "" {
				manifestPath = corpus.ManifestPath(root)
			}
			manifest, err := corpus.LoadManifest(manifestPath)
			if err != nil {
				return err
			}

			fetcher := &corpus.Fetcher{
				Logger:      newLogger(cmd.ErrOrStderr(), logLevel),
				Concurrency: manifest.Concurrency,
			}
			result, err := fetcher.Fetch(cmd.Context(), manifest.Endpoint, manifest.Products)
			if err != nil {
				return err
			}

			cachePath := manifest.CachePath
			if !filepath.IsAbs(cachePath) {
				cachePath = filepath.Join(root, cachePath)
			}
			if err := corpus.WriteStore(cachePath, result.Documents); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.FetchCompleteFmt+"\n", len(result.Documents), cachePath)
			if len(result.Failed) > 0 {
				_, _ = color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), messages.FetchFailedShardsFmt+"\n", len(result.Failed))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&manifestPath, "manifest", "", messages.FlagManifest)
	cmd.Flags().StringVar(&logLevel, "log-level", "info", messages.FlagLogLevel)
	return cmd
}
