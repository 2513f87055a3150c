package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conn-castle/doc-layer/internal/corpus"
	"github.com/conn-castle/doc-layer/internal/credentials"
	"github.com/conn-castle/doc-layer/internal/discovery"
	"github.com/conn-castle/doc-layer/internal/doctools"
	"github.com/conn-castle/doc-layer/internal/messages"
)

var runDocServer = doctools.Run

func newServeCmd() *cobra.Command {
	var serverURL string
	var corpusPath string
	var logLevel string
	cmd := &cobra.Command{
		Use:   messages.ServeUse,
		Short: messages.ServeShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := getwd()
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), logLevel)

			if corpusPath == "" {
				manifest, err := corpus.LoadManifest(corpus.ManifestPath(root))
				if err != nil {
					return err
				}
				corpusPath = manifest.CachePath
			}
			if !filepath.IsAbs(corpusPath) {
				corpusPath = filepath.Join(root, corpusPath)
			}

			token := ""
			if serverURL != "" {
				normalized, warns, err := discovery.NormalizeURL(serverURL)
				if err != nil {
					return err
				}
				for _, w := range warns {
					logger.Warn(w.Message)
				}
				serverURL = normalized
				token, err = credentials.NewEnvProvider(root).Token()
				if err != nil {
					return err
				}
			}

			return runDocServer(cmd.Context(), doctools.Options{
				Version:    Version,
				CorpusPath: corpusPath,
				RemoteURL:  serverURL,
				Token:      token,
				Logger:     logger,
			})
		},
	}
	cmd.Flags().StringVar(&serverURL, "url", "", messages.FlagServeURL)
	cmd.Flags().StringVar(&corpusPath, "corpus", "", messages.FlagCorpus)
	cmd.Flags().StringVar(&logLevel, "log-level", "info", messages.FlagLogLevel)
	return cmd
}
