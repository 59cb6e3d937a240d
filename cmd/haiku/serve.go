package main

import (
	"github.com/alwitt/haiku/ui"
	"github.com/apex/log"
	"github.com/spf13/cobra"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the browser UI",
	Long: `Start the browser UI.

The UI provides:
  - /                - haiku generator with the saved history
  - /api/haikus      - JSON haiku listing (q, limit)
  - /api/haikus/{id} - JSON single haiku
  - /healthz         - storage and generator status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		storage, err := openStorage()
		if err != nil {
			return err
		}

		params := ui.ServerParams{Storage: storage, HistoryLimit: appCfg.History.Limit}
		params.Generator, params.GeneratorErr = newGenerator()
		if params.GeneratorErr != nil {
			log.WithError(params.GeneratorErr).Warn("Haiku generation unavailable")
		}

		srv, err := ui.NewServer(params)
		if err != nil {
			return err
		}

		listen := appCfg.Server.Listen
		if serveListen != "" {
			listen = serveListen
		}
		return srv.Run(cmd.Context(), listen)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (default: server.listen)")

	rootCmd.AddCommand(serveCmd)
}
