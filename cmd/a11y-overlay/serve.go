package main

import (
	"github.com/spf13/cobra"

	"github.com/billymcdowell/accessibilty-scanner/internal/logging"
	"github.com/billymcdowell/accessibilty-scanner/internal/server"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Long: `Start the Model Context Protocol server.

The server reads JSON-RPC 2.0 requests on stdin and writes responses on
stdout. Logs go to stderr. Configure it in your MCP client, for example:

  {"command": "a11y-overlay", "args": ["serve"]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			server.Version = Version
			logging.Logger.Debugw("Starting MCP server", "version", Version, "built", BuildTime, "commit", GitCommit)

			return server.New(cfg).Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
