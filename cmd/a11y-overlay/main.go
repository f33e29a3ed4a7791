package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/billymcdowell/accessibilty-scanner/internal/config"
	"github.com/billymcdowell/accessibilty-scanner/internal/logging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Logger.Errorw("Command failed", "error", err)
		logging.Sync()
		os.Exit(1)
	}
	logging.Sync()
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "a11y-overlay",
		Short: "Accessibility findings overlay: layout engine, renderer and MCP server",
		Long: `a11y-overlay lays out accessibility checker findings on a page screenshot.

Findings that share a bounding box are merged into one group with a count
badge; groups whose badges or boxes collide are fanned out by a cascade
index so every badge stays readable. The result can be printed as JSON,
drawn onto the screenshot, or served to MCP clients over stdio.

Environment variables:
  A11Y_OVERLAY_LOG_LEVEL=debug    Enable debug logging
  A11Y_OVERLAY_<SECTION>_<KEY>    Override a config value, e.g.
                                  A11Y_OVERLAY_LAYOUT_CLUSTER=transitive`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug := flags.debug || strings.EqualFold(os.Getenv("A11Y_OVERLAY_LOG_LEVEL"), "debug")
			if err := logging.InitLogger(debug); err != nil {
				return fmt.Errorf("failed to initialise logging: %w", err)
			}
			return nil
		},
	}
	root.SetVersionTemplate("a11y-overlay {{.Version}}\n")

	root.PersistentFlags().StringVar(&flags.configPath, "config", "",
		"Config file (default: ./a11y-overlay.yaml or .json if present)")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newServeCmd(flags),
		newLayoutCmd(flags),
		newRenderCmd(flags),
		newVersionCmd(),
	)
	return root
}

// loadConfig loads and validates the configuration for a command run.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.debug {
		cfg.Log.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Log.Debug && !flags.debug {
		if err := logging.InitLogger(true); err != nil {
			return nil, err
		}
	}
	logging.Logger.Debugw("Configuration loaded", "config", flags.configPath, "filter", cfg.Layout.Filter, "cluster", cfg.Layout.Cluster)
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "a11y-overlay %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
}
