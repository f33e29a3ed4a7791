package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/billymcdowell/accessibilty-scanner/internal/config"
	"github.com/billymcdowell/accessibilty-scanner/internal/layout"
	"github.com/billymcdowell/accessibilty-scanner/internal/report"
)

// layoutFlags select the severity filter and clustering mode.
type layoutFlags struct {
	filter  string
	cluster string
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.filter, "filter", "",
		"Severity filter: all, violation, potentialviolation, recommendation, potentialrecommendation, manual (default from config)")
	cmd.Flags().StringVar(&f.cluster, "cluster", "",
		"Clustering: single-hop or transitive (default from config)")
}

// options returns the configured layout options with the flags applied.
func (f *layoutFlags) options(cfg *config.Config) (layout.Options, error) {
	opts := cfg.LayoutOptions()
	if f.filter != "" {
		filter, err := layout.ParseFilter(f.filter)
		if err != nil {
			return opts, err
		}
		opts.Filter = filter
	}
	if f.cluster != "" {
		mode, err := layout.ParseClusterMode(f.cluster)
		if err != nil {
			return opts, err
		}
		opts.Clustering = mode
	}
	return opts, nil
}

// computeLayout loads reportPath and lays it out.
func computeLayout(flags *rootFlags, lf *layoutFlags, reportPath string) (*config.Config, *layout.Result, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, nil, err
	}
	opts, err := lf.options(cfg)
	if err != nil {
		return nil, nil, err
	}
	rep, err := report.LoadFile(reportPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, layout.Compute(rep.Results, opts), nil
}

func newLayoutCmd(flags *rootFlags) *cobra.Command {
	lf := &layoutFlags{}
	var noIssues bool

	cmd := &cobra.Command{
		Use:   "layout <report.json>",
		Short: "Print the overlay layout of a page report as JSON",
		Long: `Group the findings of a page report by bounding box, resolve each group's
primary level and assign cascade indexes to colliding groups. The result is
printed as JSON: groups in first-occurrence order, clusters, and a tally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, res, err := computeLayout(flags, lf, args[0])
			if err != nil {
				return err
			}
			if noIssues {
				for i := range res.Groups {
					res.Groups[i].Issues = nil
				}
			}

			data, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode layout: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	lf.register(cmd)
	cmd.Flags().BoolVar(&noIssues, "no-issues", false, "Omit the issue list of each group")
	return cmd
}
