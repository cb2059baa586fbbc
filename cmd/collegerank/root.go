// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/collegerank/internal/config"
	"github.com/tomtom215/collegerank/internal/logging"
	"github.com/tomtom215/collegerank/internal/recommend"
)

// rootOptions holds the persistent flags and the configuration they
// produce. Subcommands read cfg after PersistentPreRunE.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	dataRoot   string

	cfg *config.Config
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "collegerank",
		Short: "College admission ranking and recommendation engine",
		Long: `collegerank forecasts closing ranks from historical admission tables and
recommends colleges for a candidate's expected rank, boosted by placement
statistics, student reviews and mined association rules.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.load,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default: $CONFIG_PATH or ./config.yaml)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides config)")
	pf.StringVar(&opts.logFormat, "log-format", "", "log format: json or console (overrides config)")
	pf.StringVar(&opts.dataRoot, "data-root", "", "directory containing the csv/ folder (overrides data.root)")

	cmd.AddCommand(
		newServeCmd(opts),
		newRecommendCmd(opts),
		newMetadataCmd(opts),
		newTopCmd(opts),
		newRulesCmd(opts),
	)
	return cmd
}

// load reads the configuration, applies flag overrides and initializes
// logging to the command's error stream.
func (o *rootOptions) load(cmd *cobra.Command, _ []string) error {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}
	if o.dataRoot != "" {
		cfg.Data.Root = o.dataRoot
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    cmd.ErrOrStderr(),
	})

	o.cfg = cfg
	return nil
}

// newEngine builds the engine from the loaded configuration.
func (o *rootOptions) newEngine(ctx context.Context) (*recommend.Engine, error) {
	return recommend.New(ctx, o.cfg.Engine(), logging.WithComponent("engine"))
}
