// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/collegerank/internal/logging"
	"github.com/tomtom215/collegerank/internal/recommend/rules"
)

func newRulesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Mine or inspect the association rules file",
	}
	cmd.AddCommand(newRulesMineCmd(opts), newRulesShowCmd(opts))
	return cmd
}

func newRulesMineCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Mine rules and write them next to the CSV data",
		Long: `Mine association rules from the rank corpus and write them to the rules
file. Without --force an existing readable rules file is kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.cfg.Rules.Regenerate = force

			engine, err := opts.newEngine(cmd.Context())
			if err != nil {
				return err
			}

			verb := "Loaded"
			if engine.RulesSource() == rules.SourceMined {
				verb = "Mined"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d rules (%s)\n", verb, len(engine.Rules()), engine.RulesPath())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "rewrite the rules file even when a readable one exists")
	return cmd
}

// ruleView is the JSON shape of a rule.
type ruleView struct {
	Antecedent []string `json:"antecedent"`
	Consequent []string `json:"consequent"`
	Support    float64  `json:"support"`
	Confidence float64  `json:"confidence"`
	Lift       float64  `json:"lift"`
}

func newRulesShowCmd(opts *rootOptions) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the persisted rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := filepath.Join(opts.cfg.Data.Dir(), opts.cfg.Rules.File)
			rs, err := rules.NewStore(path, logging.WithComponent("rules")).Load()
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			if limit > 0 && len(rs) > limit {
				rs = rs[:limit]
			}

			if asJSON {
				views := make([]ruleView, len(rs))
				for i, r := range rs {
					views[i] = ruleView{
						Antecedent: r.Antecedent,
						Consequent: r.Consequent,
						Support:    r.Support,
						Confidence: r.Confidence,
						Lift:       r.Lift,
					}
				}
				return writeJSON(cmd.OutOrStdout(), views)
			}

			t := newTable(cmd.OutOrStdout(), "ANTECEDENT", "CONSEQUENT", "SUPPORT", "CONFIDENCE", "LIFT")
			for _, r := range rs {
				t.row(
					strings.Join(r.Antecedent, ", "),
					strings.Join(r.Consequent, ", "),
					fmt.Sprintf("%.4f", r.Support),
					fmt.Sprintf("%.4f", r.Confidence),
					fmt.Sprintf("%.4f", r.Lift),
				)
			}
			return t.flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "print at most this many rules (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
