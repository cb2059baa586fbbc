// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/collegerank/internal/recommend"
)

type recommendOptions struct {
	req    recommend.Request
	asJSON bool
}

func newRecommendCmd(opts *rootOptions) *cobra.Command {
	ro := &recommendOptions{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend colleges for an expected rank",
		Example: `  collegerank recommend --rank 4500 --program "Computer Science"
  collegerank recommend --rank 12000 --program Mechanical --quota HS --min-ctc 6 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := opts.newEngine(cmd.Context())
			if err != nil {
				return err
			}

			res, err := engine.Recommend(cmd.Context(), ro.req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if ro.asJSON {
				if err := writeJSON(out, res); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, res.Message)
				if len(res.Data) > 0 {
					fmt.Fprintln(out)
					if err := printRecords(cmd, res.Data); err != nil {
						return err
					}
				}
			}

			if res.Status == recommend.StatusError {
				return errors.New(strings.TrimSuffix(res.Message, "."))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&ro.req.Rank, "rank", "", "expected rank (required)")
	f.StringVar(&ro.req.Program, "program", "", "program name or part of it (required)")
	f.StringVar(&ro.req.Stream, "stream", "", "stream filter")
	f.StringVar(&ro.req.Quota, "quota", "", "quota filter")
	f.StringVar(&ro.req.Category, "category", "", "category filter")
	f.StringVar(&ro.req.Location, "location", "", "district or location filter")
	f.Float64Var(&ro.req.MinCTC, "min-ctc", 0, "minimum average CTC")
	f.Float64Var(&ro.req.MinPlacementsScore, "min-placements", 0, "minimum placements score")
	f.IntVar(&ro.req.TargetYear, "target-year", 0, "forecast year (default from config)")
	f.IntVar(&ro.req.TopN, "top-n", 0, "number of results (default from config)")
	f.BoolVar(&ro.asJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("rank")
	_ = cmd.MarkFlagRequired("program")

	return cmd
}

func printRecords(cmd *cobra.Command, records []recommend.Record) error {
	t := newTable(cmd.OutOrStdout(), "#", "INSTITUTE", "PROGRAM", "QUOTA", "CATEGORY", "CLOSING RANK", "AVG CTC", "PLACEMENT", "OVERALL")
	for i := range records {
		r := &records[i]
		t.row(
			strconv.Itoa(i+1),
			r.Institute,
			r.Program,
			r.Quota,
			r.Category,
			formatFloat(r.ClosingRank),
			formatFloat(r.AverageCTC),
			formatFloat(r.PlacementScore),
			formatFloat(r.OverallAspectScore),
		)
	}
	return t.flush()
}

func newMetadataCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "List the filter values present in the corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := opts.newEngine(cmd.Context())
			if err != nil {
				return err
			}
			meta := engine.Metadata()

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, meta)
			}
			sections := []struct {
				title  string
				values []string
			}{
				{"Programs", meta.Programs},
				{"Streams", meta.Streams},
				{"Quotas", meta.Quotas},
				{"Categories", meta.Categories},
				{"Locations", meta.Locations},
			}
			for _, s := range sections {
				fmt.Fprintf(out, "%s (%d):\n", s.title, len(s.values))
				for _, v := range s.values {
					fmt.Fprintf(out, "  %s\n", v)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newTopCmd(opts *rootOptions) *cobra.Command {
	var (
		n      int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "top",
		Short: "List the best-ranked institutes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if n < 0 {
				return fmt.Errorf("--n must not be negative, got %d", n)
			}
			engine, err := opts.newEngine(cmd.Context())
			if err != nil {
				return err
			}
			top := engine.TopRanked(n)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), top)
			}
			t := newTable(cmd.OutOrStdout(), "RANK", "INSTITUTE", "DISTRICT", "WEBSITE")
			for _, inst := range top {
				t.row(strconv.Itoa(inst.Rank), inst.Institute, inst.District, inst.Website)
			}
			return t.flush()
		},
	}
	cmd.Flags().IntVar(&n, "n", 0, "number of institutes (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
