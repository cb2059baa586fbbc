// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package quality

import (
	"math"
	"testing"

	"github.com/tomtom215/collegerank/internal/dataset"
)

func placementTable() *dataset.Table {
	return dataset.NewTable("placement",
		[]string{"Institute", "Program", "average_ctc", "median_ctc", "highest_ctc", "top_recruiters", "job_titles", "inst_rank"},
		[][]string{
			{"IIT Alpha", "Computer Science", "12", "10", "40", "", "SDE", "abc"},
			{"iit alpha", "computer science", "15", "n/a", "35", "Acme", "Analyst", "3"},
			{"Beta College", "Mechanical", "bad", "", "", "Bolt", "", "1"},
			{"Gamma", "Civil", "5", "5", "5", "", "", "3"},
		})
}

func reviewTable() *dataset.Table {
	return dataset.NewTable("reviews",
		[]string{"college_name", "rating", "placements_score", "overall_aspect_score", "mess_score"},
		[][]string{
			{"IIT Alpha", "4", "8", "7", ""},
			{"iit alpha", "5", "", "9", "3"},
			{"Beta College", "x", "", "", ""},
		})
}

func TestBuild_Placements(t *testing.T) {
	agg := Build(placementTable(), nil)

	p, ok := agg.Placement("iit alpha", "computer science")
	if !ok {
		t.Fatal("Placement(iit alpha, computer science) not found")
	}
	if p.AverageCTC.Value != 15 || p.HighestCTC.Value != 40 || p.MedianCTC.Value != 10 {
		t.Errorf("ctc = %v/%v/%v, want 15/10/40", p.AverageCTC, p.MedianCTC, p.HighestCTC)
	}
	if p.TopRecruiter != "Acme" {
		t.Errorf("TopRecruiter = %q, want first non-empty Acme", p.TopRecruiter)
	}
	if p.JobTitle != "SDE" {
		t.Errorf("JobTitle = %q, want SDE", p.JobTitle)
	}
	if !p.InstituteRank.Valid || p.InstituteRank.Value != 3 {
		t.Errorf("InstituteRank = %+v, want 3", p.InstituteRank)
	}

	beta, _ := agg.Placement("beta college", "mechanical")
	if beta.AverageCTC.Valid {
		t.Errorf("AverageCTC = %+v, want null for non-numeric", beta.AverageCTC)
	}
	if got := agg.MaxAverageCTC("beta college", "mechanical"); got != 0 {
		t.Errorf("MaxAverageCTC() = %v, want 0", got)
	}
	if got := agg.MaxAverageCTC("missing", "x"); got != 0 {
		t.Errorf("MaxAverageCTC(missing) = %v, want 0", got)
	}
}

func TestBuild_Reviews(t *testing.T) {
	agg := Build(nil, reviewTable())

	r, ok := agg.Review("iit alpha")
	if !ok {
		t.Fatal("Review(iit alpha) not found")
	}
	if r.Rating.Value != 4.5 {
		t.Errorf("Rating = %v, want 4.5", r.Rating.Value)
	}
	// A missing sub-score excludes the row from that column only.
	if r.Placements.Value != 8 {
		t.Errorf("Placements = %v, want 8", r.Placements.Value)
	}
	if r.Mess.Value != 3 {
		t.Errorf("Mess = %v, want 3", r.Mess.Value)
	}
	if r.Professor.Valid {
		t.Errorf("Professor = %+v, want null for absent column", r.Professor)
	}

	ps, overall := agg.FilterScores("iit alpha")
	if ps != 8 || overall != 8 {
		t.Errorf("FilterScores() = %v, %v, want 8, 8", ps, overall)
	}

	beta, _ := agg.Review("beta college")
	if beta.Rating.Valid {
		t.Errorf("Rating = %+v, want null", beta.Rating)
	}
}

func TestAggregates_Rankings(t *testing.T) {
	agg := Build(placementTable(), nil)
	got := agg.Rankings()

	want := []struct {
		rank float64
		name string
	}{
		{1, "Beta College"},
		{3, "iit alpha"},
		{3, "Gamma"},
	}
	if len(got) != len(want) {
		t.Fatalf("len(Rankings()) = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Rank != w.rank || got[i].DisplayName != w.name {
			t.Errorf("Rankings()[%d] = %v/%q, want %v/%q", i, got[i].Rank, got[i].DisplayName, w.rank, w.name)
		}
	}
}

func TestAggregates_Nil(t *testing.T) {
	var agg *Aggregates
	if _, ok := agg.Placement("a", "b"); ok {
		t.Error("nil Placement() ok = true")
	}
	if _, ok := agg.Review("a"); ok {
		t.Error("nil Review() ok = true")
	}
	if agg.Rankings() != nil {
		t.Error("nil Rankings() != nil")
	}

	empty := Build(nil, nil)
	p, r := empty.Sizes()
	if p != 0 || r != 0 {
		t.Errorf("Sizes() = %d, %d, want 0, 0", p, r)
	}
}

func TestMaxFloat(t *testing.T) {
	null := dataset.Float{}
	tests := []struct {
		a, b dataset.Float
		want dataset.Float
	}{
		{null, null, null},
		{dataset.Some(1), null, dataset.Some(1)},
		{null, dataset.Some(2), dataset.Some(2)},
		{dataset.Some(3), dataset.Some(2), dataset.Some(3)},
		{dataset.Some(-1), dataset.Some(math.MaxFloat64), dataset.Some(math.MaxFloat64)},
	}
	for _, tt := range tests {
		if got := maxFloat(tt.a, tt.b); got != tt.want {
			t.Errorf("maxFloat(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAggregates_Filter(t *testing.T) {
	tests := []struct {
		name      string
		agg       *Aggregates
		institute string
		program   string
		want      FilterValues
	}{
		{
			name:      "placement and reviews",
			agg:       Build(placementTable(), reviewTable()),
			institute: "iit alpha",
			program:   "computer science",
			want:      FilterValues{MaxAverageCTC: 15, Placements: 8, Overall: 8},
		},
		{
			name:      "reviews without placement row",
			agg:       Build(placementTable(), reviewTable()),
			institute: "iit alpha",
			program:   "mechanical",
			want:      FilterValues{},
		},
		{
			name:      "reviews only",
			agg:       Build(nil, reviewTable()),
			institute: "iit alpha",
			program:   "anything",
			want:      FilterValues{Placements: 8, Overall: 8},
		},
		{
			name:      "nil",
			institute: "iit alpha",
			want:      FilterValues{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.agg.Filter(tt.institute, tt.program); got != tt.want {
				t.Errorf("Filter() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
