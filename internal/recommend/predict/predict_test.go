// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package predict

import (
	"testing"

	"github.com/tomtom215/collegerank/internal/dataset"
)

func rec(year, round int, inst, prog, quota, cat, district string, closing float64) dataset.RankRecord {
	r := dataset.RankRecord{
		Year:        year,
		Round:       round,
		Institute:   inst,
		Program:     prog,
		Stream:      dataset.CanonicalStream,
		SeatType:    "gender-neutral",
		Quota:       quota,
		Category:    cat,
		District:    district,
		OpeningRank: dataset.Some(closing / 2),
	}
	if closing > 0 {
		r.ClosingRank = dataset.Some(closing)
	}
	return r
}

func TestForecast(t *testing.T) {
	tests := []struct {
		name  string
		ranks []float64
		want  float64
	}{
		{"two most recent", []float64{100, 120}, 110},
		{"single", []float64{450}, 450},
		{"floored", []float64{0.5}, 1.0},
		{"empty", nil, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Forecast(tt.ranks); got != tt.want {
				t.Errorf("Forecast(%v) = %v, want %v", tt.ranks, got, tt.want)
			}
		})
	}
}

func TestFilters_WithImpliedCategory(t *testing.T) {
	tests := []struct {
		name string
		in   Filters
		want string
	}{
		{"tfw program without category", Filters{Program: "computer tfw"}, TuitionFeeWaiver},
		{"explicit category kept", Filters{Program: "computer tfw", Category: "open"}, "open"},
		{"non tfw program", Filters{Program: "computer"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.WithImpliedCategory().Category; got != tt.want {
				t.Errorf("Category = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewFilters(t *testing.T) {
	f := NewFilters("  Computer Science ", "B.E/B. TECH", "AI", "nan", " Pune")
	want := Filters{Program: "computer science", Stream: "b.e/b. tech", Quota: "ai", Category: "", District: "pune"}
	if f != want {
		t.Errorf("NewFilters() = %+v, want %+v", f, want)
	}
}

func TestApply(t *testing.T) {
	records := []dataset.RankRecord{
		rec(2024, 1, "alpha", "computer science", "ai", "open", "pune", 100),
		rec(2024, 1, "beta", "computer science and design", "hs", "sc", "nagpur", 200),
		rec(2024, 1, "gamma", "mechanical", "ai", "open", "pune", 300),
	}

	tests := []struct {
		name  string
		f     Filters
		insts []string
	}{
		{"exact program wins over substring", Filters{Program: "computer science"}, []string{"alpha"}},
		{"substring program", Filters{Program: "design"}, []string{"beta"}},
		{"program empties the set", Filters{Program: "civil"}, nil},
		{"quota narrows", Filters{Program: "computer", Quota: "hs"}, []string{"beta"}},
		{"unmatched quota ignored", Filters{Program: "computer", Quota: "os"}, []string{"alpha", "beta"}},
		{"district substring", Filters{Program: "computer", District: "nag"}, []string{"beta"}},
		{"category exact", Filters{Program: "mech", Category: "open"}, []string{"gamma"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(records, tt.f)
			if len(got) != len(tt.insts) {
				t.Fatalf("len(Apply()) = %d, want %d", len(got), len(tt.insts))
			}
			for i, inst := range tt.insts {
				if got[i].Institute != inst {
					t.Errorf("Apply()[%d].Institute = %q, want %q", i, got[i].Institute, inst)
				}
			}
		})
	}
}

func TestCascade(t *testing.T) {
	records := []dataset.RankRecord{
		rec(2024, 1, "alpha", "computer science", "ai", "open", "pune", 100),
		rec(2024, 1, "beta", "computer science", "hs", "sc", "nagpur", 200),
	}

	t.Run("full level", func(t *testing.T) {
		got, level := Cascade(records, Filters{Program: "computer science", Quota: "hs"})
		if level != LevelFull || len(got) != 1 {
			t.Errorf("Cascade() = %d rows at %v, want 1 at full", len(got), level)
		}
	})

	t.Run("no match", func(t *testing.T) {
		got, level := Cascade(records, Filters{Program: "civil"})
		if level != LevelNone || got != nil {
			t.Errorf("Cascade() = %d rows at %v, want none", len(got), level)
		}
	})
}

func TestLevel_String(t *testing.T) {
	for _, l := range Levels {
		if l.String() == "none" {
			t.Errorf("Level(%d).String() = none, want a named level", l)
		}
	}
	if LevelNone.String() != "none" {
		t.Errorf("LevelNone.String() = %q, want none", LevelNone.String())
	}
}

func TestLatestRounds(t *testing.T) {
	records := []dataset.RankRecord{
		rec(2024, 1, "alpha", "cs", "ai", "open", "", 100),
		rec(2024, 3, "alpha", "cs", "ai", "open", "", 140),
		rec(2024, 2, "alpha", "cs", "ai", "open", "", 120),
		rec(2023, 1, "alpha", "cs", "ai", "open", "", 90),
	}
	got := LatestRounds(records)

	if len(got) != 2 {
		t.Fatalf("len(LatestRounds()) = %d, want 2", len(got))
	}
	if got[0].Round != 3 || got[0].ClosingRank.Value != 140 {
		t.Errorf("LatestRounds()[0] = round %d rank %v, want round 3 rank 140", got[0].Round, got[0].ClosingRank.Value)
	}
	if got[1].Year != 2023 {
		t.Errorf("LatestRounds()[1].Year = %d, want 2023", got[1].Year)
	}
	if records[0].Round != 1 {
		t.Error("LatestRounds mutated its input")
	}
}

func TestForecastGroups(t *testing.T) {
	records := []dataset.RankRecord{
		rec(2022, 1, "beta", "cs", "ai", "open", "", 300),
		rec(2023, 1, "beta", "cs", "ai", "open", "", 120),
		rec(2024, 1, "beta", "cs", "ai", "open", "", 100),
		rec(2024, 1, "alpha", "cs", "ai", "open", "", 0),
		rec(2025, 1, "gamma", "cs", "ai", "open", "", 0),
		rec(2024, 1, "gamma", "cs", "ai", "open", "", 0.5),
	}
	groups := ForecastGroups(records)

	if len(groups) != 2 {
		t.Fatalf("len(ForecastGroups()) = %d, want 2 (alpha has no closing rank)", len(groups))
	}
	if groups[0].Key.Institute != "beta" || groups[1].Key.Institute != "gamma" {
		t.Errorf("group order = %s,%s, want beta,gamma", groups[0].Key.Institute, groups[1].Key.Institute)
	}
	if groups[0].Predicted != 110 {
		t.Errorf("beta Predicted = %v, want 110", groups[0].Predicted)
	}
	if groups[1].Predicted != 1.0 {
		t.Errorf("gamma Predicted = %v, want 1.0", groups[1].Predicted)
	}
	if groups[1].LatestClosing.Valid {
		t.Error("gamma LatestClosing should be null: the 2025 row has no closing rank")
	}
	if groups[0].LatestOpening.Value != 50 {
		t.Errorf("beta LatestOpening = %v, want 50", groups[0].LatestOpening.Value)
	}
}

func TestPredict(t *testing.T) {
	records := []dataset.RankRecord{
		rec(2024, 1, "alpha", "computer science", "ai", "open", "pune", 500),
		rec(2025, 1, "alpha", "computer science", "ai", "open", "pune", 700),
		rec(2024, 1, "beta", "computer science", "ai", "open", "nagpur", 1500),
		rec(2025, 1, "beta", "computer science", "ai", "open", "nagpur", 1700),
	}

	t.Run("forecast path", func(t *testing.T) {
		pred := Predict(records, Filters{Program: "computer science"}, 2026)
		if pred.TargetYearHit {
			t.Error("TargetYearHit = true, want false")
		}
		if pred.Level != LevelFull || pred.Matched != 4 {
			t.Errorf("Level/Matched = %v/%d, want full/4", pred.Level, pred.Matched)
		}
		if len(pred.Candidates) != 2 {
			t.Fatalf("len(Candidates) = %d, want 2", len(pred.Candidates))
		}
		if got := pred.Candidates[0].PredictedClosingRank.Value; got != 600 {
			t.Errorf("alpha predicted = %v, want 600", got)
		}
		if got := pred.Candidates[1].District; got != "nagpur" {
			t.Errorf("beta District = %q, want nagpur", got)
		}
	})

	t.Run("target year fast path", func(t *testing.T) {
		pred := Predict(records, Filters{Program: "computer science"}, 2025)
		if !pred.TargetYearHit {
			t.Fatal("TargetYearHit = false, want true")
		}
		if len(pred.Candidates) != 2 {
			t.Fatalf("len(Candidates) = %d, want 2", len(pred.Candidates))
		}
		if got := pred.Candidates[0].PredictedClosingRank.Value; got != 700 {
			t.Errorf("first predicted = %v, want observed 700", got)
		}
		if got := pred.Candidates[1].Institute; got != "beta" {
			t.Errorf("second Institute = %q, want beta", got)
		}
	})

	t.Run("blank program", func(t *testing.T) {
		if pred := Predict(records, Filters{Program: ""}, 2026); !pred.Empty() {
			t.Errorf("Predict(blank) = %d candidates, want none", len(pred.Candidates))
		}
	})

	t.Run("unknown program", func(t *testing.T) {
		pred := Predict(records, Filters{Program: "astronomy"}, 2026)
		if !pred.Empty() || pred.Level != LevelNone {
			t.Errorf("Predict(unknown) = %d at %v, want empty at none", len(pred.Candidates), pred.Level)
		}
	})
}
