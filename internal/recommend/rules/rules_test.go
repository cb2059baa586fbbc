// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package rules

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/collegerank/internal/dataset"
)

func sampleRecords() []dataset.RankRecord {
	return []dataset.RankRecord{
		{Program: "cs", Quota: "ai"},
		{Program: "cs", Quota: "ai"},
		{Program: "cs", Quota: "hs"},
		{Program: "me", Quota: "hs"},
		{},
	}
}

func TestTransaction(t *testing.T) {
	r := dataset.RankRecord{
		Program:  "computer science",
		Stream:   "b.e/b. tech",
		Quota:    "",
		Category: "open",
		District: "pune",
	}
	got := Transaction(&r)
	want := []string{"category=open", "district=pune", "program=computer science", "stream=b.e/b. tech"}
	if !slices.Equal(got, want) {
		t.Errorf("Transaction() = %v, want %v", got, want)
	}

	if items := Transaction(&dataset.RankRecord{}); len(items) != 0 {
		t.Errorf("Transaction(empty) = %v, want none", items)
	}
}

func TestCombinations(t *testing.T) {
	var got []string
	combinations([]string{"a", "b", "c", "d"}, 3, func(set []string) {
		got = append(got, strings.Join(set, ""))
	})
	// 4 singles + 6 pairs + 4 triples
	if len(got) != 14 {
		t.Errorf("len(combinations) = %d, want 14: %v", len(got), got)
	}
	if slices.Contains(got, "abcd") {
		t.Error("combinations exceeded max size")
	}
}

func TestMine(t *testing.T) {
	rules, err := Mine(context.Background(), sampleRecords(), Config{MinSupport: 0.25, MaxItemsetSize: 3})
	if err != nil {
		t.Fatalf("Mine() error = %v", err)
	}
	if len(rules) != 6 {
		t.Fatalf("len(rules) = %d, want 6", len(rules))
	}

	first := rules[0]
	if first.AntecedentString() != "quota=ai" || first.ConsequentString() != "program=cs" {
		t.Errorf("first rule = %s -> %s, want quota=ai -> program=cs", first.AntecedentString(), first.ConsequentString())
	}
	if first.Support != 0.5 || first.Confidence != 1 || first.Lift != 1.333333 {
		t.Errorf("first metrics = %v/%v/%v, want 0.5/1/1.333333", first.Support, first.Confidence, first.Lift)
	}

	last := rules[len(rules)-1]
	if last.Confidence != 0.333333 {
		t.Errorf("last confidence = %v, want 0.333333", last.Confidence)
	}

	// Equal confidence and support fall back to text order.
	if rules[3].ConsequentString() != "program=cs" || rules[4].ConsequentString() != "program=me" {
		t.Errorf("tie order = %s, %s, want program=cs, program=me", rules[3].ConsequentString(), rules[4].ConsequentString())
	}

	for _, r := range rules {
		if len(r.Consequent) != 1 {
			t.Errorf("rule %s has %d consequents, want 1", r.AntecedentString(), len(r.Consequent))
		}
	}
}

func TestMine_Edges(t *testing.T) {
	t.Run("no transactions", func(t *testing.T) {
		rules, err := Mine(context.Background(), []dataset.RankRecord{{}}, DefaultConfig())
		if err != nil || len(rules) != 0 {
			t.Errorf("Mine() = %d rules, %v, want 0, nil", len(rules), err)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		if _, err := Mine(context.Background(), nil, Config{MinSupport: 0, MaxItemsetSize: 3}); err == nil {
			t.Error("Mine() error = nil, want invalid config")
		}
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := Mine(ctx, sampleRecords(), DefaultConfig()); !errors.Is(err, context.Canceled) {
			t.Errorf("Mine() error = %v, want context.Canceled", err)
		}
	})
}

func TestEncodeDecode(t *testing.T) {
	in := []Rule{{
		Antecedent: []string{"program=cs", "quota=ai"},
		Consequent: []string{"district=pune"},
		Support:    0.031,
		Confidence: 0.5,
		Lift:       2.25,
	}}
	var buf bytes.Buffer
	if err := Encode(&buf, in); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(out) != 1 || !slices.Equal(out[0].Antecedent, in[0].Antecedent) || out[0].Lift != 2.25 {
		t.Errorf("Decode(Encode()) = %+v, want %+v", out, in)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		wantLen int
	}{
		{"empty file", "", true, 0},
		{"wrong header", "a,b,c\n1,2,3\n", true, 0},
		{"header only", "antecedent,consequent,support,confidence,lift\n", false, 0},
		{"bad numbers become zero", "antecedent,consequent,support,confidence,lift\nquota=ai,program=cs,x,,NaN\n", false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := Decode(bytes.NewBufferString(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrRulesUnreadable) {
				t.Errorf("Decode() error = %v, want ErrRulesUnreadable", err)
			}
			if len(rules) != tt.wantLen {
				t.Errorf("len(rules) = %d, want %d", len(rules), tt.wantLen)
			}
			for _, r := range rules {
				if r.Support != 0 || r.Confidence != 0 || r.Lift != 0 {
					t.Errorf("metrics = %v/%v/%v, want zeros", r.Support, r.Confidence, r.Lift)
				}
			}
		})
	}
}

func countingMiner(calls *atomic.Int32) MineFunc {
	return func(ctx context.Context) ([]Rule, error) {
		calls.Add(1)
		return Mine(ctx, sampleRecords(), Config{MinSupport: 0.25, MaxItemsetSize: 3})
	}
}

func TestStore_Ensure(t *testing.T) {
	t.Run("mines once then reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "csv", DefaultFileName)
		store := NewStore(path, zerolog.Nop())
		var calls atomic.Int32

		rules, src, err := store.Ensure(context.Background(), countingMiner(&calls))
		if err != nil {
			t.Fatalf("Ensure() error = %v", err)
		}
		if src != SourceMined || len(rules) != 6 {
			t.Errorf("Ensure() = %d rules from %s, want 6 from mined", len(rules), src)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("rules file not written: %v", err)
		}
		if _, err := os.Stat(path + ".lock"); !os.IsNotExist(err) {
			t.Errorf("lock file left behind: %v", err)
		}

		rules, src, err = store.Ensure(context.Background(), countingMiner(&calls))
		if err != nil || src != SourceFile || len(rules) != 6 {
			t.Errorf("second Ensure() = %d rules from %s, %v, want 6 from file", len(rules), src, err)
		}
		if calls.Load() != 1 {
			t.Errorf("miner calls = %d, want 1", calls.Load())
		}
	})

	t.Run("unreadable file is regenerated", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultFileName)
		if err := os.WriteFile(path, nil, 0o600); err != nil {
			t.Fatal(err)
		}
		var calls atomic.Int32
		_, src, err := NewStore(path, zerolog.Nop()).Ensure(context.Background(), countingMiner(&calls))
		if err != nil || src != SourceMined {
			t.Errorf("Ensure() = %s, %v, want mined", src, err)
		}
	})

	t.Run("header only file is kept", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultFileName)
		if err := os.WriteFile(path, []byte("antecedent,consequent,support,confidence,lift\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		var calls atomic.Int32
		rules, src, err := NewStore(path, zerolog.Nop()).Ensure(context.Background(), countingMiner(&calls))
		if err != nil || src != SourceFile || len(rules) != 0 {
			t.Errorf("Ensure() = %d rules from %s, %v, want 0 from file", len(rules), src, err)
		}
	})

	t.Run("concurrent initializers write once", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultFileName)
		var calls atomic.Int32
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				store := NewStore(path, zerolog.Nop())
				if _, _, err := store.Ensure(context.Background(), countingMiner(&calls)); err != nil {
					t.Errorf("Ensure() error = %v", err)
				}
			}()
		}
		wg.Wait()
		if calls.Load() != 1 {
			t.Errorf("miner calls = %d, want 1", calls.Load())
		}
	})
}

func TestStore_Lock(t *testing.T) {
	t.Run("stale lock is removed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultFileName)
		store := NewStore(path, zerolog.Nop())
		if err := os.WriteFile(store.lockPath(), []byte("1\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		old := time.Now().Add(-time.Hour)
		if err := os.Chtimes(store.lockPath(), old, old); err != nil {
			t.Fatal(err)
		}

		var calls atomic.Int32
		if _, src, err := store.Ensure(context.Background(), countingMiner(&calls)); err != nil || src != SourceMined {
			t.Errorf("Ensure() = %s, %v, want mined", src, err)
		}
	})

	t.Run("held lock times out", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultFileName)
		store := NewStore(path, zerolog.Nop())
		store.LockWait = -time.Second
		if err := os.WriteFile(store.lockPath(), []byte("1\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		var calls atomic.Int32
		if _, _, err := store.Ensure(context.Background(), countingMiner(&calls)); !errors.Is(err, ErrLockTimeout) {
			t.Errorf("Ensure() error = %v, want ErrLockTimeout", err)
		}
		if calls.Load() != 0 {
			t.Errorf("miner calls = %d, want 0", calls.Load())
		}
	})
}

func TestStore_Regenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	store := NewStore(path, zerolog.Nop())
	if err := store.Save(nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	var calls atomic.Int32
	rules, err := store.Regenerate(context.Background(), countingMiner(&calls))
	if err != nil || len(rules) != 6 {
		t.Fatalf("Regenerate() = %d rules, %v, want 6", len(rules), err)
	}
	loaded, err := store.Load()
	if err != nil || len(loaded) != 6 {
		t.Errorf("Load() = %d rules, %v, want 6", len(loaded), err)
	}
}

func TestMine_SeparatorInValue(t *testing.T) {
	records := make([]dataset.RankRecord, 10)
	for i := range records {
		records[i] = dataset.RankRecord{Program: "cs;ai", Quota: "hs"}
	}

	mined, err := Mine(context.Background(), records, DefaultConfig())
	if err != nil {
		t.Fatalf("Mine() error = %v", err)
	}
	if len(mined) == 0 {
		t.Fatal("Mine() returned no rules")
	}

	var buf bytes.Buffer
	if err := Encode(&buf, mined); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	loaded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(loaded) != len(mined) {
		t.Fatalf("Decode() = %d rules, want %d", len(loaded), len(mined))
	}
	for i := range mined {
		if !slices.Equal(loaded[i].Antecedent, mined[i].Antecedent) || !slices.Equal(loaded[i].Consequent, mined[i].Consequent) {
			t.Errorf("rule %d loaded as %v -> %v, mined %v -> %v",
				i, loaded[i].Antecedent, loaded[i].Consequent, mined[i].Antecedent, mined[i].Consequent)
		}
	}
	if got := Item(AttrProgram, "cs;ai"); got != "program=cs,ai" {
		t.Errorf("Item() = %q, want program=cs,ai", got)
	}
}
