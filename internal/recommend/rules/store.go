// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package rules

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultFileName is the rules file name under the CSV directory.
const DefaultFileName = "associates_rules.csv"

// Header is the rules file header.
var Header = []string{"antecedent", "consequent", "support", "confidence", "lift"}

var (
	// ErrRulesUnreadable is returned when the rules file exists but cannot be
	// parsed as a rules table.
	ErrRulesUnreadable = errors.New("rules file unreadable")

	// ErrLockTimeout is returned when the writer lock could not be acquired.
	ErrLockTimeout = errors.New("timed out waiting for rules lock")
)

// Source reports where Ensure obtained its rules.
type Source string

// Rule sources.
const (
	SourceFile  Source = "file"
	SourceMined Source = "mined"
)

// MineFunc produces rules when the file must be (re)generated.
type MineFunc func(ctx context.Context) ([]Rule, error)

// writeMu serializes rule writers within the process.
var writeMu sync.Mutex

// Store reads and writes the rules file.
type Store struct {
	path   string
	logger zerolog.Logger

	// LockWait bounds how long Ensure waits for another writer.
	LockWait time.Duration
	// LockStale is the age after which an abandoned lock file is removed.
	LockStale time.Duration
	// PollInterval is the lock retry interval.
	PollInterval time.Duration
}

// NewStore returns a store for the rules file at path.
//
//nolint:gocritic // logger passed by value for zerolog chaining
func NewStore(path string, logger zerolog.Logger) *Store {
	return &Store{
		path:         path,
		logger:       logger.With().Str("component", "rules").Str("path", path).Logger(),
		LockWait:     30 * time.Second,
		LockStale:    2 * time.Minute,
		PollInterval: 50 * time.Millisecond,
	}
}

// Path returns the rules file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the rules file. It returns an fs.ErrNotExist error when the file
// is missing and ErrRulesUnreadable when it is empty, malformed or has the
// wrong header. Unparsable numbers load as 0.
func (s *Store) Load() ([]Rule, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses a rules table.
func Decode(r io.Reader) ([]Rule, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRulesUnreadable, err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, h := range Header {
		if _, ok := col[h]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrRulesUnreadable, h)
		}
	}

	get := func(row []string, name string) string {
		if i := col[name]; i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	rules := []Rule{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRulesUnreadable, err)
		}
		rules = append(rules, Rule{
			Antecedent: splitItems(get(row, "antecedent")),
			Consequent: splitItems(get(row, "consequent")),
			Support:    parseNumber(get(row, "support")),
			Confidence: parseNumber(get(row, "confidence")),
			Lift:       parseNumber(get(row, "lift")),
		})
	}
	return rules, nil
}

// Encode writes rules as CSV.
func Encode(w io.Writer, rules []Rule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for i := range rules {
		r := &rules[i]
		if err := cw.Write([]string{
			r.AntecedentString(),
			r.ConsequentString(),
			formatNumber(r.Support),
			formatNumber(r.Confidence),
			formatNumber(r.Lift),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes rules atomically through a temporary file.
func (s *Store) Save(rules []Rule) error {
	var buf bytes.Buffer
	if err := Encode(&buf, rules); err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create rules dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// Ensure returns the persisted rules, mining and saving them first when the
// file is missing or unreadable. At most one writer runs at a time; writers
// that lose the race read the winner's file.
//
// A failed save is logged and the mined rules are still returned.
func (s *Store) Ensure(ctx context.Context, mine MineFunc) ([]Rule, Source, error) {
	if rules, err := s.Load(); err == nil {
		return rules, SourceFile, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn().Err(err).Msg("rules file unreadable, regenerating")
	}

	return s.regenerate(ctx, mine, false)
}

// Regenerate mines and saves rules unconditionally.
func (s *Store) Regenerate(ctx context.Context, mine MineFunc) ([]Rule, error) {
	rules, _, err := s.regenerate(ctx, mine, true)
	return rules, err
}

func (s *Store) regenerate(ctx context.Context, mine MineFunc, force bool) ([]Rule, Source, error) {
	writeMu.Lock()
	defer writeMu.Unlock()

	unlock, err := s.acquireLock(ctx)
	if err != nil {
		return nil, "", err
	}
	defer unlock()

	// Another writer may have finished while we waited.
	if !force {
		if rules, err := s.Load(); err == nil {
			s.logger.Debug().Msg("rules written by another initializer")
			return rules, SourceFile, nil
		}
	}

	start := time.Now()
	rules, err := mine(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("mine rules: %w", err)
	}

	if err := s.Save(rules); err != nil {
		s.logger.Warn().Err(err).Msg("failed to save association rules")
	} else {
		s.logger.Info().
			Int("rules", len(rules)).
			Dur("duration", time.Since(start)).
			Msg("association rules mined and saved")
	}
	return rules, SourceMined, nil
}

func (s *Store) lockPath() string {
	return s.path + ".lock"
}

// acquireLock creates the lock file exclusively, waiting for other holders.
// Lock files older than LockStale are treated as abandoned.
func (s *Store) acquireLock(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("create rules dir: %w", err)
	}

	lock := s.lockPath()
	deadline := time.Now().Add(s.LockWait)
	for {
		f, err := os.OpenFile(lock, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(lock) }, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}

		if info, statErr := os.Stat(lock); statErr == nil && time.Since(info.ModTime()) > s.LockStale {
			s.logger.Warn().Dur("age", time.Since(info.ModTime())).Msg("removing stale rules lock")
			_ = os.Remove(lock)
			continue
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.PollInterval):
		}
	}
}

func splitItems(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ItemSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
