// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Table is a raw CSV table: a header and string cells addressed by column name.
type Table struct {
	// Name is the file name without extension (rank_2024, college, ...).
	Name   string
	Header []string
	Rows   [][]string

	index map[string]int
}

// NewTable builds a table from a header and rows. Header names are trimmed;
// when a name repeats, the first occurrence wins.
func NewTable(name string, header []string, rows [][]string) *Table {
	t := &Table{
		Name:   name,
		Header: make([]string, len(header)),
		Rows:   rows,
		index:  make(map[string]int, len(header)),
	}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.Header[i] = h
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	return t
}

// Has reports whether the table has a column with the given name.
func (t *Table) Has(col string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[col]
	return ok
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Cell returns the value at row i for column col. Missing columns and short
// rows yield ("", false).
func (t *Table) Cell(i int, col string) (string, bool) {
	j, ok := t.index[col]
	if !ok {
		return "", false
	}
	row := t.Rows[i]
	if j >= len(row) {
		return "", false
	}
	return row[j], true
}

// Get returns the value at row i for column col, or "" when absent.
func (t *Table) Get(i int, col string) string {
	v, _ := t.Cell(i, col)
	return v
}

// Rename renames columns in place. Targets that already exist are left alone.
func (t *Table) Rename(mapping map[string]string) {
	for from, to := range mapping {
		j, ok := t.index[from]
		if !ok {
			continue
		}
		if _, exists := t.index[to]; exists {
			continue
		}
		delete(t.index, from)
		t.index[to] = j
		t.Header[j] = to
	}
}

// ReadCSV reads a comma-separated file with a header row.
// Ragged rows are accepted; an empty file yields a table with no columns.
func ReadCSV(path, name string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseCSV(f, name)
}

func parseCSV(r io.Reader, name string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return NewTable(name, nil, nil), nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, rec)
	}
	return NewTable(name, header, rows), nil
}
