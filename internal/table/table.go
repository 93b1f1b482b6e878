// Package table holds the in-memory record set model shared by both
// analysis pipelines. A Table is a header plus rows of string cells;
// numeric columns are detected once, after ingest, and marked so that
// later stages and the CSV exporter know which cells carry numbers.
package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Table is an ordered, request-scoped record set. It is owned by the
// single call stack that created it and must not be shared across
// concurrent requests.
type Table struct {
	Columns []string
	Numeric []bool // parallel to Columns
	Rows    [][]string
}

// New builds a Table from a header and data rows. Short rows are padded
// with empty cells to header width, long rows are truncated.
func New(columns []string, rows [][]string) *Table {
	t := &Table{
		Columns: columns,
		Numeric: make([]bool, len(columns)),
		Rows:    make([][]string, len(rows)),
	}
	for i, row := range rows {
		r := make([]string, len(columns))
		copy(r, row)
		t.Rows[i] = r
	}
	return t
}

// TrimHeaders strips leading/trailing whitespace from all column names.
// Source extracts are known to ship malformed headers with stray spaces.
func (t *Table) TrimHeaders() {
	for i, c := range t.Columns {
		t.Columns[i] = strings.TrimSpace(c)
	}
}

// Rename maps old column names to new ones; unmapped columns pass
// through unchanged.
func (t *Table) Rename(mapping map[string]string) {
	for i, c := range t.Columns {
		if renamed, ok := mapping[c]; ok {
			t.Columns[i] = renamed
		}
	}
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// AddColumn appends a derived column. The value count must match the
// current row count.
func (t *Table) AddColumn(name string, numeric bool, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("table: column %q has %d values for %d rows", name, len(values), len(t.Rows))
	}
	t.Columns = append(t.Columns, name)
	t.Numeric = append(t.Numeric, numeric)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// DropColumn removes the named column. Unknown names are a no-op.
func (t *Table) DropColumn(name string) {
	idx := t.Index(name)
	if idx < 0 {
		return
	}
	t.Columns = append(t.Columns[:idx], t.Columns[idx+1:]...)
	t.Numeric = append(t.Numeric[:idx], t.Numeric[idx+1:]...)
	for i, row := range t.Rows {
		t.Rows[i] = append(row[:idx], row[idx+1:]...)
	}
}

// CoerceNumeric attempts numeric coercion on every column: thousands
// separators are stripped and the cell parsed as a float. The decision
// is all-or-nothing per column: if any non-empty cell fails to parse,
// the whole column is left untouched. Coerced columns are rewritten
// with the normalized cell text and marked numeric. Failures are
// swallowed; this is a best-effort policy, not a validation pass.
func (t *Table) CoerceNumeric() {
	for col := range t.Columns {
		normalized := make([]string, len(t.Rows))
		parsed := 0
		ok := true
		for i, row := range t.Rows {
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				normalized[i] = ""
				continue
			}
			n := strings.ReplaceAll(cell, ",", "")
			if _, err := strconv.ParseFloat(n, 64); err != nil {
				ok = false
				break
			}
			normalized[i] = n
			parsed++
		}
		if !ok || parsed == 0 {
			continue
		}
		for i := range t.Rows {
			t.Rows[i][col] = normalized[i]
		}
		t.Numeric[col] = true
	}
}

// MarkNumeric flags existing columns as numeric without re-parsing.
// Used after a join, where numeric detection already ran on the inputs.
func (t *Table) MarkNumeric(names ...string) {
	for _, name := range names {
		if idx := t.Index(name); idx >= 0 {
			t.Numeric[idx] = true
		}
	}
}

// FormatFloat renders a derived numeric cell. Full precision is kept in
// the table; rounding happens at export time only.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
