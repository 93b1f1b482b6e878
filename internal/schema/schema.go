// Package schema declares the expected column sets of each input
// extract and validates them at the pipeline boundary. Every input has
// a fixed enumeration of fields; a missing column or an unparseable
// strict numeric becomes a single ValidationError up front instead of a
// key-lookup failure deep inside a later stage.
package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/openprocure/procdash/internal/table"
)

// Kind is the declared type of a field.
type Kind int

const (
	Text Kind = iota
	Number
	Date
)

// FieldDef declares one expected column. Strict fields fail validation
// when a non-empty cell cannot be parsed as the declared kind;
// non-strict fields pass through as text on coercion failure.
type FieldDef struct {
	Name   string
	Kind   Kind
	Strict bool
}

// ValidationError reports a boundary schema failure for one input.
type ValidationError struct {
	Input   string
	Field   string
	Row     int // 1-based data row; 0 when the failure is not row-bound
	Message string
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s: field %q row %d: %s", e.Input, e.Field, e.Row, e.Message)
	}
	return fmt.Sprintf("%s: field %q: %s", e.Input, e.Field, e.Message)
}

// Index maps declared field names to column positions in a bound table.
type Index map[string]int

// Bind checks that every declared field exists in the table and returns
// the name-to-position index. The table may carry extra columns; they
// are ignored here and pass through to the output untouched.
func Bind(input string, t *table.Table, fields []FieldDef) (Index, error) {
	idx := make(Index, len(fields))
	for _, f := range fields {
		pos := t.Index(f.Name)
		if pos < 0 {
			return nil, &ValidationError{Input: input, Field: f.Name, Message: "required column missing"}
		}
		idx[f.Name] = pos
	}
	return idx, nil
}

// Number parses a strict numeric cell. Empty cells are reported via ok
// so the caller can apply its own null policy; a non-empty cell that
// does not parse is a boundary error.
func (idx Index) Number(input string, row []string, rowNum int, field string) (v float64, ok bool, err error) {
	cell := strings.TrimSpace(row[idx[field]])
	if cell == "" {
		return 0, false, nil
	}
	f, perr := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
	if perr != nil {
		return 0, false, &ValidationError{
			Input: input, Field: field, Row: rowNum,
			Message: fmt.Sprintf("cannot coerce %q to a number", cell),
		}
	}
	return f, true, nil
}

// Text returns the trimmed cell for a declared field.
func (idx Index) Text(row []string, field string) string {
	return strings.TrimSpace(row[idx[field]])
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
	"01/02/2006",
	"1/2/2006 15:04",
	"01-02-06", // excelize default short date
}

// ParseDate tries the known extract layouts in order.
func ParseDate(cell string) (time.Time, error) {
	s := strings.TrimSpace(cell)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", cell)
}

// Date parses a strict date cell; empty or invalid cells are boundary
// errors since downstream year extraction cannot proceed without them.
func (idx Index) Date(input string, row []string, rowNum int, field string) (time.Time, error) {
	cell := strings.TrimSpace(row[idx[field]])
	t, err := ParseDate(cell)
	if err != nil {
		return time.Time{}, &ValidationError{
			Input: input, Field: field, Row: rowNum, Message: err.Error(),
		}
	}
	return t, nil
}
