package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
)

// ReadCSV parses a comma-separated extract. The first record is the
// header; every following record becomes a row.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, rec)
	}
	return New(header, rows), nil
}

// WriteCSV serializes the table as UTF-8 comma-separated text with a
// header row. Cells in numeric columns are rounded to 2 decimal places;
// everything else is written verbatim.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	row := make([]string, len(t.Columns))
	for _, src := range t.Rows {
		for i, cell := range src {
			if t.Numeric[i] {
				row[i] = roundCell(cell)
			} else {
				row[i] = cell
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Rendered returns the rows with numeric cells rounded to 2 decimals,
// ready for display or serialization. The table itself keeps full
// precision.
func (t *Table) Rendered() [][]string {
	out := make([][]string, len(t.Rows))
	for i, src := range t.Rows {
		row := make([]string, len(src))
		for j, cell := range src {
			if j < len(t.Numeric) && t.Numeric[j] {
				row[j] = roundCell(cell)
			} else {
				row[j] = cell
			}
		}
		out[i] = row
	}
	return out
}

func roundCell(cell string) string {
	if cell == "" {
		return ""
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return cell
	}
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
