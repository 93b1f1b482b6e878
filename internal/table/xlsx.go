package table

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX parses the first sheet of an Excel workbook. The first row
// is the header; trailing cells missing from short rows are padded.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("xlsx: workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("xlsx: sheet %q is empty", sheet)
	}
	return New(rows[0], rows[1:]), nil
}

// ReadUpload dispatches on the uploaded filename extension. Supported:
// .xlsx and .csv.
func ReadUpload(name string, r io.Reader) (*Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return ReadXLSX(r)
	case ".csv":
		return ReadCSV(r)
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .xlsx or .csv)", filepath.Ext(name))
	}
}
