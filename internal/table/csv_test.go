package table

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
)

func TestWriteCSV_RoundsNumericColumnsOnly(t *testing.T) {
	tbl := New([]string{"Part", "Impact"}, [][]string{
		{"X1", "13.499999999999998"},
		{"X2", "2.675"},
	})
	tbl.MarkNumeric("Impact")

	var buf bytes.Buffer
	if err := tbl.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "Part,Impact" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "X1,13.5" {
		t.Errorf("row 1 = %q, want rounded impact", lines[1])
	}
	if lines[2] != "X2,2.68" {
		t.Errorf("row 2 = %q, want rounded impact", lines[2])
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	tbl := New([]string{"Part", "Price", "Note"}, [][]string{
		{"A-1", "9.300000000000001", "has, comma"},
		{"B-2", "12", "plain"},
	})
	tbl.MarkNumeric("Price")

	var buf bytes.Buffer
	if err := tbl.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	back, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	if len(back.Rows) != len(tbl.Rows) {
		t.Fatalf("row count changed: %d -> %d", len(tbl.Rows), len(back.Rows))
	}
	// Numeric values come back equal to the 2-decimal rounding of the originals.
	for i, row := range tbl.Rows {
		orig, _ := strconv.ParseFloat(row[1], 64)
		got, err := strconv.ParseFloat(back.Rows[i][1], 64)
		if err != nil {
			t.Fatalf("row %d: price not numeric after round trip: %v", i, err)
		}
		want := float64(int(orig*100+0.5)) / 100
		if got != want {
			t.Errorf("row %d: price = %v, want %v", i, got, want)
		}
	}
	if back.Rows[0][2] != "has, comma" {
		t.Errorf("text cell mangled: %q", back.Rows[0][2])
	}
}

func TestReadCSV(t *testing.T) {
	in := "A,B\n1,x\n2,y\n"
	tbl, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(tbl.Columns) != 2 || len(tbl.Rows) != 2 {
		t.Fatalf("unexpected shape: %v %v", tbl.Columns, tbl.Rows)
	}
	if tbl.Rows[1][1] != "y" {
		t.Errorf("unexpected cell: %v", tbl.Rows)
	}
}

func TestReadUpload_RejectsUnknownExtension(t *testing.T) {
	_, err := ReadUpload("report.pdf", strings.NewReader("x"))
	if err == nil {
		t.Error("expected error for unsupported extension")
	}
}
