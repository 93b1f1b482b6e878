package schema

import (
	"errors"
	"testing"

	"github.com/openprocure/procdash/internal/table"
)

func TestBind_MissingColumn(t *testing.T) {
	tbl := table.New([]string{"PART_NUMBER", "VENDOR_NUM"}, nil)
	_, err := Bind(InputWorkbench, tbl, WorkbenchFields)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Input != InputWorkbench {
		t.Errorf("error input = %q", verr.Input)
	}
}

func TestBind_IgnoresExtraColumns(t *testing.T) {
	cols := []string{"A", "B", "Extra"}
	tbl := table.New(cols, nil)
	idx, err := Bind("test", tbl, []FieldDef{{Name: "B"}, {Name: "A"}})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if idx["A"] != 0 || idx["B"] != 1 {
		t.Errorf("unexpected index: %v", idx)
	}
}

func TestIndex_Number(t *testing.T) {
	tbl := table.New([]string{"Spend"}, [][]string{{"60,000"}, {""}, {"oops"}})
	idx, err := Bind("test", tbl, []FieldDef{{Name: "Spend", Kind: Number, Strict: true}})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}

	v, ok, err := idx.Number("test", tbl.Rows[0], 1, "Spend")
	if err != nil || !ok || v != 60000 {
		t.Errorf("row 1: got v=%v ok=%v err=%v", v, ok, err)
	}

	_, ok, err = idx.Number("test", tbl.Rows[1], 2, "Spend")
	if err != nil || ok {
		t.Errorf("empty cell: want ok=false err=nil, got ok=%v err=%v", ok, err)
	}

	_, _, err = idx.Number("test", tbl.Rows[2], 3, "Spend")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("bad cell: expected *ValidationError, got %v", err)
	}
	if verr.Row != 3 {
		t.Errorf("error row = %d, want 3", verr.Row)
	}
}

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2024-03-15", "2024-03-15 10:30:00", "15.03.2024"} {
		d, err := ParseDate(in)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", in, err)
			continue
		}
		if d.Year() != 2024 {
			t.Errorf("ParseDate(%q) year = %d", in, d.Year())
		}
	}

	if _, err := ParseDate("not a date"); err == nil {
		t.Error("expected error for invalid date")
	}
}
