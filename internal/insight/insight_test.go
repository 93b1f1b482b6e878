package insight

import "testing"

type row struct {
	group string
	value float64
}

func key(r row) string { return r.group }
func value(r row) float64 { return r.value }

func TestGroupSum_TopN_Ordering(t *testing.T) {
	rows := []row{
		{"a", 100}, {"b", 50}, {"c", 200}, {"d", 10}, {"e", 75},
	}
	top := TopN(GroupSum(rows, key, value), 3)

	want := []float64{200, 100, 75}
	if len(top) != 3 {
		t.Fatalf("TopN returned %d groups", len(top))
	}
	for i, g := range top {
		if g.Total != want[i] {
			t.Errorf("top[%d] = %v, want %v", i, g.Total, want[i])
		}
	}
}

func TestGroupSum_AccumulatesPerKey(t *testing.T) {
	rows := []row{{"a", 1}, {"a", 2}, {"b", 4}}
	groups := GroupSum(rows, key, value)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key != "b" || groups[0].Total != 4 {
		t.Errorf("groups[0] = %+v", groups[0])
	}
	if groups[1].Key != "a" || groups[1].Total != 3 {
		t.Errorf("groups[1] = %+v", groups[1])
	}
}

func TestTopN_ShorterThanN(t *testing.T) {
	groups := GroupSum([]row{{"a", 1}}, key, value)
	if got := TopN(groups, 5); len(got) != 1 {
		t.Errorf("TopN over-trimmed: %v", got)
	}
}

func TestEmptyInput_ZeroedResults(t *testing.T) {
	var rows []row
	if got := GroupSum(rows, key, value); len(got) != 0 {
		t.Errorf("GroupSum(empty) = %v", got)
	}
	if got := Sum(rows, value); got != 0 {
		t.Errorf("Sum(empty) = %v", got)
	}
	if got := Mean(rows, value); got != 0 {
		t.Errorf("Mean(empty) = %v", got)
	}
	if got := DistinctCount(rows, key); got != 0 {
		t.Errorf("DistinctCount(empty) = %v", got)
	}
}

func TestSortByKey(t *testing.T) {
	groups := []GroupTotal{{"2024-02-01", 5}, {"2024-01-15", 9}}
	SortByKey(groups)
	if groups[0].Key != "2024-01-15" {
		t.Errorf("not sorted by key: %v", groups)
	}
}

func TestMean(t *testing.T) {
	rows := []row{{"a", 10}, {"b", 20}}
	if got := Mean(rows, value); got != 15 {
		t.Errorf("Mean = %v, want 15", got)
	}
}
