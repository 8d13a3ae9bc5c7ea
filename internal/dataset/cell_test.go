package dataset

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		raw  string
		kind CellKind
	}{
		{"", CellAbsent},
		{"Software Engineer", CellText},
		{"85000", CellNumber},
		{"85000.50", CellNumber},
		{"-12", CellNumber},
		{"12b", CellText},
	}
	for _, tc := range tests {
		if got := Classify(tc.raw).Kind(); got != tc.kind {
			t.Errorf("Classify(%q).Kind() = %v, want %v", tc.raw, got, tc.kind)
		}
	}
}

func TestCellAccessors(t *testing.T) {
	if _, ok := Absent().AsText(); ok {
		t.Error("absent cell should have no text")
	}
	if _, ok := Absent().AsNumber(); ok {
		t.Error("absent cell should have no number")
	}

	c := Classify("85000")
	if n, ok := c.AsNumber(); !ok || n != 85000 {
		t.Errorf("AsNumber() = (%v, %v), want (85000, true)", n, ok)
	}
	// Numeric cells keep their raw text rendering.
	if s, ok := c.AsText(); !ok || s != "85000" {
		t.Errorf("AsText() = (%q, %v), want (85000, true)", s, ok)
	}

	txt := Text("director")
	if _, ok := txt.AsNumber(); ok {
		t.Error("text cell should have no number")
	}
	if Text("") .Kind() != CellAbsent {
		t.Error("empty Text should collapse to absent")
	}
}

func TestRowGet(t *testing.T) {
	row := NewRow(map[string]Cell{"JOB_TITLE": Text("analyst")})

	if s, ok := row.Get("JOB_TITLE").AsText(); !ok || s != "analyst" {
		t.Errorf("Get(JOB_TITLE) = (%q, %v)", s, ok)
	}
	if !row.Get("NO_SUCH_COLUMN").IsAbsent() {
		t.Error("missing column should read as absent")
	}
}
