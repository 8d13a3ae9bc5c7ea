package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder(t *testing.T) {
	def, err := NewIndex("paylens:records:idx").
		Prefix("paylens:record:").
		Text("job_title").
		Text("city_state").
		Numeric("salary").
		Tag("pay_unit").
		Numeric("salary_yearly").
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if def.StorageType != StorageHash {
		t.Errorf("StorageType = %s", def.StorageType)
	}
	if len(def.Fields) != 5 {
		t.Fatalf("fields = %d, want 5", len(def.Fields))
	}
	if def.Fields[0].Type != IndexFieldText || def.Fields[3].Type != IndexFieldTag {
		t.Error("field types not preserved in order")
	}

	s := def.String()
	for _, want := range []string{"FT.CREATE", "ON HASH", "PREFIX paylens:record:", "job_title TEXT", "pay_unit TAG", "salary_yearly NUMERIC"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q: %s", want, s)
		}
	}
}

func TestIndexBuilderValidation(t *testing.T) {
	if _, err := NewIndex("").Text("f").Build(); err == nil {
		t.Error("expected error for empty index name")
	}
	if _, err := NewIndex("idx").Build(); err == nil {
		t.Error("expected error for no fields")
	}
	if _, err := NewIndex("idx").Text("").Build(); err == nil {
		t.Error("expected error for empty field name")
	}
}
