package ingest

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), sheet)

	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "review.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReader_Read(t *testing.T) {
	path := writeWorkbook(t, "Review", [][]interface{}{
		{"Company", "Year", "Question ID", "Classification", "Remove from Analysis?"},
		{"Acme", 2024, "Q1", "FULL_DISCLOSURE", ""},
		{"Globex", 2023, "Q2", "PARTIAL", "YES"},
	})

	rows, err := NewReader("Review").Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Get(FieldCompany) != "Acme" {
		t.Errorf("company = %q, want Acme", rows[0].Get(FieldCompany))
	}
	if rows[0].Get(FieldYear) != "2024" {
		t.Errorf("year = %q, want 2024", rows[0].Get(FieldYear))
	}
	if rows[1].Get(FieldRemove) != "YES" {
		t.Errorf("remove flag = %q, want YES", rows[1].Get(FieldRemove))
	}
}

func TestReader_DefaultsToFirstSheet(t *testing.T) {
	path := writeWorkbook(t, "Whatever", [][]interface{}{
		{"Company", "Year"},
		{"Acme", 2024},
	})

	rows, err := NewReader("").Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(rows))
	}
}

func TestReader_HeaderAliases(t *testing.T) {
	path := writeWorkbook(t, "Review", [][]interface{}{
		{"company name", "FISCAL YEAR", "correct classification"},
		{"Acme", 2024, "NO_DISCLOSURE"},
	})

	rows, err := NewReader("Review").Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if rows[0].Get(FieldCompany) != "Acme" {
		t.Errorf("aliased company = %q, want Acme", rows[0].Get(FieldCompany))
	}
	if rows[0].Get(FieldOverride) != "NO_DISCLOSURE" {
		t.Errorf("aliased override = %q, want NO_DISCLOSURE", rows[0].Get(FieldOverride))
	}
}

func TestReader_ShortRowsReadAsEmptyCells(t *testing.T) {
	path := writeWorkbook(t, "Review", [][]interface{}{
		{"Company", "Year", "Question ID"},
		{"Acme"},
	})

	rows, err := NewReader("Review").Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if rows[0].Get(FieldQuestionID) != "" {
		t.Errorf("missing cell = %q, want empty", rows[0].Get(FieldQuestionID))
	}
}

func TestReader_BlankRowsSkipped(t *testing.T) {
	path := writeWorkbook(t, "Review", [][]interface{}{
		{"Company", "Year"},
		{"", ""},
		{"Acme", 2024},
	})

	rows, err := NewReader("Review").Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected blank row to be skipped, got %d rows", len(rows))
	}
}

func TestReader_MissingSheetIsStructuralError(t *testing.T) {
	path := writeWorkbook(t, "Review", [][]interface{}{
		{"Company", "Year"},
	})

	if _, err := NewReader("NoSuchSheet").Read(path); err == nil {
		t.Error("expected an error for a missing sheet")
	}
}

func TestReader_UnrecognizedHeaderIsStructuralError(t *testing.T) {
	path := writeWorkbook(t, "Review", [][]interface{}{
		{"Foo", "Bar"},
		{"x", "y"},
	})

	if _, err := NewReader("Review").Read(path); err == nil {
		t.Error("expected an error for a header with no recognized columns")
	}
}

func TestCanonicalField(t *testing.T) {
	cases := map[string]string{
		"Company":               FieldCompany,
		"  company  ":           FieldCompany,
		"Remove from Analysis?": FieldRemove,
		"remove from analysis":  FieldRemove,
		"Custom Column":         "Custom Column",
	}
	for raw, want := range cases {
		if got := CanonicalField(raw); got != want {
			t.Errorf("CanonicalField(%q) = %q, want %q", raw, got, want)
		}
	}
}
