package export

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteStudentSheet(t *testing.T) {
	rows := []StudentRow{
		{FirstName: "Asha", LastName: "Nair", PhoneNumber: "98765", Email: "asha@x.edu", Institution: "NITC", ProfileURL: "https://portal.test/student/u1"},
		{FirstName: "Ravi", LastName: "K", PhoneNumber: "12345", Email: "ravi@x.edu", Institution: "CET", ProfileURL: "https://portal.test/student/u2"},
	}

	var buf bytes.Buffer
	if err := WriteStudentSheet(&buf, rows); err != nil {
		t.Fatalf("WriteStudentSheet() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); !reflect.DeepEqual(sheets, []string{SheetName}) {
		t.Fatalf("sheets = %v, want only %q", sheets, SheetName)
	}

	got, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(got))
	}
	wantHeader := []string{"FirstName", "LastName", "PhoneNumber", "Email", "Institution", "Profile"}
	if !reflect.DeepEqual(got[0], wantHeader) {
		t.Fatalf("header = %v", got[0])
	}
	if got[2][5] != "https://portal.test/student/u2" {
		t.Fatalf("profile url = %q", got[2][5])
	}
}

func TestWriteStudentSheet_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStudentSheet(&buf, nil); err != nil {
		t.Fatalf("WriteStudentSheet() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected a workbook even with no applicants")
	}
}
