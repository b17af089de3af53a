package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Selected Students"
	FileName    = "selected_students.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var header = []interface{}{"FirstName", "LastName", "PhoneNumber", "Email", "Institution", "Profile"}

// StudentRow is one applicant line in the download
type StudentRow struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Institution string `json:"institution"`
	ProfileURL  string `json:"profile_url"`
}

// WriteStudentSheet renders rows into a single-sheet workbook and writes it to w.
func WriteStudentSheet(w io.Writer, rows []StudentRow) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(SheetName, "A1", "F1", bold)
	}
	_ = f.SetColWidth(SheetName, "A", "F", 22)

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{r.FirstName, r.LastName, r.PhoneNumber, r.Email, r.Institution, r.ProfileURL}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
