// Package export renders team registrations as a formatted Excel report.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/arenax6/registration/internal/team"
)

const sheetName = "Team Registrations"

var headers = []string{
	"S.No",
	"Team Name",
	"Student 1 Name",
	"Student 1 Reg.No",
	"Student 2 Name",
	"Student 2 Reg.No",
	"Year",
	"Registration Date",
}

var colWidths = map[string]float64{
	"A": 8,
	"B": 25,
	"C": 22,
	"D": 18,
	"E": 22,
	"F": 18,
	"G": 12,
	"H": 22,
}

// Generate builds the registration report workbook: a title block in rows
// 1-4, a styled header in row 6 and one data row per team from row 7.
func Generate(teams []team.Team) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	if err := writeTitleBlock(f); err != nil {
		return nil, err
	}

	if err := writeHeaderRow(f); err != nil {
		return nil, err
	}

	if err := writeDataRows(f, teams); err != nil {
		return nil, err
	}

	for col, width := range colWidths {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return nil, fmt.Errorf("setting column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeTitleBlock(f *excelize.File) error {
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 16, Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFD700"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating title style: %w", err)
	}

	centerStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating center style: %w", err)
	}

	lines := []struct {
		row    int
		value  string
		style  int
		height float64
	}{
		{1, "ARENA X6 - Team Registration Report", titleStyle, 30},
		{2, "Velalar College of Engineering and Technology, Thindal, Erode", centerStyle, 22},
		{3, "Department of CSE (AI & ML) | Event Date: 12/02/2026 | Non-Technical Event", centerStyle, 20},
		{4, "Report Generated: " + time.Now().Format("02/01/2006 03:04 PM"), centerStyle, 18},
	}

	for _, line := range lines {
		ref := fmt.Sprintf("A%d", line.row)
		if err := f.MergeCell(sheetName, ref, fmt.Sprintf("H%d", line.row)); err != nil {
			return fmt.Errorf("merging title cells: %w", err)
		}
		if err := f.SetCellValue(sheetName, ref, line.value); err != nil {
			return fmt.Errorf("writing title cell: %w", err)
		}
		if err := f.SetCellStyle(sheetName, ref, ref, line.style); err != nil {
			return fmt.Errorf("styling title cell: %w", err)
		}
		if err := f.SetRowHeight(sheetName, line.row, line.height); err != nil {
			return fmt.Errorf("setting title row height: %w", err)
		}
	}

	return nil
}

func writeHeaderRow(f *excelize.File) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 11, Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4CAF50"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "top", Style: 2},
			{Type: "left", Style: 2},
			{Type: "bottom", Style: 2},
			{Type: "right", Style: 2},
		},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 6)
		if err != nil {
			return fmt.Errorf("resolving header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header cell: %w", err)
		}
	}

	if err := f.SetCellStyle(sheetName, "A6", "H6", headerStyle); err != nil {
		return fmt.Errorf("styling header row: %w", err)
	}
	if err := f.SetRowHeight(sheetName, 6, 25); err != nil {
		return fmt.Errorf("setting header row height: %w", err)
	}

	return nil
}

func writeDataRows(f *excelize.File, teams []team.Team) error {
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border: []excelize.Border{
			{Type: "top", Style: 1},
			{Type: "left", Style: 1},
			{Type: "bottom", Style: 1},
			{Type: "right", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("creating data style: %w", err)
	}

	for i, t := range teams {
		row := 7 + i
		values := []any{
			i + 1,
			t.TeamName,
			t.Student1Name,
			t.Student1RegNo,
			t.Student2Name,
			t.Student2RegNo,
			t.Year,
			t.CreatedAt.Format("02/01/2006 03:04 PM"),
		}

		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("resolving data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing data cell: %w", err)
			}
		}

		first := fmt.Sprintf("A%d", row)
		last := fmt.Sprintf("H%d", row)
		if err := f.SetCellStyle(sheetName, first, last, dataStyle); err != nil {
			return fmt.Errorf("styling data row: %w", err)
		}
	}

	return nil
}
