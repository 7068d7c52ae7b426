package catalog

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Molecules"

// ExportXLSX writes entries to a spreadsheet, one row per molecule.
func ExportXLSX(path string, entries []Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return err
	}
	header := []interface{}{"id", "name", "formula", "alias", "group", "atoms"}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, e := range entries {
		row := []interface{}{e.ID, e.Name, e.Formula, e.Alias, e.Group, atomCount(e.XYZ)}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// atomCount returns the first line of an XYZ block, which holds the number
// of atoms.
func atomCount(xyz string) string {
	first, _, _ := strings.Cut(strings.TrimLeft(xyz, "\r\n"), "\n")
	return strings.TrimSpace(first)
}
