package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/resume-extractor/internal/record"
)

// SheetName is the worksheet holding the Field/Value table.
const SheetName = "Resume"

// EncodeXLSX returns a workbook with one Field/Value row per record key.
func EncodeXLSX(rec record.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	index, err := f.GetSheetIndex(SheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	write := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(SheetName, cell, v)
	}

	if err := write(1, 1, "Field"); err != nil {
		return nil, err
	}
	if err := write(2, 1, "Value"); err != nil {
		return nil, err
	}
	for i, r := range rec.Rows() {
		if err := write(1, i+2, r.Field); err != nil {
			return nil, err
		}
		if err := write(2, i+2, r.Value); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 24) // field
	_ = f.SetColWidth(SheetName, "B", "B", 90) // value

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
