package report

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Preview returns the first sheet's name and up to maxRows of its rows (all of them when maxRows <= 0).
func Preview(data []byte, maxRows int) (string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", nil, errors.Wrap(err, "opening workbook")
	}
	defer f.Close()

	// data is in the first sheet
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return "", nil, errors.New("workbook has no sheet")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", nil, errors.Wrapf(err, "getting rows from sheet %s", sheet)
	}
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	return sheet, rows, nil
}
