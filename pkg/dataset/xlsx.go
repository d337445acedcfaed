package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/wdm0006/edachain/pkg/eda"
)

// ReadXLSX loads a worksheet whose first row is the header. An empty sheet
// name selects the first sheet.
func ReadXLSX(path, sheet string) (*eda.Frame, error) {
	xf, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = xf.Close() }()
	if sheet == "" {
		sheet = xf.GetSheetName(0)
	}
	rows, err := xf.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return eda.NewFrame(eda.Schema{}), nil
	}
	return fromRecords(rows[0], rows[1:])
}
