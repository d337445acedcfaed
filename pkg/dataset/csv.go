package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wdm0006/edachain/pkg/eda"
)

type CSVOptions struct {
	HasHeader bool
	Delimiter rune // 0 = sniff from the first line
}

// ReadCSV loads a delimited file, gzip or plain. Kinds are inferred from all
// rows; empty cells and NA markers become missing.
func ReadCSV(path string, opt CSVOptions) (*eda.Frame, error) {
	rc, err := OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return decodeCSV(rc, opt)
}

func decodeCSV(r io.Reader, opt CSVOptions) (*eda.Frame, error) {
	br := bufio.NewReader(r)
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	if opt.Delimiter == 0 {
		cr.Comma = sniffDelimiter(br)
	} else {
		cr.Comma = opt.Delimiter
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return eda.NewFrame(eda.Schema{}), nil
	}
	var header []string
	if opt.HasHeader {
		header = make([]string, len(records[0]))
		for i, h := range records[0] {
			header[i] = strings.ToValidUTF8(strings.TrimSpace(h), "?")
		}
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
		records = records[1:]
	} else {
		header = make([]string, len(records[0]))
		for i := range header {
			header[i] = "col_" + strconv.Itoa(i)
		}
	}
	return fromRecords(header, records)
}

// sniffDelimiter counts candidate separators on the first line.
func sniffDelimiter(br *bufio.Reader) rune {
	sample, _ := br.Peek(4096)
	if i := strings.IndexByte(string(sample), '\n'); i >= 0 {
		sample = sample[:i]
	}
	best, bestCount := ',', 0
	for _, c := range []rune{',', '\t', ';', '|'} {
		if n := strings.Count(string(sample), string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

// WriteCSV writes a header and one row per table row. Missing cells are
// empty.
func WriteCSV(path string, f *eda.Frame) error {
	out, err := CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(out)
	if err := w.Write(f.ColumnNames()); err != nil {
		_ = out.Close()
		return err
	}
	for r := 0; r < f.Rows(); r++ {
		row := make([]string, f.Cols())
		for c, col := range f.Columns() {
			if !col.IsNull(r) {
				row[c] = cellText(col, r)
			}
		}
		if err := w.Write(row); err != nil {
			_ = out.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// cellText renders a present cell losslessly.
func cellText(col eda.Column, r int) string {
	switch c := col.(type) {
	case *eda.FloatColumn:
		v, _ := c.Get(r)
		return strconv.FormatFloat(v, 'g', -1, 64)
	case *eda.TimeColumn:
		v, _ := c.Get(r)
		return v.Format("2006-01-02T15:04:05Z07:00")
	default:
		return col.Format(r)
	}
}
