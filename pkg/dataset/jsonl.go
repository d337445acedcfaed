package dataset

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"sort"

	"github.com/wdm0006/edachain/pkg/eda"
)

// ReadJSONL loads one JSON object per line. Columns are the union of keys,
// sorted by name.
func ReadJSONL(path string) (*eda.Frame, error) {
	rc, err := OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	dec := json.NewDecoder(bufio.NewReader(rc))
	var rows []map[string]any
	keys := map[string]struct{}{}
	for {
		var m map[string]any
		if err := dec.Decode(&m); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		rows = append(rows, m)
		for k := range m {
			keys[k] = struct{}{}
		}
	}
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)
	return fromMaps(names, rows)
}

// WriteJSONL writes one object per row; missing cells are omitted.
func WriteJSONL(path string, f *eda.Frame) error {
	out, err := CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	for r := 0; r < f.Rows(); r++ {
		if err := enc.Encode(rowMap(f, r, false)); err != nil {
			_ = out.Close()
			return err
		}
	}
	return out.Close()
}

// rowMap returns the present cells of row r. With timeText set, times are
// rendered as RFC 3339 strings.
func rowMap(f *eda.Frame, r int, timeText bool) map[string]any {
	m := make(map[string]any, f.Cols())
	for _, col := range f.Columns() {
		if col.IsNull(r) {
			continue
		}
		switch c := col.(type) {
		case *eda.FloatColumn:
			m[c.Name()], _ = c.Get(r)
		case *eda.IntColumn:
			m[c.Name()], _ = c.Get(r)
		case *eda.BoolColumn:
			m[c.Name()], _ = c.Get(r)
		case *eda.StringColumn:
			m[c.Name()], _ = c.Get(r)
		case *eda.TimeColumn:
			v, _ := c.Get(r)
			if timeText {
				m[c.Name()] = cellText(c, r)
			} else {
				m[c.Name()] = v
			}
		}
	}
	return m
}
