package dataset

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/wdm0006/edachain/pkg/eda"
)

var numre = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

// missing text markers, compared case-insensitively
var nullTokens = map[string]bool{"": true, "na": true, "nan": true, "null": true, "none": true, "n/a": true}

func isNullText(s string) bool { return nullTokens[strings.ToLower(strings.TrimSpace(s))] }

func isBoolText(s string) bool {
	lv := strings.ToLower(s)
	return lv == "true" || lv == "false"
}

// inferTextKinds picks a kind per column from raw text cells: bool when every
// value is true/false, int or float when every value is a number, otherwise
// string.
func inferTextKinds(ncol int, rows [][]string) []eda.Kind {
	kinds := make([]eda.Kind, ncol)
	for c := 0; c < ncol; c++ {
		num, integer, boolean, str := 0, 0, 0, 0
		for _, row := range rows {
			if c >= len(row) || isNullText(row[c]) {
				continue
			}
			v := strings.TrimSpace(row[c])
			switch {
			case numre.MatchString(v):
				num++
				if _, err := strconv.ParseInt(v, 10, 64); err == nil {
					integer++
				}
			case isBoolText(v):
				boolean++
			default:
				str++
			}
		}
		switch {
		case boolean > 0 && num == 0 && str == 0:
			kinds[c] = eda.KindBool
		case num > 0 && boolean == 0 && str == 0:
			if integer == num {
				kinds[c] = eda.KindInt
			} else {
				kinds[c] = eda.KindFloat
			}
		default:
			kinds[c] = eda.KindString
		}
	}
	return kinds
}

// setText parses s into the cell. Missing markers leave the cell missing.
func setText(f *eda.Frame, row int, cs eda.ColumnSchema, s string) error {
	if isNullText(s) {
		return nil
	}
	val := strings.ToValidUTF8(strings.TrimSpace(s), "?")
	var v any = val
	switch cs.Type {
	case eda.KindFloat:
		x, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("row %d column %s: %w", row, cs.Name, err)
		}
		v = x
	case eda.KindInt:
		x, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("row %d column %s: %w", row, cs.Name, err)
		}
		v = x
	case eda.KindBool:
		x, err := strconv.ParseBool(strings.ToLower(val))
		if err != nil {
			return fmt.Errorf("row %d column %s: %w", row, cs.Name, err)
		}
		v = x
	}
	if err := f.SetCell(row, cs.Name, v); err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	return nil
}

// fromRecords builds a frame from a header and text rows.
func fromRecords(header []string, rows [][]string) (*eda.Frame, error) {
	kinds := inferTextKinds(len(header), rows)
	schema := eda.Schema{Columns: make([]eda.ColumnSchema, len(header))}
	for i, name := range header {
		schema.Columns[i] = eda.ColumnSchema{Name: name, Type: kinds[i], Nullable: true}
	}
	f := eda.NewFrame(schema)
	for r, rec := range rows {
		f.AppendNullRow()
		for c, cs := range schema.Columns {
			if c >= len(rec) {
				continue
			}
			if err := setText(f, r, cs, rec[c]); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// inferValueKinds picks a kind per key from decoded values (JSON, SQL).
func inferValueKinds(keys []string, rows []map[string]any) []eda.Kind {
	kinds := make([]eda.Kind, len(keys))
	for i, k := range keys {
		nNum, nInt, nBool, nStr, nTime := 0, 0, 0, 0, 0
		text := func(s string) {
			v := strings.TrimSpace(s)
			switch {
			case isNullText(v):
			case numre.MatchString(v):
				nNum++
				if _, err := strconv.ParseInt(v, 10, 64); err == nil {
					nInt++
				}
			default:
				nStr++
			}
		}
		for _, m := range rows {
			switch t := m[k].(type) {
			case nil:
			case float64:
				nNum++
				if float64(int64(t)) == t {
					nInt++
				}
			case float32:
				nNum++
			case int, int32, int64:
				nNum++
				nInt++
			case bool:
				nBool++
			case time.Time:
				nTime++
			case []byte:
				text(string(t))
			case string:
				text(t)
			default:
				nStr++
			}
		}
		switch {
		case nTime > 0 && nNum+nBool+nStr == 0:
			kinds[i] = eda.KindTime
		case nBool > 0 && nNum+nStr+nTime == 0:
			kinds[i] = eda.KindBool
		case nNum > 0 && nBool+nStr+nTime == 0:
			if nInt == nNum {
				kinds[i] = eda.KindInt
			} else {
				kinds[i] = eda.KindFloat
			}
		default:
			kinds[i] = eda.KindString
		}
	}
	return kinds
}

// setValue stores a decoded value. Text is parsed for typed columns and any
// value is rendered as text for string columns.
func setValue(f *eda.Frame, row int, cs eda.ColumnSchema, v any) error {
	switch t := v.(type) {
	case nil:
		return nil
	case []byte:
		return setText(f, row, cs, string(t))
	case string:
		if cs.Type != eda.KindString {
			return setText(f, row, cs, t)
		}
	}
	if cs.Type == eda.KindString {
		switch t := v.(type) {
		case string:
		case map[string]any, []any:
			b, err := json.Marshal(t)
			if err != nil {
				return fmt.Errorf("row %d column %s: %w", row, cs.Name, err)
			}
			v = string(b)
		case time.Time:
			v = t.Format(time.RFC3339)
		default:
			v = fmt.Sprintf("%v", t)
		}
	} else if t, ok := v.(int32); ok && cs.Type == eda.KindFloat {
		v = int64(t)
	}
	if err := f.SetCell(row, cs.Name, v); err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	return nil
}

// fromMaps builds a frame from decoded rows with the given column order.
func fromMaps(keys []string, rows []map[string]any) (*eda.Frame, error) {
	kinds := inferValueKinds(keys, rows)
	schema := eda.Schema{Columns: make([]eda.ColumnSchema, len(keys))}
	for i, k := range keys {
		schema.Columns[i] = eda.ColumnSchema{Name: k, Type: kinds[i], Nullable: true}
	}
	f := eda.NewFrame(schema)
	for r, m := range rows {
		f.AppendNullRow()
		for _, cs := range schema.Columns {
			if err := setValue(f, r, cs, m[cs.Name]); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
