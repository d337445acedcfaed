package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	parquet "github.com/segmentio/parquet-go"
	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	"github.com/wdm0006/edachain/pkg/eda"
)

// ReadParquet loads a flat Parquet file. Column kinds follow the physical
// types of the file schema.
func ReadParquet(path string) (*eda.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()
	st, err := file.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(file, st.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}

	fields := pf.Schema().Fields()
	schema := eda.Schema{Columns: make([]eda.ColumnSchema, len(fields))}
	for i, fld := range fields {
		if !fld.Leaf() {
			return nil, fmt.Errorf("parquet column %s: nested columns are not supported", fld.Name())
		}
		schema.Columns[i] = eda.ColumnSchema{Name: fld.Name(), Type: parquetKind(fld.Type().Kind()), Nullable: true}
	}

	f := eda.NewFrame(schema)
	r := parquet.NewReader(pf)
	defer func() { _ = r.Close() }()
	buf := make([]parquet.Row, 256)
	for {
		n, err := r.ReadRows(buf)
		for _, row := range buf[:n] {
			f.AppendNullRow()
			ri := f.Rows() - 1
			for _, v := range row {
				if c := v.Column(); c < len(fields) && !v.IsNull() {
					if err := setParquetValue(f, ri, schema.Columns[c], v); err != nil {
						return nil, fmt.Errorf("parquet %s: %w", path, err)
					}
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return f, nil
}

func parquetKind(k parquet.Kind) eda.Kind {
	switch k {
	case parquet.Boolean:
		return eda.KindBool
	case parquet.Int32, parquet.Int64:
		return eda.KindInt
	case parquet.Float, parquet.Double:
		return eda.KindFloat
	default:
		return eda.KindString
	}
}

func setParquetValue(f *eda.Frame, row int, cs eda.ColumnSchema, v parquet.Value) error {
	var x any
	switch v.Kind() {
	case parquet.Boolean:
		x = v.Boolean()
	case parquet.Int32:
		x = int64(v.Int32())
	case parquet.Int64:
		x = v.Int64()
	case parquet.Float:
		x = float64(v.Float())
	case parquet.Double:
		x = v.Double()
	default:
		x = string(v.ByteArray())
	}
	if err := f.SetCell(row, cs.Name, x); err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	return nil
}

func parquetSchemaJSON(s eda.Schema) string {
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, cs := range s.Columns {
		tag := "name=" + cs.Name + ", repetitiontype=OPTIONAL, type="
		switch cs.Type {
		case eda.KindFloat:
			tag += "DOUBLE"
		case eda.KindInt:
			tag += "INT64"
		case eda.KindBool:
			tag += "BOOLEAN"
		default:
			tag += "UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, _ := json.Marshal(sc)
	return string(b)
}

// WriteParquet writes the table with one optional column per table column.
// Time columns are stored as RFC 3339 text.
func WriteParquet(path string, f *eda.Frame) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	writer, err := pw.NewJSONWriter(parquetSchemaJSON(f.Schema()), fw, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	for r := 0; r < f.Rows(); r++ {
		rec, err := json.Marshal(rowMap(f, r, true))
		if err != nil {
			_ = fw.Close()
			return fmt.Errorf("parquet encode row %d: %w", r, err)
		}
		if err := writer.Write(string(rec)); err != nil {
			_ = fw.Close()
			return fmt.Errorf("parquet write row %d: %w", r, err)
		}
	}
	if err := writer.WriteStop(); err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet flush: %w", err)
	}
	return fw.Close()
}
