package analysis

import (
	"context"
	"reflect"
	"testing"

	"github.com/wdm0006/edachain/internal/testutil"
	"github.com/wdm0006/edachain/pkg/eda"
)

func records(h *testutil.CaptureHandler) []string {
	var out []string
	for _, r := range h.Records() {
		out = append(out, r.String())
	}
	return out
}

func TestSummaryIsIdempotent(t *testing.T) {
	f := titanic()
	before := f.Head(f.Rows())
	logger, logs := testutil.NewLogger()
	s := &Summary{Logger: logger}

	out, err := s.Process(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	first := records(logs)
	logs.Reset()
	if _, err := s.Process(context.Background(), out); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, records(logs)) {
		t.Fatalf("second run logged differently:\n%v\n%v", first, records(logs))
	}
	if !reflect.DeepEqual(out.Head(out.Rows()), before) {
		t.Fatal("summary must not change the table")
	}
}

func TestSummaryReportsMissing(t *testing.T) {
	logger, logs := testutil.NewLogger()
	if _, err := (&Summary{Logger: logger}).Process(context.Background(), titanic()); err != nil {
		t.Fatal(err)
	}
	var deck, age any
	for _, r := range logs.Records() {
		if r.Message != "missing values" {
			continue
		}
		switch r.Attrs["column"] {
		case "deck":
			deck = r.Attrs["missing"]
		case "age":
			age = r.Attrs["missing"]
		}
	}
	if deck != int64(4) || age != int64(1) {
		t.Fatalf("unexpected missing counts deck=%v age=%v", deck, age)
	}
}

func TestSummaryEmptyTable(t *testing.T) {
	logger, _ := testutil.NewLogger()
	f := eda.NewFrame(eda.Schema{Columns: []eda.ColumnSchema{{Name: "x", Type: eda.KindFloat}, {Name: "s", Type: eda.KindString}}})
	if _, err := (&Summary{Logger: logger}).Process(context.Background(), f); err != nil {
		t.Fatalf("empty table must not fail: %v", err)
	}
}
