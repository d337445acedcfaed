package profile

import (
	"log/slog"
	"math"
	"reflect"
	"testing"

	"github.com/wdm0006/edachain/pkg/eda"
)

func sampleFrame() *eda.Frame {
	s := eda.Schema{Columns: []eda.ColumnSchema{
		{Name: "age", Type: eda.KindFloat, Nullable: true},
		{Name: "class", Type: eda.KindString, Nullable: true},
		{Name: "empty", Type: eda.KindInt, Nullable: true},
	}}
	f := eda.NewFrame(s)
	for i := 0; i < 5; i++ {
		f.AppendNullRow()
	}
	for i, v := range []any{1.0, 2.0, 3.0, 4.0, nil} {
		_ = f.SetCell(i, "age", v)
	}
	for i, v := range []any{"Third", "First", "First", "Third", "Second"} {
		_ = f.SetCell(i, "class", v)
	}
	return f
}

func TestDescribeNumeric(t *testing.T) {
	cols := Describe(sampleFrame())
	n := cols[0].Num
	if n == nil || n.Count != 4 || n.Nulls != 1 {
		t.Fatalf("unexpected counts %+v", n)
	}
	if n.Mean != 2.5 || n.Min != 1 || n.Max != 4 {
		t.Fatalf("unexpected mean/min/max %+v", n)
	}
	if math.Abs(n.Std-1.2909944) > 1e-6 {
		t.Fatalf("expected sample std 1.29099, got %v", n.Std)
	}
	if !(n.Q25 <= n.Q50 && n.Q50 <= n.Q75) {
		t.Fatalf("quartiles out of order %+v", n)
	}
}

func TestDescribeCategorical(t *testing.T) {
	c := Describe(sampleFrame())[1].Cat
	if c == nil {
		t.Fatal("expected categorical stats")
	}
	if c.Count != 5 || c.Unique != 3 {
		t.Fatalf("unexpected counts %+v", c)
	}
	// Third and First both occur twice; Third is seen first.
	if c.Top != "Third" || c.Freq != 2 {
		t.Fatalf("expected top Third/2, got %s/%d", c.Top, c.Freq)
	}
}

func TestDescribeEmptyColumn(t *testing.T) {
	p := Describe(sampleFrame())[2]
	if p.Nulls() != 5 || p.Num.Count != 0 || !math.IsNaN(p.Num.Mean) || !math.IsNaN(p.Num.Max) {
		t.Fatalf("expected NaN stats for empty column, got %+v", p.Num)
	}
}

func TestDescribeEmptyFrame(t *testing.T) {
	f := eda.NewFrame(eda.Schema{Columns: []eda.ColumnSchema{{Name: "x", Type: eda.KindFloat}}})
	p := Describe(f)
	if len(p) != 1 || !math.IsNaN(p[0].Num.Std) {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestCollectorAcrossFrames(t *testing.T) {
	f := sampleFrame()
	c := NewCollector(f.Schema())
	c.ConsumeFrame(f)
	c.ConsumeFrame(f)
	if got := c.Columns()[0].Num.Count; got != 8 {
		t.Fatalf("expected 8 observations, got %d", got)
	}
	if !reflect.DeepEqual(Describe(f)[1], Describe(f)[1]) {
		t.Fatal("profiles must be deterministic")
	}
}

func TestLogValue(t *testing.T) {
	v := Describe(sampleFrame())[1].LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("expected group value, got %s", v.Kind())
	}
	found := false
	for _, a := range v.Group() {
		if a.Key == "top" && a.Value.String() == "Third" {
			found = true
		}
	}
	if !found {
		t.Fatal("top attribute missing")
	}
}
