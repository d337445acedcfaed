package chart

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"age vs survived":            "age_vs_survived",
		"Feature Correlation Matrix": "feature_correlation_matrix",
		"  ??  ":                     "plot",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPNGWritesFiles(t *testing.T) {
	dir := t.TempDir()
	p, err := NewPNG(filepath.Join(dir, "plots"))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Histogram("age", []float64{1, 2, 2, 3, 5, 8}, 4); err != nil {
		t.Fatal(err)
	}
	if err := p.BoxPlot("fare vs survived", []string{"0", "1"}, [][]float64{{1, 2, 3}, {4, 5, 6}}); err != nil {
		t.Fatal(err)
	}
	m := [][]float64{{1, -0.5}, {-0.5, 1}}
	if err := p.HeatMap("Feature Correlation Matrix", []string{"a", "b"}, m); err != nil {
		t.Fatal(err)
	}
	if len(p.Files()) != 3 {
		t.Fatalf("expected 3 files, got %v", p.Files())
	}
	for _, f := range p.Files() {
		if st, err := os.Stat(f); err != nil || st.Size() == 0 {
			t.Fatalf("missing or empty image %s: %v", f, err)
		}
	}
}

func TestPNGRejectsEmptyInput(t *testing.T) {
	p, err := NewPNG(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Histogram("empty", nil, 20); err == nil {
		t.Fatal("expected error for empty histogram")
	}
	if err := p.BoxPlot("x vs y", []string{"0", "1"}, [][]float64{{1}, {}}); err == nil {
		t.Fatal("expected error for empty group")
	}
	if err := p.HeatMap("h", []string{"a"}, [][]float64{{1}, {1}}); err == nil {
		t.Fatal("expected error for label mismatch")
	}
}

func TestPNGHeatMapSkipsUndefinedCells(t *testing.T) {
	p, err := NewPNG(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	m := [][]float64{{1, math.NaN()}, {math.NaN(), 1}}
	if err := p.HeatMap("partial", []string{"a", "b"}, m); err != nil {
		t.Fatal(err)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var _ Plotter = &r
	_ = r.Histogram("a", []float64{1, 2}, 20)
	_ = r.BoxPlot("b", []string{"0", "1"}, [][]float64{{1}, {2, 3}})
	if r.Calls[0].Bins != 20 || r.Calls[1].Sizes[1] != 2 {
		t.Fatalf("unexpected calls %+v", r.Calls)
	}
	if got := r.Titles(); len(got) != 2 || got[1] != "b" {
		t.Fatalf("unexpected titles %v", got)
	}
}
