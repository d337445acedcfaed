package analysis

import (
	"errors"
	"fmt"

	"github.com/wdm0006/edachain/pkg/chart"
	"github.com/wdm0006/edachain/pkg/eda"
)

// titanic returns a small frame shaped like the seaborn titanic dataset.
func titanic() *eda.Frame {
	s := eda.Schema{Columns: []eda.ColumnSchema{
		{Name: "survived", Type: eda.KindInt, Nullable: true},
		{Name: "age", Type: eda.KindFloat, Nullable: true},
		{Name: "fare", Type: eda.KindFloat, Nullable: true},
		{Name: "sex", Type: eda.KindString, Nullable: true},
		{Name: "alone", Type: eda.KindBool, Nullable: true},
		{Name: "deck", Type: eda.KindString, Nullable: true},
	}}
	f := eda.NewFrame(s)
	rows := [][]any{
		{0, 22.0, 7.25, "male", false, nil},
		{1, 38.0, 71.28, "female", false, "C"},
		{1, 26.0, 7.92, "female", true, nil},
		{1, 35.0, 53.1, "female", false, "C"},
		{0, 35.0, 8.05, "male", true, nil},
		{0, nil, 8.46, "male", true, nil},
	}
	for r, row := range rows {
		f.AppendNullRow()
		for c, v := range row {
			if err := f.SetCell(r, s.Columns[c].Name, v); err != nil {
				panic(err)
			}
		}
	}
	return f
}

// failingPlotter fails boxplots whose title starts with one of bad and
// panics for the title in panicOn.
type failingPlotter struct {
	chart.Recorder
	bad     string
	panicOn string
}

func (p *failingPlotter) BoxPlot(title string, groups []string, values [][]float64) error {
	if title == p.panicOn {
		panic("renderer blew up")
	}
	if title == p.bad {
		return errors.New("cannot draw")
	}
	return p.Recorder.BoxPlot(title, groups, values)
}

func vs(col, target string) string { return fmt.Sprintf("%s vs %s", col, target) }
