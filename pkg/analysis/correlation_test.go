package analysis

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/wdm0006/edachain/internal/testutil"
	"github.com/wdm0006/edachain/pkg/chart"
	"github.com/wdm0006/edachain/pkg/eda"
)

func floats(name string, vals ...any) *eda.FloatColumn {
	c := eda.NewFloatColumn(name, 0)
	for _, v := range vals {
		if v == nil {
			c.AppendNull()
			continue
		}
		c.Append(v.(float64))
	}
	return c
}

func TestPearson(t *testing.T) {
	Convey("Pearson uses only rows where both sides are present", t, func() {
		x := floats("x", 1.0, 2.0, 3.0, nil, 4.0)
		y := floats("y", 2.0, 4.0, 6.0, 100.0, 8.0)
		So(Pearson(x, y), ShouldAlmostEqual, 1.0, 1e-9)
	})
	Convey("Fewer than two shared rows is undefined", t, func() {
		x := floats("x", 1.0, nil)
		y := floats("y", nil, 2.0)
		So(math.IsNaN(Pearson(x, y)), ShouldBeTrue)
	})
	Convey("A constant column is undefined", t, func() {
		x := floats("x", 1.0, 1.0, 1.0)
		y := floats("y", 1.0, 2.0, 3.0)
		So(math.IsNaN(Pearson(x, y)), ShouldBeTrue)
	})
}

func TestCorrelation(t *testing.T) {
	Convey("Given the titanic sample", t, func() {
		f := titanic()
		before := f.Head(f.Rows())
		rec := &chart.Recorder{}
		logger, _ := testutil.NewLogger()
		stage := &Correlation{Plotter: rec, Logger: logger}

		out, err := stage.Process(context.Background(), f)

		Convey("A heatmap over every column is drawn", func() {
			So(err, ShouldBeNil)
			So(rec.Calls, ShouldHaveLength, 1)
			call := rec.Calls[0]
			So(call.Title, ShouldEqual, HeatMapTitle)
			So(call.Labels, ShouldResemble, f.ColumnNames())
			So(call.Matrix[0][0], ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("The encoded copy does not leak into the result", func() {
			So(out, ShouldEqual, f)
			So(reflect.DeepEqual(out.Head(out.Rows()), before), ShouldBeTrue)
			sex, _ := out.ColumnByName("sex")
			So(sex.Kind(), ShouldEqual, eda.KindString)
		})
	})

	Convey("Given a single high-cardinality text column", t, func() {
		c := eda.NewStringColumn("name", 0)
		for i := 0; i < 25; i++ {
			c.Append(fmt.Sprintf("passenger %d", i))
		}
		f, _ := eda.FromColumns(c)
		rec := &chart.Recorder{}
		logger, logs := testutil.NewLogger()

		out, err := (&Correlation{Plotter: rec, Logger: logger}).Process(context.Background(), f)

		Convey("It warns and returns the table without plotting", func() {
			So(err, ShouldBeNil)
			So(out, ShouldEqual, f)
			So(rec.Calls, ShouldBeEmpty)
			So(logs.Contains("too many unique values"), ShouldBeTrue)
			So(logs.Contains("only NaN values"), ShouldBeTrue)
		})
	})

	Convey("Given an empty table", t, func() {
		f := eda.NewFrame(eda.Schema{})
		rec := &chart.Recorder{}
		logger, _ := testutil.NewLogger()
		out, err := (&Correlation{Plotter: rec, Logger: logger}).Process(context.Background(), f)
		So(err, ShouldBeNil)
		So(out, ShouldEqual, f)
		So(rec.Calls, ShouldBeEmpty)
	})
}
