package encode

import (
	"context"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/wdm0006/edachain/internal/testutil"
	"github.com/wdm0006/edachain/pkg/eda"
)

func textColumn(name string, vals ...any) *eda.StringColumn {
	c := eda.NewStringColumn(name, 0)
	for _, v := range vals {
		if v == nil {
			c.AppendNull()
			continue
		}
		c.Append(v.(string))
	}
	return c
}

func TestCodes(t *testing.T) {
	Convey("Given a text column with a missing cell", t, func() {
		c := textColumn("embarked", "S", "C", nil, "Q", "S")

		Convey("Codes follow sorted category order", func() {
			codes, cats := Codes(c)
			So(cats, ShouldResemble, []string{"C", "Q", "S"})
			v0, _ := codes.Get(0)
			v1, _ := codes.Get(1)
			v3, _ := codes.Get(3)
			So(v0, ShouldEqual, 2)
			So(v1, ShouldEqual, 0)
			So(v3, ShouldEqual, 1)
		})

		Convey("Missing cells stay missing", func() {
			codes, _ := Codes(c)
			So(codes.IsNull(2), ShouldBeTrue)
			So(codes.Len(), ShouldEqual, c.Len())
		})
	})
}

func TestCategorical(t *testing.T) {
	Convey("Given a frame with a narrow and a wide text column", t, func() {
		wide := make([]any, 25)
		narrow := make([]any, 25)
		for i := range wide {
			wide[i] = fmt.Sprintf("name-%02d", i)
			narrow[i] = []string{"male", "female"}[i%2]
		}
		f, err := eda.FromColumns(textColumn("sex", narrow...), textColumn("name", wide...))
		So(err, ShouldBeNil)
		logger, logs := testutil.NewLogger()

		Convey("Only the narrow column is encoded", func() {
			out, err := (&Categorical{Logger: logger}).Process(context.Background(), f)
			So(err, ShouldBeNil)
			sex, _ := out.ColumnByName("sex")
			name, _ := out.ColumnByName("name")
			So(sex.Kind(), ShouldEqual, eda.KindInt)
			So(name.Kind(), ShouldEqual, eda.KindString)
			So(logs.Contains("too many unique values"), ShouldBeTrue)
		})

		Convey("A larger limit encodes both", func() {
			out, err := (&Categorical{MaxCardinality: 30, Logger: logger}).Process(context.Background(), f)
			So(err, ShouldBeNil)
			name, _ := out.ColumnByName("name")
			So(name.Kind(), ShouldEqual, eda.KindInt)
		})
	})
}
