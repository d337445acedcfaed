// Package report renders a Markdown summary of a pipeline run.
package report

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/wdm0006/edachain/pkg/metrics"
	"github.com/wdm0006/edachain/pkg/profile"
)

// Data is everything the report shows.
type Data struct {
	Source   string
	RunID    string
	Strategy string
	Target   string
	Rows     int
	Cols     int
	Profiles []profile.ColumnProfile
	Timings  []metrics.Timing
	// Plots are image paths; they are linked relative to the report file.
	Plots []string
}

// Markdown writes the report for d to w. dir is the directory the report is
// saved in and is used to relativize plot links; empty keeps paths as given.
func Markdown(w io.Writer, d Data, dir string) error {
	md := markdown.NewMarkdown(w)

	md.H1("EDA Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + d.Source + "`"},
			{"Run ID", "`" + d.RunID + "`"},
			{"Shape", fmt.Sprintf("%d rows x %d columns", d.Rows, d.Cols)},
			{"Imputation", d.Strategy},
			{"Target", d.Target},
		},
	})
	md.PlainText("")

	if len(d.Timings) > 0 {
		md.H2("Stages")
		md.PlainText("")
		rows := make([][]string, 0, len(d.Timings))
		for _, t := range d.Timings {
			status := "ok"
			if t.Err != nil {
				status = "failed: " + t.Err.Error()
			}
			rows = append(rows, []string{t.Stage, t.Duration.Round(time.Microsecond).String(), status})
		}
		md.Table(markdown.TableSet{Header: []string{"Stage", "Duration", "Status"}, Rows: rows})
		md.PlainText("")
	}

	writeNumeric(md, d.Profiles)
	writeCategorical(md, d.Profiles)

	if len(d.Plots) > 0 {
		md.H2("Plots")
		md.PlainText("")
		for _, p := range d.Plots {
			link := p
			if dir != "" {
				if rel, err := filepath.Rel(dir, p); err == nil {
					link = filepath.ToSlash(rel)
				}
			}
			md.PlainText(fmt.Sprintf("![%s](%s)", filepath.Base(p), link))
			md.PlainText("")
		}
	}
	return md.Build()
}

func writeNumeric(md *markdown.Markdown, ps []profile.ColumnProfile) {
	var rows [][]string
	for _, p := range ps {
		if n := p.Num; n != nil {
			rows = append(rows, []string{p.Name, strconv.Itoa(n.Count), strconv.Itoa(n.Nulls),
				num(n.Mean), num(n.Std), num(n.Min), num(n.Q25), num(n.Q50), num(n.Q75), num(n.Max)})
		}
	}
	if len(rows) == 0 {
		return
	}
	md.H2("Numeric columns")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Column", "Count", "Missing", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeCategorical(md *markdown.Markdown, ps []profile.ColumnProfile) {
	var rows [][]string
	for _, p := range ps {
		if c := p.Cat; c != nil {
			rows = append(rows, []string{p.Name, p.Kind.String(), strconv.Itoa(c.Count), strconv.Itoa(c.Nulls),
				strconv.Itoa(c.Unique), c.Top, strconv.Itoa(c.Freq)})
		}
	}
	if len(rows) == 0 {
		return
	}
	md.H2("Categorical columns")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Column", "Kind", "Count", "Missing", "Unique", "Top", "Freq"},
		Rows:   rows,
	})
	md.PlainText("")
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}
