// Package encode turns low-cardinality text columns into integer codes.
package encode

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/sjwhitworth/golearn/base"

	"github.com/wdm0006/edachain/pkg/eda"
)

// DefaultMaxCardinality is the exclusive upper bound on distinct values for a
// column to be encoded.
const DefaultMaxCardinality = 20

// Codes maps each non-missing value of c to its position in the sorted set of
// distinct values. Missing cells stay missing. The returned slice holds the
// categories in code order.
func Codes(c *eda.StringColumn) (*eda.IntColumn, []string) {
	seen := map[string]struct{}{}
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Get(i); ok {
			seen[v] = struct{}{}
		}
	}
	cats := make([]string, 0, len(seen))
	for v := range seen {
		cats = append(cats, v)
	}
	sort.Strings(cats)

	attr := base.NewCategoricalAttribute()
	attr.SetName(c.Name())
	for _, v := range cats {
		attr.GetSysValFromString(v)
	}

	out := eda.NewIntColumn(c.Name(), 0)
	for i := 0; i < c.Len(); i++ {
		v, ok := c.Get(i)
		if !ok {
			out.AppendNull()
			continue
		}
		out.Append(int64(base.UnpackBytesToU64(attr.GetSysValFromString(v))))
	}
	return out, attr.GetValues()
}

// Categorical replaces every text column with fewer than MaxCardinality
// distinct values by its integer codes. Wider columns are skipped with a
// warning.
type Categorical struct {
	MaxCardinality int
	Logger         *slog.Logger
}

func (t *Categorical) Name() string { return "encode_categorical" }

func (t *Categorical) Process(ctx context.Context, f *eda.Frame) (*eda.Frame, error) {
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := t.MaxCardinality
	if limit <= 0 {
		limit = DefaultMaxCardinality
	}
	for _, name := range f.ColumnNames() {
		col, _ := f.ColumnByName(name)
		sc, ok := col.(*eda.StringColumn)
		if !ok {
			continue
		}
		if n := eda.Distinct(sc); n >= limit {
			logger.WarnContext(ctx, "skipping column: too many unique values, consider one-hot encoding", "column", name, "unique", n)
			continue
		}
		codes, _ := Codes(sc)
		if err := f.ReplaceColumn(codes); err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
	}
	return f, nil
}
