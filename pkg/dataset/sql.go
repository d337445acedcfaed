package dataset

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/wdm0006/edachain/pkg/eda"
)

// ReadSQL runs query against a postgres or sqlite database and loads the
// result set. Column order follows the query.
func ReadSQL(ctx context.Context, driver, dsn, query string) (*eda.Frame, error) {
	if driver == "" {
		driver = "sqlite"
	}
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer func() { _ = rows.Close() }()
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var recs []map[string]any
	for rows.Next() {
		m := make(map[string]any, len(cols))
		if err := rows.MapScan(m); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(recs), err)
		}
		recs = append(recs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return fromMaps(cols, recs)
}
