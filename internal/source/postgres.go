package source

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/companysearch/internal/config"
	"github.com/JonMunkholm/companysearch/internal/core"
)

// querier is the part of *pgxpool.Pool used by PostgresLoader.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresLoader reads the whole registry table on every Load.
// Column names become the header; NULL values load as empty strings.
type PostgresLoader struct {
	db     querier
	table  string
	source string
}

// NewPostgresLoader creates a pooled loader for the table named by cfg.
// The pool connects lazily, so an unreachable database surfaces on the
// first Load as *core.FetchError. Call Close to release the pool.
func NewPostgresLoader(ctx context.Context, cfg config.DatasetConfig) (*PostgresLoader, func(), error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse dataset url: %w", err)
	}
	poolConfig.MaxConns = 4
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("create pool: %w", err)
	}

	l := &PostgresLoader{
		db:     pool,
		table:  cfg.Table,
		source: config.MaskURL(cfg.URL) + "#" + cfg.Table,
	}
	return l, pool.Close, nil
}

// Load runs one SELECT over the table. Rows are ordered by the first
// column so that consecutive loads list them the same way.
func (l *PostgresLoader) Load(ctx context.Context) (*core.Dataset, error) {
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY 1", tableIdentifier(l.table))

	rows, err := l.db.Query(ctx, query)
	if err != nil {
		return nil, &core.FetchError{Source: l.source, Err: err}
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, fd := range fields {
		columns[i] = strings.TrimSpace(fd.Name)
	}

	ds := &core.Dataset{Columns: columns, Records: []core.Record{}}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, &core.FetchError{Source: l.source, Err: fmt.Errorf("read row %d: %w", len(ds.Records)+1, err)}
		}
		out := make([]string, len(vals))
		for i, v := range vals {
			out[i] = formatValue(v)
		}
		ds.Records = append(ds.Records, core.NewRecord(columns, out))
	}
	if err := rows.Err(); err != nil {
		return nil, &core.FetchError{Source: l.source, Err: err}
	}
	if len(columns) == 0 {
		return nil, &core.ParseError{Err: core.ErrEmptyPayload}
	}

	return ds, nil
}

func (l *PostgresLoader) String() string {
	return l.source
}

// tableIdentifier quotes a possibly schema-qualified table name.
func tableIdentifier(table string) string {
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}

// formatValue renders a decoded column value as text.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil {
			return fmt.Sprint(v)
		}
		if _, again := dv.(driver.Valuer); again {
			return fmt.Sprint(dv)
		}
		return formatValue(dv)
	default:
		return fmt.Sprint(v)
	}
}
