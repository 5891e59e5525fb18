package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/lib/pq"

	"boxoffice-tracker/models"
	"boxoffice-tracker/utils"
)

var identRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// PostgresSource reads the box office table from PostgreSQL. It never
// writes: the database is just another read-only input.
type PostgresSource struct {
	db    *sql.DB
	table string
	query string
}

// NewPostgresSource opens a connection, pings it with retries and returns a
// ready-to-use source for table (optionally schema-qualified).
func NewPostgresSource(ctx context.Context, dsn, table string, retry *utils.RetryConfig) (*PostgresSource, error) {
	query, err := selectAllQuery(table)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres-ping", func() error {
		return db.PingContext(ctx)
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return &PostgresSource{db: db, table: table, query: query}, nil
}

// selectAllQuery quotes every part of a schema-qualified table name.
func selectAllQuery(table string) (string, error) {
	if !identRegexp.MatchString(table) {
		return "", fmt.Errorf("postgres: invalid table name %q", table)
	}
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return "SELECT * FROM " + strings.Join(parts, "."), nil
}

// Fetch reads every row of the table as text cells in column order.
func (ps *PostgresSource) Fetch(ctx context.Context) (*models.Table, error) {
	rows, err := ps.db.QueryContext(ctx, ps.query)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch %s: %w", ps.table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("postgres: columns: %w", err)
	}

	records := [][]string{columns}
	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		rec := make([]string, len(columns))
		for i, c := range cells {
			if c.Valid {
				rec[i] = c.String
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate rows: %w", err)
	}

	return buildTable("postgres:"+ps.table, records)
}

// Close releases the connection pool.
func (ps *PostgresSource) Close() error {
	return ps.db.Close()
}
