// Package database loads conference records from PostgreSQL into a store.
//
// Records live in one table, one JSON object per row:
//
//	CREATE TABLE conference_records (
//	    table_name text    NOT NULL,
//	    position   integer NOT NULL,
//	    record     jsonb   NOT NULL,
//	    PRIMARY KEY (table_name, position)
//	);
//
// The whole table is read once at startup; the server never queries the
// database again.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/codemash/internal/config"
	"github.com/JonMunkholm/codemash/internal/store"
)

// Querier is the read side of *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(context.Context, string, ...any) (pgx.Rows, error)
}

// Open connects a pool with the configured limits and verifies it.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("data source: parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("data source: connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("data source: ping: %w", err)
	}

	// Log which database we connected to
	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}

	return pool, nil
}

// Load reads every row of table, grouped by table_name in position order.
// Rows whose record is not a JSON object are skipped with a warning.
func Load(ctx context.Context, q Querier, table string) (*store.Store, error) {
	if table == "" {
		return nil, fmt.Errorf("data source: table name is required")
	}

	sql := fmt.Sprintf(
		"SELECT table_name, record FROM %s ORDER BY table_name, position",
		pgx.Identifier{table}.Sanitize(),
	)

	rows, err := q.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("data source: query %s: %w", table, err)
	}
	defer rows.Close()

	tables := make(map[string][]store.Record)
	skipped := 0
	for rows.Next() {
		var (
			name string
			raw  []byte
		)
		if err := rows.Scan(&name, &raw); err != nil {
			return nil, fmt.Errorf("data source: scan %s: %w", table, err)
		}

		rec, err := store.DecodeRecord(raw)
		if err != nil {
			skipped++
			slog.Warn("skipping record", "table", name, "error", err)
			if _, ok := tables[name]; !ok {
				tables[name] = []store.Record{}
			}
			continue
		}
		tables[name] = append(tables[name], rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("data source: read %s: %w", table, err)
	}

	s := store.New(tables)
	slog.Info("loaded records from database",
		"tables", len(s.TableNames()),
		"records", s.RecordCount(),
		"skipped", skipped,
	)
	return s, nil
}
