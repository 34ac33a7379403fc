package loaders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Conversly/autoskola-bot/internal/types"
	"github.com/Conversly/autoskola-bot/internal/utils"
)

// PostgresStore serves the same logical tables from a single JSONB table:
//
//	CREATE TABLE records (
//	    id         bigserial PRIMARY KEY,
//	    table_name text  NOT NULL,
//	    slug       text,
//	    fields     jsonb NOT NULL
//	);
type PostgresStore struct {
	dsn  string
	pool *pgxpool.Pool
}

func NewPostgresStore(dsn string, maxConns int) (*PostgresStore, error) {
	store := &PostgresStore{
		dsn: dsn,
	}

	pool, err := store.createConnectionPool(maxConns)
	if err != nil {
		return nil, err
	}

	store.pool = pool
	utils.Zlog.Info("Connected to PostgreSQL record store", zap.Int32("max_conns", pool.Config().MaxConns))
	return store, nil
}

func (s *PostgresStore) createConnectionPool(maxConns int) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(s.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Postgres DSN: %w", err)
	}

	if maxConns <= 0 {
		maxConns = 10
	}
	cfg.MaxConns = int32(maxConns)
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	cfg.MaxConnLifetime = 60 * time.Minute
	cfg.MaxConnIdleTime = 15 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}

	return pool, nil
}

func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Fetch filters on the slug column in one query. Rows imported without a slug
// column value are matched through the slug aliases inside their fields.
func (s *PostgresStore) Fetch(ctx context.Context, table, slug string) ([]types.Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT coalesce(slug, ''), fields FROM records
		 WHERE table_name = $1 AND (lower(slug) = lower($2) OR slug IS NULL OR slug = '')
		 ORDER BY id`,
		table, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var candidates []slugRow
	for rows.Next() {
		var (
			col    string
			fields map[string]any
		)
		if err := rows.Scan(&col, &fields); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		candidates = append(candidates, slugRow{slug: col, fields: types.Record(fields)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return matchSlugRows(candidates, slug), nil
}

type slugRow struct {
	slug   string
	fields types.Record
}

// matchSlugRows keeps rows whose slug column matches, plus rows without a slug
// column whose fields carry the slug.
func matchSlugRows(rows []slugRow, slug string) []types.Record {
	want := strings.ToLower(strings.TrimSpace(slug))
	out := make([]types.Record, 0, len(rows))
	for _, r := range rows {
		col := strings.ToLower(strings.TrimSpace(r.slug))
		switch {
		case col != "":
			if col == want {
				out = append(out, r.fields)
			}
		case strings.ToLower(r.fields.Get(types.FieldSlug)) == want:
			out = append(out, r.fields)
		}
	}
	return out
}

func (s *PostgresStore) FetchAll(ctx context.Context, table string) ([]types.Record, error) {
	return s.query(ctx, `SELECT fields FROM records WHERE table_name = $1 ORDER BY id`, table)
}

func (s *PostgresStore) query(ctx context.Context, sql string, args ...any) ([]types.Record, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var out []types.Record
	for rows.Next() {
		var fields map[string]any
		if err := rows.Scan(&fields); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		out = append(out, types.Record(fields))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return out, nil
}
