package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mamadbah2/lfs-pipeline/internal/domain/models"
)

const pingTimeout = 5 * time.Second

// Open connects to Postgres through the pgx stdlib driver and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// PostgresRepository upserts labour force rows directly into a Postgres table.
type PostgresRepository struct {
	db    *sql.DB
	table string
}

// NewPostgresRepository creates a repository writing into table.
func NewPostgresRepository(db *sql.DB, table string) *PostgresRepository {
	return &PostgresRepository{db: db, table: table}
}

// UpsertLabourForce writes every row in one INSERT ... ON CONFLICT (date) statement.
func (r *PostgresRepository) UpsertLabourForce(ctx context.Context, rows []models.LabourForceRow) error {
	if len(rows) == 0 {
		return nil
	}

	query, args := buildUpsert(r.table, rows)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("UpsertLabourForce: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func buildUpsert(table string, rows []models.LabourForceRow) (string, []any) {
	cols := models.Columns
	var sb strings.Builder

	sb.WriteString("INSERT INTO ")
	sb.WriteString(pgx.Identifier{table}.Sanitize())
	sb.WriteString(" (")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(") VALUES ")

	args := make([]any, 0, len(rows)*len(cols))
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for j, v := range row.Values() {
			if j > 0 {
				sb.WriteString(", ")
			}
			args = append(args, v)
			fmt.Fprintf(&sb, "$%d", len(args))
		}
		sb.WriteString(")")
	}

	sb.WriteString(" ON CONFLICT (date) DO UPDATE SET ")
	for i, col := range cols[1:] {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s = EXCLUDED.%s", col, col)
	}

	return sb.String(), args
}
