package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain/repositories"
)

// RepositoryConfig holds shared wiring for repository implementations.
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds environment-prefixed table names so dev/test/prod
// can share one database.
type TableNames struct {
	Profiles     string
	Documents    string
	DocumentTags string
	Folders      string
	Tags         string
	Reminders    string
	Notes        string
	Backups      string
	SharedLinks  string
	AuditLogs    string
	Analytics    string
}

// NewTableNames creates table names with the given prefix.
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Profiles:     prefix + "profiles",
		Documents:    prefix + "documents",
		DocumentTags: prefix + "document_tags",
		Folders:      prefix + "folders",
		Tags:         prefix + "tags",
		Reminders:    prefix + "reminders",
		Notes:        prefix + "notes",
		Backups:      prefix + "backups",
		SharedLinks:  prefix + "shared_links",
		AuditLogs:    prefix + "audit_logs",
		Analytics:    prefix + "analytics",
	}
}

// CreateConnectionPool creates a pgx connection pool and verifies it
// with a ping. Table names are interpolated before statements reach the
// server, so each environment prefix gets its own prepared statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction from the context when present,
// otherwise the pool. Repositories call this on every query so they
// automatically participate in transactions.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
