package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// PostgresAuditLogRepository implements the AuditLogRepository
// interface. Append-only; nothing reads these rows back.
type PostgresAuditLogRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAuditLogRepository creates a new audit log repository.
func NewAuditLogRepository(config *RepositoryConfig) repositories.AuditLogRepository {
	return &PostgresAuditLogRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Append writes one audit entry.
func (r *PostgresAuditLogRepository) Append(ctx context.Context, entry *models.AuditLog) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, action, entity_type, entity_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, r.tables.AuditLogs)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		entry.UserID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}

	return nil
}
