package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// PostgresBackupRepository implements the BackupRepository interface.
type PostgresBackupRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewBackupRepository creates a new backup repository.
func NewBackupRepository(config *RepositoryConfig) repositories.BackupRepository {
	return &PostgresBackupRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a backup row in its initial state.
func (r *PostgresBackupRepository) Create(ctx context.Context, backup *models.Backup) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (profile_id, name, type, status, progress)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, r.tables.Backups)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		backup.ProfileID,
		backup.Name,
		backup.Type,
		backup.Status,
		backup.Progress,
	).Scan(&backup.ID, &backup.CreatedAt)

	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}

	return nil
}

// List returns the most recent backups, newest first.
func (r *PostgresBackupRepository) List(ctx context.Context, profileID string, limit int) ([]models.Backup, error) {
	query := fmt.Sprintf(`
		SELECT id, profile_id, name, type, status, progress, file_url, file_size,
			completed_at, created_at
		FROM %s
		WHERE profile_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, r.tables.Backups)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	defer rows.Close()

	var backups []models.Backup
	for rows.Next() {
		var b models.Backup
		err := rows.Scan(
			&b.ID, &b.ProfileID, &b.Name, &b.Type, &b.Status, &b.Progress,
			&b.FileURL, &b.FileSize, &b.CompletedAt, &b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan backup: %w", err)
		}
		backups = append(backups, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate backups: %w", err)
	}

	return backups, nil
}

// UpdateStatus writes the lifecycle fields after export finishes or
// fails.
func (r *PostgresBackupRepository) UpdateStatus(ctx context.Context, backup *models.Backup) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, progress = $2, file_url = $3, file_size = $4, completed_at = $5
		WHERE id = $6 AND profile_id = $7
	`, r.tables.Backups)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		backup.Status,
		backup.Progress,
		backup.FileURL,
		backup.FileSize,
		backup.CompletedAt,
		backup.ID,
		backup.ProfileID,
	)

	if err != nil {
		return fmt.Errorf("update backup: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("backup %s: %w", backup.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a backup row.
func (r *PostgresBackupRepository) Delete(ctx context.Context, id, profileID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1 AND profile_id = $2
	`, r.tables.Backups)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, profileID)
	if err != nil {
		return fmt.Errorf("delete backup: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("backup %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
