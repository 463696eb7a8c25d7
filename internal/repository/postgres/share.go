package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// PostgresSharedLinkRepository implements the SharedLinkRepository
// interface.
type PostgresSharedLinkRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewSharedLinkRepository creates a new shared link repository.
func NewSharedLinkRepository(config *RepositoryConfig) repositories.SharedLinkRepository {
	return &PostgresSharedLinkRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a constrained share link.
func (r *PostgresSharedLinkRepository) Create(ctx context.Context, link *models.SharedLink) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (token, document_id, email, password_hash, max_downloads, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, r.tables.SharedLinks)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		link.Token,
		link.DocumentID,
		link.Email,
		link.PasswordHash,
		link.MaxDownloads,
		link.ExpiresAt,
	).Scan(&link.ID, &link.CreatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("shared link document: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create shared link: %w", err)
	}

	return nil
}

// ListByDocument returns a document's links, newest first.
func (r *PostgresSharedLinkRepository) ListByDocument(ctx context.Context, documentID string) ([]models.SharedLink, error) {
	query := fmt.Sprintf(`
		SELECT id, token, document_id, email, password_hash, max_downloads,
			downloads, expires_at, created_at
		FROM %s
		WHERE document_id = $1
		ORDER BY created_at DESC
	`, r.tables.SharedLinks)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list shared links: %w", err)
	}
	defer rows.Close()

	var links []models.SharedLink
	for rows.Next() {
		var link models.SharedLink
		err := rows.Scan(
			&link.ID, &link.Token, &link.DocumentID, &link.Email, &link.PasswordHash,
			&link.MaxDownloads, &link.Downloads, &link.ExpiresAt, &link.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan shared link: %w", err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shared links: %w", err)
	}

	return links, nil
}

// Delete revokes a link. The join to the documents table scopes the
// delete to the owning profile, so foreign ids report not-found.
func (r *PostgresSharedLinkRepository) Delete(ctx context.Context, id, profileID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s sl
		USING %s d
		WHERE sl.id = $1 AND sl.document_id = d.id AND d.profile_id = $2
	`, r.tables.SharedLinks, r.tables.Documents)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, profileID)
	if err != nil {
		return fmt.Errorf("delete shared link: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("shared link %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
