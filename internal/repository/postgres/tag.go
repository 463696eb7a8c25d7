package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// PostgresTagRepository implements the TagRepository interface.
type PostgresTagRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(config *RepositoryConfig) repositories.TagRepository {
	return &PostgresTagRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a tag. Names are unique per profile.
func (r *PostgresTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (profile_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, r.tables.Tags)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		tag.ProfileID,
		tag.Name,
		tag.Color,
	).Scan(&tag.ID, &tag.CreatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("tag '%s': %w", tag.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create tag: %w", err)
	}

	return nil
}

// GetByID retrieves a tag scoped to the profile.
func (r *PostgresTagRepository) GetByID(ctx context.Context, id, profileID string) (*models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT id, profile_id, name, color, created_at
		FROM %s
		WHERE id = $1 AND profile_id = $2
	`, r.tables.Tags)

	var tag models.Tag
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, profileID).Scan(
		&tag.ID, &tag.ProfileID, &tag.Name, &tag.Color, &tag.CreatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}

	return &tag, nil
}

// List returns the profile's tags, name-ordered.
func (r *PostgresTagRepository) List(ctx context.Context, profileID string) ([]models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT id, profile_id, name, color, created_at
		FROM %s
		WHERE profile_id = $1
		ORDER BY name ASC
	`, r.tables.Tags)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.ProfileID, &tag.Name, &tag.Color, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	return tags, nil
}

// Update renames or recolors a tag.
func (r *PostgresTagRepository) Update(ctx context.Context, tag *models.Tag) error {
	query := fmt.Sprintf(`
		UPDATE %s SET name = $1, color = $2
		WHERE id = $3 AND profile_id = $4
	`, r.tables.Tags)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, tag.Name, tag.Color, tag.ID, tag.ProfileID)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("tag '%s': %w", tag.Name, domain.ErrConflict)
		}
		return fmt.Errorf("update tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", tag.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a tag; document_tags rows cascade.
func (r *PostgresTagRepository) Delete(ctx context.Context, id, profileID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1 AND profile_id = $2
	`, r.tables.Tags)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, profileID)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
