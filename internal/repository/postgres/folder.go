package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// PostgresFolderRepository implements the FolderRepository interface.
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository.
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new folder.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (profile_id, name, description, color, icon, parent_id, is_root)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		folder.ProfileID,
		folder.Name,
		folder.Description,
		folder.Color,
		folder.Icon,
		folder.ParentID,
		folder.IsRoot,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("parent folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder scoped to the profile.
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, profileID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, profile_id, name, description, color, icon, parent_id, is_root,
			created_at, updated_at
		FROM %s
		WHERE id = $1 AND profile_id = $2
	`, r.tables.Folders)

	var folder models.Folder
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, profileID).Scan(
		&folder.ID,
		&folder.ProfileID,
		&folder.Name,
		&folder.Description,
		&folder.Color,
		&folder.Icon,
		&folder.ParentID,
		&folder.IsRoot,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// List returns folders filtered by parent, with the contained-document
// count computed per row. Soft-deleted documents do not count.
func (r *PostgresFolderRepository) List(ctx context.Context, profileID string, parentID *string, rootOnly bool) ([]models.Folder, error) {
	where := "f.profile_id = $1"
	args := []interface{}{profileID}

	if rootOnly {
		where += " AND f.parent_id IS NULL"
	} else if parentID != nil {
		where += " AND f.parent_id = $2"
		args = append(args, *parentID)
	}

	query := fmt.Sprintf(`
		SELECT f.id, f.profile_id, f.name, f.description, f.color, f.icon,
			f.parent_id, f.is_root, f.created_at, f.updated_at,
			(SELECT COUNT(*) FROM %s d WHERE d.folder_id = f.id AND d.deleted_at IS NULL)
		FROM %s f
		WHERE %s
		ORDER BY f.name ASC
	`, r.tables.Documents, r.tables.Folders, where)

	return r.queryFolders(ctx, query, args...)
}

// ListAll returns every folder for the profile; used by backup assembly
// and analytics.
func (r *PostgresFolderRepository) ListAll(ctx context.Context, profileID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT f.id, f.profile_id, f.name, f.description, f.color, f.icon,
			f.parent_id, f.is_root, f.created_at, f.updated_at,
			(SELECT COUNT(*) FROM %s d WHERE d.folder_id = f.id AND d.deleted_at IS NULL)
		FROM %s f
		WHERE f.profile_id = $1
		ORDER BY f.name ASC
	`, r.tables.Documents, r.tables.Folders)

	return r.queryFolders(ctx, query, profileID)
}

// Update writes name, appearance and parent in one statement.
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, color = $3, icon = $4, parent_id = $5,
			is_root = $6, updated_at = NOW()
		WHERE id = $7 AND profile_id = $8
	`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		folder.Name,
		folder.Description,
		folder.Color,
		folder.Icon,
		folder.ParentID,
		folder.IsRoot,
		folder.ID,
		folder.ProfileID,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
		}
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a folder. Child folders cascade at the store level;
// contained documents get folder_id set to NULL (see the migration).
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, profileID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND profile_id = $2
	`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, profileID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresFolderRepository) queryFolders(ctx context.Context, query string, args ...interface{}) ([]models.Folder, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.ProfileID,
			&folder.Name,
			&folder.Description,
			&folder.Color,
			&folder.Icon,
			&folder.ParentID,
			&folder.IsRoot,
			&folder.CreatedAt,
			&folder.UpdatedAt,
			&folder.DocumentCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}
