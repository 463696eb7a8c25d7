package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// PostgresProfileRepository implements the ProfileRepository interface.
type PostgresProfileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(config *RepositoryConfig) repositories.ProfileRepository {
	return &PostgresProfileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const profileColumns = `id, user_id, name, email, phone, college, university, department,
		semester, roll_number, language, theme, storage_used, storage_limit,
		created_at, updated_at`

// Create inserts a profile. One profile per user id.
func (r *PostgresProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, name, email, phone, college, university, department,
			semester, roll_number, language, theme, storage_used, storage_limit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`, r.tables.Profiles)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		profile.UserID,
		profile.Name,
		profile.Email,
		profile.Phone,
		profile.College,
		profile.University,
		profile.Department,
		profile.Semester,
		profile.RollNumber,
		profile.Language,
		profile.Theme,
		profile.StorageUsed,
		profile.StorageLimit,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("profile for user: %w", domain.ErrConflict)
		}
		return fmt.Errorf("create profile: %w", err)
	}

	return nil
}

// GetByUserID resolves the caller's profile from the session identity.
func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1`, profileColumns, r.tables.Profiles)

	var p models.Profile
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Email, &p.Phone, &p.College, &p.University,
		&p.Department, &p.Semester, &p.RollNumber, &p.Language, &p.Theme,
		&p.StorageUsed, &p.StorageLimit, &p.CreatedAt, &p.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("profile: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &p, nil
}

// Update writes settings fields. Quota counters are managed separately
// via AddStorageUsed.
func (r *PostgresProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, email = $2, phone = $3, college = $4, university = $5,
			department = $6, semester = $7, roll_number = $8, language = $9,
			theme = $10, updated_at = NOW()
		WHERE id = $11
	`, r.tables.Profiles)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		profile.Name,
		profile.Email,
		profile.Phone,
		profile.College,
		profile.University,
		profile.Department,
		profile.Semester,
		profile.RollNumber,
		profile.Language,
		profile.Theme,
		profile.ID,
	)

	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", profile.ID, domain.ErrNotFound)
	}

	return nil
}

// AddStorageUsed adjusts the advisory storage counter.
func (r *PostgresProfileRepository) AddStorageUsed(ctx context.Context, profileID string, delta int64) error {
	query := fmt.Sprintf(`
		UPDATE %s SET storage_used = storage_used + $1, updated_at = NOW()
		WHERE id = $2
	`, r.tables.Profiles)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, delta, profileID)
	if err != nil {
		return fmt.Errorf("update storage used: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", profileID, domain.ErrNotFound)
	}

	return nil
}
