package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// PostgresAnalyticsRepository implements the AnalyticsRepository
// interface over the per-day counter table.
type PostgresAnalyticsRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAnalyticsRepository creates a new analytics repository.
func NewAnalyticsRepository(config *RepositoryConfig) repositories.AnalyticsRepository {
	return &PostgresAnalyticsRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// eventColumn maps a trackable event to its counter column. The column
// names are fixed identifiers, never user input.
func eventColumn(event string) (string, error) {
	switch event {
	case models.EventDocumentViewed:
		return "documents_viewed", nil
	case models.EventDocumentShared:
		return "documents_shared", nil
	case models.EventReminderSet:
		return "reminders_set", nil
	case models.EventReminderCompleted:
		return "reminders_completed", nil
	default:
		return "", fmt.Errorf("%w: unknown analytics event %q", domain.ErrValidation, event)
	}
}

// Increment bumps the event counter for the profile's row at the given
// day, creating the row lazily on first event. The upsert keys on the
// (profile_id, date) unique constraint.
func (r *PostgresAnalyticsRepository) Increment(ctx context.Context, profileID string, date time.Time, event string) error {
	column, err := eventColumn(event)
	if err != nil {
		return err
	}

	day := date.Truncate(24 * time.Hour)

	query := fmt.Sprintf(`
		INSERT INTO %s (profile_id, date, %s)
		VALUES ($1, $2, 1)
		ON CONFLICT (profile_id, date)
		DO UPDATE SET %s = %s.%s + 1
	`, r.tables.Analytics, column, column, r.tables.Analytics, column)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, profileID, day); err != nil {
		return fmt.Errorf("increment analytics counter: %w", err)
	}

	return nil
}
