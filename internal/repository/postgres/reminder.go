package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// PostgresReminderRepository implements the ReminderRepository interface.
type PostgresReminderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	sb     sq.StatementBuilderType
}

// NewReminderRepository creates a new reminder repository.
func NewReminderRepository(config *RepositoryConfig) repositories.ReminderRepository {
	return &PostgresReminderRepository{
		pool:   config.Pool,
		tables: config.Tables,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const reminderColumns = `id, profile_id, title, description, type, due_date, reminder_days,
		is_completed, completed_at, is_recurring, recurring_type, recurring_end,
		priority, color, created_at, updated_at`

// Create inserts a reminder.
func (r *PostgresReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (profile_id, title, description, type, due_date, reminder_days,
			is_completed, is_recurring, recurring_type, recurring_end, priority, color)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, r.tables.Reminders)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		reminder.ProfileID,
		reminder.Title,
		reminder.Description,
		reminder.Type,
		reminder.DueDate,
		reminder.ReminderDays,
		reminder.IsCompleted,
		reminder.IsRecurring,
		reminder.RecurringType,
		reminder.RecurringEnd,
		reminder.Priority,
		reminder.Color,
	).Scan(&reminder.ID, &reminder.CreatedAt, &reminder.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}

	return nil
}

// GetByID retrieves a reminder scoped to the profile.
func (r *PostgresReminderRepository) GetByID(ctx context.Context, id, profileID string) (*models.Reminder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE id = $1 AND profile_id = $2
	`, reminderColumns, r.tables.Reminders)

	var rem models.Reminder
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, profileID).Scan(
		&rem.ID, &rem.ProfileID, &rem.Title, &rem.Description, &rem.Type,
		&rem.DueDate, &rem.ReminderDays, &rem.IsCompleted, &rem.CompletedAt,
		&rem.IsRecurring, &rem.RecurringType, &rem.RecurringEnd,
		&rem.Priority, &rem.Color, &rem.CreatedAt, &rem.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("reminder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get reminder: %w", err)
	}

	return &rem, nil
}

// List returns one page of reminders plus the total match count,
// incomplete first, then soonest due date.
func (r *PostgresReminderRepository) List(ctx context.Context, profileID string, filter *models.ReminderFilter) ([]models.Reminder, int, error) {
	base := r.sb.Select().
		From(r.tables.Reminders).
		Where(sq.Eq{"profile_id": profileID})

	if filter.Type != "" {
		base = base.Where(sq.Eq{"type": filter.Type})
	}
	if filter.Completed != nil {
		base = base.Where(sq.Eq{"is_completed": *filter.Completed})
	}
	if filter.Upcoming {
		now := time.Now()
		base = base.
			Where(sq.Eq{"is_completed": false}).
			Where(sq.GtOrEq{"due_date": now}).
			Where(sq.LtOrEq{"due_date": now.AddDate(0, 0, 7)})
	}

	countQuery, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reminders: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}

	listQuery, listArgs, err := base.
		Columns(reminderColumns).
		OrderBy("is_completed ASC", "due_date ASC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	reminders, err := r.queryReminders(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, err
	}

	return reminders, total, nil
}

// ListAll returns every reminder for the profile; used by analytics and
// backup assembly.
func (r *PostgresReminderRepository) ListAll(ctx context.Context, profileID string) ([]models.Reminder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE profile_id = $1
		ORDER BY due_date ASC
	`, reminderColumns, r.tables.Reminders)

	return r.queryReminders(ctx, query, profileID)
}

// Update writes all mutable fields.
func (r *PostgresReminderRepository) Update(ctx context.Context, reminder *models.Reminder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, type = $3, due_date = $4, reminder_days = $5,
			is_completed = $6, completed_at = $7, is_recurring = $8, recurring_type = $9,
			recurring_end = $10, priority = $11, color = $12, updated_at = NOW()
		WHERE id = $13 AND profile_id = $14
	`, r.tables.Reminders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		reminder.Title,
		reminder.Description,
		reminder.Type,
		reminder.DueDate,
		reminder.ReminderDays,
		reminder.IsCompleted,
		reminder.CompletedAt,
		reminder.IsRecurring,
		reminder.RecurringType,
		reminder.RecurringEnd,
		reminder.Priority,
		reminder.Color,
		reminder.ID,
		reminder.ProfileID,
	)

	if err != nil {
		return fmt.Errorf("update reminder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reminder %s: %w", reminder.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a reminder.
func (r *PostgresReminderRepository) Delete(ctx context.Context, id, profileID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1 AND profile_id = $2
	`, r.tables.Reminders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, profileID)
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reminder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresReminderRepository) queryReminders(ctx context.Context, query string, args ...interface{}) ([]models.Reminder, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		var rem models.Reminder
		err := rows.Scan(
			&rem.ID, &rem.ProfileID, &rem.Title, &rem.Description, &rem.Type,
			&rem.DueDate, &rem.ReminderDays, &rem.IsCompleted, &rem.CompletedAt,
			&rem.IsRecurring, &rem.RecurringType, &rem.RecurringEnd,
			&rem.Priority, &rem.Color, &rem.CreatedAt, &rem.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reminders: %w", err)
	}

	return reminders, nil
}
