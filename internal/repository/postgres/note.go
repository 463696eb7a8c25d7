package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// PostgresNoteRepository implements the NoteRepository interface.
type PostgresNoteRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	sb     sq.StatementBuilderType
}

// NewNoteRepository creates a new note repository.
func NewNoteRepository(config *RepositoryConfig) repositories.NoteRepository {
	return &PostgresNoteRepository{
		pool:   config.Pool,
		tables: config.Tables,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts a note.
func (r *PostgresNoteRepository) Create(ctx context.Context, note *models.Note) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (profile_id, title, content, is_pinned, document_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Notes)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		note.ProfileID,
		note.Title,
		note.Content,
		note.IsPinned,
		note.DocumentID,
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("note document: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create note: %w", err)
	}

	return nil
}

// GetByID retrieves a note scoped to the profile.
func (r *PostgresNoteRepository) GetByID(ctx context.Context, id, profileID string) (*models.Note, error) {
	query := fmt.Sprintf(`
		SELECT n.id, n.profile_id, n.title, n.content, n.is_pinned, n.document_id,
			n.created_at, n.updated_at, d.id, d.title
		FROM %s n
		LEFT JOIN %s d ON d.id = n.document_id
		WHERE n.id = $1 AND n.profile_id = $2
	`, r.tables.Notes, r.tables.Documents)

	row := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, profileID)
	note, err := scanNote(row.Scan)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	return note, nil
}

// List returns notes pinned-first, most recently updated next, with the
// linked document projection embedded.
func (r *PostgresNoteRepository) List(ctx context.Context, profileID string, filter *models.NoteFilter) ([]models.Note, error) {
	base := r.sb.Select(
		"n.id", "n.profile_id", "n.title", "n.content", "n.is_pinned", "n.document_id",
		"n.created_at", "n.updated_at", "d.id", "d.title",
	).
		From(r.tables.Notes + " n").
		LeftJoin(r.tables.Documents + " d ON d.id = n.document_id").
		Where(sq.Eq{"n.profile_id": profileID}).
		OrderBy("n.is_pinned DESC", "n.updated_at DESC")

	if filter.DocumentID != "" {
		base = base.Where(sq.Eq{"n.document_id": filter.DocumentID})
	}
	if filter.PinnedOnly {
		base = base.Where(sq.Eq{"n.is_pinned": true})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"n.title": pattern},
			sq.ILike{"n.content": pattern},
		})
	}

	query, args, err := base.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build notes query: %w", err)
	}

	return r.queryNotes(ctx, query, args...)
}

// ListAll returns every note for the profile; used by backup assembly.
func (r *PostgresNoteRepository) ListAll(ctx context.Context, profileID string) ([]models.Note, error) {
	query := fmt.Sprintf(`
		SELECT n.id, n.profile_id, n.title, n.content, n.is_pinned, n.document_id,
			n.created_at, n.updated_at, d.id, d.title
		FROM %s n
		LEFT JOIN %s d ON d.id = n.document_id
		WHERE n.profile_id = $1
		ORDER BY n.updated_at DESC
	`, r.tables.Notes, r.tables.Documents)

	return r.queryNotes(ctx, query, profileID)
}

// Update writes title, content and pin state.
func (r *PostgresNoteRepository) Update(ctx context.Context, note *models.Note) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, is_pinned = $3, updated_at = NOW()
		WHERE id = $4 AND profile_id = $5
	`, r.tables.Notes)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		note.Title,
		note.Content,
		note.IsPinned,
		note.ID,
		note.ProfileID,
	)

	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", note.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a note.
func (r *PostgresNoteRepository) Delete(ctx context.Context, id, profileID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1 AND profile_id = $2
	`, r.tables.Notes)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, profileID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresNoteRepository) queryNotes(ctx context.Context, query string, args ...interface{}) ([]models.Note, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		note, err := scanNote(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	return notes, nil
}

// scanNote reads one note row including the left-joined document
// projection.
func scanNote(scan func(dest ...interface{}) error) (*models.Note, error) {
	var note models.Note
	var docID, docTitle *string

	err := scan(
		&note.ID, &note.ProfileID, &note.Title, &note.Content, &note.IsPinned,
		&note.DocumentID, &note.CreatedAt, &note.UpdatedAt, &docID, &docTitle,
	)
	if err != nil {
		return nil, err
	}

	if docID != nil && docTitle != nil {
		note.Document = &models.NoteDocumentRef{ID: *docID, Title: *docTitle}
	}

	return &note, nil
}
