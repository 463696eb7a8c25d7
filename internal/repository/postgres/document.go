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

// PostgresDocumentRepository implements the DocumentRepository interface.
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	sb     sq.StatementBuilderType
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const documentColumns = `d.id, d.profile_id, d.title, d.category, d.sub_category, d.description,
		d.file_url, d.file_name, d.file_size, d.file_type, d.mime_type, d.folder_id,
		d.is_favorite, d.extracted_text, d.share_token, d.created_at, d.updated_at, d.deleted_at`

// Create inserts a document's metadata row.
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (profile_id, title, category, sub_category, description,
			file_url, file_name, file_size, file_type, mime_type, folder_id,
			is_favorite, extracted_text, share_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`, r.tables.Documents)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		doc.ProfileID,
		doc.Title,
		doc.Category,
		doc.SubCategory,
		doc.Description,
		doc.FileURL,
		doc.FileName,
		doc.FileSize,
		doc.FileType,
		doc.MimeType,
		doc.FolderID,
		doc.IsFavorite,
		doc.ExtractedText,
		doc.ShareToken,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("document folder or profile: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a non-deleted document scoped to the profile.
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id, profileID string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s d
		WHERE d.id = $1 AND d.profile_id = $2 AND d.deleted_at IS NULL
	`, documentColumns, r.tables.Documents)

	var doc models.Document
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, profileID).Scan(
		&doc.ID, &doc.ProfileID, &doc.Title, &doc.Category, &doc.SubCategory,
		&doc.Description, &doc.FileURL, &doc.FileName, &doc.FileSize, &doc.FileType,
		&doc.MimeType, &doc.FolderID, &doc.IsFavorite, &doc.ExtractedText,
		&doc.ShareToken, &doc.CreatedAt, &doc.UpdatedAt, &doc.DeletedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	if err := r.attachTags(ctx, []*models.Document{&doc}); err != nil {
		return nil, err
	}

	return &doc, nil
}

// List returns one page of non-deleted documents plus the total match
// count. The filter predicates are assembled dynamically.
func (r *PostgresDocumentRepository) List(ctx context.Context, profileID string, filter *models.DocumentFilter) ([]models.Document, int, error) {
	base := r.sb.Select().
		From(r.tables.Documents + " d").
		Where(sq.Eq{"d.profile_id": profileID}).
		Where("d.deleted_at IS NULL")

	if filter.Category != "" && filter.Category != "all" {
		base = base.Where(sq.Eq{"d.category": filter.Category})
	}
	if filter.Favorite {
		base = base.Where(sq.Eq{"d.is_favorite": true})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"d.title": pattern},
			sq.ILike{"d.description": pattern},
			sq.ILike{"d.file_name": pattern},
			sq.ILike{"d.extracted_text": pattern},
		})
	}
	if len(filter.TagIDs) > 0 {
		base = base.Where(sq.Expr(
			fmt.Sprintf("EXISTS (SELECT 1 FROM %s dt WHERE dt.document_id = d.id AND dt.tag_id = ANY(?))", r.tables.DocumentTags),
			filter.TagIDs,
		))
	}

	countQuery, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	listQuery, listArgs, err := base.
		Columns(documentColumns).
		OrderBy("d.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	docs, err := r.queryDocuments(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

// ListAll returns every non-deleted document for the profile with tags
// attached; used by analytics and backup assembly.
func (r *PostgresDocumentRepository) ListAll(ctx context.Context, profileID string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s d
		WHERE d.profile_id = $1 AND d.deleted_at IS NULL
		ORDER BY d.created_at DESC
	`, documentColumns, r.tables.Documents)

	return r.queryDocuments(ctx, query, profileID)
}

// Update rewrites the mutable metadata columns.
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s SET title = $1, category = $2, sub_category = $3, description = $4,
			folder_id = $5, is_favorite = $6, updated_at = NOW()
		WHERE id = $7 AND profile_id = $8 AND deleted_at IS NULL
		RETURNING updated_at
	`, r.tables.Documents)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		doc.Title,
		doc.Category,
		doc.SubCategory,
		doc.Description,
		doc.FolderID,
		doc.IsFavorite,
		doc.ID,
		doc.ProfileID,
	).Scan(&doc.UpdatedAt)

	if err != nil {
		if isPgNoRowsError(err) {
			return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("document folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("update document: %w", err)
	}

	return nil
}

// SetTags replaces the document's tag set.
func (r *PostgresDocumentRepository) SetTags(ctx context.Context, docID string, tagIDs []string) error {
	exec := GetExecutor(ctx, r.pool)

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE document_id = $1`, r.tables.DocumentTags)
	if _, err := exec.Exec(ctx, deleteQuery, docID); err != nil {
		return fmt.Errorf("clear document tags: %w", err)
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (document_id, tag_id) VALUES ($1, $2)
	`, r.tables.DocumentTags)

	for _, tagID := range tagIDs {
		if _, err := exec.Exec(ctx, insertQuery, docID, tagID); err != nil {
			if isPgForeignKeyError(err) {
				return fmt.Errorf("tag %s: %w", tagID, domain.ErrNotFound)
			}
			return fmt.Errorf("attach tag: %w", err)
		}
	}

	return nil
}

// SoftDelete stamps deleted_at on the given documents. Rows of other
// profiles are untouched by the scope predicate.
func (r *PostgresDocumentRepository) SoftDelete(ctx context.Context, ids []string, profileID string, at time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s SET deleted_at = $1, updated_at = $1
		WHERE id = ANY($2) AND profile_id = $3 AND deleted_at IS NULL
	`, r.tables.Documents)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, at, ids, profileID); err != nil {
		return fmt.Errorf("soft delete documents: %w", err)
	}

	return nil
}

func (r *PostgresDocumentRepository) queryDocuments(ctx context.Context, query string, args ...interface{}) ([]models.Document, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(
			&doc.ID, &doc.ProfileID, &doc.Title, &doc.Category, &doc.SubCategory,
			&doc.Description, &doc.FileURL, &doc.FileName, &doc.FileSize, &doc.FileType,
			&doc.MimeType, &doc.FolderID, &doc.IsFavorite, &doc.ExtractedText,
			&doc.ShareToken, &doc.CreatedAt, &doc.UpdatedAt, &doc.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	refs := make([]*models.Document, len(docs))
	for i := range docs {
		refs[i] = &docs[i]
	}
	if err := r.attachTags(ctx, refs); err != nil {
		return nil, err
	}

	return docs, nil
}

// attachTags loads the tag sets for a batch of documents in one query.
func (r *PostgresDocumentRepository) attachTags(ctx context.Context, docs []*models.Document) error {
	if len(docs) == 0 {
		return nil
	}

	ids := make([]string, len(docs))
	byID := make(map[string]*models.Document, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
		byID[doc.ID] = doc
		doc.Tags = []models.Tag{}
	}

	query := fmt.Sprintf(`
		SELECT dt.document_id, t.id, t.profile_id, t.name, t.color, t.created_at
		FROM %s dt
		JOIN %s t ON t.id = dt.tag_id
		WHERE dt.document_id = ANY($1)
		ORDER BY t.name ASC
	`, r.tables.DocumentTags, r.tables.Tags)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load document tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var docID string
		var tag models.Tag
		if err := rows.Scan(&docID, &tag.ID, &tag.ProfileID, &tag.Name, &tag.Color, &tag.CreatedAt); err != nil {
			return fmt.Errorf("scan document tag: %w", err)
		}
		if doc, ok := byID[docID]; ok {
			doc.Tags = append(doc.Tags, tag)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate document tags: %w", err)
	}

	return nil
}
