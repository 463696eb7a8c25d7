package repositories

import (
	"context"
	"time"

	"docvault/internal/domain/models"
)

// ProfileRepository persists student profiles, keyed by the identity
// provider's user id.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	AddStorageUsed(ctx context.Context, profileID string, delta int64) error
}

// DocumentRepository persists document metadata. All reads exclude
// soft-deleted rows unless stated otherwise.
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id, profileID string) (*models.Document, error)
	List(ctx context.Context, profileID string, filter *models.DocumentFilter) ([]models.Document, int, error)
	ListAll(ctx context.Context, profileID string) ([]models.Document, error)
	Update(ctx context.Context, doc *models.Document) error
	SetTags(ctx context.Context, docID string, tagIDs []string) error
	SoftDelete(ctx context.Context, ids []string, profileID string, at time.Time) error
}

// FolderRepository persists the folder tree.
type FolderRepository interface {
	Create(ctx context.Context, folder *models.Folder) error
	GetByID(ctx context.Context, id, profileID string) (*models.Folder, error)
	List(ctx context.Context, profileID string, parentID *string, rootOnly bool) ([]models.Folder, error)
	ListAll(ctx context.Context, profileID string) ([]models.Folder, error)
	Update(ctx context.Context, folder *models.Folder) error
	Delete(ctx context.Context, id, profileID string) error
}

type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, id, profileID string) (*models.Tag, error)
	List(ctx context.Context, profileID string) ([]models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id, profileID string) error
}

type ReminderRepository interface {
	Create(ctx context.Context, reminder *models.Reminder) error
	GetByID(ctx context.Context, id, profileID string) (*models.Reminder, error)
	List(ctx context.Context, profileID string, filter *models.ReminderFilter) ([]models.Reminder, int, error)
	ListAll(ctx context.Context, profileID string) ([]models.Reminder, error)
	Update(ctx context.Context, reminder *models.Reminder) error
	Delete(ctx context.Context, id, profileID string) error
}

type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id, profileID string) (*models.Note, error)
	List(ctx context.Context, profileID string, filter *models.NoteFilter) ([]models.Note, error)
	ListAll(ctx context.Context, profileID string) ([]models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id, profileID string) error
}

type BackupRepository interface {
	Create(ctx context.Context, backup *models.Backup) error
	List(ctx context.Context, profileID string, limit int) ([]models.Backup, error)
	UpdateStatus(ctx context.Context, backup *models.Backup) error
	Delete(ctx context.Context, id, profileID string) error
}

// SharedLinkRepository persists constrained share links. Delete is
// scoped through the owning document's profile so only the owner can
// revoke.
type SharedLinkRepository interface {
	Create(ctx context.Context, link *models.SharedLink) error
	ListByDocument(ctx context.Context, documentID string) ([]models.SharedLink, error)
	Delete(ctx context.Context, id, profileID string) error
}

// AuditLogRepository is append-only.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *models.AuditLog) error
}

// AnalyticsRepository persists per-day event counters.
type AnalyticsRepository interface {
	// Increment bumps the named counter for the profile's row at the
	// given day-truncated date, creating the row on first use.
	Increment(ctx context.Context, profileID string, date time.Time, event string) error
}
