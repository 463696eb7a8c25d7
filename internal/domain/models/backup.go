package models

import "time"

// Backup lifecycle states.
const (
	BackupStatusInProgress = "in_progress"
	BackupStatusCompleted  = "completed"
	BackupStatusFailed     = "failed"
)

// Backup types. A full backup embeds document metadata; a partial one
// carries only folders, tags, reminders and notes.
const (
	BackupTypeFull    = "full"
	BackupTypePartial = "partial"
)

// Backup records one export operation. FileURL holds the artifact
// reference (a base64 data URL; a real deployment would point at object
// storage instead).
type Backup struct {
	ID          string     `json:"id" db:"id"`
	ProfileID   string     `json:"-" db:"profile_id"`
	Name        string     `json:"name" db:"name"`
	Type        string     `json:"type" db:"type"`
	Status      string     `json:"status" db:"status"`
	Progress    int        `json:"progress" db:"progress"`
	FileURL     *string    `json:"fileUrl,omitempty" db:"file_url"`
	FileSize    int64      `json:"fileSize" db:"file_size"`
	CompletedAt *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// BackupSnapshot is the portable payload written to backup.json inside
// the archive. Folder and tag ids are preserved so document records can
// keep their references; reminders and notes travel without ids.
type BackupSnapshot struct {
	Profile   SnapshotProfile    `json:"profile"`
	Folders   []SnapshotFolder   `json:"folders"`
	Tags      []SnapshotTag      `json:"tags"`
	Reminders []SnapshotReminder `json:"reminders"`
	Notes     []SnapshotNote     `json:"notes"`
	Documents []SnapshotDocument `json:"documents,omitempty"`
}

type SnapshotProfile struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone"`
	College    *string `json:"college"`
	University *string `json:"university"`
	Department *string `json:"department"`
	Semester   *string `json:"semester"`
	RollNumber *string `json:"rollNumber"`
	Language   string  `json:"language"`
	Theme      string  `json:"theme"`
}

type SnapshotFolder struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
	Icon        *string `json:"icon"`
	ParentID    *string `json:"parentId"`
}

type SnapshotTag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type SnapshotReminder struct {
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	Type          string    `json:"type"`
	DueDate       time.Time `json:"dueDate"`
	ReminderDays  int       `json:"reminderDays"`
	IsCompleted   bool      `json:"isCompleted"`
	IsRecurring   bool      `json:"isRecurring"`
	RecurringType *string   `json:"recurringType"`
	Priority      string    `json:"priority"`
	Color         string    `json:"color"`
}

type SnapshotNote struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	IsPinned   bool    `json:"isPinned"`
	DocumentID *string `json:"documentId"`
}

// SnapshotDocument is metadata only; file bytes are never exported.
type SnapshotDocument struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	SubCategory   *string   `json:"subCategory"`
	Description   *string   `json:"description"`
	FileName      string    `json:"fileName"`
	FileSize      int64     `json:"fileSize"`
	FileType      string    `json:"fileType"`
	MimeType      string    `json:"mimeType"`
	FolderID      *string   `json:"folderId"`
	Tags          []string  `json:"tags"`
	IsFavorite    bool      `json:"isFavorite"`
	ExtractedText *string   `json:"extractedText"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RestoreOptions selects which snapshot categories to re-materialize.
type RestoreOptions struct {
	Folders   bool `json:"folders"`
	Tags      bool `json:"tags"`
	Reminders bool `json:"reminders"`
	Notes     bool `json:"notes"`
}

// RestoreResult reports per-category success counts plus item-level
// errors. Partial failure is a normal outcome, not a fatal one.
type RestoreResult struct {
	Folders   int      `json:"folders"`
	Tags      int      `json:"tags"`
	Reminders int      `json:"reminders"`
	Notes     int      `json:"notes"`
	Errors    []string `json:"errors"`
}
