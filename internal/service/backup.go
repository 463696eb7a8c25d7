package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"docvault/internal/archive"
	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

// defaultBackupLimit caps how many backup records a listing returns.
const defaultBackupLimit = 10

type backupService struct {
	profiles     services.ProfileService
	backupRepo   repositories.BackupRepository
	docRepo      repositories.DocumentRepository
	folderRepo   repositories.FolderRepository
	tagRepo      repositories.TagRepository
	reminderRepo repositories.ReminderRepository
	noteRepo     repositories.NoteRepository
	auditRepo    repositories.AuditLogRepository
	logger       *slog.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(
	profiles services.ProfileService,
	backupRepo repositories.BackupRepository,
	docRepo repositories.DocumentRepository,
	folderRepo repositories.FolderRepository,
	tagRepo repositories.TagRepository,
	reminderRepo repositories.ReminderRepository,
	noteRepo repositories.NoteRepository,
	auditRepo repositories.AuditLogRepository,
	logger *slog.Logger,
) services.BackupService {
	return &backupService{
		profiles:     profiles,
		backupRepo:   backupRepo,
		docRepo:      docRepo,
		folderRepo:   folderRepo,
		tagRepo:      tagRepo,
		reminderRepo: reminderRepo,
		noteRepo:     noteRepo,
		auditRepo:    auditRepo,
		logger:       logger,
	}
}

// CreateBackup exports the caller's data into a zip archive. The record
// is written up front in the in_progress state; a failure during export
// flips it to failed instead of leaving it dangling.
func (s *backupService) CreateBackup(ctx context.Context, userID string, req *services.CreateBackupRequest) (*models.Backup, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	backupType := req.Type
	switch backupType {
	case "":
		backupType = models.BackupTypeFull
	case models.BackupTypeFull, models.BackupTypePartial:
	default:
		return nil, fmt.Errorf("%w: unknown backup type %q", domain.ErrValidation, backupType)
	}

	name := req.Name
	if name == "" {
		name = "Backup " + time.Now().Format("2006-01-02 15:04")
	}

	backup := &models.Backup{
		ProfileID: profile.ID,
		Name:      name,
		Type:      backupType,
		Status:    models.BackupStatusInProgress,
	}
	if err := s.backupRepo.Create(ctx, backup); err != nil {
		return nil, err
	}

	artifact, err := s.buildArchive(ctx, profile, backupType)
	if err != nil {
		backup.Status = models.BackupStatusFailed
		if uerr := s.backupRepo.UpdateStatus(ctx, backup); uerr != nil {
			s.logger.Error("failed to mark backup failed", "backup_id", backup.ID, "error", uerr)
		}
		return nil, fmt.Errorf("build backup archive: %w", err)
	}

	fileURL := "data:application/zip;base64," + base64.StdEncoding.EncodeToString(artifact)
	now := time.Now()

	backup.Status = models.BackupStatusCompleted
	backup.Progress = 100
	backup.FileURL = &fileURL
	backup.FileSize = int64(len(artifact))
	backup.CompletedAt = &now

	if err := s.backupRepo.UpdateStatus(ctx, backup); err != nil {
		return nil, err
	}

	if err := s.auditRepo.Append(ctx, &models.AuditLog{
		UserID:     userID,
		Action:     "create",
		EntityType: "backup",
		EntityID:   backup.ID,
	}); err != nil {
		s.logger.Warn("failed to append audit entry", "backup_id", backup.ID, "error", err)
	}

	s.logger.Info("backup completed",
		"id", backup.ID,
		"type", backup.Type,
		"file_size", backup.FileSize,
	)

	return backup, nil
}

// ListBackups returns the most recent backups, newest first
func (s *backupService) ListBackups(ctx context.Context, userID string, limit int) ([]models.Backup, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if limit < 1 || limit > 100 {
		limit = defaultBackupLimit
	}

	return s.backupRepo.List(ctx, profile.ID, limit)
}

// DeleteBackup removes a backup record and its embedded artifact
func (s *backupService) DeleteBackup(ctx context.Context, id, userID string) error {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.backupRepo.Delete(ctx, id, profile.ID); err != nil {
		return err
	}

	s.logger.Info("backup deleted", "id", id)

	return nil
}

// Restore re-materializes selected categories from an uploaded archive.
// Documents are deliberately excluded: their file bytes live in external
// storage and cannot be reproduced from metadata. Item failures are
// collected per entry so one bad row does not abort the rest.
func (s *backupService) Restore(ctx context.Context, userID string, archiveData []byte, opts *models.RestoreOptions) (*models.RestoreResult, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.readSnapshot(archiveData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if opts == nil {
		opts = &models.RestoreOptions{}
	}

	result := &models.RestoreResult{Errors: []string{}}

	// Folder ids are remapped so parent links survive the round trip
	folderIDMap := make(map[string]string)

	if opts.Folders {
		s.restoreFolders(ctx, profile.ID, snapshot.Folders, folderIDMap, result)
	}
	if opts.Tags {
		for _, t := range snapshot.Tags {
			tag := &models.Tag{
				ProfileID: profile.ID,
				Name:      t.Name,
				Color:     t.Color,
			}
			if err := s.tagRepo.Create(ctx, tag); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Failed to restore tag: %s", t.Name))
				continue
			}
			result.Tags++
		}
	}
	if opts.Reminders {
		for _, r := range snapshot.Reminders {
			reminder := &models.Reminder{
				ProfileID:     profile.ID,
				Title:         r.Title,
				Description:   r.Description,
				Type:          r.Type,
				DueDate:       r.DueDate,
				ReminderDays:  r.ReminderDays,
				IsCompleted:   r.IsCompleted,
				IsRecurring:   r.IsRecurring,
				RecurringType: r.RecurringType,
				Priority:      r.Priority,
				Color:         r.Color,
			}
			if err := s.reminderRepo.Create(ctx, reminder); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Failed to restore reminder: %s", r.Title))
				continue
			}
			result.Reminders++
		}
	}
	if opts.Notes {
		for _, n := range snapshot.Notes {
			// Document links are dropped: documents are not restored, so
			// the referenced ids no longer exist.
			note := &models.Note{
				ProfileID: profile.ID,
				Title:     n.Title,
				Content:   n.Content,
				IsPinned:  n.IsPinned,
			}
			if err := s.noteRepo.Create(ctx, note); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Failed to restore note: %s", n.Title))
				continue
			}
			result.Notes++
		}
	}

	s.logger.Info("restore finished",
		"folders", result.Folders,
		"tags", result.Tags,
		"reminders", result.Reminders,
		"notes", result.Notes,
		"errors", len(result.Errors),
	)

	return result, nil
}

// restoreFolders creates snapshot folders parents-first so children can
// point at their restored parent's new id. Folders whose parent never
// materializes, including self-referential ones, are reported as
// failures rather than silently reattached.
func (s *backupService) restoreFolders(ctx context.Context, profileID string, folders []models.SnapshotFolder, idMap map[string]string, result *models.RestoreResult) {
	pending := make([]models.SnapshotFolder, len(folders))
	copy(pending, folders)

	for len(pending) > 0 {
		progressed := false
		var deferred []models.SnapshotFolder

		for _, f := range pending {
			if f.ParentID != nil {
				if _, ok := idMap[*f.ParentID]; !ok {
					deferred = append(deferred, f)
					continue
				}
			}

			folder := &models.Folder{
				ProfileID:   profileID,
				Name:        f.Name,
				Description: f.Description,
				Color:       f.Color,
				Icon:        f.Icon,
				IsRoot:      f.ParentID == nil,
			}
			if f.ParentID != nil {
				newParent := idMap[*f.ParentID]
				folder.ParentID = &newParent
			}

			if err := s.folderRepo.Create(ctx, folder); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Failed to restore folder: %s", f.Name))
				progressed = true
				continue
			}
			idMap[f.ID] = folder.ID
			result.Folders++
			progressed = true
		}

		if !progressed {
			// Remaining folders have unreachable parents
			for _, f := range deferred {
				result.Errors = append(result.Errors, fmt.Sprintf("Failed to restore folder: %s", f.Name))
			}
			return
		}

		pending = deferred
	}
}

// archiveManifest is the human-readable summary packed next to the
// snapshot so an archive can be inspected without parsing backup.json.
type archiveManifest struct {
	Version   int       `yaml:"version"`
	Type      string    `yaml:"type"`
	CreatedAt time.Time `yaml:"createdAt"`
	Counts    struct {
		Documents int `yaml:"documents"`
		Folders   int `yaml:"folders"`
		Tags      int `yaml:"tags"`
		Reminders int `yaml:"reminders"`
		Notes     int `yaml:"notes"`
	} `yaml:"counts"`
}

// buildArchive assembles the snapshot and packs it with a manifest and
// a README
func (s *backupService) buildArchive(ctx context.Context, profile *models.Profile, backupType string) ([]byte, error) {
	snapshot, err := s.assembleSnapshot(ctx, profile, backupType)
	if err != nil {
		return nil, err
	}

	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	manifest := archiveManifest{
		Version:   1,
		Type:      backupType,
		CreatedAt: time.Now(),
	}
	manifest.Counts.Documents = len(snapshot.Documents)
	manifest.Counts.Folders = len(snapshot.Folders)
	manifest.Counts.Tags = len(snapshot.Tags)
	manifest.Counts.Reminders = len(snapshot.Reminders)
	manifest.Counts.Notes = len(snapshot.Notes)

	manifestYAML, err := yaml.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}

	readme := fmt.Sprintf(`DocVault Backup
===============

Created: %s
Type:    %s

backup.json holds your profile settings, folders, tags, reminders and
notes%s. Document files themselves are not included; only their metadata
travels with a full backup. Restore this archive from the backups page.
`, time.Now().Format(time.RFC3339), backupType,
		map[string]string{
			models.BackupTypeFull:    ", plus document metadata",
			models.BackupTypePartial: "",
		}[backupType])

	buf, err := archive.CreateZip([]archive.Entry{
		{Name: "backup.json", Data: payload},
		{Name: "manifest.yaml", Data: manifestYAML},
		{Name: "README.txt", Data: []byte(readme)},
	})
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (s *backupService) assembleSnapshot(ctx context.Context, profile *models.Profile, backupType string) (*models.BackupSnapshot, error) {
	snapshot := &models.BackupSnapshot{
		Profile: models.SnapshotProfile{
			Name:       profile.Name,
			Email:      profile.Email,
			Phone:      profile.Phone,
			College:    profile.College,
			University: profile.University,
			Department: profile.Department,
			Semester:   profile.Semester,
			RollNumber: profile.RollNumber,
			Language:   profile.Language,
			Theme:      profile.Theme,
		},
		Folders:   []models.SnapshotFolder{},
		Tags:      []models.SnapshotTag{},
		Reminders: []models.SnapshotReminder{},
		Notes:     []models.SnapshotNote{},
	}

	folders, err := s.folderRepo.ListAll(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	for _, f := range folders {
		snapshot.Folders = append(snapshot.Folders, models.SnapshotFolder{
			ID:          f.ID,
			Name:        f.Name,
			Description: f.Description,
			Color:       f.Color,
			Icon:        f.Icon,
			ParentID:    f.ParentID,
		})
	}

	tags, err := s.tagRepo.List(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	for _, t := range tags {
		snapshot.Tags = append(snapshot.Tags, models.SnapshotTag{
			ID:    t.ID,
			Name:  t.Name,
			Color: t.Color,
		})
	}

	reminders, err := s.reminderRepo.ListAll(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	for _, r := range reminders {
		snapshot.Reminders = append(snapshot.Reminders, models.SnapshotReminder{
			Title:         r.Title,
			Description:   r.Description,
			Type:          r.Type,
			DueDate:       r.DueDate,
			ReminderDays:  r.ReminderDays,
			IsCompleted:   r.IsCompleted,
			IsRecurring:   r.IsRecurring,
			RecurringType: r.RecurringType,
			Priority:      r.Priority,
			Color:         r.Color,
		})
	}

	notes, err := s.noteRepo.ListAll(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		snapshot.Notes = append(snapshot.Notes, models.SnapshotNote{
			Title:      n.Title,
			Content:    n.Content,
			IsPinned:   n.IsPinned,
			DocumentID: n.DocumentID,
		})
	}

	if backupType == models.BackupTypeFull {
		docs, err := s.docRepo.ListAll(ctx, profile.ID)
		if err != nil {
			return nil, err
		}
		for _, d := range docs {
			// documents carry tag references by id, matching the tag
			// snapshot entries
			tagIDs := make([]string, len(d.Tags))
			for i, t := range d.Tags {
				tagIDs[i] = t.ID
			}
			snapshot.Documents = append(snapshot.Documents, models.SnapshotDocument{
				ID:            d.ID,
				Title:         d.Title,
				Category:      d.Category,
				SubCategory:   d.SubCategory,
				Description:   d.Description,
				FileName:      d.FileName,
				FileSize:      d.FileSize,
				FileType:      d.FileType,
				MimeType:      d.MimeType,
				FolderID:      d.FolderID,
				Tags:          tagIDs,
				IsFavorite:    d.IsFavorite,
				ExtractedText: d.ExtractedText,
				CreatedAt:     d.CreatedAt,
			})
		}
	}

	return snapshot, nil
}

// readSnapshot decodes uploaded backup data: either a zip archive with
// a backup.json entry, or the bare snapshot JSON itself.
func (s *backupService) readSnapshot(data []byte) (*models.BackupSnapshot, error) {
	entries, err := archive.ReadZip(data)
	if err != nil {
		var snapshot models.BackupSnapshot
		if jerr := json.Unmarshal(data, &snapshot); jerr != nil {
			return nil, fmt.Errorf("backup data is neither a zip archive nor snapshot JSON")
		}
		return &snapshot, nil
	}

	for _, entry := range entries {
		if entry.Name != "backup.json" {
			continue
		}
		var snapshot models.BackupSnapshot
		if err := json.Unmarshal(entry.Data, &snapshot); err != nil {
			return nil, fmt.Errorf("invalid backup.json: %w", err)
		}
		return &snapshot, nil
	}

	return nil, fmt.Errorf("archive does not contain backup.json")
}
