package service

import (
	"context"
	"log/slog"
	"time"

	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

type syncService struct {
	profiles     services.ProfileService
	docRepo      repositories.DocumentRepository
	folderRepo   repositories.FolderRepository
	tagRepo      repositories.TagRepository
	reminderRepo repositories.ReminderRepository
	noteRepo     repositories.NoteRepository
	logger       *slog.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(
	profiles services.ProfileService,
	docRepo repositories.DocumentRepository,
	folderRepo repositories.FolderRepository,
	tagRepo repositories.TagRepository,
	reminderRepo repositories.ReminderRepository,
	noteRepo repositories.NoteRepository,
	logger *slog.Logger,
) services.SyncService {
	return &syncService{
		profiles:     profiles,
		docRepo:      docRepo,
		folderRepo:   folderRepo,
		tagRepo:      tagRepo,
		reminderRepo: reminderRepo,
		noteRepo:     noteRepo,
		logger:       logger,
	}
}

// Snapshot returns the caller's complete entity set in one payload
func (s *syncService) Snapshot(ctx context.Context, userID string) (*services.SyncSnapshot, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	docs, err := s.docRepo.ListAll(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	folders, err := s.folderRepo.ListAll(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	tags, err := s.tagRepo.List(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	reminders, err := s.reminderRepo.ListAll(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.ListAll(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("sync snapshot assembled",
		"documents", len(docs),
		"folders", len(folders),
		"tags", len(tags),
		"reminders", len(reminders),
		"notes", len(notes),
	)

	return &services.SyncSnapshot{
		Profile:   profile,
		Documents: docs,
		Folders:   folders,
		Tags:      tags,
		Reminders: reminders,
		Notes:     notes,
		SyncedAt:  time.Now(),
	}, nil
}
