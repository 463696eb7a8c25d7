package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvault/internal/domain/models"
)

func TestSyncSnapshot(t *testing.T) {
	docRepo := newFakeDocumentRepo()
	folderRepo := newFakeFolderRepo()
	tagRepo := newFakeTagRepo()
	reminderRepo := newFakeReminderRepo()
	noteRepo := newFakeNoteRepo()
	profiles := NewProfileService(newFakeProfileRepo(), testLogger())
	svc := NewSyncService(profiles, docRepo, folderRepo, tagRepo, reminderRepo, noteRepo, testLogger())
	ctx := context.Background()

	// Prime the profile so the fixture rows land on profile-1
	_, err := profiles.GetProfile(ctx, testUserID)
	require.NoError(t, err)

	require.NoError(t, docRepo.Create(ctx, &models.Document{ProfileID: "profile-1", Title: "Marksheet"}))
	deleted := &models.Document{ProfileID: "profile-1", Title: "Gone"}
	require.NoError(t, docRepo.Create(ctx, deleted))
	now := time.Now()
	require.NoError(t, docRepo.SoftDelete(ctx, []string{deleted.ID}, "profile-1", now))

	require.NoError(t, folderRepo.Create(ctx, &models.Folder{ProfileID: "profile-1", Name: "Semester 6"}))
	require.NoError(t, tagRepo.Create(ctx, &models.Tag{ProfileID: "profile-1", Name: "important"}))
	require.NoError(t, reminderRepo.Create(ctx, &models.Reminder{ProfileID: "profile-1", Title: "Pay fee", DueDate: now}))
	require.NoError(t, noteRepo.Create(ctx, &models.Note{ProfileID: "profile-1", Title: "Checklist"}))

	// Another profile's data must not leak into the snapshot
	require.NoError(t, docRepo.Create(ctx, &models.Document{ProfileID: "profile-999", Title: "Theirs"}))

	snap, err := svc.Snapshot(ctx, testUserID)
	require.NoError(t, err)

	require.NotNil(t, snap.Profile)
	assert.Equal(t, "profile-1", snap.Profile.ID)
	require.Len(t, snap.Documents, 1)
	assert.Equal(t, "Marksheet", snap.Documents[0].Title)
	assert.Len(t, snap.Folders, 1)
	assert.Len(t, snap.Tags, 1)
	assert.Len(t, snap.Reminders, 1)
	assert.Len(t, snap.Notes, 1)
	assert.False(t, snap.SyncedAt.IsZero())
}
