package mirror

import (
	"testing"
	"time"

	"docvault/internal/domain/models"
	"docvault/internal/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUpsertDocumentDropsSoftDeleted(t *testing.T) {
	state := NewState()

	state.UpsertDocument(models.Document{ID: "doc-1", Title: "Marksheet"})
	require.Contains(t, state.Documents, "doc-1")

	deletedAt := time.Now()
	state.UpsertDocument(models.Document{ID: "doc-1", Title: "Marksheet", DeletedAt: &deletedAt})
	assert.NotContains(t, state.Documents, "doc-1")
}

func TestRemoveFolderCascadesAndReparentsDocuments(t *testing.T) {
	state := NewState()

	state.UpsertFolder(models.Folder{ID: "root", Name: "Semester 6"})
	state.UpsertFolder(models.Folder{ID: "child", Name: "Lab Records", ParentID: strPtr("root")})
	state.UpsertFolder(models.Folder{ID: "grandchild", Name: "Week 1", ParentID: strPtr("child")})
	state.UpsertFolder(models.Folder{ID: "other", Name: "Finance"})
	state.UpsertDocument(models.Document{ID: "doc-1", FolderID: strPtr("child")})
	state.UpsertDocument(models.Document{ID: "doc-2", FolderID: strPtr("other")})

	state.RemoveFolder("root")

	assert.NotContains(t, state.Folders, "root")
	assert.NotContains(t, state.Folders, "child")
	assert.NotContains(t, state.Folders, "grandchild")
	assert.Contains(t, state.Folders, "other")

	assert.Nil(t, state.Documents["doc-1"].FolderID, "document in deleted subtree should move to root")
	require.NotNil(t, state.Documents["doc-2"].FolderID)
	assert.Equal(t, "other", *state.Documents["doc-2"].FolderID)
}

func TestRemoveTagStripsTagFromDocuments(t *testing.T) {
	state := NewState()

	state.UpsertTag(models.Tag{ID: "tag-1", Name: "important"})
	state.UpsertTag(models.Tag{ID: "tag-2", Name: "exam"})
	state.UpsertDocument(models.Document{
		ID:   "doc-1",
		Tags: []models.Tag{{ID: "tag-1", Name: "important"}, {ID: "tag-2", Name: "exam"}},
	})

	state.RemoveTag("tag-1")

	assert.NotContains(t, state.Tags, "tag-1")
	require.Len(t, state.Documents["doc-1"].Tags, 1)
	assert.Equal(t, "tag-2", state.Documents["doc-1"].Tags[0].ID)
}

func TestApplySnapshotReplacesLocalState(t *testing.T) {
	state := NewState()
	state.UpsertDocument(models.Document{ID: "stale"})
	state.UpsertNote(models.Note{ID: "stale-note"})

	syncedAt := time.Now()
	snap := &services.SyncSnapshot{
		Profile:   &models.Profile{ID: "profile-1", Name: "Asha"},
		Documents: []models.Document{{ID: "doc-1"}},
		Folders:   []models.Folder{{ID: "folder-1"}},
		Tags:      []models.Tag{{ID: "tag-1"}},
		Reminders: []models.Reminder{{ID: "rem-1"}},
		Notes:     []models.Note{{ID: "note-1"}},
		SyncedAt:  syncedAt,
	}

	state.ApplySnapshot(snap)

	require.NotNil(t, state.Profile)
	assert.Equal(t, "profile-1", state.Profile.ID)
	assert.NotContains(t, state.Documents, "stale")
	assert.Contains(t, state.Documents, "doc-1")
	assert.NotContains(t, state.Notes, "stale-note")
	assert.Contains(t, state.Notes, "note-1")
	assert.Contains(t, state.Folders, "folder-1")
	assert.Contains(t, state.Tags, "tag-1")
	assert.Contains(t, state.Reminders, "rem-1")
	assert.True(t, state.SyncedAt.Equal(syncedAt))
}
