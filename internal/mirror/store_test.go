package mirror

import (
	"os"
	"path/filepath"
	"testing"

	"docvault/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "mirror.json"))

	state, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Empty(t, state.Documents)
	assert.Nil(t, state.Profile)
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mirror.json")
	store := NewStore(path)

	state := NewState()
	state.SetProfile(models.Profile{ID: "profile-1", Name: "Asha"})
	state.UpsertDocument(models.Document{ID: "doc-1", Title: "Marksheet", Category: "academic"})
	state.UpsertFolder(models.Folder{ID: "folder-1", Name: "Semester 6"})
	state.UpsertTag(models.Tag{ID: "tag-1", Name: "important"})

	require.NoError(t, store.Save(state))

	loaded, err := store.Load()
	require.NoError(t, err)

	require.NotNil(t, loaded.Profile)
	assert.Equal(t, "profile-1", loaded.Profile.ID)
	assert.Equal(t, "Marksheet", loaded.Documents["doc-1"].Title)
	assert.Equal(t, "Semester 6", loaded.Folders["folder-1"].Name)
	assert.Equal(t, "important", loaded.Tags["tag-1"].Name)
}

func TestStoreLoadRepairsSparseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"documents": null}`), 0o644))

	state, err := NewStore(path).Load()
	require.NoError(t, err)

	// Decoded maps must be usable even when the file omitted them
	state.UpsertDocument(models.Document{ID: "doc-1"})
	state.UpsertNote(models.Note{ID: "note-1"})
	assert.Contains(t, state.Documents, "doc-1")
	assert.Contains(t, state.Notes, "note-1")
}

func TestStoreLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.json")
	require.NoError(t, os.WriteFile(path, []byte("{corrupt"), 0o644))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}

func TestStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "mirror.json"))

	require.NoError(t, store.Save(NewState()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "mirror.json", entries[0].Name())
}
