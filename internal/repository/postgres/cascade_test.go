package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/migrations"
)

// Exercises the store-level delete rules end to end: child folders are
// removed with their parent while contained documents are kept and
// unfiled. Runs only when TEST_DATABASE_URL points at a disposable
// Postgres instance.
func TestFolderDeleteCascade(t *testing.T) {
	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	db, err := sql.Open("pgx", databaseURL)
	require.NoError(t, err)
	require.NoError(t, migrations.Migrate(db, "cascade_test_"))
	require.NoError(t, db.Close())

	pool, err := CreateConnectionPool(ctx, databaseURL)
	require.NoError(t, err)
	defer pool.Close()

	config := &RepositoryConfig{
		Pool:   pool,
		Tables: NewTableNames("cascade_test_"),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	profileRepo := NewProfileRepository(config)
	folderRepo := NewFolderRepository(config)
	docRepo := NewDocumentRepository(config)

	stamp := time.Now().UnixNano()
	profile := &models.Profile{
		UserID:       fmt.Sprintf("cascade-user-%d", stamp),
		Language:     "en",
		Theme:        "light",
		StorageLimit: models.DefaultStorageLimit,
	}
	require.NoError(t, profileRepo.Create(ctx, profile))

	parent := &models.Folder{ProfileID: profile.ID, Name: "Semester 6", Color: "#3B82F6", IsRoot: true}
	require.NoError(t, folderRepo.Create(ctx, parent))

	child := &models.Folder{ProfileID: profile.ID, Name: "Lab Records", Color: "#3B82F6", ParentID: &parent.ID}
	require.NoError(t, folderRepo.Create(ctx, child))

	doc := &models.Document{
		ProfileID:  profile.ID,
		Title:      "Marksheet",
		Category:   "academic",
		FolderID:   &parent.ID,
		ShareToken: fmt.Sprintf("cascade-token-%d", stamp),
	}
	require.NoError(t, docRepo.Create(ctx, doc))

	require.NoError(t, folderRepo.Delete(ctx, parent.ID, profile.ID))

	_, err = folderRepo.GetByID(ctx, child.ID, profile.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "child folders go with their parent")

	kept, err := docRepo.GetByID(ctx, doc.ID, profile.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.FolderID, "contained documents survive unfiled")
}
