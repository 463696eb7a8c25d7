package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvault/internal/domain"
	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

const testUserID = "user-1"

func newFolderFixture() (services.FolderService, *fakeFolderRepo) {
	folderRepo := newFakeFolderRepo()
	profiles := NewProfileService(newFakeProfileRepo(), testLogger())
	return NewFolderService(profiles, folderRepo, testLogger()), folderRepo
}

func optional(v *string) httputil.OptionalString {
	return httputil.OptionalString{Present: true, Value: v}
}

func TestCreateFolderDefaults(t *testing.T) {
	svc, _ := newFolderFixture()

	folder, err := svc.CreateFolder(context.Background(), testUserID, &services.CreateFolderRequest{
		Name: "Semester 6",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, folder.ID)
	assert.Equal(t, DefaultFolderColor, folder.Color)
	assert.True(t, folder.IsRoot)
	assert.Nil(t, folder.ParentID)
}

func TestCreateFolderEmptyParentMeansRoot(t *testing.T) {
	svc, _ := newFolderFixture()

	empty := ""
	folder, err := svc.CreateFolder(context.Background(), testUserID, &services.CreateFolderRequest{
		Name:     "Semester 6",
		ParentID: &empty,
	})
	require.NoError(t, err)

	assert.Nil(t, folder.ParentID)
	assert.True(t, folder.IsRoot)
}

func TestCreateFolderRequiresName(t *testing.T) {
	svc, _ := newFolderFixture()

	_, err := svc.CreateFolder(context.Background(), testUserID, &services.CreateFolderRequest{})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestCreateFolderUnknownParent(t *testing.T) {
	svc, _ := newFolderFixture()

	missing := "folder-999"
	_, err := svc.CreateFolder(context.Background(), testUserID, &services.CreateFolderRequest{
		Name:     "Lab Records",
		ParentID: &missing,
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdateFolderRejectsSelfParent(t *testing.T) {
	svc, _ := newFolderFixture()
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, testUserID, &services.CreateFolderRequest{Name: "A"})
	require.NoError(t, err)

	_, err = svc.UpdateFolder(ctx, folder.ID, testUserID, &services.UpdateFolderRequest{
		ParentID: optional(&folder.ID),
	})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestUpdateFolderRejectsMoveUnderDescendant(t *testing.T) {
	svc, _ := newFolderFixture()
	ctx := context.Background()

	a, err := svc.CreateFolder(ctx, testUserID, &services.CreateFolderRequest{Name: "A"})
	require.NoError(t, err)
	b, err := svc.CreateFolder(ctx, testUserID, &services.CreateFolderRequest{Name: "B", ParentID: &a.ID})
	require.NoError(t, err)
	c, err := svc.CreateFolder(ctx, testUserID, &services.CreateFolderRequest{Name: "C", ParentID: &b.ID})
	require.NoError(t, err)

	// Moving A under its grandchild C would create a cycle
	_, err = svc.UpdateFolder(ctx, a.ID, testUserID, &services.UpdateFolderRequest{
		ParentID: optional(&c.ID),
	})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	// A sibling move stays legal
	moved, err := svc.UpdateFolder(ctx, c.ID, testUserID, &services.UpdateFolderRequest{
		ParentID: optional(&a.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, a.ID, *moved.ParentID)
}

func TestUpdateFolderMoveToRoot(t *testing.T) {
	svc, _ := newFolderFixture()
	ctx := context.Background()

	parent, err := svc.CreateFolder(ctx, testUserID, &services.CreateFolderRequest{Name: "Parent"})
	require.NoError(t, err)
	child, err := svc.CreateFolder(ctx, testUserID, &services.CreateFolderRequest{Name: "Child", ParentID: &parent.ID})
	require.NoError(t, err)
	require.False(t, child.IsRoot)

	moved, err := svc.UpdateFolder(ctx, child.ID, testUserID, &services.UpdateFolderRequest{
		ParentID: optional(nil),
	})
	require.NoError(t, err)

	assert.Nil(t, moved.ParentID)
	assert.True(t, moved.IsRoot)
}

func TestUpdateFolderAbsentParentLeavesPlacement(t *testing.T) {
	svc, _ := newFolderFixture()
	ctx := context.Background()

	parent, err := svc.CreateFolder(ctx, testUserID, &services.CreateFolderRequest{Name: "Parent"})
	require.NoError(t, err)
	child, err := svc.CreateFolder(ctx, testUserID, &services.CreateFolderRequest{Name: "Child", ParentID: &parent.ID})
	require.NoError(t, err)

	name := "Renamed"
	updated, err := svc.UpdateFolder(ctx, child.ID, testUserID, &services.UpdateFolderRequest{
		Name: &name,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, parent.ID, *updated.ParentID)
}

func TestFoldersScopedToOwner(t *testing.T) {
	svc, _ := newFolderFixture()
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, testUserID, &services.CreateFolderRequest{Name: "Mine"})
	require.NoError(t, err)

	_, err = svc.GetFolder(ctx, folder.ID, "user-2")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = svc.DeleteFolder(ctx, folder.ID, "user-2")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
