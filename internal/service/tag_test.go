package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvault/internal/domain"
	"docvault/internal/domain/services"
)

func newTagService() services.TagService {
	profiles := NewProfileService(newFakeProfileRepo(), testLogger())
	return NewTagService(profiles, newFakeTagRepo(), testLogger())
}

func TestCreateTagDefaults(t *testing.T) {
	svc := newTagService()

	tag, err := svc.CreateTag(context.Background(), testUserID, &services.CreateTagRequest{Name: "important"})
	require.NoError(t, err)

	assert.NotEmpty(t, tag.ID)
	assert.Equal(t, DefaultTagColor, tag.Color)
}

func TestCreateTagDuplicateName(t *testing.T) {
	svc := newTagService()
	ctx := context.Background()

	_, err := svc.CreateTag(ctx, testUserID, &services.CreateTagRequest{Name: "important"})
	require.NoError(t, err)

	_, err = svc.CreateTag(ctx, testUserID, &services.CreateTagRequest{Name: "important"})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "tag", conflict.ResourceType)
}

func TestCreateTagValidation(t *testing.T) {
	svc := newTagService()

	_, err := svc.CreateTag(context.Background(), testUserID, &services.CreateTagRequest{})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestUpdateTag(t *testing.T) {
	svc := newTagService()
	ctx := context.Background()

	tag, err := svc.CreateTag(ctx, testUserID, &services.CreateTagRequest{Name: "important"})
	require.NoError(t, err)

	name := "urgent"
	color := "#EF4444"
	updated, err := svc.UpdateTag(ctx, tag.ID, testUserID, &services.UpdateTagRequest{
		Name:  &name,
		Color: &color,
	})
	require.NoError(t, err)

	assert.Equal(t, "urgent", updated.Name)
	assert.Equal(t, "#EF4444", updated.Color)
}

func TestTagsScopedToOwner(t *testing.T) {
	svc := newTagService()
	ctx := context.Background()

	tag, err := svc.CreateTag(ctx, testUserID, &services.CreateTagRequest{Name: "mine"})
	require.NoError(t, err)

	err = svc.DeleteTag(ctx, tag.ID, "user-2")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	tags, err := svc.ListTags(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, tags)
}
