package services

import (
	"testing"

	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarkLifecycle(t *testing.T) {
	db := newTestDB(t)
	blogs := NewBlogService(db)
	svc := NewBookmarkService(db)
	userID := uuid.New()

	published, err := blogs.Create(&dto.BlogRequest{
		Title: "Saved Post", Content: "body", IsPublished: boolPtr(true),
	}, "a", "Admin")
	require.NoError(t, err)

	require.NoError(t, svc.Add(userID, published.ID))
	// Re-adding is a no-op, not an error.
	require.NoError(t, svc.Add(userID, published.ID))

	list, err := svc.List(userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, published.ID, list[0].ID)
	assert.Empty(t, list[0].Content)

	require.NoError(t, svc.Remove(userID, published.ID))
	assert.ErrorIs(t, svc.Remove(userID, published.ID), ErrBookmarkNotFound)
}

func TestBookmarkRejectsDrafts(t *testing.T) {
	db := newTestDB(t)
	blogs := NewBlogService(db)
	svc := NewBookmarkService(db)

	draft, err := blogs.Create(&dto.BlogRequest{Title: "Draft", Content: "body"}, "a", "Admin")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Add(uuid.New(), draft.ID), ErrBlogNotFound)
}

func TestBookmarkListHidesUnpublished(t *testing.T) {
	db := newTestDB(t)
	blogs := NewBlogService(db)
	svc := NewBookmarkService(db)
	userID := uuid.New()

	post, err := blogs.Create(&dto.BlogRequest{
		Title: "Soon Unpublished", Content: "body", IsPublished: boolPtr(true),
	}, "a", "Admin")
	require.NoError(t, err)
	require.NoError(t, svc.Add(userID, post.ID))

	_, err = blogs.TogglePublish(post.ID)
	require.NoError(t, err)

	list, err := svc.List(userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
