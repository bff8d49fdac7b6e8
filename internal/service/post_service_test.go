package service

import (
	"context"
	"strings"
	"testing"

	"glimpse/internal/models"
	"glimpse/internal/repository"
	"glimpse/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(
		repository.NewPostRepository(db),
		repository.NewUserRepository(db),
		newTestMedia(t),
	)
	ctx := context.Background()
	author := createTestUser(t, db, "alice")

	t.Run("creates a text post", func(t *testing.T) {
		post, err := svc.CreatePost(ctx, CreatePostInput{
			UserID: author.ID,
			Text:   "  first light  ",
		})
		require.NoError(t, err)
		assert.Equal(t, "first light", post.Text)
		assert.Empty(t, post.Image)
		assert.Equal(t, "alice", post.User.Username)
	})

	t.Run("creates an image-only post", func(t *testing.T) {
		post, err := svc.CreatePost(ctx, CreatePostInput{
			UserID:        author.ID,
			ImageFilename: "sunset.png",
			ImageType:     "image/png",
			ImageContent:  testutil.TinyPNG(t, 4, 4),
		})
		require.NoError(t, err)
		assert.Empty(t, post.Text)
		assert.True(t, strings.HasPrefix(post.Image, "/uploads/posts/"), "got %s", post.Image)
	})

	t.Run("rejects an empty post", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: author.ID, Text: "   "})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("rejects a bad image without storing the post", func(t *testing.T) {
		var before int64
		require.NoError(t, db.Model(&models.Post{}).Count(&before).Error)

		_, err := svc.CreatePost(ctx, CreatePostInput{
			UserID:       author.ID,
			ImageContent: []byte("definitely not an image"),
		})
		require.Error(t, err)

		var after int64
		require.NoError(t, db.Model(&models.Post{}).Count(&after).Error)
		assert.Equal(t, before, after)
	})
}

func TestPostService_Feed(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(
		repository.NewPostRepository(db),
		repository.NewUserRepository(db),
		newTestMedia(t),
	)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, db.Create(&models.Post{UserID: alice.ID, Text: "mine"}).Error)
	require.NoError(t, db.Create(&models.Post{UserID: bob.ID, Text: "from bob"}).Error)

	posts, err := svc.Feed(ctx, alice.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1, "feed must exclude the viewer's own posts")
	assert.Equal(t, "from bob", posts[0].Text)
	assert.Equal(t, "bob", posts[0].User.Username)
}

func TestPostService_UserPosts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(
		repository.NewPostRepository(db),
		repository.NewUserRepository(db),
		newTestMedia(t),
	)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	require.NoError(t, db.Create(&models.Post{UserID: alice.ID, Text: "one"}).Error)
	require.NoError(t, db.Create(&models.Post{UserID: alice.ID, Text: "two"}).Error)
	require.NoError(t, db.Create(&models.Post{UserID: bob.ID, Text: "other"}).Error)

	posts, err := svc.UserPosts(ctx, alice.ID, bob.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "two", posts[0].Text, "newest first")

	_, err = svc.UserPosts(ctx, 9999, bob.ID, 0, 0)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostService_ToggleLike(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(
		repository.NewPostRepository(db),
		repository.NewUserRepository(db),
		newTestMedia(t),
	)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := &models.Post{UserID: alice.ID, Text: "like me"}
	require.NoError(t, db.Create(post).Error)

	res, err := svc.ToggleLike(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, 1, res.LikesCount)

	res, err = svc.ToggleLike(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, 0, res.LikesCount)

	_, err = svc.ToggleLike(ctx, 9999, bob.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostService_DeletePost(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPostService(
		repository.NewPostRepository(db),
		repository.NewUserRepository(db),
		newTestMedia(t),
	)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := &models.Post{UserID: alice.ID, Text: "ephemeral"}
	require.NoError(t, db.Create(post).Error)
	require.NoError(t, db.Create(&models.Comment{UserID: bob.ID, PostID: post.ID, Text: "nice"}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: bob.ID, PostID: post.ID}).Error)

	t.Run("only the author can delete", func(t *testing.T) {
		err := svc.DeletePost(ctx, post.ID, bob.ID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.Code)
	})

	t.Run("author delete removes comments and likes", func(t *testing.T) {
		require.NoError(t, svc.DeletePost(ctx, post.ID, alice.ID))

		var posts, likes int64
		require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
		require.NoError(t, db.Unscoped().Model(&models.Like{}).Count(&likes).Error)
		assert.Zero(t, posts)
		assert.Zero(t, likes)

		var comments int64
		require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
		assert.Zero(t, comments, "comments soft deleted with the post")
	})
}
