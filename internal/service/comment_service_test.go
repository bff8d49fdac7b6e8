package service

import (
	"context"
	"strings"
	"testing"

	"glimpse/internal/models"
	"glimpse/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_AddComment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewPostRepository(db),
	)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := &models.Post{UserID: alice.ID, Text: "discuss"}
	require.NoError(t, db.Create(post).Error)

	t.Run("adds a comment with its author attached", func(t *testing.T) {
		comment, err := svc.AddComment(ctx, post.ID, bob.ID, "  well said  ")
		require.NoError(t, err)
		assert.Equal(t, "well said", comment.Text)
		assert.Equal(t, "bob", comment.User.Username)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		_, err := svc.AddComment(ctx, post.ID, bob.ID, "   ")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("rejects overlong text", func(t *testing.T) {
		_, err := svc.AddComment(ctx, post.ID, bob.ID, strings.Repeat("a", 2001))
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("rejects a missing post", func(t *testing.T) {
		_, err := svc.AddComment(ctx, 9999, bob.ID, "into the void")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestCommentService_ListComments(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewPostRepository(db),
	)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	post := &models.Post{UserID: alice.ID, Text: "thread"}
	require.NoError(t, db.Create(post).Error)
	require.NoError(t, db.Create(&models.Comment{UserID: alice.ID, PostID: post.ID, Text: "first"}).Error)
	require.NoError(t, db.Create(&models.Comment{UserID: alice.ID, PostID: post.ID, Text: "second"}).Error)

	comments, err := svc.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text, "oldest first")

	_, err = svc.ListComments(ctx, 9999)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
