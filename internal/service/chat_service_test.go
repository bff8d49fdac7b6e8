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

func TestChatService_SendMessage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChatService(
		repository.NewChatRepository(db),
		repository.NewUserRepository(db),
		newTestMedia(t),
	)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	t.Run("delivers a text message", func(t *testing.T) {
		msg, err := svc.SendMessage(ctx, SendMessageInput{
			SenderID:    alice.ID,
			RecipientID: bob.ID,
			Content:     "hey bob",
		})
		require.NoError(t, err)
		assert.Equal(t, alice.ID, msg.SenderID)
		assert.Equal(t, bob.ID, msg.RecipientID)
		assert.Equal(t, "hey bob", msg.Content)
	})

	t.Run("delivers an image-only message", func(t *testing.T) {
		msg, err := svc.SendMessage(ctx, SendMessageInput{
			SenderID:     bob.ID,
			RecipientID:  alice.ID,
			ImageContent: testutil.TinyGIF(t, 4, 4),
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(msg.Image, "/uploads/chat/"), "got %s", msg.Image)
	})

	t.Run("rejects an empty message", func(t *testing.T) {
		_, err := svc.SendMessage(ctx, SendMessageInput{
			SenderID:    alice.ID,
			RecipientID: bob.ID,
			Content:     "   ",
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("rejects messaging yourself", func(t *testing.T) {
		_, err := svc.SendMessage(ctx, SendMessageInput{
			SenderID:    alice.ID,
			RecipientID: alice.ID,
			Content:     "dear diary",
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("rejects an unknown recipient", func(t *testing.T) {
		_, err := svc.SendMessage(ctx, SendMessageInput{
			SenderID:    alice.ID,
			RecipientID: 9999,
			Content:     "anyone there?",
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestChatService_ListMessages(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChatService(
		repository.NewChatRepository(db),
		repository.NewUserRepository(db),
		newTestMedia(t),
	)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	for _, m := range []models.Message{
		{SenderID: alice.ID, RecipientID: bob.ID, Content: "hi"},
		{SenderID: bob.ID, RecipientID: alice.ID, Content: "hello"},
		{SenderID: alice.ID, RecipientID: carol.ID, Content: "other thread"},
	} {
		msg := m
		require.NoError(t, db.Create(&msg).Error)
	}

	thread, err := svc.ListMessages(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2, "both directions, nothing from other threads")
	assert.Equal(t, "hi", thread[0].Content)
	assert.Equal(t, "hello", thread[1].Content)
	require.NotNil(t, thread[0].Sender)
	assert.Equal(t, "alice", thread[0].Sender.Username)

	_, err = svc.ListMessages(ctx, alice.ID, 9999)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
