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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newUserService(t *testing.T, db *gorm.DB) *UserService {
	t.Helper()
	return NewUserService(repository.NewUserRepository(db), newTestMedia(t))
}

func TestUserService_GetProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	// bob and carol follow alice; alice follows carol
	require.NoError(t, db.Create(&models.Follow{FollowerID: bob.ID, FolloweeID: alice.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: carol.ID, FolloweeID: alice.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: alice.ID, FolloweeID: carol.ID}).Error)

	profile, err := svc.GetProfile(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, profile.Followers, 2)
	require.Len(t, profile.Following, 1)
	assert.Equal(t, "carol", profile.Following[0].Username)

	_, err = svc.GetProfile(ctx, 9999)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserService_UpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")

	t.Run("updates username and bio", func(t *testing.T) {
		updated, err := svc.UpdateProfile(ctx, UpdateProfileInput{
			UserID:   alice.ID,
			Username: "alice_v2",
			Bio:      "now with more bio",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice_v2", updated.Username)
		assert.Equal(t, "now with more bio", updated.Bio)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: alice.ID, Username: "bob"})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		assert.Contains(t, appErr.Message, "taken")
	})

	t.Run("rejects a malformed username", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: alice.ID, Username: "a b!"})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("rejects an overlong bio", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{
			UserID: alice.ID,
			Bio:    strings.Repeat("b", 501),
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("keeping your own username is fine", func(t *testing.T) {
		updated, err := svc.UpdateProfile(ctx, UpdateProfileInput{
			UserID:   alice.ID,
			Username: "alice_v2",
			Bio:      "same name, new bio",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice_v2", updated.Username)
	})
}

func TestUserService_UpdatePassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, alice.ID, "not-it", "replacement-pw")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})

	t.Run("new password too short", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, alice.ID, "correct-horse", "short")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("rotates the password", func(t *testing.T) {
		require.NoError(t, svc.UpdatePassword(ctx, alice.ID, "correct-horse", "battery-staple"))

		var stored models.User
		require.NoError(t, db.First(&stored, alice.ID).Error)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("battery-staple")))
	})
}

func TestUserService_ProfilePicture(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	updated, err := svc.SetProfilePicture(ctx, alice.ID, UploadMediaInput{
		Filename:    "me.png",
		ContentType: "image/png",
		Content:     testutil.TinyPNG(t, 4, 4),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(updated.ProfilePicture, "/uploads/profile-pictures/"), "got %s", updated.ProfilePicture)

	// Replacing swaps the stored path
	first := updated.ProfilePicture
	updated, err = svc.SetProfilePicture(ctx, alice.ID, UploadMediaInput{
		Content: testutil.TinyJPEG(t, 4, 4),
	})
	require.NoError(t, err)
	assert.NotEqual(t, first, updated.ProfilePicture)

	// A GIF is not a valid profile picture
	_, err = svc.SetProfilePicture(ctx, alice.ID, UploadMediaInput{
		Content: testutil.TinyGIF(t, 4, 4),
	})
	require.Error(t, err)

	updated, err = svc.RemoveProfilePicture(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.ProfilePicture)
}

func TestUserService_Search(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	createTestUser(t, db, "alicia")
	createTestUser(t, db, "bob")

	banned := createTestUser(t, db, "malice")
	require.NoError(t, db.Model(banned).Update("is_banned", true).Error)

	t.Run("matches by substring, case-insensitively", func(t *testing.T) {
		results, err := svc.Search(ctx, "ALI", alice.ID, 0)
		require.NoError(t, err)
		require.Len(t, results, 1, "caller and banned users excluded")
		assert.Equal(t, "alicia", results[0].Username)
	})

	t.Run("empty query browses everyone visible", func(t *testing.T) {
		results, err := svc.Search(ctx, "", alice.ID, 10)
		require.NoError(t, err)
		require.Len(t, results, 2, "caller and banned users excluded")
		assert.Equal(t, "alicia", results[0].Username)
		assert.Equal(t, "bob", results[1].Username)
	})
}

func TestUserService_ListAll(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(t, db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")
	createTestUser(t, db, "carol")

	users, err := svc.ListAll(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Username, "ordered by username")
}
