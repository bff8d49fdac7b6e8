package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"glimpse/internal/cache"
	"glimpse/internal/middleware"
	"glimpse/internal/models"
	"glimpse/internal/observability"

	"gorm.io/gorm"
)

// FollowResult reports the outcome of a follow toggle.
type FollowResult struct {
	Following bool `json:"following"`
}

// CascadeResult reports what a full account removal deleted.
type CascadeResult struct {
	PostsDeleted int64 `json:"postsDeleted"`
	// imagePaths are file paths to remove after the transaction commits.
	imagePaths []string
}

// RelationshipService owns operations that span multiple aggregates: the
// follow edge between two accounts, bans, and full account removal. It works
// on the database directly because these operations are transactions over
// several tables, not single-repository calls.
type RelationshipService struct {
	db    *gorm.DB
	media *MediaService
}

// NewRelationshipService returns a new RelationshipService.
func NewRelationshipService(db *gorm.DB, media *MediaService) *RelationshipService {
	return &RelationshipService{db: db, media: media}
}

// ToggleFollow creates the follow edge from follower to target if absent, or
// removes it if present. The edge is a single row, so follower and following
// lists can never disagree.
func (s *RelationshipService) ToggleFollow(ctx context.Context, followerID, targetID uint) (*FollowResult, error) {
	if followerID == targetID {
		return nil, models.NewValidationError("You cannot follow yourself")
	}

	var target models.User
	if err := s.db.WithContext(ctx).First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", targetID)
		}
		return nil, models.NewInternalError(err)
	}

	result := &FollowResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted := tx.Where("follower_id = ? AND followee_id = ?", followerID, targetID).
			Delete(&models.Follow{})
		if deleted.Error != nil {
			return deleted.Error
		}
		if deleted.RowsAffected > 0 {
			result.Following = false
			return nil
		}

		edge := models.Follow{FollowerID: followerID, FolloweeID: targetID}
		if err := tx.Create(&edge).Error; err != nil {
			return err
		}
		result.Following = true
		return nil
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	action := "unfollow"
	if result.Following {
		action = "follow"
	}
	observability.FollowTogglesTotal.WithLabelValues(action).Inc()
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, targetID)
	return result, nil
}

// ToggleBan flips the banned flag on an account. Banned accounts are refused
// at login; existing sessions expire naturally.
func (s *RelationshipService) ToggleBan(ctx context.Context, targetID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", targetID)
		}
		return nil, models.NewInternalError(err)
	}

	user.IsBanned = !user.IsBanned
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, targetID)
	return &user, nil
}

// DeleteUserCascade removes an account and everything attached to it in one
// transaction: the user's comments and likes on any post, the user's posts
// (with their comments and likes), follow edges in both directions, messages
// in both directions, and finally the user row. Image files are removed from
// disk only after the transaction commits.
func (s *RelationshipService) DeleteUserCascade(ctx context.Context, targetID uint) (*CascadeResult, error) {
	start := time.Now()
	result := &CascadeResult{}
	var deletedPostIDs []uint

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", targetID)
			}
			return err
		}
		if user.ProfilePicture != "" {
			result.imagePaths = append(result.imagePaths, user.ProfilePicture)
		}

		// The user's comments and likes anywhere
		if err := tx.Where("user_id = ?", targetID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", targetID).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		// The user's posts with their comments, likes and images
		var posts []models.Post
		if err := tx.Where("user_id = ?", targetID).Find(&posts).Error; err != nil {
			return err
		}
		for _, post := range posts {
			if post.Image != "" {
				result.imagePaths = append(result.imagePaths, post.Image)
			}
		}
		if len(posts) > 0 {
			postIDs := make([]uint, 0, len(posts))
			for _, post := range posts {
				postIDs = append(postIDs, post.ID)
			}
			deletedPostIDs = postIDs
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			deleted := tx.Where("user_id = ?", targetID).Delete(&models.Post{})
			if deleted.Error != nil {
				return deleted.Error
			}
			result.PostsDeleted = deleted.RowsAffected
		}

		// Follow edges both directions
		if err := tx.Unscoped().
			Where("follower_id = ? OR followee_id = ?", targetID, targetID).
			Delete(&models.Follow{}).Error; err != nil {
			return err
		}

		// Messages both directions; message images go with them
		var messages []models.Message
		if err := tx.Where("sender_id = ? OR recipient_id = ?", targetID, targetID).
			Find(&messages).Error; err != nil {
			return err
		}
		for _, msg := range messages {
			if msg.Image != "" {
				result.imagePaths = append(result.imagePaths, msg.Image)
			}
		}
		if err := tx.Where("sender_id = ? OR recipient_id = ?", targetID, targetID).
			Delete(&models.Message{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, targetID).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewInternalError(err)
	}

	for _, path := range result.imagePaths {
		s.media.Remove(path)
	}
	cache.InvalidateUser(ctx, targetID)
	// Cached reads of the removed posts would otherwise keep serving them as
	// existence checks for comments and likes until the TTL runs out.
	for _, postID := range deletedPostIDs {
		cache.InvalidatePost(ctx, postID)
	}

	observability.UserCascadeDeleteDuration.Observe(time.Since(start).Seconds())
	middleware.Logger.InfoContext(ctx, "user account removed",
		slog.Uint64("target_id", uint64(targetID)),
		slog.Int64("posts_deleted", result.PostsDeleted))
	return result, nil
}
