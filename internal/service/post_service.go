package service

import (
	"context"
	"errors"
	"strings"

	"glimpse/internal/models"
	"glimpse/internal/observability"
	"glimpse/internal/repository"

	"gorm.io/gorm"
)

// PostService implements post creation, the feed, likes and removal.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	media    *MediaService
}

// CreatePostInput carries a new post's content. Image is optional and holds
// raw upload bytes; text and image cannot both be empty.
type CreatePostInput struct {
	UserID        uint
	Text          string
	ImageFilename string
	ImageType     string
	ImageContent  []byte
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, media *MediaService) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo, media: media}
}

// CreatePost stores a new post. A post must carry text, an image, or both.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" && len(in.ImageContent) == 0 {
		return nil, models.NewValidationError("Post must have text or an image")
	}

	var imagePath string
	if len(in.ImageContent) > 0 {
		path, err := s.media.Save(UploadMediaInput{
			Purpose:     MediaPost,
			Filename:    in.ImageFilename,
			ContentType: in.ImageType,
			Content:     in.ImageContent,
		})
		if err != nil {
			return nil, err
		}
		imagePath = path
	}

	post := &models.Post{
		UserID: in.UserID,
		Text:   text,
		Image:  imagePath,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		if imagePath != "" {
			s.media.Remove(imagePath)
		}
		return nil, models.NewInternalError(err)
	}

	observability.PostsCreatedTotal.Inc()
	return s.GetPost(ctx, post.ID, in.UserID)
}

// GetPost returns a single post with author, comments and like state for the
// requesting user.
func (s *PostService) GetPost(ctx context.Context, postID, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// Feed returns the newest posts by everyone except the requesting user.
func (s *PostService) Feed(ctx context.Context, currentUserID uint, limit, offset int) ([]*models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	posts, err := s.postRepo.List(ctx, limit, offset, currentUserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// UserPosts returns a user's own posts, newest first.
func (s *PostService) UserPosts(ctx context.Context, userID, currentUserID uint, limit, offset int) ([]*models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	posts, err := s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ToggleLike likes the post if the user has not liked it, or removes the like
// if they have. Repeating the same action is a no-op thanks to the unique
// constraint on likes.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID uint) (*models.Post, error) {
	// Ensure the post exists first
	if _, err := s.GetPost(ctx, postID, 0); err != nil {
		return nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if liked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, models.NewInternalError(err)
		}
	} else {
		if err := s.postRepo.Like(ctx, userID, postID); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	// Return the decorated post so the caller sees the new like state
	return s.GetPost(ctx, postID, userID)
}

// DeletePost removes a post and its comments and likes. Only the author may
// delete it.
func (s *PostService) DeletePost(ctx context.Context, postID, userID uint) error {
	post, err := s.GetPost(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return models.NewInternalError(err)
	}
	if post.Image != "" {
		s.media.Remove(post.Image)
	}
	return nil
}
