// Package service contains the application's business logic.
package service

import (
	"context"
	"time"

	"glimpse/internal/cache"
	"glimpse/internal/models"
	"glimpse/internal/repository"
	"glimpse/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService implements profile, directory and credential operations.
type UserService struct {
	userRepo repository.UserRepository
	media    *MediaService
}

// UpdateProfileInput carries profile fields a user may change. Empty fields
// are left untouched.
type UpdateProfileInput struct {
	UserID      uint
	Username    string
	Bio         string
	DateOfBirth *time.Time
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, media *MediaService) *UserService {
	return &UserService{userRepo: userRepo, media: media}
}

// GetProfile returns a user with follower and following projections attached.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	followers, err := s.userRepo.Followers(ctx, id)
	if err != nil {
		return nil, err
	}
	following, err := s.userRepo.Following(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Followers = followers
	user.Following = following
	return user, nil
}

// UpdateProfile changes username and bio. Usernames must stay unique and
// well-formed.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.Username != "" && in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewValidationError("Username already taken")
		}
		user.Username = in.Username
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.DateOfBirth != nil {
		user.DateOfBirth = in.DateOfBirth
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdatePassword verifies the current password before setting a new one.
func (s *UserService) UpdatePassword(ctx context.Context, userID uint, current, updated string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}
	if err := validation.ValidatePassword(updated); err != nil {
		return models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(updated), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hashed)
	return s.userRepo.Update(ctx, user)
}

// SetProfilePicture stores the upload and points the account at it, removing
// any previous picture from disk.
func (s *UserService) SetProfilePicture(ctx context.Context, userID uint, in UploadMediaInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	in.Purpose = MediaProfile
	path, err := s.media.Save(in)
	if err != nil {
		return nil, err
	}

	previous := user.ProfilePicture
	user.ProfilePicture = path
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.media.Remove(path)
		return nil, err
	}
	if previous != "" {
		s.media.Remove(previous)
	}
	return user, nil
}

// RemoveProfilePicture clears the account's picture and deletes the file.
func (s *UserService) RemoveProfilePicture(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	previous := user.ProfilePicture
	user.ProfilePicture = ""
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if previous != "" {
		s.media.Remove(previous)
	}
	cache.InvalidateUser(ctx, userID)
	return user, nil
}

// Search returns up to limit visible users whose username matches query,
// excluding the caller. An empty query matches everyone, so it returns the
// first limit users like a browse.
func (s *UserService) Search(ctx context.Context, query string, callerID uint, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 10 {
		limit = 10
	}
	return s.userRepo.Search(ctx, query, callerID, limit)
}

// ListAll returns every visible user except the caller.
func (s *UserService) ListAll(ctx context.Context, callerID uint) ([]models.User, error) {
	return s.userRepo.List(ctx, callerID)
}
