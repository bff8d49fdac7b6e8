package service

import (
	"context"
	"strings"

	"glimpse/internal/models"
	"glimpse/internal/observability"
	"glimpse/internal/repository"
)

// ChatService implements direct messages between two users.
type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	media    *MediaService
}

// SendMessageInput carries a new direct message. Image is optional raw upload
// bytes; content and image cannot both be empty.
type SendMessageInput struct {
	SenderID      uint
	RecipientID   uint
	Content       string
	ImageFilename string
	ImageType     string
	ImageContent  []byte
}

// NewChatService returns a new ChatService.
func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository, media *MediaService) *ChatService {
	return &ChatService{chatRepo: chatRepo, userRepo: userRepo, media: media}
}

// ListMessages returns the full thread between the caller and another user in
// chronological order.
func (s *ChatService) ListMessages(ctx context.Context, userID, otherID uint) ([]*models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, otherID); err != nil {
		return nil, err
	}
	messages, err := s.chatRepo.ListBetween(ctx, userID, otherID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// SendMessage stores a direct message. A message must carry content, an
// image, or both, and the recipient must exist.
func (s *ChatService) SendMessage(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" && len(in.ImageContent) == 0 {
		return nil, models.NewValidationError("Message must have content or an image")
	}
	if in.SenderID == in.RecipientID {
		return nil, models.NewValidationError("You cannot message yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, in.RecipientID); err != nil {
		return nil, err
	}

	var imagePath string
	if len(in.ImageContent) > 0 {
		path, err := s.media.Save(UploadMediaInput{
			Purpose:     MediaChat,
			Filename:    in.ImageFilename,
			ContentType: in.ImageType,
			Content:     in.ImageContent,
		})
		if err != nil {
			return nil, err
		}
		imagePath = path
	}

	msg := &models.Message{
		SenderID:    in.SenderID,
		RecipientID: in.RecipientID,
		Content:     content,
		Image:       imagePath,
	}
	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		if imagePath != "" {
			s.media.Remove(imagePath)
		}
		return nil, models.NewInternalError(err)
	}

	observability.MessagesSentTotal.Inc()
	return msg, nil
}
