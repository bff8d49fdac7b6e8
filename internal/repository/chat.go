package repository

import (
	"context"

	"glimpse/internal/models"

	"gorm.io/gorm"
)

// ChatRepository defines the interface for direct message data operations
type ChatRepository interface {
	CreateMessage(ctx context.Context, msg *models.Message) error
	ListBetween(ctx context.Context, userID, otherID uint) ([]*models.Message, error)
}

// chatRepository implements ChatRepository
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListBetween returns the full thread between two users, both directions, in
// chronological order.
func (r *chatRepository) ListBetween(ctx context.Context, userID, otherID uint) ([]*models.Message, error) {
	var messages []*models.Message
	err := readDB(r.db).WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, otherID, otherID, userID).
		Preload("Sender").
		Preload("Recipient").
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
