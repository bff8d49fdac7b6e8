package server

import (
	"glimpse/internal/models"
	"glimpse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMessages handles GET /api/chat/messages/:userId
// @Summary Get a conversation thread
// @Description Full message history between the caller and another user
// @Tags chat
// @Produce json
// @Param userId path int true "Other user ID"
// @Success 200 {array} models.Message
// @Security BearerAuth
// @Router /chat/messages/{userId} [get]
func (s *Server) GetMessages(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	messages, err := s.chatService.ListMessages(c.UserContext(), userID, otherID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(messages)
}

// SendMessage handles POST /api/chat/messages (multipart)
// @Summary Send a direct message
// @Description Send a message with content, an image, or both
// @Tags chat
// @Accept mpfd
// @Produce json
// @Param recipientId formData int true "Recipient user ID"
// @Param content formData string false "Message content"
// @Param image formData file false "Message image"
// @Success 201 {object} models.Message
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /chat/messages [post]
func (s *Server) SendMessage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var form struct {
		RecipientID uint   `form:"recipientId"`
		Content     string `form:"content"`
	}
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if form.RecipientID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Recipient is required"))
	}

	in := service.SendMessageInput{
		SenderID:    userID,
		RecipientID: form.RecipientID,
		Content:     form.Content,
	}
	if file, err := c.FormFile("image"); err == nil {
		content, readErr := readFormFile(file)
		if readErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unable to read uploaded file"))
		}
		in.ImageFilename = file.Filename
		in.ImageType = file.Header.Get("Content-Type")
		in.ImageContent = content
	}

	msg, err := s.chatService.SendMessage(c.UserContext(), in)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
