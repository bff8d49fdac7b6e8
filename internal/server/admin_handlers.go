package server

import (
	"glimpse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AdminListUsers handles GET /api/admin/users
// @Summary List all accounts
// @Tags admin
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := s.db.WithContext(c.UserContext()).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(users)
}

// AdminToggleBan handles PUT /api/admin/users/:userId/ban
// @Summary Ban or unban an account
// @Tags admin
// @Produce json
// @Param userId path int true "Target user ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{userId}/ban [put]
func (s *Server) AdminToggleBan(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	user, err := s.relationshipService.ToggleBan(c.UserContext(), targetID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(user)
}

// AdminDeleteUser handles DELETE /api/admin/users/:userId
// @Summary Delete an account and everything it owns
// @Tags admin
// @Produce json
// @Param userId path int true "Target user ID"
// @Success 200 {object} object{message=string,postsDeleted=int}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{userId} [delete]
func (s *Server) AdminDeleteUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	result, err := s.relationshipService.DeleteUserCascade(c.UserContext(), targetID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{
		"message":      "User deleted",
		"postsDeleted": result.PostsDeleted,
	})
}

// GetFeatureFlags handles GET /api/admin/feature-flags
// @Summary Show configured feature flags and their state for the caller
// @Tags admin
// @Produce json
// @Success 200 {object} object{raw=object,evaluated=object}
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	return c.JSON(fiber.Map{
		"raw":       s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(userID),
	})
}
